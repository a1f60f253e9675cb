package datacite

import (
	"strings"
	"testing"
)

func TestUnmarshalDocumentEnvelope(t *testing.T) {
	doc, err := UnmarshalDocument([]byte(`{
      "data": {
        "type": "dois",
        "attributes": {
          "doi": "10.5880/GFZ.2023.001",
          "titles": [{"title": "A Title"}]
        }
      }
    }`))
	if err != nil {
		t.Fatalf("UnmarshalDocument failed: %v", err)
	}
	if doc.Data.Type != "dois" {
		t.Errorf("Unexpected envelope type: %q", doc.Data.Type)
	}
	if doc.Data.Attributes.DOI != "10.5880/GFZ.2023.001" {
		t.Errorf("Unexpected DOI: %q", doc.Data.Attributes.DOI)
	}
}

func TestUnmarshalDocumentBareAttributes(t *testing.T) {
	doc, err := UnmarshalDocument([]byte(`{
      "doi": "10.5880/GFZ.2023.001",
      "titles": [{"title": "A Title"}]
    }`))
	if err != nil {
		t.Fatalf("UnmarshalDocument failed: %v", err)
	}
	if doc.Data.Type != "dois" {
		t.Errorf("Expected envelope type synthesized, got %q", doc.Data.Type)
	}
	if doc.Data.Attributes.DOI != "10.5880/GFZ.2023.001" {
		t.Errorf("Unexpected DOI: %q", doc.Data.Attributes.DOI)
	}
}

func TestUnmarshalDocumentRejectsGarbage(t *testing.T) {
	if _, err := UnmarshalDocument([]byte(`not json`)); err == nil {
		t.Error("Expected error for malformed input")
	}
}

func TestPublisherStringForm(t *testing.T) {
	doc, err := UnmarshalDocument([]byte(`{
      "titles": [{"title": "A Title"}],
      "publisher": "GFZ Data Services"
    }`))
	if err != nil {
		t.Fatalf("UnmarshalDocument failed: %v", err)
	}
	p := doc.Data.Attributes.Publisher
	if p == nil || p.Name != "GFZ Data Services" {
		t.Errorf("Expected bare string lifted into Name, got %+v", p)
	}
}

func TestPublisherObjectForm(t *testing.T) {
	doc, err := UnmarshalDocument([]byte(`{
      "titles": [{"title": "A Title"}],
      "publisher": {
        "name": "GFZ Data Services",
        "publisherIdentifier": "https://www.re3data.org/repository/r3d100012335",
        "publisherIdentifierScheme": "re3data",
        "schemeUri": "https://re3data.org",
        "lang": "en"
      }
    }`))
	if err != nil {
		t.Fatalf("UnmarshalDocument failed: %v", err)
	}
	p := doc.Data.Attributes.Publisher
	if p == nil {
		t.Fatal("Expected publisher parsed")
	}
	if p.Name != "GFZ Data Services" || p.PublisherIdentifierScheme != "re3data" || p.Lang != "en" {
		t.Errorf("Unexpected publisher: %+v", p)
	}
}

func TestMarshalDocumentRoundTrip(t *testing.T) {
	original, err := UnmarshalDocument([]byte(validDocument))
	if err != nil {
		t.Fatalf("UnmarshalDocument failed: %v", err)
	}

	out, err := MarshalDocument(original)
	if err != nil {
		t.Fatalf("MarshalDocument failed: %v", err)
	}
	if !strings.Contains(string(out), `"type": "dois"`) {
		t.Errorf("Expected envelope in output, got:\n%s", out)
	}

	reparsed, err := UnmarshalDocument(out)
	if err != nil {
		t.Fatalf("Re-unmarshal failed: %v", err)
	}
	if reparsed.Data.Attributes.DOI != original.Data.Attributes.DOI {
		t.Error("Expected DOI preserved through round trip")
	}
	if len(reparsed.Data.Attributes.RelatedIdentifiers) != len(original.Data.Attributes.RelatedIdentifiers) {
		t.Error("Expected related identifiers preserved through round trip")
	}
}
