package datacite

import (
	"fmt"
	"strings"

	"github.com/segmentio/encoding/json"
)

// Document is the DataCite REST API envelope around a DOI's attributes.
type Document struct {
	Data Data `json:"data"`
}

// Data carries the JSON:API type tag and the metadata attributes.
type Data struct {
	Type       string     `json:"type"`
	Attributes Attributes `json:"attributes"`
}

// Attributes is the DataCite 4.6 metadata payload. Optional collections
// are omitted from serialization when empty.
type Attributes struct {
	DOI                string              `json:"doi,omitempty"`
	Identifiers        []Identifier        `json:"identifiers,omitempty"`
	Creators           []Name              `json:"creators"`
	Titles             []Title             `json:"titles"`
	Publisher          *Publisher          `json:"publisher,omitempty"`
	PublicationYear    int                 `json:"publicationYear,omitempty"`
	Subjects           []Subject           `json:"subjects,omitempty"`
	Contributors       []Name              `json:"contributors,omitempty"`
	Dates              []Date              `json:"dates,omitempty"`
	Language           string              `json:"language,omitempty"`
	Types              Types               `json:"types"`
	RelatedIdentifiers []RelatedIdentifier `json:"relatedIdentifiers,omitempty"`
	Sizes              []string            `json:"sizes,omitempty"`
	Formats            []string            `json:"formats,omitempty"`
	Version            string              `json:"version,omitempty"`
	RightsList         []Rights            `json:"rightsList,omitempty"`
	Descriptions       []Description       `json:"descriptions,omitempty"`
	GeoLocations       []GeoLocation       `json:"geoLocations,omitempty"`
	FundingReferences  []FundingReference  `json:"fundingReferences,omitempty"`
	SchemaVersion      string              `json:"schemaVersion"`
}

// Identifier is an entry of the identifiers array (DOI, IGSN, ...).
type Identifier struct {
	Identifier     string `json:"identifier"`
	IdentifierType string `json:"identifierType"`
}

// Name is a creator or contributor. ContributorType is only set on
// contributors. Affiliation stays loosely typed: real-world payloads
// carry objects, strings, or junk, which the entity parser sorts out.
type Name struct {
	Name            string           `json:"name,omitempty"`
	NameType        string           `json:"nameType,omitempty"`
	GivenName       string           `json:"givenName,omitempty"`
	FamilyName      string           `json:"familyName,omitempty"`
	ContributorType string           `json:"contributorType,omitempty"`
	NameIdentifiers []NameIdentifier `json:"nameIdentifiers,omitempty"`
	Affiliation     any              `json:"affiliation,omitempty"`
}

// NameIdentifier is an ORCID/ROR entry under a creator or contributor.
type NameIdentifier struct {
	NameIdentifier       string `json:"nameIdentifier"`
	NameIdentifierScheme string `json:"nameIdentifierScheme,omitempty"`
	SchemeURI            string `json:"schemeUri,omitempty"`
}

// Title is one titles entry.
type Title struct {
	Title     string `json:"title"`
	TitleType string `json:"titleType,omitempty"`
	Lang      string `json:"lang,omitempty"`
}

// Publisher accepts both the bare-string form older payloads use and the
// structured object form of schema 4.5+. It always serializes as the
// structured object.
type Publisher struct {
	Name                      string `json:"name"`
	PublisherIdentifier       string `json:"publisherIdentifier,omitempty"`
	PublisherIdentifierScheme string `json:"publisherIdentifierScheme,omitempty"`
	SchemeURI                 string `json:"schemeUri,omitempty"`
	Lang                      string `json:"lang,omitempty"`
}

// UnmarshalJSON handles the string-or-object publisher field.
func (p *Publisher) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*p = Publisher{Name: name}
		return nil
	}

	type alias Publisher
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*p = Publisher(obj)
	return nil
}

// Subject is one subjects entry.
type Subject struct {
	Subject            string `json:"subject"`
	SubjectScheme      string `json:"subjectScheme,omitempty"`
	SchemeURI          string `json:"schemeUri,omitempty"`
	ValueURI           string `json:"valueUri,omitempty"`
	ClassificationCode string `json:"classificationCode,omitempty"`
}

// Date is one dates entry; Date holds either a value or a "start/end"
// range string.
type Date struct {
	Date            string `json:"date"`
	DateType        string `json:"dateType"`
	DateInformation string `json:"dateInformation,omitempty"`
}

// Types names the resource type in the general vocabulary plus a free
// label.
type Types struct {
	ResourceTypeGeneral string `json:"resourceTypeGeneral"`
	ResourceType        string `json:"resourceType,omitempty"`
}

// RelatedIdentifier is one relatedIdentifiers entry.
type RelatedIdentifier struct {
	RelatedIdentifier     string `json:"relatedIdentifier"`
	RelatedIdentifierType string `json:"relatedIdentifierType"`
	RelationType          string `json:"relationType"`
	ResourceTypeGeneral   string `json:"resourceTypeGeneral,omitempty"`
}

// Rights is one rightsList entry.
type Rights struct {
	Rights                 string `json:"rights,omitempty"`
	RightsURI              string `json:"rightsUri,omitempty"`
	RightsIdentifier       string `json:"rightsIdentifier,omitempty"`
	RightsIdentifierScheme string `json:"rightsIdentifierScheme,omitempty"`
	SchemeURI              string `json:"schemeUri,omitempty"`
}

// Description is one descriptions entry.
type Description struct {
	Description     string `json:"description"`
	DescriptionType string `json:"descriptionType"`
	Lang            string `json:"lang,omitempty"`
}

// GeoLocation is one geoLocations entry.
type GeoLocation struct {
	GeoLocationPlace string            `json:"geoLocationPlace,omitempty"`
	GeoLocationPoint *GeoLocationPoint `json:"geoLocationPoint,omitempty"`
	GeoLocationBox   *GeoLocationBox   `json:"geoLocationBox,omitempty"`
}

// GeoLocationPoint is a longitude/latitude pair.
type GeoLocationPoint struct {
	PointLongitude float64 `json:"pointLongitude"`
	PointLatitude  float64 `json:"pointLatitude"`
}

// GeoLocationBox is a bounding box.
type GeoLocationBox struct {
	WestBoundLongitude float64 `json:"westBoundLongitude"`
	EastBoundLongitude float64 `json:"eastBoundLongitude"`
	SouthBoundLatitude float64 `json:"southBoundLatitude"`
	NorthBoundLatitude float64 `json:"northBoundLatitude"`
}

// FundingReference is one fundingReferences entry.
type FundingReference struct {
	FunderName           string `json:"funderName"`
	FunderIdentifier     string `json:"funderIdentifier,omitempty"`
	FunderIdentifierType string `json:"funderIdentifierType,omitempty"`
	AwardNumber          string `json:"awardNumber,omitempty"`
	AwardTitle           string `json:"awardTitle,omitempty"`
	AwardURI             string `json:"awardUri,omitempty"`
}

// UnmarshalDocument parses a DataCite JSON document. Both the REST
// envelope and a bare attributes object are accepted.
func UnmarshalDocument(data []byte) (*Document, error) {
	var probe map[string]any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parsing DataCite JSON: %w", err)
	}

	var doc Document
	if _, enveloped := probe["data"]; enveloped {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing DataCite JSON: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &doc.Data.Attributes); err != nil {
			return nil, fmt.Errorf("parsing DataCite attributes: %w", err)
		}
		doc.Data.Type = "dois"
	}
	return &doc, nil
}

// MarshalDocument serializes a document with stable two-space indent.
func MarshalDocument(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding DataCite JSON: %w", err)
	}
	return data, nil
}
