package identifier

import (
	"os"
	"path/filepath"
	"testing"
)

func writeLabelDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labels.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}
	return path
}

func TestResolveWithFallbackUsesDataset(t *testing.T) {
	path := writeLabelDataset(t, `
"https://ror.org/04z8jg394": GFZ German Research Centre for Geosciences
"04z8jg395": Some Other Institute
`)
	r := NewLabelResolver(path)

	resolved := r.ResolveWithFallback("https://ror.org/04z8jg394", "Fallback Name")
	if resolved == nil {
		t.Fatal("Expected a resolved identifier")
	}
	if resolved.Label != "GFZ German Research Centre for Geosciences" {
		t.Errorf("Expected dataset label, got %q", resolved.Label)
	}

	// Dataset keys are canonicalized too, so a bare ID entry matches a
	// URL lookup.
	resolved = r.ResolveWithFallback("https://ror.org/04z8jg395", "")
	if resolved == nil || resolved.Label != "Some Other Institute" {
		t.Fatalf("Expected bare-ID dataset entry to resolve, got %+v", resolved)
	}
}

func TestResolveWithFallbackLabel(t *testing.T) {
	r := NewLabelResolver("")

	resolved := r.ResolveWithFallback("https://ror.org/04z8jg394", "Provided Name")
	if resolved == nil {
		t.Fatal("Expected a resolved identifier")
	}
	if resolved.ID != "https://ror.org/04z8jg394" {
		t.Errorf("Expected canonical ID, got %q", resolved.ID)
	}
	if resolved.Label != "Provided Name" {
		t.Errorf("Expected fallback label, got %q", resolved.Label)
	}
}

func TestResolveWithFallbackToCanonical(t *testing.T) {
	r := NewLabelResolver("")

	resolved := r.ResolveWithFallback("0000-0002-1825-0097", "")
	if resolved == nil {
		t.Fatal("Expected a resolved identifier")
	}
	if resolved.Label != "https://orcid.org/0000-0002-1825-0097" {
		t.Errorf("Expected canonical ID as label, got %q", resolved.Label)
	}
}

func TestResolveWithFallbackInvalidIdentifier(t *testing.T) {
	r := NewLabelResolver("")
	if resolved := r.ResolveWithFallback("not an identifier", "label"); resolved != nil {
		t.Errorf("Expected nil for unparseable identifier, got %+v", resolved)
	}
}

func TestResolveWithMissingDataset(t *testing.T) {
	r := NewLabelResolver("/nonexistent/labels.yaml")
	resolved := r.ResolveWithFallback("https://ror.org/04z8jg394", "Fallback")
	if resolved == nil || resolved.Label != "Fallback" {
		t.Fatalf("Expected silent fallback on missing dataset, got %+v", resolved)
	}
}
