package entity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/McNamara84/ernie-go/identifier"
	"github.com/McNamara84/ernie-go/resource"
	"github.com/McNamara84/ernie-go/store"
)

func TestResolvePersonCreatesOnce(t *testing.T) {
	r := NewResolver(store.NewMemory())

	first, err := r.ResolvePerson("Jane", "Doe", "https://orcid.org/0000-0002-1825-0097")
	if err != nil {
		t.Fatalf("ResolvePerson failed: %v", err)
	}
	if first.NameIdentifier != "https://orcid.org/0000-0002-1825-0097" {
		t.Errorf("Expected canonical ORCID stored, got %q", first.NameIdentifier)
	}

	// Re-importing with the bare ID form must reuse the record.
	second, err := r.ResolvePerson("Jane", "Doe", "0000-0002-1825-0097")
	if err != nil {
		t.Fatalf("ResolvePerson failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Expected same person record, got %s and %s", first.ID, second.ID)
	}
}

func TestResolvePersonByNameBackfillsORCID(t *testing.T) {
	st := store.NewMemory()
	r := NewResolver(st)

	first, err := r.ResolvePerson("Jane", "Doe", "")
	if err != nil {
		t.Fatalf("ResolvePerson failed: %v", err)
	}

	second, err := r.ResolvePerson("Jane", "Doe", "0000-0002-1825-0097")
	if err != nil {
		t.Fatalf("ResolvePerson failed: %v", err)
	}
	if second.ID != first.ID {
		t.Error("Expected name match to reuse the existing record")
	}
	if second.NameIdentifier != "https://orcid.org/0000-0002-1825-0097" {
		t.Errorf("Expected ORCID backfilled, got %q", second.NameIdentifier)
	}

	stored, err := st.PersonByIdentifier("https://orcid.org/0000-0002-1825-0097")
	if err != nil {
		t.Fatalf("PersonByIdentifier failed: %v", err)
	}
	if stored == nil || stored.ID != first.ID {
		t.Error("Expected backfilled ORCID to be persisted")
	}
}

func TestResolvePersonDistinctNames(t *testing.T) {
	r := NewResolver(store.NewMemory())

	a, _ := r.ResolvePerson("Jane", "Doe", "")
	b, _ := r.ResolvePerson("John", "Doe", "")
	if a.ID == b.ID {
		t.Error("Expected distinct records for distinct given names")
	}
}

func TestResolveInstitution(t *testing.T) {
	r := NewResolver(store.NewMemory())

	first, err := r.ResolveInstitution("GFZ", "https://ror.org/04z8jg394")
	if err != nil {
		t.Fatalf("ResolveInstitution failed: %v", err)
	}
	if first.NameIdentifier != "https://ror.org/04z8jg394" {
		t.Errorf("Expected canonical ROR, got %q", first.NameIdentifier)
	}

	// A differently-spelled name with the same ROR is the same institution.
	second, err := r.ResolveInstitution("GFZ Potsdam", "04z8jg394")
	if err != nil {
		t.Fatalf("ResolveInstitution failed: %v", err)
	}
	if second.ID != first.ID {
		t.Error("Expected ROR match to reuse the existing record")
	}
}

func TestResolveInstitutionNamesFromLabelDataset(t *testing.T) {
	dataset := filepath.Join(t.TempDir(), "ror-labels.yaml")
	content := "https://ror.org/04z8jg394: GFZ German Research Centre for Geosciences\n"
	if err := os.WriteFile(dataset, []byte(content), 0o644); err != nil {
		t.Fatalf("Writing label dataset failed: %v", err)
	}

	r := NewResolver(store.NewMemory()).
		WithLabels(identifier.NewLabelResolver(dataset))

	// Identifier-only record: the dataset supplies the name.
	inst, err := r.ResolveInstitution("", "04z8jg394")
	if err != nil {
		t.Fatalf("ResolveInstitution failed: %v", err)
	}
	if inst.Name != "GFZ German Research Centre for Geosciences" {
		t.Errorf("Expected dataset label as name, got %q", inst.Name)
	}

	// Identifier-only without a dataset entry keeps the canonical ROR.
	inst, err = r.ResolveInstitution("", "02nr0ka47")
	if err != nil {
		t.Fatalf("ResolveInstitution failed: %v", err)
	}
	if inst.Name != "https://ror.org/02nr0ka47" {
		t.Errorf("Expected canonical identifier as name, got %q", inst.Name)
	}

	// A supplied name always wins over the dataset.
	inst, err = r.ResolveInstitution("GFZ Potsdam", "0168r3w48")
	if err != nil {
		t.Fatalf("ResolveInstitution failed: %v", err)
	}
	if inst.Name != "GFZ Potsdam" {
		t.Errorf("Expected supplied name kept, got %q", inst.Name)
	}
}

func TestResolvePublisherReusesByName(t *testing.T) {
	r := NewResolver(store.NewMemory())

	first, err := r.ResolvePublisher("GFZ Data Services")
	if err != nil {
		t.Fatalf("ResolvePublisher failed: %v", err)
	}
	second, err := r.ResolvePublisher("GFZ Data Services")
	if err != nil {
		t.Fatalf("ResolvePublisher failed: %v", err)
	}
	if first.ID != second.ID {
		t.Error("Expected exact-name reuse")
	}
}

func TestSamePersonByORCID(t *testing.T) {
	a := &resource.Person{FamilyName: "Doe", GivenName: "Jane", NameIdentifier: "https://orcid.org/0000-0002-1825-0097"}
	b := &resource.Person{FamilyName: "Smith", GivenName: "J.", NameIdentifier: "0000-0002-1825-0097"}

	if !SamePerson(a, b) {
		t.Error("Expected ORCID match to win over differing names")
	}

	c := &resource.Person{FamilyName: "Doe", GivenName: "Jane", NameIdentifier: "https://orcid.org/0000-0001-5109-3700"}
	if SamePerson(a, c) {
		t.Error("Expected differing ORCIDs to separate identical names")
	}
}

func TestSamePersonByExactName(t *testing.T) {
	a := &resource.Person{FamilyName: "Doe", GivenName: "Jane"}
	b := &resource.Person{FamilyName: "Doe", GivenName: "Jane", NameIdentifier: "0000-0002-1825-0097"}

	if !SamePerson(a, b) {
		t.Error("Expected exact name match when one side has no ORCID")
	}

	c := &resource.Person{FamilyName: "Doe", GivenName: "jane"}
	if SamePerson(a, c) {
		t.Error("Expected name comparison to be case-sensitive")
	}

	if SamePerson(nil, a) || SamePerson(a, nil) {
		t.Error("Expected nil to match nothing")
	}
}
