package entity

import (
	"testing"

	"github.com/McNamara84/ernie-go/resource"
)

func TestParseAffiliations(t *testing.T) {
	raw := []any{
		map[string]any{
			"name":                        "GFZ German Research Centre for Geosciences",
			"affiliationIdentifier":       "https://ror.org/04z8jg394",
			"affiliationIdentifierScheme": "ROR",
			"schemeUri":                   "https://ror.org",
		},
		map[string]any{
			"name": "University of Potsdam",
		},
	}

	affs := ParseAffiliations(raw)
	if len(affs) != 2 {
		t.Fatalf("Expected 2 affiliations, got %d", len(affs))
	}

	if affs[0].Name != "GFZ German Research Centre for Geosciences" {
		t.Errorf("Unexpected name: %q", affs[0].Name)
	}
	if affs[0].Identifier != "https://ror.org/04z8jg394" {
		t.Errorf("Expected canonical ROR, got %q", affs[0].Identifier)
	}
	if affs[0].IdentifierScheme != "ROR" || affs[0].SchemeURI != "https://ror.org/" {
		t.Errorf("Expected ROR scheme fields, got %q %q", affs[0].IdentifierScheme, affs[0].SchemeURI)
	}

	if affs[1].Name != "University of Potsdam" || affs[1].Identifier != "" {
		t.Errorf("Unexpected second affiliation: %+v", affs[1])
	}
}

func TestParseAffiliationsRORInName(t *testing.T) {
	raw := []any{
		map[string]any{
			"name": "Helmholtz Centre Potsdam https://ror.org/04z8jg394",
		},
	}

	affs := ParseAffiliations(raw)
	if len(affs) != 1 {
		t.Fatalf("Expected 1 affiliation, got %d", len(affs))
	}
	if affs[0].Name != "Helmholtz Centre Potsdam" {
		t.Errorf("Expected URL stripped from name, got %q", affs[0].Name)
	}
	if affs[0].Identifier != "https://ror.org/04z8jg394" {
		t.Errorf("Expected extracted ROR, got %q", affs[0].Identifier)
	}
}

func TestParseAffiliationsUnknownSchemeCleared(t *testing.T) {
	raw := []any{
		map[string]any{
			"name":                        "Some Institute",
			"affiliationIdentifier":       "grid.419656.8",
			"affiliationIdentifierScheme": "GRID",
		},
	}

	affs := ParseAffiliations(raw)
	if len(affs) != 1 {
		t.Fatalf("Expected 1 affiliation, got %d", len(affs))
	}
	if affs[0].Identifier != "grid.419656.8" {
		t.Errorf("Expected identifier kept, got %q", affs[0].Identifier)
	}
	if affs[0].IdentifierScheme != "" || affs[0].SchemeURI != "" {
		t.Errorf("Expected unknown scheme cleared, got %q %q", affs[0].IdentifierScheme, affs[0].SchemeURI)
	}
}

func TestParseAffiliationsDropsJunk(t *testing.T) {
	raw := []any{
		"just a string",
		42,
		map[string]any{"name": "   "},
		map[string]any{"irrelevant": "field"},
		nil,
	}
	if affs := ParseAffiliations(raw); affs != nil {
		t.Errorf("Expected all entries dropped, got %+v", affs)
	}

	if affs := ParseAffiliations("not a list"); affs != nil {
		t.Errorf("Expected nil for non-list input, got %+v", affs)
	}
}

func TestSyncForCreatorReplacesAndReturnsPrior(t *testing.T) {
	creator := resource.Creator{
		Affiliations: []resource.Affiliation{{Name: "Old Institute"}},
	}

	prior := SyncForCreator(&creator, []any{
		map[string]any{"name": "New Institute"},
	})

	if len(prior) != 1 || prior[0].Name != "Old Institute" {
		t.Errorf("Expected prior set returned, got %+v", prior)
	}
	if len(creator.Affiliations) != 1 || creator.Affiliations[0].Name != "New Institute" {
		t.Errorf("Expected replacement, got %+v", creator.Affiliations)
	}
}

func TestSyncForContributorClearsOnEmpty(t *testing.T) {
	contributor := resource.Contributor{
		Affiliations: []resource.Affiliation{{Name: "Old Institute"}},
	}

	prior := SyncForContributor(&contributor, []any{})

	if len(prior) != 1 {
		t.Errorf("Expected prior set returned, got %+v", prior)
	}
	if len(contributor.Affiliations) != 0 {
		t.Errorf("Expected cleared set, got %+v", contributor.Affiliations)
	}
}
