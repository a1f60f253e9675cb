package resource

import "testing"

func TestMainTitle(t *testing.T) {
	r := &Resource{Titles: []Title{
		{Value: "Subtitle Text", Type: TitleSubtitle},
		{Value: "The Main Title", Type: TitleMain},
	}}
	if got := r.MainTitle(); got == nil || got.Value != "The Main Title" {
		t.Errorf("Expected implicit main title, got %+v", got)
	}

	// All typed: the first entry stands in.
	r = &Resource{Titles: []Title{{Value: "Only Subtitle", Type: TitleSubtitle}}}
	if got := r.MainTitle(); got == nil || got.Value != "Only Subtitle" {
		t.Errorf("Expected first title as stand-in, got %+v", got)
	}

	if got := (&Resource{}).MainTitle(); got != nil {
		t.Errorf("Expected nil for untitled resource, got %+v", got)
	}
}

func TestDateByType(t *testing.T) {
	r := &Resource{Dates: []ResourceDate{
		{Value: "2023-01-01", Type: "Created"},
		{Value: "2023-06-01", Type: "Issued"},
	}}

	if got := r.DateByType("created"); got == nil || got.Value != "2023-01-01" {
		t.Errorf("Expected case-insensitive match, got %+v", got)
	}
	if got := r.DateByType("Withdrawn"); got != nil {
		t.Errorf("Expected nil for absent type, got %+v", got)
	}
}

func TestResourceDateString(t *testing.T) {
	d := ResourceDate{Value: "2023-01-01"}
	if d.IsRange() || d.String() != "2023-01-01" {
		t.Errorf("Unexpected single date rendering: %q", d.String())
	}

	d = ResourceDate{StartValue: "2007-01-01", EndValue: "2021-12-31"}
	if !d.IsRange() || d.String() != "2007-01-01/2021-12-31" {
		t.Errorf("Unexpected range rendering: %q", d.String())
	}

	// Open-ended ranges keep the slash.
	d = ResourceDate{StartValue: "2007-01-01"}
	if d.String() != "2007-01-01/" {
		t.Errorf("Unexpected open range rendering: %q", d.String())
	}
}

func TestPartyDisplayName(t *testing.T) {
	p := PersonParty(&Person{GivenName: "Jane", FamilyName: "Doe"})
	if got := p.DisplayName(); got != "Doe, Jane" {
		t.Errorf("Expected Doe, Jane, got %q", got)
	}

	p = PersonParty(&Person{FamilyName: "Doe"})
	if got := p.DisplayName(); got != "Doe" {
		t.Errorf("Expected family-only name, got %q", got)
	}

	i := InstitutionParty(&Institution{Name: "GFZ"})
	if got := i.DisplayName(); got != "GFZ" {
		t.Errorf("Expected institution name, got %q", got)
	}
}

func TestNormalizePersonName(t *testing.T) {
	family, given := NormalizePersonName("Doe, Jane")
	if family != "Doe" || given != "Jane" {
		t.Errorf("Unexpected split: %q / %q", family, given)
	}

	family, given = NormalizePersonName("  Doe ,  Jane  ")
	if family != "Doe" || given != "Jane" {
		t.Errorf("Expected trimmed split, got %q / %q", family, given)
	}

	family, given = NormalizePersonName("Cher")
	if family != "Cher" || given != "" {
		t.Errorf("Expected family-only, got %q / %q", family, given)
	}
}

func TestReplaceAffiliations(t *testing.T) {
	c := Creator{Affiliations: []Affiliation{{Name: "Old"}}}

	prior := ReplaceAffiliations(&c.Affiliations, []Affiliation{{Name: "New A"}, {Name: "New B"}})
	if len(prior) != 1 || prior[0].Name != "Old" {
		t.Errorf("Expected prior set returned, got %+v", prior)
	}
	if len(c.Affiliations) != 2 {
		t.Errorf("Expected full replacement, got %+v", c.Affiliations)
	}

	prior = ReplaceAffiliations(&c.Affiliations, nil)
	if len(prior) != 2 || len(c.Affiliations) != 0 {
		t.Errorf("Expected set cleared, got prior %+v, current %+v", prior, c.Affiliations)
	}
}

func TestHasPhysicalSamples(t *testing.T) {
	r := &Resource{}
	if r.HasPhysicalSamples() {
		t.Error("Expected no samples")
	}
	r.PhysicalSamples = append(r.PhysicalSamples, PhysicalSample{IGSN: "ICDP5054ESYI201"})
	if !r.HasPhysicalSamples() {
		t.Error("Expected samples detected")
	}
}
