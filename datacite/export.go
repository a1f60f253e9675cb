package datacite

import (
	"github.com/McNamara84/ernie-go/entity"
	"github.com/McNamara84/ernie-go/refdata"
	"github.com/McNamara84/ernie-go/resource"
)

// Placeholders used when a resource is missing data the schema requires.
const (
	placeholderTitle   = "Untitled"
	placeholderCreator = "Unknown"
)

// fallbackPublisher is the publisher of last resort so export never
// fails on this required field.
var fallbackPublisher = Publisher{
	Name:                      "GFZ Data Services",
	PublisherIdentifier:       "https://www.re3data.org/repository/r3d100012335",
	PublisherIdentifierScheme: "re3data",
	SchemeURI:                 "https://re3data.org",
	Lang:                      "en",
}

// Exporter renders resources as DataCite documents. It only reads the
// graph; every optional field has a defined omission or fallback.
type Exporter struct {
	registry *refdata.Registry
}

// NewExporter creates an exporter backed by the given reference data.
func NewExporter(registry *refdata.Registry) *Exporter {
	return &Exporter{registry: registry}
}

// Export maps a resource to a DataCite JSON document. The same mapping
// feeds the XML serialization.
func (e *Exporter) Export(r *resource.Resource) *Document {
	attrs := Attributes{
		DOI:             r.DOI,
		PublicationYear: r.PublicationYear,
		Language:        r.Language,
		Version:         r.Version,
		SchemaVersion:   Namespace,
		Types:           e.exportTypes(r),
		Titles:          exportTitles(r.Titles),
		Creators:        e.exportCreators(r),
		Contributors:    exportContributors(r.Contributors),
		Publisher:       e.exportPublisher(r.Publisher),
	}

	attrs.Identifiers = exportIdentifiers(r)

	for _, d := range r.Descriptions {
		attrs.Descriptions = append(attrs.Descriptions, Description{
			Description:     d.Value,
			DescriptionType: d.Type,
			Lang:            d.Language,
		})
	}

	for _, s := range r.Subjects {
		attrs.Subjects = append(attrs.Subjects, Subject{
			Subject:            s.Value,
			SubjectScheme:      s.Scheme,
			SchemeURI:          s.SchemeURI,
			ValueURI:           s.ValueURI,
			ClassificationCode: s.ClassificationCode,
		})
	}

	for _, rt := range r.Rights {
		attrs.RightsList = append(attrs.RightsList, Rights{
			Rights:                 rt.Value,
			RightsURI:              rt.URI,
			RightsIdentifier:       rt.Identifier,
			RightsIdentifierScheme: rt.IdentifierScheme,
			SchemeURI:              rt.SchemeURI,
		})
	}

	for _, d := range r.Dates {
		attrs.Dates = append(attrs.Dates, Date{
			Date:            d.String(),
			DateType:        d.Type,
			DateInformation: d.Information,
		})
	}

	for _, rel := range r.RelatedIdentifiers {
		attrs.RelatedIdentifiers = append(attrs.RelatedIdentifiers, RelatedIdentifier{
			RelatedIdentifier:     rel.Value,
			RelatedIdentifierType: rel.IdentifierType,
			RelationType:          rel.RelationType,
			ResourceTypeGeneral:   rel.ResourceType,
		})
	}

	for _, f := range r.FundingReferences {
		attrs.FundingReferences = append(attrs.FundingReferences, FundingReference{
			FunderName:           f.FunderName,
			FunderIdentifier:     f.FunderIdentifier,
			FunderIdentifierType: f.FunderIdentifierType,
			AwardNumber:          f.AwardNumber,
			AwardTitle:           f.AwardTitle,
			AwardURI:             f.AwardURI,
		})
	}

	for _, g := range r.GeoLocations {
		attrs.GeoLocations = append(attrs.GeoLocations, exportGeoLocation(g))
	}

	attrs.Sizes = append(attrs.Sizes, r.Sizes...)
	attrs.Formats = append(attrs.Formats, r.Formats...)

	return &Document{Data: Data{Type: "dois", Attributes: attrs}}
}

func (e *Exporter) exportTypes(r *resource.Resource) Types {
	value, ok := e.registry.ResourceTypeBySlug(r.ResourceType)
	if !ok {
		value, _ = e.registry.ResourceTypeBySlug(refdata.FallbackResourceTypeSlug)
		if value == "" {
			value = "Other"
		}
	}
	return Types{ResourceTypeGeneral: value, ResourceType: value}
}

func exportTitles(titles []resource.Title) []Title {
	if len(titles) == 0 {
		return []Title{{Title: placeholderTitle}}
	}
	result := make([]Title, 0, len(titles))
	for _, t := range titles {
		result = append(result, Title{
			Title:     t.Value,
			TitleType: string(t.Type),
			Lang:      t.Language,
		})
	}
	return result
}

// exportCreators serializes the creator list and, for resources with
// physical samples, appends person contributors after the original
// creators in their original order, skipping anyone already present.
func (e *Exporter) exportCreators(r *resource.Resource) []Name {
	creators := r.Creators
	if r.HasPhysicalSamples() {
		creators = projectSampleContributors(r)
	}

	if len(creators) == 0 {
		return []Name{{Name: placeholderCreator, NameType: "Personal"}}
	}

	result := make([]Name, 0, len(creators))
	for _, c := range creators {
		result = append(result, exportParty(c.Party, c.Affiliations))
	}
	return result
}

// projectSampleContributors merges person contributors into the creator
// list for IGSN resources. Institutions never cross over; contributors
// stay untouched in their own list.
func projectSampleContributors(r *resource.Resource) []resource.Creator {
	merged := append([]resource.Creator(nil), r.Creators...)

	known := make([]*resource.Person, 0, len(merged))
	for _, c := range merged {
		if c.Party.Kind == resource.KindPerson {
			known = append(known, c.Party.Person)
		}
	}

	position := len(merged)
	for _, c := range r.Contributors {
		if c.Party.Kind != resource.KindPerson {
			continue
		}
		duplicate := false
		for _, p := range known {
			if entity.SamePerson(p, c.Party.Person) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		merged = append(merged, resource.Creator{
			Party:        c.Party,
			Position:     position,
			Affiliations: c.Affiliations,
		})
		known = append(known, c.Party.Person)
		position++
	}
	return merged
}

func exportContributors(contributors []resource.Contributor) []Name {
	var result []Name
	for _, c := range contributors {
		name := exportParty(c.Party, c.Affiliations)
		name.ContributorType = c.Type
		if name.ContributorType == "" {
			name.ContributorType = resource.ContributorTypeOther
		}
		result = append(result, name)
	}
	return result
}

func exportParty(p resource.Party, affiliations []resource.Affiliation) Name {
	name := Name{Name: p.DisplayName()}

	switch p.Kind {
	case resource.KindPerson:
		name.NameType = "Personal"
		if p.Person != nil {
			name.GivenName = p.Person.GivenName
			name.FamilyName = p.Person.FamilyName
			if p.Person.NameIdentifier != "" {
				name.NameIdentifiers = []NameIdentifier{{
					NameIdentifier:       p.Person.NameIdentifier,
					NameIdentifierScheme: p.Person.NameIdentifierScheme,
					SchemeURI:            p.Person.SchemeURI,
				}}
			}
		}
	case resource.KindInstitution:
		name.NameType = "Organizational"
		if p.Institution != nil && p.Institution.NameIdentifier != "" {
			name.NameIdentifiers = []NameIdentifier{{
				NameIdentifier:       p.Institution.NameIdentifier,
				NameIdentifierScheme: p.Institution.NameIdentifierScheme,
				SchemeURI:            p.Institution.SchemeURI,
			}}
		}
	}

	if len(affiliations) > 0 {
		affs := make([]Affiliation, 0, len(affiliations))
		for _, a := range affiliations {
			affs = append(affs, Affiliation{
				Name:                        a.Name,
				AffiliationIdentifier:       a.Identifier,
				AffiliationIdentifierScheme: a.IdentifierScheme,
				SchemeURI:                   a.SchemeURI,
			})
		}
		name.Affiliation = affs
	}

	return name
}

// Affiliation is the structured affiliation shape used on export.
type Affiliation struct {
	Name                        string `json:"name"`
	AffiliationIdentifier       string `json:"affiliationIdentifier,omitempty"`
	AffiliationIdentifierScheme string `json:"affiliationIdentifierScheme,omitempty"`
	SchemeURI                   string `json:"schemeUri,omitempty"`
}

func (e *Exporter) exportPublisher(p *resource.Publisher) *Publisher {
	if p == nil {
		p = e.registry.DefaultPublisher()
	}
	if p == nil {
		fallback := fallbackPublisher
		return &fallback
	}
	return &Publisher{
		Name:                      p.Name,
		PublisherIdentifier:       p.Identifier,
		PublisherIdentifierScheme: p.IdentifierScheme,
		SchemeURI:                 p.SchemeURI,
		Lang:                      p.Language,
	}
}

// exportIdentifiers lists the DOI plus any IGSNs of owned physical
// samples.
func exportIdentifiers(r *resource.Resource) []Identifier {
	var ids []Identifier
	if r.DOI != "" {
		ids = append(ids, Identifier{Identifier: r.DOI, IdentifierType: "DOI"})
	}
	for _, s := range r.PhysicalSamples {
		if s.IGSN != "" {
			ids = append(ids, Identifier{Identifier: s.IGSN, IdentifierType: "IGSN"})
		}
	}
	return ids
}

func exportGeoLocation(g resource.GeoLocation) GeoLocation {
	loc := GeoLocation{GeoLocationPlace: g.Place}
	if g.PointLongitude != nil && g.PointLatitude != nil {
		loc.GeoLocationPoint = &GeoLocationPoint{
			PointLongitude: *g.PointLongitude,
			PointLatitude:  *g.PointLatitude,
		}
	}
	if g.WestBoundLongitude != nil && g.EastBoundLongitude != nil &&
		g.SouthBoundLatitude != nil && g.NorthBoundLatitude != nil {
		loc.GeoLocationBox = &GeoLocationBox{
			WestBoundLongitude: *g.WestBoundLongitude,
			EastBoundLongitude: *g.EastBoundLongitude,
			SouthBoundLatitude: *g.SouthBoundLatitude,
			NorthBoundLatitude: *g.NorthBoundLatitude,
		}
	}
	return loc
}
