package datacite

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/McNamara84/ernie-go/dates"
	"github.com/McNamara84/ernie-go/entity"
	"github.com/McNamara84/ernie-go/identifier"
	"github.com/McNamara84/ernie-go/refdata"
	"github.com/McNamara84/ernie-go/resource"
)

// ErrNoTitle is returned when a document carries no usable title text.
var ErrNoTitle = errors.New("document has no usable title")

// Transformer turns DataCite attributes into the internal resource
// graph. Reference entities (persons, institutions, publishers) go
// through the entity resolver so repeated imports reuse existing
// records instead of creating duplicates.
type Transformer struct {
	registry *refdata.Registry
	resolver *entity.Resolver
}

// NewTransformer wires a transformer to the vocabulary registry and the
// reference-entity resolver.
func NewTransformer(registry *refdata.Registry, resolver *entity.Resolver) *Transformer {
	return &Transformer{registry: registry, resolver: resolver}
}

// Transform builds a new Resource from DataCite attributes on behalf of
// the given curator. Unresolvable resource types, publishers, and
// languages degrade to defaults; a document without title text is the
// one structural problem that fails the import.
func (t *Transformer) Transform(attrs *Attributes, actorID uuid.UUID) (*resource.Resource, error) {
	r := &resource.Resource{
		ID:              uuid.New(),
		CreatedBy:       actorID,
		DOI:             strings.TrimSpace(attrs.DOI),
		PublicationYear: attrs.PublicationYear,
		Version:         attrs.Version,
	}

	r.Titles = importTitles(attrs.Titles)
	if main := r.MainTitle(); main == nil || strings.TrimSpace(main.Value) == "" {
		return nil, ErrNoTitle
	}

	r.ResourceType = t.importResourceType(attrs.Types.ResourceTypeGeneral)
	r.Language = t.importLanguage(attrs.Language)

	publisher, err := t.importPublisher(attrs.Publisher)
	if err != nil {
		return nil, err
	}
	r.Publisher = publisher

	r.Creators, err = t.importCreators(attrs.Creators)
	if err != nil {
		return nil, err
	}
	r.Contributors, err = t.importContributors(attrs.Contributors)
	if err != nil {
		return nil, err
	}

	r.Dates = importDates(attrs.Dates)
	if r.DateByType("Created") == nil {
		r.Dates = append(r.Dates, resource.ResourceDate{
			Value: time.Now().Format("2006-01-02"),
			Type:  "Created",
		})
	}

	for _, s := range attrs.Subjects {
		r.Subjects = append(r.Subjects, resource.Subject{
			Value:              s.Subject,
			Scheme:             s.SubjectScheme,
			SchemeURI:          s.SchemeURI,
			ValueURI:           s.ValueURI,
			ClassificationCode: s.ClassificationCode,
		})
	}

	for _, d := range attrs.Descriptions {
		r.Descriptions = append(r.Descriptions, resource.Description{
			Value:    d.Description,
			Type:     d.DescriptionType,
			Language: d.Lang,
		})
	}

	for _, rights := range attrs.RightsList {
		r.Rights = append(r.Rights, resource.Rights{
			Value:            rights.Rights,
			URI:              rights.RightsURI,
			Identifier:       rights.RightsIdentifier,
			IdentifierScheme: rights.RightsIdentifierScheme,
			SchemeURI:        rights.SchemeURI,
		})
	}

	for _, rel := range attrs.RelatedIdentifiers {
		r.RelatedIdentifiers = append(r.RelatedIdentifiers, resource.RelatedIdentifier{
			Value:          rel.RelatedIdentifier,
			IdentifierType: rel.RelatedIdentifierType,
			RelationType:   rel.RelationType,
			ResourceType:   rel.ResourceTypeGeneral,
		})
	}

	for _, f := range attrs.FundingReferences {
		r.FundingReferences = append(r.FundingReferences, resource.FundingReference{
			FunderName:           f.FunderName,
			FunderIdentifier:     f.FunderIdentifier,
			FunderIdentifierType: f.FunderIdentifierType,
			AwardNumber:          f.AwardNumber,
			AwardTitle:           f.AwardTitle,
			AwardURI:             f.AwardURI,
		})
	}

	r.Sizes = attrs.Sizes
	r.Formats = attrs.Formats

	for _, g := range attrs.GeoLocations {
		geo := resource.GeoLocation{Place: g.GeoLocationPlace}
		if g.GeoLocationPoint != nil {
			lon, lat := g.GeoLocationPoint.PointLongitude, g.GeoLocationPoint.PointLatitude
			geo.PointLongitude, geo.PointLatitude = &lon, &lat
		}
		if g.GeoLocationBox != nil {
			west, east := g.GeoLocationBox.WestBoundLongitude, g.GeoLocationBox.EastBoundLongitude
			south, north := g.GeoLocationBox.SouthBoundLatitude, g.GeoLocationBox.NorthBoundLatitude
			geo.WestBoundLongitude, geo.EastBoundLongitude = &west, &east
			geo.SouthBoundLatitude, geo.NorthBoundLatitude = &south, &north
		}
		r.GeoLocations = append(r.GeoLocations, geo)
	}

	for _, id := range attrs.Identifiers {
		if strings.EqualFold(id.IdentifierType, "IGSN") {
			r.PhysicalSamples = append(r.PhysicalSamples, resource.PhysicalSample{
				IGSN: id.Identifier,
			})
		}
	}

	return r, nil
}

func importTitles(titles []Title) []resource.Title {
	var result []resource.Title
	seenMain := false
	for i, t := range titles {
		if strings.TrimSpace(t.Title) == "" {
			continue
		}
		titleType := resource.TitleType(t.TitleType)
		// Only one untyped title can be the implicit main title; later
		// untyped entries are demoted.
		if titleType == resource.TitleMain {
			if seenMain {
				titleType = resource.TitleOther
			}
			seenMain = true
		}
		result = append(result, resource.Title{
			Value:    t.Title,
			Type:     titleType,
			Language: t.Lang,
			Position: i,
		})
	}
	return result
}

// importResourceType converts the PascalCase general type into the
// registry's kebab-case slug, falling back to "other" when the value is
// absent or not in the vocabulary.
func (t *Transformer) importResourceType(general string) string {
	slug := refdata.Slugify(general)
	if _, ok := t.registry.ResourceTypeBySlug(slug); ok {
		return slug
	}
	if general != "" {
		slog.Debug("unknown resourceTypeGeneral, using fallback", "value", general)
	}
	return refdata.FallbackResourceTypeSlug
}

func (t *Transformer) importLanguage(code string) string {
	if _, ok := t.registry.Language(code); ok {
		return code
	}
	return ""
}

func (t *Transformer) importPublisher(p *Publisher) (*resource.Publisher, error) {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return t.registry.DefaultPublisher(), nil
	}
	publisher, err := t.resolver.ResolvePublisher(strings.TrimSpace(p.Name))
	if err != nil {
		return nil, fmt.Errorf("resolving publisher: %w", err)
	}
	if publisher.Identifier == "" && p.PublisherIdentifier != "" {
		publisher.Identifier = p.PublisherIdentifier
		publisher.IdentifierScheme = p.PublisherIdentifierScheme
		publisher.SchemeURI = p.SchemeURI
		publisher.Language = p.Lang
	}
	return publisher, nil
}

func (t *Transformer) importCreators(names []Name) ([]resource.Creator, error) {
	var creators []resource.Creator
	for i, n := range names {
		party, err := t.importParty(n)
		if err != nil {
			return nil, fmt.Errorf("creator %d: %w", i, err)
		}
		if party == nil {
			continue
		}
		creator := resource.Creator{Party: *party, Position: i}
		entity.SyncForCreator(&creator, affiliationRecords(n.Affiliation))
		creators = append(creators, creator)
	}
	return creators, nil
}

func (t *Transformer) importContributors(names []Name) ([]resource.Contributor, error) {
	var contributors []resource.Contributor
	for i, n := range names {
		party, err := t.importParty(n)
		if err != nil {
			return nil, fmt.Errorf("contributor %d: %w", i, err)
		}
		if party == nil {
			continue
		}
		contribType := n.ContributorType
		if !t.registry.IsContributorType(contribType) {
			contribType = resource.ContributorTypeOther
		}
		contributor := resource.Contributor{Party: *party, Type: contribType, Position: i}
		entity.SyncForContributor(&contributor, affiliationRecords(n.Affiliation))
		contributors = append(contributors, contributor)
	}
	return contributors, nil
}

// importParty resolves one creators/contributors entry into a stored
// person or institution. Entries with no name material at all are
// skipped (nil, nil).
func (t *Transformer) importParty(n Name) (*resource.Party, error) {
	if n.NameType == "Organizational" {
		name := strings.TrimSpace(n.Name)
		if name == "" {
			return nil, nil
		}
		inst, err := t.resolver.ResolveInstitution(name, firstROR(n.NameIdentifiers))
		if err != nil {
			return nil, err
		}
		party := resource.InstitutionParty(inst)
		return &party, nil
	}

	given, family := strings.TrimSpace(n.GivenName), strings.TrimSpace(n.FamilyName)
	if given == "" && family == "" {
		family, given = resource.NormalizePersonName(n.Name)
	}
	if given == "" && family == "" {
		return nil, nil
	}
	person, err := t.resolver.ResolvePerson(given, family, firstORCID(n.NameIdentifiers))
	if err != nil {
		return nil, err
	}
	party := resource.PersonParty(person)
	return &party, nil
}

func firstORCID(ids []NameIdentifier) string {
	for _, id := range ids {
		if identifier.CanonicalORCID(id.NameIdentifier) != "" {
			return id.NameIdentifier
		}
	}
	return ""
}

func firstROR(ids []NameIdentifier) string {
	for _, id := range ids {
		if identifier.CanonicalROR(id.NameIdentifier) != "" {
			return id.NameIdentifier
		}
	}
	return ""
}

// affiliationRecords lifts the unmarshaled affiliation value into the
// shape the entity parser expects. The field arrives as []any after
// JSON decoding; legacy bare-string entries become name-only records.
func affiliationRecords(raw any) any {
	list, ok := raw.([]any)
	if !ok {
		return raw
	}
	normalized := make([]any, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			normalized = append(normalized, map[string]any{"name": s})
			continue
		}
		normalized = append(normalized, item)
	}
	return normalized
}

func importDates(entries []Date) []resource.ResourceDate {
	var result []resource.ResourceDate
	for _, d := range entries {
		raw := strings.TrimSpace(d.Date)
		if raw == "" || d.DateType == "" {
			continue
		}
		rd := resource.ResourceDate{Type: d.DateType, Information: d.DateInformation}
		if strings.Contains(raw, "/") {
			rd.StartValue, rd.EndValue = dates.ParseRange(raw)
			if rd.StartValue == "" && rd.EndValue == "" {
				continue
			}
		} else {
			rd.Value = dates.ParseDate(raw, false)
			if rd.Value == "" {
				continue
			}
		}
		result = append(result, rd)
	}
	return result
}
