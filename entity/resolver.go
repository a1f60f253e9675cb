package entity

import (
	"fmt"

	"github.com/McNamara84/ernie-go/identifier"
	"github.com/McNamara84/ernie-go/resource"
)

// ReferenceStore is the slice of persistence the resolver needs for
// find-or-create on identifier-bearing entities.
type ReferenceStore interface {
	PersonByIdentifier(orcid string) (*resource.Person, error)
	PersonByName(family, given string) (*resource.Person, error)
	SavePerson(p *resource.Person) error

	InstitutionByIdentifier(ror string) (*resource.Institution, error)
	InstitutionByName(name string) (*resource.Institution, error)
	SaveInstitution(i *resource.Institution) error

	PublisherByName(name string) (*resource.Publisher, error)
	SavePublisher(p *resource.Publisher) error
}

// Resolver finds or creates reference entities so repeated imports with
// the same canonical identifiers never create duplicates.
type Resolver struct {
	store  ReferenceStore
	labels *identifier.LabelResolver
}

// NewResolver creates a resolver on top of the given store.
func NewResolver(store ReferenceStore) *Resolver {
	return &Resolver{store: store}
}

// WithLabels attaches a label dataset used to name institutions that
// arrive identifier-only.
func (r *Resolver) WithLabels(labels *identifier.LabelResolver) *Resolver {
	r.labels = labels
	return r
}

// ResolvePerson returns the stored person for the given name and raw
// ORCID, creating one when neither the canonical identifier nor the
// exact name matches an existing record. A known person picked up by
// name gains the ORCID if it arrived with one.
func (r *Resolver) ResolvePerson(given, family, rawORCID string) (*resource.Person, error) {
	canonical := identifier.CanonicalORCID(rawORCID)

	if canonical != "" {
		p, err := r.store.PersonByIdentifier(canonical)
		if err != nil {
			return nil, fmt.Errorf("person lookup by ORCID: %w", err)
		}
		if p != nil {
			return p, nil
		}
	}

	p, err := r.store.PersonByName(family, given)
	if err != nil {
		return nil, fmt.Errorf("person lookup by name: %w", err)
	}
	if p != nil {
		if canonical != "" && p.NameIdentifier == "" {
			p.NameIdentifier = canonical
			p.NameIdentifierScheme = identifier.ORCIDScheme
			p.SchemeURI = identifier.ORCIDSchemeURI
			if err := r.store.SavePerson(p); err != nil {
				return nil, fmt.Errorf("updating person identifier: %w", err)
			}
		}
		return p, nil
	}

	p = &resource.Person{
		GivenName:  given,
		FamilyName: family,
	}
	if canonical != "" {
		p.NameIdentifier = canonical
		p.NameIdentifierScheme = identifier.ORCIDScheme
		p.SchemeURI = identifier.ORCIDSchemeURI
	}
	if err := r.store.SavePerson(p); err != nil {
		return nil, fmt.Errorf("creating person: %w", err)
	}
	return p, nil
}

// ResolveInstitution is the organizational analogue of ResolvePerson,
// keyed by canonical ROR and then by exact name.
func (r *Resolver) ResolveInstitution(name, rawROR string) (*resource.Institution, error) {
	canonical := identifier.CanonicalROR(rawROR)

	if canonical != "" {
		inst, err := r.store.InstitutionByIdentifier(canonical)
		if err != nil {
			return nil, fmt.Errorf("institution lookup by ROR: %w", err)
		}
		if inst != nil {
			return inst, nil
		}
	}

	inst, err := r.store.InstitutionByName(name)
	if err != nil {
		return nil, fmt.Errorf("institution lookup by name: %w", err)
	}
	if inst != nil {
		if canonical != "" && inst.NameIdentifier == "" {
			inst.NameIdentifier = canonical
			inst.NameIdentifierScheme = identifier.RORScheme
			inst.SchemeURI = identifier.RORSchemeURI
			if err := r.store.SaveInstitution(inst); err != nil {
				return nil, fmt.Errorf("updating institution identifier: %w", err)
			}
		}
		return inst, nil
	}

	if name == "" && canonical != "" && r.labels != nil {
		if resolved := r.labels.ResolveWithFallback(canonical, ""); resolved != nil {
			name = resolved.Label
		}
	}

	inst = &resource.Institution{Name: name}
	if canonical != "" {
		inst.NameIdentifier = canonical
		inst.NameIdentifierScheme = identifier.RORScheme
		inst.SchemeURI = identifier.RORSchemeURI
	}
	if err := r.store.SaveInstitution(inst); err != nil {
		return nil, fmt.Errorf("creating institution: %w", err)
	}
	return inst, nil
}

// ResolvePublisher reuses a publisher by exact name or creates one.
func (r *Resolver) ResolvePublisher(name string) (*resource.Publisher, error) {
	p, err := r.store.PublisherByName(name)
	if err != nil {
		return nil, fmt.Errorf("publisher lookup: %w", err)
	}
	if p != nil {
		return p, nil
	}
	p = &resource.Publisher{Name: name}
	if err := r.store.SavePublisher(p); err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}
	return p, nil
}

// SamePerson decides whether two person records describe the same
// individual: matching canonical ORCIDs when both carry one, otherwise
// an exact (case-sensitive) family and given name match when at least
// one side has no identifier. URL and bare-ID ORCID representations are
// normalized before comparison.
func SamePerson(a, b *resource.Person) bool {
	if a == nil || b == nil {
		return false
	}
	orcidA := identifier.CanonicalORCID(a.NameIdentifier)
	orcidB := identifier.CanonicalORCID(b.NameIdentifier)
	if orcidA != "" && orcidB != "" {
		return orcidA == orcidB
	}
	return a.FamilyName == b.FamilyName && a.GivenName == b.GivenName
}
