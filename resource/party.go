package resource

import (
	"strings"

	"github.com/google/uuid"
)

// PartyKind discriminates the two agent shapes a creator or contributor
// can take.
type PartyKind string

const (
	KindPerson      PartyKind = "person"
	KindInstitution PartyKind = "institution"
)

// Person is an identifier-bearing reference record reused across
// resources. NameIdentifier holds the canonical https ORCID form.
type Person struct {
	ID                   uuid.UUID
	GivenName            string
	FamilyName           string
	NameIdentifier       string
	NameIdentifierScheme string
	SchemeURI            string
}

// Institution is the organizational counterpart of Person, identified by
// a canonical ROR URL when one is known.
type Institution struct {
	ID                   uuid.UUID
	Name                 string
	NameIdentifier       string
	NameIdentifierScheme string
	SchemeURI            string
}

// Party is a tagged variant over Person and Institution. Exactly one of
// the two pointers is set, matching Kind.
type Party struct {
	Kind        PartyKind
	Person      *Person
	Institution *Institution
}

// PersonParty wraps a person in a Party.
func PersonParty(p *Person) Party {
	return Party{Kind: KindPerson, Person: p}
}

// InstitutionParty wraps an institution in a Party.
func InstitutionParty(i *Institution) Party {
	return Party{Kind: KindInstitution, Institution: i}
}

// DisplayName returns "Family, Given" for a person (the given segment is
// dropped when absent) and the plain name for an institution.
func (p Party) DisplayName() string {
	switch p.Kind {
	case KindPerson:
		if p.Person == nil {
			return ""
		}
		name := p.Person.FamilyName
		if p.Person.GivenName != "" {
			name += ", " + p.Person.GivenName
		}
		return name
	case KindInstitution:
		if p.Institution == nil {
			return ""
		}
		return p.Institution.Name
	}
	return ""
}

// Identifier returns the party's canonical name identifier, if any.
func (p Party) Identifier() string {
	switch p.Kind {
	case KindPerson:
		if p.Person != nil {
			return p.Person.NameIdentifier
		}
	case KindInstitution:
		if p.Institution != nil {
			return p.Institution.NameIdentifier
		}
	}
	return ""
}

// Affiliation is an owned row under a creator or contributor. The set is
// replaced wholesale on every sync.
type Affiliation struct {
	Name             string
	Identifier       string
	IdentifierScheme string
	SchemeURI        string
}

// Creator is a position-ordered author entry.
type Creator struct {
	Party        Party
	Position     int
	Affiliations []Affiliation
}

// ContributorTypeOther is the fallback for unrecognized contributor
// types.
const ContributorTypeOther = "Other"

// Contributor is a creator plus a DataCite contributorType.
type Contributor struct {
	Party        Party
	Type         string
	Position     int
	Affiliations []Affiliation
}

// ReplaceAffiliations swaps out the full affiliation set and returns the
// prior one. An empty new list leaves the owner with zero affiliations.
func ReplaceAffiliations(owned *[]Affiliation, next []Affiliation) []Affiliation {
	prior := *owned
	*owned = next
	return prior
}

// NormalizePersonName splits a "Family, Given" display name into its
// components. Names without a comma are treated as family-only.
func NormalizePersonName(name string) (family, given string) {
	name = strings.TrimSpace(name)
	if idx := strings.Index(name, ","); idx >= 0 {
		return strings.TrimSpace(name[:idx]), strings.TrimSpace(name[idx+1:])
	}
	return name, ""
}
