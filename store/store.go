// Package store provides persistence for identifier-bearing reference
// entities and registered resources. Lookups return nil on a miss; the
// error return is reserved for storage failures.
package store

import (
	"github.com/google/uuid"

	"github.com/McNamara84/ernie-go/resource"
)

// Store is the persistence surface the importer, entity resolver, and
// DOI suggestion engine work against.
type Store interface {
	// Person lookups and creation. Identifier lookups use the canonical
	// https ORCID form.
	PersonByIdentifier(orcid string) (*resource.Person, error)
	PersonByName(family, given string) (*resource.Person, error)
	SavePerson(p *resource.Person) error

	// Institution lookups and creation, keyed by canonical ROR URL.
	InstitutionByIdentifier(ror string) (*resource.Institution, error)
	InstitutionByName(name string) (*resource.Institution, error)
	SaveInstitution(i *resource.Institution) error

	// Publisher reuse is by exact name.
	PublisherByName(name string) (*resource.Publisher, error)
	SavePublisher(p *resource.Publisher) error

	// Resource persistence and DOI lookups.
	SaveResource(r *resource.Resource) error
	ResourceByDOI(doi string) (*resource.Resource, error)
	DOIExists(doi string, excludeID uuid.UUID) (bool, error)
	LastAssignedDOI() (string, error)
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
