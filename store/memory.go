package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/McNamara84/ernie-go/resource"
)

// Memory is an in-process Store used by tests and one-shot CLI runs.
type Memory struct {
	mu           sync.Mutex
	persons      []*resource.Person
	institutions []*resource.Institution
	publishers   []*resource.Publisher
	resources    []*resource.Resource
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) PersonByIdentifier(orcid string) (*resource.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if orcid == "" {
		return nil, nil
	}
	for _, p := range m.persons {
		if p.NameIdentifier == orcid {
			return p, nil
		}
	}
	return nil, nil
}

func (m *Memory) PersonByName(family, given string) (*resource.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.persons {
		if p.FamilyName == family && p.GivenName == given {
			return p, nil
		}
	}
	return nil, nil
}

func (m *Memory) SavePerson(p *resource.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ensureID(&p.ID)
	for i, existing := range m.persons {
		if existing.ID == p.ID {
			m.persons[i] = p
			return nil
		}
	}
	m.persons = append(m.persons, p)
	return nil
}

func (m *Memory) InstitutionByIdentifier(ror string) (*resource.Institution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ror == "" {
		return nil, nil
	}
	for _, inst := range m.institutions {
		if inst.NameIdentifier == ror {
			return inst, nil
		}
	}
	return nil, nil
}

func (m *Memory) InstitutionByName(name string) (*resource.Institution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inst := range m.institutions {
		if inst.Name == name {
			return inst, nil
		}
	}
	return nil, nil
}

func (m *Memory) SaveInstitution(i *resource.Institution) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ensureID(&i.ID)
	for idx, existing := range m.institutions {
		if existing.ID == i.ID {
			m.institutions[idx] = i
			return nil
		}
	}
	m.institutions = append(m.institutions, i)
	return nil
}

func (m *Memory) PublisherByName(name string) (*resource.Publisher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.publishers {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (m *Memory) SavePublisher(p *resource.Publisher) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ensureID(&p.ID)
	for i, existing := range m.publishers {
		if existing.ID == p.ID {
			m.publishers[i] = p
			return nil
		}
	}
	m.publishers = append(m.publishers, p)
	return nil
}

func (m *Memory) SaveResource(r *resource.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ensureID(&r.ID)
	for i, existing := range m.resources {
		if existing.ID == r.ID {
			m.resources[i] = r
			return nil
		}
	}
	m.resources = append(m.resources, r)
	return nil
}

func (m *Memory) ResourceByDOI(doi string) (*resource.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.resources {
		if r.DOI != "" && r.DOI == doi {
			return r, nil
		}
	}
	return nil, nil
}

func (m *Memory) DOIExists(doi string, excludeID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.resources {
		if r.DOI == "" || r.DOI != doi {
			continue
		}
		if excludeID != uuid.Nil && r.ID == excludeID {
			continue
		}
		return true, nil
	}
	return false, nil
}

// LastAssignedDOI returns the DOI of the most recently saved resource
// that has one, or "" when none is registered yet.
func (m *Memory) LastAssignedDOI() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.resources) - 1; i >= 0; i-- {
		if m.resources[i].DOI != "" {
			return m.resources[i].DOI, nil
		}
	}
	return "", nil
}
