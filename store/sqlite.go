package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/segmentio/encoding/json"

	"github.com/McNamara84/ernie-go/resource"
)

const schema = `
CREATE TABLE IF NOT EXISTS persons (
	id TEXT PRIMARY KEY,
	given_name TEXT NOT NULL DEFAULT '',
	family_name TEXT NOT NULL DEFAULT '',
	name_identifier TEXT NOT NULL DEFAULT '',
	name_identifier_scheme TEXT NOT NULL DEFAULT '',
	scheme_uri TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_persons_identifier ON persons (name_identifier);

CREATE TABLE IF NOT EXISTS institutions (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	name_identifier TEXT NOT NULL DEFAULT '',
	name_identifier_scheme TEXT NOT NULL DEFAULT '',
	scheme_uri TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_institutions_identifier ON institutions (name_identifier);

CREATE TABLE IF NOT EXISTS publishers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	identifier TEXT NOT NULL DEFAULT '',
	identifier_scheme TEXT NOT NULL DEFAULT '',
	scheme_uri TEXT NOT NULL DEFAULT '',
	language TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS resources (
	rowid INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT UNIQUE NOT NULL,
	doi TEXT NOT NULL DEFAULT '',
	publication_year INTEGER NOT NULL DEFAULT 0,
	resource_type TEXT NOT NULL DEFAULT '',
	metadata TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resources_doi ON resources (doi);
`

// SQLite is a Store backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (and if needed initializes) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) PersonByIdentifier(orcid string) (*resource.Person, error) {
	if orcid == "" {
		return nil, nil
	}
	return s.scanPerson(s.db.QueryRow(
		`SELECT id, given_name, family_name, name_identifier, name_identifier_scheme, scheme_uri
		 FROM persons WHERE name_identifier = ? LIMIT 1`, orcid))
}

func (s *SQLite) PersonByName(family, given string) (*resource.Person, error) {
	return s.scanPerson(s.db.QueryRow(
		`SELECT id, given_name, family_name, name_identifier, name_identifier_scheme, scheme_uri
		 FROM persons WHERE family_name = ? AND given_name = ? LIMIT 1`, family, given))
}

func (s *SQLite) scanPerson(row *sql.Row) (*resource.Person, error) {
	var p resource.Person
	var id string
	err := row.Scan(&id, &p.GivenName, &p.FamilyName, &p.NameIdentifier, &p.NameIdentifierScheme, &p.SchemeURI)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying person: %w", err)
	}
	p.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parsing person id: %w", err)
	}
	return &p, nil
}

func (s *SQLite) SavePerson(p *resource.Person) error {
	ensureID(&p.ID)
	_, err := s.db.Exec(
		`INSERT INTO persons (id, given_name, family_name, name_identifier, name_identifier_scheme, scheme_uri)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 given_name = excluded.given_name,
		 family_name = excluded.family_name,
		 name_identifier = excluded.name_identifier,
		 name_identifier_scheme = excluded.name_identifier_scheme,
		 scheme_uri = excluded.scheme_uri`,
		p.ID.String(), p.GivenName, p.FamilyName, p.NameIdentifier, p.NameIdentifierScheme, p.SchemeURI)
	if err != nil {
		return fmt.Errorf("saving person: %w", err)
	}
	return nil
}

func (s *SQLite) InstitutionByIdentifier(ror string) (*resource.Institution, error) {
	if ror == "" {
		return nil, nil
	}
	return s.scanInstitution(s.db.QueryRow(
		`SELECT id, name, name_identifier, name_identifier_scheme, scheme_uri
		 FROM institutions WHERE name_identifier = ? LIMIT 1`, ror))
}

func (s *SQLite) InstitutionByName(name string) (*resource.Institution, error) {
	return s.scanInstitution(s.db.QueryRow(
		`SELECT id, name, name_identifier, name_identifier_scheme, scheme_uri
		 FROM institutions WHERE name = ? LIMIT 1`, name))
}

func (s *SQLite) scanInstitution(row *sql.Row) (*resource.Institution, error) {
	var inst resource.Institution
	var id string
	err := row.Scan(&id, &inst.Name, &inst.NameIdentifier, &inst.NameIdentifierScheme, &inst.SchemeURI)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying institution: %w", err)
	}
	inst.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parsing institution id: %w", err)
	}
	return &inst, nil
}

func (s *SQLite) SaveInstitution(i *resource.Institution) error {
	ensureID(&i.ID)
	_, err := s.db.Exec(
		`INSERT INTO institutions (id, name, name_identifier, name_identifier_scheme, scheme_uri)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 name = excluded.name,
		 name_identifier = excluded.name_identifier,
		 name_identifier_scheme = excluded.name_identifier_scheme,
		 scheme_uri = excluded.scheme_uri`,
		i.ID.String(), i.Name, i.NameIdentifier, i.NameIdentifierScheme, i.SchemeURI)
	if err != nil {
		return fmt.Errorf("saving institution: %w", err)
	}
	return nil
}

func (s *SQLite) PublisherByName(name string) (*resource.Publisher, error) {
	var p resource.Publisher
	var id string
	err := s.db.QueryRow(
		`SELECT id, name, identifier, identifier_scheme, scheme_uri, language
		 FROM publishers WHERE name = ? LIMIT 1`, name).
		Scan(&id, &p.Name, &p.Identifier, &p.IdentifierScheme, &p.SchemeURI, &p.Language)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying publisher: %w", err)
	}
	p.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parsing publisher id: %w", err)
	}
	return &p, nil
}

func (s *SQLite) SavePublisher(p *resource.Publisher) error {
	ensureID(&p.ID)
	_, err := s.db.Exec(
		`INSERT INTO publishers (id, name, identifier, identifier_scheme, scheme_uri, language)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 name = excluded.name,
		 identifier = excluded.identifier,
		 identifier_scheme = excluded.identifier_scheme,
		 scheme_uri = excluded.scheme_uri,
		 language = excluded.language`,
		p.ID.String(), p.Name, p.Identifier, p.IdentifierScheme, p.SchemeURI, p.Language)
	if err != nil {
		return fmt.Errorf("saving publisher: %w", err)
	}
	return nil
}

func (s *SQLite) SaveResource(r *resource.Resource) error {
	ensureID(&r.ID)
	metadata, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding resource metadata: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO resources (id, doi, publication_year, resource_type, metadata)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 doi = excluded.doi,
		 publication_year = excluded.publication_year,
		 resource_type = excluded.resource_type,
		 metadata = excluded.metadata`,
		r.ID.String(), r.DOI, r.PublicationYear, r.ResourceType, string(metadata))
	if err != nil {
		return fmt.Errorf("saving resource: %w", err)
	}
	return nil
}

func (s *SQLite) ResourceByDOI(doi string) (*resource.Resource, error) {
	if doi == "" {
		return nil, nil
	}
	var metadata string
	err := s.db.QueryRow(`SELECT metadata FROM resources WHERE doi = ? LIMIT 1`, doi).Scan(&metadata)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying resource: %w", err)
	}
	var r resource.Resource
	if err := json.Unmarshal([]byte(metadata), &r); err != nil {
		return nil, fmt.Errorf("decoding resource metadata: %w", err)
	}
	return &r, nil
}

func (s *SQLite) DOIExists(doi string, excludeID uuid.UUID) (bool, error) {
	if doi == "" {
		return false, nil
	}
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM resources WHERE doi = ? AND id != ?`,
		doi, excludeID.String()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking DOI existence: %w", err)
	}
	return count > 0, nil
}

func (s *SQLite) LastAssignedDOI() (string, error) {
	var doi string
	err := s.db.QueryRow(
		`SELECT doi FROM resources WHERE doi != '' ORDER BY rowid DESC LIMIT 1`).Scan(&doi)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying last DOI: %w", err)
	}
	return doi, nil
}
