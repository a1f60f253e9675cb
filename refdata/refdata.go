// Package refdata loads the controlled vocabularies and reference
// defaults the importer and validator consult.
package refdata

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/McNamara84/ernie-go/resource"
)

//go:embed data/*.yaml
var embedded embed.FS

// FallbackResourceTypeSlug is used when a resource type cannot be
// resolved against the vocabulary.
const FallbackResourceTypeSlug = "other"

type vocabularies struct {
	ResourceTypeGeneral   []string `yaml:"resource_type_general"`
	ContributorType       []string `yaml:"contributor_type"`
	RelationType          []string `yaml:"relation_type"`
	RelatedIdentifierType []string `yaml:"related_identifier_type"`
	DateType              []string `yaml:"date_type"`
	TitleType             []string `yaml:"title_type"`
	DescriptionType       []string `yaml:"description_type"`
	NameType              []string `yaml:"name_type"`
	FunderIdentifierType  []string `yaml:"funder_identifier_type"`
}

// Registry answers vocabulary membership questions and resolves
// reference defaults. It is immutable after construction apart from the
// optional default publisher.
type Registry struct {
	vocab vocabularies

	resourceTypeSlugs map[string]string // slug -> PascalCase value
	languages         map[string]string // ISO code -> name

	defaultPublisher *resource.Publisher
}

// NewRegistry loads the embedded vocabularies and language table.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		resourceTypeSlugs: map[string]string{},
		languages:         map[string]string{},
	}

	data, err := embedded.ReadFile("data/vocabularies.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading vocabularies: %w", err)
	}
	if err := yaml.Unmarshal(data, &r.vocab); err != nil {
		return nil, fmt.Errorf("parsing vocabularies: %w", err)
	}

	for _, value := range r.vocab.ResourceTypeGeneral {
		r.resourceTypeSlugs[Slugify(value)] = value
	}

	data, err = embedded.ReadFile("data/languages.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading languages: %w", err)
	}
	if err := yaml.Unmarshal(data, &r.languages); err != nil {
		return nil, fmt.Errorf("parsing languages: %w", err)
	}

	return r, nil
}

// Slugify converts a PascalCase vocabulary value to its kebab-case slug
// ("ConferencePaper" -> "conference-paper").
func Slugify(value string) string {
	var b strings.Builder
	for i, c := range value {
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(c - 'A' + 'a')
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// ResourceTypeBySlug resolves a kebab-case slug to its vocabulary value.
func (r *Registry) ResourceTypeBySlug(slug string) (string, bool) {
	value, ok := r.resourceTypeSlugs[slug]
	return value, ok
}

// IsResourceTypeGeneral reports vocabulary membership of a PascalCase
// resourceTypeGeneral value.
func (r *Registry) IsResourceTypeGeneral(value string) bool {
	return contains(r.vocab.ResourceTypeGeneral, value)
}

// IsContributorType reports vocabulary membership of a contributorType.
func (r *Registry) IsContributorType(value string) bool {
	return contains(r.vocab.ContributorType, value)
}

// IsRelationType reports vocabulary membership of a relationType.
func (r *Registry) IsRelationType(value string) bool {
	return contains(r.vocab.RelationType, value)
}

// IsRelatedIdentifierType reports membership of a relatedIdentifierType.
func (r *Registry) IsRelatedIdentifierType(value string) bool {
	return contains(r.vocab.RelatedIdentifierType, value)
}

// IsDateType reports vocabulary membership of a dateType.
func (r *Registry) IsDateType(value string) bool {
	return contains(r.vocab.DateType, value)
}

// IsTitleType reports vocabulary membership of a titleType.
func (r *Registry) IsTitleType(value string) bool {
	return contains(r.vocab.TitleType, value)
}

// IsDescriptionType reports vocabulary membership of a descriptionType.
func (r *Registry) IsDescriptionType(value string) bool {
	return contains(r.vocab.DescriptionType, value)
}

// IsNameType reports vocabulary membership of a nameType.
func (r *Registry) IsNameType(value string) bool {
	return contains(r.vocab.NameType, value)
}

// Language resolves an ISO code to its language name.
func (r *Registry) Language(code string) (string, bool) {
	name, ok := r.languages[strings.ToLower(strings.TrimSpace(code))]
	return name, ok
}

// SetDefaultPublisher installs the publisher used when an imported or
// exported resource has none of its own.
func (r *Registry) SetDefaultPublisher(p *resource.Publisher) {
	r.defaultPublisher = p
}

// DefaultPublisher returns the configured default publisher, or nil.
func (r *Registry) DefaultPublisher() *resource.Publisher {
	return r.defaultPublisher
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
