package datacite

import (
	"fmt"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/McNamara84/ernie-go/refdata"
)

// Violation is one schema rule failure. Path is a JSON-pointer into the
// attributes object, Keyword names the violated rule class (required,
// type, enum, minItems), and Context carries the offending value when
// one exists.
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Keyword string `json:"keyword"`
	Context any    `json:"context,omitempty"`
}

// ValidationFailure aggregates every violation found in one pass over a
// document, tagged with the schema version the rules encode.
type ValidationFailure struct {
	SchemaVersion string      `json:"schemaVersion"`
	Violations    []Violation `json:"violations"`
}

func (f *ValidationFailure) Error() string {
	if len(f.Violations) == 1 {
		return fmt.Sprintf("schema %s validation failed: %s: %s",
			f.SchemaVersion, f.Violations[0].Path, f.Violations[0].Message)
	}
	return fmt.Sprintf("schema %s validation failed with %d violations",
		f.SchemaVersion, len(f.Violations))
}

// Validator checks DataCite JSON documents against the 4.6 rule set
// using the embedded controlled vocabularies.
type Validator struct {
	registry *refdata.Registry
}

// NewValidator creates a validator over the given vocabulary registry.
func NewValidator(registry *refdata.Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate checks a raw JSON document, either the REST envelope or bare
// attributes, and returns a ValidationFailure listing every violation.
// Strict mode additionally requires a non-empty identifiers array, the
// readiness bar for registry submission.
func (v *Validator) Validate(data []byte, strict bool) error {
	violations := v.collect(data, strict)
	if len(violations) == 0 {
		return nil
	}
	return &ValidationFailure{SchemaVersion: Version, Violations: violations}
}

// IsValid is the non-throwing variant of Validate. When errorsOut is
// non-nil it receives the full violation list.
func (v *Validator) IsValid(data []byte, errorsOut *[]Violation, strict bool) bool {
	violations := v.collect(data, strict)
	if errorsOut != nil {
		*errorsOut = violations
	}
	return len(violations) == 0
}

func (v *Validator) collect(data []byte, strict bool) []Violation {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return []Violation{{
			Path:    "/",
			Message: "document is not a JSON object",
			Keyword: "type",
		}}
	}
	attrs := unwrapAttributes(raw)

	var violations []Violation
	add := func(path, message, keyword string, context any) {
		violations = append(violations, Violation{
			Path: path, Message: message, Keyword: keyword, Context: context,
		})
	}

	v.checkCreators(attrs, add)
	v.checkTitles(attrs, add)
	checkPublisher(attrs, add)
	checkPublicationYear(attrs, add)
	v.checkTypes(attrs, add)
	checkSchemaVersion(attrs, add)
	v.checkContributors(attrs, add)
	v.checkDates(attrs, add)
	v.checkRelatedIdentifiers(attrs, add)
	v.checkDescriptions(attrs, add)
	checkSubjects(attrs, add)

	if strict {
		ids, ok := attrs["identifiers"].([]any)
		if !ok || len(ids) == 0 {
			add("/identifiers", "identifiers is required for registration", "required", nil)
		}
	}

	return violations
}

// unwrapAttributes accepts either {data:{attributes:{...}}} or the bare
// attributes object.
func unwrapAttributes(raw map[string]any) map[string]any {
	envelope, ok := raw["data"].(map[string]any)
	if !ok {
		return raw
	}
	attrs, ok := envelope["attributes"].(map[string]any)
	if !ok {
		return raw
	}
	return attrs
}

type addFunc func(path, message, keyword string, context any)

func (v *Validator) checkCreators(attrs map[string]any, add addFunc) {
	raw, present := attrs["creators"]
	if !present {
		add("/creators", "creators is required", "required", nil)
		return
	}
	creators, ok := raw.([]any)
	if !ok {
		add("/creators", "creators must be an array", "type", raw)
		return
	}
	if len(creators) == 0 {
		add("/creators", "at least one creator is required", "minItems", nil)
		return
	}
	for i, c := range creators {
		record, ok := c.(map[string]any)
		if !ok {
			add(fmt.Sprintf("/creators/%d", i), "creator must be an object", "type", c)
			continue
		}
		if stringField(record, "name") == "" {
			add(fmt.Sprintf("/creators/%d/name", i), "creator name is required", "required", nil)
		}
		if nameType := stringField(record, "nameType"); nameType != "" && !v.registry.IsNameType(nameType) {
			add(fmt.Sprintf("/creators/%d/nameType", i), "unknown nameType", "enum", nameType)
		}
	}
}

func (v *Validator) checkTitles(attrs map[string]any, add addFunc) {
	raw, present := attrs["titles"]
	if !present {
		add("/titles", "titles is required", "required", nil)
		return
	}
	titles, ok := raw.([]any)
	if !ok {
		add("/titles", "titles must be an array", "type", raw)
		return
	}
	if len(titles) == 0 {
		add("/titles", "at least one title is required", "minItems", nil)
		return
	}
	for i, t := range titles {
		record, ok := t.(map[string]any)
		if !ok {
			add(fmt.Sprintf("/titles/%d", i), "title must be an object", "type", t)
			continue
		}
		if strings.TrimSpace(stringField(record, "title")) == "" {
			add(fmt.Sprintf("/titles/%d/title", i), "title text is required", "required", nil)
		}
		if titleType := stringField(record, "titleType"); titleType != "" && !v.registry.IsTitleType(titleType) {
			add(fmt.Sprintf("/titles/%d/titleType", i), "unknown titleType", "enum", titleType)
		}
	}
}

// checkPublisher accepts both the 4.6 structured object and the legacy
// bare-string form.
func checkPublisher(attrs map[string]any, add addFunc) {
	raw, present := attrs["publisher"]
	if !present {
		add("/publisher", "publisher is required", "required", nil)
		return
	}
	switch p := raw.(type) {
	case string:
		if strings.TrimSpace(p) == "" {
			add("/publisher", "publisher must not be empty", "required", nil)
		}
	case map[string]any:
		if strings.TrimSpace(stringField(p, "name")) == "" {
			add("/publisher/name", "publisher name is required", "required", nil)
		}
	default:
		add("/publisher", "publisher must be a string or an object", "type", raw)
	}
}

func checkPublicationYear(attrs map[string]any, add addFunc) {
	raw, present := attrs["publicationYear"]
	if !present {
		add("/publicationYear", "publicationYear is required", "required", nil)
		return
	}
	year, ok := raw.(float64)
	if !ok || year != float64(int(year)) {
		add("/publicationYear", "publicationYear must be an integer", "type", raw)
		return
	}
	if year < 1000 || year > 9999 {
		add("/publicationYear", "publicationYear must be a four-digit year", "type", raw)
	}
}

func (v *Validator) checkTypes(attrs map[string]any, add addFunc) {
	raw, present := attrs["types"]
	if !present {
		add("/types", "types is required", "required", nil)
		return
	}
	types, ok := raw.(map[string]any)
	if !ok {
		add("/types", "types must be an object", "type", raw)
		return
	}
	general := stringField(types, "resourceTypeGeneral")
	if general == "" {
		add("/types/resourceTypeGeneral", "resourceTypeGeneral is required", "required", nil)
		return
	}
	if !v.registry.IsResourceTypeGeneral(general) {
		add("/types/resourceTypeGeneral", "unknown resourceTypeGeneral", "enum", general)
	}
}

// checkSchemaVersion requires the kernel namespace tag; the registry
// rejects submissions without it.
func checkSchemaVersion(attrs map[string]any, add addFunc) {
	raw, present := attrs["schemaVersion"]
	if !present {
		add("/schemaVersion", "schemaVersion is required", "required", nil)
		return
	}
	version, ok := raw.(string)
	if !ok || strings.TrimSpace(version) == "" {
		add("/schemaVersion", "schemaVersion is required", "required", raw)
		return
	}
	if version != Namespace {
		add("/schemaVersion", "schemaVersion must be "+Namespace, "enum", version)
	}
}

func (v *Validator) checkContributors(attrs map[string]any, add addFunc) {
	contributors, ok := attrs["contributors"].([]any)
	if !ok {
		return
	}
	for i, c := range contributors {
		record, ok := c.(map[string]any)
		if !ok {
			add(fmt.Sprintf("/contributors/%d", i), "contributor must be an object", "type", c)
			continue
		}
		if stringField(record, "name") == "" {
			add(fmt.Sprintf("/contributors/%d/name", i), "contributor name is required", "required", nil)
		}
		contribType := stringField(record, "contributorType")
		if contribType == "" {
			add(fmt.Sprintf("/contributors/%d/contributorType", i), "contributorType is required", "required", nil)
		} else if !v.registry.IsContributorType(contribType) {
			add(fmt.Sprintf("/contributors/%d/contributorType", i), "unknown contributorType", "enum", contribType)
		}
	}
}

func (v *Validator) checkDates(attrs map[string]any, add addFunc) {
	entries, ok := attrs["dates"].([]any)
	if !ok {
		return
	}
	for i, d := range entries {
		record, ok := d.(map[string]any)
		if !ok {
			add(fmt.Sprintf("/dates/%d", i), "date must be an object", "type", d)
			continue
		}
		dateType := stringField(record, "dateType")
		if dateType == "" {
			add(fmt.Sprintf("/dates/%d/dateType", i), "dateType is required", "required", nil)
		} else if !v.registry.IsDateType(dateType) {
			add(fmt.Sprintf("/dates/%d/dateType", i), "unknown dateType", "enum", dateType)
		}
	}
}

func (v *Validator) checkRelatedIdentifiers(attrs map[string]any, add addFunc) {
	entries, ok := attrs["relatedIdentifiers"].([]any)
	if !ok {
		return
	}
	for i, rel := range entries {
		record, ok := rel.(map[string]any)
		if !ok {
			add(fmt.Sprintf("/relatedIdentifiers/%d", i), "relatedIdentifier must be an object", "type", rel)
			continue
		}
		relType := stringField(record, "relationType")
		if relType == "" {
			add(fmt.Sprintf("/relatedIdentifiers/%d/relationType", i), "relationType is required", "required", nil)
		} else if !v.registry.IsRelationType(relType) {
			add(fmt.Sprintf("/relatedIdentifiers/%d/relationType", i), "unknown relationType", "enum", relType)
		}
		idType := stringField(record, "relatedIdentifierType")
		if idType == "" {
			add(fmt.Sprintf("/relatedIdentifiers/%d/relatedIdentifierType", i), "relatedIdentifierType is required", "required", nil)
		} else if !v.registry.IsRelatedIdentifierType(idType) {
			add(fmt.Sprintf("/relatedIdentifiers/%d/relatedIdentifierType", i), "unknown relatedIdentifierType", "enum", idType)
		}
	}
}

func (v *Validator) checkDescriptions(attrs map[string]any, add addFunc) {
	entries, ok := attrs["descriptions"].([]any)
	if !ok {
		return
	}
	for i, d := range entries {
		record, ok := d.(map[string]any)
		if !ok {
			continue
		}
		descType := stringField(record, "descriptionType")
		if descType == "" {
			add(fmt.Sprintf("/descriptions/%d/descriptionType", i), "descriptionType is required", "required", nil)
		} else if !v.registry.IsDescriptionType(descType) {
			add(fmt.Sprintf("/descriptions/%d/descriptionType", i), "unknown descriptionType", "enum", descType)
		}
	}
}

func checkSubjects(attrs map[string]any, add addFunc) {
	entries, ok := attrs["subjects"].([]any)
	if !ok {
		return
	}
	for i, s := range entries {
		record, ok := s.(map[string]any)
		if !ok {
			add(fmt.Sprintf("/subjects/%d", i), "subject must be an object", "type", s)
			continue
		}
		if strings.TrimSpace(stringField(record, "subject")) == "" {
			add(fmt.Sprintf("/subjects/%d/subject", i), "subject text is required", "required", nil)
		}
	}
}

func stringField(record map[string]any, key string) string {
	s, _ := record[key].(string)
	return s
}
