// Package entity parses and deduplicates people, institutions, and
// affiliations coming out of loosely-typed DataCite payloads.
package entity

import (
	"strings"

	"github.com/McNamara84/ernie-go/identifier"
	"github.com/McNamara84/ernie-go/resource"
)

// ParseAffiliations converts a loosely-typed affiliation list (as decoded
// from JSON) into clean affiliation records, preserving order. Entries
// that are not record-shaped are dropped, as are entries whose trimmed
// name and identifier are both empty. A name that carries a ROR URL
// inline has the identifier extracted and the URL removed from the name.
// Identifier schemes other than ROR pass through with an empty scheme.
func ParseAffiliations(raw any) []resource.Affiliation {
	entries, ok := raw.([]any)
	if !ok {
		return nil
	}

	var result []resource.Affiliation
	for _, entry := range entries {
		record, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		aff := parseAffiliation(record)
		if aff.Name == "" && aff.Identifier == "" {
			continue
		}
		result = append(result, aff)
	}
	return result
}

func parseAffiliation(record map[string]any) resource.Affiliation {
	aff := resource.Affiliation{
		Name:             trimmedString(record, "name"),
		Identifier:       trimmedString(record, "affiliationIdentifier"),
		IdentifierScheme: trimmedString(record, "affiliationIdentifierScheme"),
		SchemeURI:        trimmedString(record, "schemeUri"),
	}

	// A ROR URL pasted into the name field becomes the identifier; the
	// name keeps only the surrounding text.
	if ror, remainder := identifier.ExtractRORFromText(aff.Name); ror != "" {
		aff.Name = remainder
		if aff.Identifier == "" {
			aff.Identifier = ror
		}
	}

	if canonical := identifier.CanonicalROR(aff.Identifier); canonical != "" {
		aff.Identifier = canonical
		aff.IdentifierScheme = identifier.RORScheme
		aff.SchemeURI = identifier.RORSchemeURI
	} else if !strings.EqualFold(aff.IdentifierScheme, identifier.RORScheme) {
		// Unrecognized scheme: keep the identifier but no scheme claim.
		aff.IdentifierScheme = ""
		aff.SchemeURI = ""
	}

	return aff
}

func trimmedString(record map[string]any, key string) string {
	if v, ok := record[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// SyncForCreator replaces the creator's affiliation set with the parsed
// list and returns the prior set. An empty parsed list clears the set.
func SyncForCreator(c *resource.Creator, raw any) []resource.Affiliation {
	return resource.ReplaceAffiliations(&c.Affiliations, ParseAffiliations(raw))
}

// SyncForContributor is SyncForCreator for contributors.
func SyncForContributor(c *resource.Contributor, raw any) []resource.Affiliation {
	return resource.ReplaceAffiliations(&c.Affiliations, ParseAffiliations(raw))
}
