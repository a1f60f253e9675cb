// Package identifier normalizes ORCID and ROR identifiers to their
// canonical https URL forms.
package identifier

import (
	"regexp"
	"strings"
)

// Canonical scheme URIs as DataCite serializes them.
const (
	ORCIDScheme    = "ORCID"
	ORCIDSchemeURI = "https://orcid.org/"
	RORScheme      = "ROR"
	RORSchemeURI   = "https://ror.org/"
)

var (
	orcidIDRegex = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dXx]$`)
	rorIDRegex   = regexp.MustCompile(`^[0-9a-zA-Z]{9}$`)

	orcidHostRegex = regexp.MustCompile(`(?i)^https?://orcid\.org/`)
	rorHostRegex   = regexp.MustCompile(`(?i)^https?://ror\.org/`)
)

// CanonicalORCID returns the canonical https ORCID URL for a bare ID or
// an http/https URL in any case. It returns "" when the input is empty
// or does not match the ORCID shape (four hyphenated 4-digit groups, the
// last of which may end in X).
func CanonicalORCID(raw string) string {
	id := strings.TrimSpace(raw)
	if id == "" {
		return ""
	}
	id = orcidHostRegex.ReplaceAllString(id, "")
	if !orcidIDRegex.MatchString(id) {
		return ""
	}
	return ORCIDSchemeURI + strings.ToLower(id)
}

// CanonicalROR returns the canonical https ROR URL for a bare ID or an
// http/https URL in any case. It returns "" when the input is empty or
// the ID is not a 9-character alphanumeric ROR identifier.
func CanonicalROR(raw string) string {
	id := strings.TrimSpace(raw)
	if id == "" {
		return ""
	}
	id = rorHostRegex.ReplaceAllString(id, "")
	if !rorIDRegex.MatchString(id) {
		return ""
	}
	return RORSchemeURI + strings.ToLower(id)
}

// IsORCIDURL reports whether the value resolves to a valid ORCID,
// without normalizing it.
func IsORCIDURL(raw string) bool {
	return CanonicalORCID(raw) != ""
}

// IsRORURL reports whether the value resolves to a valid ROR identifier.
func IsRORURL(raw string) bool {
	return CanonicalROR(raw) != ""
}

// Canonicalize detects the scheme of a raw identifier and returns its
// canonical form together with the scheme name. Unknown shapes yield
// ("", "").
func Canonicalize(raw string) (canonical, scheme string) {
	if c := CanonicalORCID(raw); c != "" {
		return c, ORCIDScheme
	}
	if c := CanonicalROR(raw); c != "" {
		return c, RORScheme
	}
	return "", ""
}

// ExtractRORFromText pulls the first ROR URL out of free text, returning
// the canonical identifier and the text with the URL removed. This is how
// affiliation names that carry their ROR inline get split. When no ROR
// URL is present the text comes back untouched with an empty identifier.
func ExtractRORFromText(text string) (canonical, remainder string) {
	loc := rorURLInTextRegex.FindStringIndex(text)
	if loc == nil {
		return "", text
	}
	canonical = CanonicalROR(text[loc[0]:loc[1]])
	remainder = strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
	remainder = strings.Trim(remainder, " ,;()")
	return canonical, strings.TrimSpace(remainder)
}

var rorURLInTextRegex = regexp.MustCompile(`(?i)https?://ror\.org/[0-9a-z]{9}`)
