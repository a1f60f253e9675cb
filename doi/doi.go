// Package doi normalizes DOI strings and suggests the next free DOI in
// an institutional numbering series.
package doi

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidDOI is returned by strict-parse entry points when the input
// is not a DOI. Lookup-style functions return zero values instead.
var ErrInvalidDOI = errors.New("not a valid DOI")

var (
	resolverHostRegex = regexp.MustCompile(`(?i)^https?://(dx\.)?doi\.org/`)
	doiFormatRegex    = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)
)

// Normalize trims whitespace and strips a resolver host prefix
// (https://doi.org/, http://doi.org/, https://dx.doi.org/), matching
// the host case-insensitively. The DOI itself is left untouched.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	return resolverHostRegex.ReplaceAllString(trimmed, "")
}

// IsValidFormat reports whether the input normalizes to the
// 10.<registrant>/<suffix> shape. Scheme-prefixed forms like "doi:..."
// are rejected.
func IsValidFormat(raw string) bool {
	return doiFormatRegex.MatchString(Normalize(raw))
}

// Parse splits a DOI into registrant prefix and suffix, normalizing
// first. Unlike the lookup-style helpers it fails loudly on bad input.
func Parse(raw string) (prefix, suffix string, err error) {
	norm := Normalize(raw)
	if !doiFormatRegex.MatchString(norm) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidDOI, raw)
	}
	idx := strings.Index(norm, "/")
	return norm[:idx], norm[idx+1:], nil
}
