package doi

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/McNamara84/ernie-go/resource"
)

// ErrExhausted is returned when every candidate in the retry window was
// already taken.
var ErrExhausted = errors.New("no free DOI found within the retry limit")

// defaultMaxAttempts bounds the collision-avoidance loop so pathological
// suffix data cannot spin the suggester forever.
const defaultMaxAttempts = 500

// Lookup is the slice of storage the suggester reads.
type Lookup interface {
	DOIExists(doi string, excludeID uuid.UUID) (bool, error)
	LastAssignedDOI() (string, error)
	ResourceByDOI(doi string) (*resource.Resource, error)
}

// suffixShape is one known institutional numbering pattern. Shapes are
// tried in order; the first match names the series a suffix belongs to.
type suffixShape struct {
	name    string
	pattern *regexp.Regexp
}

var suffixShapes = []suffixShape{
	{"gfz.section.section.year.number", regexp.MustCompile(`(?i)^gfz\.\d+\.\d+\.\d{4}\.\d+$`)},
	{"gfz.code.year.number", regexp.MustCompile(`(?i)^gfz\.[a-z0-9-]+\.\d{4}\.\d+$`)},
	{"project.d.year.number", regexp.MustCompile(`(?i)^[a-z]+\.d\.\d{4}\.\d+$`)},
	{"project.year.number", regexp.MustCompile(`(?i)^[a-z][a-z0-9-]*\.\d{4}\.\d+$`)},
	{"projectdb.number", regexp.MustCompile(`(?i)^[a-z]+db\.\d+$`)},
	{"project-suffix.numbers", regexp.MustCompile(`(?i)^[a-z]+(-[a-z0-9]+)+\.\d+$`)},
	{"multi-segment", regexp.MustCompile(`(?i)^[a-z0-9-]+(\.[a-z0-9-]+)+\.\d+$`)},
}

var trailingRunRegex = regexp.MustCompile(`\d+$`)

// Suggester proposes the next free DOI in the series a given DOI
// belongs to.
type Suggester struct {
	store       Lookup
	maxAttempts int
}

// NewSuggester creates a suggester over the given storage.
func NewSuggester(store Lookup) *Suggester {
	return &Suggester{store: store, maxAttempts: defaultMaxAttempts}
}

// SuggestNext classifies lastDOI's suffix, increments its trailing
// numeric run with the original zero-padding, and skips candidates that
// are already assigned. Input that is not a valid DOI yields an empty
// suggestion without error; a suffix with no numeric run gets a ".001"
// series started for it.
func (s *Suggester) SuggestNext(lastDOI string) (string, error) {
	norm := Normalize(lastDOI)
	if !doiFormatRegex.MatchString(norm) {
		return "", nil
	}
	idx := strings.Index(norm, "/")
	prefix, suffix := norm[:idx], norm[idx+1:]

	if shape := classifySuffix(suffix); shape != "" {
		slog.Debug("classified DOI suffix", "doi", norm, "shape", shape)
	} else {
		slog.Debug("DOI suffix matches no known shape, using fallback", "doi", norm)
	}

	run := trailingRunRegex.FindString(suffix)
	if run == "" {
		// Seed at zero so the new series starts with .001.
		suffix += ".000"
		run = "000"
	}
	head := suffix[:len(suffix)-len(run)]

	value, err := strconv.Atoi(run)
	if err != nil {
		// Runs longer than an int can hold fall outside any real series.
		return "", nil
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		value++
		candidate := prefix + "/" + head + padRun(value, len(run))
		taken, err := s.store.DOIExists(candidate, uuid.Nil)
		if err != nil {
			return "", fmt.Errorf("checking DOI candidate: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrExhausted
}

// SuggestFromLastAssigned runs SuggestNext against the most recently
// stored DOI.
func (s *Suggester) SuggestFromLastAssigned() (string, error) {
	last, err := s.store.LastAssignedDOI()
	if err != nil {
		return "", fmt.Errorf("loading last assigned DOI: %w", err)
	}
	if last == "" {
		return "", nil
	}
	return s.SuggestNext(last)
}

// Exists reports whether a DOI is already assigned. A non-nil excludeID
// ignores the resource being edited, answering "is this DOI free for
// this resource".
func (s *Suggester) Exists(rawDOI string, excludeID uuid.UUID) (bool, error) {
	norm := Normalize(rawDOI)
	if !doiFormatRegex.MatchString(norm) {
		return false, nil
	}
	return s.store.DOIExists(norm, excludeID)
}

// LastAssigned returns the most recently stored DOI, empty when none
// exists.
func (s *Suggester) LastAssigned() (string, error) {
	return s.store.LastAssignedDOI()
}

// ResourceByDOI loads the resource registered under a DOI, nil when the
// DOI is unknown or malformed.
func (s *Suggester) ResourceByDOI(rawDOI string) (*resource.Resource, error) {
	norm := Normalize(rawDOI)
	if !doiFormatRegex.MatchString(norm) {
		return nil, nil
	}
	return s.store.ResourceByDOI(norm)
}

func classifySuffix(suffix string) string {
	for _, shape := range suffixShapes {
		if shape.pattern.MatchString(suffix) {
			return shape.name
		}
	}
	return ""
}

// padRun re-pads an incremented run to its original width. Values that
// outgrow the width keep their natural length.
func padRun(value, width int) string {
	return fmt.Sprintf("%0*d", width, value)
}
