package dates

import "testing"

func TestParseDateYear(t *testing.T) {
	if got := ParseDate("2014", false); got != "2014-01-01" {
		t.Errorf("Expected 2014-01-01, got %q", got)
	}
	if got := ParseDate("2014", true); got != "2014-12-31" {
		t.Errorf("Expected 2014-12-31, got %q", got)
	}
}

func TestParseDateYearMonth(t *testing.T) {
	if got := ParseDate("2014-06", false); got != "2014-06-01" {
		t.Errorf("Expected 2014-06-01, got %q", got)
	}
	if got := ParseDate("2014-06", true); got != "2014-06-30" {
		t.Errorf("Expected 2014-06-30, got %q", got)
	}
	if got := ParseDate("2014-12", true); got != "2014-12-31" {
		t.Errorf("Expected 2014-12-31, got %q", got)
	}
}

func TestParseDateLeapYearFebruary(t *testing.T) {
	if got := ParseDate("2024-02", true); got != "2024-02-29" {
		t.Errorf("Expected 2024-02-29 for leap year, got %q", got)
	}
	if got := ParseDate("2023-02", true); got != "2023-02-28" {
		t.Errorf("Expected 2023-02-28, got %q", got)
	}
	if got := ParseDate("2000-02", true); got != "2000-02-29" {
		t.Errorf("Expected 2000-02-29 for century leap year, got %q", got)
	}
	if got := ParseDate("1900-02", true); got != "1900-02-28" {
		t.Errorf("Expected 1900-02-28 for non-leap century, got %q", got)
	}
}

func TestParseDateFullDatePassesThrough(t *testing.T) {
	if got := ParseDate("2014-06-15", false); got != "2014-06-15" {
		t.Errorf("Expected 2014-06-15, got %q", got)
	}
	// isEndDate has no effect on an already-complete date
	if got := ParseDate("2014-06-15", true); got != "2014-06-15" {
		t.Errorf("Expected 2014-06-15, got %q", got)
	}
}

func TestParseDateDayOverflowRollsForward(t *testing.T) {
	if got := ParseDate("2023-02-30", false); got != "2023-03-02" {
		t.Errorf("Expected 2023-03-02, got %q", got)
	}
	if got := ParseDate("2024-02-30", false); got != "2024-03-01" {
		t.Errorf("Expected 2024-03-01 in a leap year, got %q", got)
	}
	if got := ParseDate("2023-04-31", false); got != "2023-05-01" {
		t.Errorf("Expected 2023-05-01, got %q", got)
	}
}

func TestParseDateInvalidMonth(t *testing.T) {
	if got := ParseDate("2023-00", false); got != "" {
		t.Errorf("Expected empty result for month 00, got %q", got)
	}
	if got := ParseDate("2023-13", true); got != "" {
		t.Errorf("Expected empty result for month 13, got %q", got)
	}
	if got := ParseDate("2023-00-15", false); got != "" {
		t.Errorf("Expected empty result for month 00 in full date, got %q", got)
	}
}

func TestParseDateMalformedInput(t *testing.T) {
	for _, input := range []string{"", "   ", "abcd", "14", "2014-6", "2014/06/15", "June 2014"} {
		if got := ParseDate(input, false); got != "" {
			t.Errorf("Expected empty result for %q, got %q", input, got)
		}
	}
}

func TestParseDateTrimsWhitespace(t *testing.T) {
	if got := ParseDate("  2014  ", false); got != "2014-01-01" {
		t.Errorf("Expected 2014-01-01, got %q", got)
	}
}

func TestParseRange(t *testing.T) {
	start, end := ParseRange("2014/2016")
	if start != "2014-01-01" || end != "2016-12-31" {
		t.Errorf("Expected 2014-01-01/2016-12-31, got %q/%q", start, end)
	}

	start, end = ParseRange("2014-02/2014-03")
	if start != "2014-02-01" || end != "2014-03-31" {
		t.Errorf("Expected 2014-02-01/2014-03-31, got %q/%q", start, end)
	}
}

func TestParseRangeOpenEnded(t *testing.T) {
	start, end := ParseRange("2014/")
	if start != "2014-01-01" || end != "" {
		t.Errorf("Expected open end, got %q/%q", start, end)
	}

	start, end = ParseRange("/2016")
	if start != "" || end != "2016-12-31" {
		t.Errorf("Expected open start, got %q/%q", start, end)
	}
}

func TestParseRangeWithoutSlash(t *testing.T) {
	start, end := ParseRange("2014-06")
	if start != "2014-06-01" || end != "" {
		t.Errorf("Expected single start date, got %q/%q", start, end)
	}
}
