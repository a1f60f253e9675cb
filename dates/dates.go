// Package dates expands partial date input (year, year-month) into
// ISO 8601 boundary dates.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

const isoDate = "2006-01-02"

var (
	yearRegex      = regexp.MustCompile(`^(\d{4})$`)
	yearMonthRegex = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	fullDateRegex  = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// ParseDate resolves a possibly partial date string to a full ISO 8601
// date. Partial input expands to the interval boundary selected by
// isEndDate: a bare year becomes January 1 or December 31, a year-month
// becomes the first or last day of that month (leap-year aware). A full
// date is returned as-is regardless of isEndDate, except that an invalid
// day-of-month rolls forward into the following month (Feb 30 resolves
// to early March rather than being rejected). Empty input and months
// outside 01-12 yield "".
func ParseDate(raw string, isEndDate bool) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	if m := yearRegex.FindStringSubmatch(value); m != nil {
		if isEndDate {
			return m[1] + "-12-31"
		}
		return m[1] + "-01-01"
	}

	if m := yearMonthRegex.FindStringSubmatch(value); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return ""
		}
		first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		if isEndDate {
			return now.With(first).EndOfMonth().Format(isoDate)
		}
		return first.Format(isoDate)
	}

	if m := fullDateRegex.FindStringSubmatch(value); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month < 1 || month > 12 {
			return ""
		}
		// time.Date normalizes out-of-range days by rolling into the
		// following month, which keeps historically sloppy input usable.
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(isoDate)
	}

	return ""
}

// ParseRange resolves "start/end" input into its two boundary dates.
// Either side may be empty for an open-ended range. Input without a
// slash resolves as a single start date with an empty end.
func ParseRange(raw string) (start, end string) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", ""
	}
	if idx := strings.Index(value, "/"); idx >= 0 {
		return ParseDate(value[:idx], false), ParseDate(value[idx+1:], true)
	}
	return ParseDate(value, false), ""
}
