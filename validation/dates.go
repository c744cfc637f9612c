package validation

import (
	"errors"
	"strings"
	"time"
)

const dateOnly = "2006-01-02"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	dateOnly,
}

var errBadDate = errors.New("invalid date")

// ParseDate accepts RFC 3339 timestamps, local ISO date-times (read as UTC) and
// plain dates. The flag reports whether s carried only a date.
func ParseDate(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), layout == dateOnly, nil
		}
	}
	return time.Time{}, false, errBadDate
}

// endOfDay returns the last instant of t's UTC day.
func endOfDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
