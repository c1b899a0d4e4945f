// Package dates parses and renders the calendar dates stored with each exercise.
package dates

import (
	"strings"
	"time"
)

// Layout is the stored and compared form of every date.
const Layout = "2006-01-02"

// HumanLayout renders dates like 2024-Feb-01.
const HumanLayout = "2006-Jan-02"

var accepted = []string{
	Layout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
}

// Parse accepts the supported input layouts and returns the calendar date.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range accepted {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsValid reports whether s is a date in one of the accepted layouts.
func IsValid(s string) bool {
	_, ok := Parse(s)
	return ok
}

// Normalize converts s to YYYY-MM-DD. Lexicographic order of normalized dates is chronological.
func Normalize(s string) (string, bool) {
	t, ok := Parse(s)
	if !ok {
		return "", false
	}
	return t.Format(Layout), true
}

// Today returns now as YYYY-MM-DD in UTC.
func Today(now time.Time) string {
	return now.UTC().Format(Layout)
}

// Human renders a stored date for display. Unparseable input is returned unchanged.
func Human(s string) string {
	t, ok := Parse(s)
	if !ok {
		return s
	}
	return t.Format(HumanLayout)
}
