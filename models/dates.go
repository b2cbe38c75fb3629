// ABOUTME: ISO calendar date helpers
// ABOUTME: Dates are YYYY-MM-DD strings compared lexicographically, no timezones
package models

import (
	"fmt"
	"time"
)

// DateLayout is the ISO date format used for every stored date.
const DateLayout = "2006-01-02"

// Today formats t as the UTC calendar date.
func Today(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses an ISO date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// AddDays shifts an ISO date by n days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// DaysBetween returns the whole days from `from` to `to` (negative if to is earlier).
func DaysBetween(from, to string) (int, error) {
	f, err := ParseDate(from)
	if err != nil {
		return 0, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(f).Hours() / 24), nil
}
