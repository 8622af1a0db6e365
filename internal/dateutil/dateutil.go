// Package dateutil centralizes calendar-date handling for the review engine.
// All scheduling is done on whole calendar dates (no time-of-day component),
// so dates are normalized to midnight UTC before any comparison or arithmetic.
package dateutil

import (
	"fmt"
	"time"
)

// ISOLayout is the wire format for calendar dates (YYYY-MM-DD).
const ISOLayout = "2006-01-02"

// ParseISO parses a YYYY-MM-DD string into a normalized calendar date.
// Returns an error if the string is not a valid ISO date.
func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO date %q: %w", s, err)
	}
	return t, nil
}

// Normalize truncates a timestamp to its calendar date at midnight UTC.
func Normalize(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date at midnight UTC.
func Today() time.Time {
	return Normalize(time.Now())
}

// DaysBetween returns the whole-day difference to - from.
// Positive when to is after from, negative when before.
func DaysBetween(from, to time.Time) int {
	return int(Normalize(to).Sub(Normalize(from)).Hours() / 24)
}

// FormatISO renders a date as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return Normalize(t).Format(ISOLayout)
}

// FormatLabel renders a date as dd/mm/yyyy, the display format the
// study tracker uses everywhere.
func FormatLabel(t time.Time) string {
	return Normalize(t).Format("02/01/2006")
}
