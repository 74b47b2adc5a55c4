// Package stay validates stay periods.  All comparisons are made on
// calendar dates; the time of day of the inputs is ignored.
package stay

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrInvertedRange is returned when check-in falls after check-out.
	ErrInvertedRange = errors.New("stay: check-in is after check-out")
	// ErrPastCheckIn is returned when check-in falls before today.
	ErrPastCheckIn = errors.New("stay: check-in is in the past")
	// ErrBadDate is returned by ParseDate for unparseable input.
	ErrBadDate = errors.New("stay: invalid date")
)

// Accepted input layouts, tried in order.
var layouts = []string{"02/01/2006", "2006-01-02"}

// Day truncates t to its calendar date at UTC midnight.  The date is
// taken in t's own location, so 23:30 local time stays on the same day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses dd/mm/yyyy or yyyy-mm-dd into a calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrBadDate
}

// Validate checks a stay period against today's date.  A same-day stay
// is valid; billing applies the one-night minimum.
func Validate(checkIn, checkOut, today time.Time) error {
	in, out := Day(checkIn), Day(checkOut)
	if in.After(out) {
		return ErrInvertedRange
	}
	if in.Before(Day(today)) {
		return ErrPastCheckIn
	}
	return nil
}
