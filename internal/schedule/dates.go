// Package schedule implements template-driven task generation and
// go-live-date schedule recalculation.
package schedule

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar-day format used for all task and product
// dates. There is no time-of-day component.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a date string cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("schedule: parse %q: %w", s, ErrInvalidDate)
	}
	return t, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays shifts a calendar date by a signed number of days.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// DeltaDays returns the signed whole-day difference between two calendar
// dates, rounding any fractional remainder up (ceil), matching how a
// go-live change is turned into a task shift.
func DeltaDays(oldDate, newDate string) (int, error) {
	o, err := ParseDate(oldDate)
	if err != nil {
		return 0, err
	}
	n, err := ParseDate(newDate)
	if err != nil {
		return 0, err
	}
	return int(math.Ceil(n.Sub(o).Hours() / 24)), nil
}
