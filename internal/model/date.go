package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date layout used for storage and display.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day or zone. It is kept at UTC
// midnight so month/year never shift with the local zone.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// Today returns the current local calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// String formats the date as YYYY-MM-DD, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Equal reports whether both dates name the same calendar day.
func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}

// InMonth reports whether the date falls in the given month (1-12) and year.
func (d Date) InMonth(month, year int) bool {
	return !d.IsZero() && int(d.Month()) == month && d.Year() == year
}

// InYear reports whether the date falls in the given year.
func (d Date) InYear(year int) bool {
	return !d.IsZero() && d.Year() == year
}
