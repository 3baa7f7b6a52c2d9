// Package period resolves a period keyword into an inclusive calendar date range.
package period

import (
	"strings"
	"time"
)

// ISO is the date layout used throughout storage and the HTTP surface.
const ISO = "2006-01-02"

// Range is an inclusive [From, To] calendar window. Both bounds are dates
// (midnight, location of the caller's "today").
type Range struct {
	From time.Time
	To   time.Time
}

// FromISO returns the lower bound formatted as YYYY-MM-DD.
func (r Range) FromISO() string { return r.From.Format(ISO) }

// ToISO returns the upper bound formatted as YYYY-MM-DD.
func (r Range) ToISO() string { return r.To.Format(ISO) }

// Resolve maps a period keyword to a date range relative to today.
// "week" (and anything unrecognized, including empty) is the 7-day window
// ending today; "month" is the calendar month containing today.
func Resolve(keyword string, today time.Time) Range {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	switch strings.ToLower(strings.TrimSpace(keyword)) {
	case "month":
		first := day.AddDate(0, 0, -day.Day()+1)
		// First of next month minus one day lands on the month's last day,
		// rolling December into January of the following year.
		last := first.AddDate(0, 1, 0).AddDate(0, 0, -1)
		return Range{From: first, To: last}
	default:
		return Range{From: day.AddDate(0, 0, -6), To: day}
	}
}
