// Package period computes the calendar windows the ledger engine filters
// by: month and week ranges as inclusive unix-millisecond bounds, plus the
// day-of-month helpers burn-rate projection needs.
//
// Every function takes an explicit time.Time so callers stay deterministic;
// Clock exists so "now" can be injected instead of read from the system.
package period

import (
	"fmt"
	"time"
)

// Clock supplies the current time. Production code passes Now; tests pass
// a fixed instant.
type Clock func() time.Time

// Now is the default Clock.
var Now Clock = time.Now

// Range is an inclusive [Start, End] window in unix milliseconds.
type Range struct {
	Start int64
	End   int64
}

// Contains reports whether ts falls inside the range, bounds included.
func (r Range) Contains(ts int64) bool {
	return ts >= r.Start && ts <= r.End
}

// Valid reports whether the range is well formed. Aggregations treat an
// invalid range as an empty window rather than an error.
func (r Range) Valid() bool {
	return r.End >= r.Start
}

// MonthRange returns the first through last millisecond of t's calendar
// month in t's location.
func MonthRange(t time.Time) Range {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return Range{Start: start.UnixMilli(), End: end.UnixMilli()}
}

// WeekRange returns the Monday-through-Sunday week containing t, first
// through last millisecond, in t's location.
func WeekRange(t time.Time) Range {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	start := day.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return Range{Start: start.UnixMilli(), End: end.UnixMilli()}
}

// YearRange returns the first through last millisecond of t's year.
func YearRange(t time.Time) Range {
	start := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(1, 0, 0).Add(-time.Millisecond)
	return Range{Start: start.UnixMilli(), End: end.UnixMilli()}
}

// DayOfMonth returns the 1-based calendar day of t.
func DayOfMonth(t time.Time) int {
	return t.Day()
}

// DaysInMonth returns the number of days in t's calendar month.
func DaysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1).Day()
}

// FormatRelative renders a transaction date for list display: "Today",
// "Yesterday", or "02 Jan".
func FormatRelative(ts int64, now time.Time) string {
	d := time.UnixMilli(ts).In(now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return d.Format("02 Jan")
	}
}

// FormatFull renders a date as "02 Jan 2006".
func FormatFull(ts int64, loc *time.Location) string {
	return time.UnixMilli(ts).In(loc).Format("02 Jan 2006")
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}
