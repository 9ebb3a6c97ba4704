package period

import (
	"testing"
	"time"
)

func TestMonthRange(t *testing.T) {
	loc := time.UTC
	at := time.Date(2024, 2, 15, 13, 45, 0, 0, loc)
	r := MonthRange(at)

	wantStart := time.Date(2024, 2, 1, 0, 0, 0, 0, loc).UnixMilli()
	wantEnd := time.Date(2024, 2, 29, 23, 59, 59, 999_000_000, loc).UnixMilli()
	if r.Start != wantStart {
		t.Errorf("Start = %d, want %d", r.Start, wantStart)
	}
	if r.End != wantEnd {
		t.Errorf("End = %d, want %d (leap February)", r.End, wantEnd)
	}

	// Inclusive at both bounds, exclusive one millisecond outside.
	if !r.Contains(wantStart) || !r.Contains(wantEnd) {
		t.Error("range must include its own bounds")
	}
	if r.Contains(wantStart-1) || r.Contains(wantEnd+1) {
		t.Error("range must exclude one millisecond outside either bound")
	}
}

func TestWeekRangeStartsMonday(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		name string
		at   time.Time
	}{
		{"wednesday", time.Date(2024, 1, 17, 10, 0, 0, 0, loc)},
		{"monday itself", time.Date(2024, 1, 15, 0, 0, 0, 0, loc)},
		{"sunday", time.Date(2024, 1, 21, 23, 0, 0, 0, loc)},
	}

	wantStart := time.Date(2024, 1, 15, 0, 0, 0, 0, loc).UnixMilli()
	wantEnd := time.Date(2024, 1, 21, 23, 59, 59, 999_000_000, loc).UnixMilli()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := WeekRange(tt.at)
			if r.Start != wantStart || r.End != wantEnd {
				t.Errorf("WeekRange(%v) = %v, want [%d, %d]", tt.at, r, wantStart, wantEnd)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		at := time.Date(tt.year, tt.month, 10, 0, 0, 0, 0, time.UTC)
		if got := DaysInMonth(at); got != tt.want {
			t.Errorf("DaysInMonth(%v %d) = %d, want %d", tt.month, tt.year, got, tt.want)
		}
	}
}

func TestRangeValid(t *testing.T) {
	if (Range{Start: 10, End: 5}).Valid() {
		t.Error("end before start must be invalid")
	}
	if !(Range{Start: 5, End: 5}).Valid() {
		t.Error("single-instant range is valid")
	}
}

func TestFormatRelative(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		ts   int64
		want string
	}{
		{"today", time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC).UnixMilli(), "Today"},
		{"yesterday", time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC).UnixMilli(), "Yesterday"},
		{"older", time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC).UnixMilli(), "05 Jan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRelative(tt.ts, now); got != tt.want {
				t.Errorf("FormatRelative() = %q, want %q", got, tt.want)
			}
		})
	}
}
