package core

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthWindow(t *testing.T) {
	cases := []struct {
		in         time.Time
		start, end time.Time
	}{
		{date(2024, time.March, 15), date(2024, time.March, 1), date(2024, time.March, 31)},
		{date(2024, time.February, 29), date(2024, time.February, 1), date(2024, time.February, 29)}, // leap year
		{date(2023, time.February, 10), date(2023, time.February, 1), date(2023, time.February, 28)},
		{date(2024, time.December, 31), date(2024, time.December, 1), date(2024, time.December, 31)},
		{date(2024, time.January, 1), date(2024, time.January, 1), date(2024, time.January, 31)},
	}
	for i, tc := range cases {
		start, end := MonthWindow(tc.in)
		if !start.Equal(tc.start) || !end.Equal(tc.end) {
			t.Fatalf("case %d: MonthWindow(%v) = (%v, %v), want (%v, %v)",
				i, tc.in, start, end, tc.start, tc.end)
		}
	}
}

func TestMonthWindowUsesDateMonthNotCurrent(t *testing.T) {
	// The window is derived from the argument, never from the current date.
	start, end := MonthWindow(date(1999, time.July, 4))
	if start.Year() != 1999 || end.Year() != 1999 {
		t.Fatalf("window leaked out of the argument's year: %v - %v", start, end)
	}
}

func TestYearWindow(t *testing.T) {
	start, end := YearWindow(date(2024, time.June, 15))
	if !start.Equal(date(2024, time.January, 1)) {
		t.Fatalf("start = %v", start)
	}
	if !end.Equal(date(2024, time.December, 31)) {
		t.Fatalf("end = %v", end)
	}
}

func TestEndOfDay(t *testing.T) {
	got := EndOfDay(time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC))
	want := time.Date(2024, time.March, 5, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("EndOfDay = %v, want %v", got, want)
	}
}

func TestDayStart(t *testing.T) {
	got := DayStart(time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC))
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DayStart = %v, want %v", got, want)
	}
}
