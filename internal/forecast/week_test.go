package forecast

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMondayOf(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{date(2026, time.January, 12), date(2026, time.January, 12)}, // already Monday
		{date(2026, time.January, 15), date(2026, time.January, 12)}, // Thursday
		{date(2026, time.January, 18), date(2026, time.January, 12)}, // Sunday
	}
	for _, c := range cases {
		if got := MondayOf(c.in); !got.Equal(c.want) {
			t.Errorf("MondayOf(%s) = %s, want %s", c.in.Format("2006-01-02"), got.Format("2006-01-02"), c.want.Format("2006-01-02"))
		}
	}
}

func TestHorizonContiguous(t *testing.T) {
	weeks := Horizon(date(2026, time.January, 15), 13)

	if len(weeks) != 13 {
		t.Fatalf("expected 13 weeks, got %d", len(weeks))
	}
	if !weeks[0].Start.Equal(date(2026, time.January, 12)) {
		t.Fatalf("week 1 starts %s, want Monday 2026-01-12", weeks[0].Start.Format("2006-01-02"))
	}

	for i, w := range weeks {
		if w.Number != i+1 {
			t.Errorf("week %d has number %d", i, w.Number)
		}
		if !w.End.Equal(w.Start.AddDate(0, 0, 6)) {
			t.Errorf("week %d end is not start+6d", w.Number)
		}
		if i > 0 && !w.Start.Equal(weeks[i-1].End.AddDate(0, 0, 1)) {
			t.Errorf("week %d does not start the day after week %d ends", w.Number, weeks[i-1].Number)
		}
	}
}

func TestWeekContains(t *testing.T) {
	w := Week{Number: 1, Start: date(2026, time.January, 12), End: date(2026, time.January, 18)}

	if !w.Contains(date(2026, time.January, 12)) {
		t.Error("start day should be contained")
	}
	if !w.Contains(date(2026, time.January, 18)) {
		t.Error("end day should be contained")
	}
	if w.Contains(date(2026, time.January, 19)) {
		t.Error("day after end should not be contained")
	}
	// Clock time must not matter.
	if !w.Contains(time.Date(2026, time.January, 18, 23, 59, 0, 0, time.UTC)) {
		t.Error("late clock time on the end day should be contained")
	}
}

func TestClampDayToMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		day   int
		want  time.Time
	}{
		{2026, time.February, 31, date(2026, time.February, 28)},
		{2024, time.February, 30, date(2024, time.February, 29)}, // leap year
		{2026, time.April, 31, date(2026, time.April, 30)},
		{2026, time.January, 15, date(2026, time.January, 15)},
	}
	for _, c := range cases {
		if got := ClampDayToMonth(c.year, c.month, c.day); !got.Equal(c.want) {
			t.Errorf("ClampDayToMonth(%d, %s, %d) = %s, want %s",
				c.year, c.month, c.day, got.Format("2006-01-02"), c.want.Format("2006-01-02"))
		}
	}
}
