// Package forecast implements the weekly cash-flow forecast engine:
// trailing expense averaging, recurring obligation scheduling, debt
// schedule projection, scenario scaling, and cash position math.
//
// Every function here is a pure function of its inputs. The reference
// date is always an explicit parameter, never a clock read, so two runs
// with identical inputs produce identical output.
package forecast

import "time"

// Week is one Monday-start, 7-day inclusive forecast window.
type Week struct {
	Number int // 1-based
	Start  time.Time
	End    time.Time // Start + 6 days
}

// Contains reports whether the calendar date d falls inside the window.
// Only the date portion is considered.
func (w Week) Contains(d time.Time) bool {
	d = DateOnly(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

// DateOnly truncates t to midnight UTC so date comparisons are
// independent of clock time and zone.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MondayOf returns the Monday of the week containing t (t itself when t
// is a Monday).
func MondayOf(t time.Time) time.Time {
	t = DateOnly(t)
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return t.AddDate(0, 0, -offset)
}

// Horizon builds n contiguous week windows beginning at the Monday of
// (or before) asOf. Windows never gap or overlap: each starts the day
// after the previous one ends.
func Horizon(asOf time.Time, n int) []Week {
	start := MondayOf(asOf)
	weeks := make([]Week, n)
	for i := range weeks {
		ws := start.AddDate(0, 0, 7*i)
		weeks[i] = Week{
			Number: i + 1,
			Start:  ws,
			End:    ws.AddDate(0, 0, 6),
		}
	}
	return weeks
}

// ClampDayToMonth returns the given day in year/month, clipped to the
// last valid day of that month (day 31 in February yields Feb 28 or 29).
func ClampDayToMonth(year int, month time.Month, day int) time.Time {
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
