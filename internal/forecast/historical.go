package forecast

import (
	"time"

	"github.com/copperfin/runway/internal/model"
)

// TrailingWeeklyExpense computes a single weekly expense magnitude from
// actual cash outflows inside the lookback window ending at asOf.
//
// The total is divided by the elapsed span in weeks between the earliest
// and latest matching events, not by the nominal lookback window, so
// sparse data does not understate the average. A span under one week is
// treated as one week. No matching outflows yields zero, which callers
// must tolerate as a legitimate all-zero expense projection.
func TrailingWeeklyExpense(events []model.CashEvent, asOf time.Time, lookbackWeeks int) float64 {
	asOf = DateOnly(asOf)
	windowStart := asOf.AddDate(0, 0, -7*lookbackWeeks)

	var (
		total    float64
		earliest time.Time
		latest   time.Time
		matched  bool
	)

	for _, e := range events {
		if e.Amount >= 0 || e.IsForecast {
			continue
		}
		d := DateOnly(e.Date)
		if d.Before(windowStart) || d.After(asOf) {
			continue
		}

		total += -e.Amount
		if !matched || d.Before(earliest) {
			earliest = d
		}
		if !matched || d.After(latest) {
			latest = d
		}
		matched = true
	}

	if !matched {
		return 0
	}

	weeks := latest.Sub(earliest).Hours() / 24 / 7
	if weeks < 1 {
		weeks = 1
	}
	return total / weeks
}
