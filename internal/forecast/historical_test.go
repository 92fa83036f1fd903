package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/copperfin/runway/internal/model"
)

func outflow(d time.Time, amount float64) model.CashEvent {
	return model.CashEvent{Date: d, Amount: -amount, Category: "OpEx"}
}

func TestTrailingWeeklyExpense_ElapsedSpanDivisor(t *testing.T) {
	asOf := date(2026, time.January, 15)

	// Two outflows 70 days apart: the divisor is the 10-week elapsed
	// span, not the 12-week lookback window.
	events := []model.CashEvent{
		outflow(asOf.AddDate(0, 0, -70), 500000),
		outflow(asOf, 551370),
	}

	got := TrailingWeeklyExpense(events, asOf, 12)
	if math.Abs(got-105137) > 1e-9 {
		t.Fatalf("weekly expense = %.2f, want 105137", got)
	}
}

func TestTrailingWeeklyExpense_IgnoresInflowsAndForecasts(t *testing.T) {
	asOf := date(2026, time.January, 15)
	events := []model.CashEvent{
		outflow(asOf.AddDate(0, 0, -7), 1000),
		outflow(asOf, 1000),
		{Date: asOf, Amount: 5000, Category: "Revenue"},
		{Date: asOf, Amount: -9999, IsForecast: true, ScenarioID: "base"},
	}

	got := TrailingWeeklyExpense(events, asOf, 12)
	if math.Abs(got-2000) > 1e-9 {
		t.Fatalf("weekly expense = %.2f, want 2000 (inflows and forecast rows excluded)", got)
	}
}

func TestTrailingWeeklyExpense_OutsideWindowExcluded(t *testing.T) {
	asOf := date(2026, time.January, 15)
	events := []model.CashEvent{
		outflow(asOf.AddDate(0, 0, -200), 77777), // well before the window
		outflow(asOf.AddDate(0, 0, 1), 88888),    // after asOf
	}

	if got := TrailingWeeklyExpense(events, asOf, 12); got != 0 {
		t.Fatalf("weekly expense = %.2f, want 0", got)
	}
}

func TestTrailingWeeklyExpense_NoData(t *testing.T) {
	if got := TrailingWeeklyExpense(nil, date(2026, time.January, 15), 12); got != 0 {
		t.Fatalf("weekly expense = %.2f, want 0 for empty input", got)
	}
}

func TestTrailingWeeklyExpense_SubWeekSpanFloorsAtOneWeek(t *testing.T) {
	asOf := date(2026, time.January, 15)

	// Everything lands in a 2-day span: divide by one week, not 2/7.
	events := []model.CashEvent{
		outflow(asOf.AddDate(0, 0, -2), 3000),
		outflow(asOf.AddDate(0, 0, -1), 4000),
	}

	got := TrailingWeeklyExpense(events, asOf, 12)
	if math.Abs(got-7000) > 1e-9 {
		t.Fatalf("weekly expense = %.2f, want 7000 (span floored at 1 week)", got)
	}
}
