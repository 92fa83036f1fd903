package model

import (
	"fmt"
	"time"
)

// WeeklyForecastRow is one computed output week. Expenses is stored as a
// positive magnitude and contributes negatively to net; recurring and
// debt totals are already signed (typically negative).
type WeeklyForecastRow struct {
	WeekNumber       int
	WeekStart        time.Time
	WeekEnd          time.Time // inclusive, 6 days after start
	Revenue          float64
	Expenses         float64
	RecurringTotal   float64
	RecurringNames   []string
	DebtTotal        float64
	DebtByType       map[PaymentType]float64
	NetCashFlow      float64
	BeginningBalance float64
	EndingBalance    float64
}

// RiskFlag is a derived warning about the projected cash position.
type RiskFlag string

// Risk flags. At least one is always emitted; RiskHealthy is the
// sentinel when nothing else triggers.
const (
	RiskShortRunway   RiskFlag = "short_runway"    // runway present and under 4 weeks
	RiskNegativeDip   RiskFlag = "negative_dip"    // a week goes negative but a later week recovers
	RiskNegativeFinal RiskFlag = "negative_final"  // final week ends below zero
	RiskHealthy       RiskFlag = "healthy"
)

// ForecastEvents converts computed forecast rows into CashEvents tagged
// with the scenario, suitable for insertion alongside historical actuals
// so both can be queried through one timeline. Each week emits revenue,
// operating expense, recurring, and debt events when non-zero, dated at
// the week end (the original cash timing convention).
func ForecastEvents(rows []WeeklyForecastRow, scenarioID string) []CashEvent {
	var events []CashEvent

	add := func(week WeeklyForecastRow, amount float64, category, desc string) {
		if amount == 0 {
			return
		}
		events = append(events, CashEvent{
			Date:        week.WeekEnd,
			Amount:      amount,
			Category:    category,
			Description: desc,
			IsForecast:  true,
			ScenarioID:  scenarioID,
		})
	}

	for _, w := range rows {
		add(w, w.Revenue, "Revenue", fmt.Sprintf("Week %d revenue (forecast)", w.WeekNumber))
		add(w, -w.Expenses, "Operating Expenses", fmt.Sprintf("Week %d operating expenses (forecast)", w.WeekNumber))
		add(w, w.RecurringTotal, "Recurring", fmt.Sprintf("Week %d recurring obligations", w.WeekNumber))
		add(w, w.DebtTotal, "Debt Service", fmt.Sprintf("Week %d debt service", w.WeekNumber))
	}

	return events
}
