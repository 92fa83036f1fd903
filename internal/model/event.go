// Package model defines domain types for cash events, obligations, and forecasts.
package model

import "time"

// CashEvent represents one atomic dated cash movement.
// Positive amounts are inflows, negative amounts are outflows.
type CashEvent struct {
	ID          string
	Date        time.Time
	Amount      float64
	Category    string
	Description string
	IsForecast  bool
	ScenarioID  string // set only when IsForecast is true
}

// Inflow reports whether the event adds cash.
func (e CashEvent) Inflow() bool {
	return e.Amount > 0
}

// Outflow reports whether the event removes cash.
func (e CashEvent) Outflow() bool {
	return e.Amount < 0
}
