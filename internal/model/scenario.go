package model

// Scenario is a named pair of revenue/expense multipliers applied
// uniformly across a forecast horizon. Multipliers must be strictly
// positive; base is 1.0/1.0 by convention.
type Scenario struct {
	ID                string
	RevenueMultiplier float64
	ExpenseMultiplier float64
}
