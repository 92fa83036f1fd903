package model

// Frequency identifies how often a recurring obligation occurs.
type Frequency string

// Supported frequencies. Monthly is the only one currently expanded by
// the scheduler.
const (
	FrequencyMonthly Frequency = "monthly"
)

// RecurringObligation is a template for a periodically recurring cash
// event, expanded into dated instances by the forecast scheduler.
// The amount is signed: loan interest and subscriptions are negative.
type RecurringObligation struct {
	Name       string
	Amount     float64
	Category   string
	Frequency  Frequency
	DayOfMonth int // 1-31, clamped to the last valid day of short months
	Active     bool
}
