package forecast

import "fmt"

// UnknownScenarioError is returned when a scenario id has no multiplier
// entry. It is fatal to that run: scenario multipliers are load-bearing
// for comparability, so the engine never substitutes defaults.
type UnknownScenarioError struct {
	ScenarioID string
	Known      []string
}

func (e *UnknownScenarioError) Error() string {
	return fmt.Sprintf("unknown scenario %q (known: %v)", e.ScenarioID, e.Known)
}

// InvalidInputError is returned when run parameters fail validation.
// Validation happens before any week is computed; the engine never
// emits a partial forecast.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// ConfigurationError is a non-fatal data-quality warning: a referenced
// loan with no schedule rows in the horizon, or an obligation with an
// out-of-range day of month. The engine substitutes a zero contribution
// and continues, but the warning is surfaced so an all-zero contribution
// is distinguishable from a silently dropped one.
type ConfigurationError struct {
	Subject string
	Reason  string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Subject, e.Reason)
}
