package forecast

import "github.com/copperfin/runway/internal/model"

// ChainBalances fills beginning and ending balances through the rows:
// each week begins where the previous one ended, starting from the
// supplied balance.
func ChainBalances(rows []model.WeeklyForecastRow, startingBalance float64) {
	balance := startingBalance
	for i := range rows {
		rows[i].BeginningBalance = balance
		balance += rows[i].NetCashFlow
		rows[i].EndingBalance = balance
	}
}

// RunwayWeek returns the 1-based index of the first week whose ending
// balance is strictly below zero, or nil when the balance stays
// non-negative for the whole horizon.
func RunwayWeek(rows []model.WeeklyForecastRow) *int {
	for _, r := range rows {
		if r.EndingBalance < 0 {
			week := r.WeekNumber
			return &week
		}
	}
	return nil
}

// BurnRate returns the average weekly net cash outflow magnitude across
// the horizon, or zero when the horizon is net cash-positive overall.
// The average runs over every horizon week, positive weeks included.
func BurnRate(rows []model.WeeklyForecastRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	var total float64
	for _, r := range rows {
		total += r.NetCashFlow
	}
	if total >= 0 {
		return 0
	}
	return -total / float64(len(rows))
}

// AssessRisk derives warning flags from the balanced rows. At least one
// flag is always returned; RiskHealthy is the sentinel when nothing
// triggers.
func AssessRisk(rows []model.WeeklyForecastRow, runway *int) []model.RiskFlag {
	var flags []model.RiskFlag

	if runway != nil && *runway < 4 {
		flags = append(flags, model.RiskShortRunway)
	}

	if len(rows) > 0 {
		final := rows[len(rows)-1].EndingBalance
		if final < 0 {
			flags = append(flags, model.RiskNegativeFinal)
		} else if runway != nil {
			// Balance dipped negative mid-horizon but recovered above zero
			// by the end; the final balance alone would miss it.
			flags = append(flags, model.RiskNegativeDip)
		}
	}

	if len(flags) == 0 {
		flags = append(flags, model.RiskHealthy)
	}
	return flags
}
