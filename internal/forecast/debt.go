package forecast

import (
	"time"

	"github.com/copperfin/runway/internal/model"
)

// WeekDebt is the debt-service contribution to a single week: payment
// amounts summed as a negative outflow, partitioned by payment type for
// reporting.
type WeekDebt struct {
	Total  float64
	ByType map[model.PaymentType]float64
}

// ProjectDebt places unpaid schedule rows with a payment date on or
// after asOf into the horizon weeks. Rows already marked paid are
// historical and excluded.
//
// An expected loan with no rows landing anywhere in the horizon produces
// a ConfigurationError warning; the forecast proceeds with zero debt
// service for that loan.
func ProjectDebt(rows []model.DebtPaymentRow, weeks []Week, asOf time.Time, expectedLoans []string) ([]WeekDebt, []ConfigurationError) {
	out := make([]WeekDebt, len(weeks))
	asOf = DateOnly(asOf)
	seen := make(map[string]bool, len(expectedLoans))

	for _, row := range rows {
		if row.IsPaid {
			continue
		}
		d := DateOnly(row.PaymentDate)
		if d.Before(asOf) {
			continue
		}

		for i, w := range weeks {
			if !w.Contains(d) {
				continue
			}
			out[i].Total -= row.PaymentAmount
			if out[i].ByType == nil {
				out[i].ByType = make(map[model.PaymentType]float64)
			}
			out[i].ByType[row.PaymentType] -= row.PaymentAmount
			seen[row.LoanID] = true
			break
		}
	}

	var warnings []ConfigurationError
	for _, loanID := range expectedLoans {
		if !seen[loanID] {
			warnings = append(warnings, ConfigurationError{
				Subject: loanID,
				Reason:  "no schedule rows inside forecast horizon, assuming zero debt service",
			})
		}
	}

	return out, warnings
}
