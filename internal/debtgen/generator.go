// Package debtgen builds loan amortization schedules: an optional
// interest-only period followed by level principal-and-interest
// payments, with interest accrued on the actual/360 convention.
package debtgen

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/copperfin/runway/internal/forecast"
	"github.com/copperfin/runway/internal/model"
)

// LoanTerms describes one loan to amortize.
type LoanTerms struct {
	LoanID             string
	LoanName           string
	Lender             string
	Principal          float64 // current drawn balance, not the facility ceiling
	AnnualRate         float64 // e.g. 0.1075 for 10.75%
	FirstPayment       time.Time
	PaymentDay         int // day of month, clamped to short months
	InterestOnlyMonths int
	AmortizationMonths int
}

func (t LoanTerms) validate() error {
	if t.LoanID == "" {
		return fmt.Errorf("loan id is required")
	}
	if t.Principal <= 0 {
		return fmt.Errorf("principal must be positive")
	}
	if t.AnnualRate < 0 {
		return fmt.Errorf("annual rate must not be negative")
	}
	if t.PaymentDay < 1 || t.PaymentDay > 31 {
		return fmt.Errorf("payment day %d outside 1-31", t.PaymentDay)
	}
	if t.FirstPayment.IsZero() {
		return fmt.Errorf("first payment date is required")
	}
	if t.InterestOnlyMonths < 0 || t.AmortizationMonths < 1 {
		return fmt.Errorf("need a positive amortization period")
	}
	return nil
}

// Generate produces the full payment schedule for the loan. Rows before
// asOf are marked paid so a forecast run treats them as historical.
func Generate(t LoanTerms, asOf time.Time) ([]model.DebtPaymentRow, error) {
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("loan %s: %w", t.LoanID, err)
	}

	asOf = forecast.DateOnly(asOf)
	balance := cents(t.Principal)
	schedule := make([]model.DebtPaymentRow, 0, t.InterestOnlyMonths+t.AmortizationMonths)

	year, month := t.FirstPayment.Year(), t.FirstPayment.Month()
	number := 1

	addRow := func(paymentDate time.Time, payment, principal, interest float64, typ model.PaymentType, begin, end float64) {
		schedule = append(schedule, model.DebtPaymentRow{
			ScheduleID:         uuid.NewString(),
			LoanID:             t.LoanID,
			LoanName:           t.LoanName,
			Lender:             t.Lender,
			PaymentDate:        paymentDate,
			PaymentNumber:      number,
			PaymentAmount:      payment,
			PrincipalAmount:    principal,
			InterestAmount:     interest,
			BeginningPrincipal: begin,
			EndingPrincipal:    end,
			InterestRate:       t.AnnualRate,
			PaymentType:        typ,
			IsPaid:             paymentDate.Before(asOf),
		})
		number++
	}

	for i := 0; i < t.InterestOnlyMonths; i++ {
		paymentDate := forecast.ClampDayToMonth(year, month, t.PaymentDay)
		interest := monthlyInterest(balance, t.AnnualRate)
		addRow(paymentDate, interest, 0, interest, model.PaymentInterestOnly, balance, balance)
		year, month = nextMonth(year, month)
	}

	remaining := t.AmortizationMonths
	for remaining > 0 && balance > 0 {
		paymentDate := forecast.ClampDayToMonth(year, month, t.PaymentDay)
		interest := monthlyInterest(balance, t.AnnualRate)
		payment := cents(annuityPayment(balance, t.AnnualRate, remaining))
		principal := cents(payment - interest)

		// Never amortize past zero on the final payment.
		if principal > balance {
			principal = balance
			payment = cents(principal + interest)
		}

		newBalance := cents(balance - principal)
		addRow(paymentDate, payment, principal, interest, model.PaymentPrincipalAndInterest, balance, newBalance)

		balance = newBalance
		remaining--
		year, month = nextMonth(year, month)
	}

	return schedule, nil
}

// monthlyInterest accrues one 30-day period at the actual/360 daily rate.
func monthlyInterest(principal, annualRate float64) float64 {
	return cents(principal * annualRate / 360 * 30)
}

// annuityPayment is the standard level-payment amortization formula.
func annuityPayment(principal, annualRate float64, months int) float64 {
	monthlyRate := annualRate / 12
	if monthlyRate == 0 {
		return principal / float64(months)
	}
	factor := math.Pow(1+monthlyRate, float64(months))
	return principal * (monthlyRate * factor) / (factor - 1)
}

// cents rounds to two decimal places through a decimal intermediate so
// schedule rows carry exact currency values.
func cents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
