package model

import "time"

// PaymentType classifies a debt schedule row.
type PaymentType string

// Debt payment types.
const (
	PaymentInterestOnly         PaymentType = "interest_only"
	PaymentPrincipalAndInterest PaymentType = "principal_and_interest"
	PaymentBalloon              PaymentType = "balloon"
)

// DebtPaymentRow is one precomputed amortization entry for a loan.
// Within a loan, rows are ordered by payment date and the ending
// principal of row N equals the beginning principal of row N+1.
type DebtPaymentRow struct {
	ScheduleID         string
	LoanID             string
	LoanName           string
	Lender             string
	PaymentDate        time.Time
	PaymentNumber      int
	PaymentAmount      float64
	PrincipalAmount    float64
	InterestAmount     float64
	FeesAmount         float64
	BeginningPrincipal float64
	EndingPrincipal    float64
	InterestRate       float64
	PaymentType        PaymentType
	IsPaid             bool
}
