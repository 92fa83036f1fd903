package forecast

import (
	"testing"
	"time"

	"github.com/copperfin/runway/internal/model"
)

func debtRow(loanID string, d time.Time, amount float64, typ model.PaymentType, paid bool) model.DebtPaymentRow {
	return model.DebtPaymentRow{
		LoanID:         loanID,
		LoanName:       "SBA Loan",
		PaymentDate:    d,
		PaymentAmount:  amount,
		InterestAmount: amount,
		PaymentType:    typ,
		IsPaid:         paid,
	}
}

func TestProjectDebt_PlacesPaymentsAsOutflows(t *testing.T) {
	asOf := date(2026, time.January, 12)
	weeks := Horizon(asOf, 13)

	rows := []model.DebtPaymentRow{
		debtRow("sba_loc_001", date(2026, time.January, 30), 4583.33, model.PaymentInterestOnly, false),
		debtRow("sba_loc_001", date(2026, time.February, 28), 4583.33, model.PaymentInterestOnly, false),
	}

	out, warnings := ProjectDebt(rows, weeks, asOf, []string{"sba_loc_001"})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	// Jan 30 is week 3, Feb 28 is week 7.
	if out[2].Total != -4583.33 {
		t.Errorf("week 3 debt = %.2f, want -4583.33", out[2].Total)
	}
	if out[6].Total != -4583.33 {
		t.Errorf("week 7 debt = %.2f, want -4583.33", out[6].Total)
	}
	if got := out[2].ByType[model.PaymentInterestOnly]; got != -4583.33 {
		t.Errorf("week 3 interest-only partition = %.2f, want -4583.33", got)
	}
}

func TestProjectDebt_ExcludesPaidAndPastRows(t *testing.T) {
	asOf := date(2026, time.January, 12)
	weeks := Horizon(asOf, 13)

	rows := []model.DebtPaymentRow{
		debtRow("sba_loc_001", date(2026, time.January, 30), 1000, model.PaymentInterestOnly, true), // already paid
		debtRow("sba_loc_001", date(2026, time.January, 5), 1000, model.PaymentInterestOnly, false), // before asOf
		debtRow("sba_loc_001", date(2026, time.February, 2), 1000, model.PaymentInterestOnly, false),
	}

	out, _ := ProjectDebt(rows, weeks, asOf, nil)

	var total float64
	for _, w := range out {
		total += w.Total
	}
	if total != -1000 {
		t.Fatalf("horizon debt total = %.2f, want -1000 (paid and past rows excluded)", total)
	}
}

func TestProjectDebt_MissingLoanWarnsButProceeds(t *testing.T) {
	asOf := date(2026, time.January, 12)
	weeks := Horizon(asOf, 13)

	out, warnings := ProjectDebt(nil, weeks, asOf, []string{"sba_loc_001"})

	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning for loan with no rows, got %d", len(warnings))
	}
	if warnings[0].Subject != "sba_loc_001" {
		t.Errorf("warning subject = %q, want sba_loc_001", warnings[0].Subject)
	}
	for _, w := range out {
		if w.Total != 0 {
			t.Fatal("expected zero debt service for missing loan")
		}
	}
}
