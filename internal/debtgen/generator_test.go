package debtgen

import (
	"math"
	"testing"
	"time"

	"github.com/copperfin/runway/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateInterestOnlyPeriod(t *testing.T) {
	terms := LoanTerms{
		LoanID:             "sba-eidl",
		LoanName:           "SBA EIDL",
		Lender:             "SBA",
		Principal:          500000,
		AnnualRate:         0.1075,
		FirstPayment:       date(2026, time.February, 28),
		PaymentDay:         30,
		InterestOnlyMonths: 6,
		AmortizationMonths: 24,
	}
	rows, err := Generate(terms, date(2026, time.January, 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got, want := len(rows), 30; got != want {
		t.Fatalf("got %d rows, want %d", got, want)
	}
	for i, row := range rows[:6] {
		if row.PaymentType != model.PaymentInterestOnly {
			t.Errorf("row %d: type %q, want interest_only", i, row.PaymentType)
		}
		if row.PrincipalAmount != 0 {
			t.Errorf("row %d: principal %.2f, want 0", i, row.PrincipalAmount)
		}
		if row.EndingPrincipal != 500000 {
			t.Errorf("row %d: ending principal %.2f, want 500000", i, row.EndingPrincipal)
		}
	}
	// 500000 * 0.1075 / 360 * 30
	if got, want := rows[0].InterestAmount, 4479.17; got != want {
		t.Errorf("first interest payment %.2f, want %.2f", got, want)
	}
	if rows[6].PaymentType != model.PaymentPrincipalAndInterest {
		t.Errorf("row 6: type %q, want principal_and_interest", rows[6].PaymentType)
	}
}

func TestGenerateAmortizesToZero(t *testing.T) {
	terms := LoanTerms{
		LoanID:             "term-a",
		Principal:          100000,
		AnnualRate:         0.12,
		FirstPayment:       date(2026, time.March, 15),
		PaymentDay:         15,
		AmortizationMonths: 12,
	}
	rows, err := Generate(terms, date(2026, time.January, 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got, want := len(rows), 12; got != want {
		t.Fatalf("got %d rows, want %d", got, want)
	}
	if got, want := rows[0].InterestAmount, 1000.0; got != want {
		t.Errorf("first interest %.2f, want %.2f", got, want)
	}

	last := rows[len(rows)-1]
	if last.EndingPrincipal != 0 {
		t.Errorf("final ending principal %.2f, want 0", last.EndingPrincipal)
	}

	var totalPrincipal float64
	for i, row := range rows {
		totalPrincipal += row.PrincipalAmount
		if diff := math.Abs(row.PaymentAmount - rows[0].PaymentAmount); diff > 0.05 {
			t.Errorf("row %d: payment %.2f drifts from %.2f", i, row.PaymentAmount, rows[0].PaymentAmount)
		}
		if i > 0 && row.BeginningPrincipal != rows[i-1].EndingPrincipal {
			t.Errorf("row %d: beginning %.2f != prior ending %.2f", i, row.BeginningPrincipal, rows[i-1].EndingPrincipal)
		}
	}
	if diff := math.Abs(totalPrincipal - 100000); diff > 0.01 {
		t.Errorf("total principal %.2f, want 100000", totalPrincipal)
	}
}

func TestGenerateZeroRate(t *testing.T) {
	terms := LoanTerms{
		LoanID:             "friendly",
		Principal:          12000,
		FirstPayment:       date(2026, time.February, 1),
		PaymentDay:         1,
		AmortizationMonths: 12,
	}
	rows, err := Generate(terms, date(2026, time.January, 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, row := range rows {
		if row.PaymentAmount != 1000 || row.InterestAmount != 0 {
			t.Errorf("row %d: payment %.2f interest %.2f, want 1000 and 0", i, row.PaymentAmount, row.InterestAmount)
		}
	}
	if got := rows[len(rows)-1].EndingPrincipal; got != 0 {
		t.Errorf("final ending principal %.2f, want 0", got)
	}
}

func TestGenerateClampsPaymentDay(t *testing.T) {
	terms := LoanTerms{
		LoanID:             "clamped",
		Principal:          50000,
		AnnualRate:         0.08,
		FirstPayment:       date(2026, time.January, 30),
		PaymentDay:         30,
		AmortizationMonths: 4,
	}
	rows, err := Generate(terms, date(2026, time.January, 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := []time.Time{
		date(2026, time.January, 30),
		date(2026, time.February, 28),
		date(2026, time.March, 30),
		date(2026, time.April, 30),
	}
	for i, w := range want {
		if !rows[i].PaymentDate.Equal(w) {
			t.Errorf("row %d: payment date %s, want %s", i, rows[i].PaymentDate.Format("2006-01-02"), w.Format("2006-01-02"))
		}
	}
}

func TestGenerateMarksPastRowsPaid(t *testing.T) {
	terms := LoanTerms{
		LoanID:             "seasoned",
		Principal:          60000,
		AnnualRate:         0.06,
		FirstPayment:       date(2025, time.November, 5),
		PaymentDay:         5,
		AmortizationMonths: 6,
	}
	rows, err := Generate(terms, date(2026, time.January, 15))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, row := range rows {
		paid := row.PaymentDate.Before(date(2026, time.January, 15))
		if row.IsPaid != paid {
			t.Errorf("row %d (%s): IsPaid=%v, want %v", row.PaymentNumber, row.PaymentDate.Format("2006-01-02"), row.IsPaid, paid)
		}
	}
}

func TestGenerateRejectsBadTerms(t *testing.T) {
	cases := []struct {
		name  string
		terms LoanTerms
	}{
		{"missing id", LoanTerms{Principal: 100, PaymentDay: 1, FirstPayment: date(2026, time.January, 1), AmortizationMonths: 1}},
		{"zero principal", LoanTerms{LoanID: "x", PaymentDay: 1, FirstPayment: date(2026, time.January, 1), AmortizationMonths: 1}},
		{"bad day", LoanTerms{LoanID: "x", Principal: 100, PaymentDay: 32, FirstPayment: date(2026, time.January, 1), AmortizationMonths: 1}},
		{"no amortization", LoanTerms{LoanID: "x", Principal: 100, PaymentDay: 1, FirstPayment: date(2026, time.January, 1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Generate(tc.terms, date(2026, time.January, 1)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}
