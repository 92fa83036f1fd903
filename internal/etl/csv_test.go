package etl

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestImportCSV(t *testing.T) {
	path := writeCSV(t, `Date,Description,Amount
2026-01-05,SHOPIFY PAYOUT 8871,"$42,150.88"
2026-01-06,GUSTO PAYROLL,(18250.00)
01/08/2026,Office snacks,-85.12
`)
	events, err := ImportCSV(path, DefaultRules(), quietLogger())
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	// Shopify settles two days after the ledger date.
	if got, want := events[0].Date, time.Date(2026, time.January, 7, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("payout date %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
	if got, want := events[0].Amount, 42150.88; got != want {
		t.Errorf("payout amount %.2f, want %.2f", got, want)
	}
	if got, want := events[0].Category, "payouts"; got != want {
		t.Errorf("payout category %q, want %q", got, want)
	}

	if got, want := events[1].Amount, -18250.00; got != want {
		t.Errorf("parenthesized amount %.2f, want %.2f", got, want)
	}
	if got, want := events[1].Category, "payroll"; got != want {
		t.Errorf("payroll category %q, want %q", got, want)
	}

	if got, want := events[2].Category, "uncategorized"; got != want {
		t.Errorf("fallback category %q, want %q", got, want)
	}
	if got, want := events[2].Date, time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("slash date parsed as %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestImportCSVSkipsBadRows(t *testing.T) {
	path := writeCSV(t, `Date,Description,Amount
not-a-date,Mystery,100.00
2026-01-05,Valid row,-10.00
2026-01-06,Bad amount,ten dollars
`)
	events, err := ImportCSV(path, DefaultRules(), quietLogger())
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Description != "Valid row" {
		t.Errorf("kept wrong row: %+v", events[0])
	}
}

func TestImportCSVMissingColumns(t *testing.T) {
	path := writeCSV(t, `Foo,Bar
1,2
`)
	if _, err := ImportCSV(path, DefaultRules(), quietLogger()); err == nil {
		t.Fatal("expected error for missing columns, got nil")
	}
}

func TestLoadRulesAndCategorize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `default_category: other
rules:
  - match: ACME FREIGHT
    category: shipping
  - match: interest
    category: debt_service
    lag_days: 1
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing rules: %v", err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}

	cat, lag := rules.Categorize("acme freight inv 42")
	if cat != "shipping" || lag != 0 {
		t.Errorf("got (%q, %d), want (shipping, 0)", cat, lag)
	}
	cat, lag = rules.Categorize("SBA LOAN INTEREST")
	if cat != "debt_service" || lag != 1 {
		t.Errorf("got (%q, %d), want (debt_service, 1)", cat, lag)
	}
	cat, _ = rules.Categorize("unknown vendor")
	if cat != "other" {
		t.Errorf("fallback category %q, want other", cat)
	}
}
