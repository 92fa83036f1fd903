package forecast

import (
	"math"
	"testing"

	"github.com/copperfin/runway/internal/model"
)

func rowsFromNets(nets ...float64) []model.WeeklyForecastRow {
	rows := make([]model.WeeklyForecastRow, len(nets))
	for i, n := range nets {
		rows[i] = model.WeeklyForecastRow{WeekNumber: i + 1, NetCashFlow: n}
	}
	return rows
}

func TestBurnRate_AveragesOverWholeHorizon(t *testing.T) {
	// +10k then -40k: sum is -30k, so burn is the average magnitude
	// 15k, not the worst week's 40k.
	rows := rowsFromNets(10000, -40000)
	if got := BurnRate(rows); math.Abs(got-15000) > 1e-9 {
		t.Fatalf("burn rate = %.2f, want 15000", got)
	}
}

func TestBurnRate_ZeroWhenNetPositive(t *testing.T) {
	rows := rowsFromNets(-5000, 20000)
	if got := BurnRate(rows); got != 0 {
		t.Fatalf("burn rate = %.2f, want 0 for net-positive horizon", got)
	}
}

func TestRunwayWeek_StrictlyNegative(t *testing.T) {
	rows := rowsFromNets(-100, -100, -100)
	ChainBalances(rows, 200)

	// Week 2 ends exactly at zero: not a runway breach. Week 3 is.
	if rows[1].EndingBalance != 0 {
		t.Fatalf("week 2 ending = %.2f, want exactly 0", rows[1].EndingBalance)
	}
	runway := RunwayWeek(rows)
	if runway == nil || *runway != 3 {
		t.Fatalf("runway = %v, want week 3 (strict less-than-zero)", runway)
	}
}

func TestRunwayWeek_AbsentWhenPositive(t *testing.T) {
	rows := rowsFromNets(1000, 1000)
	ChainBalances(rows, 0)
	if runway := RunwayWeek(rows); runway != nil {
		t.Fatalf("runway = %d, want absent", *runway)
	}
}

func TestAssessRisk_ShortRunway(t *testing.T) {
	rows := rowsFromNets(-100, -100)
	ChainBalances(rows, 50)
	runway := RunwayWeek(rows)

	flags := AssessRisk(rows, runway)
	if !hasFlag(flags, model.RiskShortRunway) {
		t.Errorf("flags = %v, want short_runway", flags)
	}
	if !hasFlag(flags, model.RiskNegativeFinal) {
		t.Errorf("flags = %v, want negative_final", flags)
	}
}

func TestAssessRisk_NegativeDipRecovered(t *testing.T) {
	rows := rowsFromNets(-150, 300)
	ChainBalances(rows, 100)
	runway := RunwayWeek(rows)

	if runway == nil || *runway != 1 {
		t.Fatalf("runway = %v, want week 1", runway)
	}
	flags := AssessRisk(rows, runway)
	if !hasFlag(flags, model.RiskNegativeDip) {
		t.Errorf("flags = %v, want negative_dip for a recovered balance", flags)
	}
	if hasFlag(flags, model.RiskNegativeFinal) {
		t.Errorf("flags = %v, final week recovered so negative_final is wrong", flags)
	}
}

func TestAssessRisk_HealthySentinel(t *testing.T) {
	rows := rowsFromNets(1000, 1000)
	ChainBalances(rows, 5000)

	flags := AssessRisk(rows, RunwayWeek(rows))
	if len(flags) != 1 || flags[0] != model.RiskHealthy {
		t.Fatalf("flags = %v, want exactly [healthy]", flags)
	}
}

func hasFlag(flags []model.RiskFlag, f model.RiskFlag) bool {
	for _, x := range flags {
		if x == f {
			return true
		}
	}
	return false
}
