package config

import (
	"testing"
)

func TestScenarioListIncludesBuiltins(t *testing.T) {
	cfg := DefaultConfig()
	list := cfg.ScenarioList()
	if got, want := len(list), 3; got != want {
		t.Fatalf("got %d scenarios, want %d", got, want)
	}
	ids := []string{list[0].ID, list[1].ID, list[2].ID}
	want := []string{"base", "best", "worst"}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("scenario %d: got %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestScenarioListMergesOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scenarios = map[string]ScenarioConfig{
		"best":   {RevenueMultiplier: 1.25, ExpenseMultiplier: 0.80},
		"stress": {RevenueMultiplier: 0.50, ExpenseMultiplier: 1.30},
	}
	list := cfg.ScenarioList()
	if got, want := len(list), 4; got != want {
		t.Fatalf("got %d scenarios, want %d", got, want)
	}
	for _, s := range list {
		if s.ID == "best" && s.RevenueMultiplier != 1.25 {
			t.Errorf("best revenue multiplier %.2f, want 1.25", s.RevenueMultiplier)
		}
		if s.ID == "stress" && s.ExpenseMultiplier != 1.30 {
			t.Errorf("stress expense multiplier %.2f, want 1.30", s.ExpenseMultiplier)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RUNWAY_DATA_DIR", "/tmp/runway-test")
	t.Setenv("RUNWAY_STARTING_BALANCE", "182500.50")

	cfg := applyEnv(DefaultConfig())
	if got, want := cfg.General.DataDir, "/tmp/runway-test"; got != want {
		t.Errorf("data dir %q, want %q", got, want)
	}
	if cfg.Forecast.StartingBalance == nil {
		t.Fatal("starting balance not set from env")
	}
	if got, want := *cfg.Forecast.StartingBalance, 182500.50; got != want {
		t.Errorf("starting balance %.2f, want %.2f", got, want)
	}
}

func TestDBPathUsesDataDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.DataDir = "/var/lib/runway"
	if got, want := cfg.DBPath(), "/var/lib/runway/cash.db"; got != want {
		t.Errorf("db path %q, want %q", got, want)
	}
}
