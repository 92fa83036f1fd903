package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/copperfin/runway/internal/forecast"
	"github.com/copperfin/runway/internal/model"
)

// Config holds all runway configuration.
type Config struct {
	General   GeneralConfig             `toml:"general"`
	Forecast  ForecastConfig            `toml:"forecast"`
	Daemon    DaemonConfig              `toml:"daemon"`
	Scenarios map[string]ScenarioConfig `toml:"scenarios,omitempty"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir string `toml:"data_dir,omitempty"`
}

// ForecastConfig holds the defaults a forecast run starts from.
type ForecastConfig struct {
	HorizonWeeks    int      `toml:"horizon_weeks"`
	LookbackWeeks   int      `toml:"lookback_weeks"`
	WeeklyRevenue   float64  `toml:"weekly_revenue"`
	StartingBalance *float64 `toml:"starting_balance,omitempty"`
}

// DaemonConfig holds background service settings.
type DaemonConfig struct {
	Addr        string `toml:"addr"`
	RebuildCron string `toml:"rebuild_cron"`
}

// ScenarioConfig lets users define or override scenario multipliers.
type ScenarioConfig struct {
	RevenueMultiplier float64 `toml:"revenue_multiplier"`
	ExpenseMultiplier float64 `toml:"expense_multiplier"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Forecast: ForecastConfig{
			HorizonWeeks:  13,
			LookbackWeeks: 12,
		},
		Daemon: DaemonConfig{
			Addr:        "127.0.0.1:7381",
			RebuildCron: "0 6 * * *",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "runway")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "runway")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment variables override file values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if dir := os.Getenv("RUNWAY_DATA_DIR"); dir != "" {
		cfg.General.DataDir = dir
	}
	if bal := os.Getenv("RUNWAY_STARTING_BALANCE"); bal != "" {
		if v, err := strconv.ParseFloat(bal, 64); err == nil {
			cfg.Forecast.StartingBalance = &v
		}
	}
	return cfg
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// DataDir returns the directory holding the cash database, creating
// nothing. Falls back to an XDG data path when unset.
func (c Config) DataDir() string {
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "runway")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "runway")
}

// DBPath returns the full path to the SQLite database file.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir(), "cash.db")
}

// ScenarioList merges the built-in scenario table with user overrides,
// sorted by ID so callers iterate deterministically.
func (c Config) ScenarioList() []model.Scenario {
	merged := make(map[string]model.Scenario)
	for _, s := range forecast.DefaultScenarios() {
		merged[s.ID] = s
	}
	for id, sc := range c.Scenarios {
		merged[id] = model.Scenario{
			ID:                id,
			RevenueMultiplier: sc.RevenueMultiplier,
			ExpenseMultiplier: sc.ExpenseMultiplier,
		}
	}
	ids := make([]string, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]model.Scenario, 0, len(ids))
	for _, id := range ids {
		out = append(out, merged[id])
	}
	return out
}
