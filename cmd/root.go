package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/copperfin/runway/internal/config"
	"github.com/copperfin/runway/internal/forecast"
	"github.com/copperfin/runway/internal/store"
)

var (
	flagWeeks    int
	flagLookback int
	flagScenario string
	flagRevenue  float64
	flagBalance  float64
	flagAsOf     string
	flagDataDir  string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "runway",
	Short: "Rolling weekly cash-flow forecast",
	Long:  "Project weekly cash position from actuals, recurring obligations, and loan schedules.",
	RunE:  runForecast,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagWeeks, "weeks", "w", 0, "Forecast horizon in weeks (default from config)")
	rootCmd.PersistentFlags().IntVar(&flagLookback, "lookback", 0, "Historical lookback in weeks (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagScenario, "scenario", "s", "base", "Scenario to run")
	rootCmd.PersistentFlags().Float64VarP(&flagRevenue, "revenue", "r", 0, "Assumed weekly revenue")
	rootCmd.PersistentFlags().Float64VarP(&flagBalance, "balance", "b", 0, "Current bank balance")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Reference date (YYYY-MM-DD, default today)")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory override")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig reads the config file with the --data-dir flag applied.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	return cfg, nil
}

// openStore opens the cash database for the active config.
func openStore(cfg config.Config) (*store.Store, error) {
	s, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening cash database: %w", err)
	}
	return s, nil
}

// resolveAsOf parses --as-of, defaulting to today.
func resolveAsOf() (time.Time, error) {
	if flagAsOf == "" {
		return forecast.DateOnly(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", flagAsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of %q: use YYYY-MM-DD", flagAsOf)
	}
	return t, nil
}

// resolveParams merges flags over config defaults into engine params.
// Flags only win when the user actually set them, so a configured
// starting balance survives an unrelated invocation.
func resolveParams(cmd *cobra.Command, cfg config.Config) (forecast.Params, error) {
	asOf, err := resolveAsOf()
	if err != nil {
		return forecast.Params{}, err
	}

	p := forecast.Params{
		AsOf:          asOf,
		ScenarioID:    flagScenario,
		HorizonWeeks:  cfg.Forecast.HorizonWeeks,
		LookbackWeeks: cfg.Forecast.LookbackWeeks,
		WeeklyRevenue: cfg.Forecast.WeeklyRevenue,
	}
	if flagWeeks > 0 {
		p.HorizonWeeks = flagWeeks
	}
	if flagLookback > 0 {
		p.LookbackWeeks = flagLookback
	}
	if cmd.Flags().Changed("revenue") {
		p.WeeklyRevenue = flagRevenue
	}

	if cmd.Flags().Changed("balance") {
		b := flagBalance
		p.StartingBalance = &b
	} else if cfg.Forecast.StartingBalance != nil {
		b := *cfg.Forecast.StartingBalance
		p.StartingBalance = &b
	}

	return p, nil
}

// newEngine builds the forecast engine from the config's scenario table.
func newEngine(cfg config.Config) (*forecast.Engine, error) {
	resolver, err := forecast.NewResolver(cfg.ScenarioList())
	if err != nil {
		return nil, fmt.Errorf("invalid scenario config: %w", err)
	}
	return forecast.NewEngine(resolver), nil
}

// loadInputs pulls everything a forecast run needs from the store.
func loadInputs(s *store.Store, p forecast.Params) (forecast.Inputs, error) {
	since := p.AsOf.AddDate(0, 0, -7*p.LookbackWeeks)
	actuals, err := s.ActualsSince(since)
	if err != nil {
		return forecast.Inputs{}, fmt.Errorf("loading actuals: %w", err)
	}
	recurring, err := s.Recurring(true)
	if err != nil {
		return forecast.Inputs{}, fmt.Errorf("loading recurring obligations: %w", err)
	}
	debtRows, err := s.UnpaidDebtRows()
	if err != nil {
		return forecast.Inputs{}, fmt.Errorf("loading debt schedule: %w", err)
	}
	loanIDs, err := s.LoanIDs()
	if err != nil {
		return forecast.Inputs{}, fmt.Errorf("loading loan ids: %w", err)
	}

	return forecast.Inputs{
		Actuals:       actuals,
		Recurring:     recurring,
		DebtRows:      debtRows,
		ExpectedLoans: loanIDs,
	}, nil
}
