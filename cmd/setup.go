package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/copperfin/runway/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	horizon := strconv.Itoa(cfg.Forecast.HorizonWeeks)
	lookback := strconv.Itoa(cfg.Forecast.LookbackWeeks)
	revenue := ""
	if cfg.Forecast.WeeklyRevenue > 0 {
		revenue = strconv.FormatFloat(cfg.Forecast.WeeklyRevenue, 'f', -1, 64)
	}
	balance := ""
	if cfg.Forecast.StartingBalance != nil {
		balance = strconv.FormatFloat(*cfg.Forecast.StartingBalance, 'f', -1, 64)
	}
	dataDir := cfg.General.DataDir

	positiveInt := func(label string) func(string) error {
		return func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil || n < 1 {
				return fmt.Errorf("%s must be a positive whole number", label)
			}
			return nil
		}
	}
	optionalMoney := func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return fmt.Errorf("enter a plain number, no symbols")
		}
		return nil
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Forecast horizon (weeks)").
				Description("How far ahead to project. 13 covers a quarter.").
				Value(&horizon).
				Validate(positiveInt("horizon")),
			huh.NewInput().
				Title("Historical lookback (weeks)").
				Description("How much history feeds the weekly expense average.").
				Value(&lookback).
				Validate(positiveInt("lookback")),
			huh.NewInput().
				Title("Assumed weekly revenue").
				Description("Optional. Can also be passed per run with --revenue.").
				Value(&revenue).
				Validate(optionalMoney),
			huh.NewInput().
				Title("Current bank balance").
				Description("Optional. If unset, every run must pass --balance.").
				Value(&balance).
				Validate(optionalMoney),
			huh.NewInput().
				Title("Data directory").
				Description("Where the cash database lives. Blank for the default.").
				Value(&dataDir),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Forecast.HorizonWeeks, _ = strconv.Atoi(strings.TrimSpace(horizon))
	cfg.Forecast.LookbackWeeks, _ = strconv.Atoi(strings.TrimSpace(lookback))
	if v := strings.TrimSpace(revenue); v != "" {
		cfg.Forecast.WeeklyRevenue, _ = strconv.ParseFloat(v, 64)
	}
	if v := strings.TrimSpace(balance); v != "" {
		b, _ := strconv.ParseFloat(v, 64)
		cfg.Forecast.StartingBalance = &b
	}
	cfg.General.DataDir = strings.TrimSpace(dataDir)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `runway seed` to load the standard recurring obligations,")
	fmt.Println("  then `runway import` your bank CSV and you're ready to forecast.")
	fmt.Println()

	return nil
}
