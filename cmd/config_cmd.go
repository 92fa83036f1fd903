// Package cmd implements the runway CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/copperfin/runway/internal/cli"
	"github.com/copperfin/runway/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", cfg.DataDir())
	fmt.Printf("    Database:       %s\n", cfg.DBPath())
	fmt.Println()

	fmt.Println("  [Forecast]")
	fmt.Printf("    Horizon:         %d weeks\n", cfg.Forecast.HorizonWeeks)
	fmt.Printf("    Lookback:        %d weeks\n", cfg.Forecast.LookbackWeeks)
	fmt.Printf("    Weekly revenue:  %s\n", cli.FormatMoney(cfg.Forecast.WeeklyRevenue))
	if cfg.Forecast.StartingBalance != nil {
		fmt.Printf("    Starting balance: %s\n", cli.FormatMoney(*cfg.Forecast.StartingBalance))
	} else {
		fmt.Println("    Starting balance: not set (pass --balance per run)")
	}
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:      %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Rebuild cron: %s\n", cfg.Daemon.RebuildCron)
	fmt.Println()

	fmt.Println("  [Scenarios]")
	for _, sc := range cfg.ScenarioList() {
		fmt.Printf("    %-8s revenue %s, expenses %s\n",
			sc.ID, cli.FormatMultiplier(sc.RevenueMultiplier), cli.FormatMultiplier(sc.ExpenseMultiplier))
	}
	fmt.Println()

	fmt.Println("  Run `runway setup` to reconfigure.")
	return nil
}
