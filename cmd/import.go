package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/copperfin/runway/internal/etl"
)

var (
	flagImportRules  string
	flagImportDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a bank or processor CSV export as cash events",
	Long: `Import transactions from a CSV export. Rows are categorized by
substring rules (see --rules); settlement lag shifts processor payouts
to the date the cash actually lands.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&flagImportRules, "rules", "", "YAML categorization rules file (built-in defaults if unset)")
	importCmd.Flags().BoolVar(&flagImportDryRun, "dry-run", false, "Parse and categorize without writing to the database")
	rootCmd.AddCommand(importCmd)
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if flagQuiet {
		log.SetLevel(logrus.ErrorLevel)
	}
	return log
}

func runImport(_ *cobra.Command, args []string) error {
	rules, err := etl.LoadRules(flagImportRules)
	if err != nil {
		return err
	}

	log := newLogger()
	events, err := etl.ImportCSV(args[0], rules, log)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("no importable rows in %s", args[0])
	}

	if flagImportDryRun {
		byCategory := map[string]int{}
		for _, e := range events {
			byCategory[e.Category]++
		}
		fmt.Printf("  Would import %d events:\n", len(events))
		for cat, n := range byCategory {
			fmt.Printf("    %-20s %d\n", cat, n)
		}
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.SaveEvents(events); err != nil {
		return fmt.Errorf("saving events: %w", err)
	}
	if !flagQuiet {
		fmt.Printf("  Imported %d events into %s\n", len(events), cfg.DBPath())
	}
	return nil
}
