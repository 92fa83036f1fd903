package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/copperfin/runway/internal/model"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the stored forecast for a scenario as CSV",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output file (stdout if unset)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	events, err := s.ForecastEvents(flagScenario)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("no stored forecast for scenario %q; run `runway forecast --save` first", flagScenario)
	}

	out := os.Stdout
	if flagExportOut != "" {
		f, err := os.Create(flagExportOut)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	if err := w.Write([]string{"date", "amount", "category", "description", "scenario"}); err != nil {
		return err
	}
	for _, e := range events {
		if err := w.Write(exportRecord(e)); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if !flagQuiet && flagExportOut != "" {
		fmt.Printf("  Exported %d rows to %s\n", len(events), flagExportOut)
	}
	return nil
}

func exportRecord(e model.CashEvent) []string {
	return []string{
		e.Date.Format("2006-01-02"),
		strconv.FormatFloat(e.Amount, 'f', 2, 64),
		e.Category,
		e.Description,
		e.ScenarioID,
	}
}
