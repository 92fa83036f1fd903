package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/copperfin/runway/internal/cli"
	"github.com/copperfin/runway/internal/forecast"
	"github.com/copperfin/runway/internal/model"
)

var flagSave bool

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Build and display the weekly forecast",
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().BoolVar(&flagSave, "save", false, "Persist the forecast rows to the database")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	params, err := resolveParams(cmd, cfg)
	if err != nil {
		return err
	}
	inputs, err := loadInputs(s, params)
	if err != nil {
		return err
	}

	result, err := engine.Run(params, inputs)
	if err != nil {
		return err
	}

	printForecast(result)

	if flagSave {
		if err := s.ReplaceForecast(result.ScenarioID, model.ForecastEvents(result.Rows, result.ScenarioID)); err != nil {
			return fmt.Errorf("saving forecast: %w", err)
		}
		if !flagQuiet {
			fmt.Printf("\n  Saved %s forecast to %s\n", result.ScenarioID, cfg.DBPath())
		}
	}

	return nil
}

func printForecast(result *forecast.Result) {
	title := fmt.Sprintf("Cash Forecast — %s scenario, as of %s",
		result.ScenarioID, cli.FormatDate(result.AsOf))
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	rows := make([][]string, 0, len(result.Rows))
	for _, w := range result.Rows {
		rows = append(rows, []string{
			strconv.Itoa(w.WeekNumber),
			cli.FormatWeekRange(w.WeekStart, w.WeekEnd),
			cli.FormatMoney(w.Revenue),
			cli.FormatMoney(-w.Expenses),
			cli.FormatMoney(w.RecurringTotal),
			cli.FormatMoney(w.DebtTotal),
			cli.FormatMoney(w.NetCashFlow),
			cli.FormatMoney(w.EndingBalance),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Wk", "Dates", "Revenue", "Expenses", "Recurring", "Debt", "Net", "Ending"},
		Rows:    rows,
	}))

	fmt.Println()
	printSummary(result)
	printWarnings(result.Warnings)
}

func printSummary(result *forecast.Result) {
	fmt.Printf("  Starting balance:  %s\n", cli.FormatMoney(result.StartingBalance))
	fmt.Printf("  Avg weekly spend:  %s\n", cli.FormatMoney(result.WeeklyExpense))

	if result.BurnRate > 0 {
		fmt.Printf("  Burn rate:         %s/week\n", cli.FormatMoney(result.BurnRate))
	} else {
		fmt.Printf("  Burn rate:         cash positive\n")
	}

	if result.RunwayWeek != nil {
		w := result.Rows[*result.RunwayWeek-1]
		fmt.Printf("  Runway:            cash out in week %d (%s)\n",
			*result.RunwayWeek, cli.FormatWeekRange(w.WeekStart, w.WeekEnd))
	} else {
		fmt.Printf("  Runway:            beyond the %d-week horizon\n", len(result.Rows))
	}

	flags := make([]string, 0, len(result.Flags))
	for _, f := range result.Flags {
		flags = append(flags, string(f))
	}
	fmt.Printf("  Risk:              %s\n", strings.Join(flags, ", "))
}

func printWarnings(warnings []forecast.ConfigurationError) {
	if len(warnings) == 0 {
		return
	}
	fmt.Println()
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "  %s %s\n", cli.WarnStyle.Render("warning:"), w.Error())
	}
}
