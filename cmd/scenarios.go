package cmd

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/copperfin/runway/internal/cli"
	"github.com/copperfin/runway/internal/config"
	"github.com/copperfin/runway/internal/forecast"
	"github.com/copperfin/runway/internal/model"
	"github.com/copperfin/runway/internal/store"
)

var flagScenariosSave bool

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Run every scenario and compare outcomes side by side",
	RunE:  runScenarios,
}

func init() {
	scenariosCmd.Flags().BoolVar(&flagScenariosSave, "save", false, "Persist every scenario's forecast to the database")
	rootCmd.AddCommand(scenariosCmd)
}

// runAllScenarios executes one engine run per scenario concurrently.
// Inputs are shared read-only; each run owns its own result.
func runAllScenarios(cfg config.Config, engine *forecast.Engine, base forecast.Params, inputs forecast.Inputs) (map[string]*forecast.Result, error) {
	scenarios := cfg.ScenarioList()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		results  = make(map[string]*forecast.Result, len(scenarios))
		firstErr error
	)

	for _, sc := range scenarios {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			p := base
			p.ScenarioID = id
			result, err := engine.Run(p, inputs)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("scenario %s: %w", id, err)
				}
				return
			}
			results[id] = result
		}(sc.ID)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

func runScenarios(cmd *cobra.Command, _ []string) error {
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

	results, err := runAllScenarios(cfg, engine, params, inputs)
	if err != nil {
		return err
	}

	printScenarioComparison(cfg, results)

	if flagScenariosSave {
		if err := saveAll(s, results); err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Printf("\n  Saved %d forecasts to %s\n", len(results), cfg.DBPath())
		}
	}

	var warnings []forecast.ConfigurationError
	for _, sc := range cfg.ScenarioList() {
		if r, ok := results[sc.ID]; ok {
			// Warnings are identical across scenarios; report one set.
			warnings = r.Warnings
			break
		}
	}
	printWarnings(warnings)
	return nil
}

func saveAll(s *store.Store, results map[string]*forecast.Result) error {
	for id, result := range results {
		if err := s.ReplaceForecast(id, model.ForecastEvents(result.Rows, id)); err != nil {
			return fmt.Errorf("saving %s forecast: %w", id, err)
		}
	}
	return nil
}

func printScenarioComparison(cfg config.Config, results map[string]*forecast.Result) {
	fmt.Println(cli.RenderTitle("Scenario Comparison"))
	fmt.Println()

	rows := make([][]string, 0, len(results))
	for _, sc := range cfg.ScenarioList() {
		result, ok := results[sc.ID]
		if !ok {
			continue
		}

		runway := "beyond horizon"
		if result.RunwayWeek != nil {
			runway = fmt.Sprintf("week %d", *result.RunwayWeek)
		}
		burn := "—"
		if result.BurnRate > 0 {
			burn = cli.FormatMoney(result.BurnRate)
		}
		final := 0.0
		if n := len(result.Rows); n > 0 {
			final = result.Rows[n-1].EndingBalance
		}
		flags := ""
		for i, f := range result.Flags {
			if i > 0 {
				flags += ", "
			}
			flags += string(f)
		}

		rows = append(rows, []string{
			sc.ID,
			cli.FormatMultiplier(sc.RevenueMultiplier),
			cli.FormatMultiplier(sc.ExpenseMultiplier),
			burn,
			runway,
			cli.FormatMoney(final),
			flags,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Scenario", "Revenue", "Expenses", "Burn/wk", "Runway", "Final", "Risk"},
		Rows:    rows,
	}))
}
