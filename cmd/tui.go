package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/copperfin/runway/internal/forecast"
	"github.com/copperfin/runway/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive scenario dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	load := func() (map[string]*forecast.Result, error) {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		s, err := openStore(cfg)
		if err != nil {
			return nil, err
		}
		defer s.Close()

		engine, err := newEngine(cfg)
		if err != nil {
			return nil, err
		}
		params, err := resolveParams(cmd, cfg)
		if err != nil {
			return nil, err
		}
		inputs, err := loadInputs(s, params)
		if err != nil {
			return nil, err
		}
		return runAllScenarios(cfg, engine, params, inputs)
	}

	p := tea.NewProgram(tui.NewApp(load), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
