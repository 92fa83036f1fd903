package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/copperfin/runway/internal/cli"
	"github.com/copperfin/runway/internal/model"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the standard recurring obligations",
	Long: `Seed the database with the standing monthly obligations: SBA EIDL
interest and the Shopify subscription. Existing entries with the same
name are updated, everything else is left alone.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// seedItems are the standing monthly obligations of the business.
func seedItems() []model.RecurringObligation {
	return []model.RecurringObligation{
		{
			Name:       "SBA EIDL Interest",
			Amount:     -4583.33,
			Category:   "debt_service",
			Frequency:  model.FrequencyMonthly,
			DayOfMonth: 30,
			Active:     true,
		},
		{
			Name:       "Shopify Subscription",
			Amount:     -299.00,
			Category:   "software",
			Frequency:  model.FrequencyMonthly,
			DayOfMonth: 1,
			Active:     true,
		},
	}
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	items := seedItems()
	if err := s.SaveRecurring(items); err != nil {
		return err
	}
	if !flagQuiet {
		for _, r := range items {
			fmt.Printf("  Seeded %q: %s on day %d\n", r.Name, cli.FormatMoney(r.Amount), r.DayOfMonth)
		}
	}
	return nil
}
