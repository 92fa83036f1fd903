package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/copperfin/runway/internal/cli"
	"github.com/copperfin/runway/internal/model"
)

var (
	flagRecurringAll      bool
	flagRecurringAmount   float64
	flagRecurringCategory string
	flagRecurringDay      int
)

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "List recurring monthly obligations",
	RunE:  runRecurringList,
}

var recurringAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update a recurring obligation",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecurringAdd,
}

var recurringDisableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Deactivate a recurring obligation without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecurringDisable,
}

func init() {
	recurringCmd.Flags().BoolVarP(&flagRecurringAll, "all", "a", false, "Include inactive obligations")

	recurringAddCmd.Flags().Float64Var(&flagRecurringAmount, "amount", 0, "Monthly amount (negative for outflows)")
	recurringAddCmd.Flags().StringVar(&flagRecurringCategory, "category", "other", "Category label")
	recurringAddCmd.Flags().IntVar(&flagRecurringDay, "day", 1, "Day of month (clamped in short months)")
	_ = recurringAddCmd.MarkFlagRequired("amount")

	recurringCmd.AddCommand(recurringAddCmd)
	recurringCmd.AddCommand(recurringDisableCmd)
	rootCmd.AddCommand(recurringCmd)
}

func runRecurringList(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	items, err := s.Recurring(!flagRecurringAll)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("  No recurring obligations. Add one with `runway recurring add` or run `runway seed`.")
		return nil
	}

	rows := make([][]string, 0, len(items))
	var monthly float64
	for _, r := range items {
		status := "active"
		if !r.Active {
			status = "inactive"
		} else {
			monthly += r.Amount
		}
		rows = append(rows, []string{
			r.Name,
			cli.FormatMoney(r.Amount),
			r.Category,
			strconv.Itoa(r.DayOfMonth),
			status,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Recurring Obligations",
		Headers: []string{"Name", "Amount", "Category", "Day", "Status"},
		Rows:    rows,
	}))
	fmt.Printf("\n  Active monthly total: %s\n", cli.FormatMoney(monthly))
	return nil
}

func runRecurringAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	item := model.RecurringObligation{
		Name:       args[0],
		Amount:     flagRecurringAmount,
		Category:   flagRecurringCategory,
		Frequency:  model.FrequencyMonthly,
		DayOfMonth: flagRecurringDay,
		Active:     true,
	}
	if err := s.SaveRecurring([]model.RecurringObligation{item}); err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Printf("  Saved %q: %s on day %d\n", item.Name, cli.FormatMoney(item.Amount), item.DayOfMonth)
	}
	return nil
}

func runRecurringDisable(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	items, err := s.Recurring(false)
	if err != nil {
		return err
	}
	for _, r := range items {
		if r.Name == args[0] {
			r.Active = false
			if err := s.SaveRecurring([]model.RecurringObligation{r}); err != nil {
				return err
			}
			if !flagQuiet {
				fmt.Printf("  Disabled %q\n", r.Name)
			}
			return nil
		}
	}
	return fmt.Errorf("no recurring obligation named %q", args[0])
}
