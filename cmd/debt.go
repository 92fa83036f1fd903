package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/copperfin/runway/internal/cli"
	"github.com/copperfin/runway/internal/model"
)

var flagDebtAll bool

var debtCmd = &cobra.Command{
	Use:   "debt",
	Short: "Show the loan payment schedule",
	RunE:  runDebt,
}

func init() {
	debtCmd.Flags().BoolVarP(&flagDebtAll, "all", "a", false, "Include rows already paid")
	rootCmd.AddCommand(debtCmd)
}

func runDebt(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	var rows []model.DebtPaymentRow
	if flagDebtAll {
		rows, err = s.AllDebtRows()
	} else {
		rows, err = s.UnpaidDebtRows()
	}
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("  No debt schedule. Generate one with `runway loan generate`.")
		return nil
	}

	out := make([][]string, 0, len(rows))
	totals := map[model.PaymentType]float64{}
	var remaining float64
	for _, row := range rows {
		status := ""
		if row.IsPaid {
			status = "paid"
		}
		out = append(out, []string{
			row.LoanID,
			cli.FormatDate(row.PaymentDate),
			strconv.Itoa(row.PaymentNumber),
			cli.FormatMoney(row.PaymentAmount),
			cli.FormatMoney(row.PrincipalAmount),
			cli.FormatMoney(row.InterestAmount),
			cli.FormatMoney(row.EndingPrincipal),
			string(row.PaymentType),
			status,
		})
		if !row.IsPaid {
			totals[row.PaymentType] += row.PaymentAmount
			remaining = row.EndingPrincipal
		}
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Debt Schedule",
		Headers: []string{"Loan", "Date", "#", "Payment", "Principal", "Interest", "Balance", "Type", ""},
		Rows:    out,
	}))

	fmt.Println()
	for typ, total := range totals {
		fmt.Printf("  Unpaid %-24s %s\n", string(typ)+":", cli.FormatMoney(total))
	}
	fmt.Printf("  Final scheduled balance:         %s\n", cli.FormatMoney(remaining))
	return nil
}
