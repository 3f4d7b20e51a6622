package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/report"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recorded expenses",
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	expenses := s.ledger.List()
	if len(expenses) == 0 {
		fmt.Println()
		fmt.Println("  No expenses recorded yet.")
		fmt.Println("  Add one with `spendlog add` or open `spendlog tui`.")
		fmt.Println()
		return nil
	}

	fmt.Println()
	cli.PrintTable(os.Stdout, expenseTable(expenses, s.cfg.General.CurrencySymbol))
	return nil
}

func expenseTable(expenses []model.Expense, symbol string) cli.Table {
	rows := make([][]string, 0, len(expenses))
	for i, e := range expenses {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			cli.ShortID(e.ID),
			e.Category.String(),
			cli.FormatAmount(symbol, e.Amount),
			e.Date.String(),
			e.PaymentMode.String(),
		})
	}
	return cli.Table{
		Title:    fmt.Sprintf("Expenses (%d)", len(expenses)),
		Headers:  []string{"#", "ID", "Category", "Amount", "Date", "Mode"},
		Rows:     rows,
		Footer:   []string{"", "", "Total", cli.FormatAmount(symbol, report.Sum(expenses)), "", ""},
		LeftCols: 3,
	}
}
