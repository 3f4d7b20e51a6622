package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/report"
)

var flagSummaryYear int

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Yearly summary with monthly, category and payment breakdowns",
	Long: "Yearly summary with monthly, category and payment breakdowns.\n" +
		"Defaults to the most recent year that has expenses.",
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().IntVar(&flagSummaryYear, "year", 0, "Year to summarize")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	expenses := s.ledger.List()
	if len(expenses) == 0 {
		fmt.Printf("\n  %s\n\n", report.EmptyNotice)
		return nil
	}

	year := flagSummaryYear
	if year == 0 {
		year = report.Years(expenses)[0]
	}
	sum := report.Summarize(expenses, year)
	symbol := s.cfg.General.CurrencySymbol

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("EXPENSES  %d", year)))
	fmt.Println()

	if sum.Stats.Count == 0 {
		fmt.Printf("  No expenses in %d.\n\n", year)
		return nil
	}

	stats := sum.Stats
	cli.PrintTable(os.Stdout, cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Expenses", cli.FormatNumber(int64(stats.Count))},
			{"Total", cli.FormatAmount(symbol, stats.Total)},
			{"Average", cli.FormatAmount(symbol, stats.Average)},
			{"Largest", cli.FormatAmount(symbol, stats.Largest)},
			{"---"},
			{"First", stats.First.String()},
			{"Last", stats.Last.String()},
			{"Active months", strconv.Itoa(stats.ActiveMonths)},
		},
	})
	fmt.Println()

	cli.PrintTable(os.Stdout, monthTable(sum.Months, symbol))
	fmt.Println()
	cli.PrintTable(os.Stdout, categoryTable(sum.Categories, stats.Total, symbol))
	fmt.Println()
	cli.PrintTable(os.Stdout, paymentTable(sum.Payments, stats.Total, symbol))
	return nil
}

func monthTable(months []model.MonthTotal, symbol string) cli.Table {
	values := make([]float64, len(months))
	maxValue := 0.0
	for i, m := range months {
		values[i] = m.Total.InexactFloat64()
		if values[i] > maxValue {
			maxValue = values[i]
		}
	}

	rows := make([][]string, 0, len(months))
	for i, m := range months {
		rows = append(rows, []string{
			cli.FormatMonth(m.Month),
			cli.FormatNumber(int64(m.Count)),
			cli.FormatAmount(symbol, m.Total),
			cli.RenderHorizontalBar(values[i], maxValue, 20),
		})
	}
	return cli.Table{
		Title:    "By Month  " + cli.RenderSparkline(values),
		Headers:  []string{"Month", "Count", "Total", ""},
		Rows:     rows,
		LeftCols: 1,
	}
}

func categoryTable(cats []model.CategoryTotal, total decimal.Decimal, symbol string) cli.Table {
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{
			c.Category.String(),
			cli.FormatNumber(int64(c.Count)),
			cli.FormatAmount(symbol, c.Total),
			cli.FormatPercent(c.SharePercent),
		})
	}
	return cli.Table{
		Title:   "By Category",
		Headers: []string{"Category", "Count", "Total", "Share"},
		Rows:    rows,
		Footer:  []string{"Total", "", cli.FormatAmount(symbol, total), ""},
	}
}

func paymentTable(modes []model.PaymentTotal, total decimal.Decimal, symbol string) cli.Table {
	rows := make([][]string, 0, len(modes))
	for _, m := range modes {
		rows = append(rows, []string{
			m.PaymentMode.String(),
			cli.FormatNumber(int64(m.Count)),
			cli.FormatAmount(symbol, m.Total),
			cli.FormatPercent(m.SharePercent),
		})
	}
	return cli.Table{
		Title:   "By Payment Mode",
		Headers: []string{"Mode", "Count", "Total", "Share"},
		Rows:    rows,
		Footer:  []string{"Total", "", cli.FormatAmount(symbol, total), ""},
	}
}
