package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/report"
)

var (
	flagTotalMonth string
	flagTotalYear  string
)

var totalCmd = &cobra.Command{
	Use:   "total",
	Short: "Show the monthly or yearly total",
}

var totalMonthlyCmd = &cobra.Command{
	Use:     "monthly",
	Short:   "Total spent in one month",
	Example: "  spendlog total monthly --month 3 --year 2024",
	Args:    cobra.NoArgs,
	RunE:    runTotalMonthly,
}

var totalYearlyCmd = &cobra.Command{
	Use:     "yearly",
	Short:   "Total spent in one year",
	Example: "  spendlog total yearly --year 2023",
	Args:    cobra.NoArgs,
	RunE:    runTotalYearly,
}

func init() {
	today := model.Today()
	totalMonthlyCmd.Flags().StringVar(&flagTotalMonth, "month", strconv.Itoa(int(today.Month())), "Month, 1-12")
	totalMonthlyCmd.Flags().StringVar(&flagTotalYear, "year", strconv.Itoa(today.Year()), "Year")
	totalYearlyCmd.Flags().StringVar(&flagTotalYear, "year", strconv.Itoa(today.Year()), "Year")

	totalCmd.AddCommand(totalMonthlyCmd, totalYearlyCmd)
	rootCmd.AddCommand(totalCmd)
}

func runTotalMonthly(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	expenses := s.ledger.List()
	var p report.Panels
	p.ToggleMonthly(len(expenses))
	if notice := p.EmptyNotice(); notice != "" {
		fmt.Printf("  %s\n", notice)
		return nil
	}

	p.Month, p.Year = flagTotalMonth, flagTotalYear
	if err := p.ShowMonthlyTotal(expenses); err != nil {
		return totalInputError(err, "--month 1-12 and --year")
	}

	month, _ := strconv.Atoi(p.Month)
	fmt.Printf("  Total for %s %s: %s\n",
		cli.FormatMonth(month), p.Year,
		cli.RenderAmount(cli.FormatAmount(s.cfg.General.CurrencySymbol, p.MonthlyTotal)))
	return nil
}

func runTotalYearly(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	expenses := s.ledger.List()
	var p report.Panels
	p.ToggleYearly(len(expenses))
	if notice := p.EmptyNotice(); notice != "" {
		fmt.Printf("  %s\n", notice)
		return nil
	}

	p.YearOnly = flagTotalYear
	if err := p.ShowYearlyTotal(expenses); err != nil {
		return totalInputError(err, "--year")
	}

	fmt.Printf("  Total for %s: %s\n",
		p.YearOnly,
		cli.RenderAmount(cli.FormatAmount(s.cfg.General.CurrencySymbol, p.YearlyTotal)))
	return nil
}

func totalInputError(err error, want string) error {
	if errors.Is(err, report.ErrMissingInput) || errors.Is(err, report.ErrInvalidInput) {
		return fmt.Errorf("%w: expected %s", err, want)
	}
	return err
}
