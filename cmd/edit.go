package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/form"
	"github.com/theirongolddev/spendlog/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <index|id>",
	Short: "Change an existing expense",
	Long: "Change an existing expense, addressed by its position in `spendlog list`\n" +
		"or by its id. Fields without a flag keep their current value; with no\n" +
		"flags at all the expense is opened in an interactive form.",
	Example: "  spendlog edit 3 --amount 120\n  spendlog edit 9f1c2a7e --mode Cash",
	Args:    cobra.ExactArgs(1),
	RunE:    runEdit,
}

func init() {
	addExpenseFlags(editCmd)
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	current, err := resolveRef(s.ledger, args[0])
	if err != nil {
		return err
	}

	var ctrl form.Controller
	ctrl.BeginEdit(current)
	if !applyFieldFlags(cmd, &ctrl.Fields) {
		if err := tui.NewExpenseForm(&ctrl.Fields, ctrl.SubmitLabel()).WithShowHelp(true).Run(); err != nil {
			return fmt.Errorf("reading expense: %w", err)
		}
	}

	saved, err := ctrl.Submit(commandContext(cmd), s.ledger)
	if err != nil {
		return err
	}

	fmt.Printf("  Updated #%d  %s  %s on %s (%s)\n",
		s.ledger.IndexOf(saved.ID)+1,
		saved.Category,
		cli.FormatAmount(s.cfg.General.CurrencySymbol, saved.Amount),
		saved.Date,
		saved.PaymentMode)
	return nil
}
