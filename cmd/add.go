package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/form"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/tui"
)

var (
	flagCategory string
	flagAmount   string
	flagDate     string
	flagMode     string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new expense",
	Long: "Record a new expense. Any field not given as a flag is asked for\n" +
		"interactively.",
	Example: "  spendlog add --category Food --amount 250 --date 2024-03-05 --mode UPI",
	Args:    cobra.NoArgs,
	RunE:    runAdd,
}

func init() {
	addExpenseFlags(addCmd)
	rootCmd.AddCommand(addCmd)
}

// addExpenseFlags registers the four field flags shared by add and edit.
func addExpenseFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagCategory, "category", "c", "", "Expense category (e.g. Food, \"Mobile & Internet\")")
	cmd.Flags().StringVarP(&flagAmount, "amount", "a", "", "Amount, a positive number")
	cmd.Flags().StringVar(&flagDate, "date", "", "Date as YYYY-MM-DD")
	cmd.Flags().StringVarP(&flagMode, "mode", "m", "", "Payment mode: Cash or UPI")
}

// applyFieldFlags overwrites fields with the flags the user actually set and
// reports whether any were set.
func applyFieldFlags(cmd *cobra.Command, f *form.Fields) bool {
	set := false
	for name, dst := range map[string]*string{
		"category": &f.Category,
		"amount":   &f.Amount,
		"date":     &f.Date,
		"mode":     &f.PaymentMode,
	} {
		if cmd.Flags().Changed(name) {
			*dst = cmd.Flags().Lookup(name).Value.String()
			set = true
		}
	}
	return set
}

func runAdd(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	var ctrl form.Controller
	applyFieldFlags(cmd, &ctrl.Fields)
	if len(ctrl.Fields.Missing()) > 0 {
		if ctrl.Fields.Date == "" {
			ctrl.Fields.Date = model.Today().String()
		}
		if err := tui.NewExpenseForm(&ctrl.Fields, ctrl.SubmitLabel()).WithShowHelp(true).Run(); err != nil {
			return fmt.Errorf("reading expense: %w", err)
		}
	}

	saved, err := ctrl.Submit(commandContext(cmd), s.ledger)
	if err != nil {
		return err
	}

	fmt.Printf("  Added #%d  %s  %s on %s (%s)  [%s]\n",
		s.ledger.Len(),
		saved.Category,
		cli.FormatAmount(s.cfg.General.CurrencySymbol, saved.Amount),
		saved.Date,
		saved.PaymentMode,
		cli.ShortID(saved.ID))
	return nil
}
