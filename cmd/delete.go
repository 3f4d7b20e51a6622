package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendlog/internal/cli"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <index|id>",
	Aliases: []string{"rm"},
	Short:   "Remove an expense",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	e, err := resolveRef(s.ledger, args[0])
	if err != nil {
		return err
	}
	if err := s.ledger.Delete(commandContext(cmd), e.ID); err != nil {
		return err
	}

	fmt.Printf("  Deleted %s  %s on %s (%s). %d left.\n",
		e.Category,
		cli.FormatAmount(s.cfg.General.CurrencySymbol, e.Amount),
		e.Date,
		e.PaymentMode,
		s.ledger.Len())
	return nil
}
