package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendlog/internal/export"
	"github.com/theirongolddev/spendlog/internal/report"
)

var (
	flagExportFormat string
	flagExportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export expenses to CSV or Excel",
	Long: "Write every expense to expenses.csv (or expenses.xlsx) in the output\n" +
		"directory. Use --out - to write to stdout instead.",
	Example: "  spendlog export\n  spendlog export --format xlsx --out ~/Documents\n  spendlog export --out - > all.csv",
	Args:    cobra.NoArgs,
	RunE:    runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "", "Output format: csv or xlsx (default from config)")
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output directory (default from config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	format := s.cfg.Export.Format
	if flagExportFormat != "" {
		format = flagExportFormat
	}
	dir := s.cfg.Export.Dir
	if flagExportOut != "" {
		dir = flagExportOut
	}

	expenses := s.ledger.List()
	if dir == "-" {
		err = export.Write(os.Stdout, format, expenses)
	} else {
		var path string
		path, err = export.ToFile(dir, format, expenses)
		if err == nil {
			s.log.Info().Str("path", path).Int("count", len(expenses)).Msg("exported expenses")
			fmt.Printf("  Exported %d expenses to %s\n", len(expenses), path)
		}
	}
	if errors.Is(err, export.ErrEmpty) {
		fmt.Fprintf(os.Stderr, "  %s\n", report.EmptyNotice)
		return nil
	}
	return err
}
