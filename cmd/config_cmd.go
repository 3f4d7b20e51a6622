package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendlog/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency symbol:  %s\n", cfg.General.CurrencySymbol)
	fmt.Println()

	fmt.Println("  [Storage]")
	fmt.Printf("    Backend:          %s\n", cfg.Storage.Backend)
	fmt.Printf("    Data directory:   %s\n", cfg.DataDir())
	fmt.Printf("    Discard corrupt:  %v\n", cfg.Storage.DiscardCorrupt)
	fmt.Println()

	fmt.Println("  [Export]")
	fmt.Printf("    Directory:        %s\n", cfg.Export.Dir)
	fmt.Printf("    Format:           %s\n", cfg.Export.Format)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:            %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:            %s\n", cfg.Log.Level)
	fmt.Printf("    File (TUI):       %s\n", cfg.LogFile())
	return nil
}
