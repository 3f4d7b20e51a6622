package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/spendlog/internal/config"
	"github.com/theirongolddev/spendlog/internal/tui/theme"
)

// SetupValues holds the answers of the setup wizard.
type SetupValues struct {
	CurrencySymbol string
	Backend        string
	DataDir        string
	ExportFormat   string
	Theme          string
}

// SetupValuesFrom prefills the wizard from cfg.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		CurrencySymbol: cfg.General.CurrencySymbol,
		Backend:        cfg.Storage.Backend,
		DataDir:        cfg.Storage.DataDir,
		ExportFormat:   cfg.Export.Format,
		Theme:          cfg.Appearance.Theme,
	}
}

// Apply copies the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	cfg.General.CurrencySymbol = strings.TrimSpace(v.CurrencySymbol)
	cfg.Storage.Backend = v.Backend
	cfg.Storage.DataDir = strings.TrimSpace(v.DataDir)
	cfg.Export.Format = v.ExportFormat
	cfg.Appearance.Theme = v.Theme
}

// NewSetupForm builds the first-run wizard bound to v.
func NewSetupForm(v *SetupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to spendlog").
				Description("A few questions and you're set.\nAnswers are saved to "+config.ConfigPath()),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Currency symbol").
				CharLimit(4).
				Value(&v.CurrencySymbol).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("currency symbol is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Storage backend").
				Options(
					huh.NewOption("JSON file", "file"),
					huh.NewOption("SQLite database", "sqlite"),
				).
				Value(&v.Backend),
			huh.NewInput().
				Title("Data directory").
				Description("Leave empty for the default").
				Placeholder(config.DefaultDataDir()).
				Value(&v.DataDir),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Export format").
				Options(
					huh.NewOption("CSV", "csv"),
					huh.NewOption("Excel workbook", "xlsx"),
				).
				Value(&v.ExportFormat),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.Theme),
		),
	)
}
