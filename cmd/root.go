// Package cmd implements the spendlog CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendlog/internal/config"
	"github.com/theirongolddev/spendlog/internal/ledger"
	"github.com/theirongolddev/spendlog/internal/logging"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/store"
)

var (
	flagDataDir        string
	flagBackend        string
	flagDiscardCorrupt bool
	flagQuiet          bool
	flagVerbose        bool
)

var rootCmd = &cobra.Command{
	Use:           "spendlog",
	Short:         "Personal expense tracker",
	Long:          "Record expenses, see monthly and yearly totals, and export them to CSV or Excel.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runList,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding the expense store (default $XDG_DATA_HOME/spendlog)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Storage backend: file or sqlite")
	rootCmd.PersistentFlags().BoolVar(&flagDiscardCorrupt, "discard-corrupt", false, "Move unreadable stored data aside and start empty")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug detail")
}

// loadConfig resolves the effective configuration: flags over environment
// over config file over defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.Storage.DataDir = flagDataDir
	}
	if flags.Changed("backend") {
		cfg.Storage.Backend = flagBackend
	}
	if flags.Changed("discard-corrupt") {
		cfg.Storage.DiscardCorrupt = flagDiscardCorrupt
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the command logger. CLI commands log to stderr; the TUI
// owns the terminal and logs to the log file instead.
func newLogger(cfg config.Config, toFile bool) (zerolog.Logger, io.Closer, error) {
	opts := logging.Options{
		Level:   cfg.Log.Level,
		Quiet:   flagQuiet,
		Verbose: flagVerbose,
	}
	if toFile {
		opts.File = cfg.LogFile()
	} else {
		opts.Console = os.Stderr
	}
	return logging.New(opts)
}

// session bundles what every data command needs.
type session struct {
	cfg    config.Config
	log    zerolog.Logger
	ledger *ledger.Ledger

	closers []io.Closer
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i].Close()
	}
}

// openSession loads config, sets up logging and hydrates the ledger from the
// configured store.
func openSession(cmd *cobra.Command, logToFile bool) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, logCloser, err := newLogger(cfg, logToFile)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, log: log, closers: []io.Closer{logCloser}}

	repo, err := store.Open(cfg.Storage.Backend, cfg.DataDir())
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("opening %s store: %w", cfg.Storage.Backend, err)
	}
	s.closers = append(s.closers, repo)

	log.Debug().Str("backend", cfg.Storage.Backend).Str("data_dir", cfg.DataDir()).Msg("opening ledger")
	l, err := ledger.Open(commandContext(cmd), repo, ledger.Options{
		DiscardCorrupt: cfg.Storage.DiscardCorrupt,
		Logger:         log,
	})
	if err != nil {
		s.Close()
		if errors.Is(err, store.ErrCorrupt) {
			return nil, fmt.Errorf("%w\n  Rerun with --discard-corrupt to move the bad data aside and start empty", err)
		}
		return nil, err
	}
	s.ledger = l
	return s, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// resolveRef finds an expense by 1-based list position or by id (or a unique
// id prefix of at least 4 characters). A number outside the list is tried as
// an id prefix.
func resolveRef(l *ledger.Ledger, ref string) (model.Expense, error) {
	n, numErr := strconv.Atoi(ref)
	if numErr == nil {
		if e, err := l.At(n - 1); err == nil {
			return e, nil
		}
	}

	notFound := func() error {
		if numErr == nil {
			return fmt.Errorf("no expense #%d (have %d)", n, l.Len())
		}
		return fmt.Errorf("no expense with id %q", ref)
	}

	if e, err := l.Get(ref); err == nil {
		return e, nil
	}
	if len(ref) < 4 {
		return model.Expense{}, notFound()
	}

	var match model.Expense
	found := 0
	for _, e := range l.List() {
		if strings.HasPrefix(e.ID, ref) {
			match = e
			found++
		}
	}
	switch found {
	case 0:
		return model.Expense{}, notFound()
	case 1:
		return match, nil
	default:
		return model.Expense{}, fmt.Errorf("id prefix %q matches %d expenses", ref, found)
	}
}
