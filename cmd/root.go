package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/solevolog/solevolog/internal/catalog"
	"github.com/solevolog/solevolog/internal/config"
	"github.com/solevolog/solevolog/internal/store"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = NewRootCmd()

// app is the state shared by all subcommands of one invocation.
type app struct {
	verbose bool
	config  *config.Config
	logger  *zap.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "solevolog",
		Short: "Shuffle, draw and record tarot spreads",
		Long: `SolevoLog shuffles a 78-card tarot deck, draws one-card, three-card and
Celtic cross spreads, and records drawn spreads per session in SQLite.

Decks are read from your deck library (XDG_DATA_HOME/solevolog/decks) or
from a path. The built-in universal-waite deck is always available.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			a.config = cfg

			logger, err := newLogger(cfg.LogLevel, a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newDeckCmd(a),
		newValidateCmd(a),
		newShowCmd(a),
		newSpreadsCmd(a),
		newDrawCmd(a),
		newSeedCmd(a),
		newSessionCmd(a),
	)
	return root
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// loadDeck resolves a deck name or path, falling back to the configured
// default deck when name is empty.
func (a *app) loadDeck(name string) (*catalog.Deck, error) {
	if name == "" {
		name = a.config.DefaultDeck
	}
	deckPath, err := config.GetDeckPath(name)
	if err != nil {
		return nil, err
	}
	if deckPath == "" {
		return catalog.NewEmbedded(a.logger, a.deckOptions()...).Deck()
	}
	return catalog.LoadDir(deckPath, a.logger, a.deckOptions()...)
}

// deckOptions applies the configured name locales to loaded decks.
func (a *app) deckOptions() []catalog.Option {
	return []catalog.Option{
		catalog.WithLocales(a.config.PrimaryLocale, a.config.SecondaryLocale),
	}
}

// openStore opens the database given by path or the configured one.
func (a *app) openStore(path string) (*store.Store, error) {
	if path == "" {
		path = a.config.Database
	}
	return store.Open(path, a.logger)
}
