package cmd

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/solevolog/solevolog/internal/catalog"
	"github.com/solevolog/solevolog/internal/engine"
	"github.com/solevolog/solevolog/internal/render"
	"github.com/solevolog/solevolog/internal/spread"
	"github.com/solevolog/solevolog/internal/store"
)

type drawOptions struct {
	spread    string
	deck      string
	noShuffle bool
	seed      uint64
	count     int
	question  string
	session   string
	save      bool
	db        string
}

func newDrawCmd(a *app) *cobra.Command {
	var opts drawOptions

	drawCmd := &cobra.Command{
		Use:   "draw",
		Short: "Shuffle the deck and draw a spread",
		Long: `Draw loads the deck, shuffles it, and deals a spread. Each card is
upright or reversed with equal chance.

With --session or --save the spread is recorded in the database; --save
generates a new session ID for every spread drawn.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDraw(cmd, opts)
		},
	}

	f := drawCmd.Flags()
	f.StringVarP(&opts.spread, "spread", "s", "", "Spread type: 1-card, 3-card or celtic-cross (default from config)")
	f.StringVarP(&opts.deck, "deck", "d", "", "Deck from your deck library or a path to a deck")
	f.BoolVar(&opts.noShuffle, "no-shuffle", false, "Draw from the deck in canonical order")
	f.Uint64Var(&opts.seed, "seed", 0, "Seed for a reproducible shuffle")
	f.IntVarP(&opts.count, "count", "n", 1, "Number of spreads to draw, each from a fresh deck")
	f.StringVarP(&opts.question, "question", "q", "", "Question the reading answers, recorded with the session")
	f.StringVar(&opts.session, "session", "", "Record the spread under this session ID")
	f.BoolVar(&opts.save, "save", false, "Record each spread under a new session ID")
	f.StringVar(&opts.db, "db", "", "Database path (default from config)")
	drawCmd.MarkFlagsMutuallyExclusive("session", "save")
	return drawCmd
}

func (a *app) runDraw(cmd *cobra.Command, opts drawOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if opts.count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}
	if opts.session != "" && opts.count > 1 {
		return errors.New("--session records a single spread; use --save with --count")
	}

	spreadType := spread.Type(opts.spread)
	if spreadType == "" {
		spreadType = spread.Type(a.config.DefaultSpread)
	}
	cfg, err := spread.Lookup(spreadType)
	if err != nil {
		return err
	}

	d, err := a.loadDeck(opts.deck)
	if err != nil {
		return fmt.Errorf("error loading deck: %w", err)
	}

	var rng engine.RNG
	if cmd.Flags().Changed("seed") {
		rng = engine.NewRand(opts.seed)
	}

	var (
		db     *store.Store
		writer engine.SessionCardWriter
	)
	if opts.session != "" || opts.save {
		db, err = a.openStore(opts.db)
		if err != nil {
			return err
		}
		defer db.Close()
		// Session rows reference catalog rows.
		if _, err := db.SeedCards(ctx, d.Cards); err != nil {
			return err
		}
		writer = db
	}

	e := engine.New(a.deckReader(d), writer, rng)
	if err := e.Load(ctx); err != nil {
		return err
	}

	r := render.New(out)
	if opts.question != "" {
		r.Question(opts.question)
		fmt.Fprintln(out)
	}
	for i := range opts.count {
		if i > 0 {
			if err := e.Reset(ctx); err != nil {
				return err
			}
		}
		if !opts.noShuffle {
			if err := e.Shuffle(); err != nil {
				return err
			}
		}
		drawn, err := e.Draw(cfg.Type)
		if err != nil {
			return err
		}
		a.logger.Debug("Spread drawn",
			zap.String("deck", d.ID),
			zap.String("spread", string(cfg.Type)),
			zap.Int("cards", len(drawn)))

		r.Spread(cfg, drawn)

		if db == nil {
			continue
		}
		sessionID := opts.session
		if opts.save {
			sessionID = uuid.NewString()
		}
		rows, err := e.Persist(ctx, sessionID)
		if err != nil {
			return err
		}
		if opts.question != "" {
			if err := db.SaveQuestion(ctx, sessionID, opts.question); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "Saved %d cards to session %s\n\n", len(rows), sessionID)
	}
	return nil
}

// deckReader returns the catalog the engine reloads on Reset. Library
// decks are parsed from disk once and then served from memory.
func (a *app) deckReader(d *catalog.Deck) engine.CatalogReader {
	if d.Path == "" {
		return d
	}
	return catalog.NewCache(catalog.Dir{Path: d.Path, Logger: a.logger, Options: a.deckOptions()})
}
