// Package engine holds the tarot deck state of a single reading: the
// current deck ordering and the most recently drawn spread.
//
// An Engine is not safe for concurrent use. Callers drive it one
// operation at a time, the way a single reading session does.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/solevolog/solevolog/internal/card"
	"github.com/solevolog/solevolog/internal/spread"
)

// CatalogReader supplies the canonical card records.
type CatalogReader interface {
	FetchAllCards(ctx context.Context) ([]card.Card, error)
}

// SessionCardWriter stores a drawn spread for a session.
type SessionCardWriter interface {
	InsertSessionCards(ctx context.Context, sessionID string, rows []SessionCard) error
}

// DrawnCard is a card placed at a spread position.
type DrawnCard struct {
	card.Card
	PositionIndex   int
	PositionMeaning string
	IsReversed      bool
}

// Description returns the meaning matching the card's orientation.
func (d DrawnCard) Description() string {
	return d.Card.Description(d.IsReversed)
}

// SessionCard is the persisted form of a DrawnCard.
type SessionCard struct {
	SessionID       string
	CardID          string
	PositionIndex   int
	PositionMeaning string
	IsReversed      bool
}

// State is the engine lifecycle state.
type State int

const (
	Empty State = iota
	Loaded
	Shuffled
	Drawn
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Loaded:
		return "loaded"
	case Shuffled:
		return "shuffled"
	case Drawn:
		return "drawn"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Engine owns one deck and the spread drawn from it.
type Engine struct {
	catalog CatalogReader
	writer  SessionCardWriter
	rng     RNG

	deck  []card.Card
	drawn []DrawnCard
	state State
}

// New creates an empty engine. Call Load before Shuffle or Draw.
func New(catalog CatalogReader, writer SessionCardWriter, rng RNG) *Engine {
	if rng == nil {
		rng = SystemRand()
	}
	return &Engine{
		catalog: catalog,
		writer:  writer,
		rng:     rng,
	}
}

// Load fetches the catalog and replaces the deck with it in canonical
// order, discarding any drawn spread. On failure the engine is left as it
// was.
func (e *Engine) Load(ctx context.Context) error {
	if e.catalog == nil {
		return fmt.Errorf("%w: no catalog configured", ErrCatalogUnavailable)
	}

	cards, err := e.catalog.FetchAllCards(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	deck := append([]card.Card(nil), cards...)
	if err := card.CheckComplete(deck); err != nil {
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	card.Sort(deck)

	e.deck = deck
	e.drawn = nil
	e.state = Loaded
	return nil
}

// Shuffle permutes the deck with a Fisher-Yates shuffle. A previously
// drawn spread is kept until the next Draw or Reset.
func (e *Engine) Shuffle() error {
	if len(e.deck) == 0 {
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, ErrDeckEmpty)
	}

	shuffle(e.deck, e.rng)
	e.state = Shuffled
	return nil
}

func shuffle(cards []card.Card, rng RNG) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Draw deals the spread from the top of the deck. Drawn cards stay in the
// deck, so drawing again without shuffling yields the same cards with
// fresh orientations.
func (e *Engine) Draw(t spread.Type) ([]DrawnCard, error) {
	cfg, err := spread.Lookup(t)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpreadType, err)
	}
	if len(e.deck) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, ErrDeckEmpty)
	}
	if len(e.deck) < cfg.Count() {
		return nil, fmt.Errorf("%w: deck has %d cards, spread needs %d", ErrCatalogUnavailable, len(e.deck), cfg.Count())
	}

	drawn := make([]DrawnCard, cfg.Count())
	for i, position := range cfg.Positions {
		drawn[i] = DrawnCard{
			Card:            e.deck[i],
			PositionIndex:   i,
			PositionMeaning: position,
			IsReversed:      e.rng.Intn(2) == 1,
		}
	}

	e.drawn = drawn
	e.state = Drawn
	return e.Drawn(), nil
}

// Reset discards the drawn spread and the deck, then loads a fresh deck
// from the catalog. Unlike a failed Load, a failed Reset leaves the engine
// empty.
func (e *Engine) Reset(ctx context.Context) error {
	e.drawn = nil
	e.deck = nil
	e.state = Empty
	return e.Load(ctx)
}

// Persist writes the drawn spread for sessionID as a single batch and
// returns the rows written.
func (e *Engine) Persist(ctx context.Context, sessionID string) ([]SessionCard, error) {
	if len(e.drawn) == 0 {
		return nil, ErrNothingToPersist
	}
	if sessionID == "" {
		return nil, ErrInvalidSessionID
	}
	if e.writer == nil {
		return nil, fmt.Errorf("%w: no session store configured", ErrPersistenceFailure)
	}

	rows := SessionCards(sessionID, e.drawn)
	if err := e.writer.InsertSessionCards(ctx, sessionID, rows); err != nil {
		if errors.Is(err, ErrPersistenceFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	return rows, nil
}

// SessionCards maps drawn cards to their persisted rows.
func SessionCards(sessionID string, drawn []DrawnCard) []SessionCard {
	rows := make([]SessionCard, len(drawn))
	for i, d := range drawn {
		rows[i] = SessionCard{
			SessionID:       sessionID,
			CardID:          d.ID,
			PositionIndex:   d.PositionIndex,
			PositionMeaning: d.PositionMeaning,
			IsReversed:      d.IsReversed,
		}
	}
	return rows
}

// Deck returns a copy of the current deck ordering.
func (e *Engine) Deck() []card.Card {
	return append([]card.Card(nil), e.deck...)
}

// Drawn returns a copy of the most recent spread.
func (e *Engine) Drawn() []DrawnCard {
	return append([]DrawnCard(nil), e.drawn...)
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return e.state
}
