package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/solevolog/solevolog/internal/card"
)

// Dir reads the catalog from a deck directory on every fetch, so edits to
// the directory are picked up by the next load.
type Dir struct {
	Path    string
	Logger  *zap.Logger
	Options []Option
}

func (d Dir) FetchAllCards(ctx context.Context) ([]card.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	deck, err := LoadDir(d.Path, d.Logger, d.Options...)
	if err != nil {
		return nil, err
	}
	return deck.Cards, nil
}

// Reader is the catalog source interface shared by Dir, Deck, Embedded and
// the SQLite store.
type Reader interface {
	FetchAllCards(ctx context.Context) ([]card.Card, error)
}

// Cache fetches from its source once and then serves copies. A failed
// fetch is not cached. Cache is safe for concurrent use, so several
// reading sessions can share one.
type Cache struct {
	source Reader

	mu    sync.Mutex
	cards []card.Card
}

func NewCache(source Reader) *Cache {
	return &Cache{source: source}
}

func (c *Cache) FetchAllCards(ctx context.Context) ([]card.Card, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cards == nil {
		cards, err := c.source.FetchAllCards(ctx)
		if err != nil {
			return nil, err
		}
		c.cards = append([]card.Card(nil), cards...)
	}
	return append([]card.Card(nil), c.cards...), nil
}
