package catalog

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"go.uber.org/zap"

	"github.com/solevolog/solevolog/internal/card"
)

// DefaultDeckID is the ID of the deck built into the binary.
const DefaultDeckID = "universal-waite"

//go:embed data
var dataFS embed.FS

// EmbeddedFS returns the file tree of the built-in deck.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(dataFS, "data/"+DefaultDeckID)
	if err != nil {
		panic(fmt.Sprintf("embedded deck missing: %v", err))
	}
	return sub
}

// Embedded serves the built-in deck. It parses the deck once and is safe
// for concurrent use.
type Embedded struct {
	logger *zap.Logger
	opts   []Option

	once sync.Once
	deck *Deck
	err  error
}

func NewEmbedded(logger *zap.Logger, opts ...Option) *Embedded {
	return &Embedded{logger: logger, opts: opts}
}

func (e *Embedded) init() {
	e.deck, e.err = LoadFS(EmbeddedFS(), "", e.logger, e.opts...)
}

// Deck returns the parsed built-in deck.
func (e *Embedded) Deck() (*Deck, error) {
	e.once.Do(e.init)
	return e.deck, e.err
}

// FetchAllCards returns a copy of the built-in deck's cards.
func (e *Embedded) FetchAllCards(_ context.Context) ([]card.Card, error) {
	d, err := e.Deck()
	if err != nil {
		return nil, err
	}
	return append([]card.Card(nil), d.Cards...), nil
}
