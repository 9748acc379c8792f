package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/solevolog/solevolog/internal/card"
)

// SchemaVersion is the deck directory schema this package reads.
const SchemaVersion = "1.0"

// defaultLocale names the built-in card names used when a deck has no
// names file for it.
const defaultLocale = "en"

var ErrDeckNotFound = errors.New("deck not found")

// Option adjusts how a deck is loaded.
type Option func(*loadOptions)

type loadOptions struct {
	primaryLocale   string
	secondaryLocale string
}

// WithLocales prefers the given name locales over the ones in deck.toml.
// A locale is only used when the deck provides names for it; empty values
// keep the deck's setting.
func WithLocales(primary, secondary string) Option {
	return func(o *loadOptions) {
		o.primaryLocale = primary
		o.secondaryLocale = secondary
	}
}

// Deck is a card catalog loaded from a deck directory
type Deck struct {
	ID              string
	Name            string
	Version         string
	Author          string
	Description     string
	PrimaryLocale   string
	SecondaryLocale string
	Path            string

	Cards []card.Card
}

// LoadDir loads a deck from a directory on disk. Image references found in
// the directory are returned as paths below deckPath.
func LoadDir(deckPath string, logger *zap.Logger, opts ...Option) (*Deck, error) {
	info, err := os.Stat(deckPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDeckNotFound, deckPath)
		}
		return nil, fmt.Errorf("error reading deck directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDeckNotFound, deckPath)
	}

	d, err := LoadFS(os.DirFS(deckPath), deckPath, logger, opts...)
	if err != nil {
		return nil, err
	}
	d.Path = deckPath
	return d, nil
}

// LoadFS loads a deck from fsys. root is joined to image paths found in
// fsys; pass "" to keep them relative to fsys.
func LoadFS(fsys fs.FS, root string, logger *zap.Logger, opts ...Option) (*Deck, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	var config DeckConfig
	if _, err := toml.DecodeFS(fsys, "deck.toml", &config); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: deck.toml not found", ErrDeckNotFound)
		}
		return nil, fmt.Errorf("error parsing deck.toml: %w", err)
	}
	if config.Deck.SchemaVersion != "" && config.Deck.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("unsupported schema_version %q (supported: %s)", config.Deck.SchemaVersion, SchemaVersion)
	}

	d := &Deck{
		ID:              config.Deck.ID,
		Name:            config.Deck.Name,
		Version:         config.Deck.Version,
		Author:          config.Deck.Author,
		Description:     config.Deck.Description,
		PrimaryLocale:   config.Locales.Primary,
		SecondaryLocale: config.Locales.Secondary,
		Cards:           card.Canonical(),
	}
	if d.PrimaryLocale == "" {
		d.PrimaryLocale = defaultLocale
	}
	log := logger.With(zap.String("deck", d.ID))
	d.PrimaryLocale = preferLocale(fsys, d.PrimaryLocale, o.primaryLocale, log)
	d.SecondaryLocale = preferLocale(fsys, d.SecondaryLocale, o.secondaryLocale, log)

	if err := d.loadNames(fsys, log); err != nil {
		return nil, err
	}
	if err := d.loadMeanings(fsys, log); err != nil {
		return nil, err
	}
	d.resolveImages(fsys, root, config.Images)

	if err := card.CheckComplete(d.Cards); err != nil {
		return nil, err
	}
	log.Debug("Deck loaded", zap.Int("cards", len(d.Cards)))
	return d, nil
}

// preferLocale returns want when the deck can name cards in it, and the
// deck's own locale otherwise.
func preferLocale(fsys fs.FS, deckLocale, want string, log *zap.Logger) string {
	if want == "" || want == deckLocale {
		return deckLocale
	}
	if want == defaultLocale {
		return want
	}
	if _, err := fs.Stat(fsys, path.Join("names", want+".toml")); err != nil {
		log.Debug("Deck has no names for locale, keeping deck locale",
			zap.String("locale", want),
			zap.String("deck_locale", deckLocale))
		return deckLocale
	}
	return want
}

// loadNames sets primary and secondary names from names/<locale>.toml.
// Missing primary names keep the English defaults. Missing secondary names
// fall back to the English defaults for "en" and to the primary name
// otherwise.
func (d *Deck) loadNames(fsys fs.FS, log *zap.Logger) error {
	primary, err := readNames(fsys, d.PrimaryLocale)
	if err != nil {
		return err
	}
	var secondary *NameConfig
	if d.SecondaryLocale != "" {
		secondary, err = readNames(fsys, d.SecondaryLocale)
		if err != nil {
			return err
		}
	}
	if primary == nil {
		log.Debug("No names file for primary locale, using default names",
			zap.String("locale", d.PrimaryLocale))
	}

	for i := range d.Cards {
		c := &d.Cards[i]
		english := c.NamePrimary
		if name := primary.lookup(*c); name != "" {
			c.NamePrimary = name
		}
		c.NameSecondary = c.NamePrimary
		if d.SecondaryLocale == defaultLocale {
			c.NameSecondary = english
		}
		if name := secondary.lookup(*c); name != "" {
			c.NameSecondary = name
		}
	}
	return nil
}

func readNames(fsys fs.FS, locale string) (*NameConfig, error) {
	if locale == "" {
		return nil, nil
	}
	var names NameConfig
	_, err := toml.DecodeFS(fsys, path.Join("names", locale+".toml"), &names)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing language file %s.toml: %w", locale, err)
	}
	return &names, nil
}

// loadMeanings sets keywords and descriptions from meanings.toml. Minor
// arcana cards without their own entry get a meaning composed from the
// rank and suit themes.
func (d *Deck) loadMeanings(fsys fs.FS, log *zap.Logger) error {
	var meanings MeaningConfig
	if _, err := toml.DecodeFS(fsys, "meanings.toml", &meanings); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("Deck has no meanings.toml, cards will have no descriptions")
			return nil
		}
		return fmt.Errorf("error parsing meanings.toml: %w", err)
	}

	for i := range d.Cards {
		c := &d.Cards[i]
		m, ok := meanings.lookup(*c)
		if !ok {
			continue
		}
		c.Keywords = append([]string(nil), m.Keywords...)
		c.DescriptionUpright = m.Upright
		c.DescriptionReversed = m.Reversed
	}
	return nil
}

// FetchAllCards returns a copy of the deck's cards.
func (d *Deck) FetchAllCards(ctx context.Context) ([]card.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]card.Card(nil), d.Cards...), nil
}

// MajorKey returns the two digit key used for a major arcana card in deck files.
func MajorKey(rank int) string {
	return fmt.Sprintf("%02d", rank)
}

// Deck configuration structures
type DeckConfig struct {
	Deck    DeckSection    `toml:"deck"`
	Locales LocaleSection  `toml:"locales"`
	Images  *ImagesSection `toml:"images"`
}

type DeckSection struct {
	ID            string   `toml:"id"`
	Name          string   `toml:"name"`
	Version       string   `toml:"version"`
	SchemaVersion string   `toml:"schema_version"`
	Author        string   `toml:"author"`
	License       string   `toml:"license"`
	Description   string   `toml:"description"`
	Tags          []string `toml:"tags"`
}

type LocaleSection struct {
	Primary   string `toml:"primary"`
	Secondary string `toml:"secondary"`
}

type ImagesSection struct {
	Wikimedia bool `toml:"wikimedia"`
}

// NameConfig is the content of a names/<locale>.toml file
type NameConfig struct {
	MajorArcana map[string]string            `toml:"major_arcana"`
	MinorArcana map[string]map[string]string `toml:"minor_arcana"`
}

func (n *NameConfig) lookup(c card.Card) string {
	if n == nil {
		return ""
	}
	if c.IsMajor() {
		return strings.TrimSpace(n.MajorArcana[MajorKey(c.Rank)])
	}
	return strings.TrimSpace(n.MinorArcana[string(c.Suit)][card.RankName(c.Rank)])
}

// Meaning holds keywords and descriptions for a card, or a theme for a
// suit or rank.
type Meaning struct {
	Keywords []string `toml:"keywords"`
	Upright  string   `toml:"upright"`
	Reversed string   `toml:"reversed"`
	// Domain describes what a suit governs, used when composing minor
	// arcana meanings.
	Domain string `toml:"domain"`
}

// MeaningConfig is the content of meanings.toml
type MeaningConfig struct {
	MajorArcana map[string]Meaning            `toml:"major_arcana"`
	MinorArcana map[string]map[string]Meaning `toml:"minor_arcana"`
	Suits       map[string]Meaning            `toml:"suits"`
	Ranks       map[string]Meaning            `toml:"ranks"`
}

func (m MeaningConfig) lookup(c card.Card) (Meaning, bool) {
	if c.IsMajor() {
		mm, ok := m.MajorArcana[MajorKey(c.Rank)]
		return mm, ok
	}

	rank := card.RankName(c.Rank)
	if mm, ok := m.MinorArcana[string(c.Suit)][rank]; ok {
		return mm, true
	}

	suit, okSuit := m.Suits[string(c.Suit)]
	theme, okRank := m.Ranks[rank]
	if !okSuit || !okRank {
		return Meaning{}, false
	}
	return compose(theme, suit), true
}

func compose(rank, suit Meaning) Meaning {
	keywords := make([]string, 0, len(rank.Keywords)+len(suit.Keywords))
	keywords = append(keywords, rank.Keywords...)
	keywords = append(keywords, suit.Keywords...)
	return Meaning{
		Keywords: keywords,
		Upright:  joinTheme(rank.Upright, suit.Domain),
		Reversed: joinTheme(rank.Reversed, suit.Domain),
	}
}

func joinTheme(theme, domain string) string {
	theme = strings.TrimRight(strings.TrimSpace(theme), ".")
	switch {
	case theme == "":
		return ""
	case domain == "":
		return theme + "."
	default:
		return fmt.Sprintf("%s in matters of %s.", theme, domain)
	}
}
