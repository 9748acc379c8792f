// Package validator checks a deck directory before it is used as a card
// catalog. Problems that stop the deck from loading are errors; gaps that
// fall back to defaults are warnings.
package validator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/solevolog/solevolog/internal/card"
	"github.com/solevolog/solevolog/internal/catalog"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were found.
func (r ValidationResults) Valid() bool {
	return len(r.Errors) == 0
}

type Validator struct {
	DeckPath string
	Results  ValidationResults

	fsys   fs.FS
	config catalog.DeckConfig
	logger *zap.Logger
}

func NewValidator(deckPath string, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{
		DeckPath: deckPath,
		Results:  ValidationResults{},
		fsys:     os.DirFS(deckPath),
		logger:   logger,
	}
}

// Validate runs every check. The error return is reserved for decks that
// cannot be inspected at all.
func (v *Validator) Validate() (ValidationResults, error) {
	if err := v.validateDeckToml(); err != nil {
		return v.Results, err
	}

	v.validateNames()
	v.validateMeanings()
	v.validateImages()
	v.validateCatalog()

	v.logger.Debug("Deck validated",
		zap.String("path", v.DeckPath),
		zap.Int("errors", len(v.Results.Errors)),
		zap.Int("warnings", len(v.Results.Warnings)))
	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

func (v *Validator) validateDeckToml() error {
	if _, err := fs.Stat(v.fsys, "deck.toml"); err != nil {
		return fmt.Errorf("deck.toml not found in %s", v.DeckPath)
	}
	if _, err := toml.DecodeFS(v.fsys, "deck.toml", &v.config); err != nil {
		return fmt.Errorf("error parsing deck.toml: %w", err)
	}

	d := v.config.Deck
	if d.ID == "" {
		v.errorf("deck.id is required in deck.toml")
	}
	if d.Name == "" {
		v.errorf("deck.name is required in deck.toml")
	}
	if d.Version == "" {
		v.errorf("deck.version is required in deck.toml")
	}
	if d.SchemaVersion == "" {
		v.errorf("deck.schema_version is required in deck.toml")
	} else if d.SchemaVersion != catalog.SchemaVersion {
		v.errorf("unsupported schema_version: %s (supported: %s)", d.SchemaVersion, catalog.SchemaVersion)
	}

	if v.config.Locales.Primary != "" && v.config.Locales.Primary == v.config.Locales.Secondary {
		v.warnf("locales.primary and locales.secondary are both %q", v.config.Locales.Primary)
	}
	return nil
}

func (v *Validator) primaryLocale() string {
	if v.config.Locales.Primary == "" {
		return "en"
	}
	return v.config.Locales.Primary
}

// validateNames checks that each declared locale names every canonical card.
func (v *Validator) validateNames() {
	locales := []string{v.primaryLocale()}
	if v.config.Locales.Secondary != "" {
		locales = append(locales, v.config.Locales.Secondary)
	}

	for _, locale := range locales {
		file := path.Join("names", locale+".toml")
		var names catalog.NameConfig
		_, err := toml.DecodeFS(v.fsys, file, &names)
		if errors.Is(err, fs.ErrNotExist) {
			v.warnf("%s not found, default names will be used", file)
			continue
		}
		if err != nil {
			v.errorf("error parsing language file %s: %v", file, err)
			continue
		}

		v.reportMissing(locale+".toml names", func(c card.Card) bool {
			if c.IsMajor() {
				return strings.TrimSpace(names.MajorArcana[catalog.MajorKey(c.Rank)]) != ""
			}
			return strings.TrimSpace(names.MinorArcana[string(c.Suit)][card.RankName(c.Rank)]) != ""
		}, v.warnf)
		checkUnknownKeys(v, file, names.MajorArcana, minorKeys(names.MinorArcana))
	}
}

// validateMeanings checks meanings.toml. Every major arcana card needs its
// own entry; minor cards may be composed from suit and rank themes.
func (v *Validator) validateMeanings() {
	var meanings catalog.MeaningConfig
	_, err := toml.DecodeFS(v.fsys, "meanings.toml", &meanings)
	if errors.Is(err, fs.ErrNotExist) {
		v.warnf("meanings.toml not found, cards will have no descriptions")
		return
	}
	if err != nil {
		v.errorf("error parsing meanings.toml: %v", err)
		return
	}

	v.reportMissing("meanings.toml", func(c card.Card) bool {
		if !c.IsMajor() {
			return true
		}
		m, ok := meanings.MajorArcana[catalog.MajorKey(c.Rank)]
		return ok && m.Upright != "" && m.Reversed != ""
	}, v.errorf)

	v.reportMissing("meanings.toml minor", func(c card.Card) bool {
		if c.IsMajor() {
			return true
		}
		rank := card.RankName(c.Rank)
		if _, ok := meanings.MinorArcana[string(c.Suit)][rank]; ok {
			return true
		}
		_, okSuit := meanings.Suits[string(c.Suit)]
		_, okRank := meanings.Ranks[rank]
		return okSuit && okRank
	}, v.warnf)

	for _, suit := range sortedKeys(meanings.Suits) {
		if _, ok := card.ParseSuit(suit); !ok {
			v.warnf("unknown suit in meanings.toml: %s", suit)
		}
	}
	for _, rank := range sortedKeys(meanings.Ranks) {
		if _, ok := card.RankFromName(rank); !ok {
			v.warnf("unknown rank in meanings.toml: %s", rank)
		}
	}
	checkUnknownKeys(v, "meanings.toml", meanings.MajorArcana, minorKeys(meanings.MinorArcana))
}

// validateImages reports gaps in image directories. Images are optional,
// so nothing here is an error.
func (v *Validator) validateImages() {
	dirs := catalog.ImageDirectories(v.fsys)
	if len(dirs) == 0 {
		if v.config.Images == nil || !v.config.Images.Wikimedia {
			v.warnf("no image directories found (expecting scalable/ or h*/ directories)")
		}
		return
	}

	for _, dir := range dirs {
		v.reportMissing(dir+" images", func(c card.Card) bool {
			_, ok := catalog.FindImage(v.fsys, dir, c)
			return ok
		}, v.warnf)
	}
}

// validateCatalog loads the deck the way the engine will see it.
func (v *Validator) validateCatalog() {
	if len(v.Results.Errors) > 0 {
		return
	}
	if _, err := catalog.LoadFS(v.fsys, v.DeckPath, v.logger); err != nil {
		v.errorf("deck does not load: %v", err)
	}
}

// reportMissing calls report once for the major arcana and once per suit
// with the cards for which has returns false.
func (v *Validator) reportMissing(what string, has func(card.Card) bool, report func(string, ...any)) {
	var major []string
	minor := map[card.Suit][]string{}
	for _, c := range card.Canonical() {
		if has(c) {
			continue
		}
		if c.IsMajor() {
			major = append(major, catalog.MajorKey(c.Rank))
		} else {
			minor[c.Suit] = append(minor[c.Suit], card.RankName(c.Rank))
		}
	}

	if len(major) > 0 {
		report("missing major arcana in %s: %s", what, strings.Join(major, ", "))
	}
	for _, suit := range card.Suits {
		if ranks := minor[suit]; len(ranks) > 0 {
			report("missing %s in %s: %s", suit, what, strings.Join(ranks, ", "))
		}
	}
}

func minorKeys[T any](m map[string]map[string]T) map[string][]string {
	keys := make(map[string][]string, len(m))
	for suit, ranks := range m {
		for rank := range ranks {
			keys[suit] = append(keys[suit], rank)
		}
	}
	return keys
}

// checkUnknownKeys warns about entries that match no canonical card.
func checkUnknownKeys[T any](v *Validator, file string, major map[string]T, minor map[string][]string) {
	var unknown []string
	for key := range major {
		if n, err := strconv.Atoi(key); err != nil || n < 0 || n >= card.MajorCount || catalog.MajorKey(n) != key {
			unknown = append(unknown, "major_arcana."+key)
		}
	}
	for suit, ranks := range minor {
		if _, ok := card.ParseSuit(suit); !ok {
			unknown = append(unknown, "minor_arcana."+suit)
			continue
		}
		for _, rank := range ranks {
			if _, ok := card.RankFromName(rank); !ok {
				unknown = append(unknown, "minor_arcana."+suit+"."+rank)
			}
		}
	}
	if len(unknown) == 0 {
		return
	}
	slices.Sort(unknown)
	v.warnf("unknown card keys in %s: %s", file, strings.Join(unknown, ", "))
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
