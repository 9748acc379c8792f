package card

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DeckSize is the number of cards in a complete tarot deck.
const DeckSize = 78

const (
	MajorCount = 22
	SuitSize   = 14
)

// Suits lists the minor arcana suits in canonical order.
var Suits = []Suit{Wands, Cups, Swords, Pentacles}

// RankNames lists the minor arcana rank names, index 0 is rank 1 (ace).
var RankNames = []string{
	"ace", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten",
	"page", "knight", "queen", "king",
}

var majorNames = []string{
	"The Fool",
	"The Magician",
	"The High Priestess",
	"The Empress",
	"The Emperor",
	"The Hierophant",
	"The Lovers",
	"The Chariot",
	"Strength",
	"The Hermit",
	"Wheel of Fortune",
	"Justice",
	"The Hanged Man",
	"Death",
	"Temperance",
	"The Devil",
	"The Tower",
	"The Star",
	"The Moon",
	"The Sun",
	"Judgement",
	"The World",
}

// ErrIncompleteDeck is returned by CheckComplete when a card set violates
// the 78-card invariant.
var ErrIncompleteDeck = errors.New("incomplete deck")

// MajorID returns the canonical ID of a major arcana card.
func MajorID(rank int) string {
	return fmt.Sprintf("major_arcana.%02d", rank)
}

// MinorID returns the canonical ID of a minor arcana card.
func MinorID(suit Suit, rank int) string {
	return fmt.Sprintf("minor_arcana.%s.%s", suit, RankName(rank))
}

// RankName returns the rank name for a minor arcana rank (1-14).
func RankName(rank int) string {
	if rank < 1 || rank > SuitSize {
		return fmt.Sprintf("%d", rank)
	}
	return RankNames[rank-1]
}

// RankFromName parses a minor arcana rank name.
func RankFromName(name string) (int, bool) {
	i := slices.Index(RankNames, strings.ToLower(name))
	if i < 0 {
		return 0, false
	}
	return i + 1, true
}

// ParseSuit parses a suit name.
func ParseSuit(s string) (Suit, bool) {
	suit := Suit(strings.ToLower(s))
	if slices.Contains(Suits, suit) {
		return suit, true
	}
	return SuitNone, false
}

// DefaultMajorName returns the default English name for a major arcana card
func DefaultMajorName(rank int) string {
	if rank >= 0 && rank < len(majorNames) {
		return majorNames[rank]
	}
	return fmt.Sprintf("Major Arcana %02d", rank)
}

// DefaultMinorName returns the default English name for a minor arcana card
func DefaultMinorName(suit Suit, rank int) string {
	s := string(suit)
	if s == "" {
		return RankName(rank)
	}
	r := RankName(rank)
	return fmt.Sprintf("%s of %s", strings.ToUpper(r[:1])+r[1:], strings.ToUpper(s[:1])+s[1:])
}

// Canonical returns the 78 canonical cards with default English names and
// no meanings, in canonical order.
func Canonical() []Card {
	cards := make([]Card, 0, DeckSize)
	for rank := 0; rank < MajorCount; rank++ {
		name := DefaultMajorName(rank)
		cards = append(cards, Card{
			ID:            MajorID(rank),
			NamePrimary:   name,
			NameSecondary: name,
			Suit:          SuitNone,
			Rank:          rank,
			Arcana:        Major,
		})
	}
	for rank := 1; rank <= SuitSize; rank++ {
		for _, suit := range Suits {
			name := DefaultMinorName(suit, rank)
			cards = append(cards, Card{
				ID:            MinorID(suit, rank),
				NamePrimary:   name,
				NameSecondary: name,
				Suit:          suit,
				Rank:          rank,
				Arcana:        Minor,
			})
		}
	}
	return cards
}

// Sort orders cards in place: major arcana by ascending rank, then minor
// arcana by ascending rank with suit order as the tiebreak. Cards with
// equal keys keep their relative order.
func Sort(cards []Card) {
	slices.SortStableFunc(cards, compare)
}

func compare(a, b Card) int {
	if a.Arcana != b.Arcana {
		if a.Arcana == Major {
			return -1
		}
		return 1
	}
	if a.Rank != b.Rank {
		return a.Rank - b.Rank
	}
	return suitIndex(a.Suit) - suitIndex(b.Suit)
}

func suitIndex(s Suit) int {
	return slices.Index(Suits, s)
}

// CheckComplete verifies that cards form exactly one complete deck: 78
// cards, 22 major arcana with ranks 0-21, 14 ranks in each of the four
// suits and no duplicate IDs.
func CheckComplete(cards []Card) error {
	if len(cards) != DeckSize {
		return fmt.Errorf("%w: got %d cards, want %d", ErrIncompleteDeck, len(cards), DeckSize)
	}

	ids := make(map[string]struct{}, len(cards))
	major := make(map[int]struct{}, MajorCount)
	minor := make(map[Suit]map[int]struct{}, len(Suits))
	for _, s := range Suits {
		minor[s] = make(map[int]struct{}, SuitSize)
	}

	for _, c := range cards {
		if c.ID == "" {
			return fmt.Errorf("%w: card without id", ErrIncompleteDeck)
		}
		if _, dup := ids[c.ID]; dup {
			return fmt.Errorf("%w: duplicate card id %s", ErrIncompleteDeck, c.ID)
		}
		ids[c.ID] = struct{}{}

		switch c.Arcana {
		case Major:
			if c.Suit != SuitNone || c.Rank < 0 || c.Rank >= MajorCount {
				return fmt.Errorf("%w: invalid major arcana card %s", ErrIncompleteDeck, c.ID)
			}
			if _, dup := major[c.Rank]; dup {
				return fmt.Errorf("%w: duplicate major arcana rank %d", ErrIncompleteDeck, c.Rank)
			}
			major[c.Rank] = struct{}{}
		case Minor:
			ranks, ok := minor[c.Suit]
			if !ok || c.Rank < 1 || c.Rank > SuitSize {
				return fmt.Errorf("%w: invalid minor arcana card %s", ErrIncompleteDeck, c.ID)
			}
			if _, dup := ranks[c.Rank]; dup {
				return fmt.Errorf("%w: duplicate %s rank %d", ErrIncompleteDeck, c.Suit, c.Rank)
			}
			ranks[c.Rank] = struct{}{}
		default:
			return fmt.Errorf("%w: unknown arcana %q for card %s", ErrIncompleteDeck, c.Arcana, c.ID)
		}
	}

	if len(major) != MajorCount {
		return fmt.Errorf("%w: %d major arcana cards, want %d", ErrIncompleteDeck, len(major), MajorCount)
	}
	for _, s := range Suits {
		if len(minor[s]) != SuitSize {
			return fmt.Errorf("%w: %d %s cards, want %d", ErrIncompleteDeck, len(minor[s]), s, SuitSize)
		}
	}
	return nil
}
