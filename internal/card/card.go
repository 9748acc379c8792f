package card

// Arcana is the card category, major or minor
type Arcana string

const (
	Major Arcana = "major"
	Minor Arcana = "minor"
)

// Suit of a minor arcana card. Major arcana cards carry SuitNone.
type Suit string

const (
	SuitNone  Suit = ""
	Wands     Suit = "wands"
	Cups      Suit = "cups"
	Swords    Suit = "swords"
	Pentacles Suit = "pentacles"
)

// Card represents a tarot card
type Card struct {
	ID                  string   // Canonical ID (e.g., major_arcana.00, minor_arcana.wands.ace)
	NamePrimary         string   // Name in the deck's primary locale
	NameSecondary       string   // Name in the deck's secondary locale
	Suit                Suit     // SuitNone for major arcana
	Rank                int      // 0-21 for major arcana, 1-14 for minor arcana
	Arcana              Arcana   // Major or Minor
	Keywords            []string // Display only
	DescriptionUpright  string
	DescriptionReversed string
	ImageReference      string // Optional path or URL, may be empty
}

// Description returns the meaning for the given orientation.
func (c Card) Description(reversed bool) string {
	if reversed {
		return c.DescriptionReversed
	}
	return c.DescriptionUpright
}

// IsMajor reports whether the card belongs to the major arcana.
func (c Card) IsMajor() bool {
	return c.Arcana == Major
}
