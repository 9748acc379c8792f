package spread

import (
	"errors"
	"fmt"
)

// Type identifies a spread layout.
type Type string

const (
	OneCard     Type = "1-card"
	ThreeCard   Type = "3-card"
	CelticCross Type = "celtic-cross"
)

// ErrUnknownType is returned by Lookup for keys outside the spread table.
var ErrUnknownType = errors.New("unknown spread type")

// Config describes a spread: how many cards it takes and what each
// position means, in draw order.
type Config struct {
	Type      Type
	Name      string
	Positions []string
}

// Count is the number of cards the spread draws.
func (c Config) Count() int {
	return len(c.Positions)
}

var configs = map[Type]Config{
	OneCard: {
		Type:      OneCard,
		Name:      "One card",
		Positions: []string{"Present Situation"},
	},
	ThreeCard: {
		Type:      ThreeCard,
		Name:      "Three cards (past, present, future)",
		Positions: []string{"Past", "Present", "Future"},
	},
	CelticCross: {
		Type: CelticCross,
		Name: "Celtic cross",
		Positions: []string{
			"Present",
			"Challenge",
			"Past",
			"Future",
			"Above",
			"Below",
			"Advice",
			"External Influences",
			"Hopes/Fears",
			"Outcome",
		},
	},
}

// Lookup returns the configuration for t. The returned Positions slice is
// a copy and may be modified by the caller.
func Lookup(t Type) (Config, error) {
	c, ok := configs[t]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownType, string(t))
	}
	c.Positions = append([]string(nil), c.Positions...)
	return c, nil
}

// Types lists the known spread types, smallest first.
func Types() []Type {
	return []Type{OneCard, ThreeCard, CelticCross}
}
