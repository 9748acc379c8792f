package spread

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		typ       Type
		count     int
		positions []string
	}{
		{OneCard, 1, []string{"Present Situation"}},
		{ThreeCard, 3, []string{"Past", "Present", "Future"}},
		{CelticCross, 10, []string{
			"Present", "Challenge", "Past", "Future", "Above", "Below",
			"Advice", "External Influences", "Hopes/Fears", "Outcome",
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			c, err := Lookup(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.typ, c.Type)
			assert.Equal(t, tt.count, c.Count())
			assert.Equal(t, tt.positions, c.Positions)
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, typ := range []Type{"", "5-card", "Celtic-Cross"} {
		_, err := Lookup(typ)
		assert.True(t, errors.Is(err, ErrUnknownType), "type %q", typ)
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	c, err := Lookup(ThreeCard)
	require.NoError(t, err)
	c.Positions[0] = "changed"

	again, err := Lookup(ThreeCard)
	require.NoError(t, err)
	assert.Equal(t, "Past", again.Positions[0])
}

func TestTypesAreKnown(t *testing.T) {
	for _, typ := range Types() {
		_, err := Lookup(typ)
		assert.NoError(t, err)
	}
}
