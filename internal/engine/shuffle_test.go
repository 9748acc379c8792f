package engine

import (
	"context"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solevolog/solevolog/internal/card"
	"github.com/solevolog/solevolog/internal/spread"
)

// Critical chi-square values at p = 0.00001.
const (
	chiSquare5DF  = 25.74
	chiSquare77DF = 145.0
)

type staticCatalog []card.Card

func (s staticCatalog) FetchAllCards(context.Context) ([]card.Card, error) {
	return s, nil
}

// naiveShuffle swaps every position with any position. It is a common
// mistake and produces a biased permutation distribution.
func naiveShuffle(cards []card.Card, rng RNG) {
	for i := range cards {
		j := rng.Intn(len(cards))
		cards[i], cards[j] = cards[j], cards[i]
	}
}

func chiSquare(observed map[string]int, categories int, trials int) float64 {
	expected := float64(trials) / float64(categories)
	var stat float64
	for _, o := range observed {
		d := float64(o) - expected
		stat += d * d / expected
	}
	// Categories never observed contribute expected each.
	stat += float64(categories-len(observed)) * expected
	return stat
}

func permutationCounts(shuffleFn func([]card.Card, RNG), trials int, seed uint64) map[string]int {
	rng := NewRand(seed)
	base := card.Canonical()[:3]
	counts := make(map[string]int)
	for range trials {
		cards := append([]card.Card(nil), base...)
		shuffleFn(cards, rng)
		ids := make([]string, len(cards))
		for i, c := range cards {
			ids[i] = c.ID
		}
		counts[strings.Join(ids, ",")]++
	}
	return counts
}

func TestShuffleProducesUniformPermutations(t *testing.T) {
	const trials = 60000
	counts := permutationCounts(shuffle, trials, 17)

	require.Len(t, counts, 6)
	assert.Less(t, chiSquare(counts, 6, trials), chiSquare5DF)
}

func TestUniformityCheckRejectsNaiveShuffle(t *testing.T) {
	const trials = 60000
	counts := permutationCounts(naiveShuffle, trials, 17)

	assert.Greater(t, chiSquare(counts, 6, trials), chiSquare5DF)
}

func TestShufflePositionDistribution(t *testing.T) {
	const trials = 15600
	e := New(staticCatalog(card.Canonical()), nil, NewRand(31))
	require.NoError(t, e.Load(context.Background()))

	// Track where the first and last canonical cards land.
	tracked := []string{card.MajorID(0), card.MinorID(card.Pentacles, 14)}
	positions := make([]map[string]int, len(tracked))
	for i := range positions {
		positions[i] = make(map[string]int)
	}

	for range trials {
		require.NoError(t, e.Shuffle())
		for pos, c := range e.deck {
			for i, id := range tracked {
				if c.ID == id {
					positions[i][strconv.Itoa(pos)]++
				}
			}
		}
	}

	for i, id := range tracked {
		stat := chiSquare(positions[i], card.DeckSize, trials)
		assert.Less(t, stat, chiSquare77DF, "card %s", id)
	}
}

func TestReversalIsFairAndIndependent(t *testing.T) {
	const trials = 10000
	e := New(staticCatalog(card.Canonical()), nil, NewRand(77))
	require.NoError(t, e.Load(context.Background()))

	var reversed, total int
	var n11, n10, n01, n00 float64
	for range trials {
		drawn, err := e.Draw(spread.CelticCross)
		require.NoError(t, err)
		for _, d := range drawn {
			total++
			if d.IsReversed {
				reversed++
			}
		}

		a, b := drawn[0].IsReversed, drawn[1].IsReversed
		switch {
		case a && b:
			n11++
		case a && !b:
			n10++
		case !a && b:
			n01++
		default:
			n00++
		}
	}

	rate := float64(reversed) / float64(total)
	assert.InDelta(t, 0.5, rate, 0.01)

	// Phi coefficient between the orientations of positions 0 and 1.
	phi := (n11*n00 - n10*n01) / math.Sqrt((n11+n10)*(n01+n00)*(n11+n01)*(n10+n00))
	assert.InDelta(t, 0, phi, 0.05)
}
