package engine

import "math/rand/v2"

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

type randRNG struct {
	r *rand.Rand
}

func (r randRNG) Intn(n int) int { return r.r.IntN(n) }

// NewRand returns a deterministic RNG seeded with seed.
func NewRand(seed uint64) RNG {
	return randRNG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type systemRNG struct{}

func (systemRNG) Intn(n int) int { return rand.IntN(n) }

// SystemRand returns an RNG backed by the auto-seeded math/rand/v2 source.
func SystemRand() RNG {
	return systemRNG{}
}
