// Package rng is the random source shared by routines. It wraps a seeded
// PCG so a burst or a routine restart can be replayed exactly.
package rng

import "math/rand/v2"

type RNG struct {
	seed uint64
	r    *rand.Rand
}

func New(seed uint64) *RNG {
	g := &RNG{}
	g.Reseed(seed)
	return g
}

// Reseed restarts the sequence from seed.
func (g *RNG) Reseed(seed uint64) {
	g.seed = seed
	g.r = rand.New(rand.NewPCG(seed, 0x5eed))
}

func (g *RNG) Seed() uint64 { return g.seed }

// Intn returns a value in [0,n); n <= 0 yields 0.
func (g *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.r.IntN(n)
}

// Range returns a value in [low,high); an empty range yields low.
func (g *RNG) Range(low, high int) int {
	if high <= low {
		return low
	}
	return low + g.r.IntN(high-low)
}

func (g *RNG) Uint8() uint8 { return uint8(g.r.Uint32()) }

func (g *RNG) Uint8n(n uint8) uint8 {
	if n == 0 {
		return 0
	}
	return uint8(g.r.IntN(int(n)))
}
