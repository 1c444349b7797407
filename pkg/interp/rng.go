package interp

import "math/rand"

// RNG is the deterministic pseudo-random source behind RND and
// RANDOMIZE (spec.md §4.5, §5). It wraps math/rand's own generator
// rather than a third-party PRNG: spec.md only requires the sequence to
// be reproducible given an explicit seed, a guarantee math/rand's
// documented algorithm already provides, so reaching for an external
// dependency here would add nothing a stdlib type doesn't already do.
type RNG struct {
	r         *rand.Rand
	seed      int64
	lastValue float64
}

// NewRNG creates an RNG seeded from seed.
func NewRNG(seed int64) *RNG {
	g := &RNG{seed: seed}
	g.reseedLocked(seed)
	return g
}

func (g *RNG) reseedLocked(seed int64) {
	g.r = rand.New(rand.NewSource(seed))
	g.lastValue = g.r.Float64()
}

// Reseed reinitializes the generator, per RANDOMIZE <expr> and per
// RND#(n%) with n% < 0. The first draw from the freshly-seeded
// generator becomes the new "last value" returned by RND#(0).
func (g *RNG) Reseed(seed int64) {
	g.seed = seed
	g.reseedLocked(seed)
}

// Seed returns the seed the generator was last initialized with.
func (g *RNG) Seed() int64 { return g.seed }

// Float64 draws and remembers the next value in [0, 1), per RND#(n%)
// with n% > 0.
func (g *RNG) Float64() float64 {
	g.lastValue = g.r.Float64()
	return g.lastValue
}

// Last returns the most recently drawn value without advancing the
// generator, per RND#(0).
func (g *RNG) Last() float64 { return g.lastValue }
