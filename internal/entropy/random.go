// Package entropy provides the single seeded random source a run draws from.
// Every stochastic decision in a run goes through one Source so that a run
// replays exactly given its seed and iteration order.
package entropy

import (
	"math/rand"
	"time"
)

// Source is a seeded pseudo-random stream.
type Source struct {
	rng  *rand.Rand
	seed int64
}

// NewSource creates a source seeded with seed.
func NewSource(seed int64) *Source {
	return &Source{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// ClockSeed derives a seed from the current wall-clock time.
func ClockSeed() int64 {
	return time.Now().UnixNano()
}

// Seed returns the seed the source was built from.
func (s *Source) Seed() int64 {
	return s.seed
}

// Float returns a uniform float64 in [0, 1).
func (s *Source) Float() float64 {
	return s.rng.Float64()
}

// Chance draws once and returns true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.rng.Float64() < p
}

// Pick returns a uniform index in [0, n). n must be positive.
func (s *Source) Pick(n int) int {
	return s.rng.Intn(n)
}

// IntBetween returns a uniform integer in [lo, hi] inclusive.
func (s *Source) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// Shuffle permutes n elements in place using swap.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}

// Int63 returns a non-negative 63-bit integer, used to derive sub-seeds.
func (s *Source) Int63() int64 {
	return s.rng.Int63()
}
