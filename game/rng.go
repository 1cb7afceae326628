package game

import (
	"fmt"
	"math/rand"
)

// d20Modifiers maps a raw d20 face to its combat-effectiveness multiplier.
// Most of the mass sits near 100%; a natural 1 cripples a side to half
// strength and a natural 20 pushes it to one-and-a-half. The table must stay
// monotonically increasing.
var d20Modifiers = [21]float64{
	0, // faces are 1-based
	0.50, 0.60, 0.70, 0.75, 0.80,
	0.85, 0.90, 0.95, 0.97, 1.00,
	1.02, 1.05, 1.08, 1.10, 1.15,
	1.20, 1.25, 1.30, 1.40, 1.50,
}

// RNG is the only source of randomness inside a generation. Every component
// draws from the same instance so that a fixed seed replays an identical
// generation. Never share one RNG across concurrently running generations.
type RNG struct {
	seed  int64
	src   *rand.Rand
	draws int64
}

// NewRNG creates a deterministic RNG from a 64-bit seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the RNG was built from.
func (r *RNG) Seed() int64 { return r.seed }

// Draws returns the number of draws made since creation.
func (r *RNG) Draws() int64 { return r.draws }

// Float64 returns a uniform draw in [0, 1).
func (r *RNG) Float64() float64 {
	r.draws++
	return r.src.Float64()
}

// IntBetween returns a uniform draw in [min, max], both inclusive.
func (r *RNG) IntBetween(min, max int) int {
	if max < min {
		panic(fmt.Sprintf("IntBetween: max %d < min %d", max, min))
	}
	r.draws++
	return min + r.src.Intn(max-min+1)
}

// PickIndex returns a fair index draw in [0, n).
func (r *RNG) PickIndex(n int) int {
	if n <= 0 {
		panic("PickIndex: empty list")
	}
	r.draws++
	return r.src.Intn(n)
}

// WeightedIndex draws an index with probability proportional to its weight.
// Negative weights are a caller bug; an all-zero weight list has no defined
// winner and the caller must reject it before drawing.
func (r *RNG) WeightedIndex(weights []float64) int {
	if len(weights) == 0 {
		panic("WeightedIndex: no weights")
	}
	total := 0.0
	for i, w := range weights {
		if w < 0 {
			panic(fmt.Sprintf("WeightedIndex: negative weight %f at %d", w, i))
		}
		total += w
	}
	if total <= 0 {
		panic("WeightedIndex: zero total weight")
	}
	r.draws++
	target := r.src.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			return i
		}
	}
	return len(weights) - 1
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// D20 rolls a conventional twenty-sided die.
func (r *RNG) D20() int {
	return r.IntBetween(1, 20)
}

// WeightedD20 rolls a d20 and returns both the raw face and its
// effectiveness multiplier from the fixed table. This is the core combat
// swing mechanic.
func (r *RNG) WeightedD20() (int, float64) {
	face := r.D20()
	return face, d20Modifiers[face]
}

// Shuffle permutes n elements via the supplied swap function.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.draws++
	r.src.Shuffle(n, swap)
}

// Pick returns a fair draw from a non-empty slice.
func Pick[T any](r *RNG, items []T) T {
	return items[r.PickIndex(len(items))]
}
