// Package game implements the drum game: the rotating drum, the console
// prompts, and the round-by-round loop that drives a types.Game.
package game

import "math/rand/v2"

// The drum holds positions PositionMin through PositionMax. Fresh positions
// are drawn from [PositionMin, PositionMax); rotation can reach PositionMax.
const (
	PositionMin = 1
	PositionMax = 6
)

// Source is the randomness provider for loading the drum.
type Source interface {
	// IntN returns a non-negative random int in [0, n).
	IntN(n int) int
}

// NewSource returns a Source seeded with seed. Equal seeds load the drum
// identically.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed))
}

// RandomSource returns a Source seeded from the runtime's random generator.
func RandomSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Load draws the current and target positions independently and uniformly
// from [PositionMin, PositionMax).
func Load(src Source) (current, target int) {
	current = PositionMin + src.IntN(PositionMax-PositionMin)
	target = PositionMin + src.IntN(PositionMax-PositionMin)
	return current, target
}

// Advance rotates the drum one step from p. The result is (p+1) mod
// PositionMax, except that zero maps to PositionMax, so six steps from any
// position return to it.
func Advance(p int) int {
	next := (p + 1) % PositionMax
	if next == 0 {
		next = PositionMax
	}
	return next
}
