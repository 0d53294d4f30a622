package simulation

import (
	"math"
	"math/rand/v2"
)

// NewSource returns a deterministic PCG source for seed.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// randomSource returns a source seeded from the runtime's entropy.
func randomSource() rand.Source {
	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}

// uniform draws from [0,1).
func uniform(r *rand.Rand) float32 {
	return r.Float32()
}

// uniformAngle draws a heading from [0,2π).
func uniformAngle(r *rand.Rand) float32 {
	a := float32(r.Float64() * 2 * math.Pi)
	if a >= twoPi {
		a = 0
	}
	return a
}
