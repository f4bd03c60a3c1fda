package livemetrics

import (
	"math/rand/v2"
	"time"
)

// RandomSource is the subset of *rand.Rand the mutator draws from.
// Tests substitute fixed sources to assert exact trajectories.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// NewRandomSource returns a PCG-backed source. A zero seed is replaced by the current time.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
