package simulator

import (
	"math/rand"
	"time"
)

// Rand is the random source behind every stochastic decision in a run.
// *rand.Rand satisfies it; tests substitute scripted sources.
type Rand interface {
	Float64() float64
	Intn(n int) int
	NormFloat64() float64
}

// NewRand returns a seeded source. A zero seed picks one from the clock.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func uniform(rng Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
