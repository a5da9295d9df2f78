package keen

import (
	"math/rand"
	"sync"
)

// globalRNG is the process-wide source of randomness threaded into every
// stochastic step of the engine (factories, selectors, mutators,
// crossovers). It is set once by the caller, typically before a run, and is
// then consumed serially by the single-threaded pipeline. The parallel
// evaluator must never read from it: fitness functions are required to be
// pure, and the mutex below only protects concurrent Set/RNG calls, not
// concurrent draws from the returned *rand.Rand.
var (
	globalRNGMu sync.Mutex
	globalRNG   = rand.New(rand.NewSource(1))
)

// SetRNG installs the process-wide random source. Call it once, before
// building an Engine, to make a run reproducible for a given seed.
func SetRNG(r *rand.Rand) {
	globalRNGMu.Lock()
	defer globalRNGMu.Unlock()
	globalRNG = r
}

// RNG returns the current process-wide random source.
func RNG() *rand.Rand {
	globalRNGMu.Lock()
	defer globalRNGMu.Unlock()
	return globalRNG
}
