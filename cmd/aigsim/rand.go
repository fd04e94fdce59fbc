package main

import "math/rand/v2"

// newRand builds the injected per-session PRNG the same way
// pkg/stoke seeds a chain: two distinct constants derived from one seed
// keep PCG's two-stream state well mixed.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xDEADBEEF))
}
