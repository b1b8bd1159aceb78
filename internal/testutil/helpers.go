package testutil

import (
	"math/rand"
)

// SeedFixed is the seed shared by tests that need a reproducible level
const SeedFixed = 12345

// NewTestRNG creates a deterministic random number generator for level
// generation and random orders
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
