package testutil

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// AssertPanic asserts that the given function panics
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic but none occurred: %v", msgAndArgs)
		}
	}()
	f()
}

// RandomFreeHex picks an unblocked hex, or false after enough misses
func RandomFreeHex(rng *rand.Rand, b *core.Board) (core.Hex, bool) {
	all := b.Grid.All()
	for i := 0; i < 4*len(all); i++ {
		h := all[rng.Intn(len(all))]
		if !b.IsBlocked(h) {
			return h, true
		}
	}
	return core.Hex{}, false
}

// RandomScenario fills a board with units of two teams and some boulders
func RandomScenario(rng *rand.Rand, radius, units, boulders int) *Scenario {
	s := NewScenario(radius)
	for i := 0; i < boulders; i++ {
		if h, ok := RandomFreeHex(rng, s.Board); ok {
			s.Boulder(h)
		}
	}
	for i := 0; i < units; i++ {
		h, ok := RandomFreeHex(rng, s.Board)
		if !ok {
			break
		}
		s.Pawn(i%2, h)
	}
	return s
}
