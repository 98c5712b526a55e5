package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBagRandomizerWindows(t *testing.T) {
	r := NewBagRandomizer(42)
	for window := range 50 {
		seen := make(map[Shape]bool)
		for range len(Shapes) {
			seen[r.Next()] = true
		}
		assert.Len(t, seen, len(Shapes), "window %d", window)
	}
}

func TestBagRandomizerDeterministic(t *testing.T) {
	a, b := NewBagRandomizer(7), NewBagRandomizer(7)
	for range 100 {
		assert.Equal(t, a.Next(), b.Next())
	}
}
