package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldSetClear(t *testing.T) {
	var f Field
	assert.Equal(t, Empty, f.Get(1, 1))

	f.Set(1, 1)
	f.Set(TotalHeight, Width)
	assert.True(t, f.IsOccupied(1, 1))
	assert.Equal(t, Occupied, f.Get(TotalHeight, Width))

	f.Clear(1, 1)
	assert.Equal(t, Empty, f.Get(1, 1))
}

func TestFieldOutOfRangePanics(t *testing.T) {
	var f Field
	assert.Panics(t, func() { f.Get(0, 1) })
	assert.Panics(t, func() { f.Get(TotalHeight+1, 1) })
	assert.Panics(t, func() { f.Set(1, 0) })
	assert.Panics(t, func() { f.Clear(1, Width+1) })
}

func TestFieldIsValue(t *testing.T) {
	var f Field
	g := f
	g.Set(3, 3)
	assert.False(t, f.IsOccupied(3, 3))
}

func TestFieldString(t *testing.T) {
	var f Field
	f.Set(1, 1)
	f.Set(1, Width)
	s := f.String()
	assert.Len(t, s, VisibleHeight*(Width+1))
	assert.Contains(t, s, "#--------#\n")
}
