package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)
	assert.Equal(t, 25, r.Right())
	assert.Equal(t, 25, r.Bottom())
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	assert.False(t, f.Has(ActionHardDrop))

	f.Set(ActionHardDrop)
	f.Set(ActionMoveLeft)
	assert.True(t, f.Has(ActionHardDrop))

	assert.True(t, f.Has(ActionMoveLeft))
	assert.False(t, f.Has(ActionMoveRight))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "RotateCCW", ActionRotateCCW.String())
	assert.Equal(t, "Hold", ActionHold.String())
	assert.Equal(t, "Unknown", Action(99).String())
}
