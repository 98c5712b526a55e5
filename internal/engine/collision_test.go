package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillExcept occupies every cell of the field except the given ones.
func fillExcept(f *Field, keep ...Cell) {
	skip := make(map[Cell]bool, len(keep))
	for _, c := range keep {
		skip[c] = true
	}
	for row := 1; row <= TotalHeight; row++ {
		for col := 1; col <= Width; col++ {
			if !skip[Cell{row, col}] {
				f.Set(row, col)
			}
		}
	}
}

func TestCollides(t *testing.T) {
	var f Field
	p := Piece{Shape: T, Rotation: Spawn, Row: 10, Col: 4}
	assert.False(t, Collides(p, &f))

	f.Set(12, 5)
	assert.True(t, Collides(p, &f))

	assert.True(t, Collides(p.Moved(-4, 0), &f), "left wall")
	assert.True(t, Collides(Piece{Shape: I, Row: 10, Col: 8}, &f), "right wall")
	assert.True(t, Collides(Piece{Shape: T, Row: -3, Col: 4}, &f), "floor")
}

func TestAboveCeilingNeverCollides(t *testing.T) {
	var f Field
	fillExcept(&f)
	p := Piece{Shape: T, Rotation: Spawn, Row: TotalHeight - 1, Col: 4}
	assert.False(t, Collides(p, &f))
}

func TestDropStopsAtFirstCollision(t *testing.T) {
	var f Field
	f.Set(5, 5)
	p := Piece{Shape: T, Rotation: Spawn, Row: 10, Col: 4}

	dropped, rows := Drop(p, &f, TotalHeight)
	assert.Equal(t, 6, rows)
	assert.Equal(t, 4, dropped.Row)
	assert.False(t, Collides(dropped, &f))
	assert.True(t, IsResting(dropped, &f))

	partial, rows := Drop(p, &f, 2)
	assert.Equal(t, 2, rows)
	assert.Equal(t, 8, partial.Row)
}

func TestDropToFloor(t *testing.T) {
	var f Field
	dropped, rows := Drop(NewPiece(I), &f, TotalHeight)
	assert.Equal(t, 20, rows)
	for _, c := range dropped.Cells() {
		assert.Equal(t, 1, c.Row)
	}
}

func TestShift(t *testing.T) {
	var f Field
	p := Piece{Shape: O, Row: 1, Col: 4}

	left, n := Shift(p, &f, -10)
	assert.Equal(t, 4, n)
	assert.Equal(t, 0, left.Col)

	f.Set(3, 9)
	right, n := Shift(p, &f, 5)
	assert.Equal(t, 2, n)
	assert.Equal(t, 6, right.Col)

	blocked, n := Shift(right, &f, 1)
	assert.Zero(t, n)
	assert.Equal(t, right, blocked)
}

func TestKickTableLiterals(t *testing.T) {
	assert.Equal(t, [4]Offset{{-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, KickTable(T, Spawn, Clockwise))
	assert.Equal(t, [4]Offset{{-1, 0}, {-1, -1}, {0, 2}, {-1, 2}}, KickTable(J, CounterClockwise, Spawn))
	assert.Equal(t, [4]Offset{{-2, 0}, {1, 0}, {-2, -1}, {1, 2}}, KickTable(I, Spawn, Clockwise))
	assert.Equal(t, [4]Offset{{1, 0}, {-2, 0}, {1, -2}, {-2, 1}}, KickTable(I, OneEighty, Clockwise))

	assert.Panics(t, func() { KickTable(O, Spawn, Clockwise) })
	assert.Panics(t, func() { KickTable(T, Spawn, OneEighty) })
}

func TestRotationInPlace(t *testing.T) {
	var f Field
	p := Piece{Shape: T, Rotation: Spawn, Row: 10, Col: 4}
	rotated, kick, ok := AttemptRotation(p, &f, Clockwise)
	require.True(t, ok)
	assert.Equal(t, Kick{Point: 1}, kick)
	assert.Equal(t, p.RotatedCW(), rotated)
}

func TestRotationUsesFirstKick(t *testing.T) {
	var f Field
	f.Set(11, 5)
	p := Piece{Shape: T, Rotation: Spawn, Row: 10, Col: 4}

	rotated, kick, ok := AttemptRotation(p, &f, Clockwise)
	require.True(t, ok)
	assert.Equal(t, Kick{Offset: Offset{-1, 0}, Point: 2}, kick)
	assert.Equal(t, Piece{Shape: T, Rotation: Clockwise, Row: 10, Col: 3}, rotated)
}

func TestRotationUsesLastKick(t *testing.T) {
	var f Field
	f.Set(11, 5)
	f.Set(12, 4)
	p := Piece{Shape: T, Rotation: Spawn, Row: 10, Col: 4}

	rotated, kick, ok := AttemptRotation(p, &f, Clockwise)
	require.True(t, ok)
	assert.Equal(t, Kick{Offset: Offset{-1, -2}, Point: lastKickPoint}, kick)
	assert.Equal(t, Piece{Shape: T, Rotation: Clockwise, Row: 8, Col: 3}, rotated)
}

func TestIRotationUsesOwnTable(t *testing.T) {
	var f Field
	f.Set(13, 6)
	p := Piece{Shape: I, Rotation: Spawn, Row: 10, Col: 4}

	rotated, kick, ok := AttemptRotation(p, &f, Clockwise)
	require.True(t, ok)
	assert.Equal(t, Kick{Offset: Offset{-2, 0}, Point: 2}, kick)
	assert.Equal(t, 2, rotated.Col)
	assert.Equal(t, 10, rotated.Row)
}

func TestRotationFailsWhenSurrounded(t *testing.T) {
	var f Field
	p := Piece{Shape: T, Rotation: Spawn, Row: 10, Col: 4}
	cells := p.Cells()
	fillExcept(&f, cells[:]...)

	for _, target := range []Rotation{Clockwise, CounterClockwise} {
		got, _, ok := AttemptRotation(p, &f, target)
		assert.False(t, ok)
		assert.Equal(t, p, got)
	}
}

func TestORotationNeverKicks(t *testing.T) {
	var f Field
	p := Piece{Shape: O, Rotation: Spawn, Row: 10, Col: 4}
	cells := p.Cells()
	fillExcept(&f, cells[:]...)

	rotated, kick, ok := AttemptRotation(p, &f, Clockwise)
	require.True(t, ok)
	assert.Equal(t, Kick{Point: 1}, kick)
	assert.Equal(t, Clockwise, rotated.Rotation)
	assert.Equal(t, p.Row, rotated.Row)
	assert.Equal(t, p.Col, rotated.Col)
}

func TestHalfTurnPanics(t *testing.T) {
	var f Field
	p := Piece{Shape: T, Rotation: Spawn, Row: 10, Col: 4}
	assert.Panics(t, func() { AttemptRotation(p, &f, OneEighty) })
}
