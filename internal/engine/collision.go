package engine

import "fmt"

// Collides reports whether any block of p lies left or right of the field,
// below row 1, or on an occupied cell. Blocks above the ceiling never collide.
func Collides(p Piece, f *Field) bool {
	for _, c := range p.Cells() {
		if c.Row < 1 || c.Col < 1 || c.Col > Width {
			return true
		}
		if c.Row <= TotalHeight && f.IsOccupied(c.Row, c.Col) {
			return true
		}
	}
	return false
}

// Shift moves p horizontally one column at a time, up to |cols| columns,
// stopping before the first step that collides. It returns the resulting
// piece and the number of columns actually moved.
func Shift(p Piece, f *Field, cols int) (Piece, int) {
	step, n := 1, cols
	if cols < 0 {
		step, n = -1, -cols
	}
	for moved := range n {
		next := p.Moved(step, 0)
		if Collides(next, f) {
			return p, moved
		}
		p = next
	}
	return p, n
}

// Drop moves p down one row at a time, up to rows rows, stopping before the
// first step that collides. It returns the resulting piece and the number of
// rows actually moved.
func Drop(p Piece, f *Field, rows int) (Piece, int) {
	for moved := range rows {
		next := p.Moved(0, -1)
		if Collides(next, f) {
			return p, moved
		}
		p = next
	}
	return p, rows
}

// IsResting reports whether p would collide if it fell one more row.
func IsResting(p Piece, f *Field) bool {
	return Collides(p.Moved(0, -1), f)
}

// Offset is a (column, row) correction applied to a rotated piece.
type Offset struct {
	Col int
	Row int
}

// Kick describes how a rotation succeeded. Point 1 is the in-place rotation,
// points 2 through 5 are the kick table entries in priority order.
type Kick struct {
	Offset Offset
	Point  int
}

// lastKickPoint is the lowest-priority entry of a kick table.
const lastKickPoint = 5

type rotationStep struct {
	from, to Rotation
}

// Kick tables for the Super Rotation System. Offsets are tried in order after
// the in-place rotation fails.
var (
	standardKicks = map[rotationStep][4]Offset{
		{Spawn, Clockwise}:            {{-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		{Clockwise, Spawn}:            {{1, 0}, {1, -1}, {0, 2}, {1, 2}},
		{Clockwise, OneEighty}:        {{1, 0}, {1, -1}, {0, 2}, {1, 2}},
		{OneEighty, Clockwise}:        {{-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		{OneEighty, CounterClockwise}: {{1, 0}, {1, 1}, {0, -2}, {1, -2}},
		{CounterClockwise, OneEighty}: {{-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		{CounterClockwise, Spawn}:     {{-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		{Spawn, CounterClockwise}:     {{1, 0}, {1, 1}, {0, -2}, {1, -2}},
	}

	iKicks = map[rotationStep][4]Offset{
		{Spawn, Clockwise}:            {{-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
		{Clockwise, Spawn}:            {{2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
		{Clockwise, OneEighty}:        {{-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
		{OneEighty, Clockwise}:        {{1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
		{OneEighty, CounterClockwise}: {{2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
		{CounterClockwise, OneEighty}: {{-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
		{CounterClockwise, Spawn}:     {{1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
		{Spawn, CounterClockwise}:     {{-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
	}
)

// KickTable returns the ordered kick offsets for rotating shape s from one
// rotation to another. Panics for O, which never kicks, and for any pair that
// is not a single quarter turn.
func KickTable(s Shape, from, to Rotation) [4]Offset {
	var table map[rotationStep][4]Offset
	switch s {
	case O:
		panic("engine: O rotations never consult a kick table")
	case I:
		table = iKicks
	default:
		table = standardKicks
	}
	offsets, ok := table[rotationStep{from, to}]
	if !ok {
		panic(fmt.Sprintf("engine: unsupported rotation %v -> %v", from, to))
	}
	return offsets
}

// AttemptRotation tries to turn p to the target rotation, which must be one
// quarter turn away. It first tests the rotation in place, then each kick
// offset in order, and returns the rotated piece with the first kick that
// does not collide. When nothing fits it returns p unchanged and false.
func AttemptRotation(p Piece, f *Field, target Rotation) (Piece, Kick, bool) {
	if target != p.Rotation.CW() && target != p.Rotation.CCW() {
		panic(fmt.Sprintf("engine: unsupported rotation %v -> %v", p.Rotation, target))
	}

	rotated := p
	rotated.Rotation = target

	// O is rotation-invariant, so the in-place test is the whole answer.
	if p.Shape == O {
		if Collides(rotated, f) {
			return p, Kick{}, false
		}
		return rotated, Kick{Point: 1}, true
	}

	if !Collides(rotated, f) {
		return rotated, Kick{Point: 1}, true
	}

	for i, off := range KickTable(p.Shape, p.Rotation, target) {
		candidate := rotated.Moved(off.Col, off.Row)
		if !Collides(candidate, f) {
			return candidate, Kick{Offset: off, Point: i + 2}, true
		}
	}
	return p, Kick{}, false
}
