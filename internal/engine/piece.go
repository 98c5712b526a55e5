package engine

import "fmt"

// Spawn anchor: places every shape just above the visible field, centered.
const (
	SpawnRow = 19
	SpawnCol = 4
)

// Piece is a shape in a rotation at a field position. Row and Col address the
// lower-left cell of the 4x4 bounding box and may be outside the field.
//
// Piece is an immutable value: movement methods return a new Piece and the
// caller decides whether to keep it.
type Piece struct {
	Shape    Shape
	Rotation Rotation
	Row      int
	Col      int
}

// Cell is an absolute field coordinate.
type Cell struct {
	Row int
	Col int
}

// NewPiece creates a piece of the given shape at the spawn position.
func NewPiece(s Shape) Piece {
	return Piece{
		Shape:    s,
		Rotation: Spawn,
		Row:      SpawnRow,
		Col:      SpawnCol,
	}
}

// RotatedCW returns the piece turned a quarter clockwise in place.
func (p Piece) RotatedCW() Piece {
	p.Rotation = p.Rotation.CW()
	return p
}

// RotatedCCW returns the piece turned a quarter counter-clockwise in place.
func (p Piece) RotatedCCW() Piece {
	p.Rotation = p.Rotation.CCW()
	return p
}

// Moved returns the piece shifted by dcol columns and drow rows.
func (p Piece) Moved(dcol, drow int) Piece {
	p.Col += dcol
	p.Row += drow
	return p
}

// BoundingBox returns the mask for the piece's shape and rotation.
func (p Piece) BoundingBox() Mask {
	return BoundingBox(p.Shape, p.Rotation)
}

// Cells returns the absolute coordinates of the piece's four blocks,
// bottom row first.
func (p Piece) Cells() [4]Cell {
	var cells [4]Cell
	n := 0
	box := p.BoundingBox()
	for r := range box {
		for c := range box[r] {
			if !box[r][c] {
				continue
			}
			if n == len(cells) {
				panic(fmt.Sprintf("engine: mask %v/%v has more than 4 cells", p.Shape, p.Rotation))
			}
			cells[n] = Cell{Row: p.Row + r, Col: p.Col + c}
			n++
		}
	}
	if n != len(cells) {
		panic(fmt.Sprintf("engine: mask %v/%v has %d cells", p.Shape, p.Rotation, n))
	}
	return cells
}

func (p Piece) String() string {
	return fmt.Sprintf("%v/%v@(%d,%d)", p.Shape, p.Rotation, p.Row, p.Col)
}
