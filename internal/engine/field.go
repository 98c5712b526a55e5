// Package engine implements the rules of the falling-block puzzle: the playfield,
// piece geometry, collision and rotation kicks, spin detection, line clearing,
// gravity, and the per-tick state machine that sequences them.
//
// The engine is a deterministic simulation. It never looks at the wall clock:
// every delay is counted in ticks and the caller owns real-time pacing.
package engine

import "fmt"

// Space is the occupancy of a single playfield cell.
type Space uint8

const (
	Empty Space = iota
	Occupied
)

// Playfield dimensions. Rows above VisibleHeight are overflow space where
// pieces spawn and where a top-out is detected.
const (
	Width         = 10
	VisibleHeight = 20
	TotalHeight   = 40
)

// Field is the playfield occupancy grid. Rows and columns are 1-based,
// row 1 is the bottom row.
//
// Field is a value type: assigning or returning it copies the whole grid,
// which is how read-only views are handed to observers and renderers.
type Field struct {
	grid [TotalHeight][Width]Space
}

// Get returns the space at the given row and column.
// Panics if the position is outside the field.
func (f *Field) Get(row, col int) Space {
	checkIndex(row, col)
	return f.grid[row-1][col-1]
}

// Set marks the space at the given row and column as occupied.
func (f *Field) Set(row, col int) {
	checkIndex(row, col)
	f.grid[row-1][col-1] = Occupied
}

// Clear marks the space at the given row and column as empty.
func (f *Field) Clear(row, col int) {
	checkIndex(row, col)
	f.grid[row-1][col-1] = Empty
}

// IsOccupied reports whether the cell at row, col holds a block.
func (f *Field) IsOccupied(row, col int) bool {
	return f.Get(row, col) == Occupied
}

// InBounds reports whether row, col addresses a cell of the field.
func InBounds(row, col int) bool {
	return row >= 1 && row <= TotalHeight && col >= 1 && col <= Width
}

func checkIndex(row, col int) {
	if row < 1 || row > TotalHeight {
		panic(fmt.Sprintf("engine: row %d out of range [1, %d]", row, TotalHeight))
	}
	if col < 1 || col > Width {
		panic(fmt.Sprintf("engine: col %d out of range [1, %d]", col, Width))
	}
}

// String renders the visible part of the field, top row first.
// Useful in test failure output.
func (f Field) String() string {
	buf := make([]byte, 0, VisibleHeight*(Width+1))
	for row := VisibleHeight; row >= 1; row-- {
		for col := 1; col <= Width; col++ {
			if f.grid[row-1][col-1] == Occupied {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '-')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
