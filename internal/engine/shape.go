package engine

import "fmt"

// Shape identifies one of the seven tetrominoes.
type Shape uint8

const (
	I Shape = iota
	O
	T
	S
	Z
	J
	L
)

// Shapes lists every shape in catalog order.
var Shapes = [...]Shape{I, O, T, S, Z, J, L}

func (s Shape) String() string {
	switch s {
	case I:
		return "I"
	case O:
		return "O"
	case T:
		return "T"
	case S:
		return "S"
	case Z:
		return "Z"
	case J:
		return "J"
	case L:
		return "L"
	default:
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
}

// Rotation is the orientation of a piece relative to its spawn orientation.
type Rotation uint8

const (
	Spawn Rotation = iota
	Clockwise
	OneEighty
	CounterClockwise
)

// Rotations lists every rotation state in clockwise order.
var Rotations = [...]Rotation{Spawn, Clockwise, OneEighty, CounterClockwise}

// CW returns the rotation one quarter turn clockwise.
func (r Rotation) CW() Rotation {
	return (r + 1) % 4
}

// CCW returns the rotation one quarter turn counter-clockwise.
func (r Rotation) CCW() Rotation {
	return (r + 3) % 4
}

func (r Rotation) String() string {
	switch r {
	case Spawn:
		return "Spawn"
	case Clockwise:
		return "Clockwise"
	case OneEighty:
		return "OneEighty"
	case CounterClockwise:
		return "CounterClockwise"
	default:
		return fmt.Sprintf("Rotation(%d)", uint8(r))
	}
}

// Mask is the 4x4 bounding box of a piece. Mask[0] is the bottom row, so the
// field row of a cell is the piece row plus the mask row index.
type Mask [4][4]bool

// Count returns the number of occupied cells in the mask.
func (m Mask) Count() int {
	n := 0
	for _, row := range m {
		for _, cell := range row {
			if cell {
				n++
			}
		}
	}
	return n
}

// BoundingBox returns the mask of shape s in rotation r.
// Panics on a shape or rotation outside the catalog.
func BoundingBox(s Shape, r Rotation) Mask {
	if int(s) >= len(catalog) || int(r) >= len(catalog[s]) {
		panic(fmt.Sprintf("engine: no bounding box for %v/%v", s, r))
	}
	return catalog[s][r]
}

// catalog is indexed by [Shape][Rotation]. The literal rows below are written
// top row first, the way they look on screen.
var catalog = [7][4]Mask{
	I: {
		mask(
			"----",
			"####",
			"----",
			"----"),
		mask(
			"--#-",
			"--#-",
			"--#-",
			"--#-"),
		mask(
			"----",
			"----",
			"####",
			"----"),
		mask(
			"-#--",
			"-#--",
			"-#--",
			"-#--"),
	},
	O: {
		mask("-##-", "-##-", "----", "----"),
		mask("-##-", "-##-", "----", "----"),
		mask("-##-", "-##-", "----", "----"),
		mask("-##-", "-##-", "----", "----"),
	},
	T: {
		mask(
			"-#--",
			"###-",
			"----",
			"----"),
		mask(
			"-#--",
			"-##-",
			"-#--",
			"----"),
		mask(
			"----",
			"###-",
			"-#--",
			"----"),
		mask(
			"-#--",
			"##--",
			"-#--",
			"----"),
	},
	S: {
		mask(
			"-##-",
			"##--",
			"----",
			"----"),
		mask(
			"-#--",
			"-##-",
			"--#-",
			"----"),
		mask(
			"----",
			"-##-",
			"##--",
			"----"),
		mask(
			"#---",
			"##--",
			"-#--",
			"----"),
	},
	Z: {
		mask(
			"##--",
			"-##-",
			"----",
			"----"),
		mask(
			"--#-",
			"-##-",
			"-#--",
			"----"),
		mask(
			"----",
			"##--",
			"-##-",
			"----"),
		mask(
			"-#--",
			"##--",
			"#---",
			"----"),
	},
	J: {
		mask(
			"#---",
			"###-",
			"----",
			"----"),
		mask(
			"-##-",
			"-#--",
			"-#--",
			"----"),
		mask(
			"----",
			"###-",
			"--#-",
			"----"),
		mask(
			"-#--",
			"-#--",
			"##--",
			"----"),
	},
	L: {
		mask(
			"--#-",
			"###-",
			"----",
			"----"),
		mask(
			"-#--",
			"-#--",
			"-##-",
			"----"),
		mask(
			"----",
			"###-",
			"#---",
			"----"),
		mask(
			"##--",
			"-#--",
			"-#--",
			"----"),
	},
}

// mask builds a Mask from four rows given top row first.
// '#' marks a block, anything else is empty.
func mask(rows ...string) Mask {
	if len(rows) != 4 {
		panic("engine: mask needs exactly 4 rows")
	}
	var m Mask
	for i, row := range rows {
		if len(row) != 4 {
			panic(fmt.Sprintf("engine: mask row %q must be 4 wide", row))
		}
		for col := range 4 {
			m[3-i][col] = row[col] == '#'
		}
	}
	return m
}
