package engine

import (
	"fmt"
	"math"
)

type gravityKind uint8

const (
	ticksPerRow gravityKind = iota
	rowsPerTick
)

// Gravity is the automatic fall speed. Slow speeds are expressed as ticks per
// row; speeds of one row per tick or more as rows per tick.
type Gravity struct {
	kind gravityKind
	n    int
}

// TicksPerRow returns a gravity that drops the piece one row every n ticks.
func TicksPerRow(n int) Gravity {
	if n < 1 {
		panic(fmt.Sprintf("engine: ticks per row must be >= 1, got %d", n))
	}
	return Gravity{kind: ticksPerRow, n: n}
}

// RowsPerTick returns a gravity that drops the piece n rows every tick.
// n is clamped to the visible field height.
func RowsPerTick(n int) Gravity {
	if n < 1 {
		panic(fmt.Sprintf("engine: rows per tick must be >= 1, got %d", n))
	}
	return Gravity{kind: rowsPerTick, n: min(n, VisibleHeight)}
}

// TicksPerRow returns the tick interval and true for a ticks-per-row gravity.
func (g Gravity) TicksPerRow() (int, bool) {
	return g.n, g.kind == ticksPerRow
}

// RowsPerTick returns the row count and true for a rows-per-tick gravity.
func (g Gravity) RowsPerTick() (int, bool) {
	return g.n, g.kind == rowsPerTick
}

// Mul speeds gravity up by factor f, switching representation when the
// result crosses one row per tick. Rows per tick never exceeds the visible
// height; anything faster is indistinguishable from a hard drop.
func (g Gravity) Mul(f float64) Gravity {
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		panic(fmt.Sprintf("engine: invalid gravity factor %v", f))
	}

	var rows float64
	switch g.kind {
	case ticksPerRow:
		tpr := float64(g.n)
		if tpr > f {
			return TicksPerRow(int(math.Round(tpr / f)))
		}
		rows = f / tpr
	case rowsPerTick:
		rows = float64(g.n) * f
	}

	if rows < 1 {
		return TicksPerRow(int(math.Round(1 / rows)))
	}
	if rows > VisibleHeight {
		return RowsPerTick(VisibleHeight)
	}
	return RowsPerTick(int(rows))
}

func (g Gravity) String() string {
	if g.kind == rowsPerTick {
		return fmt.Sprintf("RowsPerTick(%d)", g.n)
	}
	return fmt.Sprintf("TicksPerRow(%d)", g.n)
}
