package stacker

import (
	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/engine"
)

var shapeColors = [...]core.Color{
	engine.I: core.ColorBrightCyan,
	engine.O: core.ColorBrightYellow,
	engine.T: core.ColorMagenta,
	engine.S: core.ColorBrightGreen,
	engine.Z: core.ColorBrightRed,
	engine.J: core.ColorBlue,
	engine.L: core.ColorOrange,
}

// ShapeColor returns the display color of a shape.
func ShapeColor(s engine.Shape) core.Color {
	if int(s) < len(shapeColors) {
		return shapeColors[s]
	}
	return core.ColorWhite
}

// colorField remembers the color of every locked cell. The engine field only
// records occupancy, so the game mirrors its writes and clears here.
type colorField [engine.TotalHeight][engine.Width]core.Color

func (c *colorField) at(row, col int) core.Color {
	return c[row-1][col-1]
}

// paint colors every cell that became occupied between before and after.
func (c *colorField) paint(before, after *engine.Field, color core.Color) {
	for row := 1; row <= engine.TotalHeight; row++ {
		for col := 1; col <= engine.Width; col++ {
			if after.IsOccupied(row, col) && !before.IsOccupied(row, col) {
				c[row-1][col-1] = color
			}
		}
	}
}

// removeRows drops the given rows, ascending, and compacts the rest down the
// same way the engine does.
func (c *colorField) removeRows(rows []int) {
	if len(rows) == 0 {
		return
	}
	removed := make(map[int]bool, len(rows))
	for _, r := range rows {
		removed[r] = true
	}

	dst := 0
	for src := range engine.TotalHeight {
		if removed[src+1] {
			continue
		}
		c[dst] = c[src]
		dst++
	}
	for ; dst < engine.TotalHeight; dst++ {
		c[dst] = [engine.Width]core.Color{}
	}
}
