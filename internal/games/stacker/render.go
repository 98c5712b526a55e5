package stacker

import (
	"fmt"

	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/engine"
)

// Screen layout. Every field cell is two characters wide. The two rows above
// the field box show the spawn zone so a new piece is visible immediately.
const (
	panelWidth   = 12
	peekRows     = 2
	fieldWidth   = engine.Width*2 + 2
	fieldHeight  = engine.VisibleHeight + 2
	layoutWidth  = panelWidth + 1 + fieldWidth + 1 + panelWidth
	layoutHeight = peekRows + fieldHeight
)

type layout struct {
	title core.Rect
	hold  core.Rect
	stats core.Rect
	field core.Rect
	next  core.Rect
}

func (g *Game) layout() layout {
	x := (g.screenW - layoutWidth) / 2
	y := (g.screenH - layoutHeight) / 2
	top := y + peekRows
	return layout{
		title: core.NewRect(x, y, panelWidth, peekRows),
		hold:  core.NewRect(x, top, panelWidth, 6),
		stats: core.NewRect(x, top+7, panelWidth, fieldHeight-7),
		field: core.NewRect(x+panelWidth+1, top, fieldWidth, fieldHeight),
		next:  core.NewRect(x+panelWidth+1+fieldWidth+1, top, panelWidth, 2+3*5),
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", layoutWidth, layoutHeight))
		return
	}
	if g.engine == nil {
		return
	}

	l := g.layout()
	g.renderTitle(dst, l.title)
	g.renderField(dst, l.field)
	g.renderHold(dst, l.hold)
	g.renderStats(dst, l.stats)
	g.renderNext(dst, l.next)

	switch {
	case g.won:
		renderOverlay(dst, "Sprint complete!", fmt.Sprintf("Time %s  R to restart", formatTicks(g.ticks, g.tickRate)))
	case g.gameOver:
		renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d  R to restart", g.keeper.Score()))
	case g.paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderTitle(dst *core.Screen, r core.Rect) {
	mode := "MARATHON"
	if g.mode == ModeSprint {
		mode = fmt.Sprintf("SPRINT %dL", g.cfg.Sprint.TargetLines)
	}
	dst.DrawTextColored(r.X+1, r.Y, "STACKER", core.ColorBrightWhite)
	dst.DrawTextColored(r.X+1, r.Y+1, mode, core.ColorGray)
}

// fieldCell maps a field row and column to the screen position of its left
// half. Spawn zone rows land above the top border.
func fieldCell(r core.Rect, row, col int) (x, y int) {
	x = r.X + 1 + (col-1)*2
	if row > engine.VisibleHeight {
		return x, r.Y + engine.VisibleHeight - row
	}
	return x, r.Y + 1 + engine.VisibleHeight - row
}

func (g *Game) renderField(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r, core.ColorGray)

	field := g.engine.Field()
	for row := 1; row <= engine.VisibleHeight; row++ {
		for col := 1; col <= engine.Width; col++ {
			x, y := fieldCell(r, row, col)
			if field.IsOccupied(row, col) {
				drawBlock(dst, x, y, g.colors.at(row, col))
			} else {
				dst.SetColored(x+1, y, '·', core.ColorGray)
			}
		}
	}

	if g.gameOver {
		return
	}

	current := g.engine.CurrentPiece()
	for _, c := range g.engine.GhostPiece().Cells() {
		if c.Row >= 1 && c.Row <= engine.VisibleHeight {
			x, y := fieldCell(r, c.Row, c.Col)
			dst.SetColored(x, y, '░', core.ColorGray)
			dst.SetColored(x+1, y, '░', core.ColorGray)
		}
	}
	for _, c := range current.Cells() {
		if c.Row >= 1 && c.Row <= engine.VisibleHeight+peekRows {
			x, y := fieldCell(r, c.Row, c.Col)
			drawBlock(dst, x, y, ShapeColor(current.Shape))
		}
	}
}

func drawBlock(dst *core.Screen, x, y int, c core.Color) {
	dst.SetColored(x, y, '█', c)
	dst.SetColored(x+1, y, '█', c)
}

func (g *Game) renderHold(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r, core.ColorGray)
	dst.DrawText(r.X+2, r.Y, " HOLD ")

	shape, ok := g.engine.HoldPiece()
	if !ok {
		return
	}
	color := ShapeColor(shape)
	if !g.engine.HoldAvailable() {
		color = core.ColorGray
	}
	drawPreview(dst, r.X+2, r.Y+2, shape, color)
}

func (g *Game) renderNext(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r, core.ColorGray)
	dst.DrawText(r.X+2, r.Y, " NEXT ")

	for i, shape := range g.engine.UpcomingPieces() {
		y := r.Y + 2 + i*3
		if y+1 >= r.Bottom()-1 {
			break
		}
		drawPreview(dst, r.X+2, y, shape, ShapeColor(shape))
	}
}

// drawPreview draws the occupied rows of a shape's spawn mask, top first,
// in at most two screen rows.
func drawPreview(dst *core.Screen, x, y int, s engine.Shape, c core.Color) {
	m := engine.BoundingBox(s, engine.Spawn)
	line := 0
	for row := 3; row >= 0 && line < 2; row-- {
		empty := true
		for col := range 4 {
			if m[row][col] {
				drawBlock(dst, x+col*2, y+line, c)
				empty = false
			}
		}
		if !empty {
			line++
		}
	}
}

func (g *Game) renderStats(dst *core.Screen, r core.Rect) {
	y := r.Y
	stat := func(label, value string) {
		dst.DrawTextColored(r.X+1, y, label, core.ColorGray)
		dst.DrawText(r.X+1, y+1, value)
		y += 3
	}

	stat("SCORE", fmt.Sprintf("%d", g.keeper.Score()))
	if g.mode == ModeSprint {
		left := max(0, g.cfg.Sprint.TargetLines-g.keeper.Lines())
		stat("LINES LEFT", fmt.Sprintf("%d", left))
		stat("TIME", formatTicks(g.ticks, g.tickRate))
	} else {
		stat("LINES", fmt.Sprintf("%d", g.keeper.Lines()))
	}
	stat("LEVEL", fmt.Sprintf("%d", g.level))
}

// formatTicks renders a tick count as m:ss.cc.
func formatTicks(ticks, tickRate int) string {
	if tickRate <= 0 {
		tickRate = 60
	}
	centis := ticks * 100 / tickRate
	return fmt.Sprintf("%d:%02d.%02d", centis/6000, centis/100%60, centis%100)
}

// renderOverlay draws a centered box with two lines of text.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.NewRect((dst.Width()-width)/2, (dst.Height()-5)/2, width, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
