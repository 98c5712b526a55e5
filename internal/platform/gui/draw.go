package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/engine"
	"github.com/vovakirdan/tui-stacker/internal/games/stacker"
)

const (
	// cellSize is the size of each field cell in pixels
	cellSize = 24
	// panelCells is the width of the hold and next panels, in cells
	panelCells = 6
	// peekRows is how many rows above the visible field are drawn
	peekRows = 2

	fieldX = (panelCells + 1) * cellSize
	fieldY = (peekRows + 1) * cellSize

	logicalWidth  = (panelCells*2 + 2 + engine.Width) * cellSize
	logicalHeight = (peekRows + 2 + engine.VisibleHeight) * cellSize
)

var (
	whiteColor      = color.White
	backgroundColor = color.RGBA{0x12, 0x12, 0x18, 0xff}
	wellColor       = color.RGBA{0x1e, 0x1e, 0x28, 0xff}
	gridColor       = color.RGBA{0x2a, 0x2a, 0x36, 0xff}
	dimTextColor    = color.RGBA{0x90, 0x90, 0x90, 0xff}
	overlayColor    = color.RGBA{0x00, 0x00, 0x00, 0xc0}
)

func rgba(c core.Color, alpha uint8) color.NRGBA {
	r, g, b := c.RGB()
	return color.NRGBA{r, g, b, alpha}
}

// fillRect draws a solid rectangle by scaling the 1x1 pixel image.
func (r *Runner) fillRect(dst *ebiten.Image, x, y, w, h int, c color.Color) {
	var op ebiten.DrawImageOptions
	op.ColorScale.ScaleWithColor(c)
	op.GeoM.Scale(float64(w), float64(h))
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(r.pixel, &op)
}

// drawCell draws one block with a one pixel gap.
func (r *Runner) drawCell(dst *ebiten.Image, x, y int, c color.Color) {
	r.fillRect(dst, x+1, y+1, cellSize-2, cellSize-2, c)
}

// cellPos returns the top-left pixel of a field cell. Rows above the
// visible field land above the well.
func cellPos(row, col int) (x, y int) {
	return fieldX + (col-1)*cellSize, fieldY + (engine.VisibleHeight-row)*cellSize
}

// Draw renders the whole frame.
func (r *Runner) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	eng := r.game.Engine()
	if eng == nil {
		return
	}
	r.drawWell(screen, eng)
	r.drawHold(screen, eng)
	r.drawNext(screen, eng)
	r.drawStats(screen)
	r.drawOverlay(screen)
}

func (r *Runner) drawWell(screen *ebiten.Image, eng *engine.Engine) {
	r.fillRect(screen, fieldX, fieldY, engine.Width*cellSize, engine.VisibleHeight*cellSize, wellColor)

	field := eng.Field()
	for row := 1; row <= engine.VisibleHeight; row++ {
		for col := 1; col <= engine.Width; col++ {
			x, y := cellPos(row, col)
			if field.IsOccupied(row, col) {
				r.drawCell(screen, x, y, rgba(r.game.CellColor(row, col), 0xff))
			} else {
				r.fillRect(screen, x+cellSize/2-1, y+cellSize/2-1, 2, 2, gridColor)
			}
		}
	}

	if r.state.GameOver {
		return
	}
	current := eng.CurrentPiece()
	shapeColor := stacker.ShapeColor(current.Shape)
	for _, c := range eng.GhostPiece().Cells() {
		if c.Row >= 1 && c.Row <= engine.VisibleHeight {
			x, y := cellPos(c.Row, c.Col)
			r.drawCell(screen, x, y, rgba(shapeColor, 0x50))
		}
	}
	for _, c := range current.Cells() {
		if c.Row >= 1 && c.Row <= engine.VisibleHeight+peekRows {
			x, y := cellPos(c.Row, c.Col)
			r.drawCell(screen, x, y, rgba(shapeColor, 0xff))
		}
	}
}

// drawPreview draws the spawn orientation of s with its top-left at x, y.
func (r *Runner) drawPreview(screen *ebiten.Image, x, y int, s engine.Shape, c color.Color) {
	m := engine.BoundingBox(s, engine.Spawn)
	line := 0
	for row := 3; row >= 0; row-- {
		empty := true
		for col := range 4 {
			if m[row][col] {
				r.drawCell(screen, x+col*cellSize, y+line*cellSize, c)
				empty = false
			}
		}
		if !empty {
			line++
		}
	}
}

func (r *Runner) drawHold(screen *ebiten.Image, eng *engine.Engine) {
	x := cellSize
	text.Draw(screen, "HOLD", basicfont.Face7x13, x, fieldY-6, dimTextColor)
	shape, ok := eng.HoldPiece()
	if !ok {
		return
	}
	c := rgba(stacker.ShapeColor(shape), 0xff)
	if !eng.HoldAvailable() {
		c = rgba(core.ColorGray, 0xff)
	}
	r.drawPreview(screen, x, fieldY, shape, c)
}

func (r *Runner) drawNext(screen *ebiten.Image, eng *engine.Engine) {
	x := fieldX + (engine.Width+1)*cellSize
	text.Draw(screen, "NEXT", basicfont.Face7x13, x, fieldY-6, dimTextColor)
	for i, shape := range eng.UpcomingPieces() {
		r.drawPreview(screen, x, fieldY+i*3*cellSize, shape, rgba(stacker.ShapeColor(shape), 0xff))
	}
}

func (r *Runner) drawStats(screen *ebiten.Image) {
	x := cellSize
	y := fieldY + 4*cellSize
	stat := func(label, value string) {
		text.Draw(screen, label, basicfont.Face7x13, x, y, dimTextColor)
		text.Draw(screen, value, basicfont.Face7x13, x, y+16, whiteColor)
		y += 2 * cellSize
	}

	st := r.state
	stat("SCORE", fmt.Sprintf("%d", st.Score))
	if r.game.Mode() == stacker.ModeSprint {
		stat("LINES LEFT", fmt.Sprintf("%d", max(0, r.game.TargetLines()-st.Lines)))
		stat("TIME", formatTicks(st.Ticks, r.tps))
	} else {
		stat("LINES", fmt.Sprintf("%d", st.Lines))
	}
	stat("LEVEL", fmt.Sprintf("%d", st.Level))

	text.Draw(screen, "Q quit", basicfont.Face7x13, x, logicalHeight-cellSize, dimTextColor)
}

func (r *Runner) drawOverlay(screen *ebiten.Image) {
	var line1, line2 string
	switch {
	case r.state.Won:
		line1, line2 = "SPRINT COMPLETE", formatTicks(r.state.Ticks, r.tps)+"  R to restart"
	case r.state.GameOver:
		line1, line2 = "GAME OVER", fmt.Sprintf("Score %d  R to restart", r.state.Score)
	case r.state.Paused:
		line1, line2 = "PAUSED", "P to continue"
	default:
		return
	}

	y := fieldY + engine.VisibleHeight*cellSize/2 - 2*cellSize
	r.fillRect(screen, 0, y, logicalWidth, 4*cellSize, overlayColor)
	centered := func(s string, y int) {
		w := len(s) * 7 // basicfont glyphs are 7px wide
		text.Draw(screen, s, basicfont.Face7x13, (logicalWidth-w)/2, y, whiteColor)
	}
	centered(line1, y+cellSize+8)
	centered(line2, y+3*cellSize)
}

// formatTicks renders a tick count as m:ss.cc.
func formatTicks(ticks, tps int) string {
	if tps <= 0 {
		tps = 60
	}
	centis := ticks * 100 / tps
	return fmt.Sprintf("%d:%02d.%02d", centis/6000, centis/100%60, centis%100)
}
