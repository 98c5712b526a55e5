package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-stacker/internal/core"
)

// ansiColors maps core.Color to terminal palette indexes.
var ansiColors = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// ScreenRenderer converts screen buffers to styled strings for one output.
// SSH sessions get their own so color detection follows the client terminal.
type ScreenRenderer struct {
	plain  lipgloss.Style
	styles map[core.Color]lipgloss.Style
}

// NewScreenRenderer creates a renderer whose styles come from r.
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	sr := &ScreenRenderer{
		plain:  r.NewStyle(),
		styles: make(map[core.Color]lipgloss.Style, len(ansiColors)),
	}
	for c, code := range ansiColors {
		sr.styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return sr
}

var defaultScreenRenderer = NewScreenRenderer(lipgloss.DefaultRenderer())

// RenderScreen renders s for the local terminal.
func RenderScreen(s *core.Screen) string {
	return defaultScreenRenderer.Render(s)
}

func (sr *ScreenRenderer) style(c core.Color) lipgloss.Style {
	if style, ok := sr.styles[c]; ok {
		return style
	}
	return sr.plain
}

// Render converts a Screen buffer to a styled string.
// Adjacent cells with the same color share one escape sequence.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(sr.style(color).Render(run.String()))
		}
	}
	return sb.String()
}
