package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/engine"
	"github.com/vovakirdan/tui-stacker/internal/registry"
)

// LevelSelection holds the player's difficulty choice.
type LevelSelection struct {
	Preset config.DifficultyPreset
	Level  int // 0 = the preset's start level
}

// difficultySetter is implemented by games with per-instance difficulty.
type difficultySetter interface {
	UseDifficulty(preset string)
	UseStartLevel(level int)
}

// Apply configures game with the selection. Games without per-instance
// difficulty are left alone.
func (s LevelSelection) Apply(game registry.Game) {
	if ds, ok := game.(difficultySetter); ok {
		ds.UseDifficulty(string(s.Preset))
		ds.UseStartLevel(s.Level)
	}
}

var presetChoices = []struct {
	preset config.DifficultyPreset
	label  string
}{
	{config.DifficultyEasy, "Easy    (level 1)"},
	{config.DifficultyNormal, "Normal  (level 5)"},
	{config.DifficultyHard, "Hard    (level 10)"},
	{config.DifficultyFixed, "Fixed   (no level ups)"},
}

// LevelSelectModel lets users pick a difficulty preset or a start level.
type LevelSelectModel struct {
	title         string
	levels        config.LevelsConfig
	tickRate      int
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     *LevelSelection
	quitting      bool
	back          bool
}

// NewLevelSelectModel creates a selector for the given level table.
func NewLevelSelectModel(title string, levels config.LevelsConfig, cfg core.RuntimeConfig) LevelSelectModel {
	return LevelSelectModel{
		title:     title,
		levels:    levels,
		tickRate:  cfg.TickRate,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelKey(action)
		}
		return m.handlePresetKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m LevelSelectModel) handlePresetKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(presetChoices) { // last row is "Select level..."
			m.cursor++
		}
	case MenuActionSelect:
		if m.cursor == len(presetChoices) {
			m.inLevelSelect = true
			m.levelCursor = 0
			return m, nil
		}
		m.selection = &LevelSelection{Preset: presetChoices[m.cursor].preset}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

func (m LevelSelectModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < m.levels.MaxLevel-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.selection = &LevelSelection{Preset: config.DifficultyEasy, Level: m.levelCursor + 1}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

// View renders the preset or level list.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevels()
	}
	return m.viewPresets()
}

func (m LevelSelectModel) viewPresets() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.title, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	labels := make([]string, 0, len(presetChoices)+1)
	for _, c := range presetChoices {
		labels = append(labels, c.label)
	}
	labels = append(labels, "Select level...")

	for i, label := range labels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-24s", cursor, label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

func (m LevelSelectModel) viewLevels() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	speeds := config.NewDifficultyManager(config.DifficultyConfig{Enabled: true, StartLevel: 1}, m.levels)
	for i := range m.levels.MaxLevel {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%2d.  %s", cursor, i+1, describeGravity(speeds.Gravity(i+1), m.tickRate))
		b.WriteString(centerText(fmt.Sprintf("%-28s", line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// describeGravity renders a fall speed in rows per second.
func describeGravity(g engine.Gravity, tickRate int) string {
	if tickRate <= 0 {
		tickRate = 60
	}
	if n, ok := g.RowsPerTick(); ok {
		return fmt.Sprintf("%d rows/s", n*tickRate)
	}
	n, _ := g.TicksPerRow()
	return fmt.Sprintf("%.1f rows/s", float64(tickRate)/float64(n))
}

// Selected returns the selection, or nil if none was made.
func (m LevelSelectModel) Selected() *LevelSelection {
	return m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the difficulty picker. A nil selection means the
// player backed out or quit.
func RunLevelSelector(title string, levels config.LevelsConfig, cfg core.RuntimeConfig) (*LevelSelection, error) {
	p := tea.NewProgram(NewLevelSelectModel(title, levels, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := finalModel.(LevelSelectModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
