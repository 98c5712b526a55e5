package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-stacker/internal/registry"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show mode list sidebar
	sidebarWidth       = 24  // Width of mode list sidebar
	maxRuns            = 100 // Max runs to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
// Marathon modes rank runs by score; sprint modes by completion time.
type ScoreboardModel struct {
	games       []registry.GameInfo
	gameCursor  int
	store       *storage.Store
	runs        []storage.Run
	stats       *storage.GameStats
	tickRate    int
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	renderer    *lipgloss.Renderer
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model. A nil renderer uses
// the local terminal.
func NewScoreboardModel(store *storage.Store, width, height, tickRate int, r *lipgloss.Renderer) ScoreboardModel {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		games:       registry.List(),
		store:       store,
		tickRate:    tickRate,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		renderer:    r,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.reload()
	return m
}

func (m *ScoreboardModel) currentID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// reload rebuilds the table for the current mode.
func (m *ScoreboardModel) reload() {
	m.table = m.createTable()
	m.loadRuns(m.currentID())
}

func (m *ScoreboardModel) createTable() table.Model {
	tableWidth := m.width - 6
	if m.showSidebar {
		tableWidth -= sidebarWidth + 4
	}
	dateWidth := min(max(tableWidth-48, 12), 18)

	var columns []table.Column
	if isTimed(m.currentID()) {
		columns = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Time", Width: 10},
			{Title: "Lines", Width: 6},
			{Title: "Score", Width: 9},
			{Title: "Level", Width: 6},
			{Title: "Date", Width: dateWidth},
		}
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 9},
			{Title: "Lines", Width: 6},
			{Title: "Level", Width: 6},
			{Title: "Time", Width: 10},
			{Title: "Date", Width: dateWidth},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads the leaderboard and stats for gameID.
func (m *ScoreboardModel) loadRuns(gameID string) {
	m.runs = nil
	m.stats = nil
	if m.store != nil && gameID != "" {
		var runs []storage.Run
		var err error
		if isTimed(gameID) {
			runs, err = m.store.FastestRuns(gameID, maxRuns)
		} else {
			runs, err = m.store.TopRuns(gameID, maxRuns)
		}
		if err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetGameStats(gameID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

func (m *ScoreboardModel) updateTableRows() {
	timed := isTimed(m.currentID())
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rank := fmt.Sprintf("#%d", i+1)
		score := strconv.Itoa(r.Score)
		lines := strconv.Itoa(r.Lines)
		level := strconv.Itoa(r.Level)
		elapsed := formatDuration(r.Duration(m.tickRate))
		date := r.CreatedAt.Format("Jan 02 15:04")
		if timed {
			rows[i] = table.Row{rank, elapsed, lines, score, level, date}
		} else {
			rows[i] = table.Row{rank, score, lines, level, elapsed, date}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := m.renderer.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := "LEADERBOARD"
	if len(m.games) > 0 {
		title = "LEADERBOARD - " + m.games[m.gameCursor].Title
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")

	statsStyle := m.renderer.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(statsStyle.Render(centerText(m.statsLine(), m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := m.renderer.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes every recorded run of the current mode.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "No games played"
	}
	return fmt.Sprintf("%d games  |  avg score %.0f  |  %d lines total  |  last played %s",
		m.stats.GamesCount, m.stats.AvgScore, m.stats.TotalLines,
		m.stats.LastPlayed.Format("Jan 02 15:04"))
}

// renderWideLayout renders the mode list beside the table.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := m.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Modes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")
	for i, g := range m.games {
		cursor := "  "
		style := m.renderer.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + g.Title))
		sidebar.WriteString("\n")
	}

	tableStyle := m.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the current mode name above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder
	if len(m.games) > 0 {
		tabStyle := m.renderer.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
		b.WriteString(centerText("< "+tabStyle.Render(m.games[m.gameCursor].Title)+" >", m.width))
		b.WriteString("\n\n")
	}

	tableStyle := m.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := m.renderer.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		if isTimed(m.currentID()) {
			return emptyStyle.Render("No finished sprints yet.\nClear the target lines to set a time!")
		}
		return emptyStyle.Render("No runs recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// Runs returns the runs currently listed.
func (m ScoreboardModel) Runs() []storage.Run {
	return m.runs
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height, tickRate int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height, tickRate, nil), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
