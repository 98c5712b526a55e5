package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/registry"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

// keyHolder is implemented by games that configure the key-hold window.
type keyHolder interface {
	KeyHoldTicks() int
}

// GameModel is the Bubble Tea model that runs one game. It turns key presses
// into held actions, steps the game every tick and records finished runs.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	renderer  *ScreenRenderer
	store     *storage.Store
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	holds     *HoldTracker
	gameState core.GameState
	logger    *log.Logger

	withMenu   bool // B returns to a menu instead of doing nothing
	quitting   bool
	backToMenu bool
	runSaved   bool
}

// GameOption configures a GameModel.
type GameOption func(*GameModel)

// WithScreenRenderer renders through r instead of the local terminal.
func WithScreenRenderer(r *ScreenRenderer) GameOption {
	return func(m *GameModel) {
		m.renderer = r
	}
}

// WithLogger sets the logger for run bookkeeping.
func WithLogger(l *log.Logger) GameOption {
	return func(m *GameModel) {
		m.logger = l
	}
}

// WithBackToMenu lets the player leave a paused or finished game with B.
func WithBackToMenu() GameOption {
	return func(m *GameModel) {
		m.withMenu = true
	}
}

// NewGameModel creates a model for the given game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	m := GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer:  defaultScreenRenderer,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		holds:     NewHoldTracker(DefaultKeyHoldTicks),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	if kh, ok := m.game.(keyHolder); ok {
		m.holds.SetKeyHoldTicks(kh.KeyHoldTicks())
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionNone {
		idle := m.gameState.GameOver || m.gameState.Won || m.gameState.Paused
		if m.withMenu && idle && m.keyMapper.MapKeyToMenuAction(msg) == MenuActionBack {
			m.backToMenu = true
		}
		return m, nil
	}

	m.holds.Press(action)
	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	prev := m.gameState
	result := m.game.Step(m.holds.Next())
	m.gameState = result.State

	finished := m.gameState.GameOver || m.gameState.Won
	if (prev.GameOver || prev.Won) && !finished {
		// Restarted.
		m.runSaved = false
		m.holds.Reset()
	}
	if finished && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished game. Failures are logged and play goes on.
func (m GameModel) saveRun() {
	run := storage.RunFromState(m.game.ID(), m.gameState)
	if m.store == nil || !run.Recordable() {
		return
	}
	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Warn("could not save run", "game", run.GameID, "err", err)
		return
	}
	m.logger.Info("run saved", "id", id, "game", run.GameID, "score", run.Score, "lines", run.Lines)
}

// saveScreenshot writes the current screen as text under ~/.stacker/screenshots.
func (m GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".stacker", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return m.renderer.Render(m.screen)
}

// State returns the game state as of the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the local terminal until the player quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) error {
	model := NewGameModel(game, store, cfg, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
