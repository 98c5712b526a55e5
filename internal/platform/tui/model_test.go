package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/games/stacker"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

func newTestModel(t *testing.T, opts ...GameOption) (GameModel, *storage.Store) {
	t.Helper()
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "stacker.yaml")
	require.NoError(t, os.WriteFile(cfgPath, config.DefaultYAML(), 0o644))
	stacker.SetConfigPath(cfgPath)
	t.Cleanup(func() { stacker.SetConfigPath("") })

	store, err := storage.Open(filepath.Join(dir, "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	m := NewGameModel(stacker.New(), store, cfg, opts...)
	m.Init()
	return m, store
}

func send(m GameModel, msg tea.Msg) GameModel {
	next, _ := m.Update(msg)
	return next.(GameModel)
}

func tick(m GameModel, n int) GameModel {
	for range n {
		m = send(m, TickMsg{})
	}
	return m
}

func TestGameModelSavesRunOnce(t *testing.T) {
	m, store := newTestModel(t)

	for i := 0; i < 5000 && !m.State().GameOver; i++ {
		m = send(m, tea.KeyMsg{Type: tea.KeySpace})
		m = tick(m, edgeHoldTicks+2)
	}
	require.True(t, m.State().GameOver)

	m = tick(m, 30)
	runs, err := store.TopRuns("stacker", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, m.State().Score, runs[0].Score)
	assert.Equal(t, m.State().Ticks, runs[0].Ticks)

	m = send(m, runeKey('r'))
	m = tick(m, 1)
	assert.False(t, m.State().GameOver)
	assert.Zero(t, m.State().Score)
}

func TestGameModelHeldMoveFeedsGame(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.game.(*stacker.Game).Engine().CurrentPiece()

	m = send(m, runeKey('a'))
	m = tick(m, 2)

	after := m.game.(*stacker.Game).Engine().CurrentPiece()
	assert.Less(t, after.Col, before.Col)
}

func TestGameModelBackToMenu(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, runeKey('b'))
	assert.False(t, m.BackToMenu(), "playing")

	m = send(m, runeKey('p'))
	m = tick(m, 1)
	require.True(t, m.State().Paused)
	m = send(m, runeKey('b'))
	assert.False(t, m.BackToMenu(), "no menu to return to")

	withMenu, _ := newTestModel(t, WithBackToMenu())
	withMenu = send(withMenu, runeKey('p'))
	withMenu = tick(withMenu, 1)
	withMenu = send(withMenu, runeKey('b'))
	assert.True(t, withMenu.BackToMenu())
}

func TestGameModelQuit(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.Update(runeKey('q'))
	assert.True(t, next.(GameModel).IsQuitting())
	assert.NotNil(t, cmd)
	assert.Empty(t, next.View())
}

func TestGameModelResizeKeepsGame(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(m, 3)
	score := m.State().Score
	require.Positive(t, score)

	m = send(m, tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.Contains(t, m.View(), "Window too small")

	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = tick(m, 1)
	assert.Equal(t, score, m.State().Score)
	assert.False(t, strings.Contains(m.View(), "Window too small"))
}
