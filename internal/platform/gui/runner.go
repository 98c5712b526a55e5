// Package gui runs a stacker game in a desktop window with ebiten. It reads
// real key states, so holds and releases reach the engine exactly.
package gui

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/games/stacker"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

var heldKeys = []struct {
	action core.Action
	keys   []ebiten.Key
}{
	{core.ActionMoveLeft, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{core.ActionMoveRight, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
	{core.ActionRotateCW, []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyX, ebiten.KeyW}},
	{core.ActionRotateCCW, []ebiten.Key{ebiten.KeyZ, ebiten.KeyControlLeft}},
	{core.ActionSoftDrop, []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}},
	{core.ActionHardDrop, []ebiten.Key{ebiten.KeySpace}},
	{core.ActionHold, []ebiten.Key{ebiten.KeyC, ebiten.KeyShiftLeft}},
}

// Toggles fire once per press, not while held.
var toggleKeys = []struct {
	action core.Action
	keys   []ebiten.Key
}{
	{core.ActionPause, []ebiten.Key{ebiten.KeyP, ebiten.KeyEscape}},
	{core.ActionRestart, []ebiten.Key{ebiten.KeyR}},
}

// readInput builds the frame for one tick from key state queries.
func readInput(pressed, justPressed func(ebiten.Key) bool) core.InputFrame {
	in := core.NewInputFrame()
	for _, b := range heldKeys {
		for _, k := range b.keys {
			if pressed(k) {
				in.Set(b.action)
				break
			}
		}
	}
	for _, b := range toggleKeys {
		for _, k := range b.keys {
			if justPressed(k) {
				in.Set(b.action)
				break
			}
		}
	}
	return in
}

// Runner implements ebiten.Game around a stacker game.
type Runner struct {
	game   *stacker.Game
	store  *storage.Store
	logger *log.Logger
	tps    int
	pixel  *ebiten.Image
	state  core.GameState
	saved  bool
}

// NewRunner creates a runner. The game is reset with cfg; a nil store
// disables run history.
func NewRunner(game *stacker.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	// The window has its own layout, so give the game a screen that always fits.
	cfg.ScreenW, cfg.ScreenH = 80, 24
	game.Reset(cfg)

	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(whiteColor)

	return &Runner{
		game:   game,
		store:  store,
		logger: logger,
		tps:    cfg.TickRate,
		pixel:  pixel,
	}
}

// Update advances the game by one tick.
func (r *Runner) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	prev := r.state
	r.state = r.game.Step(readInput(ebiten.IsKeyPressed, inpututil.IsKeyJustPressed)).State

	finished := r.state.GameOver || r.state.Won
	if (prev.GameOver || prev.Won) && !finished {
		r.saved = false
	}
	if finished && !r.saved {
		r.saveRun()
		r.saved = true
	}
	return nil
}

func (r *Runner) saveRun() {
	run := storage.RunFromState(r.game.ID(), r.state)
	if r.store == nil || !run.Recordable() {
		return
	}
	if _, err := r.store.SaveRun(run); err != nil {
		r.logger.Warn("could not save run", "game", run.GameID, "err", err)
		return
	}
	r.logger.Info("run saved", "game", run.GameID, "score", run.Score, "lines", run.Lines)
}

// Layout returns the fixed logical screen size; ebiten scales it to the window.
func (r *Runner) Layout(_, _ int) (screenWidth, screenHeight int) {
	return logicalWidth, logicalHeight
}

// Run opens a window and plays game until it is closed or Q is pressed.
func Run(game *stacker.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	r := NewRunner(game, store, cfg, logger)

	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowSize(logicalWidth*3/2, logicalHeight*3/2)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(r.tps)

	return ebiten.RunGame(r)
}
