// Package stacker adapts the rules engine to the platform: it maps input
// frames to engine signals, keeps score and level, and draws the playfield.
package stacker

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/engine"
	"github.com/vovakirdan/tui-stacker/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeMarathon Mode = "marathon"
	ModeSprint   Mode = "sprint"
)

// Game implements registry.Game on top of the rules engine.
type Game struct {
	mode       Mode
	cfg        config.StackerConfig
	difficulty *config.DifficultyManager
	engine     *engine.Engine
	keeper     *Scorekeeper
	colors     colorField
	observers  []engine.Observer // attached again on every Reset
	rng        *rand.Rand        // seeds restarts

	// Per-instance overrides of the package-level settings. SSH sessions
	// use these so concurrent players don't share a start level.
	preset     string
	startLevel int

	ticks    int
	level    int
	tickRate int

	screenW int
	screenH int

	gameOver bool
	won      bool
	paused   bool
	tooSmall bool
}

// Package-level settings applied on the next Reset, set by the CLI and menus.
var (
	configPath         string
	difficultyPreset   string
	selectedStartLevel int
	logger             = log.New(io.Discard)
)

// SetConfigPath sets the config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard, fixed).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetStartLevel sets the starting level. 0 means use the config.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// SetLogger sets the logger handed to new engines.
func SetLogger(l *log.Logger) {
	logger = l
}

// New creates a marathon game.
func New() *Game {
	return &Game{mode: ModeMarathon}
}

// NewSprint creates a sprint game.
func NewSprint() *Game {
	return &Game{mode: ModeSprint}
}

func init() {
	registry.Register("stacker", func() registry.Game {
		return New()
	})
	registry.Register("stacker_sprint", func() registry.Game {
		return NewSprint()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeSprint {
		return "stacker_sprint"
	}
	return "stacker"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSprint {
		return "Stacker (Sprint)"
	}
	return "Stacker (Marathon)"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// UseDifficulty sets the preset for this instance, overriding
// SetDifficultyPreset. Takes effect on the next Reset.
func (g *Game) UseDifficulty(preset string) {
	g.preset = preset
}

// UseStartLevel sets the start level for this instance, overriding
// SetStartLevel. 0 falls back to the package setting.
func (g *Game) UseStartLevel(level int) {
	g.startLevel = level
}

// AddObserver attaches an extra engine observer, such as sound effects.
// It stays attached across restarts.
func (g *Game) AddObserver(o engine.Observer) {
	g.observers = append(g.observers, o)
	if g.engine != nil {
		g.engine.AddObserver(o)
	}
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultStackerConfig()
	}
	preset := g.preset
	if preset == "" {
		preset = difficultyPreset
	}
	if preset != "" {
		config.ApplyPreset(&cfg, config.DifficultyPreset(preset))
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty, cfg.Levels)
	start := g.startLevel
	if start == 0 {
		start = selectedStartLevel
	}
	if start > 0 {
		g.difficulty.SetStartLevel(start)
	}

	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.keeper = NewScorekeeper(cfg.Scoring, g.difficulty)
	g.level = g.difficulty.StartLevel()

	opts := []engine.Option{
		engine.WithTiming(cfg.Timing.Engine()),
		engine.WithGravity(g.difficulty.Gravity(g.level)),
		engine.WithObserver(g.keeper),
		engine.WithLogger(logger),
	}
	for _, o := range g.observers {
		opts = append(opts, engine.WithObserver(o))
	}
	g.engine = engine.New(engine.NewBagRandomizer(g.rng.Int63()), opts...)

	g.colors = colorField{}
	g.ticks = 0
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.gameOver = false
	g.won = false
	g.paused = false
	g.Resize(rc.ScreenW, rc.ScreenH)

	logger.Debug("game reset", "mode", g.mode, "level", g.level, "seed", rc.Seed)
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.tooSmall = width < layoutWidth || height < layoutHeight
}

var signals = [...]struct {
	action core.Action
	signal engine.Action
}{
	{core.ActionMoveLeft, engine.MoveLeft},
	{core.ActionMoveRight, engine.MoveRight},
	{core.ActionRotateCW, engine.RotateCW},
	{core.ActionRotateCCW, engine.RotateCCW},
	{core.ActionSoftDrop, engine.SoftDrop},
	{core.ActionHardDrop, engine.HardDrop},
	{core.ActionHold, engine.Hold},
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if input.Has(core.ActionRestart) && (g.gameOver || g.won) {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}

	if g.gameOver || g.won || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	for _, s := range signals {
		if input.Has(s.action) {
			g.engine.Signal(s.signal)
		}
	}

	before := g.engine.Field()
	full := engine.FullRows(&before)
	shape := g.engine.CurrentPiece().Shape
	lines := g.keeper.Lines()

	state := g.engine.Tick()
	g.ticks++

	cleared := g.keeper.Lines() - lines
	if cleared > 0 {
		g.colors.removeRows(full)
	} else {
		after := g.engine.Field()
		g.colors.paint(&before, &after, ShapeColor(shape))
	}

	switch state.Kind {
	case engine.StateSpawn:
		if level := g.keeper.Level(); level != g.level {
			logger.Debug("level up", "level", level, "lines", g.keeper.Lines())
			g.level = level
		}
		g.engine.SetGravity(g.difficulty.Gravity(g.level))
	case engine.StateTopOut:
		g.gameOver = true
	}

	if g.mode == ModeSprint && !g.gameOver && g.keeper.Lines() >= g.cfg.Sprint.TargetLines {
		g.won = true
	}

	return core.StepResult{State: g.State(), Cleared: cleared}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.keeper == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.keeper.Score(),
		Lines:    g.keeper.Lines(),
		Level:    g.level,
		Ticks:    g.ticks,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Engine exposes the rules engine for frontends that draw it themselves.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// CellColor returns the color of the locked cell at row, col.
func (g *Game) CellColor(row, col int) core.Color {
	return g.colors.at(row, col)
}

// TargetLines returns the sprint goal.
func (g *Game) TargetLines() int {
	return g.cfg.Sprint.TargetLines
}

// KeyHoldTicks returns the terminal key-hold window from the config.
func (g *Game) KeyHoldTicks() int {
	return g.cfg.Input.KeyHoldTicks
}

// Config returns the configuration loaded by the last Reset.
func (g *Game) Config() config.StackerConfig {
	return g.cfg
}
