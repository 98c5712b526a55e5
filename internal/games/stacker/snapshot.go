package stacker

import "github.com/vovakirdan/tui-stacker/internal/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StateWin         GameStateType = "win"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Ticks    int
	Mode     string
	Score    int
	Lines    int
	Level    int
	Engine   string // engine state, e.g. "Falling(3)"
	Piece    engine.Piece
	Hold     string // shape letter, empty when the slot is empty
	Upcoming string // queued shape letters, next first
	Field    string // visible field, top row first
	State    GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	hold := ""
	if s, ok := g.engine.HoldPiece(); ok {
		hold = s.String()
	}
	upcoming := ""
	for _, s := range g.engine.UpcomingPieces() {
		upcoming += s.String()
	}
	field := g.engine.Field()

	return Snapshot{
		Ticks:    g.ticks,
		Mode:     string(g.mode),
		Score:    g.keeper.Score(),
		Lines:    g.keeper.Lines(),
		Level:    g.level,
		Engine:   g.engine.State().String(),
		Piece:    g.engine.CurrentPiece(),
		Hold:     hold,
		Upcoming: upcoming,
		Field:    field.String(),
		State:    state,
	}
}
