package stacker

import (
	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/engine"
)

// Scorekeeper tracks score, cleared lines and level from engine events.
type Scorekeeper struct {
	scoring    config.ScoringConfig
	difficulty *config.DifficultyManager

	score    int
	lines    int
	lastSpin engine.Spin
}

var _ engine.Observer = (*Scorekeeper)(nil)

// NewScorekeeper creates a scorekeeper using the given points table.
func NewScorekeeper(scoring config.ScoringConfig, difficulty *config.DifficultyManager) *Scorekeeper {
	return &Scorekeeper{scoring: scoring, difficulty: difficulty}
}

// Score returns the points earned so far.
func (s *Scorekeeper) Score() int { return s.score }

// Lines returns the number of rows cleared so far.
func (s *Scorekeeper) Lines() int { return s.lines }

// Level returns the level reached with the lines cleared so far.
func (s *Scorekeeper) Level() int { return s.difficulty.Level(s.lines) }

func (s *Scorekeeper) OnLock(spin engine.Spin) {
	s.lastSpin = spin
}

func (s *Scorekeeper) OnSoftDrop(rows int) {
	s.score += rows * s.scoring.SoftDropPerRow
}

func (s *Scorekeeper) OnHardDrop(rows int) {
	s.score += rows * s.scoring.HardDropPerRow
}

// OnLineClear awards points at the level reached after counting the rows.
func (s *Scorekeeper) OnLineClear(rows int) {
	s.lines += rows
	s.score += s.linePoints(rows) * s.Level()
}

func (s *Scorekeeper) linePoints(rows int) int {
	if rows < 1 {
		return 0
	}
	// Only a full spin earns the bonus; a mini scores like a plain clear.
	if s.lastSpin == engine.SpinRegular && rows <= len(s.scoring.TSpin) {
		return s.scoring.TSpin[rows-1]
	}
	if rows <= len(s.scoring.LineClear) {
		return s.scoring.LineClear[rows-1]
	}
	return 0
}
