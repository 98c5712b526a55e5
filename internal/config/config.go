// Package config provides YAML-based game configuration loading and
// difficulty management for the stacker.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-stacker/internal/engine"
)

// StackerConfig contains all configuration for the stacker modes.
type StackerConfig struct {
	Timing     TimingConfig     `yaml:"timing"`
	Levels     LevelsConfig     `yaml:"levels"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Sprint     SprintConfig     `yaml:"sprint"`
	Input      InputConfig      `yaml:"input"`
	Audio      AudioConfig      `yaml:"audio"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TimingConfig holds the rule delays, counted in ticks.
type TimingConfig struct {
	LockDelay       int     `yaml:"lock_delay"`
	LineClearDelay  int     `yaml:"line_clear_delay"`
	AutoRepeatDelay int     `yaml:"auto_repeat_delay"`
	AutoRepeatRate  int     `yaml:"auto_repeat_rate"`
	SoftDropFactor  float64 `yaml:"soft_drop_factor"`
	QueueSize       int     `yaml:"queue_size"`
}

// Engine converts the timing section to engine timings.
func (t TimingConfig) Engine() engine.Timing {
	return engine.Timing{
		LockDelay:       t.LockDelay,
		LineClearDelay:  t.LineClearDelay,
		AutoRepeatDelay: t.AutoRepeatDelay,
		AutoRepeatRate:  t.AutoRepeatRate,
		SoftDropFactor:  t.SoftDropFactor,
		QueueSize:       t.QueueSize,
	}
}

// GravityStep is one level's fall speed. Exactly one field is set.
type GravityStep struct {
	TicksPerRow int `yaml:"ticks_per_row,omitempty"`
	RowsPerTick int `yaml:"rows_per_tick,omitempty"`
}

// Gravity converts the step to an engine gravity.
func (s GravityStep) Gravity() engine.Gravity {
	if s.RowsPerTick > 0 {
		return engine.RowsPerTick(s.RowsPerTick)
	}
	return engine.TicksPerRow(s.TicksPerRow)
}

func (s GravityStep) validate() error {
	switch {
	case s.TicksPerRow > 0 && s.RowsPerTick > 0:
		return fmt.Errorf("both ticks_per_row and rows_per_tick set")
	case s.TicksPerRow <= 0 && s.RowsPerTick <= 0:
		return fmt.Errorf("one of ticks_per_row or rows_per_tick must be positive")
	}
	return nil
}

// LevelsConfig defines level progression. Gravity[i] is the speed at level i+1;
// levels past the end of the table reuse the last entry.
type LevelsConfig struct {
	Gravity       []GravityStep `yaml:"gravity"`
	LinesPerLevel int           `yaml:"lines_per_level"`
	MaxLevel      int           `yaml:"max_level"`
}

// ScoringConfig defines the points table.
type ScoringConfig struct {
	// LineClear[n-1] is the base award for clearing n rows at once.
	LineClear []int `yaml:"line_clear"`
	// TSpin[n-1] replaces LineClear when the clearing piece was a T-spin.
	TSpin          []int `yaml:"t_spin"`
	SoftDropPerRow int   `yaml:"soft_drop_per_row"`
	HardDropPerRow int   `yaml:"hard_drop_per_row"`
}

// SprintConfig defines the sprint mode goal.
type SprintConfig struct {
	TargetLines int `yaml:"target_lines"`
}

// InputConfig tunes terminal input handling.
type InputConfig struct {
	// KeyHoldTicks is how long a key counts as held after its last press.
	// Terminals report presses only, never releases.
	KeyHoldTicks int `yaml:"key_hold_ticks"`
}

// AudioConfig controls sound effects, played only with --sound.
type AudioConfig struct {
	Volume float64 `yaml:"volume"` // linear, 0 mutes
}

// DifficultyConfig defines the starting level and whether it advances.
type DifficultyConfig struct {
	Enabled    bool `yaml:"enabled"` // false keeps the start level for the whole game
	StartLevel int  `yaml:"start_level"`
}

// Validate checks the configuration for values the game cannot run with.
func (c StackerConfig) Validate() error {
	t := c.Timing
	switch {
	case t.LockDelay < 1:
		return fmt.Errorf("config: timing.lock_delay must be >= 1, got %d", t.LockDelay)
	case t.LineClearDelay < 1:
		return fmt.Errorf("config: timing.line_clear_delay must be >= 1, got %d", t.LineClearDelay)
	case t.AutoRepeatDelay < 2:
		return fmt.Errorf("config: timing.auto_repeat_delay must be >= 2, got %d", t.AutoRepeatDelay)
	case t.AutoRepeatRate < 1:
		return fmt.Errorf("config: timing.auto_repeat_rate must be >= 1, got %d", t.AutoRepeatRate)
	case t.SoftDropFactor <= 0:
		return fmt.Errorf("config: timing.soft_drop_factor must be > 0, got %v", t.SoftDropFactor)
	case t.QueueSize < 1:
		return fmt.Errorf("config: timing.queue_size must be >= 1, got %d", t.QueueSize)
	}

	if len(c.Levels.Gravity) == 0 {
		return fmt.Errorf("config: levels.gravity is empty")
	}
	for i, step := range c.Levels.Gravity {
		if err := step.validate(); err != nil {
			return fmt.Errorf("config: levels.gravity[%d]: %w", i, err)
		}
	}
	if c.Levels.LinesPerLevel < 1 {
		return fmt.Errorf("config: levels.lines_per_level must be >= 1, got %d", c.Levels.LinesPerLevel)
	}
	if c.Levels.MaxLevel < 1 {
		return fmt.Errorf("config: levels.max_level must be >= 1, got %d", c.Levels.MaxLevel)
	}

	if len(c.Scoring.LineClear) < 4 {
		return fmt.Errorf("config: scoring.line_clear needs 4 entries, got %d", len(c.Scoring.LineClear))
	}
	if len(c.Scoring.TSpin) < 3 {
		return fmt.Errorf("config: scoring.t_spin needs 3 entries, got %d", len(c.Scoring.TSpin))
	}

	if c.Sprint.TargetLines < 1 {
		return fmt.Errorf("config: sprint.target_lines must be >= 1, got %d", c.Sprint.TargetLines)
	}
	if c.Input.KeyHoldTicks < 1 {
		return fmt.Errorf("config: input.key_hold_ticks must be >= 1, got %d", c.Input.KeyHoldTicks)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("config: audio.volume must be in [0, 1], got %v", c.Audio.Volume)
	}
	return nil
}
