package config

import (
	"fmt"

	"github.com/vovakirdan/tui-stacker/internal/engine"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard, or fixed)", name)
	}
}

// StartLevelForPreset returns the starting level for a difficulty preset.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 5
	case DifficultyHard:
		return 10
	default:
		return 1
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
// The fixed preset keeps the configured start level and stops progression.
func ApplyPreset(cfg *StackerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.StartLevel = StartLevelForPreset(preset)
}

// DifficultyManager maps cleared lines to a level and a level to gravity.
type DifficultyManager struct {
	cfg    DifficultyConfig
	levels LevelsConfig
	start  int
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig, levels LevelsConfig) *DifficultyManager {
	d := &DifficultyManager{cfg: cfg, levels: levels}
	d.SetStartLevel(cfg.StartLevel)
	return d
}

// SetStartLevel overrides the starting level, clamped to [1, MaxLevel].
func (d *DifficultyManager) SetStartLevel(level int) {
	d.start = max(1, min(level, d.maxLevel()))
}

// StartLevel returns the level the game begins at.
func (d *DifficultyManager) StartLevel() int {
	return d.start
}

// SetEnabled enables or disables level progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether level progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the level reached after clearing the given number of lines.
func (d *DifficultyManager) Level(lines int) int {
	if !d.cfg.Enabled || d.levels.LinesPerLevel <= 0 {
		return d.start
	}
	return min(d.start+lines/d.levels.LinesPerLevel, d.maxLevel())
}

// Gravity returns the fall speed for a level. Levels past the end of the
// gravity table use its last entry.
func (d *DifficultyManager) Gravity(level int) engine.Gravity {
	table := d.levels.Gravity
	if len(table) == 0 {
		return engine.TicksPerRow(60)
	}
	i := max(0, min(level-1, len(table)-1))
	return table[i].Gravity()
}

func (d *DifficultyManager) maxLevel() int {
	if d.levels.MaxLevel < 1 {
		return 1
	}
	return d.levels.MaxLevel
}
