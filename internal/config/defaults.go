package config

import (
	_ "embed"
)

//go:embed defaults/stacker.yaml
var defaultStackerYAML []byte

// DefaultStackerConfig returns the default stacker configuration.
func DefaultStackerConfig() StackerConfig {
	return StackerConfig{
		Timing: TimingConfig{
			LockDelay:       30,
			LineClearDelay:  30,
			AutoRepeatDelay: 12,
			AutoRepeatRate:  7,
			SoftDropFactor:  20,
			QueueSize:       5,
		},
		Levels: LevelsConfig{
			Gravity: []GravityStep{
				{TicksPerRow: 60},
				{TicksPerRow: 48},
				{TicksPerRow: 37},
				{TicksPerRow: 28},
				{TicksPerRow: 21},
				{TicksPerRow: 16},
				{TicksPerRow: 11},
				{TicksPerRow: 8},
				{TicksPerRow: 6},
				{TicksPerRow: 4},
				{TicksPerRow: 3},
				{TicksPerRow: 2},
				{TicksPerRow: 1},
				{RowsPerTick: 2},
				{RowsPerTick: 3},
			},
			LinesPerLevel: 10,
			MaxLevel:      15,
		},
		Scoring: ScoringConfig{
			LineClear:      []int{100, 300, 500, 800},
			TSpin:          []int{800, 1200, 1600},
			SoftDropPerRow: 1,
			HardDropPerRow: 2,
		},
		Sprint: SprintConfig{
			TargetLines: 40,
		},
		Input: InputConfig{
			KeyHoldTicks: 8,
		},
		Audio: AudioConfig{
			Volume: 0.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:    true,
			StartLevel: 1,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultStackerYAML
}
