package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-stacker/internal/engine"
)

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultStackerConfig().Validate())
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var cfg StackerConfig
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &cfg))
	assert.Equal(t, DefaultStackerConfig(), cfg)
}

func TestTimingEngine(t *testing.T) {
	assert.Equal(t, engine.DefaultTiming(), DefaultStackerConfig().Timing.Engine())
}

func TestGravityStep(t *testing.T) {
	assert.Equal(t, engine.TicksPerRow(8), GravityStep{TicksPerRow: 8}.Gravity())
	assert.Equal(t, engine.RowsPerTick(2), GravityStep{RowsPerTick: 2}.Gravity())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StackerConfig)
	}{
		{"lock delay", func(c *StackerConfig) { c.Timing.LockDelay = 0 }},
		{"auto repeat delay", func(c *StackerConfig) { c.Timing.AutoRepeatDelay = 1 }},
		{"soft drop factor", func(c *StackerConfig) { c.Timing.SoftDropFactor = 0 }},
		{"queue size", func(c *StackerConfig) { c.Timing.QueueSize = 0 }},
		{"empty gravity", func(c *StackerConfig) { c.Levels.Gravity = nil }},
		{"double gravity", func(c *StackerConfig) { c.Levels.Gravity[0].RowsPerTick = 1 }},
		{"zero gravity", func(c *StackerConfig) { c.Levels.Gravity[0] = GravityStep{} }},
		{"lines per level", func(c *StackerConfig) { c.Levels.LinesPerLevel = 0 }},
		{"line clear table", func(c *StackerConfig) { c.Scoring.LineClear = []int{100} }},
		{"t-spin table", func(c *StackerConfig) { c.Scoring.TSpin = nil }},
		{"sprint target", func(c *StackerConfig) { c.Sprint.TargetLines = 0 }},
		{"key hold", func(c *StackerConfig) { c.Input.KeyHoldTicks = 0 }},
		{"volume", func(c *StackerConfig) { c.Audio.Volume = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultStackerConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stacker.yaml")
	data := []byte("sprint:\n  target_lines: 20\ntiming:\n  lock_delay: 15\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Sprint.TargetLines)
	assert.Equal(t, 15, cfg.Timing.LockDelay)
	// Keys not in the file keep their defaults.
	assert.Equal(t, 30, cfg.Timing.LineClearDelay)
	assert.Len(t, cfg.Levels.Gravity, 15)
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("timing: [1, 2"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("timing:\n  queue_size: 0\n"), 0o644))
	_, err = Load(invalid)
	assert.Error(t, err)
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"", "easy", "normal", "hard", "fixed"} {
		p, err := ParsePreset(name)
		require.NoError(t, err)
		assert.Equal(t, DifficultyPreset(name), p)
	}
	_, err := ParsePreset("nightmare")
	assert.Error(t, err)
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultStackerConfig()
	ApplyPreset(&cfg, DifficultyHard)
	assert.True(t, cfg.Difficulty.Enabled)
	assert.Equal(t, 10, cfg.Difficulty.StartLevel)

	cfg.Difficulty.StartLevel = 3
	ApplyPreset(&cfg, DifficultyFixed)
	assert.False(t, cfg.Difficulty.Enabled)
	assert.Equal(t, 3, cfg.Difficulty.StartLevel)

	before := cfg
	ApplyPreset(&cfg, "")
	assert.Equal(t, before, cfg)
}

func TestDifficultyManagerLevel(t *testing.T) {
	cfg := DefaultStackerConfig()
	d := NewDifficultyManager(cfg.Difficulty, cfg.Levels)

	assert.Equal(t, 1, d.Level(0))
	assert.Equal(t, 1, d.Level(9))
	assert.Equal(t, 2, d.Level(10))
	assert.Equal(t, 15, d.Level(1000))

	d.SetStartLevel(14)
	assert.Equal(t, 15, d.Level(10))
	assert.Equal(t, 15, d.Level(500))

	d.SetStartLevel(99)
	assert.Equal(t, 15, d.StartLevel())
	d.SetStartLevel(-2)
	assert.Equal(t, 1, d.StartLevel())

	d.SetEnabled(false)
	assert.False(t, d.IsEnabled())
	assert.Equal(t, 1, d.Level(100))
}

func TestDifficultyManagerGravity(t *testing.T) {
	cfg := DefaultStackerConfig()
	d := NewDifficultyManager(cfg.Difficulty, cfg.Levels)

	assert.Equal(t, engine.TicksPerRow(60), d.Gravity(1))
	assert.Equal(t, engine.TicksPerRow(1), d.Gravity(13))
	assert.Equal(t, engine.RowsPerTick(3), d.Gravity(15))
	assert.Equal(t, engine.RowsPerTick(3), d.Gravity(40))
	assert.Equal(t, engine.TicksPerRow(60), d.Gravity(0))
}
