package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-stacker/internal/audio"
	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/games/stacker"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// openLogger returns a logger writing to the log file, since the terminal
// belongs to the game. The returned closer must be called on exit.
func openLogger() (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "stacker",
		Level:           level,
	})
	stacker.SetLogger(logger)
	return logger, f, nil
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the runs database. Games still work without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("could not open runs database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// attachSound plays effects for game events through the default audio
// device. The returned func stops playback.
func attachSound(game *stacker.Game, configPath string, logger *log.Logger) (func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	spk, err := audio.OpenSpeaker(audio.DefaultSampleRate)
	if err != nil {
		return nil, err
	}
	game.AddObserver(audio.NewEffects(spk, cfg.Audio.Volume))
	logger.Info("sound enabled", "volume", cfg.Audio.Volume)
	return spk.Close, nil
}
