package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/games/stacker"
	"github.com/vovakirdan/tui-stacker/internal/platform/gui"
	"github.com/vovakirdan/tui-stacker/internal/platform/tui"
	"github.com/vovakirdan/tui-stacker/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
	flagGUI        bool
	flagSound      bool
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Modes:
  stacker         - Marathon: play until you top out
  stacker_sprint  - Sprint: clear the target lines as fast as you can

Controls:
  Left/Right, A/D   - Move
  Up, W, X          - Rotate clockwise
  Z                 - Rotate counter-clockwise
  Down, S           - Soft drop
  Space             - Hard drop
  C                 - Hold
  P/Esc             - Pause
  R                 - Restart (after game over)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Start at level 1, level up every 10 lines
  normal - Start at level 5
  hard   - Start at level 10
  fixed  - No level ups, stays at the config's start level

Without --difficulty or --level, a picker is shown in the terminal.

Examples:
  stacker play stacker
  stacker play stacker --difficulty hard
  stacker play stacker --level 8
  stacker play stacker_sprint --gui --sound
  stacker play stacker --config ./my-stacker.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start level (overrides the preset's)")
	playCmd.Flags().BoolVar(&flagGUI, "gui", false, "Play in a desktop window instead of the terminal")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'stacker list' to see available modes", gameID)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}

	logger, closer, err := openLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	stacker.SetConfigPath(flagConfig)
	stacker.SetDifficultyPreset(flagDifficulty)
	stacker.SetStartLevel(flagLevel)

	created, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	game, ok := created.(*stacker.Game)
	if !ok {
		return fmt.Errorf("mode %q is not a stacker game", gameID)
	}

	cfg := runtimeConfig()

	if flagDifficulty == "" && flagLevel == 0 && !flagGUI {
		levels, err := loadLevels()
		if err != nil {
			return err
		}
		selection, err := tui.RunLevelSelector(game.Title(), levels, cfg)
		if err != nil {
			return err
		}
		if selection == nil {
			return nil
		}
		selection.Apply(game)
	}

	if flagSound {
		stop, err := attachSound(game, flagConfig, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
			logger.Warn("sound disabled", "err", err)
		} else {
			defer stop()
		}
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting game", "mode", gameID, "gui", flagGUI, "seed", cfg.Seed)
	if flagGUI {
		return gui.Run(game, store, cfg, logger)
	}
	return tui.Run(game, store, cfg, tui.WithLogger(logger))
}

// loadLevels returns the level table of the active config.
func loadLevels() (config.LevelsConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.LevelsConfig{}, err
	}
	return cfg.Levels, nil
}
