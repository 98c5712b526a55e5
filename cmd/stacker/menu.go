package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stacker/internal/games/stacker"
	"github.com/vovakirdan/tui-stacker/internal/platform/tui"
	"github.com/vovakirdan/tui-stacker/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start stacker with a mode picker menu",
	Long: `Start stacker in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode, then pick a
difficulty or start level. After a game ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Leaderboard
  Esc          - Back
  Q            - Quit

Examples:
  stacker menu
  stacker menu --fps 30
  stacker menu --db ./scores.db --sound`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closer, err := openLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	stacker.SetConfigPath(flagConfig)
	levels, err := loadLevels()
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, cfg.TickRate)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		created, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		selection, err := tui.RunLevelSelector(created.Title(), levels, cfg)
		if err != nil {
			return err
		}
		if selection == nil {
			continue
		}
		selection.Apply(created)

		stop := func() {}
		if game, ok := created.(*stacker.Game); ok && flagSound {
			if s, err := attachSound(game, flagConfig, logger); err != nil {
				logger.Warn("sound disabled", "err", err)
			} else {
				stop = s
			}
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		logger.Info("starting game", "mode", menuResult.GameID, "preset", selection.Preset, "level", selection.Level)
		err = tui.Run(created, store, cfg, tui.WithLogger(logger))
		stop()
		if err != nil {
			return err
		}
	}
}
