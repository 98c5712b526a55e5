// stacker is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	stacker list              - List available modes
//	stacker play <mode>       - Play a mode
//	stacker menu              - Start menu to pick modes interactively
//	stacker serve             - Start SSH server for remote play
//	stacker scores <mode>     - Show the leaderboard for a mode
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.stacker/scores.db)
//	--log-level <level> - Set log level (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-stacker/internal/games/stacker"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stacker",
	Short: "Stacker - a falling-block puzzle game for your terminal",
	Long: `Stacker is a falling-block puzzle game with SRS rotation, hold,
a five-piece preview and a 7-bag randomizer.

Available commands:
  list     - Show all available modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View the leaderboard

Examples:
  stacker list
  stacker play stacker
  stacker play stacker_sprint --gui
  stacker menu
  stacker serve --ssh :2222
  stacker scores stacker_sprint`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.stacker/scores.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.stacker/stacker.log", "Log file used while a game is on screen")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
