package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stacker/internal/registry"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

var (
	flagRecent bool
	flagLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show the leaderboard for a mode",
	Long: `Display the best runs for the specified mode. Marathon runs are
ranked by score, sprint runs by completion time.

Examples:
  stacker scores stacker
  stacker scores stacker_sprint
  stacker scores stacker --recent --limit 20`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "List the most recent runs instead of the best")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'stacker list' to see available modes", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open runs database: %w", err)
	}
	defer store.Close()

	timed := strings.HasSuffix(gameID, "_sprint")
	var runs []storage.Run
	switch {
	case flagRecent:
		runs, err = store.RecentRuns(gameID, flagLimit)
	case timed:
		runs, err = store.FastestRuns(gameID, flagLimit)
	default:
		runs, err = store.TopRuns(gameID, flagLimit)
	}
	if err != nil {
		return err
	}

	heading := "Leaderboard"
	if flagRecent {
		heading = "Recent runs"
	}
	fmt.Printf("%s - %s\n\n", heading, game.Title())

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'stacker play %s' to set the first record!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-9s  %s\n", "Rank", "Score", "Lines", "Level", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-9s  %s\n", "----", "-----", "-----", "-----", "----", "----")
	for i, r := range runs {
		d := r.Duration(flagFPS)
		elapsed := fmt.Sprintf("%d:%05.2f", int(d.Minutes()), d.Seconds()-float64(int(d.Minutes())*60))
		if timed && !r.Won {
			elapsed = "-"
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-5d  %-9s  %s\n",
			i+1, r.Score, r.Lines, r.Level, elapsed, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  |  Games: %d  |  Average: %.0f  |  Lines: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.TotalLines)
	}
	return nil
}
