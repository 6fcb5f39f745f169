package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagCSV   bool
	flagClear bool
	flagPlain bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded rounds",
	Long: `Display recorded rounds and the high score.

In a terminal this opens an interactive scoreboard; otherwise, or with
--plain, it prints the top rounds as a table.

Examples:
  flappy scores
  flappy scores --plain --limit 20
  flappy scores --csv > rounds.csv
  flappy scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagCSV, "csv", false, "Export every round as CSV to stdout")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every round and reset the high score")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a table instead of the interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Rows to print in plain mode")
}

func runScores(cmd *cobra.Command, _ []string) {
	game := loadGameConfig(cmd)

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	runErr := scoresAction(store, game.Storage.HighScoreKey)
	store.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

func scoresAction(store *storage.Store, highScoreKey string) error {
	switch {
	case flagClear:
		if err := store.ClearScores(flappy.ID, highScoreKey); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil

	case flagCSV:
		entries, err := store.AllScores(flappy.ID)
		if err != nil {
			return err
		}
		return storage.ExportCSV(os.Stdout, entries)

	case !flagPlain && term.IsTerminal(int(os.Stdout.Fd())):
		width, height, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			width, height = 80, 24
		}
		return tui.RunScoreboard(store, width, height)
	}

	return printScores(store)
}

func printScores(store *storage.Store) error {
	scores, err := store.TopScores(flappy.ID, flagLimit)
	if err != nil {
		return err
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", flappy.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Score", "Time", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "-----", "----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-8s  %s\n", i+1, entry.Score, tui.FormatTicks(entry.Ticks), dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(flappy.ID); err == nil {
		fmt.Printf("Best: %d  Rounds: %d  Mean: %.1f  Median: %.0f\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.Median)
	}
	return nil
}
