package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rollball/internal/registry"
	"github.com/vovakirdan/rollball/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best times",
	Long: `Display the 10 fastest finished runs for a course mode.
Without a mode, prints a summary of every mode that has been played.

Examples:
  rollball scores
  rollball scores rollball_marathon
  rollball scores rollball --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all stored runs for the mode")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		printSummary(store)
		return
	}

	gameID := args[0]
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'rollball list' to see available courses.")
		os.Exit(1)
	}

	if flagClearScores {
		if err := store.ClearRuns(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared runs for %s\n", game.Title())
		return
	}

	runs, err := store.BestRuns(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Times - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'rollball play %s' to set the first time!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-9s  %-7s  %-20s  %s\n", "Rank", "Time", "Hazards", "Seed", "Date")
	fmt.Printf("  %-4s  %-9s  %-7s  %-20s  %s\n", "----", "----", "-------", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-9s  %-7d  %-20d  %s\n",
			i+1, fmt.Sprintf("%.2fs", r.Duration.Seconds()), r.Segments, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printSummary(store *storage.Store) {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-20s  %-5s  %-9s  %-9s  %s\n", "Mode", "Runs", "Best", "Average", "Last played")
	for _, g := range registry.List() {
		s, ok := stats[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-20s  %-5d  %-9s  %-9s  %s\n",
			g.ID, s.RunsCount,
			fmt.Sprintf("%.2fs", s.BestTime.Seconds()),
			fmt.Sprintf("%.2fs", s.AvgTime.Seconds()),
			s.LastPlayed.Format("2006-01-02 15:04"))
	}
}
