// rollball is a terminal roll-the-ball obstacle course.
//
// Usage:
//
//	rollball list              - List course modes
//	rollball play [mode]       - Play a course (default: rollball)
//	rollball menu              - Pick a mode interactively
//	rollball serve             - Start SSH server for remote play
//	rollball scores [mode]     - Show best times
//	rollball config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set the seed of the first course
//	--db <path>     - Set database path (default: ~/.rollball/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/rollball/internal/games/rollball"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rollball",
	Short: "Roll the Ball - a timed obstacle course in your terminal",
	Long: `Roll a ball from the Start tile past spinners, limbo bars and swinging
axes to the End tile as fast as you can. Every restart builds a new course.

Available commands:
  list     - Show course modes
  play     - Play a course directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View best times
  config   - Print the default configuration

Examples:
  rollball play
  rollball play rollball_marathon --difficulty hard
  rollball play --seed 42 --segments 8
  rollball serve --ssh :2222
  rollball scores`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Seed of the first course (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rollball/runs.db", "Path to runs database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
