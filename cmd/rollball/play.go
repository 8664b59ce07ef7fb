package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rollball/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a course",
	Long: `Start a timed run on a freshly generated course.

The timer starts with your first move and stops when the ball touches the
End tile. Restarting builds a new course from a new seed.

Controls:
  W/A/S/D, Arrows  - Roll
  Space            - Jump
  P                - Pause
  R                - Restart with a new course
  M                - Mute
  Q/Esc/Ctrl+C     - Quit

Difficulty options:
  easy   - 3 hazards, softer rolling
  normal - 5 hazards
  hard   - 10 hazards, stronger rolling with more drag
  fixed  - Use the config's segment_count

Examples:
  rollball play
  rollball play rollball_marathon
  rollball play --difficulty hard --sound
  rollball play --segments 0 --seed 7
  rollball play --config ./my-course.yaml --watch
  rollball play --mqtt tcp://localhost:1883`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addCourseFlags(playCmd.Flags())
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "rollball"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown course %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'rollball list' to see available courses.")
		os.Exit(1)
	}

	s := openSession()
	runErr := s.play(gameID, runtimeConfig())

	// Close before potential exit
	s.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running course: %v\n", runErr)
		os.Exit(1)
	}
}
