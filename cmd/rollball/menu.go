package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rollball/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a course mode from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode, Tab for best
times. Leaving a course returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Best times
  Q            - Quit

Examples:
  rollball menu
  rollball menu --fps 30 --sound
  rollball menu --db ./runs.db`,
	Run: runMenu,
}

func init() {
	addCourseFlags(menuCmd.Flags())
}

func runMenu(_ *cobra.Command, _ []string) {
	s := openSession()
	defer s.Close()

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(s.store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(s.store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			break
		}

		if err := s.play(menuResult.GameID, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running course: %v\n", err)
		}

		// A fresh course for every pick
		cfg.Seed = time.Now().UnixNano()
	}
}
