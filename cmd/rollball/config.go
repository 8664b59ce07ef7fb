package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rollball/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in rollball.yaml and the file that would be loaded.

Save the output to ~/.rollball/configs/rollball.yaml or
./configs/rollball.yaml to customize the course.

Examples:
  rollball config > ~/.rollball/configs/rollball.yaml
  rollball config --check --config ./my-course.yaml`,
	Run: runConfig,
}

var flagCheckConfig bool

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom course config YAML")
	configCmd.Flags().BoolVar(&flagCheckConfig, "check", false, "Validate the active config instead of printing defaults")
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagCheckConfig {
		os.Stdout.Write(config.GetDefaultYAML())
		return
	}

	path := config.Locate(flagConfig)
	if path == "" {
		fmt.Println("Using embedded defaults.")
		return
	}
	cfg, err := config.LoadRollball(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s is valid (%d hazards, marathon x%d)\n", path, cfg.Course.SegmentCount, cfg.Course.MarathonFactor)
}
