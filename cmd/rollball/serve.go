package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rollball/internal/platform/tui"
	"github.com/vovakirdan/rollball/internal/telemetry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeMQTT   string
	flagServeTopic  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the rollball SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a mode picker menu.
Runs are stored per-server (all users share the same leaderboard).
Remote sessions are silent.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.rollball/host_key

Examples:
  rollball serve                           # Listen on :23234 with auto-generated key
  rollball serve --ssh :2222               # Listen on port 2222
  rollball serve --host-key ./my_host_key  # Use specific host key
  rollball serve --db ./runs.db            # Use specific database
  rollball serve --mqtt tcp://broker:1883  # Publish run events

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeMQTT, "mqtt", "", "MQTT broker for run telemetry")
	serveCmd.Flags().StringVar(&flagServeTopic, "mqtt-topic", "rollball/runs", "MQTT topic for run telemetry")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	if flagServeMQTT != "" {
		logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "telemetry"})
		pub, err := telemetry.Connect(telemetry.Options{
			Broker:   flagServeMQTT,
			Topic:    flagServeTopic,
			ClientID: "rollball-ssh",
		}, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: telemetry disabled: %v\n", err)
		} else {
			cfg.Publisher = pub
		}
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting rollball SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
