package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/vovakirdan/rollball/internal/audio"
	"github.com/vovakirdan/rollball/internal/config"
	"github.com/vovakirdan/rollball/internal/core"
	"github.com/vovakirdan/rollball/internal/games/rollball"
	"github.com/vovakirdan/rollball/internal/platform/tui"
	"github.com/vovakirdan/rollball/internal/registry"
	"github.com/vovakirdan/rollball/internal/storage"
	"github.com/vovakirdan/rollball/internal/telemetry"
)

// Course flags shared by play and menu.
var (
	flagConfig     string
	flagDifficulty string
	flagSegments   int
	flagMute       bool
	flagSound      bool
	flagMQTT       string
	flagWatch      bool
)

// session owns everything a local play session opens.
type session struct {
	logger    *log.Logger
	logFile   *os.File
	store     *storage.Store
	publisher telemetry.Publisher
	watcher   *config.Watcher
	feedback  *audio.Feedback
	speaker   *audio.Speaker
}

// openSession applies course flags and opens storage, telemetry, the config
// watcher and the speaker. Failures degrade to a quieter session.
func openSession() *session {
	rollball.SetConfigPath(flagConfig)
	rollball.SetDifficultyPreset(flagDifficulty)
	rollball.SetSegmentOverride(flagSegments)
	rollball.SetStartMuted(flagMute)

	s := &session{publisher: telemetry.Nop{}}
	s.openLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
	} else {
		s.store = store
	}

	cfg, err := config.LoadRollball(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		cfg = config.DefaultRollballConfig()
	}

	broker := cfg.Telemetry.Broker
	if flagMQTT != "" {
		broker = flagMQTT
	}
	if broker != "" {
		pub, err := telemetry.Connect(telemetry.Options{
			Broker:   broker,
			Topic:    cfg.Telemetry.Topic,
			ClientID: cfg.Telemetry.ClientID,
		}, s.logger.WithPrefix("telemetry"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: telemetry disabled: %v\n", err)
		} else {
			s.publisher = pub
		}
	}

	if flagWatch {
		if path := config.Locate(flagConfig); path != "" {
			w, err := config.NewWatcher(path, s.logger.WithPrefix("config"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", path, err)
			} else {
				s.watcher = w
			}
		}
	}

	if flagSound {
		f := audio.NewFeedback(audio.DefaultSampleRate, rollball.VolumesFor(cfg))
		sp, err := audio.OpenSpeaker(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			s.feedback = f
			s.speaker = sp
		}
	}

	return s
}

// openLog sends log output to ~/.rollball/rollball.log while the TUI owns
// the terminal.
func (s *session) openLog() {
	var out io.Writer = io.Discard
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".rollball")
		if err := os.MkdirAll(dir, 0o755); err == nil {
			f, err := os.OpenFile(filepath.Join(dir, "rollball.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err == nil {
				s.logFile = f
				out = f
			}
		}
	}
	s.logger = log.NewWithOptions(out, log.Options{ReportTimestamp: true})
}

// options builds the TUI collaborators for one game.
func (s *session) options() tui.Options {
	opts := tui.Options{
		Store:     s.store,
		Publisher: s.publisher,
		Logger:    s.logger,
	}
	if s.watcher != nil {
		opts.Updates = s.watcher.Updates()
	}
	return opts
}

// play runs one game to completion.
func (s *session) play(gameID string, cfg core.RuntimeConfig) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	if g, ok := game.(*rollball.Game); ok && s.feedback != nil {
		g.AttachFeedback(s.feedback)
	}
	return tui.Run(game, cfg, s.options())
}

func (s *session) Close() {
	if s.watcher != nil {
		s.watcher.Close()
	}
	s.speaker.Close()
	s.publisher.Close()
	if s.store != nil {
		s.store.Close()
	}
	if s.logFile != nil {
		s.logFile.Close()
	}
}

// runtimeConfig reads the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func addCourseFlags(fs *pflag.FlagSet) {
	fs.StringVar(&flagConfig, "config", "", "Path to custom course config YAML")
	fs.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	fs.IntVar(&flagSegments, "segments", -1, "Hazard count override (-1 = from config)")
	fs.BoolVar(&flagMute, "mute", false, "Start with audio muted")
	fs.BoolVar(&flagSound, "sound", false, "Play audio feedback on the default output device")
	fs.StringVar(&flagMQTT, "mqtt", "", "MQTT broker for run telemetry (overrides config)")
	fs.BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
}
