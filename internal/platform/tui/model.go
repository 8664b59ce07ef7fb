package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rollball/internal/config"
	"github.com/vovakirdan/rollball/internal/core"
	"github.com/vovakirdan/rollball/internal/course"
	"github.com/vovakirdan/rollball/internal/registry"
	"github.com/vovakirdan/rollball/internal/storage"
	"github.com/vovakirdan/rollball/internal/telemetry"
)

// Configurable games accept config reloads while running.
type Configurable interface {
	ApplyConfig(cfg config.RollballConfig) error
}

// runInfo exposes the seed and length of the current level.
type runInfo interface {
	RunConfig() course.RunConfig
}

// Options holds the optional collaborators of a play session.
type Options struct {
	Store     *storage.Store
	Publisher telemetry.Publisher
	Updates   <-chan config.RollballConfig // config reloads, may be nil
	Logger    *log.Logger
}

// ConfigMsg carries a reloaded config into the update loop.
type ConfigMsg struct {
	Config config.RollballConfig
	ok     bool
}

// Model is the Bubble Tea model for running a course.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	opts      Options
	config    core.RuntimeConfig
	keys      *KeyMapper
	input     *HeldInput
	gameState core.GameState
	embedded  bool // Back returns to a session menu instead of quitting
	quitting  bool
	back      bool
	runSaved  bool // Whether the current finished run has been stored
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) *Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Publisher == nil {
		opts.Publisher = telemetry.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
	}

	return &Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:   opts,
		config: cfg,
		keys:   NewKeyMapper(),
		input:  NewHeldInput(),
	}
}

// Init resets the game and starts the tick loop.
func (m *Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return tea.Batch(tickCmd(m.config.TickRate), waitForConfig(m.opts.Updates))
}

// waitForConfig blocks on the next reload. A closed channel stops listening.
func waitForConfig(updates <-chan config.RollballConfig) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-updates
		return ConfigMsg{Config: cfg, ok: ok}
	}
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case ConfigMsg:
		if !msg.ok {
			return m, nil
		}
		m.applyConfig(msg.Config)
		return m, waitForConfig(m.opts.Updates)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if action == core.ActionBack && m.embedded {
		m.back = true
		return m, nil
	}
	if isQuit || action == core.ActionBack {
		m.quitting = true
		return m, tea.Quit
	}
	m.input.Press(action)
	return m, nil
}

func (m *Model) applyConfig(cfg config.RollballConfig) {
	c, ok := m.game.(Configurable)
	if !ok {
		return
	}
	if err := c.ApplyConfig(cfg); err != nil {
		m.opts.Logger.Warn("config rejected", "error", err)
		return
	}
	m.opts.Logger.Info("config staged for next restart", "segments", cfg.Course.SegmentCount)
}

// handleTick processes simulation ticks.
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.input.Frame())
	m.gameState = result.State

	for _, e := range result.Events {
		if e.Kind == core.EventRestarted {
			m.runSaved = false
			m.input.Release()
		}
		m.opts.Publisher.Publish(m.telemetryEvent(e))
	}

	// Save the finish time once per run
	if m.gameState.Finished() && !m.runSaved {
		m.saveRun(m.gameState.Result)
		m.runSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) saveRun(r *core.RunResult) {
	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveRun(m.game.ID(), r.Seed, r.Segments, r.Duration); err != nil {
		m.opts.Logger.Error("save run", "game", m.game.ID(), "error", err)
	}
}

func (m *Model) telemetryEvent(e core.Event) telemetry.Event {
	out := telemetry.Event{
		Type:      e.Kind.String(),
		Game:      m.game.ID(),
		ElapsedMS: m.gameState.Elapsed.Milliseconds(),
		Source:    e.Source,
		Intensity: e.Intensity,
		At:        time.Now(),
	}
	if info, ok := m.game.(runInfo); ok {
		rc := info.RunConfig()
		out.Seed = rc.Seed
		out.Segments = rc.SegmentCount
	}
	return out
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".rollball", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m *Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m *Model) BackToMenu() bool {
	return m.back
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
