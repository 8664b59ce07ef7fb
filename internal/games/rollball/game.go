// Package rollball implements the roll-the-ball obstacle course.
// The player rolls a ball from the Start tile past moving hazards to the End
// tile while a timer runs. Restart builds a new course from a fresh seed.
package rollball

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/rollball/internal/audio"
	"github.com/vovakirdan/rollball/internal/config"
	"github.com/vovakirdan/rollball/internal/core"
	"github.com/vovakirdan/rollball/internal/course"
	"github.com/vovakirdan/rollball/internal/physics"
	"github.com/vovakirdan/rollball/internal/registry"
)

// Mode selects the course length.
type Mode int

const (
	ModeStandard Mode = iota
	ModeMarathon      // segment_count * marathon_factor hazards
)

// Package-level settings applied by the CLI before games are created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	segmentOverride  = -1
	startMuted       bool
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
// Unknown names fall back to the config's own segment count.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyFixed
	}
	difficultyPreset = p
}

// SetSegmentOverride forces the hazard count. A negative value clears it.
func SetSegmentOverride(n int) {
	segmentOverride = n
}

// SetStartMuted starts new games with audio muted.
func SetStartMuted(m bool) {
	startMuted = m
}

// Game implements the obstacle course on top of the course core, a physics
// world and optional audio feedback. All state is owned by Step.
type Game struct {
	mode    Mode
	runtime core.RuntimeConfig
	cfg     config.RollballConfig
	pending *config.RollballConfig // applied on the next restart

	clock    *course.TickClock
	phase    *course.RunPhase
	cosmetic *rand.Rand

	level  course.Level
	driver *course.Driver
	world  *physics.World
	relay  *course.Relay

	feedback *audio.Feedback
	muted    bool
	paused   bool
	result   *core.RunResult
	events   []core.Event
	ticks    int
}

// New creates a standard course.
func New() *Game {
	return &Game{mode: ModeStandard}
}

// NewMarathon creates a course with many more hazards.
func NewMarathon() *Game {
	return &Game{mode: ModeMarathon}
}

func init() {
	registry.Register("rollball", func() registry.Game {
		return New()
	})
	registry.Register("rollball_marathon", func() registry.Game {
		return NewMarathon()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeMarathon {
		return "rollball_marathon"
	}
	return "rollball"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeMarathon {
		return "Roll the Ball (Marathon)"
	}
	return "Roll the Ball"
}

// AttachFeedback routes impacts and phase changes to f.
// Without feedback the game is silent.
func (g *Game) AttachFeedback(f *audio.Feedback) {
	g.feedback = f
	if f != nil {
		f.SetMuted(g.muted)
		if g.phase != nil {
			f.SetPhase(g.phase.Phase())
		}
	}
}

// ApplyConfig stages cfg for the next restart. The segment count change is
// handed to the run phase so the next level uses it.
func (g *Game) ApplyConfig(cfg config.RollballConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !config.IsFixedPreset(difficultyPreset) {
		config.ApplyRollballPreset(&cfg, difficultyPreset)
	}
	g.pending = &cfg
	if g.phase != nil {
		return g.phase.SetSegmentCount(g.segmentsFor(cfg))
	}
	return nil
}

// Reset initializes the game with a deterministic seed sequence.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	cfg, err := config.LoadRollball(configPath)
	if err != nil {
		cfg = config.DefaultRollballConfig()
	}
	if !config.IsFixedPreset(difficultyPreset) {
		config.ApplyRollballPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.pending = nil

	g.clock = &course.TickClock{}
	g.cosmetic = rand.New(rand.NewSource(runtime.Seed ^ 0x5eed))
	phase, err := course.NewRunPhase(g.clock, g.segmentsFor(cfg), rand.New(rand.NewSource(runtime.Seed)))
	if err != nil {
		// Validated configs never get here, so the override must be bad.
		panic(fmt.Sprintf("rollball: %v", err))
	}
	g.phase = phase
	g.muted = startMuted || cfg.Audio.Muted
	g.paused = false
	g.result = nil
	g.ticks = 0
	g.rebuild()

	if g.feedback != nil {
		g.feedback.SetMuted(g.muted)
		g.feedback.SetPhase(course.PhaseReady)
	}
}

func (g *Game) segmentsFor(cfg config.RollballConfig) int {
	n := cfg.Course.SegmentCount
	if segmentOverride >= 0 {
		n = segmentOverride
	}
	if g.mode == ModeMarathon {
		n *= cfg.Course.MarathonFactor
	}
	return n
}

// rebuild replaces level, driver and physics world for the current phase
// generation. They are never observed separately.
func (g *Game) rebuild() {
	level, err := course.Generate(g.phase.Config())
	if err != nil {
		panic(fmt.Sprintf("rollball: %v", err))
	}
	driver := course.NewDriver(level, g.phase.Generation(), g.cosmetic)
	world := physics.NewWorld(level, physicsConfig(g.cfg))
	for i, inst := range driver.Instances() {
		driver.Bind(i, world.AddHazard(inst))
	}

	g.level = level
	g.driver = driver
	g.world = world
	g.relay = course.NewRelay(g.cfg.Impact.Scales())

	// Place every hazard at its rest pose before the first frame.
	g.tickDriver()
}

func physicsConfig(cfg config.RollballConfig) physics.Config {
	pc := physics.DefaultConfig()
	pc.BallRadius = cfg.Ball.Radius
	pc.BallMass = cfg.Ball.Mass
	pc.BallBounce = cfg.Ball.Bounce
	pc.RollForce = cfg.Ball.RollForce
	pc.JumpSpeed = cfg.Ball.JumpSpeed
	pc.Gravity = cfg.Ball.Gravity
	pc.Damping = cfg.Ball.Damping
	return pc
}

// VolumesFor converts the audio section of cfg.
func VolumesFor(cfg config.RollballConfig) audio.Volumes {
	return audio.Volumes{
		MusicPlaying: cfg.Audio.MusicPlaying,
		MusicEnded:   cfg.Audio.MusicEnded,
		Chime:        cfg.Audio.Chime,
		Impact:       cfg.Audio.Impact,
	}
}

// tickDriver commands every hazard for the current elapsed time.
// A driver failure means level-bound state is out of sync, which is a bug.
func (g *Game) tickDriver() {
	if err := g.driver.Tick(g.phase.Generation(), g.phase.ElapsedSeconds()); err != nil {
		panic(fmt.Sprintf("rollball: %v", err))
	}
}

// Step advances the game by one tick.
// Order: input, phase, hazards, physics, contacts, audio.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	if in.Has(core.ActionMute) {
		g.muted = !g.muted
		if g.feedback != nil {
			g.feedback.SetMuted(g.muted)
		}
	}

	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State(), Events: g.events}
	}

	if in.Has(core.ActionPause) && g.phase.Phase() == course.PhasePlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.ticks++
	g.clock.Advance(g.runtime.TickDuration())
	dt := g.runtime.TickDuration().Seconds()

	// Phase: the first movement starts the timer.
	if g.phase.Phase() == course.PhaseReady && in.HasMovement() {
		g.phase.Start()
		g.emit(core.Event{Kind: core.EventStarted})
	}
	if g.phase.Phase() == course.PhasePlaying {
		g.applyControls(in, dt)
	}

	g.tickDriver()
	g.world.Step(dt)

	if g.world.OffCourse() {
		g.world.ResetBall()
	}
	if g.world.ReachedFinish() && g.phase.Finish() {
		cfg := g.phase.Config()
		g.result = &core.RunResult{
			Duration: g.phase.Elapsed(),
			Seed:     cfg.Seed,
			Segments: cfg.SegmentCount,
		}
		g.emit(core.Event{Kind: core.EventFinished})
	}

	for _, c := range g.world.Drain() {
		intensity := g.relay.Intensity(c.Source, c.Force)
		if intensity <= 0 {
			continue
		}
		g.emit(core.Event{Kind: core.EventImpact, Source: c.Source.String(), Intensity: intensity})
		if g.feedback != nil {
			g.feedback.Impact(c.Source, intensity)
		}
	}

	if g.feedback != nil {
		g.feedback.SetPhase(g.phase.Phase())
	}

	return core.StepResult{State: g.State(), Events: g.events}
}

func (g *Game) applyControls(in core.InputFrame, dt float64) {
	var dx, dz float64
	if in.Has(core.ActionForward) {
		dz--
	}
	if in.Has(core.ActionBackward) {
		dz++
	}
	if in.Has(core.ActionLeft) {
		dx--
	}
	if in.Has(core.ActionRight) {
		dx++
	}
	g.world.Push(dx, dz, dt)
	if in.Has(core.ActionJump) {
		g.world.Jump()
	}
}

// restart draws a new seed and rebuilds the course. Staged config applies here.
func (g *Game) restart() {
	if g.pending != nil {
		g.cfg = *g.pending
		g.pending = nil
	}
	g.phase.Restart()
	g.paused = false
	g.result = nil
	g.rebuild()
	g.emit(core.Event{Kind: core.EventRestarted})
	if g.feedback != nil {
		g.feedback.SetPhase(course.PhaseReady)
	}
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

// Level returns the current course.
func (g *Game) Level() course.Level {
	return g.level
}

// RunConfig returns the configuration of the current level.
func (g *Game) RunConfig() course.RunConfig {
	return g.phase.Config()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:   g.phase.Phase().String(),
		Elapsed: g.phase.Elapsed(),
		Muted:   g.muted,
		Paused:  g.paused,
		Result:  g.result,
	}
}
