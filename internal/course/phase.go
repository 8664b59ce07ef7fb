package course

import (
	"math/rand"
	"time"
)

// Phase is the run lifecycle state.
type Phase int

const (
	PhaseReady Phase = iota
	PhasePlaying
	PhaseEnded
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Clock supplies monotonic readings. Only differences between readings matter.
type Clock interface {
	Now() time.Duration
}

// TickClock is a simulation clock advanced explicitly by the tick owner.
type TickClock struct {
	now time.Duration
}

// Now returns the accumulated simulation time.
func (c *TickClock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward by d.
func (c *TickClock) Advance(d time.Duration) {
	c.now += d
}

// WallClock reads the process monotonic clock.
type WallClock struct {
	origin time.Time
}

// NewWallClock creates a wall clock anchored at the current instant.
func NewWallClock() *WallClock {
	return &WallClock{origin: time.Now()}
}

// Now returns the monotonic time since the clock was created.
func (c *WallClock) Now() time.Duration {
	return time.Since(c.origin)
}

// RunPhase owns the phase, the run timestamps and the current RunConfig.
// It is mutated only from the tick owner.
type RunPhase struct {
	clock      Clock
	seeds      *rand.Rand
	phase      Phase
	start      time.Duration
	end        time.Duration
	hasStart   bool
	hasEnd     bool
	config     RunConfig
	pending    int // Segment count applied on the next restart
	generation uint64
}

// NewRunPhase creates a state machine in the ready phase with a freshly
// drawn seed. seeds is the source for every seed the machine draws.
func NewRunPhase(clock Clock, segmentCount int, seeds *rand.Rand) (*RunPhase, error) {
	cfg := RunConfig{SegmentCount: segmentCount}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rp := &RunPhase{
		clock:   clock,
		seeds:   seeds,
		pending: segmentCount,
		config:  cfg,
	}
	rp.config.Seed = rp.seeds.Int63()
	return rp, nil
}

// Phase returns the current phase.
func (rp *RunPhase) Phase() Phase {
	return rp.phase
}

// Config returns the run configuration of the current level.
func (rp *RunPhase) Config() RunConfig {
	return rp.config
}

// Generation increments on every restart. Level-bound state carries the
// generation it was built for.
func (rp *RunPhase) Generation() uint64 {
	return rp.generation
}

// StartTime returns the start reading and whether it is set.
func (rp *RunPhase) StartTime() (time.Duration, bool) {
	return rp.start, rp.hasStart
}

// EndTime returns the end reading and whether it is set.
func (rp *RunPhase) EndTime() (time.Duration, bool) {
	return rp.end, rp.hasEnd
}

// Start moves ready to playing and records the start time.
// Returns false if the machine was not in ready.
func (rp *RunPhase) Start() bool {
	if rp.phase != PhaseReady {
		return false
	}
	rp.phase = PhasePlaying
	rp.start = rp.clock.Now()
	rp.hasStart = true
	return true
}

// Finish moves playing to ended and records the end time.
// Returns false if the machine was not playing.
func (rp *RunPhase) Finish() bool {
	if rp.phase != PhasePlaying {
		return false
	}
	rp.phase = PhaseEnded
	rp.end = rp.clock.Now()
	if rp.end < rp.start {
		rp.end = rp.start
	}
	rp.hasEnd = true
	return true
}

// Restart returns to ready from any phase: a new seed is drawn, both
// timestamps are cleared and the generation advances so the caller
// regenerates the level. Restarting while ready is a plain reset.
func (rp *RunPhase) Restart() {
	rp.phase = PhaseReady
	rp.start, rp.end = 0, 0
	rp.hasStart, rp.hasEnd = false, false
	rp.config = RunConfig{SegmentCount: rp.pending, Seed: rp.seeds.Int63()}
	rp.generation++
}

// SetSegmentCount schedules a new hazard count for the next restart.
func (rp *RunPhase) SetSegmentCount(n int) error {
	if err := (RunConfig{SegmentCount: n}).Validate(); err != nil {
		return err
	}
	rp.pending = n
	return nil
}

// Elapsed is computed, never stored: now-start while playing, end-start
// once ended, zero while ready.
func (rp *RunPhase) Elapsed() time.Duration {
	switch rp.phase {
	case PhasePlaying:
		return rp.clock.Now() - rp.start
	case PhaseEnded:
		return rp.end - rp.start
	default:
		return 0
	}
}

// ElapsedSeconds converts Elapsed for the kinematic driver.
func (rp *RunPhase) ElapsedSeconds() float64 {
	return rp.Elapsed().Seconds()
}
