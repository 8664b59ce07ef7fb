package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDuration returns the simulated time covered by one tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// RunResult describes a finished run for the leaderboard.
type RunResult struct {
	Duration time.Duration // Finish time
	Seed     int64         // Level seed
	Segments int           // Hazard segment count
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Phase   string        // "ready", "playing" or "ended"
	Elapsed time.Duration // Displayed run time
	Muted   bool          // Whether audio feedback is muted
	Paused  bool          // Whether the game is paused
	Result  *RunResult    // Set once the run has ended
}

// Finished reports whether the run reached the End segment.
func (s GameState) Finished() bool {
	return s.Result != nil
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// EventKind classifies things that happened during one tick.
type EventKind int

const (
	EventStarted EventKind = iota
	EventFinished
	EventRestarted
	EventImpact
)

// String returns the event kind name used in telemetry payloads.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventFinished:
		return "finished"
	case EventRestarted:
		return "restarted"
	case EventImpact:
		return "impact"
	default:
		return "unknown"
	}
}

// Event is emitted by a game step for the platform (telemetry, audio).
type Event struct {
	Kind      EventKind
	Source    string  // Hazard or wall name for impacts
	Intensity float64 // Impact intensity in [0, 1]
}
