// Package config provides YAML-based configuration loading, difficulty
// presets and live reload for the rollball course.
package config

import (
	"fmt"

	"github.com/vovakirdan/rollball/internal/course"
)

// RollballConfig contains all configuration for a course run.
type RollballConfig struct {
	Course    CourseConfig    `yaml:"course"`
	Ball      BallConfig      `yaml:"ball"`
	Impact    ImpactConfig    `yaml:"impact"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CourseConfig defines the generated level.
type CourseConfig struct {
	SegmentCount   int `yaml:"segment_count"`   // hazard segments between Start and End
	MarathonFactor int `yaml:"marathon_factor"` // segment multiplier for the marathon variant
}

// BallConfig defines the player ball.
type BallConfig struct {
	Radius    float64 `yaml:"radius"`
	Mass      float64 `yaml:"mass"`
	Bounce    float64 `yaml:"bounce"`
	RollForce float64 `yaml:"roll_force"`
	JumpSpeed float64 `yaml:"jump_speed"`
	Gravity   float64 `yaml:"gravity"`
	Damping   float64 `yaml:"damping"`
}

// ImpactConfig holds the contact force that maps to full feedback intensity.
type ImpactConfig struct {
	Spinner float64 `yaml:"spinner"`
	Limbo   float64 `yaml:"limbo"`
	Axe     float64 `yaml:"axe"`
	Bounds  float64 `yaml:"bounds"`
}

// AudioConfig defines linear volumes in [0, 1].
type AudioConfig struct {
	Muted        bool    `yaml:"muted"`
	MusicPlaying float64 `yaml:"music_playing"`
	MusicEnded   float64 `yaml:"music_ended"`
	Chime        float64 `yaml:"chime"`
	Impact       float64 `yaml:"impact"`
}

// TelemetryConfig defines the optional MQTT event sink.
type TelemetryConfig struct {
	Broker   string `yaml:"broker"` // empty disables telemetry
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
}

// Scales returns the impact scales keyed by contact source.
func (c ImpactConfig) Scales() map[course.ContactSource]float64 {
	return map[course.ContactSource]float64{
		course.SourceSpinner: c.Spinner,
		course.SourceLimbo:   c.Limbo,
		course.SourceAxe:     c.Axe,
		course.SourceBounds:  c.Bounds,
	}
}

// Validate reports the first invalid field.
func (c RollballConfig) Validate() error {
	if c.Course.SegmentCount < 0 {
		return fmt.Errorf("config: course.segment_count %d: %w", c.Course.SegmentCount, course.ErrInvalidSegmentCount)
	}
	if c.Course.MarathonFactor < 1 {
		return fmt.Errorf("config: course.marathon_factor must be at least 1, got %d", c.Course.MarathonFactor)
	}
	if c.Ball.Radius <= 0 {
		return fmt.Errorf("config: ball.radius must be positive, got %v", c.Ball.Radius)
	}
	if c.Ball.Damping < 0 || c.Ball.Damping > 1 {
		return fmt.Errorf("config: ball.damping must be in [0, 1], got %v", c.Ball.Damping)
	}
	for name, v := range map[string]float64{
		"impact.spinner": c.Impact.Spinner,
		"impact.limbo":   c.Impact.Limbo,
		"impact.axe":     c.Impact.Axe,
		"impact.bounds":  c.Impact.Bounds,
	} {
		if v < 0 {
			return fmt.Errorf("config: %s must not be negative, got %v", name, v)
		}
	}
	for name, v := range map[string]float64{
		"audio.music_playing": c.Audio.MusicPlaying,
		"audio.music_ended":   c.Audio.MusicEnded,
		"audio.chime":         c.Audio.Chime,
		"audio.impact":        c.Audio.Impact,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("config: %s must be in [0, 1], got %v", name, v)
		}
	}
	return nil
}
