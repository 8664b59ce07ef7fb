package config

import (
	_ "embed"
)

//go:embed defaults/rollball.yaml
var defaultRollballYAML []byte

// DefaultRollballConfig returns the default course configuration.
func DefaultRollballConfig() RollballConfig {
	return RollballConfig{
		Course: CourseConfig{
			SegmentCount:   5,
			MarathonFactor: 4,
		},
		Ball: BallConfig{
			Radius:    0.3,
			Mass:      1,
			Bounce:    0.2,
			RollForce: 6,
			JumpSpeed: 4,
			Gravity:   -9.81,
			Damping:   0.4,
		},
		Impact: ImpactConfig{
			Spinner: 500,
			Limbo:   500,
			Axe:     500,
			Bounds:  10000,
		},
		Audio: AudioConfig{
			MusicPlaying: 0.05,
			MusicEnded:   0.2,
			Chime:        0.3,
			Impact:       1,
		},
		Telemetry: TelemetryConfig{
			Topic:    "rollball/runs",
			ClientID: "rollball",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultRollballYAML
}
