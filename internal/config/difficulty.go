package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // keep the configured segment count
)

// ParsePreset converts a flag value to a preset. An empty string is fixed.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyFixed, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal, hard or fixed)", s)
	}
}

// SegmentsForPreset returns the hazard count for a preset, or configured for fixed.
func SegmentsForPreset(preset DifficultyPreset, configured int) int {
	switch preset {
	case DifficultyEasy:
		return 3
	case DifficultyNormal:
		return 5
	case DifficultyHard:
		return 10
	default:
		return configured
	}
}

// IsFixedPreset returns true if the preset keeps the configured course length.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed || preset == ""
}

// ApplyRollballPreset modifies the config based on a difficulty preset.
func ApplyRollballPreset(cfg *RollballConfig, preset DifficultyPreset) {
	cfg.Course.SegmentCount = SegmentsForPreset(preset, cfg.Course.SegmentCount)

	// Harder courses also hit harder.
	switch preset {
	case DifficultyEasy:
		cfg.Ball.RollForce = 5
	case DifficultyHard:
		cfg.Ball.RollForce = 7.5
		cfg.Ball.Damping = 0.5
	}
}
