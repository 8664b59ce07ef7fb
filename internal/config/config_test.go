package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/rollball/internal/course"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(GetDefaultYAML(), "embedded")
	if err != nil {
		t.Fatalf("embedded default should parse: %v", err)
	}
	if cfg != DefaultRollballConfig() {
		t.Errorf("embedded default = %+v\nexpected %+v", cfg, DefaultRollballConfig())
	}
}

func TestLoadCustomPathKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "course:\n  segment_count: 9\n")

	cfg, err := LoadRollball(path)
	if err != nil {
		t.Fatalf("LoadRollball() failed: %v", err)
	}
	if cfg.Course.SegmentCount != 9 {
		t.Errorf("segment_count = %d, expected 9", cfg.Course.SegmentCount)
	}
	if cfg.Ball.Radius != 0.3 || cfg.Impact.Bounds != 10000 {
		t.Errorf("unset keys should keep defaults, got %+v", cfg)
	}
}

func TestLoadRejectsNegativeSegments(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "course:\n  segment_count: -3\n")

	_, err := LoadRollball(path)
	if !errors.Is(err, course.ErrInvalidSegmentCount) {
		t.Errorf("expected ErrInvalidSegmentCount, got %v", err)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := LoadRollball(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RollballConfig)
		ok     bool
	}{
		{"defaults", func(*RollballConfig) {}, true},
		{"empty course", func(c *RollballConfig) { c.Course.SegmentCount = 0 }, true},
		{"zero radius", func(c *RollballConfig) { c.Ball.Radius = 0 }, false},
		{"loud chime", func(c *RollballConfig) { c.Audio.Chime = 1.5 }, false},
		{"negative scale", func(c *RollballConfig) { c.Impact.Axe = -1 }, false},
		{"marathon factor", func(c *RollballConfig) { c.Course.MarathonFactor = 0 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRollballConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); (err == nil) != tc.ok {
				t.Errorf("Validate() = %v, expected ok=%v", err, tc.ok)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		in       string
		preset   DifficultyPreset
		segments int
	}{
		{"easy", DifficultyEasy, 3},
		{"normal", DifficultyNormal, 5},
		{"hard", DifficultyHard, 10},
		{"fixed", DifficultyFixed, 7},
		{"", DifficultyFixed, 7},
	}

	for _, tc := range tests {
		p, err := ParsePreset(tc.in)
		if err != nil {
			t.Fatalf("ParsePreset(%q) failed: %v", tc.in, err)
		}
		if p != tc.preset {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, p, tc.preset)
		}
		cfg := DefaultRollballConfig()
		cfg.Course.SegmentCount = 7
		ApplyRollballPreset(&cfg, p)
		if cfg.Course.SegmentCount != tc.segments {
			t.Errorf("%q segments = %d, expected %d", tc.in, cfg.Course.SegmentCount, tc.segments)
		}
	}

	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestScales(t *testing.T) {
	s := DefaultRollballConfig().Impact.Scales()
	if s[course.SourceSpinner] != 500 || s[course.SourceBounds] != 10000 {
		t.Errorf("scales = %v", s)
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "course:\n  segment_count: 2\n")

	w, err := NewWatcher(path, log.New(os.Stderr))
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	writeConfig(t, dir, "course:\n  segment_count: 8\n")

	select {
	case cfg := <-w.Updates():
		if cfg.Course.SegmentCount != 8 {
			t.Errorf("reloaded segment_count = %d, expected 8", cfg.Course.SegmentCount)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	if _, ok := <-w.Updates(); ok {
		t.Error("Updates should be closed after Close")
	}
}
