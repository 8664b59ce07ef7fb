package audio

import (
	"math"
	"testing"

	"github.com/vovakirdan/rollball/internal/course"
)

func pull(f *Feedback, n int) [][2]float64 {
	buf := make([][2]float64, n)
	f.Stream(buf)
	return buf
}

func peak(buf [][2]float64) float64 {
	p := 0.0
	for _, s := range buf {
		p = math.Max(p, math.Abs(s[0]))
	}
	return p
}

func TestMusicVolumeFollowsPhase(t *testing.T) {
	f := NewFeedback(DefaultSampleRate, DefaultVolumes())

	tests := []struct {
		phase    course.Phase
		expected float64
	}{
		{course.PhaseReady, 0.05},
		{course.PhasePlaying, 0.05},
		{course.PhaseEnded, 0.2},
		{course.PhaseReady, 0.05},
	}

	for _, tc := range tests {
		f.SetPhase(tc.phase)
		if got := f.MusicVolume(); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("music volume in %s = %v, expected %v", tc.phase, got, tc.expected)
		}
	}
}

func TestEndedPlaysChime(t *testing.T) {
	f := NewFeedback(DefaultSampleRate, DefaultVolumes())
	before := f.Active()

	f.SetPhase(course.PhasePlaying)
	f.SetPhase(course.PhaseEnded)
	if f.Active() != before+1 {
		t.Errorf("active = %d, expected chime to be added to %d", f.Active(), before)
	}

	f.SetPhase(course.PhaseEnded)
	if f.Active() != before+1 {
		t.Error("repeating the ended phase should not replay the chime")
	}
}

func TestImpactQueuesSound(t *testing.T) {
	f := NewFeedback(DefaultSampleRate, DefaultVolumes())
	before := f.Active()

	if f.Impact(course.SourceSpinner, 0) {
		t.Error("zero intensity should not queue a sound")
	}
	if !f.Impact(course.SourceAxe, 0.5) {
		t.Fatal("Impact() should queue a sound")
	}
	if f.Active() != before+1 {
		t.Errorf("active = %d, expected %d", f.Active(), before+1)
	}

	// The click ends after impactLength.
	pull(f, DefaultSampleRate.N(impactLength)+1024)
	if f.Active() != before {
		t.Errorf("click should drain, active = %d", f.Active())
	}
}

func TestMuteSilencesOutput(t *testing.T) {
	f := NewFeedback(DefaultSampleRate, DefaultVolumes())
	f.Impact(course.SourceSpinner, 1)
	if peak(pull(f, 512)) == 0 {
		t.Fatal("unmuted feedback should produce sound")
	}

	if !f.ToggleMute() {
		t.Fatal("ToggleMute() should report muted")
	}
	if f.Impact(course.SourceSpinner, 1) {
		t.Error("muted feedback should not queue impacts")
	}
	if p := peak(pull(f, 512)); p != 0 {
		t.Errorf("muted peak = %v, expected silence", p)
	}

	f.SetMuted(false)
	if f.Muted() {
		t.Error("SetMuted(false) should unmute")
	}
}

func TestThudIsBounded(t *testing.T) {
	g := newThud(DefaultSampleRate, 180)
	buf := make([][2]float64, 2048)
	n, ok := g.Stream(buf)
	if !ok || n != len(buf) {
		t.Fatalf("Stream() = %d, %v", n, ok)
	}
	for i, s := range buf {
		if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
			t.Fatalf("sample %d = %v out of range", i, s)
		}
	}
}
