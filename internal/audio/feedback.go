// Package audio renders run feedback: impact clicks, background music and the
// completion chime. Feedback is itself a beep.Streamer so it can be played on
// the speaker or pulled directly in tests and headless sessions.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/vovakirdan/rollball/internal/course"
)

// DefaultSampleRate is used for the speaker and all generated sounds.
const DefaultSampleRate = beep.SampleRate(44100)

const impactLength = 120 * time.Millisecond

// Volumes are linear amplitudes in [0, 1].
type Volumes struct {
	MusicPlaying float64 // ready and playing
	MusicEnded   float64
	Chime        float64
	Impact       float64 // multiplied by the contact intensity
}

// DefaultVolumes mirrors the balance of the shipped sound set.
func DefaultVolumes() Volumes {
	return Volumes{
		MusicPlaying: 0.05,
		MusicEnded:   0.2,
		Chime:        0.3,
		Impact:       1,
	}
}

// Feedback mixes every run sound into one stream.
type Feedback struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	volumes Volumes
	mixer   *beep.Mixer
	music   *effects.Volume
	phase   course.Phase
	muted   bool
}

// NewFeedback creates a feedback mixer with the background loop running.
func NewFeedback(rate beep.SampleRate, volumes Volumes) *Feedback {
	f := &Feedback{
		rate:    rate,
		volumes: volumes,
		mixer:   &beep.Mixer{},
		phase:   course.PhaseReady,
	}
	f.music = gain(newMusic(rate), volumes.MusicPlaying)
	f.mixer.Add(f.music)
	return f
}

// gain wraps s with a linear amplitude.
func gain(s beep.Streamer, v float64) *effects.Volume {
	vol := &effects.Volume{Streamer: s, Base: 2}
	setGain(vol, v)
	return vol
}

func setGain(vol *effects.Volume, v float64) {
	if v <= 0 {
		vol.Silent = true
		return
	}
	vol.Silent = false
	vol.Volume = math.Log2(v)
}

// Stream implements beep.Streamer.
func (f *Feedback) Stream(samples [][2]float64) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n, _ := f.mixer.Stream(samples)
	if f.muted {
		for i := range samples[:n] {
			samples[i] = [2]float64{}
		}
	}
	return n, true
}

// Err implements beep.Streamer.
func (f *Feedback) Err() error {
	return nil
}

// Impact plays a click for a contact of the given intensity.
// It reports whether a sound was queued.
func (f *Feedback) Impact(src course.ContactSource, intensity float64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.muted || intensity <= 0 {
		return false
	}
	freq := 180.0
	if src == course.SourceBounds {
		freq = 90
	}
	click := beep.Take(f.rate.N(impactLength), newThud(f.rate, freq))
	f.mixer.Add(gain(click, math.Min(intensity, 1)*f.volumes.Impact))
	return true
}

// SetPhase adjusts the music for the run phase.
// Entering ended plays the completion chime.
func (f *Feedback) SetPhase(p course.Phase) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p == f.phase {
		return
	}
	f.phase = p
	if p == course.PhaseEnded {
		setGain(f.music, f.volumes.MusicEnded)
		if !f.muted {
			f.mixer.Add(gain(newChime(f.rate), f.volumes.Chime))
		}
		return
	}
	setGain(f.music, f.volumes.MusicPlaying)
}

// SetMuted mutes or unmutes all output.
func (f *Feedback) SetMuted(m bool) {
	f.mu.Lock()
	f.muted = m
	f.mu.Unlock()
}

// ToggleMute flips the mute flag and returns the new value.
func (f *Feedback) ToggleMute() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted = !f.muted
	return f.muted
}

// Muted reports the mute flag.
func (f *Feedback) Muted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.muted
}

// MusicVolume returns the current linear music amplitude.
func (f *Feedback) MusicVolume() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.music.Silent {
		return 0
	}
	return math.Pow(f.music.Base, f.music.Volume)
}

// Active returns the number of sounds in the mix, including the music.
func (f *Feedback) Active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mixer.Len()
}

// newMusic is a quiet two-tone pad.
func newMusic(sr beep.SampleRate) beep.Streamer {
	var tones []beep.Streamer
	for _, freq := range []float64{220, 277.18} {
		tone, err := generators.SineTone(sr, freq)
		if err != nil {
			continue
		}
		tones = append(tones, gain(tone, 0.5))
	}
	return beep.Mix(tones...)
}

// newChime is a rising three-note arpeggio.
func newChime(sr beep.SampleRate) beep.Streamer {
	var notes []beep.Streamer
	for _, freq := range []float64{523.25, 659.25, 783.99} {
		tone, err := generators.SineTone(sr, freq)
		if err != nil {
			continue
		}
		notes = append(notes, beep.Take(sr.N(140*time.Millisecond), tone))
	}
	return beep.Seq(notes...)
}
