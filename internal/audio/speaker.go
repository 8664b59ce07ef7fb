package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/speaker"
)

// Speaker plays a Feedback stream on the default output device.
type Speaker struct {
	initialized bool
}

// OpenSpeaker initializes the device and starts streaming f.
func OpenSpeaker(f *Feedback) (*Speaker, error) {
	if err := speaker.Init(f.rate, f.rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(f)
	return &Speaker{initialized: true}, nil
}

// Close stops playback and releases the device.
func (s *Speaker) Close() {
	if s == nil || !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}
