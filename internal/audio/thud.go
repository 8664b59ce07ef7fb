package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// thud is a decaying sine with a short pitch drop.
type thud struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func newThud(sr beep.SampleRate, freq float64) *thud {
	return &thud{sr: sr, freq: freq}
}

func (g *thud) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 30)
		freq := g.freq * (1 + envelope)
		sample := envelope * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *thud) Err() error {
	return nil
}
