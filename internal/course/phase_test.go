package course

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func newTestPhase(t *testing.T) (*RunPhase, *TickClock) {
	t.Helper()
	clock := &TickClock{}
	rp, err := NewRunPhase(clock, 5, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewRunPhase() failed: %v", err)
	}
	return rp, clock
}

func TestPhaseLifecycle(t *testing.T) {
	rp, clock := newTestPhase(t)

	if rp.Phase() != PhaseReady {
		t.Fatalf("initial phase = %s, expected ready", rp.Phase())
	}
	if rp.Elapsed() != 0 {
		t.Errorf("ready elapsed = %v, expected 0", rp.Elapsed())
	}

	clock.Advance(time.Second)
	if !rp.Start() {
		t.Fatal("Start() from ready should succeed")
	}
	if rp.Start() {
		t.Error("second Start() should be a no-op")
	}

	clock.Advance(1500 * time.Millisecond)
	if got := rp.Elapsed(); got != 1500*time.Millisecond {
		t.Errorf("playing elapsed = %v, expected 1.5s", got)
	}

	if !rp.Finish() {
		t.Fatal("Finish() from playing should succeed")
	}
	start, _ := rp.StartTime()
	end, ok := rp.EndTime()
	if !ok || end < start {
		t.Errorf("end %v should be set and >= start %v", end, start)
	}

	frozen := rp.Elapsed()
	for i := 0; i < 10; i++ {
		clock.Advance(100 * time.Millisecond)
		if rp.Elapsed() != frozen {
			t.Fatalf("ended elapsed changed: %v -> %v", frozen, rp.Elapsed())
		}
	}
}

func TestFinishRequiresPlaying(t *testing.T) {
	rp, _ := newTestPhase(t)
	if rp.Finish() {
		t.Error("Finish() from ready should be a no-op")
	}
	if rp.Phase() != PhaseReady {
		t.Errorf("phase = %s, expected ready", rp.Phase())
	}
}

func TestRestartWhileReady(t *testing.T) {
	rp, _ := newTestPhase(t)
	gen := rp.Generation()

	rp.Restart()
	rp.Restart()

	if rp.Phase() != PhaseReady {
		t.Errorf("phase = %s, expected ready", rp.Phase())
	}
	if _, ok := rp.StartTime(); ok {
		t.Error("start time should be unset")
	}
	if rp.Generation() != gen+2 {
		t.Errorf("generation = %d, expected %d", rp.Generation(), gen+2)
	}
}

func TestRestartDrawsNewSeed(t *testing.T) {
	rp, clock := newTestPhase(t)
	first := rp.Config().Seed

	rp.Start()
	clock.Advance(time.Second)
	rp.Finish()
	rp.Restart()

	if rp.Config().Seed == first {
		t.Error("restart should draw a new seed")
	}
	if rp.Phase() != PhaseReady {
		t.Errorf("phase = %s, expected ready", rp.Phase())
	}
	if _, ok := rp.EndTime(); ok {
		t.Error("end time should be cleared")
	}
	if rp.Elapsed() != 0 {
		t.Errorf("elapsed after restart = %v", rp.Elapsed())
	}
}

func TestSeedSequenceIsReproducible(t *testing.T) {
	a, _ := NewRunPhase(&TickClock{}, 3, rand.New(rand.NewSource(99)))
	b, _ := NewRunPhase(&TickClock{}, 3, rand.New(rand.NewSource(99)))

	for i := 0; i < 5; i++ {
		if a.Config() != b.Config() {
			t.Fatalf("configs diverged at restart %d: %+v vs %+v", i, a.Config(), b.Config())
		}
		a.Restart()
		b.Restart()
	}
}

func TestSegmentCountAppliesOnRestart(t *testing.T) {
	rp, _ := newTestPhase(t)

	if err := rp.SetSegmentCount(-2); !errors.Is(err, ErrInvalidSegmentCount) {
		t.Errorf("expected ErrInvalidSegmentCount, got %v", err)
	}
	if err := rp.SetSegmentCount(9); err != nil {
		t.Fatalf("SetSegmentCount() failed: %v", err)
	}
	if rp.Config().SegmentCount != 5 {
		t.Errorf("count changed before restart: %d", rp.Config().SegmentCount)
	}
	rp.Restart()
	if rp.Config().SegmentCount != 9 {
		t.Errorf("count = %d, expected 9", rp.Config().SegmentCount)
	}
}

func TestNewRunPhaseRejectsNegativeCount(t *testing.T) {
	_, err := NewRunPhase(&TickClock{}, -1, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrInvalidSegmentCount) {
		t.Errorf("expected ErrInvalidSegmentCount, got %v", err)
	}
}
