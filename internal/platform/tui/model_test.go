package tui

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/rollball/internal/config"
	"github.com/vovakirdan/rollball/internal/core"
	"github.com/vovakirdan/rollball/internal/storage"
	"github.com/vovakirdan/rollball/internal/telemetry"
)

// finishingGame ends the run on its third tick.
type finishingGame struct {
	ticks   int
	applied []config.RollballConfig
	frames  []core.InputFrame
}

func (g *finishingGame) ID() string               { return "fake" }
func (g *finishingGame) Title() string            { return "Fake" }
func (g *finishingGame) Reset(core.RuntimeConfig) { g.ticks = 0 }
func (g *finishingGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "fake") }

func (g *finishingGame) ApplyConfig(cfg config.RollballConfig) error {
	g.applied = append(g.applied, cfg)
	return cfg.Validate()
}

func (g *finishingGame) Step(in core.InputFrame) core.StepResult {
	g.ticks++
	g.frames = append(g.frames, in)
	res := core.StepResult{State: g.State()}
	if g.ticks == 3 {
		res.Events = []core.Event{{Kind: core.EventFinished}}
	}
	return res
}

func (g *finishingGame) State() core.GameState {
	st := core.GameState{Phase: "playing", Elapsed: time.Duration(g.ticks) * time.Second}
	if g.ticks >= 3 {
		st.Phase = "ended"
		st.Elapsed = 3 * time.Second
		st.Result = &core.RunResult{Duration: 3 * time.Second, Seed: 9, Segments: 4}
	}
	return st
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []telemetry.Event
}

func (p *recordingPublisher) Publish(e telemetry.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) Close() {}

func TestModelSavesFinishedRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	pub := &recordingPublisher{}
	game := &finishingGame{}
	m := NewModel(game, core.DefaultConfig(), Options{Store: store, Publisher: pub})
	m.Init()

	for i := 0; i < 10; i++ {
		m.Update(TickMsg(time.Now()))
	}

	runs, err := store.BestRuns("fake", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(runs))
	}
	if runs[0].Duration != 3*time.Second || runs[0].Seed != 9 || runs[0].Segments != 4 {
		t.Errorf("saved run = %+v", runs[0])
	}

	if len(pub.events) != 1 || pub.events[0].Type != "finished" || pub.events[0].Game != "fake" {
		t.Errorf("published events = %+v", pub.events)
	}
	if pub.events[0].ElapsedMS != 3000 {
		t.Errorf("elapsed_ms = %d, expected 3000", pub.events[0].ElapsedMS)
	}
}

func TestModelHoldsMovementKeys(t *testing.T) {
	game := &finishingGame{}
	m := NewModel(game, core.DefaultConfig(), Options{})
	m.Init()

	m.Update(runeKey('w'))
	m.Update(TickMsg(time.Now()))
	m.Update(TickMsg(time.Now()))

	for i, f := range game.frames {
		if !f.Has(core.ActionForward) {
			t.Errorf("frame %d lost the held forward key", i)
		}
	}
}

func TestModelAppliesConfigUpdates(t *testing.T) {
	game := &finishingGame{}
	updates := make(chan config.RollballConfig, 1)
	m := NewModel(game, core.DefaultConfig(), Options{Updates: updates})

	cfg := config.DefaultRollballConfig()
	cfg.Course.SegmentCount = 8
	updates <- cfg

	msg := waitForConfig(updates)()
	_, cmd := m.Update(msg)
	if len(game.applied) != 1 || game.applied[0].Course.SegmentCount != 8 {
		t.Errorf("applied = %+v", game.applied)
	}
	if cmd == nil {
		t.Error("model should keep listening for reloads")
	}

	close(updates)
	if _, cmd := m.Update(waitForConfig(updates)()); cmd != nil {
		t.Error("closed updates channel should stop listening")
	}
}
