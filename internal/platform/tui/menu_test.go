package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rollball/internal/core"
	"github.com/vovakirdan/rollball/internal/registry"
	"github.com/vovakirdan/rollball/internal/storage"
)

var testCourses = []registry.GameInfo{
	{ID: "rollball", Title: "Roll the Ball"},
	{ID: "rollball_marathon", Title: "Marathon"},
}

func storeWithRuns(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	for i, d := range []time.Duration{14 * time.Second, 12340 * time.Millisecond} {
		if _, err := store.SaveRun("rollball", int64(i), 5, d); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	return store
}

func TestMenuShowsBestTimes(t *testing.T) {
	m := newMenuModel(testCourses, storeWithRuns(t), core.DefaultConfig())

	if m.items[0].Best != "12.34s" || m.items[0].Runs != 2 {
		t.Errorf("rollball item = %+v, expected best 12.34s over 2 runs", m.items[0])
	}
	if m.items[1].Best != "" || m.items[1].Runs != 0 {
		t.Errorf("marathon item = %+v, expected no runs", m.items[1])
	}

	view := m.View()
	if !strings.Contains(view, "12.34s") {
		t.Error("view is missing the best time")
	}
	if !strings.Contains(view, "2 finished runs") {
		t.Error("view is missing the run count of the highlighted course")
	}
}

func TestMenuSelection(t *testing.T) {
	m := newMenuModel(testCourses, nil, core.DefaultConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, expected it to stop on the last item", m.cursor)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if cmd == nil {
		t.Error("selecting a course should quit the menu program")
	}
	if res := m.result(); res.GameID != "rollball_marathon" || res.Quit {
		t.Errorf("result = %+v", res)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := newMenuModel(testCourses, nil, core.DefaultConfig())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if res := next.(MenuModel).result(); !res.WantsScoreboard || res.Quit {
		t.Errorf("tab result = %+v", res)
	}

	next, _ = m.Update(runeKey('q'))
	if res := next.(MenuModel).result(); !res.Quit || res.GameID != "" {
		t.Errorf("quit result = %+v", res)
	}
}

func TestMenuTracksWindowSize(t *testing.T) {
	m := newMenuModel(testCourses, nil, core.DefaultConfig())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	cfg := next.(MenuModel).Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("config size = %dx%d, expected 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}
