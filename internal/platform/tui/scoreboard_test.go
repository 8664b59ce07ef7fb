package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestScoreboardListsFastestFirst(t *testing.T) {
	m := newScoreboardModel(testCourses, storeWithRuns(t), 80, 30)

	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "12.34s" || rows[1][1] != "14.00s" {
		t.Errorf("times = %s, %s; expected fastest first", rows[0][1], rows[1][1])
	}
	if rows[0][0] != "1" || rows[0][2] != "5" {
		t.Errorf("first row = %v", rows[0])
	}

	panel := m.statsPanel()
	for _, want := range []string{"runs 2", "best 12.34s", "average 13.17s"} {
		if !strings.Contains(panel, want) {
			t.Errorf("stats panel %q is missing %q", panel, want)
		}
	}
}

func TestScoreboardSwitchesCourse(t *testing.T) {
	m := newScoreboardModel(testCourses, storeWithRuns(t), 80, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.current != 1 || len(m.runs) != 0 || m.stats != nil {
		t.Errorf("after tab: current=%d runs=%d stats=%v", m.current, len(m.runs), m.stats)
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty course should show the placeholder")
	}

	// Wraps around in both directions.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := next.(ScoreboardModel).current; got != 0 {
		t.Errorf("tab from last course = %d, expected 0", got)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := next.(ScoreboardModel).current; got != 0 {
		t.Errorf("shift+tab from course 1 = %d, expected 0", got)
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := newScoreboardModel(testCourses, nil, 80, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if sb := next.(ScoreboardModel); !sb.IsGoingBack() || sb.IsQuitting() {
		t.Error("esc should go back to the menu")
	}
	next, _ = m.Update(runeKey('q'))
	if sb := next.(ScoreboardModel); !sb.IsQuitting() || sb.IsGoingBack() {
		t.Error("q should quit")
	}
}
