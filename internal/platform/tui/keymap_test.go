package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rollball/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"w", runeKey('w'), core.ActionForward, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionForward, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"mute", runeKey('m'), core.ActionMute, false},
		{"quit", runeKey('q'), core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.expected || quit != tc.quit {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tc.msg.String(), action, quit, tc.expected, tc.quit)
			}
		})
	}
}

func TestHeldInputKeepsMovement(t *testing.T) {
	h := NewHeldInput()
	h.Press(core.ActionForward)

	for i := 0; i < holdTicks; i++ {
		if f := h.Frame(); !f.Has(core.ActionForward) {
			t.Fatalf("tick %d: forward released early", i)
		}
	}
	if f := h.Frame(); f.Has(core.ActionForward) {
		t.Error("forward should release after the hold window")
	}
}

func TestHeldInputRepeatExtendsHold(t *testing.T) {
	h := NewHeldInput()
	h.Press(core.ActionLeft)
	for i := 0; i < 20; i++ {
		if i%3 == 0 {
			h.Press(core.ActionLeft)
		}
		if f := h.Frame(); !f.Has(core.ActionLeft) {
			t.Fatalf("tick %d: held key dropped between repeats", i)
		}
	}
}

func TestHeldInputOneShot(t *testing.T) {
	h := NewHeldInput()
	h.Press(core.ActionMute)
	h.Press(core.ActionJump)

	f := h.Frame()
	if !f.Has(core.ActionMute) || !f.Has(core.ActionJump) {
		t.Fatal("one-shot actions missing from the first frame")
	}
	if f := h.Frame(); f.Has(core.ActionMute) || f.Has(core.ActionJump) {
		t.Error("one-shot actions must fire once")
	}

	h.Press(core.ActionRight)
	h.Release()
	if f := h.Frame(); f.HasMovement() {
		t.Error("Release() should drop held keys")
	}
}

func TestMenuKeys(t *testing.T) {
	km := NewKeyMapper()
	if km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}) != MenuActionScoreboard {
		t.Error("tab should open the scoreboard")
	}
	if km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}) != MenuActionSelect {
		t.Error("enter should select")
	}
}
