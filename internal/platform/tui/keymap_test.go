package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rhythm/internal/core"
)

func TestPlayKeyMapAction(t *testing.T) {
	keys := DefaultPlayKeyMap()

	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
	}{
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionStrike},
		{runeKey('j'), core.ActionStrike},
		{runeKey('f'), core.ActionStrike},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionStop},
		{runeKey('s'), core.ActionStop},
		{runeKey('r'), core.ActionRestart},
		{runeKey('?'), core.ActionHelp},
		{runeKey('q'), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runeKey('k'), core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runeKey('l'), core.ActionRight},
		{runeKey('x'), core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.expected {
			t.Errorf("Action(%q) = %s, expected %s", tt.msg.String(), got, tt.expected)
		}
	}
}

func TestIsStrikeClick(t *testing.T) {
	tests := []struct {
		msg      tea.MouseMsg
		expected bool
	}{
		{tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, true},
		{tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, false},
		{tea.MouseMsg{Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}, false},
		{tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}, false},
	}
	for _, tt := range tests {
		if got := isStrikeClick(tt.msg); got != tt.expected {
			t.Errorf("isStrikeClick(%v) = %v, expected %v", tt.msg, got, tt.expected)
		}
	}
}

func TestNextInterval(t *testing.T) {
	frame := time.Second / 60

	if got := nextInterval(frame, 0); got != frame {
		t.Errorf("No hint: got %v, expected %v", got, frame)
	}
	if got := nextInterval(frame, 5*time.Millisecond); got != 5*time.Millisecond {
		t.Errorf("Short hint: got %v", got)
	}
	if got := nextInterval(frame, time.Second); got != frame {
		t.Errorf("Long hint: got %v, expected frame interval", got)
	}
}

func TestAltScreen(t *testing.T) {
	a := &altScreen{}
	if a.drain() != nil {
		t.Error("Empty queue should drain to nil")
	}

	a.LockLandscape()
	a.LockLandscape()
	if !a.active || len(a.pending) != 1 {
		t.Errorf("Double lock should queue once, pending = %d", len(a.pending))
	}
	if a.drain() == nil || len(a.pending) != 0 {
		t.Error("Drain should return and clear queued commands")
	}

	if err := a.LockPortrait(); err != nil || len(a.pending) != 0 {
		t.Error("Portrait lock should be a no-op")
	}

	a.Unlock()
	a.Unlock()
	if a.active || len(a.pending) != 1 {
		t.Errorf("Double unlock should queue once, pending = %d", len(a.pending))
	}
}
