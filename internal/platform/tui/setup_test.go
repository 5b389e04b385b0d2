package tui

import (
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

func TestSetupMoveWraps(t *testing.T) {
	s := NewSetup(config.Default())
	s.Move(-1)
	if s.Cursor() != rowMetronome {
		t.Errorf("Cursor = %d, expected last row", s.Cursor())
	}
	s.Move(1)
	if s.Cursor() != rowPreset {
		t.Errorf("Cursor = %d, expected first row", s.Cursor())
	}
}

func TestSetupTempo(t *testing.T) {
	s := NewSetup(config.Default())
	s.cursor = rowTempo

	s.Adjust(1)
	if got := s.Config().Session.BPM; got != 65 {
		t.Errorf("BPM = %d, expected 65", got)
	}

	for i := 0; i < 100; i++ {
		s.Adjust(1)
	}
	if got := s.Config().Session.BPM; got != rhythm.MaxBPM {
		t.Errorf("BPM = %d, expected clamp at %d", got, rhythm.MaxBPM)
	}
	for i := 0; i < 100; i++ {
		s.Adjust(-1)
	}
	if got := s.Config().Session.BPM; got != rhythm.MinBPM {
		t.Errorf("BPM = %d, expected clamp at %d", got, rhythm.MinBPM)
	}
}

func TestSetupPreset(t *testing.T) {
	s := NewSetup(config.Default())
	s.Adjust(1) // custom -> easy

	if s.preset != config.PresetEasy {
		t.Fatalf("Preset = %s, expected easy", s.preset)
	}
	cfg := s.Config()
	if cfg.Session.BPM != 60 || cfg.Session.IncludeRests || !slices.Equal(cfg.Session.Figures, []string{"whole", "half", "quarter"}) {
		t.Errorf("Easy preset not applied: %+v", cfg.Session)
	}

	// Editing a preset field turns it into a custom setup
	s.cursor = rowRests
	s.Adjust(1)
	if s.preset != config.PresetCustom || !s.Config().Session.IncludeRests {
		t.Errorf("Preset = %s after editing rests", s.preset)
	}
}

func TestSetupCycles(t *testing.T) {
	s := NewSetup(config.Default())

	s.cursor = rowMeter
	s.Adjust(1)
	if got := s.Config().Session.Meter; got != "6/8" {
		t.Errorf("Meter = %s, expected 6/8", got)
	}
	s.Adjust(1)
	if got := s.Config().Session.Meter; got != "3/4" {
		t.Errorf("Meter = %s, expected wrap to 3/4", got)
	}

	s.cursor = rowMode
	s.Adjust(-1)
	if got := s.Config().Display.Mode; got != string(rhythm.ModeScrolling) {
		t.Errorf("Mode = %s, expected scrolling", got)
	}

	s.cursor = rowGenerator
	s.Adjust(1)
	if got := s.Config().Session.Generator; got != "steady" {
		t.Errorf("Generator = %s, expected steady", got)
	}

	s.cursor = rowMetronome
	s.Adjust(1)
	if s.Config().Audio.Metronome {
		t.Error("Metronome should be toggled off")
	}
}

func TestSetupView(t *testing.T) {
	view := NewSetup(config.Default()).View(80)
	for _, want := range []string{"R H Y T H M", "Tempo", "60 bpm", "Random figures", "Metronome"} {
		if !strings.Contains(view, want) {
			t.Errorf("Setup view missing %q", want)
		}
	}
}

func TestCycle(t *testing.T) {
	tests := []struct {
		i, delta, n, expected int
	}{
		{0, 1, 3, 1},
		{2, 1, 3, 0},
		{0, -1, 3, 2},
		{-1, 1, 3, 0},
	}
	for _, tt := range tests {
		if got := cycle(tt.i, tt.delta, tt.n); got != tt.expected {
			t.Errorf("cycle(%d, %d, %d) = %d, expected %d", tt.i, tt.delta, tt.n, got, tt.expected)
		}
	}
}
