package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

func scrollingSnapshot() rhythm.Snapshot {
	return rhythm.Snapshot{
		State:     rhythm.StateRunning,
		Mode:      rhythm.ModeScrolling,
		Score:     5,
		Countdown: 3,
		Feedback:  &rhythm.Feedback{Seq: 1, Text: "Perfect +5", Tier: rhythm.TierPerfect},
		Instances: []rhythm.NoteInstance{
			{ID: 1, Note: rhythm.NewNote(rhythm.FigureQuarter, false), Status: rhythm.StatusPending, X: 100, Visible: true},
			{ID: 2, Note: rhythm.NewNote(rhythm.FigureQuarter, true), Status: rhythm.StatusPending, X: 550, Visible: true},
			{ID: 3, Note: rhythm.BarNote(), Status: rhythm.StatusPending, X: 900, Visible: true},
			{ID: 4, Note: rhythm.NewNote(rhythm.FigureEighth, false), Status: rhythm.StatusMiss, X: -50, Visible: false},
		},
	}
}

func TestDrawStaffScrolling(t *testing.T) {
	s := core.NewScreen(80, 24)
	cfg := rhythm.DefaultConfig()
	cfg.Mode = rhythm.ModeScrolling
	DrawStaff(s, scrollingSnapshot(), cfg)

	// Lane is centered: rows 9..13, inner rows 10..12, staff line on row 11
	lane := laneRect(s)
	if lane.Y != 9 || lane.H != laneHeight {
		t.Fatalf("Lane = %+v, expected rows 9..13", lane)
	}
	if s.Get(0, 9) != '┌' || s.Get(79, 13) != '┘' {
		t.Error("Lane box not drawn")
	}

	hit := hitColumn(lane.Inset(1))
	if hit != 10 {
		t.Errorf("Hit column = %d, expected 10", hit)
	}
	if s.Get(hit, 10) != '┃' {
		t.Errorf("Hit line missing, got %q", s.Get(hit, 10))
	}

	// Note on the hit line covers it on the staff row
	if c := s.GetCell(hit, 11); c.Rune != '●' || c.Color != core.ColorBrightWhite {
		t.Errorf("Pending quarter at hit line = %+v", c)
	}

	// Rest at 550 of 900 lands at column 1 + round(550/900*77) = 48
	if c := s.GetCell(48, 11); c.Rune != 'ξ' || c.Color != core.ColorGray {
		t.Errorf("Rest = %+v, expected gray rest glyph", c)
	}

	// Bar spans the lane at the spawn edge
	for y := 10; y <= 12; y++ {
		if s.Get(78, y) != '│' {
			t.Errorf("Bar missing at row %d", y)
		}
	}

	// Invisible instances are not drawn
	if strings.ContainsRune(s.String(), '♪') {
		t.Error("Invisible eighth was drawn")
	}

	if !strings.Contains(s.Row(15), "Wait 3") {
		t.Errorf("Countdown row = %q", s.Row(15))
	}
	if !strings.Contains(s.Row(17), "Perfect +5") {
		t.Errorf("Feedback row = %q", s.Row(17))
	}
	if !strings.Contains(s.Row(0), "Score 5") || !strings.Contains(s.Row(0), "60 bpm  4/4  scrolling") {
		t.Errorf("HUD row = %q", s.Row(0))
	}
}

func TestDrawStaffStatic(t *testing.T) {
	s := core.NewScreen(80, 24)
	snap := rhythm.Snapshot{
		State:       rhythm.StateRunning,
		Mode:        rhythm.ModeStatic,
		Now:         13,
		Anchor:      10,
		PageSeconds: 12,
		Countdown:   1,
		Instances: []rhythm.NoteInstance{
			{ID: 1, Note: rhythm.NewNote(rhythm.FigureHalf, false), Due: 13, Status: rhythm.StatusMatchedPerfect, Visible: true},
			{ID: 2, Note: rhythm.NewNote(rhythm.FigureHalf, false), Due: 15, Status: rhythm.StatusMatchedGood, Visible: true},
			{ID: 3, Note: rhythm.NewNote(rhythm.FigureWhole, false), Due: 30, Status: rhythm.StatusPending, Visible: false},
		},
	}
	DrawStaff(s, snap, rhythm.DefaultConfig())

	// 3 of 12 seconds into the page: column 1 + round(0.25*77) = 20
	if c := s.GetCell(20, 11); c.Rune != '◐' || c.Color != core.ColorBrightGreen {
		t.Errorf("Perfect half = %+v", c)
	}
	if c := s.GetCell(20, 9); c.Rune != '▼' {
		t.Errorf("Playhead missing, got %q", c.Rune)
	}
	// 5 of 12 seconds: column 1 + round(32.08) = 33
	if c := s.GetCell(33, 11); c.Color != core.ColorGreen {
		t.Errorf("Good half = %+v", c)
	}
	if strings.ContainsRune(s.String(), '○') {
		t.Error("Note outside the page was drawn")
	}
	if !strings.Contains(s.Row(15), "Ready") {
		t.Errorf("Countdown row = %q", s.Row(15))
	}
}

func TestDrawStaffTinyScreen(t *testing.T) {
	// Must not panic when the lane has no interior
	s := core.NewScreen(1, 1)
	DrawStaff(s, scrollingSnapshot(), rhythm.DefaultConfig())
}

func TestGlyphs(t *testing.T) {
	for _, f := range rhythm.Figures {
		note, rest := glyph(rhythm.NewNote(f, false)), glyph(rhythm.NewNote(f, true))
		if note == 0 || rest == 0 || note == rest {
			t.Errorf("Figure %s: note %q, rest %q", f, note, rest)
		}
	}
	if glyph(rhythm.BarNote()) != '│' {
		t.Error("Bar glyph")
	}
}

func TestStatusColor(t *testing.T) {
	tests := []struct {
		inst     rhythm.NoteInstance
		expected core.Color
	}{
		{rhythm.NoteInstance{Note: rhythm.NewNote(rhythm.FigureQuarter, false), Status: rhythm.StatusPending}, core.ColorBrightWhite},
		{rhythm.NoteInstance{Note: rhythm.NewNote(rhythm.FigureQuarter, true), Status: rhythm.StatusPending}, core.ColorGray},
		{rhythm.NoteInstance{Note: rhythm.NewNote(rhythm.FigureQuarter, false), Status: rhythm.StatusMiss}, core.ColorBrightRed},
		{rhythm.NoteInstance{Note: rhythm.NewNote(rhythm.FigureQuarter, true), Status: rhythm.StatusMatchedPerfect}, core.ColorBrightGreen},
		{rhythm.NoteInstance{Note: rhythm.NewNote(rhythm.FigureQuarter, false), Status: rhythm.StatusHit}, core.ColorGreen},
		{rhythm.NoteInstance{Note: rhythm.NewNote(rhythm.FigureQuarter, false), Status: rhythm.StatusMatchedGood}, core.ColorGreen},
	}
	for _, tt := range tests {
		if got := statusColor(tt.inst); got != tt.expected {
			t.Errorf("statusColor(%s rest=%v) = %d, expected %d", tt.inst.Status, tt.inst.Note.Rest, got, tt.expected)
		}
	}
}

func TestDrawInstanceOutsideLane(t *testing.T) {
	s := core.NewScreen(40, 10)
	lane := core.NewRect(0, 2, 40, laneHeight)
	inner := lane.Inset(1)
	s.DrawBox(lane, core.ColorGray)
	mid := inner.Y + inner.H/2
	note := rhythm.NoteInstance{Note: rhythm.NewNote(rhythm.FigureQuarter, false), Status: rhythm.StatusPending}

	for _, x := range []int{inner.X - 1, inner.Right(), -3, 60} {
		drawInstance(s, note, x, inner, mid)
		drawInstance(s, rhythm.NoteInstance{Note: rhythm.BarNote()}, x, inner, mid)
	}
	if got := s.Get(lane.X, mid); got != '│' {
		t.Errorf("Left border at row %d = %q, expected untouched box edge", mid, got)
	}
	if got := s.Get(lane.Right()-1, mid); got != '│' {
		t.Errorf("Right border at row %d = %q, expected untouched box edge", mid, got)
	}
	if got := s.Get(lane.X, lane.Y); got != '┌' {
		t.Errorf("Top-left corner = %q, expected ┌", got)
	}

	drawInstance(s, note, inner.X, inner, mid)
	if got := s.Get(inner.X, mid); got != '●' {
		t.Errorf("First interior column = %q, expected note glyph", got)
	}
}
