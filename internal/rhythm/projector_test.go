package rhythm

import "testing"

func TestProjectScrolling(t *testing.T) {
	cfg := scrollingConfig(60, Meter44, FigureQuarter)
	p := NewProjector(cfg, 10, 14)

	near := pendingNote(1, 12, false)
	far := pendingNote(2, 20, false)
	past := pendingNote(3, 9, false)
	insts := []*NoteInstance{past, near, far}

	countdown := p.Project(insts, 10)
	// 120 px/s at 60 bpm
	if !approx(near.X, 340) || !near.Visible {
		t.Errorf("Near note X=%v visible=%v, want 340 true", near.X, near.Visible)
	}
	if !approx(far.X, 1300) || far.Visible {
		t.Errorf("Far note X=%v visible=%v, want 1300 false", far.X, far.Visible)
	}
	if !approx(past.X, -20) || past.Visible {
		t.Errorf("Past note X=%v visible=%v, want -20 false", past.X, past.Visible)
	}
	if countdown != 4 {
		t.Errorf("Lead-in countdown = %d, want 4", countdown)
	}
	if past.Status != StatusPending {
		t.Error("Projection changed status")
	}
}

func TestScrollingCountdown(t *testing.T) {
	p := NewProjector(scrollingConfig(60, Meter44, FigureQuarter), 10, 14)
	tests := []struct {
		now  float64
		want int
	}{
		{10, 4},
		{11.5, 3},
		{13.5, 1},
		{14, 0},
		{30, 0},
	}
	for _, tt := range tests {
		if got := p.Project(nil, tt.now); got != tt.want {
			t.Errorf("Countdown at %v = %d, want %d", tt.now, got, tt.want)
		}
	}
}

func TestStaticCycle(t *testing.T) {
	cfg := scrollingConfig(60, Meter44, FigureQuarter)
	cfg.Mode = ModeStatic
	p := NewProjector(cfg, 10, 14)

	tests := []struct {
		now        float64
		wantAnchor float64
		wantCount  int
	}{
		{10, 10, 4},
		{12.5, 10, 2},
		{13.9, 10, 1},
		{14, 10, 0},
		{21.9, 10, 0},
		{22, 22, 4},
		{47, 46, 3}, // Stalled ticks catch up
	}
	for _, tt := range tests {
		got := p.Project(nil, tt.now)
		if !approx(p.Anchor(), tt.wantAnchor) {
			t.Errorf("Anchor at %v = %v, want %v", tt.now, p.Anchor(), tt.wantAnchor)
		}
		if got != tt.wantCount {
			t.Errorf("Countdown at %v = %d, want %d", tt.now, got, tt.wantCount)
		}
	}
}

func TestStaticVisibility(t *testing.T) {
	cfg := scrollingConfig(60, Meter44, FigureQuarter)
	cfg.Mode = ModeStatic
	p := NewProjector(cfg, 10, 14)

	before := pendingNote(1, 9.5, false)
	first := pendingNote(2, 10, false)
	last := pendingNote(3, 21.5, false)
	next := pendingNote(4, 22, false)
	p.Project([]*NoteInstance{before, first, last, next}, 11)

	if before.Visible || !first.Visible || !last.Visible || next.Visible {
		t.Errorf("Visibility = %v %v %v %v, want false true true false",
			before.Visible, first.Visible, last.Visible, next.Visible)
	}
}

func TestRetain(t *testing.T) {
	scroll := NewProjector(scrollingConfig(60, Meter44, FigureQuarter), 0, 4)
	insts := []*NoteInstance{pendingNote(1, 15, false), pendingNote(2, 15.5, false), pendingNote(3, 30, false)}
	kept := scroll.Retain(insts, 20)
	if len(kept) != 2 || kept[0].ID != 2 {
		t.Errorf("Scrolling retained %d instances starting at %d, want 2 starting at 2", len(kept), kept[0].ID)
	}

	cfg := scrollingConfig(60, Meter44, FigureQuarter)
	cfg.Mode = ModeStatic
	static := NewProjector(cfg, 10, 14)
	insts = []*NoteInstance{pendingNote(1, 4.9, false), pendingNote(2, 5, false), pendingNote(3, 12, false)}
	kept = static.Retain(insts, 20)
	if len(kept) != 2 || kept[0].ID != 2 {
		t.Errorf("Static retained %d instances, want 2 from anchor-5", len(kept))
	}
}
