package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

const laneHeight = 5

var noteGlyphs = map[rhythm.Figure]rune{
	rhythm.FigureWhole:     '○',
	rhythm.FigureHalf:      '◐',
	rhythm.FigureQuarter:   '●',
	rhythm.FigureEighth:    '♪',
	rhythm.FigureSixteenth: '♬',
}

var restGlyphs = map[rhythm.Figure]rune{
	rhythm.FigureWhole:     '▀',
	rhythm.FigureHalf:      '▄',
	rhythm.FigureQuarter:   'ξ',
	rhythm.FigureEighth:    '7',
	rhythm.FigureSixteenth: '¥',
}

var tierColors = map[rhythm.Tier]core.Color{
	rhythm.TierPerfect:     core.ColorBrightGreen,
	rhythm.TierGood:        core.ColorGreen,
	rhythm.TierMiss:        core.ColorBrightRed,
	rhythm.TierRest:        core.ColorCyan,
	rhythm.TierRestWarning: core.ColorOrange,
}

// glyph returns the rune drawn for a note.
func glyph(n rhythm.RhythmNote) rune {
	if n.IsBar() {
		return '│'
	}
	if n.Rest {
		return restGlyphs[n.Figure]
	}
	return noteGlyphs[n.Figure]
}

// statusColor returns the color of an instance by judgment status.
func statusColor(inst rhythm.NoteInstance) core.Color {
	switch {
	case inst.Status == rhythm.StatusMatchedPerfect:
		return core.ColorBrightGreen
	case inst.Status.Scored():
		return core.ColorGreen
	case inst.Status == rhythm.StatusMiss:
		return core.ColorBrightRed
	}
	if inst.Note.IsBar() || inst.Note.Rest {
		return core.ColorGray
	}
	return core.ColorBrightWhite
}

// laneRect returns the staff box for a screen, vertically centered.
func laneRect(s *core.Screen) core.Rect {
	top := max((s.Height()-laneHeight)/2, 2)
	return core.NewRect(0, top, s.Width(), laneHeight)
}

// DrawStaff renders a session snapshot: HUD, staff lane, countdown and
// feedback.
func DrawStaff(s *core.Screen, snap rhythm.Snapshot, cfg rhythm.Config) {
	s.Clear()
	drawHUD(s, snap, cfg)

	lane := laneRect(s)
	inner := lane.Inset(1)
	if inner.W <= 0 {
		return
	}
	s.DrawBox(lane, core.ColorGray)
	mid := inner.Y + inner.H/2
	s.DrawHLine(inner.X, mid, inner.W, '─', core.ColorGray)

	if snap.Mode == rhythm.ModeScrolling {
		drawScrolling(s, snap, inner, mid)
	} else {
		drawStatic(s, snap, inner, mid)
	}

	y := lane.Bottom() + 1
	switch {
	case snap.Countdown > 1:
		s.DrawTextCentered(y, fmt.Sprintf("Wait %d", snap.Countdown), core.ColorYellow)
	case snap.Countdown == 1:
		s.DrawTextCentered(y, "Ready", core.ColorBrightGreen)
	}
	if fb := snap.Feedback; fb != nil {
		s.DrawTextCentered(y+2, fb.Text, tierColors[fb.Tier])
	}
}

// hitColumn is the screen column of the scrolling hit line.
func hitColumn(inner core.Rect) int {
	return inner.X + core.Scale(rhythm.HitLineOffset, rhythm.SpawnOffset, inner.W)
}

func drawScrolling(s *core.Screen, snap rhythm.Snapshot, inner core.Rect, mid int) {
	hit := hitColumn(inner)
	s.DrawVLine(hit, inner.Y, inner.H, '┃', core.ColorYellow)

	for _, inst := range snap.Instances {
		if !inst.Visible {
			continue
		}
		x := inner.X + core.Scale(inst.X, rhythm.SpawnOffset, inner.W)
		drawInstance(s, inst, x, inner, mid)
	}
}

func drawStatic(s *core.Screen, snap rhythm.Snapshot, inner core.Rect, mid int) {
	if snap.PageSeconds <= 0 {
		return
	}
	// Playhead above the lane.
	if off := snap.Now - snap.Anchor; off >= 0 && off < snap.PageSeconds {
		s.SetColor(inner.X+core.Scale(off, snap.PageSeconds, inner.W), inner.Y-1, '▼', core.ColorYellow)
	}

	for _, inst := range snap.Instances {
		if !inst.Visible {
			continue
		}
		x := inner.X + core.Scale(inst.Due-snap.Anchor, snap.PageSeconds, inner.W)
		drawInstance(s, inst, x, inner, mid)
	}
}

// drawInstance draws one instance at column x. Columns outside the lane
// interior are skipped so the box border stays intact.
func drawInstance(s *core.Screen, inst rhythm.NoteInstance, x int, inner core.Rect, mid int) {
	if !inner.Contains(x, mid) {
		return
	}
	if inst.Note.IsBar() {
		s.DrawVLine(x, inner.Y, inner.H, '│', core.ColorGray)
		return
	}
	s.SetColor(x, mid, glyph(inst.Note), statusColor(inst))
}

func drawHUD(s *core.Screen, snap rhythm.Snapshot, cfg rhythm.Config) {
	left := fmt.Sprintf(" Score %d  Combo %d (max %d)", snap.Score, snap.Combo, snap.MaxCombo)
	s.DrawText(0, 0, left, core.ColorBrightWhite)

	counts := fmt.Sprintf("Perfect %d  Good %d  Miss %d", snap.Counts.Perfect, snap.Counts.Good, snap.Counts.Miss)
	s.DrawText(1, 1, counts, core.ColorGray)

	right := fmt.Sprintf("%d bpm  %s  %s ", cfg.BPM, cfg.Meter, cfg.Mode)
	s.DrawText(s.Width()-len(right), 0, right, core.ColorCyan)
}
