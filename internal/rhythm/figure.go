// Package rhythm implements the real-time core of the rhythm trainer: the spawn
// scheduler, the judgment engine, the mode projector and the session that ties
// them to an audio clock. It has no dependency on Bubble Tea or any device, so
// every tick can be driven from tests with synthetic clock values.
package rhythm

import (
	"fmt"
	"strconv"
	"strings"
)

// Figure is a rhythmic duration category.
type Figure string

const (
	FigureWhole     Figure = "whole"
	FigureHalf      Figure = "half"
	FigureQuarter   Figure = "quarter"
	FigureEighth    Figure = "eighth"
	FigureSixteenth Figure = "sixteenth"

	// FigureBar is the zero-duration measure-boundary sentinel.
	FigureBar Figure = "bar"
)

// Figures lists the playable figures from longest to shortest.
var Figures = []Figure{FigureWhole, FigureHalf, FigureQuarter, FigureEighth, FigureSixteenth}

// DefaultFigure is used whenever a caller supplies no figures at all.
const DefaultFigure = FigureQuarter

// Beats returns the figure length in quarter-note beats. The sentinel is 0.
func (f Figure) Beats() float64 {
	switch f {
	case FigureWhole:
		return 4
	case FigureHalf:
		return 2
	case FigureQuarter:
		return 1
	case FigureEighth:
		return 0.5
	case FigureSixteenth:
		return 0.25
	default:
		return 0
	}
}

// Valid reports whether f is one of the playable figures.
func (f Figure) Valid() bool {
	return f.Beats() > 0
}

// ParseFigure accepts the long names as well as the short codes used on the
// command line (w, h, q, 8, 16).
func ParseFigure(s string) (Figure, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w", "whole", "1":
		return FigureWhole, nil
	case "h", "half", "2":
		return FigureHalf, nil
	case "q", "quarter", "4":
		return FigureQuarter, nil
	case "8", "e", "eighth":
		return FigureEighth, nil
	case "16", "s", "sixteenth":
		return FigureSixteenth, nil
	}
	return "", fmt.Errorf("rhythm: unknown figure %q", s)
}

// NormalizeFigures drops unknown and duplicate figures, orders the rest from
// longest to shortest and falls back to DefaultFigure when nothing is left.
func NormalizeFigures(in []Figure) []Figure {
	seen := make(map[Figure]bool, len(in))
	for _, f := range in {
		if f.Valid() {
			seen[f] = true
		}
	}
	out := make([]Figure, 0, len(seen))
	for _, f := range Figures {
		if seen[f] {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []Figure{DefaultFigure}
	}
	return out
}

// RhythmNote is one value produced by a pattern generator. It is immutable
// once produced.
type RhythmNote struct {
	Figure Figure
	Value  float64 // Length in quarter-note beats, 0 for the sentinel
	Rest   bool
}

// NewNote builds a note whose value matches its figure.
func NewNote(f Figure, rest bool) RhythmNote {
	return RhythmNote{Figure: f, Value: f.Beats(), Rest: rest}
}

// BarNote returns the measure-boundary sentinel.
func BarNote() RhythmNote {
	return RhythmNote{Figure: FigureBar}
}

// IsBar reports whether the note is the measure-boundary sentinel.
func (n RhythmNote) IsBar() bool {
	return n.Figure == FigureBar
}

// Seconds converts the note value to seconds at the given tempo.
func (n RhythmNote) Seconds(bpm int) float64 {
	if n.IsBar() || bpm <= 0 {
		return 0
	}
	return n.Value * BeatSeconds(bpm)
}

// Meter is a time signature.
type Meter struct {
	Beats int // Beats per measure
	Unit  int // Beat unit (4 = quarter, 8 = eighth)
}

// Supported meters.
var (
	Meter34 = Meter{Beats: 3, Unit: 4}
	Meter44 = Meter{Beats: 4, Unit: 4}
	Meter68 = Meter{Beats: 6, Unit: 8}
)

// ParseMeter parses "n/d". A missing or invalid numerator becomes 4, a missing
// or invalid unit becomes 4. It never fails; use Supported to restrict input.
func ParseMeter(s string) Meter {
	m := Meter{Beats: 4, Unit: 4}
	num, den, _ := strings.Cut(strings.TrimSpace(s), "/")
	if n, err := strconv.Atoi(strings.TrimSpace(num)); err == nil && n > 0 {
		m.Beats = n
	}
	if d, err := strconv.Atoi(strings.TrimSpace(den)); err == nil && d > 0 {
		m.Unit = d
	}
	return m
}

// Supported reports whether the meter is one the trainer offers.
func (m Meter) Supported() bool {
	return m == Meter34 || m == Meter44 || m == Meter68
}

func (m Meter) String() string {
	return fmt.Sprintf("%d/%d", m.Beats, m.Unit)
}

// BeatsPerMeasure returns the numerator, defaulting to 4.
func (m Meter) BeatsPerMeasure() int {
	if m.Beats <= 0 {
		return 4
	}
	return m.Beats
}

// MeasureSeconds returns beatsPerMeasure * 60 / bpm.
func (m Meter) MeasureSeconds(bpm int) float64 {
	return float64(m.BeatsPerMeasure()) * BeatSeconds(bpm)
}

// BeatSeconds returns the length of one beat at the given tempo.
func BeatSeconds(bpm int) float64 {
	if bpm <= 0 {
		return 0
	}
	return 60 / float64(bpm)
}
