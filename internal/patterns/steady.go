package patterns

import (
	"github.com/vovakirdan/tui-rhythm/internal/registry"
	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

// Steady repeats the longest allowed figure. It is meant for warming up on a
// single figure at a new tempo.
type Steady struct {
	measures int
}

// NewSteady creates a steady generator. It ignores the seed.
func NewSteady() *Steady {
	return &Steady{}
}

// Title returns the display name.
func (s *Steady) Title() string { return "Steady pulse" }

// GenerateMeasure fills one measure with the longest allowed figure. With
// rests enabled, every second measure ends on a rest.
func (s *Steady) GenerateMeasure(figures []rhythm.Figure, includeRests bool, meter rhythm.Meter) []rhythm.RhythmNote {
	s.measures++
	allowed := rhythm.NormalizeFigures(figures)
	left := float64(meter.BeatsPerMeasure())

	var out []rhythm.RhythmNote
	for left > 0 {
		f := largestFitting(left)
		if fits := fitting(allowed, left); len(fits) > 0 {
			f = fits[0]
		}
		out = append(out, rhythm.NewNote(f, false))
		left -= f.Beats()
	}

	if includeRests && s.measures%2 == 0 && len(out) > 1 {
		out[len(out)-1].Rest = true
	}
	return append(out, rhythm.BarNote())
}

func init() {
	registry.Register("steady", func(int64) rhythm.Generator {
		return NewSteady()
	})
}
