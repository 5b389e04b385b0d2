// Package patterns contains the pattern generators offered by the trainer.
// Each generator registers itself with the registry from init().
package patterns

import "github.com/vovakirdan/tui-rhythm/internal/rhythm"

// fitting returns the allowed figures no longer than left.
func fitting(allowed []rhythm.Figure, left float64) []rhythm.Figure {
	var out []rhythm.Figure
	for _, f := range allowed {
		if f.Beats() <= left {
			out = append(out, f)
		}
	}
	return out
}

// largestFitting returns the longest standard figure no longer than left.
// Sixteenths fill any remainder of a measure built from standard figures.
func largestFitting(left float64) rhythm.Figure {
	for _, f := range rhythm.Figures {
		if f.Beats() <= left {
			return f
		}
	}
	return rhythm.FigureSixteenth
}
