package patterns

import (
	"math/rand"

	"github.com/vovakirdan/tui-rhythm/internal/registry"
	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

// RestProbability is the chance that a figure is turned into a rest.
const RestProbability = 0.25

// Random picks figures uniformly among those that still fit the measure.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random generator with a fixed seed.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Title returns the display name.
func (r *Random) Title() string { return "Random figures" }

// GenerateMeasure fills one measure. With rests enabled at least one
// figure of the measure is still played.
func (r *Random) GenerateMeasure(figures []rhythm.Figure, includeRests bool, meter rhythm.Meter) []rhythm.RhythmNote {
	allowed := rhythm.NormalizeFigures(figures)
	left := float64(meter.BeatsPerMeasure())

	var out []rhythm.RhythmNote
	allRests := true
	for left > 0 {
		var f rhythm.Figure
		if fits := fitting(allowed, left); len(fits) > 0 {
			f = fits[r.rng.Intn(len(fits))]
		} else {
			f = largestFitting(left)
		}

		rest := includeRests && r.rng.Float64() < RestProbability
		if !rest {
			allRests = false
		}
		out = append(out, rhythm.NewNote(f, rest))
		left -= f.Beats()
	}

	if allRests && len(out) > 0 {
		out[r.rng.Intn(len(out))].Rest = false
	}
	return append(out, rhythm.BarNote())
}

func init() {
	registry.Register("random", func(seed int64) rhythm.Generator {
		return NewRandom(seed)
	})
}
