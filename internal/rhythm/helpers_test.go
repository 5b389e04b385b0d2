package rhythm

import "errors"

// fakeClock is a manually driven audio clock.
type fakeClock struct {
	t       float64
	err     error
	running bool
	accents int
	bpm     int
	beats   int
	unit    int
}

func (c *fakeClock) Start() (float64, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.running = true
	return c.t, nil
}

func (c *fakeClock) Stop() { c.running = false }

func (c *fakeClock) Now() (float64, error) {
	if c.err != nil {
		return 0, c.err
	}
	return c.t, nil
}

func (c *fakeClock) SetTempo(bpm int)         { c.bpm = bpm }
func (c *fakeClock) SetMeter(beats, unit int) { c.beats, c.unit = beats, unit }
func (c *fakeClock) PlayAccent()              { c.accents++ }

var errFeedLost = errors.New("feed lost")

// fillGen fills each measure with the first allowed figure, completing the
// remainder with shorter figures. When restEvery
// is > 0, every restEvery-th note is a rest.
func fillGen(restEvery int) Generator {
	n := 0
	return GeneratorFunc(func(figures []Figure, includeRests bool, meter Meter) []RhythmNote {
		f := NormalizeFigures(figures)[0]
		var out []RhythmNote
		for left := float64(meter.BeatsPerMeasure()); left > 0; {
			fig := f
			for _, g := range Figures {
				if fig.Beats() <= left {
					break
				}
				fig = g
			}
			n++
			out = append(out, NewNote(fig, includeRests && restEvery > 0 && n%restEvery == 0))
			left -= fig.Beats()
		}
		return append(out, BarNote())
	})
}

// scriptGen returns the given measures in order, repeating the last one.
func scriptGen(measures ...[]RhythmNote) Generator {
	i := 0
	return GeneratorFunc(func([]Figure, bool, Meter) []RhythmNote {
		m := measures[min(i, len(measures)-1)]
		i++
		return append([]RhythmNote(nil), m...)
	})
}

type fakeOrientation struct {
	landscape, unlocked int
}

func (o *fakeOrientation) LockLandscape() error { o.landscape++; return nil }
func (o *fakeOrientation) LockPortrait() error  { return nil }
func (o *fakeOrientation) Unlock() error        { o.unlocked++; return nil }

func pendingNote(id uint64, due float64, rest bool) *NoteInstance {
	return &NoteInstance{ID: id, Note: NewNote(FigureQuarter, rest), Due: due, Status: StatusPending}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
