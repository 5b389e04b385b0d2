package rhythm

import "testing"

func scrollingConfig(bpm int, meter Meter, figures ...Figure) Config {
	cfg := DefaultConfig()
	cfg.BPM = bpm
	cfg.Meter = meter
	cfg.Figures = figures
	cfg.Mode = ModeScrolling
	return cfg
}

func TestSchedulerQuarterGrid(t *testing.T) {
	cfg := scrollingConfig(60, Meter44, FigureQuarter)
	s := NewScheduler(cfg, fillGen(0), 4, nil)

	got := s.Advance(0)
	var dues []float64
	for _, inst := range got {
		if !inst.Note.IsBar() {
			dues = append(dues, inst.Due)
		}
	}
	if len(dues) < 8 {
		t.Fatalf("Expected at least two measures, got %d notes", len(dues))
	}
	for i := 0; i < 8; i++ {
		if want := 4 + float64(i); !approx(dues[i], want) {
			t.Errorf("Note %d due %v, want %v", i, dues[i], want)
		}
	}

	// Preload horizon reached, nothing beyond it
	if s.NextDue() < PreloadSeconds {
		t.Errorf("Cursor %v stopped short of the preload horizon", s.NextDue())
	}
	for _, inst := range got {
		if inst.Due >= PreloadSeconds {
			t.Errorf("Instance %d at %v lies beyond the horizon", inst.ID, inst.Due)
		}
	}

	// Nothing new until the clock moves
	if more := s.Advance(0); len(more) != 0 {
		t.Errorf("Second advance at same time spawned %d instances", len(more))
	}
	if more := s.Advance(1); len(more) == 0 {
		t.Error("Advance after clock moved spawned nothing")
	}
}

func TestSchedulerMeasureSums(t *testing.T) {
	figureSets := [][]Figure{
		{FigureQuarter},
		{FigureEighth},
		{FigureSixteenth},
		{FigureHalf},
	}
	for _, meter := range []Meter{Meter34, Meter44, Meter68} {
		for _, bpm := range []int{40, 75, 120, 200} {
			for _, figs := range figureSets {
				cfg := scrollingConfig(bpm, meter, figs...)
				s := NewScheduler(cfg, fillGen(0), 0, nil)
				insts := s.Advance(0)

				sums := map[int]float64{}
				prev := -1.0
				for _, inst := range insts {
					if inst.Due < prev {
						t.Fatalf("%s %d bpm %v: due times decrease (%v after %v)", meter, bpm, figs, inst.Due, prev)
					}
					prev = inst.Due
					if !inst.Note.IsBar() {
						sums[inst.Measure] += inst.Note.Seconds(bpm)
					}
				}
				want := cfg.MeasureSeconds()
				// The last measure may be cut by the horizon
				for m := 1; m < s.Measures(); m++ {
					if !approx(sums[m], want) {
						t.Errorf("%s %d bpm %v: measure %d sums to %v, want %v", meter, bpm, figs, m, sums[m], want)
					}
				}
			}
		}
	}
}

func TestSchedulerStaticGap(t *testing.T) {
	cfg := scrollingConfig(60, Meter44, FigureQuarter)
	cfg.Mode = ModeStatic
	s := NewScheduler(cfg, fillGen(0), 4, nil)

	firstOf := map[int]float64{}
	for _, inst := range s.Advance(0) {
		if _, ok := firstOf[inst.Measure]; !ok && !inst.Note.IsBar() {
			firstOf[inst.Measure] = inst.Due
		}
	}

	// Two play measures, then one silent measure
	want := map[int]float64{1: 4, 2: 8, 3: 16, 4: 20}
	for m, due := range want {
		got, ok := firstOf[m]
		if !ok {
			if due < PreloadSeconds {
				t.Errorf("Measure %d missing", m)
			}
			continue
		}
		if !approx(got, due) {
			t.Errorf("Measure %d starts at %v, want %v", m, got, due)
		}
	}
}

func TestSchedulerUniqueIDs(t *testing.T) {
	s := NewScheduler(scrollingConfig(120, Meter44, FigureSixteenth), fillGen(0), 0, nil)
	seen := map[uint64]bool{}
	var last uint64
	for now := 0.0; now < 60; now += 0.5 {
		for _, inst := range s.Advance(now) {
			if seen[inst.ID] {
				t.Fatalf("ID %d reused", inst.ID)
			}
			if inst.ID <= last {
				t.Fatalf("ID %d not increasing after %d", inst.ID, last)
			}
			seen[inst.ID] = true
			last = inst.ID
		}
	}
}

func TestSchedulerDegenerateGenerator(t *testing.T) {
	empty := GeneratorFunc(func([]Figure, bool, Meter) []RhythmNote { return nil })
	barsOnly := scriptGen([]RhythmNote{BarNote()})

	for name, gen := range map[string]Generator{"empty": empty, "bars only": barsOnly, "nil": nil} {
		s := NewScheduler(scrollingConfig(60, Meter34), gen, 0, nil)
		insts := s.Advance(0)
		if len(insts) == 0 {
			t.Errorf("%s: no instances spawned", name)
			continue
		}
		if insts[0].Note.Figure != DefaultFigure {
			t.Errorf("%s: fallback figure %q, want %q", name, insts[0].Note.Figure, DefaultFigure)
		}
	}
}

func TestSchedulerAppendsMissingBar(t *testing.T) {
	gen := scriptGen([]RhythmNote{NewNote(FigureWhole, false)})
	s := NewScheduler(scrollingConfig(60, Meter44, FigureWhole), gen, 0, nil)
	insts := s.Advance(0)
	if len(insts) < 2 || !insts[1].Note.IsBar() {
		t.Fatalf("Expected bar sentinel after the measure")
	}
	if !approx(insts[1].Due, 4) {
		t.Errorf("Bar due %v, want 4", insts[1].Due)
	}
}
