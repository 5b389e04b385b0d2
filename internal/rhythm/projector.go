package rhythm

import "math"

// Projection constants. Positions are in abstract pixels; renderers scale them.
const (
	HitLineOffset    = 100.0 // Scroll position of the hit line
	SpawnOffset      = 900.0 // Scroll position where notes enter
	RetentionSeconds = 5.0   // How long resolved instances stay in the working set
	PageMeasures     = 3     // Static mode: measures laid out on one page
)

// Projector derives transient position, visibility and countdown values.
// It never touches instance status.
type Projector struct {
	cfg      Config
	anchor   float64 // Static page start
	firstDue float64
}

// NewProjector anchors the first static page at start.
func NewProjector(cfg Config, start, firstDue float64) *Projector {
	return &Projector{cfg: cfg, anchor: start, firstDue: firstDue}
}

// Anchor returns the start time of the current static page.
func (p *Projector) Anchor() float64 {
	return p.anchor
}

// PageSeconds is the time span laid out on one static page.
func (p *Projector) PageSeconds() float64 {
	return p.cfg.MeasureSeconds() * PageMeasures
}

// CycleSeconds is the length of one static gap+play cycle.
func (p *Projector) CycleSeconds() float64 {
	return p.cfg.MeasureSeconds() * (GapMeasures + PlayMeasures)
}

// Project updates X and Visible for every instance and returns the countdown
// in beats, or 0 when no countdown is running.
func (p *Projector) Project(instances []*NoteInstance, now float64) int {
	if p.cfg.Mode == ModeStatic {
		return p.projectStatic(instances, now)
	}
	return p.projectScrolling(instances, now)
}

func (p *Projector) projectScrolling(instances []*NoteInstance, now float64) int {
	pps := p.cfg.PixelsPerSecond()
	for _, inst := range instances {
		inst.X = (inst.Due-now)*pps + HitLineOffset
		inst.Visible = inst.X >= 0 && inst.X <= SpawnOffset
	}

	if now >= p.firstDue {
		return 0
	}
	left := int(math.Ceil((p.firstDue - now) / BeatSeconds(p.cfg.BPM)))
	return max(left, 0)
}

func (p *Projector) projectStatic(instances []*NoteInstance, now float64) int {
	// Catch up over stalled ticks: one cycle per loop.
	cycle := p.CycleSeconds()
	for now-p.anchor >= cycle {
		p.anchor += cycle
	}

	end := p.anchor + p.PageSeconds()
	for _, inst := range instances {
		inst.X = 0
		inst.Visible = inst.Due >= p.anchor && inst.Due < end
	}

	beat := BeatSeconds(p.cfg.BPM)
	gap := p.cfg.MeasureSeconds() * GapMeasures
	inCycle := max(now-p.anchor, 0)
	if inCycle >= gap {
		return 0
	}
	left := int(math.Round(gap/beat)) - int(math.Floor(inCycle/beat))
	return max(left, 0)
}

// Retain drops instances that fell behind the retention horizon. Static mode
// measures it from the page anchor, scrolling mode from now.
func (p *Projector) Retain(instances []*NoteInstance, now float64) []*NoteInstance {
	kept := instances[:0]
	for _, inst := range instances {
		var keep bool
		if p.cfg.Mode == ModeStatic {
			keep = inst.Due >= p.anchor-RetentionSeconds
		} else {
			keep = inst.Due > now-RetentionSeconds
		}
		if keep {
			kept = append(kept, inst)
		}
	}
	clear(instances[len(kept):])
	return kept
}
