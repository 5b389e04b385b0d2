package rhythm

import (
	"github.com/charmbracelet/log"
)

// Scheduling constants.
const (
	PreloadSeconds = 20.0 // How far ahead of the clock notes are instantiated
	PlayMeasures   = 2    // Static mode: measures played per cycle
	GapMeasures    = 1    // Static mode: silent measures inserted after each play block
)

// Scheduler turns generated measures into timed note instances. It keeps the
// queue of not-yet-instantiated notes and the due-time cursor.
type Scheduler struct {
	cfg     Config
	gen     Generator
	logger  *log.Logger
	queue   []RhythmNote
	nextDue float64
	measure int    // Number of measures requested from the generator
	lastID  uint64 // Last instance ID handed out
}

// NewScheduler creates a scheduler whose first note is due at firstDue.
func NewScheduler(cfg Config, gen Generator, firstDue float64, logger *log.Logger) *Scheduler {
	return &Scheduler{
		cfg:     cfg.Normalize(),
		gen:     gen,
		logger:  logger,
		nextDue: firstDue,
	}
}

// NextDue returns the due time the next instantiated note will get.
func (s *Scheduler) NextDue() float64 {
	return s.nextDue
}

// Measures returns how many measures have been generated so far.
func (s *Scheduler) Measures() int {
	return s.measure
}

// Advance instantiates every queued note whose due time lies within the
// preload horizon of now, refilling the queue from the generator as needed.
func (s *Scheduler) Advance(now float64) []*NoteInstance {
	var out []*NoteInstance
	measureDur := s.cfg.MeasureSeconds()

	for s.nextDue < now+PreloadSeconds {
		if len(s.queue) == 0 {
			s.refill()
		}

		note := s.queue[0]
		s.queue = s.queue[1:]

		s.lastID++
		out = append(out, &NoteInstance{
			ID:      s.lastID,
			Note:    note,
			Due:     s.nextDue,
			Measure: s.measure,
			Status:  StatusPending,
		})
		s.nextDue += note.Seconds(s.cfg.BPM)

		if note.IsBar() && s.cfg.Mode == ModeStatic && len(s.queue) == 0 && s.measure%PlayMeasures == 0 {
			s.nextDue += measureDur * GapMeasures
		}
	}
	return out
}

// refill asks the generator for the next measure. A measure that would not
// move the cursor is replaced so Advance always terminates.
func (s *Scheduler) refill() {
	var notes []RhythmNote
	if s.gen != nil {
		notes = s.gen.GenerateMeasure(s.cfg.Figures, s.cfg.IncludeRests, s.cfg.Meter)
	}

	total := 0.0
	for _, n := range notes {
		total += n.Seconds(s.cfg.BPM)
	}
	if total <= 0 {
		notes = fallbackMeasure(s.cfg.Meter)
	}
	if !notes[len(notes)-1].IsBar() {
		notes = append(notes, BarNote())
	}

	s.queue = append(s.queue[:0], notes...)
	s.measure++
	if s.logger != nil {
		s.logger.Debug("measure generated", "measure", s.measure, "notes", len(notes)-1, "due", s.nextDue)
	}
}

// fallbackMeasure fills a measure with quarter notes.
func fallbackMeasure(m Meter) []RhythmNote {
	notes := make([]RhythmNote, 0, m.BeatsPerMeasure()+1)
	for range m.BeatsPerMeasure() {
		notes = append(notes, NewNote(DefaultFigure, false))
	}
	return append(notes, BarNote())
}
