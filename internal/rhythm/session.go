package rhythm

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
)

// State is the lifecycle state of a session.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateAborted:
		return "aborted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Snapshot is the read-only view handed to the render surface.
type Snapshot struct {
	State     State
	Epoch     uint64
	Mode      Mode
	Now       float64
	Instances []NoteInstance
	Score     int
	Combo     int
	MaxCombo  int
	Counts    Counts
	Countdown int // Beats left in a lead-in or gap, 0 when none
	Feedback  *Feedback

	// Layout helpers for renderers.
	Anchor      float64
	PageSeconds float64
	BeatSeconds float64

	Err error // Set when the session was aborted
}

// Result summarises a finished session.
type Result struct {
	Score    int
	Counts   Counts
	MaxCombo int
	Measures int
	Duration time.Duration
}

// Judged reports whether anything was judged during the session.
func (r Result) Judged() bool {
	return r.Counts.Perfect+r.Counts.Good+r.Counts.Miss > 0
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for lifecycle and judgment events.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithOrientation sets the display control locked around a session.
func WithOrientation(o Orientation) Option {
	return func(s *Session) { s.orientation = o }
}

// Session owns all mutable state of one play session: scheduler cursor and
// queue, working instance set, judge state and projector anchor. It is not
// safe for concurrent use; ticks and interactions are expected on one
// goroutine.
type Session struct {
	clock       Clock
	gen         Generator
	logger      *log.Logger
	orientation Orientation

	cfg   Config
	state State
	epoch uint64
	start float64
	now   float64
	err   error

	scheduler *Scheduler
	judge     *Judge
	projector *Projector
	instances []*NoteInstance
	countdown int
	last      Result
}

// NewSession creates an idle session.
func NewSession(clock Clock, gen Generator, opts ...Option) *Session {
	s := &Session{
		clock: clock,
		gen:   gen,
		cfg:   DefaultConfig(),
		judge: NewJudge(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Epoch changes on every start, stop and abort. Tick loops compare it to
// detect that they belong to an earlier run.
func (s *Session) Epoch() uint64 { return s.epoch }

// Config returns the active configuration.
func (s *Session) Config() Config { return s.cfg }

// Err returns the error that aborted the session, if any.
func (s *Session) Err() error { return s.err }

// LastResult returns the result of the most recently ended run, including
// runs ended by a clock failure during Step.
func (s *Session) LastResult() Result { return s.last }

// Start validates cfg and begins a new run. A running session is stopped
// first.
func (s *Session) Start(cfg Config) error {
	if s.clock == nil {
		return ErrNoClockSource
	}
	if s.gen == nil {
		return ErrNoGenerator
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if s.state == StateRunning {
		s.Stop()
	}

	cfg = cfg.Normalize()
	s.clock.SetTempo(cfg.BPM)
	s.clock.SetMeter(cfg.Meter.Beats, cfg.Meter.Unit)

	var start float64
	if cfg.Metronome {
		t, err := s.clock.Start()
		if err != nil {
			return fmt.Errorf("%w: start: %v", ErrClockLost, err)
		}
		start = t
	} else {
		t, err := s.clock.Now()
		if err != nil {
			return fmt.Errorf("%w: now: %v", ErrClockLost, err)
		}
		start = t + 0.1
	}

	// One measure of lead-in before the first playable note.
	firstDue := start + cfg.MeasureSeconds()

	s.cfg = cfg
	s.epoch++
	s.start = start
	s.now = start
	s.err = nil
	s.scheduler = NewScheduler(cfg, s.gen, firstDue, s.logger)
	s.judge = NewJudge()
	s.projector = NewProjector(cfg, start, firstDue)
	s.instances = nil
	s.countdown = 0
	s.state = StateRunning

	if s.orientation != nil {
		if err := s.orientation.LockLandscape(); err != nil {
			s.debugf("orientation lock failed", "err", err)
		}
	}
	if s.logger != nil {
		s.logger.Info("session started", "bpm", cfg.BPM, "meter", cfg.Meter.String(), "mode", cfg.Mode, "start", start)
	}
	return nil
}

// Stop ends the run and returns its result. Queue, instances, scored ids and
// counters are cleared before Stop returns, and the epoch changes so ticks
// scheduled before the stop are recognisable as stale.
func (s *Session) Stop() Result {
	if s.state != StateRunning {
		return Result{}
	}
	res := s.result()
	s.last = res
	s.clock.Stop()
	s.teardown(StateStopped)
	if s.logger != nil {
		s.logger.Info("session stopped", "score", res.Score, "max_combo", res.MaxCombo, "duration", res.Duration)
	}
	return res
}

// Abort ends the run because of err. The run's result is returned so
// callers may still record it.
func (s *Session) Abort(err error) Result {
	if s.state != StateRunning {
		return Result{}
	}
	res := s.result()
	s.last = res
	s.clock.Stop()
	s.err = err
	s.teardown(StateAborted)
	if s.logger != nil {
		s.logger.Error("session aborted", "err", err)
	}
	return res
}

func (s *Session) teardown(next State) {
	s.epoch++
	s.state = next
	s.scheduler = nil
	s.judge = NewJudge()
	s.instances = nil
	s.countdown = 0
	if s.orientation != nil {
		if err := s.orientation.Unlock(); err != nil {
			s.debugf("orientation unlock failed", "err", err)
		}
	}
}

func (s *Session) result() Result {
	return Result{
		Score:    s.judge.Score(),
		Counts:   s.judge.Counts(),
		MaxCombo: s.judge.MaxCombo(),
		Measures: s.scheduler.Measures(),
		Duration: seconds(max(s.now-s.start, 0)),
	}
}

// Step samples the clock and ticks. A clock error aborts the session.
func (s *Session) Step() (Snapshot, time.Duration) {
	if s.state != StateRunning {
		return s.Snapshot(), 0
	}
	now, err := s.clock.Now()
	if err != nil {
		s.Abort(fmt.Errorf("%w: %v", ErrClockLost, err))
		return s.Snapshot(), 0
	}
	return s.Tick(now)
}

// Tick advances the session to now: spawn, sweep, project, retire, all at
// the same sampled time. The returned duration hints when the next tick
// would observe a change.
func (s *Session) Tick(now float64) (Snapshot, time.Duration) {
	if s.state != StateRunning {
		return s.Snapshot(), 0
	}
	s.now = now

	s.instances = append(s.instances, s.scheduler.Advance(now)...)
	for _, jd := range s.judge.Sweep(s.instances, now) {
		s.debugf("swept", "id", jd.InstanceID, "tier", jd.Tier, "late", jd.Delta)
	}
	s.countdown = s.projector.Project(s.instances, now)
	s.instances = s.projector.Retain(s.instances, now)

	return s.Snapshot(), s.nextDeadline(now)
}

// Strike samples the clock and judges one interaction.
func (s *Session) Strike() (Judgment, bool) {
	if s.state != StateRunning {
		return Judgment{}, false
	}
	now, err := s.clock.Now()
	if err != nil {
		s.Abort(fmt.Errorf("%w: %v", ErrClockLost, err))
		return Judgment{}, false
	}
	return s.Interact(now)
}

// Interact judges one discrete user interaction at now. It reports false
// when the interaction changed nothing.
func (s *Session) Interact(now float64) (Judgment, bool) {
	if s.state != StateRunning {
		return Judgment{}, false
	}
	jd, ok := s.judge.Interact(s.instances, now)
	if !ok {
		return jd, false
	}
	if jd.Points > 0 && s.cfg.Sound {
		s.clock.PlayAccent()
	}
	s.debugf("strike", "id", jd.InstanceID, "tier", jd.Tier, "delta", jd.Delta, "points", jd.Points)
	return jd, true
}

// ClearFeedback drops the feedback identified by seq if it is still shown.
func (s *Session) ClearFeedback(seq uint64) {
	s.judge.ClearFeedback(seq)
}

// Snapshot returns a copy of the observable state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:       s.state,
		Epoch:       s.epoch,
		Mode:        s.cfg.Mode,
		Now:         s.now,
		Score:       s.judge.Score(),
		Combo:       s.judge.Combo(),
		MaxCombo:    s.judge.MaxCombo(),
		Counts:      s.judge.Counts(),
		Countdown:   s.countdown,
		Feedback:    s.judge.Feedback(),
		BeatSeconds: BeatSeconds(s.cfg.BPM),
		Err:         s.err,
	}
	if s.projector != nil && s.state == StateRunning {
		snap.Anchor = s.projector.Anchor()
		snap.PageSeconds = s.projector.PageSeconds()
	}
	if len(s.instances) > 0 {
		snap.Instances = make([]NoteInstance, len(s.instances))
		for i, inst := range s.instances {
			snap.Instances[i] = *inst
		}
	}
	return snap
}

// nextDeadline is the time until the next beat boundary or the next sweep
// deadline, whichever comes first.
func (s *Session) nextDeadline(now float64) time.Duration {
	beat := BeatSeconds(s.cfg.BPM)
	next := s.start + (math.Floor((now-s.start)/beat)+1)*beat
	for _, inst := range s.instances {
		if inst.Status != StatusPending || inst.Note.IsBar() {
			continue
		}
		if d := inst.Due + SweepTolerance; d > now && d < next {
			next = d
		}
		break
	}
	return seconds(max(next-now, 0))
}

func (s *Session) debugf(msg string, kv ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, kv...)
	}
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
