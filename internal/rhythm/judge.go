package rhythm

import "math"

// Timing windows in seconds, measured as |due - now|.
const (
	PerfectWindow  = 0.10
	GoodWindow     = 0.15
	MissWindow     = 0.20
	SweepTolerance = 0.25 // Pending instances older than this are auto-resolved

	// windowEpsilon absorbs float error in now-due so a strike exactly on a
	// window edge lands in the inner tier.
	windowEpsilon = 1e-9
)

// Points per scoring tier.
const (
	PointsPerfect = 5
	PointsGood    = 3
)

// Tier classifies a judgment for counters and feedback.
type Tier string

const (
	TierPerfect     Tier = "perfect"
	TierGood        Tier = "good"
	TierMiss        Tier = "miss"
	TierRest        Tier = "rest"         // Rest passed in silence
	TierRestWarning Tier = "rest_warning" // Rest was struck
)

// Feedback texts shown by the render surface.
var feedbackText = map[Tier]string{
	TierPerfect:     "Perfect +5",
	TierGood:        "Good +3",
	TierMiss:        "Miss",
	TierRest:        "Rest +5",
	TierRestWarning: "Rest! Stay silent",
}

// Counts holds the per-tier counters.
type Counts struct {
	Perfect int
	Good    int
	Miss    int
}

// Judgment describes one resolution of a note instance.
type Judgment struct {
	InstanceID uint64
	Tier       Tier
	Status     Status
	Delta      float64 // now - due; negative when early
	Points     int
	Strike     bool // Resolved by a user interaction rather than the sweep
}

// Feedback is the short-lived, purely observational judgment signal.
type Feedback struct {
	Seq  uint64
	Text string
	Tier Tier
}

// Judge owns score, combo, counters and the scored-id set.
type Judge struct {
	score         int
	combo         int
	maxCombo      int
	counts        Counts
	scored        map[uint64]struct{}
	contributions int

	feedback    *Feedback
	feedbackSeq uint64
}

// NewJudge returns a judge with empty state.
func NewJudge() *Judge {
	return &Judge{scored: make(map[uint64]struct{})}
}

// Score returns the accumulated score.
func (j *Judge) Score() int { return j.score }

// Combo returns the number of consecutive scoring judgments since the last miss.
func (j *Judge) Combo() int { return j.combo }

// MaxCombo returns the best combo of the session.
func (j *Judge) MaxCombo() int { return j.maxCombo }

// Counts returns the per-tier counters.
func (j *Judge) Counts() Counts { return j.counts }

// ScoredCount returns the size of the scored-id set.
func (j *Judge) ScoredCount() int { return len(j.scored) }

// Contributions returns how many times score was increased.
func (j *Judge) Contributions() int { return j.contributions }

// Feedback returns the current feedback, or nil.
func (j *Judge) Feedback() *Feedback {
	if j.feedback == nil {
		return nil
	}
	fb := *j.feedback
	return &fb
}

// ClearFeedback drops the feedback if it is still the one identified by seq.
func (j *Judge) ClearFeedback(seq uint64) {
	if j.feedback != nil && j.feedback.Seq == seq {
		j.feedback = nil
	}
}

// Sweep resolves every pending playable instance whose due time is more than
// SweepTolerance behind now. Rests become matched_perfect and score once;
// notes become misses. Bar sentinels are never judged.
func (j *Judge) Sweep(instances []*NoteInstance, now float64) []Judgment {
	var out []Judgment
	for _, inst := range instances {
		if inst.Status != StatusPending || inst.Note.IsBar() || now <= inst.Due+SweepTolerance {
			continue
		}
		if inst.Note.Rest {
			if !inst.resolve(StatusMatchedPerfect) {
				continue
			}
			jd := Judgment{InstanceID: inst.ID, Tier: TierRest, Status: inst.Status, Delta: now - inst.Due}
			if j.award(inst.ID, PointsPerfect) {
				j.counts.Perfect++
				jd.Points = PointsPerfect
				j.setFeedback(TierRest)
			}
			out = append(out, jd)
			continue
		}
		if inst.resolve(StatusMiss) {
			j.miss()
			out = append(out, Judgment{InstanceID: inst.ID, Tier: TierMiss, Status: inst.Status, Delta: now - inst.Due})
		}
	}
	return out
}

// Interact judges one user strike at now against the nearest pending
// playable instance. It returns false when the strike changed nothing.
func (j *Judge) Interact(instances []*NoteInstance, now float64) (Judgment, bool) {
	target := nearestPending(instances, now)
	if target == nil {
		return Judgment{}, false
	}

	delta := now - target.Due
	d := math.Abs(delta)
	jd := Judgment{InstanceID: target.ID, Delta: delta, Strike: true}

	if target.Note.Rest {
		if d >= GoodWindow-windowEpsilon || !target.resolve(StatusMiss) {
			return Judgment{}, false
		}
		j.miss()
		j.setFeedback(TierRestWarning)
		jd.Tier, jd.Status = TierRestWarning, target.Status
		return jd, true
	}

	switch {
	case within(d, PerfectWindow):
		jd.Tier, jd.Points = TierPerfect, PointsPerfect
		target.resolve(StatusMatchedPerfect)
		j.counts.Perfect++
	case within(d, GoodWindow):
		jd.Tier, jd.Points = TierGood, PointsGood
		target.resolve(StatusMatchedGood)
		j.counts.Good++
	case within(d, MissWindow):
		jd.Tier = TierMiss
		target.resolve(StatusMiss)
		j.miss()
	default:
		return Judgment{}, false
	}

	if jd.Points > 0 && !j.award(target.ID, jd.Points) {
		jd.Points = 0
	}
	jd.Status = target.Status
	j.setFeedback(jd.Tier)
	return jd, true
}

// award credits points for id once. Every credit extends the combo.
func (j *Judge) award(id uint64, points int) bool {
	if _, ok := j.scored[id]; ok {
		return false
	}
	j.scored[id] = struct{}{}
	j.score += points
	j.contributions++
	j.combo++
	if j.combo > j.maxCombo {
		j.maxCombo = j.combo
	}
	return true
}

func (j *Judge) miss() {
	j.combo = 0
	j.counts.Miss++
}

func (j *Judge) setFeedback(t Tier) {
	j.feedbackSeq++
	j.feedback = &Feedback{Seq: j.feedbackSeq, Text: feedbackText[t], Tier: t}
}

// nearestPending returns the pending playable instance closest to now.
// Instances are ordered by due time, so the scan stops once the distance
// starts growing again.
func nearestPending(instances []*NoteInstance, now float64) *NoteInstance {
	var best *NoteInstance
	bestD := math.Inf(1)
	for _, inst := range instances {
		if inst.Status != StatusPending || inst.Note.IsBar() {
			continue
		}
		d := math.Abs(inst.Due - now)
		if d < bestD {
			best, bestD = inst, d
		} else if best != nil && inst.Due > now {
			break
		}
	}
	return best
}

// within reports whether d lies inside a closed timing window.
func within(d, window float64) bool {
	return d <= window+windowEpsilon
}
