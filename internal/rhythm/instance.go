package rhythm

// Status is the judgment state of a note instance.
type Status string

const (
	StatusPending        Status = "pending"
	StatusHit            Status = "hit" // Reserved for renderers; the judge never produces it
	StatusMiss           Status = "miss"
	StatusMatchedPerfect Status = "matched_perfect"
	StatusMatchedGood    Status = "matched_good"
)

// Terminal reports whether the status can no longer change.
func (s Status) Terminal() bool {
	return s != StatusPending
}

// Scored reports whether the status counts as a successful judgment.
func (s Status) Scored() bool {
	return s == StatusMatchedPerfect || s == StatusMatchedGood || s == StatusHit
}

// NoteInstance is a RhythmNote placed on the audio-clock timeline.
type NoteInstance struct {
	ID      uint64
	Note    RhythmNote
	Due     float64 // Audio-clock seconds at which the note should be struck
	Measure int     // 1-based index of the generated measure it belongs to
	Status  Status

	// Projection output, rewritten every tick.
	X       float64 // Scroll-mode render position in pixels
	Visible bool
}

// resolve moves a pending instance into a terminal status. It returns false
// and leaves the instance untouched if a terminal status was already set.
func (n *NoteInstance) resolve(s Status) bool {
	if n.Status.Terminal() || !s.Terminal() {
		return false
	}
	n.Status = s
	return true
}
