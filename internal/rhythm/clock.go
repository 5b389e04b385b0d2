package rhythm

import "errors"

// Sentinel errors returned by the core.
var (
	ErrClockLost     = errors.New("rhythm: audio clock feed lost")
	ErrInvalidTempo  = errors.New("rhythm: tempo must be between 40 and 200 bpm")
	ErrInvalidMeter  = errors.New("rhythm: unsupported meter")
	ErrInvalidMode   = errors.New("rhythm: unknown visual mode")
	ErrNotRunning    = errors.New("rhythm: session is not running")
	ErrNoGenerator   = errors.New("rhythm: no pattern generator")
	ErrNoClockSource = errors.New("rhythm: no clock source")
)

// Clock is the audio-domain time source. Now must be monotonic within one
// session; any error from Now is fatal to the session.
type Clock interface {
	// Start begins the audible pulse and returns the audio time of its first beat.
	Start() (float64, error)
	// Stop silences the pulse. The clock keeps running.
	Stop()
	// Now returns the current audio time in seconds.
	Now() (float64, error)
	SetTempo(bpm int)
	SetMeter(beats, unit int)
	// PlayAccent triggers the short sound played on a successful strike.
	PlayAccent()
}

// Orientation controls the display surface around a session. Terminals map
// landscape/fullscreen to the alternate screen.
type Orientation interface {
	LockLandscape() error
	LockPortrait() error
	Unlock() error
}

// Generator produces one measure of notes terminated by the bar sentinel.
type Generator interface {
	GenerateMeasure(figures []Figure, includeRests bool, meter Meter) []RhythmNote
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(figures []Figure, includeRests bool, meter Meter) []RhythmNote

// GenerateMeasure calls f.
func (f GeneratorFunc) GenerateMeasure(figures []Figure, includeRests bool, meter Meter) []RhythmNote {
	return f(figures, includeRests, meter)
}
