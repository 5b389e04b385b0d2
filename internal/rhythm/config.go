package rhythm

import "fmt"

// Mode is the visual mode of a session.
type Mode string

const (
	ModeScrolling Mode = "scrolling"
	ModeStatic    Mode = "static"
)

// Tempo bounds accepted at the configuration boundary.
const (
	MinBPM = 40
	MaxBPM = 200
)

// Config is the session configuration surface.
type Config struct {
	BPM          int
	Meter        Meter
	Figures      []Figure
	IncludeRests bool
	Mode         Mode
	Metronome    bool
	Sound        bool
}

// DefaultConfig mirrors the trainer's initial settings.
func DefaultConfig() Config {
	return Config{
		BPM:       60,
		Meter:     Meter44,
		Figures:   []Figure{FigureWhole, FigureHalf, FigureQuarter, FigureEighth},
		Mode:      ModeStatic,
		Metronome: true,
		Sound:     true,
	}
}

// Validate checks tempo, meter and mode. An empty figure set is not an error;
// it is corrected by Normalize.
func (c Config) Validate() error {
	if c.BPM < MinBPM || c.BPM > MaxBPM {
		return fmt.Errorf("%w: got %d", ErrInvalidTempo, c.BPM)
	}
	if !c.Meter.Supported() {
		return fmt.Errorf("%w: %s", ErrInvalidMeter, c.Meter)
	}
	if c.Mode != ModeScrolling && c.Mode != ModeStatic {
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Mode)
	}
	return nil
}

// Normalize returns a copy with a usable figure set.
func (c Config) Normalize() Config {
	c.Figures = NormalizeFigures(c.Figures)
	return c
}

// MeasureSeconds is the measure length at the configured tempo.
func (c Config) MeasureSeconds() float64 {
	return c.Meter.MeasureSeconds(c.BPM)
}

// PixelsPerSecond is the scroll speed, proportional to tempo.
func (c Config) PixelsPerSecond() float64 {
	return 2 * float64(c.BPM)
}
