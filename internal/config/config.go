// Package config provides YAML-based trainer configuration loading and
// validation for the rhythm trainer.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

// Frame rate bounds for the render tick.
const (
	MinFPS = 10
	MaxFPS = 240
)

// TrainerConfig contains all configuration for the trainer.
type TrainerConfig struct {
	Session SessionConfig `yaml:"session"`
	Display DisplayConfig `yaml:"display"`
	Audio   AudioConfig   `yaml:"audio"`
}

// SessionConfig defines what is generated and how fast.
type SessionConfig struct {
	BPM          int      `yaml:"bpm"`
	Meter        string   `yaml:"meter"`
	Figures      []string `yaml:"figures"`
	IncludeRests bool     `yaml:"include_rests"`
	Generator    string   `yaml:"generator"`
}

// DisplayConfig defines the visual mode and render cadence.
type DisplayConfig struct {
	Mode string `yaml:"mode"` // "static" or "scrolling"
	FPS  int    `yaml:"fps"`
}

// AudioConfig defines the metronome and clock parameters.
type AudioConfig struct {
	Metronome    bool          `yaml:"metronome"`
	Sound        bool          `yaml:"sound"`
	SampleRate   int           `yaml:"sample_rate"`
	Volume       float64       `yaml:"volume"`
	StallTimeout time.Duration `yaml:"stall_timeout"`
}

// Default returns the hard-coded default configuration.
func Default() TrainerConfig {
	return TrainerConfig{
		Session: SessionConfig{
			BPM:       60,
			Meter:     "4/4",
			Figures:   []string{"whole", "half", "quarter", "eighth"},
			Generator: "random",
		},
		Display: DisplayConfig{
			Mode: string(rhythm.ModeStatic),
			FPS:  60,
		},
		Audio: AudioConfig{
			Metronome:    true,
			Sound:        true,
			SampleRate:   44100,
			Volume:       0.6,
			StallTimeout: 2 * time.Second,
		},
	}
}

// Rhythm converts the configuration into the session configuration.
// An empty figure list is allowed and falls back to quarters.
func (c TrainerConfig) Rhythm() (rhythm.Config, error) {
	figures := make([]rhythm.Figure, 0, len(c.Session.Figures))
	for _, s := range c.Session.Figures {
		f, err := rhythm.ParseFigure(s)
		if err != nil {
			return rhythm.Config{}, fmt.Errorf("config: figures: %w", err)
		}
		figures = append(figures, f)
	}

	return rhythm.Config{
		BPM:          c.Session.BPM,
		Meter:        rhythm.ParseMeter(c.Session.Meter),
		Figures:      figures,
		IncludeRests: c.Session.IncludeRests,
		Mode:         rhythm.Mode(c.Display.Mode),
		Metronome:    c.Audio.Metronome,
		Sound:        c.Audio.Sound,
	}, nil
}

// Validate checks every field and reports all problems at once.
func (c TrainerConfig) Validate() error {
	var errs []error

	rc, err := c.Rhythm()
	if err != nil {
		errs = append(errs, err)
	} else if err := rc.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("config: %w", err))
	}
	if c.Display.FPS < MinFPS || c.Display.FPS > MaxFPS {
		errs = append(errs, fmt.Errorf("config: fps must be between %d and %d, got %d", MinFPS, MaxFPS, c.Display.FPS))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("config: volume must be between 0 and 1, got %v", c.Audio.Volume))
	}
	if c.Audio.SampleRate < 0 {
		errs = append(errs, fmt.Errorf("config: negative sample rate %d", c.Audio.SampleRate))
	}

	return errors.Join(errs...)
}

// TickInterval is the render tick period.
func (c TrainerConfig) TickInterval() time.Duration {
	fps := c.Display.FPS
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
