// Package midiexport writes generated rhythm patterns to Standard MIDI Files
// so they can be practised along with a DAW or printed with notation tools.
package midiexport

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

// File layout.
const (
	TicksPerQuarter = 960
	Channel         = 9  // General MIDI percussion
	Key             = 37 // Side stick
	Velocity        = 100
	AccentVelocity  = 120 // First note on a downbeat
)

// ErrNoMeasures is returned when fewer than one measure is requested.
var ErrNoMeasures = errors.New("midiexport: at least one measure required")

// Build renders measures generated by gen into a two-track file: a tempo
// track and a percussion track. Rests only advance time.
func Build(gen rhythm.Generator, cfg rhythm.Config, measures int) (*smf.SMF, error) {
	if measures <= 0 {
		return nil, ErrNoMeasures
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("midiexport: %w", err)
	}
	cfg = cfg.Normalize()
	// Gaps are a display concern; the file holds only played measures.
	cfg.Mode = rhythm.ModeScrolling

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	// Track 0: tempo and meter. Beats are quarter-note beats at the session
	// tempo, so the numerator is written over a quarter unit.
	var tempo smf.Track
	tempo.Add(0, smf.MetaTrackSequenceName("Tempo"))
	tempo.Add(0, smf.MetaMeter(uint8(cfg.Meter.BeatsPerMeasure()), 4)) //nolint:gosec // supported meters have small numerators
	tempo.Add(0, smf.MetaTempo(float64(cfg.BPM)))
	tempo.Close(0)
	if err := sm.Add(tempo); err != nil {
		return nil, fmt.Errorf("midiexport: adding tempo track: %w", err)
	}

	// Track 1: one hit per played note.
	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName("Rhythm"))

	var (
		cursor   uint32 // Absolute tick of the last event
		end      uint32 // Absolute tick of the last bar line
		downbeat = true // The next instance opens a measure
	)
	for _, inst := range collect(gen, cfg, measures) {
		if inst.Note.IsBar() {
			end = toTicks(inst.Due, cfg.BPM)
			downbeat = true
			continue
		}
		accent := downbeat
		downbeat = false
		if inst.Note.Rest {
			continue
		}

		on := toTicks(inst.Due, cfg.BPM)
		length := uint32(math.Round(inst.Note.Value * TicksPerQuarter))

		vel := uint8(Velocity)
		if accent {
			vel = AccentVelocity
		}
		track.Add(on-cursor, midi.NoteOn(Channel, Key, vel))
		track.Add(length, midi.NoteOff(Channel, Key))
		cursor = on + length
	}

	track.Close(end - min(cursor, end))
	if err := sm.Add(track); err != nil {
		return nil, fmt.Errorf("midiexport: adding rhythm track: %w", err)
	}

	return sm, nil
}

// Write builds the file and saves it to path.
func Write(path string, gen rhythm.Generator, cfg rhythm.Config, measures int) error {
	sm, err := Build(gen, cfg, measures)
	if err != nil {
		return err
	}
	if err := sm.WriteFile(path); err != nil {
		return fmt.Errorf("midiexport: writing %s: %w", path, err)
	}
	return nil
}

// WriteTo builds the file and writes it to w.
func WriteTo(w io.Writer, gen rhythm.Generator, cfg rhythm.Config, measures int) error {
	sm, err := Build(gen, cfg, measures)
	if err != nil {
		return err
	}
	if _, err := sm.WriteTo(w); err != nil {
		return fmt.Errorf("midiexport: %w", err)
	}
	return nil
}

// collect runs a scheduler from time zero until the requested measures are
// fully instantiated.
func collect(gen rhythm.Generator, cfg rhythm.Config, measures int) []*rhythm.NoteInstance {
	sched := rhythm.NewScheduler(cfg, gen, 0, nil)

	var out []*rhythm.NoteInstance
	for now := 0.0; sched.Measures() <= measures; now += rhythm.PreloadSeconds {
		for _, inst := range sched.Advance(now) {
			if inst.Measure <= measures {
				out = append(out, inst)
			}
		}
	}
	return out
}

func toTicks(due float64, bpm int) uint32 {
	return uint32(math.Round(due / rhythm.BeatSeconds(bpm) * TicksPerQuarter))
}
