package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/registry"
)

// sessionFlags are the session overrides shared by play and export.
type sessionFlags struct {
	preset    string
	generator string
	bpm       int
	meter     string
	figures   []string
	rests     bool
	mode      string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", "", "Difficulty preset: easy, normal, hard")
	cmd.Flags().StringVar(&f.generator, "generator", "", "Pattern generator ID (see 'rhythm generators')")
	cmd.Flags().IntVar(&f.bpm, "bpm", 0, "Tempo in beats per minute (40-200)")
	cmd.Flags().StringVar(&f.meter, "meter", "", "Meter: 3/4, 4/4 or 6/8")
	cmd.Flags().StringSliceVar(&f.figures, "figures", nil, "Allowed figures: w,h,q,8,16 or full names")
	cmd.Flags().BoolVar(&f.rests, "rests", false, "Include rests")
	cmd.Flags().StringVar(&f.mode, "mode", "", "Visual mode: static or scrolling")
}

// load reads the trainer config and applies preset, then explicit flags, on
// top of it.
func (f *sessionFlags) load(cmd *cobra.Command) (config.TrainerConfig, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return cfg, err
	}

	if f.preset != "" {
		if !config.IsPreset(f.preset) {
			return cfg, fmt.Errorf("unknown preset %q", f.preset)
		}
		config.ApplyPreset(&cfg, config.Preset(f.preset))
	}

	flags := cmd.Flags()
	if flags.Changed("generator") {
		cfg.Session.Generator = f.generator
	}
	if flags.Changed("bpm") {
		cfg.Session.BPM = f.bpm
	}
	if flags.Changed("meter") {
		cfg.Session.Meter = f.meter
	}
	if flags.Changed("figures") {
		cfg.Session.Figures = f.figures
	}
	if flags.Changed("rests") {
		cfg.Session.IncludeRests = f.rests
	}
	if flags.Changed("mode") {
		cfg.Display.Mode = f.mode
	}
	if cmd.Flags().Changed("fps") {
		cfg.Display.FPS = flagFPS
	}

	if !registry.Exists(cfg.Session.Generator) {
		return cfg, fmt.Errorf("unknown generator %q, run 'rhythm generators' to see available ones", cfg.Session.Generator)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
