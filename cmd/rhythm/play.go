package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rhythm/internal/audio"
	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/platform/tui"
	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

var (
	playFlags         sessionFlags
	flagNoMetronome   bool
	flagNoSound       bool
	flagSilent        bool
	flagNow           bool
	flagScreenshotDir string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	Long: `Open the setup screen and practise reading rhythms.

Controls:
  Space/J/F/Click - Strike
  Enter           - Start session
  Esc/S           - Stop session
  R               - Restart (after a session)
  Arrows/HJKL     - Change settings
  Ctrl+S          - Save a text screenshot
  ?               - Toggle help
  Q/Ctrl+C        - Quit

Settings come from the config file and can be overridden with flags.
Presets:
  easy   - 60 bpm, whole to quarter notes, no rests
  normal - 80 bpm, half to eighth notes, with rests
  hard   - 110 bpm, quarter to sixteenth notes, with rests

Examples:
  rhythm play
  rhythm play --now --bpm 72 --figures quarter,eighth
  rhythm play --preset hard --mode scrolling
  rhythm play --meter 6/8 --rests --generator steady
  rhythm play --silent`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playFlags.register(playCmd)
	playCmd.Flags().BoolVar(&flagNoMetronome, "no-metronome", false, "Disable metronome clicks")
	playCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Disable the strike sound")
	playCmd.Flags().BoolVar(&flagSilent, "silent", false, "Do not open the audio device (wall clock timing)")
	playCmd.Flags().BoolVar(&flagNow, "now", false, "Skip the setup screen and start immediately")
	playCmd.Flags().StringVar(&flagScreenshotDir, "screenshot-dir", "", "Directory for Ctrl+S screenshots")
}

func runPlay(cmd *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := playFlags.load(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagNoMetronome {
		cfg.Audio.Metronome = false
	}
	if flagNoSound || flagSilent {
		cfg.Audio.Sound = false
	}

	// Get terminal size early for the first frame
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	clock, closeClock := openClock(cfg, logger)
	defer closeClock()

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - sessions still work
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	res, err := tui.Run(tui.PlayOptions{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.Display.FPS,
			Seed:     flagSeed,
		},
		Clock:         clock,
		Store:         store,
		Logger:        logger,
		AutoStart:     flagNow,
		ScreenshotDir: flagScreenshotDir,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running trainer: %v\n", err)
		os.Exit(1)
	}

	if res.Judged() {
		fmt.Printf("Score %d  (perfect %d, good %d, miss %d, max combo %d)\n",
			res.Score, res.Counts.Perfect, res.Counts.Good, res.Counts.Miss, res.MaxCombo)
	}
}

// openClock opens the speaker clock, falling back to the wall clock when
// --silent is set or no audio device is available.
func openClock(cfg config.TrainerConfig, logger *log.Logger) (rhythm.Clock, func()) {
	if flagSilent {
		return audio.NewWallClock(), func() {}
	}

	clock := audio.NewSpeakerClock(audio.Options{
		SampleRate:   cfg.Audio.SampleRate,
		StallTimeout: cfg.Audio.StallTimeout,
		Volume:       cfg.Audio.Volume,
		Logger:       logger,
	})
	if err := clock.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: no audio device, running silently: %v\n", err)
		logger.Warn("speaker unavailable", "error", err)
		return audio.NewWallClock(), func() {}
	}
	return clock, clock.Close
}
