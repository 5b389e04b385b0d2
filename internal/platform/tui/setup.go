package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/registry"
	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

// Setting rows of the setup screen.
const (
	rowPreset = iota
	rowGenerator
	rowTempo
	rowMeter
	rowMode
	rowRests
	rowMetronome
	rowCount
)

const tempoStep = 5

var (
	meterChoices = []string{"3/4", "4/4", "6/8"}
	modeChoices  = []string{string(rhythm.ModeStatic), string(rhythm.ModeScrolling)}

	setupTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	setupRowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	setupCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	setupHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Setup holds the settings edited before a session starts.
type Setup struct {
	cfg        config.TrainerConfig
	preset     config.Preset
	generators []registry.Info
	cursor     int
}

// NewSetup creates a setup screen over cfg. The preset is custom so the
// loaded settings are kept until the user picks another one.
func NewSetup(cfg config.TrainerConfig) Setup {
	return Setup{
		cfg:        cfg,
		preset:     config.PresetCustom,
		generators: registry.List(),
	}
}

// Config returns the edited configuration.
func (s Setup) Config() config.TrainerConfig {
	return s.cfg
}

// Cursor returns the selected row.
func (s Setup) Cursor() int {
	return s.cursor
}

// Move selects the previous (delta < 0) or next row.
func (s *Setup) Move(delta int) {
	s.cursor = (s.cursor + delta + rowCount) % rowCount
}

// Adjust changes the selected setting by one step.
func (s *Setup) Adjust(delta int) {
	switch s.cursor {
	case rowPreset:
		i := slices.Index(config.Presets, s.preset)
		s.preset = config.Presets[cycle(i, delta, len(config.Presets))]
		config.ApplyPreset(&s.cfg, s.preset)

	case rowGenerator:
		if len(s.generators) == 0 {
			return
		}
		i := slices.IndexFunc(s.generators, func(g registry.Info) bool { return g.ID == s.cfg.Session.Generator })
		s.cfg.Session.Generator = s.generators[cycle(i, delta, len(s.generators))].ID

	case rowTempo:
		bpm := s.cfg.Session.BPM + delta*tempoStep
		s.cfg.Session.BPM = core.Clamp(bpm, rhythm.MinBPM, rhythm.MaxBPM)
		s.preset = config.PresetCustom

	case rowMeter:
		i := slices.Index(meterChoices, s.cfg.Session.Meter)
		s.cfg.Session.Meter = meterChoices[cycle(i, delta, len(meterChoices))]

	case rowMode:
		i := slices.Index(modeChoices, s.cfg.Display.Mode)
		s.cfg.Display.Mode = modeChoices[cycle(i, delta, len(modeChoices))]

	case rowRests:
		s.cfg.Session.IncludeRests = !s.cfg.Session.IncludeRests
		s.preset = config.PresetCustom

	case rowMetronome:
		s.cfg.Audio.Metronome = !s.cfg.Audio.Metronome
	}
}

// cycle steps i by delta around n entries. An unknown index (-1) starts
// from the first entry.
func cycle(i, delta, n int) int {
	if i < 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

// rows returns the label and current value of every setting.
func (s Setup) rows() [rowCount][2]string {
	return [rowCount][2]string{
		{"Preset", string(s.preset)},
		{"Pattern", s.generatorTitle()},
		{"Tempo", fmt.Sprintf("%d bpm", s.cfg.Session.BPM)},
		{"Meter", s.cfg.Session.Meter},
		{"Mode", s.cfg.Display.Mode},
		{"Rests", onOff(s.cfg.Session.IncludeRests)},
		{"Metronome", onOff(s.cfg.Audio.Metronome)},
	}
}

func (s Setup) generatorTitle() string {
	for _, g := range s.generators {
		if g.ID == s.cfg.Session.Generator {
			return g.Title
		}
	}
	return s.cfg.Session.Generator
}

// View renders the settings list centered in width.
func (s Setup) View(width int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(setupTitleStyle.Render(centerText("  R H Y T H M  ", width)))
	b.WriteString("\n\n")
	b.WriteString(setupHintStyle.Render(centerText("Figures: "+strings.Join(s.cfg.Session.Figures, ", "), width)))
	b.WriteString("\n\n")

	for i, row := range s.rows() {
		line := fmt.Sprintf("%-10s < %-16s >", row[0], row[1])
		if i == s.cursor {
			b.WriteString(centerText(setupCurStyle.Render(line), width))
		} else {
			b.WriteString(centerText(setupRowStyle.Render(line), width))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
