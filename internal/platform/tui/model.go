package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/registry"
	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

type phase int

const (
	phaseSetup phase = iota
	phasePlaying
	phaseFinished
)

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	summaryBestStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// PlayOptions configures a PlayModel.
type PlayOptions struct {
	Config  config.TrainerConfig
	Runtime core.RuntimeConfig
	Clock   rhythm.Clock
	Store   *storage.Store // Optional; results are not recorded when nil
	Logger  *log.Logger    // Optional

	// AutoStart skips the setup screen.
	AutoStart bool

	// ScreenshotDir receives ctrl+s captures. Empty means ~/.rhythm/screenshots.
	ScreenshotDir string
}

// PlayModel is the Bubble Tea model for a training session: setup screen,
// live staff, then a summary.
type PlayModel struct {
	opts     PlayOptions
	runtime  core.RuntimeConfig
	interval time.Duration
	keys     PlayKeyMap
	help     help.Model
	setup    Setup
	screen   *core.Screen
	orient   *altScreen

	phase        phase
	gen          *generatorSlot
	session      *rhythm.Session
	active       rhythm.Config
	snap         rhythm.Snapshot
	lastFeedback uint64

	result   rhythm.Result
	abortErr error
	best     int
	newBest  bool
	err      error // Start or storage error shown to the user
	quitting bool
}

// NewPlayModel creates a new play model.
func NewPlayModel(opts PlayOptions) PlayModel {
	rt := opts.Runtime
	if rt.TickRate <= 0 {
		rt.TickRate = opts.Config.Display.FPS
	}
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		def := core.DefaultConfig()
		rt.ScreenW, rt.ScreenH = def.ScreenW, def.ScreenH
	}

	m := PlayModel{
		opts:     opts,
		runtime:  rt,
		interval: time.Second / time.Duration(rt.TickRate),
		keys:     DefaultPlayKeyMap(),
		help:     help.New(),
		setup:    NewSetup(opts.Config),
		screen:   core.NewScreen(rt.ScreenW, max(rt.ScreenH-1, 0)),
		orient:   &altScreen{},
		gen:      &generatorSlot{},
	}
	// One session for the model's lifetime keeps epochs increasing across
	// restarts, so ticks from a finished run never match a later one.
	m.session = rhythm.NewSession(opts.Clock, m.gen,
		rhythm.WithLogger(opts.Logger),
		rhythm.WithOrientation(m.orient),
	)
	return m
}

// generatorSlot lets each run use a freshly seeded generator on the same
// session.
type generatorSlot struct {
	gen rhythm.Generator
}

func (g *generatorSlot) GenerateMeasure(figures []rhythm.Figure, includeRests bool, meter rhythm.Meter) []rhythm.RhythmNote {
	return g.gen.GenerateMeasure(figures, includeRests, meter)
}

// Init starts the session right away when AutoStart is set.
func (m PlayModel) Init() tea.Cmd {
	if m.opts.AutoStart {
		return func() tea.Msg { return startMsg{} }
	}
	return nil
}

// startMsg starts a session from Init, which cannot modify the model.
type startMsg struct{}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.phase == phasePlaying && isStrikeClick(msg) {
			return m.strike()
		}
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case clearFeedbackMsg:
		if m.phase == phasePlaying && msg.Epoch == m.session.Epoch() {
			m.session.ClearFeedback(msg.Seq)
			m.snap = m.session.Snapshot()
		}
		return m, nil

	case startMsg:
		if m.phase == phaseSetup {
			return m.start()
		}
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		return m.quit()
	}
	if action == core.ActionHelp {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.phase {
	case phaseSetup:
		switch action {
		case core.ActionUp:
			m.setup.Move(-1)
		case core.ActionDown:
			m.setup.Move(1)
		case core.ActionLeft:
			m.setup.Adjust(-1)
		case core.ActionRight:
			m.setup.Adjust(1)
		case core.ActionConfirm, core.ActionStrike:
			return m.start()
		}

	case phasePlaying:
		switch action {
		case core.ActionStrike:
			return m.strike()
		case core.ActionStop:
			return m.finish()
		}

	case phaseFinished:
		switch action {
		case core.ActionRestart, core.ActionConfirm:
			return m.start()
		case core.ActionStop:
			m.phase = phaseSetup
			m.err = nil
		}
	}

	return m, nil
}

// start seeds a fresh generator and starts the session from the current
// settings.
func (m PlayModel) start() (PlayModel, tea.Cmd) {
	cfg := m.setup.Config()
	rc, err := cfg.Rhythm()
	if err != nil {
		m.err = err
		return m, nil
	}

	seed := m.runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen, err := registry.Create(cfg.Session.Generator, seed)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.gen.gen = gen
	if err := m.session.Start(rc); err != nil {
		m.err = err
		return m, nil
	}

	m.active = m.session.Config()
	m.snap = m.session.Snapshot()
	m.phase = phasePlaying
	m.lastFeedback = 0
	m.result = rhythm.Result{}
	m.abortErr = nil
	m.best, m.newBest = 0, false
	m.err = nil

	return m, tea.Batch(m.orient.drain(), tickCmd(m.session.Epoch(), m.interval))
}

// handleTick advances the session. Ticks armed by an earlier run are
// dropped without re-arming.
func (m PlayModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if m.phase != phasePlaying || msg.Epoch != m.session.Epoch() {
		return m, nil
	}

	snap, hint := m.session.Step()
	m.snap = snap
	if snap.State != rhythm.StateRunning {
		return m.finish()
	}

	return m, tea.Batch(m.feedbackCmd(), tickCmd(snap.Epoch, nextInterval(m.interval, hint)))
}

// strike judges one interaction at the current clock time.
func (m PlayModel) strike() (PlayModel, tea.Cmd) {
	if _, ok := m.session.Strike(); !ok {
		if m.session.State() != rhythm.StateRunning {
			return m.finish()
		}
		return m, nil
	}
	m.snap = m.session.Snapshot()
	return m, m.feedbackCmd()
}

// feedbackCmd schedules hiding of newly shown feedback.
func (m *PlayModel) feedbackCmd() tea.Cmd {
	fb := m.snap.Feedback
	if fb == nil || fb.Seq == m.lastFeedback {
		return nil
	}
	m.lastFeedback = fb.Seq
	return clearFeedbackCmd(m.snap.Epoch, fb.Seq)
}

// finish stops a running session, or collects the result of one that was
// aborted, and records it.
func (m PlayModel) finish() (PlayModel, tea.Cmd) {
	if m.session.State() == rhythm.StateRunning {
		m.session.Stop()
	}
	m.result = m.session.LastResult()
	m.abortErr = m.session.Err()
	m.phase = phaseFinished
	m.record()
	return m, m.orient.drain()
}

// record saves a judged result and looks up the best score for the meter.
func (m *PlayModel) record() {
	if m.opts.Store == nil || !m.result.Judged() {
		return
	}
	meter := m.active.Meter.String()

	prevBest, err := m.opts.Store.BestScore(meter)
	if err != nil {
		m.warn("could not read best score", err)
	}

	_, err = m.opts.Store.SaveResult(storage.ResultEntry{
		Generator:    m.setup.Config().Session.Generator,
		BPM:          m.active.BPM,
		Meter:        meter,
		Mode:         string(m.active.Mode),
		Score:        m.result.Score,
		Perfect:      m.result.Counts.Perfect,
		Good:         m.result.Counts.Good,
		Miss:         m.result.Counts.Miss,
		MaxCombo:     m.result.MaxCombo,
		DurationSecs: int(m.result.Duration.Seconds()),
	})
	if err != nil {
		m.warn("could not save result", err)
		return
	}

	m.best = max(prevBest, m.result.Score)
	m.newBest = m.result.Score > prevBest
}

func (m *PlayModel) warn(msg string, err error) {
	m.err = err
	if m.opts.Logger != nil {
		m.opts.Logger.Warn(msg, "err", err)
	}
}

// quit stops a running session before leaving.
func (m PlayModel) quit() (PlayModel, tea.Cmd) {
	var cmd tea.Cmd
	if m.phase == phasePlaying {
		m, cmd = m.finish()
	}
	m.quitting = true
	return m, tea.Sequence(cmd, tea.Quit)
}

// saveScreenshot saves the current screen to a file.
func (m *PlayModel) saveScreenshot() {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		dir = filepath.Join(home, ".rhythm", "screenshots")
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	if m.phase == phasePlaying {
		DrawStaff(m.screen, m.snap, m.active)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("rhythm_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, session continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	switch m.phase {
	case phaseSetup:
		b.WriteString(m.setup.View(m.runtime.ScreenW))
		if m.err != nil {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(centerText(m.err.Error(), m.runtime.ScreenW)))
			b.WriteString("\n")
		}
		b.WriteString("\n")

	case phasePlaying:
		DrawStaff(m.screen, m.snap, m.active)
		b.WriteString(RenderScreen(m.screen))
		b.WriteString("\n")

	case phaseFinished:
		b.WriteString(m.summary())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// summary renders the finished-session screen.
func (m PlayModel) summary() string {
	var b strings.Builder
	w := m.runtime.ScreenW
	r := m.result

	title := "Session finished"
	if m.abortErr != nil {
		title = "Session aborted"
	}
	b.WriteString("\n")
	b.WriteString(summaryTitleStyle.Render(centerText(title, w)))
	b.WriteString("\n\n")
	if m.abortErr != nil {
		b.WriteString(errorStyle.Render(centerText(m.abortErr.Error(), w)))
		b.WriteString("\n\n")
	}

	b.WriteString(centerText(fmt.Sprintf("Score %d", r.Score), w))
	b.WriteString("\n")
	if m.newBest {
		b.WriteString(summaryBestStyle.Render(centerText("New best for "+m.active.Meter.String()+"!", w)))
		b.WriteString("\n")
	} else if m.best > 0 {
		b.WriteString(centerText(fmt.Sprintf("Best %d", m.best), w))
		b.WriteString("\n")
	}

	b.WriteString(centerText(fmt.Sprintf("Perfect %d  Good %d  Miss %d  Accuracy %s",
		r.Counts.Perfect, r.Counts.Good, r.Counts.Miss, accuracy(r.Counts)), w))
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Max combo %d  Measures %d  Time %s",
		r.MaxCombo, r.Measures, r.Duration.Round(time.Second)), w))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(centerText(m.err.Error(), w)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(centerText("r: again  esc: settings  q: quit", w)))
	b.WriteString("\n")
	return b.String()
}

func accuracy(c rhythm.Counts) string {
	total := c.Perfect + c.Good + c.Miss
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%d%%", (c.Perfect+c.Good)*100/total)
}

// Result returns the result of the last finished session.
func (m PlayModel) Result() rhythm.Result {
	return m.result
}

// Run starts the Bubble Tea program with the given options and returns the
// result of the last session played.
func Run(opts PlayOptions) (rhythm.Result, error) {
	model := NewPlayModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithMouseCellMotion(), // Left click strikes
	)

	final, err := p.Run()
	if err != nil {
		return rhythm.Result{}, err
	}
	if pm, ok := final.(PlayModel); ok {
		return pm.Result(), nil
	}
	return rhythm.Result{}, nil
}
