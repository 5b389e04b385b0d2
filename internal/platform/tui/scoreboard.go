package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show meter sidebar
	sidebarWidth       = 22  // Width of meter sidebar
	maxScores          = 100 // Max results to load
	columnGap          = 2   // Cell padding bubbles/table adds per column
)

var (
	boardTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	boardFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle    = boardActiveStyle.Background(lipgloss.Color("57")).Padding(0, 1)
	boardEmptyStyle  = boardDimStyle.Italic(true).Padding(2, 4)
)

// scoreboardTab is one meter filter. An empty meter shows every result.
type scoreboardTab struct {
	Meter string
	Title string
}

var scoreboardTabs = []scoreboardTab{
	{Meter: "", Title: "All meters"},
	{Meter: "3/4", Title: "3/4"},
	{Meter: "4/4", Title: "4/4"},
	{Meter: "6/8", Title: "6/8"},
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevTab, k.NextTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevTab, k.NextTab},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("→/tab", "next meter"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("←/S-tab", "prev meter"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the results screen.
type ScoreboardModel struct {
	tabs      []scoreboardTab
	tabCursor int
	store     *storage.Store
	results   []storage.ResultEntry
	stats     map[string]*storage.MeterStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap

	width, height int
	showSidebar   bool
	showMode      bool // The table is wide enough for the mode column
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		tabs:   scoreboardTabs,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	if store != nil {
		if stats, err := store.Stats(); err == nil {
			m.stats = stats
		}
	}
	m.layout()
	m.reload()
	return m
}

func (m *ScoreboardModel) meter() string {
	return m.tabs[m.tabCursor].Meter
}

// layout rebuilds the table for the current size and tab.
func (m *ScoreboardModel) layout() {
	m.showSidebar = m.width >= minWidthForSidebar

	avail := m.width - 4
	if m.showSidebar {
		avail -= sidebarWidth + 3
	}

	var cols []table.Column
	cols, m.showMode = resultColumns(m.meter() == "", avail)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	m.table = table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
		table.WithStyles(styles),
	)
	m.fillRows()
}

// resultColumns lists the table columns. The mode column is dropped when the
// columns would not fit in avail cells.
func resultColumns(withMeter bool, avail int) ([]table.Column, bool) {
	lead := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Acc", Width: 5},
		{Title: "Combo", Width: 6},
		{Title: "Tempo", Width: 8},
	}
	mode := table.Column{Title: "Mode", Width: 10}
	tail := []table.Column{{Title: "Date", Width: 12}}
	if withMeter {
		tail = append(tail, table.Column{Title: "Meter", Width: 5})
	}

	width := mode.Width + columnGap
	for _, c := range append(lead, tail...) {
		width += c.Width + columnGap
	}

	cols := lead
	withMode := width <= avail
	if withMode {
		cols = append(cols, mode)
	}
	return append(cols, tail...), withMode
}

// resultRow formats one result in the column order of resultColumns.
func resultRow(rank int, r storage.ResultEntry, withMode, withMeter bool) table.Row {
	row := table.Row{
		"#" + strconv.Itoa(rank),
		strconv.Itoa(r.Score),
		fmt.Sprintf("%.0f%%", r.Accuracy()*100),
		strconv.Itoa(r.MaxCombo),
		fmt.Sprintf("%d bpm", r.BPM),
	}
	if withMode {
		row = append(row, r.Mode)
	}
	row = append(row, r.CreatedAt.Format("Jan 02 15:04"))
	if withMeter {
		row = append(row, r.Meter)
	}
	return row
}

// reload queries the best results for the selected meter.
func (m *ScoreboardModel) reload() {
	m.results = nil
	if m.store != nil {
		if results, err := m.store.TopResults(m.meter(), maxScores); err == nil {
			m.results = results
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = resultRow(i+1, r, m.showMode, m.meter() == "")
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// selectTab switches the meter filter, wrapping at both ends.
func (m *ScoreboardModel) selectTab(i int) {
	m.tabCursor = (i + len(m.tabs)) % len(m.tabs)
	m.layout()
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			m.selectTab(m.tabCursor + 1)
			return m, nil
		case key.Matches(msg, m.keys.PrevTab):
			m.selectTab(m.tabCursor - 1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "RESULTS - " + m.tabs[m.tabCursor].Title
	body := boardFrameStyle.Render(m.tableView())
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), "  ", body)
	} else {
		body = centerText(m.tabsView(), m.width) + "\n\n" + centerText(body, m.width)
	}

	return boardTitleStyle.Render(centerText(title, m.width)) + "\n\n" +
		body + "\n" +
		boardDimStyle.Render(m.help.View(m.keys))
}

// sidebarView lists the meters with their run count and best score.
func (m ScoreboardModel) sidebarView() string {
	var sb strings.Builder
	sb.WriteString("Meters\n")
	sb.WriteString(strings.Repeat("─", sidebarWidth-4))
	sb.WriteString("\n")

	for i, tab := range m.tabs {
		if i == m.tabCursor {
			sb.WriteString(boardActiveStyle.Render("> " + tab.Title))
		} else {
			sb.WriteString("  " + tab.Title)
		}
		sb.WriteString("\n")
		if st, ok := m.stats[tab.Meter]; ok {
			sb.WriteString(boardDimStyle.Render(fmt.Sprintf("    %d runs, best %d", st.Sessions, st.BestScore)))
			sb.WriteString("\n")
		}
	}

	return boardFrameStyle.Width(sidebarWidth).Render(sb.String())
}

// tabsView renders the meter tabs, or just the current one between arrows
// when they do not fit.
func (m ScoreboardModel) tabsView() string {
	tabs := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.tabCursor {
			tabs[i] = boardTabStyle.Render(tab.Title)
		} else {
			tabs[i] = boardDimStyle.Render(" " + tab.Title + " ")
		}
	}

	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = "< " + m.tabs[m.tabCursor].Title + " >"
	}
	return line
}

func (m ScoreboardModel) tableView() string {
	if len(m.results) == 0 {
		return boardEmptyStyle.Render("No results recorded yet.\nFinish a session to set a score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the results screen. It reports whether the user asked
// to go back rather than quit.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(ScoreboardModel); ok {
		return m.IsGoingBack(), nil
	}
	return false, nil
}
