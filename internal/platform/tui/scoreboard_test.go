package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

func TestScoreboardTabs(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	for _, r := range []storage.ResultEntry{
		{Generator: "random", BPM: 60, Meter: "4/4", Mode: "static", Score: 40, Perfect: 8},
		{Generator: "random", BPM: 80, Meter: "3/4", Mode: "scrolling", Score: 25, Perfect: 5},
		{Generator: "steady", BPM: 60, Meter: "4/4", Mode: "static", Score: 10, Perfect: 2},
	} {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	if len(m.results) != 3 {
		t.Fatalf("All meters tab should show 3 results, got %d", len(m.results))
	}
	if !strings.Contains(m.View(), "RESULTS - All meters") {
		t.Error("Title should name the tab")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.tabs[m.tabCursor].Meter != "3/4" || len(m.results) != 1 {
		t.Errorf("3/4 tab: meter %q, %d results", m.tabs[m.tabCursor].Meter, len(m.results))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.tabs[m.tabCursor].Meter != "6/8" || len(m.results) != 0 {
		t.Errorf("Expected wrap to empty 6/8 tab, got %q with %d", m.tabs[m.tabCursor].Meter, len(m.results))
	}
	if !strings.Contains(m.View(), "No results recorded yet") {
		t.Error("Empty tab should show the empty message")
	}
}

func TestScoreboardNarrow(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if m.showSidebar || m.showMode {
		t.Error("Narrow scoreboard should hide the sidebar and mode column")
	}
	if !strings.Contains(m.View(), "No results recorded yet") {
		t.Error("Scoreboard without store should be empty")
	}
}

func TestScoreboardBack(t *testing.T) {
	m := NewScoreboardModel(nil, 100, 30)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() || cmd == nil {
		t.Error("Esc should go back")
	}
}

func TestResultColumns(t *testing.T) {
	cols, withMode := resultColumns(false, 200)
	if !withMode || len(cols) != 7 || cols[5].Title != "Mode" || cols[6].Title != "Date" {
		t.Errorf("Wide single meter: got %d columns, mode=%v", len(cols), withMode)
	}

	cols, withMode = resultColumns(true, 200)
	if len(cols) != 8 || cols[7].Title != "Meter" {
		t.Errorf("All meters should end with the meter column, got %d", len(cols))
	}

	cols, withMode = resultColumns(true, 60)
	if withMode || len(cols) != 7 {
		t.Errorf("Narrow table should drop mode, got %d columns, mode=%v", len(cols), withMode)
	}
	for _, c := range cols {
		if c.Title == "Mode" {
			t.Error("Mode column present although dropped")
		}
	}
}

func TestResultRow(t *testing.T) {
	r := storage.ResultEntry{Score: 42, BPM: 90, Meter: "3/4", Mode: "static", Perfect: 3, Miss: 1, MaxCombo: 3}

	row := resultRow(2, r, true, true)
	want := []string{"#2", "42", "75%", "3", "90 bpm", "static"}
	for i, w := range want {
		if row[i] != w {
			t.Errorf("Cell %d = %q, expected %q", i, row[i], w)
		}
	}
	if len(row) != 8 || row[7] != "3/4" {
		t.Errorf("Expected 8 cells ending in the meter, got %v", row)
	}

	if row := resultRow(1, r, false, false); len(row) != 6 {
		t.Errorf("Expected 6 cells without mode and meter, got %d", len(row))
	}
}
