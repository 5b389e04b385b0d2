// Package tui provides the Bubble Tea integration for the rhythm trainer.
// It handles the terminal UI loop, input mapping, and session orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// feedbackDuration is how long a judgment message stays on screen.
const feedbackDuration = 500 * time.Millisecond

// TickMsg is sent to trigger a session tick. Epoch identifies the run that
// armed it; ticks from an earlier run are dropped and not re-armed.
type TickMsg struct {
	Epoch uint64
	Time  time.Time
}

// clearFeedbackMsg asks to hide the feedback with the given sequence number.
type clearFeedbackMsg struct {
	Epoch uint64
	Seq   uint64
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(epoch uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Epoch: epoch, Time: t}
	})
}

// clearFeedbackCmd hides feedback seq after feedbackDuration.
func clearFeedbackCmd(epoch, seq uint64) tea.Cmd {
	return tea.Tick(feedbackDuration, func(time.Time) tea.Msg {
		return clearFeedbackMsg{Epoch: epoch, Seq: seq}
	})
}

// nextInterval picks the frame interval unless the session expects a change
// sooner.
func nextInterval(frame, hint time.Duration) time.Duration {
	if hint > 0 && hint < frame {
		return hint
	}
	return frame
}
