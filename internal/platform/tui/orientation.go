package tui

import tea "github.com/charmbracelet/bubbletea"

// altScreen maps session orientation requests onto the terminal alternate
// screen. The session calls it synchronously from Update, so requests are
// queued as commands and handed back to Bubble Tea by drain.
type altScreen struct {
	active  bool
	pending []tea.Cmd
}

// LockLandscape enters the alternate screen.
func (a *altScreen) LockLandscape() error {
	if !a.active {
		a.active = true
		a.pending = append(a.pending, tea.EnterAltScreen)
	}
	return nil
}

// LockPortrait has no terminal equivalent.
func (a *altScreen) LockPortrait() error {
	return nil
}

// Unlock leaves the alternate screen.
func (a *altScreen) Unlock() error {
	if a.active {
		a.active = false
		a.pending = append(a.pending, tea.ExitAltScreen)
	}
	return nil
}

// drain returns the queued commands in order.
func (a *altScreen) drain() tea.Cmd {
	if len(a.pending) == 0 {
		return nil
	}
	cmds := a.pending
	a.pending = nil
	return tea.Sequence(cmds...)
}
