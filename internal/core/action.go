package core

// Action represents a semantic trainer action, abstracted from physical key
// presses and mouse clicks.
type Action int

const (
	ActionNone    Action = iota
	ActionStrike         // Space, J, F, left click - tap the rhythm
	ActionUp             // Up, K - previous setting
	ActionDown           // Down - next setting
	ActionLeft           // Left, H - decrease setting
	ActionRight          // Right, L - increase setting
	ActionConfirm        // Enter - start session
	ActionStop           // Esc, S - stop session
	ActionRestart        // R - restart after a session
	ActionHelp           // ? - toggle full help
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStrike:
		return "Strike"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionStop:
		return "Stop"
	case ActionRestart:
		return "Restart"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
