package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeDelay
	ModeSound
	ModeImage
	ModeChoose
	ModeMenu
	ModeQuitConfirm
)

// String returns the mode name shown in the status bar
func (m Mode) String() string {
	switch m {
	case ModeDelay:
		return "delay"
	case ModeSound:
		return "sound"
	case ModeImage:
		return "image"
	case ModeChoose:
		return "choose"
	case ModeMenu:
		return "menu"
	case ModeQuitConfirm:
		return "quit"
	default:
		return "normal"
	}
}

// IsText reports whether the mode edits the shared text input
func (m Mode) IsText() bool {
	switch m {
	case ModeDelay, ModeSound, ModeImage, ModeChoose:
		return true
	default:
		return false
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	CurrentFrame() int
	FrameCount() int
	HasSelection() bool
	SelectedCount() int
	MenuSize() int
	Dirty() bool
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
