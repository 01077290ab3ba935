package types

// Cursor actions
type MoveCursorAction struct {
	Delta  int
	Extend bool // extend the selection as a range instead of replacing it
}

func (a MoveCursorAction) Type() string { return "move_cursor" }

type JumpAction struct {
	End    bool
	Extend bool
}

func (a JumpAction) Type() string { return "jump" }

type SwitchLoopAction struct {
	Delta int
}

func (a SwitchLoopAction) Type() string { return "switch_loop" }

// Selection actions
type ToggleSelectAction struct{}

func (a ToggleSelectAction) Type() string { return "toggle_select" }

type SelectAllAction struct{}

func (a SelectAllAction) Type() string { return "select_all" }

type ClearSelectionAction struct{}

func (a ClearSelectionAction) Type() string { return "clear_selection" }

// EditorCommandAction runs a loop editor command by its menu ID
type EditorCommandAction struct {
	ID string
}

func (a EditorCommandAction) Type() string { return "editor_command" }

type AppendFrameAction struct{}

func (a AppendFrameAction) Type() string { return "append_frame" }

type ChooseImageAction struct{}

func (a ChooseImageAction) Type() string { return "choose_image" }

type ToggleRunNextAction struct{}

func (a ToggleRunNextAction) Type() string { return "toggle_run_next" }

type ZoomAction struct {
	Delta float64
}

func (a ZoomAction) Type() string { return "zoom" }

type SaveAction struct{}

func (a SaveAction) Type() string { return "save" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type OpenMenuAction struct{}

func (a OpenMenuAction) Type() string { return "open_menu" }

// Menu actions
type MenuMoveAction struct {
	Delta int
}

func (a MenuMoveAction) Type() string { return "menu_move" }

type MenuInvokeAction struct{}

func (a MenuInvokeAction) Type() string { return "menu_invoke" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode
}

func (a CancelTextAction) Type() string { return "cancel_text" }

type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }
