package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"loopedit/internal/editor"
	"loopedit/internal/ui/input/types"
)

type NormalMode struct {
	keys KeyMap
}

func NewNormalMode(keys KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		if msg.Type == tea.KeyCtrlC {
			return []types.Action{types.QuitAction{Force: true}}, true
		}
		if ctx.Dirty() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeQuitConfirm}}, true
		}
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, k.ExtendLeft):
		return []types.Action{types.MoveCursorAction{Delta: -1, Extend: true}}, true
	case key.Matches(msg, k.ExtendRight):
		return []types.Action{types.MoveCursorAction{Delta: 1, Extend: true}}, true
	case key.Matches(msg, k.Left):
		return []types.Action{types.MoveCursorAction{Delta: -1}}, true
	case key.Matches(msg, k.Right):
		return []types.Action{types.MoveCursorAction{Delta: 1}}, true
	case key.Matches(msg, k.Home):
		return []types.Action{types.JumpAction{}}, true
	case key.Matches(msg, k.End):
		return []types.Action{types.JumpAction{End: true}}, true
	case key.Matches(msg, k.PrevLoop):
		return []types.Action{types.SwitchLoopAction{Delta: -1}}, true
	case key.Matches(msg, k.NextLoop):
		return []types.Action{types.SwitchLoopAction{Delta: 1}}, true

	case key.Matches(msg, k.Toggle):
		return []types.Action{types.ToggleSelectAction{}}, true
	case key.Matches(msg, k.SelectAll):
		return []types.Action{types.SelectAllAction{}}, true
	case key.Matches(msg, k.Clear):
		return []types.Action{types.ClearSelectionAction{}}, true

	case key.Matches(msg, k.Delete):
		if !ctx.HasSelection() {
			return nil, false
		}
		return []types.Action{types.EditorCommandAction{ID: editor.MenuDeleteFrame}}, true
	case key.Matches(msg, k.InsertAfter):
		return []types.Action{types.EditorCommandAction{ID: editor.MenuInsertAfter}}, true
	case key.Matches(msg, k.InsertBefore):
		return []types.Action{types.EditorCommandAction{ID: editor.MenuInsertBefore}}, true
	case key.Matches(msg, k.Append):
		return []types.Action{types.AppendFrameAction{}}, true
	case key.Matches(msg, k.Flip):
		return []types.Action{types.EditorCommandAction{ID: editor.MenuFlipFrame}}, true
	case key.Matches(msg, k.FlipAll):
		return []types.Action{types.EditorCommandAction{ID: editor.MenuFlipAll}}, true
	case key.Matches(msg, k.Copy):
		return []types.Action{types.EditorCommandAction{ID: editor.MenuCopyLoop}}, true
	case key.Matches(msg, k.Cut):
		return []types.Action{types.EditorCommandAction{ID: editor.MenuCutLoop}}, true
	case key.Matches(msg, k.Paste):
		return []types.Action{types.EditorCommandAction{ID: editor.MenuPasteOverLoop}}, true
	case key.Matches(msg, k.PasteFlipped):
		return []types.Action{types.EditorCommandAction{ID: editor.MenuPasteOverFlipped}}, true
	case key.Matches(msg, k.Import):
		return []types.Action{types.EditorCommandAction{ID: editor.MenuQuickImport}}, true
	case key.Matches(msg, k.ImportAll):
		return []types.Action{types.EditorCommandAction{ID: editor.MenuQuickImportReplace}}, true

	case key.Matches(msg, k.Choose):
		if ctx.CurrentFrame() < 0 {
			return nil, false
		}
		return []types.Action{types.ChooseImageAction{}}, true
	case key.Matches(msg, k.Image):
		return m.prompt(types.ModeImage, ctx)
	case key.Matches(msg, k.Delay):
		return m.prompt(types.ModeDelay, ctx)
	case key.Matches(msg, k.Sound):
		return m.prompt(types.ModeSound, ctx)

	case key.Matches(msg, k.RunNext):
		return []types.Action{types.ToggleRunNextAction{}}, true
	case key.Matches(msg, k.ZoomIn):
		return []types.Action{types.ZoomAction{Delta: 0.25}}, true
	case key.Matches(msg, k.ZoomOut):
		return []types.Action{types.ZoomAction{Delta: -0.25}}, true
	case key.Matches(msg, k.Menu):
		return []types.Action{types.OpenMenuAction{}}, true
	case key.Matches(msg, k.Save):
		return []types.Action{types.SaveAction{}}, true
	case key.Matches(msg, k.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	return nil, false
}

// prompt opens a property prompt for the selected frames
func (m *NormalMode) prompt(mode types.Mode, ctx types.Context) ([]types.Action, bool) {
	if !ctx.HasSelection() {
		return nil, false
	}
	return []types.Action{types.ChangeModeAction{Mode: mode}}, true
}
