package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"loopedit/internal/ui/input/types"
)

// MenuMode navigates an open context menu
type MenuMode struct{}

func NewMenuMode() *MenuMode {
	return &MenuMode{}
}

func (m *MenuMode) Name() string {
	return "menu"
}

func (m *MenuMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *MenuMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *MenuMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "q", "m":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "up", "k", "shift+tab":
		return []types.Action{types.MenuMoveAction{Delta: -1}}, true
	case "down", "j", "tab":
		return []types.Action{types.MenuMoveAction{Delta: 1}}, true
	case "enter", " ":
		// Invoke before leaving the mode so the menu is still open
		return []types.Action{
			types.MenuInvokeAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	return nil, true
}
