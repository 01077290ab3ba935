package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"loopedit/internal/ui/input/modes"
	"loopedit/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	keys        modes.KeyMap
	textInput   *textinput.Model // Shared text input for text modes
}

func New() *Handler {
	ti := textinput.New()
	ti.CharLimit = 6

	h := &Handler{
		currentMode: types.ModeNormal,
		keys:        modes.DefaultKeyMap(),
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode(h.keys)
	h.modes[types.ModeDelay] = modes.NewTextInputMode(types.ModeDelay, "Delay:", h.textInput)
	h.modes[types.ModeSound] = modes.NewTextInputMode(types.ModeSound, "Sound:", h.textInput)
	h.modes[types.ModeImage] = modes.NewTextInputMode(types.ModeImage, "Sprite:", h.textInput)
	h.modes[types.ModeChoose] = modes.NewTextInputMode(types.ModeChoose, "Choose sprite:", h.textInput)
	h.modes[types.ModeMenu] = modes.NewMenuMode()
	h.modes[types.ModeQuitConfirm] = modes.NewConfirmMode()

	return h
}

// Keys returns the normal mode key bindings
func (h *Handler) Keys() modes.KeyMap {
	return h.keys
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if !consumed && !h.currentMode.IsText() {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}
		allActions = append(allActions, handler.Exit(ctx)...)
		cmd = h.enter(changeMode.Mode, changeMode.Data, ctx, &allActions)
		allActions = append(allActions, action)
	}

	// Unconsumed keys in text modes go to the text input
	if h.currentMode.IsText() && !consumed {
		*h.textInput, cmd = h.textInput.Update(msg)
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

// ChangeMode switches modes outside of key handling, prefilling text modes
// with data
func (h *Handler) ChangeMode(mode types.Mode, data string, ctx types.Context) tea.Cmd {
	if current := h.modes[h.currentMode]; current != nil {
		current.Exit(ctx)
	}
	var ignored []types.Action
	return h.enter(mode, data, ctx, &ignored)
}

func (h *Handler) enter(mode types.Mode, data string, ctx types.Context, actions *[]types.Action) tea.Cmd {
	h.currentMode = mode
	if next := h.modes[mode]; next != nil {
		*actions = append(*actions, next.Enter(ctx)...)
	}
	if !mode.IsText() {
		h.textInput.Blur()
		return nil
	}
	h.textInput.SetValue(data)
	h.textInput.CursorEnd()
	h.textInput.Focus()
	return textinput.Blink
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// Prompt returns the label of the current text mode
func (h *Handler) Prompt() string {
	if tm, ok := h.modes[h.currentMode].(modes.TextInputMode); ok {
		return tm.Prompt()
	}
	return ""
}

func (h *Handler) TextInput() *textinput.Model {
	if h.currentMode.IsText() {
		return h.textInput
	}
	return nil
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode.IsText() {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
