package modes

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the normal mode bindings. It implements help.KeyMap.
type KeyMap struct {
	Left        key.Binding
	Right       key.Binding
	ExtendLeft  key.Binding
	ExtendRight key.Binding
	Home        key.Binding
	End         key.Binding
	PrevLoop    key.Binding
	NextLoop    key.Binding
	Toggle      key.Binding
	SelectAll   key.Binding
	Clear       key.Binding

	Delete       key.Binding
	InsertAfter  key.Binding
	InsertBefore key.Binding
	Append       key.Binding
	Flip         key.Binding
	FlipAll      key.Binding
	Copy         key.Binding
	Cut          key.Binding
	Paste        key.Binding
	PasteFlipped key.Binding
	Import       key.Binding
	ImportAll    key.Binding

	Image   key.Binding
	Choose  key.Binding
	Delay   key.Binding
	Sound   key.Binding
	RunNext key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Menu    key.Binding
	Save    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev frame")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next frame")),
		ExtendLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("shift+←", "extend left")),
		ExtendRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("shift+→", "extend right")),
		Home:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first frame")),
		End:         key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last frame")),
		PrevLoop:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev loop")),
		NextLoop:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next loop")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle frame")),
		SelectAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		Clear:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),

		Delete:       key.NewBinding(key.WithKeys("delete", "backspace"), key.WithHelp("del", "delete frames")),
		InsertAfter:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "insert after")),
		InsertBefore: key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "insert before")),
		Append:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "append frame")),
		Flip:         key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flip frames")),
		FlipAll:      key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "flip loop")),
		Copy:         key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy loop")),
		Cut:          key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cut loop")),
		Paste:        key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "paste loop")),
		PasteFlipped: key.NewBinding(key.WithKeys("V"), key.WithHelp("V", "paste flipped")),
		Import:       key.NewBinding(key.WithKeys("I"), key.WithHelp("I", "import folder")),
		ImportAll:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "replace from folder")),

		Image:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "set sprite")),
		Choose:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose sprite")),
		Delay:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "set delay")),
		Sound:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "set sound")),
		RunNext: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "toggle run next")),
		ZoomIn:  key.NewBinding(key.WithKeys("ctrl+up", "]"), key.WithHelp("]", "zoom in")),
		ZoomOut: key.NewBinding(key.WithKeys("ctrl+down", "["), key.WithHelp("[", "zoom out")),
		Menu:    key.NewBinding(key.WithKeys("m", "shift+f10"), key.WithHelp("m", "context menu")),
		Save:    key.NewBinding(key.WithKeys("w", "ctrl+s"), key.WithHelp("w", "save")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Toggle, k.Delete, k.Menu, k.Save, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped into columns
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.ExtendLeft, k.ExtendRight, k.Home, k.End, k.PrevLoop, k.NextLoop},
		{k.Toggle, k.SelectAll, k.Clear, k.Delete, k.InsertAfter, k.InsertBefore, k.Append},
		{k.Flip, k.FlipAll, k.Copy, k.Cut, k.Paste, k.PasteFlipped, k.Import, k.ImportAll},
		{k.Image, k.Choose, k.Delay, k.Sound, k.RunNext, k.ZoomIn, k.ZoomOut, k.Menu, k.Save, k.Help, k.Quit},
	}
}
