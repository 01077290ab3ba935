package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"loopedit/internal/clipboard"
	"loopedit/internal/config"
	"loopedit/internal/document"
	"loopedit/internal/domain"
	"loopedit/internal/editor"
	"loopedit/internal/eventbus"
	"loopedit/internal/selection"
	"loopedit/internal/ui/input"
	"loopedit/internal/ui/input/modes"
	inputtypes "loopedit/internal/ui/input/types"
	"loopedit/internal/ui/views"
)

// doubleClickInterval is the longest gap between two clicks on the same
// frame that still counts as a double click
const doubleClickInterval = 400 * time.Millisecond

// Options configures a Model
type Options struct {
	Bus       eventbus.EventBus
	Config    *config.Config
	Documents *document.Service
	Clipboard *clipboard.Service
	Folders   editor.FolderProvider
	View      *domain.View
	Path      string // document path used by save
	Ready     bool   // print the readiness marker for terminal tests
}

type click struct {
	loop  int
	frame int
	at    time.Time
}

// Model represents the UI state
type Model struct {
	bus  eventbus.EventBus
	cfg  *config.Config
	docs *document.Service
	clip *clipboard.Service
	view *domain.View
	path string

	editors []*editor.LoopEditor
	cursors []int // keyboard cursor frame per loop
	current int   // index of the active loop

	chooser  *promptChooser
	choosing *chooseRequest
	menu     *views.MenuState
	menuLoop int

	width     int
	height    int
	help      help.Model
	input     *input.Handler
	renderer  *views.Renderer
	status    string
	statusErr bool
	dirty     bool
	ready     bool
	lastClick click

	unsubscribe []func()

	// Program reference for terminal management
	program *tea.Program
	helpOps *HelpOps
}

// NewModel creates a new UI model with one editor per loop of the view
func NewModel(opts Options) *Model {
	bus := opts.Bus
	if bus == nil {
		bus = eventbus.New()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.New(bus, nil)
	}
	docs := opts.Documents
	if docs == nil {
		docs = document.NewService(bus)
	}
	view := opts.View
	if view == nil {
		view = document.NewView("untitled", 1)
	}

	m := &Model{
		bus:      bus,
		cfg:      cfg,
		docs:     docs,
		clip:     clip,
		view:     view,
		path:     opts.Path,
		chooser:  &promptChooser{},
		help:     help.New(),
		input:    input.New(),
		renderer: views.NewRenderer(nil),
		ready:    opts.Ready,
	}

	for i, l := range view.Loops {
		ed := editor.New(l, editor.Options{
			Bus:               bus,
			Clipboard:         clip,
			Chooser:           m.chooser,
			Folders:           opts.Folders,
			BaseFrameSize:     cfg.Editor.FrameSize,
			Zoom:              cfg.Editor.Zoom,
			MinWidth:          cfg.Editor.FrameSize * 2,
			SecondaryModifier: secondaryModifier(cfg.Editor.SecondaryModifier),
			BroadcastRanges:   !cfg.Editor.HandleRangeSelection,
		})
		ed.SetLastLoop(i == len(view.Loops)-1)
		m.editors = append(m.editors, ed)
		m.cursors = append(m.cursors, domain.NoFrame)
	}

	m.subscribe()
	return m
}

func secondaryModifier(name string) editor.Modifier {
	if name == "alt" {
		return editor.ModAlt
	}
	return editor.ModCtrl
}

func (m *Model) subscribe() {
	markDirty := func(eventbus.DomainEvent) { m.dirty = true }
	m.unsubscribe = append(m.unsubscribe,
		m.bus.Subscribe(eventbus.EventFrameAdded, markDirty),
		m.bus.Subscribe(eventbus.EventFramesDeleted, markDirty),
		m.bus.Subscribe(eventbus.EventLoopChanged, markDirty),
		m.bus.Subscribe(eventbus.EventSelectionChanged, m.onSelectionChanged),
		m.bus.Subscribe(eventbus.EventClipboardChanged, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ClipboardChangedEvent); ok {
				m.setStatus(fmt.Sprintf("Copied %d frame(s)", ev.Frames), false)
			}
		}),
		m.bus.Subscribe(eventbus.EventDocumentSaved, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.DocumentSavedEvent); ok {
				m.dirty = false
				m.setStatus("Saved "+ev.Path, false)
			}
		}),
		m.bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ErrorEvent); ok {
				m.setStatus(ev.Message, true)
			}
		}),
	)
}

// onSelectionChanged moves the keyboard cursor to the frame a selection
// change targeted, and applies broadcast range requests when the editor
// leaves range handling to its host
func (m *Model) onSelectionChanged(e eventbus.DomainEvent) {
	ev, ok := e.(eventbus.SelectionChangedEvent)
	if !ok {
		return
	}
	i := m.editorFor(ev.Loop)
	if i < 0 {
		return
	}
	ed := m.editors[i]

	if ev.Action == selection.AddRange && !ed.Selection().HandleRange() {
		m.applyRange(ed, ev.Frame)
	}
	if ed.Sequence().Valid(ev.Frame) {
		m.cursors[i] = ev.Frame
	} else if ed.Sequence().Count() == 0 {
		m.cursors[i] = domain.NoFrame
	}
}

// applyRange adds every frame between the anchor and target. Frames are
// added from target toward the anchor so the anchor stays put.
func (m *Model) applyRange(ed *editor.LoopEditor, target int) {
	count := ed.Sequence().Count()
	if count == 0 {
		return
	}
	anchor := max(0, min(ed.Selection().Anchor(), count-1))
	target = max(0, min(target, count-1))
	step := 1
	if target > anchor {
		step = -1
	}
	for i := target; ; i += step {
		ed.ChangeSelectedFrame(i, selection.Add)
		if i == anchor {
			break
		}
	}
}

func (m *Model) editorFor(l *domain.Loop) int {
	for i, ed := range m.editors {
		if ed.Loop() == l {
			return i
		}
	}
	return -1
}

// Close detaches the model and its editors from the bus
func (m *Model) Close() {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
	for _, ed := range m.editors {
		ed.Close()
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Editors returns the loop editors in view order
func (m *Model) Editors() []*editor.LoopEditor {
	return m.editors
}

// Current returns the index of the active loop
func (m *Model) Current() int {
	return m.current
}

// Status returns the status line text
func (m *Model) Status() string {
	return m.status
}

// Mode returns the current input mode
func (m *Model) Mode() inputtypes.Mode {
	return m.input.CurrentMode()
}

// Menu returns the open context menu, or nil
func (m *Model) Menu() *views.MenuState {
	return m.menu
}

func (m *Model) active() *editor.LoopEditor {
	if m.current < 0 || m.current >= len(m.editors) {
		return nil
	}
	return m.editors[m.current]
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("help pager failed")
			m.setStatus("Help failed: "+msg.err.Error(), true)
		}
		return m, nil

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		actions, cmd := m.input.HandleKey(msg, m)
		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		return m, m.input.Update(msg)
	}
}

func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	ed := m.active()

	switch a := action.(type) {
	case inputtypes.QuitAction:
		return tea.Quit

	case inputtypes.ChangeModeAction:
		if a.Mode != inputtypes.ModeMenu {
			m.menu = nil
		}

	case inputtypes.SwitchLoopAction:
		if n := len(m.editors); n > 0 {
			m.current = max(0, min(m.current+a.Delta, n-1))
		}

	case inputtypes.SubmitTextAction:
		return m.submitText(a)

	case inputtypes.CancelTextAction:
		if a.Mode == inputtypes.ModeChoose {
			m.choosing = nil
		}

	case inputtypes.SaveAction:
		m.save()

	case inputtypes.ToggleHelpAction:
		return m.toggleHelp()
	}

	if ed == nil {
		return nil
	}

	switch a := action.(type) {
	case inputtypes.MoveCursorAction:
		m.moveCursor(ed, m.cursors[m.current]+a.Delta, a.Extend)

	case inputtypes.JumpAction:
		target := 0
		if a.End {
			target = ed.Sequence().Count() - 1
		}
		m.moveCursor(ed, target, a.Extend)

	case inputtypes.ToggleSelectAction:
		if cur := m.cursors[m.current]; ed.Sequence().Valid(cur) {
			ed.Selection().Toggle(cur)
		}

	case inputtypes.SelectAllAction:
		if count := ed.Sequence().Count(); count > 0 {
			ed.ChangeSelectedFrame(0, selection.Set)
			ed.ChangeSelectedFrame(count-1, selection.AddRange)
		}

	case inputtypes.ClearSelectionAction:
		ed.ChangeSelectedFrame(domain.NoFrame, selection.ClearAll)

	case inputtypes.EditorCommandAction:
		return m.withChooser(func() { ed.Invoke(a.ID) })

	case inputtypes.AppendFrameAction:
		ed.AppendFrame()

	case inputtypes.ChooseImageAction:
		cur := m.cursors[m.current]
		return m.withChooser(func() { ed.ChooseImage(cur) })

	case inputtypes.ToggleRunNextAction:
		if ed.IsLastLoop() {
			m.setStatus("The last loop cannot run into a next loop", true)
			return nil
		}
		ed.SetRunNextLoop(!ed.Loop().RunNextLoop)
		m.dirty = true

	case inputtypes.ZoomAction:
		zoom := max(0.25, min(ed.Zoom()+a.Delta, 4))
		for _, e := range m.editors {
			e.SetZoom(zoom)
		}
		m.setStatus(fmt.Sprintf("Zoom %.2fx", zoom), false)

	case inputtypes.OpenMenuAction:
		m.openMenu(m.current, ed.ContextMenu(m.cursors[m.current]))

	case inputtypes.MenuMoveAction:
		m.moveMenu(a.Delta)

	case inputtypes.MenuInvokeAction:
		return m.invokeMenu()
	}
	return nil
}

// moveCursor moves the keyboard cursor to target, replacing the selection
// or extending it as a range
func (m *Model) moveCursor(ed *editor.LoopEditor, target int, extend bool) {
	count := ed.Sequence().Count()
	if count == 0 {
		return
	}
	target = max(0, min(target, count-1))
	if extend {
		ed.ChangeSelectedFrame(target, selection.AddRange)
		m.cursors[m.current] = target
		return
	}
	ed.TrySelectFrame(target, true)
}

// withChooser runs op, opening the sprite prompt when op asks for a sprite
func (m *Model) withChooser(op func()) tea.Cmd {
	req := m.chooser.begin(op)
	if req == nil {
		return nil
	}
	m.choosing = req
	m.menu = nil
	initial := ""
	if req.initial > 0 {
		initial = strconv.Itoa(req.initial)
	}
	return m.input.ChangeMode(inputtypes.ModeChoose, initial, m)
}

func (m *Model) submitText(a inputtypes.SubmitTextAction) tea.Cmd {
	n, ok := modes.ParseNumber(a.Text)
	if !ok {
		m.choosing = nil
		m.setStatus(fmt.Sprintf("Invalid number %q", a.Text), true)
		return nil
	}

	ed := m.active()
	switch a.Mode {
	case inputtypes.ModeChoose:
		req := m.choosing
		m.choosing = nil
		m.chooser.resolve(req, n)
	case inputtypes.ModeDelay:
		if ed != nil {
			ed.SetDelay(n)
		}
	case inputtypes.ModeSound:
		if ed != nil {
			ed.SetSound(n)
		}
	case inputtypes.ModeImage:
		if ed != nil {
			ed.SetImage(n)
		}
	}
	return nil
}

func (m *Model) openMenu(loop int, menu *domain.ContextMenu) {
	if menu == nil {
		return
	}
	m.menu = &views.MenuState{Items: menu.Items, Cursor: -1}
	m.menuLoop = loop
	m.moveMenu(1)
	m.input.ChangeMode(inputtypes.ModeMenu, "", m)
}

// moveMenu moves the menu cursor to the next enabled item in direction delta
func (m *Model) moveMenu(delta int) {
	if m.menu == nil || len(m.menu.Items) == 0 {
		return
	}
	n := len(m.menu.Items)
	i := m.menu.Cursor
	for range n {
		i = (i + delta + n) % n
		if item := m.menu.Items[i]; item.Enabled && !item.Separator {
			m.menu.Cursor = i
			return
		}
	}
}

func (m *Model) invokeMenu() tea.Cmd {
	if m.menu == nil || m.menu.Cursor < 0 || m.menu.Cursor >= len(m.menu.Items) {
		return nil
	}
	item := m.menu.Items[m.menu.Cursor]
	if !item.Enabled || item.Separator || m.menuLoop >= len(m.editors) {
		return nil
	}
	ed := m.editors[m.menuLoop]
	m.menu = nil
	return m.withChooser(func() {
		if !ed.Invoke(item.ID) {
			log.Warn().Str("item", item.ID).Msg("menu item has no default command")
		}
	})
}

func (m *Model) save() {
	if m.path == "" {
		m.setStatus("No document path to save to", true)
		return
	}
	if err := m.docs.Save(m.view, m.path); err != nil {
		log.Error().Err(err).Str("path", m.path).Msg("save failed")
		m.bus.Publish(eventbus.ErrorEvent{Message: "Save failed: " + err.Error(), Err: err})
	}
}

func (m *Model) toggleHelp() tea.Cmd {
	if m.helpOps == nil {
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}
	content := RenderHelpContent(m.input.Keys())
	ops := m.helpOps
	return func() tea.Msg {
		return helpPagerMsg{err: ops.ShowHelpInPager(content)}
	}
}

// handleMouse maps a terminal click onto the loop editor under it
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || m.input.CurrentMode() != inputtypes.ModeNormal {
		return nil
	}

	var button editor.Button
	switch msg.Button {
	case tea.MouseButtonLeft:
		button = editor.ButtonLeft
	case tea.MouseButtonRight:
		button = editor.ButtonRight
	default:
		return nil
	}

	loop := views.LoopAtRow(msg.Y, len(m.editors), m.cfg.UI.ShowFrameInfo)
	if loop < 0 {
		return nil
	}
	m.current = loop
	ed := m.editors[loop]
	x := msg.X - views.StripLeft

	var mods editor.Modifier
	if msg.Shift {
		mods |= editor.ModShift
	}
	if msg.Ctrl {
		mods |= editor.ModCtrl
	}
	if msg.Alt {
		mods |= editor.ModAlt
	}

	if button == editor.ButtonLeft && mods == 0 {
		frame := ed.FrameAt(x, 0)
		now := time.Now()
		double := frame >= 0 && m.lastClick.loop == loop && m.lastClick.frame == frame &&
			now.Sub(m.lastClick.at) < doubleClickInterval
		m.lastClick = click{loop: loop, frame: frame, at: now}
		if double {
			m.lastClick = click{}
			return m.withChooser(func() { ed.HandleDoubleClick(x, 0) })
		}
	}

	if menu := ed.HandleClick(x, 0, button, mods); menu != nil {
		m.openMenu(loop, menu)
	}
	return nil
}

// input.Context implementation

func (m *Model) CurrentFrame() int {
	if m.active() == nil {
		return domain.NoFrame
	}
	return m.cursors[m.current]
}

func (m *Model) FrameCount() int {
	if ed := m.active(); ed != nil {
		return ed.Sequence().Count()
	}
	return 0
}

func (m *Model) HasSelection() bool {
	if ed := m.active(); ed != nil {
		return ed.Selection().HasSelection()
	}
	return false
}

func (m *Model) SelectedCount() int {
	if ed := m.active(); ed != nil {
		return ed.Selection().Count()
	}
	return 0
}

func (m *Model) MenuSize() int {
	if m.menu == nil {
		return 0
	}
	return len(m.menu.Items)
}

func (m *Model) Dirty() bool {
	return m.dirty
}

// View renders the UI
func (m *Model) View() string {
	return m.renderer.Render(m.BuildViewState())
}

// BuildViewState collects the state the renderer draws
func (m *Model) BuildViewState() views.ViewState {
	title := fmt.Sprintf("LoopEdit: %s", m.view.Name)
	if m.path != "" {
		title += " (" + m.path + ")"
	}

	state := views.ViewState{
		Width:       m.width,
		Height:      m.height,
		Title:       title,
		Dirty:       m.dirty,
		Menu:        m.menu,
		Status:      m.status,
		StatusError: m.statusErr,
		Ready:       m.ready,
	}

	styles := m.renderer.Styles()
	for i, ed := range m.editors {
		strip := views.NewStripRenderer(styles, domain.NoFrame)
		if i == m.current {
			strip = views.NewStripRenderer(styles, m.cursors[i])
		}
		ed.Draw(strip)

		ls := views.LoopState{
			Title:   ed.Title(),
			Strip:   strip.String(),
			Active:  i == m.current,
			RunNext: ed.Loop().RunNextLoop,
			Last:    ed.IsLastLoop(),
			Frames:  ed.Sequence().Count(),
		}
		if m.cfg.UI.ShowFrameInfo {
			ls.Info = m.frameInfo(i)
		}
		state.Loops = append(state.Loops, ls)
	}

	if m.clip.HasContent() {
		state.Clipboard = fmt.Sprintf("[clipboard: %d frame(s)]", len(m.clip.Load().Frames))
	}

	switch mode := m.input.CurrentMode(); {
	case mode == inputtypes.ModeQuitConfirm:
		state.Confirm = "Unsaved changes. Quit anyway? (y)es / (n)o / (w)rite and quit"
	case mode.IsText():
		state.Prompt = m.input.Prompt()
		if mode == inputtypes.ModeChoose && m.choosing != nil && m.choosing.prompt != "" {
			state.Prompt = m.choosing.prompt
		}
		if ti := m.input.TextInput(); ti != nil {
			state.Input = ti.View()
		}
	}

	if m.cfg.UI.ShowHelp {
		state.Help = m.help.View(m.input.Keys())
	}
	return state
}

// frameInfo describes the cursor frame of the active loop, or the
// selection size of other loops
func (m *Model) frameInfo(i int) string {
	ed := m.editors[i]
	if ed.Sequence().Count() == 0 {
		return "no frames"
	}
	f := ed.Sequence().Frame(m.cursors[i])
	if i != m.current || f == nil {
		return fmt.Sprintf("%d selected", ed.Selection().Count())
	}
	flip := ""
	if f.Flipped {
		flip = "  flipped"
	}
	return fmt.Sprintf("frame %d  sprite %d  delay %s  sound %d%s  (%d selected)",
		f.ID, f.ImageRef, editor.DelayLabel(f.Delay), f.SoundRef, flip, ed.Selection().Count())
}
