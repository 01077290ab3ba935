// Package editor implements the loop editor: the mutation operations over a
// frame sequence and its selection, plus the mapping from decoded pointer
// input to selection actions.
package editor

import (
	"loopedit/internal/clipboard"
	"loopedit/internal/domain"
	"loopedit/internal/eventbus"
	"loopedit/internal/loop"
	"loopedit/internal/selection"
)

// FrameDisplaySize is the base size of a frame cell before zoom and DPI scaling
const FrameDisplaySize = 50

// Options configures a LoopEditor. Zero values pick defaults; a nil Bus
// gives the editor a private bus.
type Options struct {
	Bus       eventbus.EventBus
	Clipboard *clipboard.Service
	Chooser   ResourceChooser
	Folders   FolderProvider

	BaseFrameSize     int      // defaults to FrameDisplaySize
	Zoom              float64  // defaults to 1
	DPIScale          float64  // defaults to 1
	MinWidth          int      // width of the strip when it holds no frames
	SecondaryModifier Modifier // defaults to ModCtrl
	BroadcastRanges   bool     // do not apply range selection locally
}

// LoopEditor edits one loop
type LoopEditor struct {
	seq       *loop.Sequence
	sel       *selection.Service
	bus       eventbus.EventBus
	clipboard *clipboard.Service
	chooser   ResourceChooser
	folders   FolderProvider

	baseSize  int
	zoom      float64
	dpi       float64
	frameSize int
	stripY    int
	minWidth  int
	secondary Modifier
	isLast    bool
}

// New creates an editor for l
func New(l *domain.Loop, opts Options) *LoopEditor {
	bus := opts.Bus
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.New(bus, nil)
	}

	e := &LoopEditor{
		bus:       bus,
		clipboard: clip,
		chooser:   opts.Chooser,
		folders:   opts.Folders,
		baseSize:  opts.BaseFrameSize,
		zoom:      opts.Zoom,
		dpi:       opts.DPIScale,
		minWidth:  opts.MinWidth,
		secondary: opts.SecondaryModifier,
	}
	if e.baseSize <= 0 {
		e.baseSize = FrameDisplaySize
	}
	if e.zoom <= 0 {
		e.zoom = 1
	}
	if e.dpi <= 0 {
		e.dpi = 1
	}
	if e.secondary == 0 {
		e.secondary = ModCtrl
	}

	e.seq = loop.New(l, bus)
	e.sel = selection.NewService(bus, e.seq)
	e.sel.SetHandleRange(!opts.BroadcastRanges)
	e.updateSize()
	return e
}

// Close detaches the editor from the bus; ownership of the loop returns
// to the caller
func (e *LoopEditor) Close() {
	e.sel.Close()
}

// Loop returns the edited loop
func (e *LoopEditor) Loop() *domain.Loop {
	return e.seq.Loop()
}

// Sequence returns the frame sequence
func (e *LoopEditor) Sequence() *loop.Sequence {
	return e.seq
}

// Selection returns the selection state machine
func (e *LoopEditor) Selection() *selection.Service {
	return e.sel
}

// SelectedFrames returns the selected frame IDs in ascending order
func (e *LoopEditor) SelectedFrames() []int {
	return e.sel.Selected()
}

// Title returns the loop's display label
func (e *LoopEditor) Title() string {
	return e.seq.Loop().Title()
}

// ChangeSelectedFrame applies a selection action to frame
func (e *LoopEditor) ChangeSelectedFrame(frame int, action selection.Action) {
	e.sel.Change(frame, action)
}

// TrySelectFrame selects frame with Set. With nearest, out-of-range
// indices are clamped first. It reports whether a frame was selected.
func (e *LoopEditor) TrySelectFrame(frame int, nearest bool) bool {
	if nearest {
		frame = max(0, min(frame, e.seq.Count()-1))
	}
	if !e.seq.Valid(frame) {
		return false
	}
	e.sel.Change(frame, selection.Set)
	return true
}

// SetHandleRangeSelection controls whether range selections apply locally
func (e *LoopEditor) SetHandleRangeSelection(handle bool) {
	e.sel.SetHandleRange(handle)
}

// IsLastLoop reports whether this loop is the last of its view
func (e *LoopEditor) IsLastLoop() bool {
	return e.isLast
}

// SetLastLoop marks the loop as the view's last one. The last loop can
// never run into a next loop.
func (e *LoopEditor) SetLastLoop(last bool) {
	e.isLast = last
	if last {
		e.seq.Loop().RunNextLoop = false
	}
}

// SetRunNextLoop sets the loop's RunNextLoop flag unless it is the last loop
func (e *LoopEditor) SetRunNextLoop(run bool) {
	if e.isLast {
		return
	}
	e.seq.Loop().RunNextLoop = run
}

// Zoom returns the current zoom level
func (e *LoopEditor) Zoom() float64 {
	return e.zoom
}

// SetZoom changes the zoom level and recomputes the frame size
func (e *LoopEditor) SetZoom(zoom float64) {
	if zoom <= 0 {
		return
	}
	e.zoom = zoom
	e.updateSize()
}

// FrameSize returns the displayed size of a frame cell
func (e *LoopEditor) FrameSize() int {
	return e.frameSize
}

// SetStripOrigin sets the vertical offset of the frame strip
func (e *LoopEditor) SetStripOrigin(y int) {
	e.stripY = y
}

// Width returns the width needed to show every frame plus the new-frame slot
func (e *LoopEditor) Width() int {
	return max((e.seq.Count()+1)*e.frameSize+10, e.minWidth)
}

// NewFrameSlotX returns the x position of the new-frame slot
func (e *LoopEditor) NewFrameSlotX() int {
	return e.seq.Count() * e.frameSize
}

// FrameAt returns the frame under the strip-relative point, or NoFrame
func (e *LoopEditor) FrameAt(x, y int) int {
	if y >= e.stripY && y < e.stripY+e.frameSize &&
		x > 0 && x < e.seq.Count()*e.frameSize {
		return x / e.frameSize
	}
	return domain.NoFrame
}

// ActionFor maps held modifiers to the selection action of a left click.
// Shift wins over the secondary modifier.
func ActionFor(mods, secondary Modifier) selection.Action {
	switch {
	case mods.Has(ModShift):
		return selection.AddRange
	case mods.Has(secondary):
		return selection.Add
	default:
		return selection.Set
	}
}

// HandleClick processes a decoded click. A left click on a frame changes
// the selection; a right click requests the context menu, which is returned.
func (e *LoopEditor) HandleClick(x, y int, button Button, mods Modifier) *domain.ContextMenu {
	frame := e.FrameAt(x, y)
	switch button {
	case ButtonLeft:
		if frame >= 0 {
			e.sel.Change(frame, ActionFor(mods, e.secondary))
		}
	case ButtonRight:
		return e.ContextMenu(frame)
	}
	return nil
}

// HandleDoubleClick opens the image chooser for the frame under the point
func (e *LoopEditor) HandleDoubleClick(x, y int) bool {
	frame := e.FrameAt(x, y)
	if frame < 0 {
		return false
	}
	return e.ChooseImage(frame)
}

// Draw hands the strip data to r
func (e *LoopEditor) Draw(r Renderer) {
	r.DrawLoop(e.seq.Loop(), 0, e.stripY, e.frameSize, e.sel.Selected())
}

func (e *LoopEditor) updateSize() {
	e.frameSize = max(1, int(float64(e.baseSize)*e.zoom*e.dpi))
}
