package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"loopedit/internal/domain"
)

// StripRenderer draws a loop's frames as a row of fixed-width cells. It
// implements editor.Renderer; the drawn row is read back with String.
type StripRenderer struct {
	styles *Styles
	cursor int // frame under the keyboard cursor, NoFrame for none

	b strings.Builder
}

// NewStripRenderer creates a strip renderer
func NewStripRenderer(styles *Styles, cursor int) *StripRenderer {
	return &StripRenderer{styles: styles, cursor: cursor}
}

// DrawLoop renders every frame of l followed by the new-frame slot.
// originY is ignored: strips are one row tall in a terminal.
func (r *StripRenderer) DrawLoop(l *domain.Loop, originX, originY, frameSize int, selected []int) {
	r.b.Reset()
	r.b.WriteString(strings.Repeat(" ", max(0, originX)))

	isSelected := make(map[int]bool, len(selected))
	for _, id := range selected {
		isSelected[id] = true
	}

	for _, f := range l.Frames {
		style := r.styles.Frame
		if f.Flipped {
			style = style.Inherit(r.styles.FrameFlipped)
		}
		if isSelected[f.ID] {
			style = r.styles.FrameSelected.Inherit(style)
		}
		if f.ID == r.cursor {
			style = style.Inherit(r.styles.FrameCursor)
		}
		r.b.WriteString(style.Render(Cell(f, frameSize)))
	}
	r.b.WriteString(r.styles.NewSlot.Render(fit("+", frameSize)))
}

// String returns the last drawn strip
func (r *StripRenderer) String() string {
	return r.b.String()
}

// Cell formats a frame into exactly size columns: a border column, then
// the sprite number, with a trailing "~" for mirrored frames
func Cell(f *domain.Frame, size int) string {
	label := "-"
	if f.ImageRef > 0 {
		label = fmt.Sprintf("%d", f.ImageRef)
	}
	if f.Flipped {
		label += "~"
	}
	return fit(label, size)
}

// fit centers label after a leading border column and pads or truncates it
// to size columns
func fit(label string, size int) string {
	switch {
	case size <= 0:
		return ""
	case size == 1:
		return "|"
	}
	inner := size - 1
	if lipgloss.Width(label) > inner {
		label = label[:inner]
	}
	return "|" + lipgloss.PlaceHorizontal(inner, lipgloss.Center, label)
}
