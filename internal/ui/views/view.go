package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"loopedit/internal/domain"
)

// LoopState is one loop editor as the renderer sees it
type LoopState struct {
	Title   string
	Strip   string
	Info    string // frame info line, empty when hidden
	Active  bool
	RunNext bool
	Last    bool
	Frames  int
}

// MenuState is an open context menu
type MenuState struct {
	Items  []domain.MenuItem
	Cursor int
}

// ViewState contains everything needed to render the screen
type ViewState struct {
	Width  int
	Height int

	Title   string
	Dirty   bool
	Loops   []LoopState
	Menu    *MenuState
	Prompt  string // label of the active text prompt
	Input   string // rendered text input
	Confirm string // quit confirmation question

	Status      string
	StatusError bool
	Clipboard   string // clipboard summary
	Help        string
	Ready       bool // print the readiness marker used by terminal tests
}

// Renderer handles the main view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	if styles == nil {
		styles = NewStyles()
	}
	return &Renderer{styles: styles}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render renders the complete screen
func (r *Renderer) Render(state ViewState) string {
	var b strings.Builder

	title := state.Title
	if state.Dirty {
		title += " *"
	}
	b.WriteString(r.styles.Title.Render(title))
	b.WriteString("\n")

	if len(state.Loops) == 0 {
		b.WriteString(r.styles.Dim.Render("No loops in this view"))
		b.WriteString("\n")
	}
	for _, l := range state.Loops {
		b.WriteString(r.renderLoop(l))
		b.WriteString("\n")
	}

	if state.Menu != nil {
		b.WriteString(r.RenderMenu(*state.Menu))
		b.WriteString("\n")
	}

	switch {
	case state.Confirm != "":
		b.WriteString(r.styles.Confirm.Render(state.Confirm))
	case state.Prompt != "":
		b.WriteString(r.styles.Prompt.Render(state.Prompt) + " " + state.Input)
	default:
		b.WriteString(r.renderStatus(state))
	}
	b.WriteString("\n")

	if state.Help != "" {
		b.WriteString(r.styles.Help.Render(state.Help))
	}
	if state.Ready {
		b.WriteString("\n__READY__")
	}

	return r.styles.Main.Render(b.String())
}

func (r *Renderer) renderLoop(l LoopState) string {
	marker := "  "
	titleStyle := r.styles.LoopTitle
	if l.Active {
		marker = "> "
		titleStyle = r.styles.ActiveLoop
	}

	flags := fmt.Sprintf("%d frame(s)", l.Frames)
	switch {
	case l.Last:
		flags += ", last loop"
	case l.RunNext:
		flags += ", runs next loop"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(marker+l.Title) + " " + r.styles.Dim.Render(flags) + "\n")
	b.WriteString("  " + l.Strip + "\n")
	if l.Info != "" {
		b.WriteString("  " + r.styles.Info.Render(l.Info) + "\n")
	}
	return b.String()
}

// RenderMenu renders a context menu box
func (r *Renderer) RenderMenu(menu MenuState) string {
	lines := make([]string, 0, len(menu.Items))
	for i, item := range menu.Items {
		switch {
		case item.Separator:
			lines = append(lines, r.styles.MenuDisabled.Render("──────────"))
		case !item.Enabled:
			lines = append(lines, r.styles.MenuDisabled.Render("  "+item.Label))
		case i == menu.Cursor:
			lines = append(lines, r.styles.MenuActive.Render("> "+item.Label))
		default:
			lines = append(lines, r.styles.MenuItem.Render("  "+item.Label))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, r.styles.MenuDisabled.Render("  (empty)"))
	}
	return r.styles.Menu.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (r *Renderer) renderStatus(state ViewState) string {
	parts := []string{}
	if state.Status != "" {
		style := r.styles.StatusSuccess
		if state.StatusError {
			style = r.styles.StatusError
		}
		parts = append(parts, style.Render(state.Status))
	}
	if state.Clipboard != "" {
		parts = append(parts, r.styles.Dim.Render(state.Clipboard))
	}
	return r.styles.Status.Render(strings.Join(parts, "  "))
}

// Screen geometry of the rendered view, used to hit-test mouse events.
// Rows count the main padding, the title and its margin. Every loop takes
// a title row, a strip row, an optional info row and a blank row.
const (
	StripLeft    = 4 // screen column of the first strip cell
	firstLoopRow = 3
)

// StripRow returns the screen row of loop index's frame strip
func StripRow(index int, showInfo bool) int {
	stride := 3
	if showInfo {
		stride = 4
	}
	return firstLoopRow + 1 + index*stride
}

// LoopAtRow returns the index of the loop whose strip is drawn on row, or -1
func LoopAtRow(row, loops int, showInfo bool) int {
	for i := 0; i < loops; i++ {
		if StripRow(i, showInfo) == row {
			return i
		}
	}
	return -1
}
