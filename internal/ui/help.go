package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"loopedit/internal/ui/input/modes"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// RenderHelpContent renders the full key reference for the pager
func RenderHelpContent(keys modes.KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("LoopEdit Help"))
	help.WriteString("\n")

	section := func(name string, bindings ...key.Binding) {
		help.WriteString(sectionStyle.Render(name))
		help.WriteString("\n")
		for _, b := range bindings {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
		}
	}

	section("Navigation", keys.Left, keys.Right, keys.Home, keys.End, keys.PrevLoop, keys.NextLoop)
	section("Selection", keys.Toggle, keys.ExtendLeft, keys.ExtendRight, keys.SelectAll, keys.Clear)
	section("Frames", keys.InsertAfter, keys.InsertBefore, keys.Append, keys.Delete, keys.Flip,
		keys.Image, keys.Choose, keys.Delay, keys.Sound)
	section("Loop", keys.FlipAll, keys.Copy, keys.Cut, keys.Paste, keys.PasteFlipped,
		keys.Import, keys.ImportAll, keys.RunNext)
	section("Other", keys.ZoomIn, keys.ZoomOut, keys.Menu, keys.Save, keys.Help, keys.Quit)

	help.WriteString(sectionStyle.Render("Mouse"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render("click"), descStyle.Render("Select frame")))
	help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render("ctrl+click"), descStyle.Render("Add frame to selection")))
	help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render("shift+click"), descStyle.Render("Select range from last frame")))
	help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render("double click"), descStyle.Render("Choose sprite")))
	help.WriteString(fmt.Sprintf("  %s %s", keyStyle.Render("right click"), descStyle.Render("Context menu")))

	return help.String()
}

// HelpOps handles pager operations from inside the running program
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	return Page(strings.NewReader(helpContent))
}

// Page shows r in the ov pager and blocks until the user quits it
func Page(r io.Reader) error {
	root, err := oviewer.NewRoot(r)
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
