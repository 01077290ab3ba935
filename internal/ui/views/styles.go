package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	LoopTitle     lipgloss.Style
	ActiveLoop    lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Info          lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Frame         lipgloss.Style
	FrameSelected lipgloss.Style
	FrameCursor   lipgloss.Style
	FrameFlipped  lipgloss.Style
	NewSlot       lipgloss.Style
	Menu          lipgloss.Style
	MenuItem      lipgloss.Style
	MenuActive    lipgloss.Style
	MenuDisabled  lipgloss.Style
	Prompt        lipgloss.Style
	Confirm       lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		LoopTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ActiveLoop:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Dim:           lipgloss.NewStyle().Faint(true),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		Info:          lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Help:          lipgloss.NewStyle().Faint(true),
		Main:          lipgloss.NewStyle().Padding(1, 2),
		Frame:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		FrameSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
		FrameCursor:   lipgloss.NewStyle().Underline(true),
		FrameFlipped:  lipgloss.NewStyle().Italic(true),
		NewSlot:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Menu: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		MenuItem:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuActive:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("226")),
		MenuDisabled:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Prompt:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Confirm:       lipgloss.NewStyle().Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
