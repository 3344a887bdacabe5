package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/expertpanel/internal/ui"
)

// Style variables for the TUI panel view.
// Initialized from the ui theme system via initTUIStyles().
var (
	titleStyle      lipgloss.Style
	queryStyle        lipgloss.Style
	elapsedStyle    lipgloss.Style
	expertNameStyle lipgloss.Style
	pendingStyle    lipgloss.Style
	successStyle    lipgloss.Style
	failureStyle    lipgloss.Style
	durationStyle   lipgloss.Style
	answerStyle     lipgloss.Style
	footerStyle     lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	queryStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	expertNameStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Text)

	pendingStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	successStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	failureStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	durationStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	answerStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		PaddingLeft(2)

	footerStyle = lipgloss.NewStyle().
		Foreground(t.Dim)
}
