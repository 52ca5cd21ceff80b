package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/mortgo/internal/tui/tuistyles"
)

// sideBySideWidth is the terminal width from which the form and the results
// are laid out next to each other
const sideBySideWidth = 130

// formWidth is the rendered width of the simulator form
const formWidth = 48

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneSimulator:
		content = m.renderSimulator()
	case SceneSchedule:
		content = m.schedule.View()
	case SceneCompare:
		content = m.comparison.View()
	case SceneHelp:
		content = renderHelp()
	default:
		content = "Unknown scene"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderErrorLine(),
		m.renderStatusBar(),
	)
}

func (m Model) resultsWidth() int {
	if m.width >= sideBySideWidth {
		return m.width - formWidth - 2
	}
	return m.width
}

func (m Model) renderSimulator() string {
	form := m.simulator.View()
	results := m.results.View()
	if m.width >= sideBySideWidth {
		return lipgloss.JoinHorizontal(lipgloss.Top, form, "  ", results)
	}
	return lipgloss.JoinVertical(lipgloss.Left, form, results)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("mortgo - loan repayment simulator")
	breadcrumb := m.currentScene.String()
	if m.calculating {
		breadcrumb += " • calculating..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(breadcrumb))
}

func (m Model) renderErrorLine() string {
	if m.err == nil {
		return ""
	}
	return tuistyles.ErrorStyle.Render("Error: " + m.err.Error())
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("1", "simulator"),
		formatShortcut("2", "schedule"),
		formatShortcut("3", "compare"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	return tuistyles.StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

func formatShortcut(key, desc string) string {
	return tuistyles.StatusKeyStyle.Render(key) + " " + desc
}

func renderHelp() string {
	helpText := `mortgo - loan repayment simulator

SCENES:
  1        Simulator: loan form, headline figures, balance chart
  2        Full month-by-month schedule
  3        Equal installment vs equal principal
  ?        This help
  ESC      Back to the simulator
  q/Ctrl+C Quit

SIMULATOR:
  ↑/↓ Tab  Move between fields
  ←/→      Adjust the focused value by one step
  [ ]      Adjust by ten steps
  Enter    Type a value (Enter applies, Esc cancels)
  Space    Toggle repayment method or bonus repayments
  n        Load the next scenario from the scenario file
  r        Reset to the default loan

The bonus share is capped at half of the loan amount. Every change
recalculates the schedule.`

	return tuistyles.BorderStyle.Render(helpText)
}
