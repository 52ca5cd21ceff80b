package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/mortgo/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.simulator.SetSize(msg.Width, msg.Height)
		m.results.SetSize(m.resultsWidth(), msg.Height)
		m.schedule.SetSize(msg.Width, msg.Height)
		m.comparison.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case tuimsg.ParametersChangedMsg:
		m.seq++
		m.calculating = true
		m.input = msg.Input
		return m, calculateCmd(m.engine, m.comparer, m.seq, msg.Input)

	case tuimsg.CalculationCompleteMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.calculating = false
		m.err = msg.Err
		if msg.Result != nil {
			m.results.SetResult(msg.Result)
			m.schedule.SetResult(msg.Result)
		}
		m.comparison.SetComparison(msg.Comparison)
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// Typed values go straight to the form
	if m.currentScene == SceneSimulator && m.simulator.Editing() {
		return m.updateCurrentScene(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		return m, navigate(SceneSimulator)
	case "2":
		return m, navigate(SceneSchedule)
	case "3":
		return m, navigate(SceneCompare)
	case "?":
		return m, navigate(SceneHelp)
	case "esc":
		if m.currentScene != SceneSimulator {
			return m, navigate(SceneSimulator)
		}
	}

	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneSimulator:
		m.simulator, cmd = m.simulator.Update(msg)
	case SceneSchedule:
		m.schedule, cmd = m.schedule.Update(msg)
	}
	return m, cmd
}
