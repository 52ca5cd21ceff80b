package tui

// Scene represents different screens in the TUI
type Scene int

const (
	SceneSimulator Scene = iota
	SceneSchedule
	SceneCompare
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

func (s Scene) String() string {
	switch s {
	case SceneSimulator:
		return "Simulator"
	case SceneSchedule:
		return "Schedule"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
