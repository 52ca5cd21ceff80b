// Package tui is the interactive loan simulator. Every change to the form
// recalculates the schedule and the comparison against the other method.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/mortgo/internal/calculation"
	"github.com/rgehrsitz/mortgo/internal/compare"
	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/rgehrsitz/mortgo/internal/tui/scenes"
	"github.com/rgehrsitz/mortgo/internal/tui/tuimsg"
)

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	engine   *calculation.Engine
	comparer *compare.CompareEngine

	simulator  *scenes.SimulatorModel
	results    *scenes.ResultsModel
	schedule   *scenes.ScheduleModel
	comparison *scenes.CompareModel

	// seq numbers recalculations; results of older requests are dropped
	seq         int
	calculating bool
	input       domain.LoanInput

	err error
}

// NewModel creates the application model. scenarios, when non-empty, are
// loaded into the form and can be cycled through.
func NewModel(engine *calculation.Engine, scenarios []domain.LoanInput) Model {
	m := Model{
		currentScene: SceneSimulator,
		engine:       engine,
		comparer:     compare.NewCompareEngine(engine),
		simulator:    scenes.NewSimulatorModel(),
		results:      scenes.NewResultsModel(),
		schedule:     scenes.NewScheduleModel(),
		comparison:   scenes.NewCompareModel(),
		width:        120,
		height:       40,
	}
	m.simulator.SetScenarios(scenarios)
	return m
}

// Init calculates the initial loan
func (m Model) Init() tea.Cmd {
	return m.simulator.Changed()
}

// calculateCmd builds the schedule for in and compares it with the other method
func calculateCmd(engine *calculation.Engine, comparer *compare.CompareEngine, seq int, in domain.LoanInput) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		result, err := engine.Calculate(ctx, in)
		if err != nil {
			return tuimsg.CalculationCompleteMsg{Seq: seq, Input: in, Err: err}
		}

		set, err := comparer.CompareMethods(ctx, in.Name, result.Parameters)
		if err != nil {
			return tuimsg.CalculationCompleteMsg{Seq: seq, Input: in, Result: result, Err: err}
		}
		return tuimsg.CalculationCompleteMsg{Seq: seq, Input: in, Result: result, Comparison: set}
	}
}

// Result returns the schedule on display
func (m Model) Result() *domain.ScheduleResult {
	return m.results.Result()
}

// Scene returns the active scene
func (m Model) Scene() Scene {
	return m.currentScene
}

// Err returns the error of the last calculation, if any
func (m Model) Err() error {
	return m.err
}
