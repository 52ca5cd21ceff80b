package scenes

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/rgehrsitz/mortgo/internal/output"
	"github.com/rgehrsitz/mortgo/internal/tui/components"
	"github.com/rgehrsitz/mortgo/internal/tui/tuistyles"
)

// ScheduleModel is the full month-by-month schedule
type ScheduleModel struct {
	result *domain.ScheduleResult
	table  *components.ScheduleTable
}

// NewScheduleModel creates an empty schedule scene
func NewScheduleModel() *ScheduleModel {
	return &ScheduleModel{table: components.NewScheduleTable(20)}
}

// SetResult loads every row of result
func (m *ScheduleModel) SetResult(result *domain.ScheduleResult) {
	m.result = result
	if result == nil {
		m.table.SetRows(nil)
		return
	}
	m.table.SetRows(result.Rows)
}

// SetSize fits the table to the terminal height
func (m *ScheduleModel) SetSize(width, height int) {
	visible := height - 8
	if visible < 5 {
		visible = 5
	}
	m.table.SetHeight(visible)
}

// Update scrolls the table
func (m *ScheduleModel) Update(msg tea.Msg) (*ScheduleModel, tea.Cmd) {
	return m, m.table.Update(msg)
}

// View renders the schedule scene
func (m *ScheduleModel) View() string {
	if m.result == nil {
		return tuistyles.InfoStyle.Render("No schedule calculated yet.")
	}
	p := m.result.Parameters
	header := tuistyles.TitleStyle.Render(fmt.Sprintf("%s, %s, %d years, %s",
		output.FormatYen(p.Principal), output.FormatPercentage(p.AnnualRatePercent), p.TermYears, p.Method.Label()))
	position := tuistyles.SubtitleStyle.Render(fmt.Sprintf("row %d of %d • ↑/↓ pgup/pgdn g/G to scroll • ★ bonus month",
		m.table.Cursor()+1, m.table.Len()))
	return lipgloss.JoinVertical(lipgloss.Left, header, m.table.View(), position)
}
