package components

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/rgehrsitz/mortgo/internal/output"
	"github.com/rgehrsitz/mortgo/internal/tui/tuistyles"
)

// ScheduleTable is a scrollable view over schedule rows
type ScheduleTable struct {
	table table.Model
}

var scheduleColumns = []table.Column{
	{Title: "Month", Width: 5},
	{Title: "Year", Width: 4},
	{Title: "Payment", Width: 12},
	{Title: "Principal", Width: 12},
	{Title: "Interest", Width: 10},
	{Title: "Balance", Width: 14},
	{Title: "Bonus", Width: 5},
}

// NewScheduleTable creates an empty table showing height rows at a time
func NewScheduleTable(height int) *ScheduleTable {
	t := table.New(
		table.WithColumns(scheduleColumns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	styles := table.DefaultStyles()
	styles.Header = tuistyles.TableHeaderStyle
	styles.Selected = tuistyles.TableHighlightStyle.Bold(true)
	t.SetStyles(styles)

	return &ScheduleTable{table: t}
}

// SetRows replaces the table contents
func (s *ScheduleTable) SetRows(rows []domain.ScheduleRow) {
	s.table.SetRows(ScheduleTableRows(rows))
	s.table.GotoTop()
}

// SetHeight changes the number of visible rows
func (s *ScheduleTable) SetHeight(height int) {
	s.table.SetHeight(height)
}

// Len is the number of rows loaded
func (s *ScheduleTable) Len() int {
	return len(s.table.Rows())
}

// Cursor is the index of the highlighted row
func (s *ScheduleTable) Cursor() int {
	return s.table.Cursor()
}

// Update forwards navigation keys to the table
func (s *ScheduleTable) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return cmd
}

// View renders the table
func (s *ScheduleTable) View() string {
	return s.table.View()
}

// ScheduleTableRows converts schedule rows into table cells
func ScheduleTableRows(rows []domain.ScheduleRow) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		bonus := ""
		if r.IsBonusMonth {
			bonus = "  ★"
		}
		out = append(out, table.Row{
			strconv.Itoa(r.Month),
			strconv.Itoa(r.Year),
			output.FormatYen(r.Payment),
			output.FormatYen(r.Principal),
			output.FormatYen(r.Interest),
			output.FormatYen(r.Balance),
			bonus,
		})
	}
	return out
}
