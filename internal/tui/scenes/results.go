package scenes

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/mortgo/internal/calculation"
	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/rgehrsitz/mortgo/internal/output"
	"github.com/rgehrsitz/mortgo/internal/tui/components"
	"github.com/rgehrsitz/mortgo/internal/tui/tuistyles"
)

// ExcerptRows is the number of schedule rows shown next to the form
const ExcerptRows = output.DefaultRowLimit

// ResultsModel shows the headline figures, the balance chart and the first
// rows of the current schedule.
type ResultsModel struct {
	result  *domain.ScheduleResult
	summary domain.ScheduleSummary
	yearly  []domain.YearlySummary
	excerpt *components.ScheduleTable
	width   int
	height  int
}

// NewResultsModel creates an empty results panel
func NewResultsModel() *ResultsModel {
	return &ResultsModel{
		excerpt: components.NewScheduleTable(8),
		width:   80,
	}
}

// SetResult replaces the schedule on display
func (m *ResultsModel) SetResult(result *domain.ScheduleResult) {
	m.result = result
	if result == nil {
		m.excerpt.SetRows(nil)
		m.yearly = nil
		return
	}
	m.summary = calculation.Summarize(result)
	m.yearly = calculation.YearlyBreakdown(result)

	rows := result.Rows
	if len(rows) > ExcerptRows {
		rows = rows[:ExcerptRows]
	}
	m.excerpt.SetRows(rows)
}

// Result returns the schedule on display
func (m *ResultsModel) Result() *domain.ScheduleResult {
	return m.result
}

// SetSize updates the panel dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	visible := height - 30
	if visible < 4 {
		visible = 4
	}
	if visible > ExcerptRows {
		visible = ExcerptRows
	}
	m.excerpt.SetHeight(visible)
}

// Cards returns the headline figures as metric cards
func (m *ResultsModel) Cards() []*components.MetricCard {
	if m.result == nil {
		return nil
	}
	p := m.result.Parameters
	var cards []*components.MetricCard

	if p.Method == domain.EqualInstallment {
		cards = append(cards, components.NewMetricCard("Monthly payment", output.FormatYen(m.result.MonthlyPayment)).
			WithDescription("fixed"))
	} else {
		cards = append(cards, components.NewMetricCard("First payment", output.FormatYen(m.summary.FirstMonthPayment)).
			WithDescription("decreasing monthly"))
	}
	if m.summary.BonusMonthDelta != nil {
		cards = append(cards, components.NewMetricCard("Bonus month extra", output.FormatYen(*m.summary.BonusMonthDelta)).
			WithDescription(fmt.Sprintf("every %d months", domain.BonusInterval)))
	}
	cards = append(cards,
		components.NewMetricCard("Total interest", output.FormatYen(m.summary.TotalInterest)),
		components.NewMetricCard("Total payment", output.FormatYen(m.summary.TotalPayment)).
			WithDescription(fmt.Sprintf("over %d months", m.summary.Months)),
	)
	return cards
}

// Chart returns the year-end balance chart
func (m *ResultsModel) Chart() *components.ASCIIChart {
	points := make([]float64, 0, len(m.yearly)+1)
	labels := make([]string, 0, len(m.yearly)+1)
	if m.result != nil {
		points = append(points, m.result.Parameters.Principal.InexactFloat64())
		labels = append(labels, "0")
	}
	for _, y := range m.yearly {
		points = append(points, y.Balance.InexactFloat64())
		labels = append(labels, strconv.Itoa(y.Year))
	}

	width := m.width - 4
	if width > 90 {
		width = 90
	}
	return components.NewASCIIChart("Remaining balance by year").
		AddSeries("Balance", points, tuistyles.ColorPrimary).
		WithLabels(labels).
		WithSize(width, 8)
}

// View renders the results panel
func (m *ResultsModel) View() string {
	if m.result == nil {
		return tuistyles.InfoStyle.Render("Adjust the loan to see its schedule.")
	}

	columns := 4
	if m.width < 110 {
		columns = 2
	}
	excerptTitle := tuistyles.TitleStyle.Render(
		fmt.Sprintf("First %d months", min(ExcerptRows, len(m.result.Rows))))

	return lipgloss.JoinVertical(lipgloss.Left,
		components.MetricGrid(m.Cards(), columns),
		"",
		m.Chart().Render(),
		"",
		excerptTitle,
		m.excerpt.View(),
	)
}
