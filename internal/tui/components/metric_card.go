package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mortgo/internal/tui/tuistyles"
)

// MetricCard displays one headline figure with an optional change line
type MetricCard struct {
	Label       string
	Value       string
	Delta       *Delta
	Description string
	Width       int
}

// Delta is a change against a reference figure. LowerIsBetter picks the
// color: for payments and interest a decrease favors the borrower.
type Delta struct {
	Amount        decimal.Decimal
	Text          string
	LowerIsBetter bool
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 26,
	}
}

// WithDelta adds a change line rendered with text
func (m *MetricCard) WithDelta(amount decimal.Decimal, text string, lowerIsBetter bool) *MetricCard {
	m.Delta = &Delta{Amount: amount, Text: text, LowerIsBetter: lowerIsBetter}
	return m
}

// WithDescription adds a description/subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) deltaLine() string {
	if m.Delta == nil {
		return ""
	}
	favorable := m.Delta.Amount.IsNegative() == m.Delta.LowerIsBetter
	if m.Delta.Amount.IsZero() {
		favorable = true
	}
	return tuistyles.MetricTrendStyle(favorable).Render(
		fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Delta.Amount), m.Delta.Text))
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)
	if line := m.deltaLine(); line != "" {
		content += "\n" + line
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns an inline version without border
func (m *MetricCard) RenderCompact() string {
	line := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if delta := m.deltaLine(); delta != "" {
		line += " " + delta
	}
	return line
}

// MetricGrid renders cards in rows of the given number of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows []string
	var current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
