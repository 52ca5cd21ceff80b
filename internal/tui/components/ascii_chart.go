package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/mortgo/internal/tui/tuistyles"
)

const yAxisWidth = 9

// DataSeries represents a single line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws one or more series as a line chart. The Y axis starts at
// zero, which suits balances that run down to nothing.
type ASCIIChart struct {
	Title  string
	Series []*DataSeries
	Labels []string // X-axis labels, first and last are shown
	Width  int
	Height int
}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:  title,
		Width:  60,
		Height: 10,
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	maxVal := c.maxValue()
	if len(c.Series) == 0 || maxVal <= 0 || c.Height < 2 || c.Width <= yAxisWidth+3 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var out strings.Builder
	if c.Title != "" {
		out.WriteString(tuistyles.TitleStyle.Render(c.Title))
		out.WriteString("\n")
	}

	plotWidth := c.Width - yAxisWidth - 3
	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", plotWidth))
	}

	for idx, series := range c.Series {
		char := seriesChar(idx)
		prevX, prevY := -1, -1
		for i, point := range series.Points {
			x := c.column(i, len(series.Points), plotWidth)
			y := c.row(point, maxVal)
			if prevX >= 0 {
				drawLine(grid, prevX, prevY, x, y)
			}
			grid[y][x] = char
			prevX, prevY = x, y
		}
	}

	axisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for i, line := range grid {
		label := ""
		if i == 0 || i == c.Height-1 || i == c.Height/2 {
			label = formatChartValue(maxVal * float64(c.Height-1-i) / float64(c.Height-1))
		}
		out.WriteString(axisStyle.Render(label))
		out.WriteString(" │ ")
		out.WriteString(c.colorize(string(line)))
		out.WriteString("\n")
	}
	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", plotWidth+1))

	if n := len(c.Labels); n > 0 {
		first, last := c.Labels[0], c.Labels[n-1]
		gap := plotWidth - len(first) - len(last)
		if gap < 1 {
			gap = 1
		}
		out.WriteString("\n")
		out.WriteString(strings.Repeat(" ", yAxisWidth+3))
		out.WriteString(tuistyles.SubtitleStyle.Render(first + strings.Repeat(" ", gap) + last))
	}

	if len(c.Series) > 1 {
		out.WriteString("\n")
		out.WriteString(c.renderLegend())
	}
	return out.String()
}

func (c *ASCIIChart) maxValue() float64 {
	maxVal := 0.0
	for _, series := range c.Series {
		for _, p := range series.Points {
			maxVal = math.Max(maxVal, p)
		}
	}
	return maxVal
}

func (c *ASCIIChart) column(i, n, width int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Round(float64(i) / float64(n-1) * float64(width-1)))
}

func (c *ASCIIChart) row(value, maxVal float64) int {
	value = math.Max(0, math.Min(value, maxVal))
	return c.Height - 1 - int(math.Round(value/maxVal*float64(c.Height-1)))
}

// colorize applies a single-series color; multi-series charts rely on glyphs
func (c *ASCIIChart) colorize(line string) string {
	if len(c.Series) != 1 || c.Series[0].Color == "" {
		return line
	}
	return lipgloss.NewStyle().Foreground(c.Series[0].Color).Render(line)
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, series := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(series.Color).Render(string(seriesChar(i)))
		items = append(items, symbol+" "+series.Name)
	}
	return tuistyles.SubtitleStyle.Render("Legend: " + strings.Join(items, " • "))
}

func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine connects two grid cells with Bresenham's algorithm
func drawLine(grid [][]rune, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if grid[y0][x0] == ' ' {
			grid[y0][x0] = '·'
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// formatChartValue abbreviates a yen amount for the Y axis
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1_000_000:
		return fmt.Sprintf("¥%.1fM", value/1_000_000)
	case math.Abs(value) >= 1_000:
		return fmt.Sprintf("¥%.0fK", value/1_000)
	default:
		return fmt.Sprintf("¥%.0f", value)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
