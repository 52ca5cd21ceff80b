package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mortgo/internal/tui/tuistyles"
)

// ParameterSlider displays an adjustable decimal parameter with a visual slider.
// Values always sit on the Min + k*Step grid and inside [Min, Max].
type ParameterSlider struct {
	Label       string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	Places      int32  // decimal places shown
	Unit        string // e.g. "%", " years", " man-yen"
	Width       int    // width of the slider bar
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a new parameter slider
func NewParameterSlider(label string, value, lo, hi, step decimal.Decimal) *ParameterSlider {
	p := &ParameterSlider{
		Label: label,
		Min:   lo,
		Max:   hi,
		Step:  step,
		Width: 30,
	}
	p.SetValue(value)
	return p
}

// WithUnit sets the unit suffix
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithPlaces sets the number of decimal places shown
func (p *ParameterSlider) WithPlaces(places int32) *ParameterSlider {
	p.Places = places
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// WithDescription adds a description/help text
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment moves the value up by n steps, stopping at Max
func (p *ParameterSlider) Increment(n int) bool {
	return p.SetValue(p.Value.Add(p.Step.Mul(decimal.NewFromInt(int64(n)))))
}

// Decrement moves the value down by n steps, stopping at Min
func (p *ParameterSlider) Decrement(n int) bool {
	return p.SetValue(p.Value.Sub(p.Step.Mul(decimal.NewFromInt(int64(n)))))
}

// SetValue snaps value to the step grid, clamps it to the range and reports
// whether the stored value changed.
func (p *ParameterSlider) SetValue(value decimal.Decimal) bool {
	if p.Step.IsPositive() {
		steps := value.Sub(p.Min).Div(p.Step).Round(0)
		value = p.Min.Add(steps.Mul(p.Step))
	}
	if value.LessThan(p.Min) {
		value = p.Min
	}
	if value.GreaterThan(p.Max) {
		value = p.Max
	}
	changed := !value.Equal(p.Value)
	p.Value = value
	return changed
}

// SetMax changes the upper bound and clamps the current value
func (p *ParameterSlider) SetMax(hi decimal.Decimal) bool {
	if hi.LessThan(p.Min) {
		hi = p.Min
	}
	p.Max = hi
	return p.SetValue(p.Value)
}

// Percentage returns the value's position in the range, 0 to 1
func (p *ParameterSlider) Percentage() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	return p.Value.Sub(p.Min).Div(span).InexactFloat64()
}

// FormatValue renders v with the slider's precision and unit
func (p *ParameterSlider) FormatValue(v decimal.Decimal) string {
	return v.StringFixed(p.Places) + p.Unit
}

// Render returns the styled parameter slider
func (p *ParameterSlider) Render() string {
	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary).Bold(true)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	content.WriteString(labelStyle.Render(p.Label))
	content.WriteString("  ")
	content.WriteString(valueStyle.Render(p.FormatValue(p.Value)))
	content.WriteString("\n")
	content.WriteString(p.renderSliderBar())

	rangeStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString("\n")
	content.WriteString(rangeStyle.Render(fmt.Sprintf("%s  ─  %s", p.FormatValue(p.Min), p.FormatValue(p.Max))))

	if p.Description != "" {
		content.WriteString("\n")
		content.WriteString(tuistyles.InfoStyle.Render(p.Description))
	}

	return content.String()
}

// renderSliderBar creates the visual slider bar
func (p *ParameterSlider) renderSliderBar() string {
	filled := int(float64(p.Width-1)*p.Percentage() + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > p.Width-1 {
		filled = p.Width - 1
	}

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(thumbStyle.Render(strings.Repeat("━", filled) + "●"))
	bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", p.Width-1-filled)))
	bar.WriteString("]")
	return bar.String()
}

// RenderCompact returns a compact single-line version
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	return fmt.Sprintf("%s %s", labelStyle.Render(p.Label+":"), valueStyle.Render(p.FormatValue(p.Value)))
}
