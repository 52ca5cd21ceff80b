package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mortgo/internal/config"
	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/rgehrsitz/mortgo/internal/tui/components"
	"github.com/rgehrsitz/mortgo/internal/tui/tuimsg"
	"github.com/rgehrsitz/mortgo/internal/tui/tuistyles"
)

// Field identifies one input of the simulator form
type Field int

const (
	FieldAmount Field = iota
	FieldRate
	FieldYears
	FieldMethod
	FieldBonus
	FieldBonusAmount
	fieldCount
)

// Form defaults and slider steps
var (
	DefaultAmountManYen = decimal.NewFromInt(3500)
	DefaultRatePercent  = decimal.RequireFromString("0.525")
	DefaultTermYears    = decimal.NewFromInt(35)

	amountStep = decimal.NewFromInt(10)
	rateStep   = decimal.RequireFromString("0.001")
	yearsStep  = decimal.NewFromInt(1)
)

// coarseSteps is how many steps pgup/pgdown move a slider
const coarseSteps = 10

type simulatorKeys struct {
	Up, Down, Left, Right, CoarseUp, CoarseDown key.Binding
	Toggle, Edit, Cancel, NextScenario, Reset      key.Binding
}

var keys = simulatorKeys{
	Up:           key.NewBinding(key.WithKeys("up", "k", "shift+tab")),
	Down:         key.NewBinding(key.WithKeys("down", "j", "tab")),
	Left:         key.NewBinding(key.WithKeys("left", "h")),
	Right:        key.NewBinding(key.WithKeys("right", "l")),
	CoarseUp:     key.NewBinding(key.WithKeys("pgup", "]")),
	CoarseDown:   key.NewBinding(key.WithKeys("pgdown", "[")),
	Toggle:       key.NewBinding(key.WithKeys(" ")),
	Edit:         key.NewBinding(key.WithKeys("enter")),
	Cancel:       key.NewBinding(key.WithKeys("esc")),
	NextScenario: key.NewBinding(key.WithKeys("n")),
	Reset:        key.NewBinding(key.WithKeys("r")),
}

// SimulatorModel is the loan form. Every change emits a
// ParametersChangedMsg so the root model can recalculate.
type SimulatorModel struct {
	name        string
	amount      *components.ParameterSlider
	rate        *components.ParameterSlider
	years       *components.ParameterSlider
	bonusAmount *components.ParameterSlider
	method      domain.Method
	bonus       bool

	focused Field
	editing bool
	input   textinput.Model
	editErr string

	scenarios   []domain.LoanInput
	scenarioIdx int

	width  int
	height int
}

// NewSimulatorModel creates the form with the default loan
func NewSimulatorModel() *SimulatorModel {
	input := textinput.New()
	input.CharLimit = 12
	input.Width = 14

	m := &SimulatorModel{input: input, scenarioIdx: -1}
	m.reset()
	return m
}

func (m *SimulatorModel) reset() {
	m.name = "Simulator"
	m.amount = components.NewParameterSlider("Loan amount", DefaultAmountManYen,
		config.MinLoanManYen, config.MaxLoanManYen, amountStep).
		WithUnit(" man-yen")
	m.rate = components.NewParameterSlider("Annual rate", DefaultRatePercent,
		decimal.Zero, config.MaxRatePercent, rateStep).
		WithPlaces(3).
		WithUnit("%")
	m.years = components.NewParameterSlider("Term", DefaultTermYears,
		decimal.NewFromInt(config.MinTermYears), decimal.NewFromInt(config.MaxTermYears), yearsStep).
		WithUnit(" years")
	m.bonusAmount = components.NewParameterSlider("Bonus share", decimal.Zero,
		decimal.Zero, config.MaxBonusAmount(DefaultAmountManYen), amountStep).
		WithUnit(" man-yen").
		WithDescription("Principal repaid through semi-annual bonus payments")
	m.method = domain.EqualInstallment
	m.bonus = false
	m.setFocus(m.focused)
}

// SetScenarios makes the scenarios of a file available with the 'n' key
// and loads the first one.
func (m *SimulatorModel) SetScenarios(scenarios []domain.LoanInput) tea.Cmd {
	m.scenarios = scenarios
	m.scenarioIdx = -1
	if len(scenarios) == 0 {
		return nil
	}
	return m.nextScenario()
}

// LoadScenario copies a loan into the form, clamped to the form limits
func (m *SimulatorModel) LoadScenario(in domain.LoanInput) {
	m.name = in.Name
	if m.name == "" {
		m.name = "Simulator"
	}
	m.amount.SetValue(in.LoanAmountManYen)
	m.rate.SetValue(in.AnnualRatePercent)
	m.years.SetValue(decimal.NewFromInt(int64(in.TermYears)))
	if method, err := domain.ParseMethod(in.Method); err == nil {
		m.method = method
	}
	m.bonus = in.Bonus.Enabled
	m.bonusAmount.SetMax(config.MaxBonusAmount(m.amount.Value))
	m.bonusAmount.SetValue(in.Bonus.AmountManYen)
}

// Input returns the loan the form currently describes
func (m *SimulatorModel) Input() domain.LoanInput {
	bonusAmount := decimal.Zero
	if m.bonus {
		bonusAmount = m.bonusAmount.Value
	}
	return domain.LoanInput{
		Name:              m.name,
		LoanAmountManYen:  m.amount.Value,
		AnnualRatePercent: m.rate.Value,
		TermYears:         int(m.years.Value.IntPart()),
		Method:            string(m.method),
		Bonus:             domain.BonusInput{Enabled: m.bonus, AmountManYen: bonusAmount},
	}
}

// Focused returns the focused field
func (m *SimulatorModel) Focused() Field {
	return m.focused
}

// Editing reports whether a value is being typed in
func (m *SimulatorModel) Editing() bool {
	return m.editing
}

// SetSize updates the scene dimensions
func (m *SimulatorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the simulator scene
func (m *SimulatorModel) Update(msg tea.Msg) (*SimulatorModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.editing {
		return m.handleEditKey(keyMsg)
	}
	return m.handleKeyPress(keyMsg)
}

func (m *SimulatorModel) handleKeyPress(msg tea.KeyMsg) (*SimulatorModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		m.setFocus((m.focused + fieldCount - 1) % fieldCount)
	case key.Matches(msg, keys.Down):
		m.setFocus((m.focused + 1) % fieldCount)
	case key.Matches(msg, keys.Left):
		return m, m.adjust(-1)
	case key.Matches(msg, keys.Right):
		return m, m.adjust(1)
	case key.Matches(msg, keys.CoarseDown):
		return m, m.adjust(-coarseSteps)
	case key.Matches(msg, keys.CoarseUp):
		return m, m.adjust(coarseSteps)
	case key.Matches(msg, keys.Toggle):
		return m, m.toggle()
	case key.Matches(msg, keys.Edit):
		if m.slider(m.focused) == nil {
			return m, m.toggle()
		}
		return m, m.startEdit()
	case key.Matches(msg, keys.NextScenario):
		return m, m.nextScenario()
	case key.Matches(msg, keys.Reset):
		m.reset()
		return m, m.Changed()
	}
	return m, nil
}

func (m *SimulatorModel) handleEditKey(msg tea.KeyMsg) (*SimulatorModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel):
		m.stopEdit()
		return m, nil
	case key.Matches(msg, keys.Edit):
		value, err := decimal.NewFromString(strings.TrimSpace(m.input.Value()))
		if err != nil {
			m.editErr = fmt.Sprintf("not a number: %q", m.input.Value())
			return m, nil
		}
		slider := m.slider(m.focused)
		m.stopEdit()
		if slider.SetValue(value) {
			m.afterChange()
			return m, m.Changed()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *SimulatorModel) startEdit() tea.Cmd {
	slider := m.slider(m.focused)
	if slider == nil || (m.focused == FieldBonusAmount && !m.bonus) {
		return nil
	}
	m.editing = true
	m.editErr = ""
	m.input.Prompt = slider.Label + ": "
	m.input.SetValue(slider.Value.StringFixed(slider.Places))
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *SimulatorModel) stopEdit() {
	m.editing = false
	m.editErr = ""
	m.input.Blur()
	m.input.Reset()
}

// slider returns the slider behind a numeric field, nil for toggles
func (m *SimulatorModel) slider(f Field) *components.ParameterSlider {
	switch f {
	case FieldAmount:
		return m.amount
	case FieldRate:
		return m.rate
	case FieldYears:
		return m.years
	case FieldBonusAmount:
		return m.bonusAmount
	default:
		return nil
	}
}

func (m *SimulatorModel) setFocus(f Field) {
	m.focused = f
	for _, field := range []Field{FieldAmount, FieldRate, FieldYears, FieldBonusAmount} {
		m.slider(field).SetFocused(field == f)
	}
}

func (m *SimulatorModel) adjust(steps int) tea.Cmd {
	slider := m.slider(m.focused)
	if slider == nil || (m.focused == FieldBonusAmount && !m.bonus) {
		return nil
	}
	var changed bool
	if steps > 0 {
		changed = slider.Increment(steps)
	} else {
		changed = slider.Decrement(-steps)
	}
	if !changed {
		return nil
	}
	m.afterChange()
	return m.Changed()
}

func (m *SimulatorModel) toggle() tea.Cmd {
	switch m.focused {
	case FieldMethod:
		if m.method == domain.EqualInstallment {
			m.method = domain.EqualPrincipal
		} else {
			m.method = domain.EqualInstallment
		}
	case FieldBonus:
		m.bonus = !m.bonus
	default:
		return nil
	}
	return m.Changed()
}

// afterChange keeps the bonus share within half of the loan
func (m *SimulatorModel) afterChange() {
	m.bonusAmount.SetMax(config.MaxBonusAmount(m.amount.Value))
}

func (m *SimulatorModel) nextScenario() tea.Cmd {
	if len(m.scenarios) == 0 {
		return nil
	}
	m.scenarioIdx = (m.scenarioIdx + 1) % len(m.scenarios)
	m.LoadScenario(m.scenarios[m.scenarioIdx])
	return m.Changed()
}

// Changed emits the loan the form currently describes
func (m *SimulatorModel) Changed() tea.Cmd {
	in := m.Input()
	return func() tea.Msg {
		return tuimsg.ParametersChangedMsg{Input: in}
	}
}

// View renders the form
func (m *SimulatorModel) View() string {
	var rows []string
	rows = append(rows, tuistyles.TitleStyle.Render(m.name), "")
	rows = append(rows, m.amount.Render(), "", m.rate.Render(), "", m.years.Render(), "")
	rows = append(rows, m.renderMethod(), m.renderBonusToggle())
	if m.bonus {
		rows = append(rows, "", m.bonusAmount.Render())
	}

	if m.editing {
		rows = append(rows, "", m.input.View())
		if m.editErr != "" {
			rows = append(rows, tuistyles.ErrorStyle.Render(m.editErr))
		}
	}

	rows = append(rows, "", tuistyles.HelpStyle.Render(m.helpLine()))
	return tuistyles.BorderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *SimulatorModel) renderMethod() string {
	radio := func(method domain.Method) string {
		if m.method == method {
			return "(•) " + method.Label()
		}
		return "( ) " + method.Label()
	}
	line := fmt.Sprintf("Method  %s  %s", radio(domain.EqualInstallment), radio(domain.EqualPrincipal))
	return m.fieldStyle(FieldMethod).Render(line)
}

func (m *SimulatorModel) renderBonusToggle() string {
	box := "[ ]"
	if m.bonus {
		box = "[x]"
	}
	return m.fieldStyle(FieldBonus).Render(box + " Semi-annual bonus repayment")
}

func (m *SimulatorModel) fieldStyle(f Field) lipgloss.Style {
	if m.focused == f {
		return tuistyles.ParameterValueStyle.Foreground(tuistyles.ColorAccent)
	}
	return tuistyles.ParameterLabelStyle
}

func (m *SimulatorModel) helpLine() string {
	if m.editing {
		return "Enter apply • Esc cancel"
	}
	help := "↑/↓ field • ←/→ adjust • [/] ×10 • Enter type value • Space toggle • r reset"
	if len(m.scenarios) > 0 {
		help += fmt.Sprintf(" • n next scenario (%d/%d)", m.scenarioIdx+1, len(m.scenarios))
	}
	return help
}
