package scenes

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/mortgo/internal/calculation"
	"github.com/rgehrsitz/mortgo/internal/compare"
	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/rgehrsitz/mortgo/internal/tui/tuimsg"
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// changedInput runs cmd and returns the loan it emits
func changedInput(t *testing.T, cmd tea.Cmd) domain.LoanInput {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuimsg.ParametersChangedMsg)
	require.True(t, ok, "expected ParametersChangedMsg")
	return msg.Input
}

func focus(m *SimulatorModel, f Field) {
	for m.Focused() != f {
		m.Update(keyPress("down"))
	}
}

func TestSimulator_Defaults(t *testing.T) {
	m := NewSimulatorModel()
	in := changedInput(t, m.Changed())

	assert.True(t, in.LoanAmountManYen.Equal(decimal.NewFromInt(3500)))
	assert.Equal(t, "0.525", in.AnnualRatePercent.StringFixed(3))
	assert.Equal(t, 35, in.TermYears)
	assert.Equal(t, string(domain.EqualInstallment), in.Method)
	assert.False(t, in.Bonus.Enabled)
	assert.True(t, in.Bonus.AmountManYen.IsZero())

	_, err := calculation.NormalizeInput(in)
	assert.NoError(t, err)
}

func TestSimulator_AdjustEmitsChange(t *testing.T) {
	m := NewSimulatorModel()
	assert.Equal(t, FieldAmount, m.Focused())

	_, cmd := m.Update(keyPress("right"))
	assert.True(t, changedInput(t, cmd).LoanAmountManYen.Equal(decimal.NewFromInt(3510)))

	_, cmd = m.Update(keyPress("["))
	assert.True(t, changedInput(t, cmd).LoanAmountManYen.Equal(decimal.NewFromInt(3410)))

	focus(m, FieldRate)
	_, cmd = m.Update(keyPress("left"))
	assert.Equal(t, "0.524", changedInput(t, cmd).AnnualRatePercent.StringFixed(3))

	focus(m, FieldYears)
	for i := 0; i < 60; i++ {
		m.Update(keyPress("right"))
	}
	_, cmd = m.Update(keyPress("right"))
	assert.Nil(t, cmd, "no change at the upper limit")
	assert.Equal(t, 50, m.Input().TermYears)
}

func TestSimulator_Toggles(t *testing.T) {
	m := NewSimulatorModel()

	focus(m, FieldMethod)
	_, cmd := m.Update(keyPress("space"))
	assert.Equal(t, string(domain.EqualPrincipal), changedInput(t, cmd).Method)
	_, cmd = m.Update(keyPress("enter"))
	assert.Equal(t, string(domain.EqualInstallment), changedInput(t, cmd).Method)

	focus(m, FieldBonusAmount)
	_, cmd = m.Update(keyPress("right"))
	assert.Nil(t, cmd, "bonus share is fixed while bonus repayments are off")

	focus(m, FieldBonus)
	_, cmd = m.Update(keyPress("space"))
	assert.True(t, changedInput(t, cmd).Bonus.Enabled)

	focus(m, FieldBonusAmount)
	_, cmd = m.Update(keyPress("]"))
	in := changedInput(t, cmd)
	assert.True(t, in.Bonus.AmountManYen.Equal(decimal.NewFromInt(100)))
	assert.Contains(t, m.View(), "[x] Semi-annual bonus repayment")
}

func TestSimulator_BonusCappedAtHalfTheLoan(t *testing.T) {
	m := NewSimulatorModel()
	focus(m, FieldBonus)
	m.Update(keyPress("space"))

	focus(m, FieldBonusAmount)
	for i := 0; i < 30; i++ {
		m.Update(keyPress("]"))
	}
	assert.True(t, m.Input().Bonus.AmountManYen.Equal(decimal.NewFromInt(1750)))

	focus(m, FieldAmount)
	for i := 0; i < 5; i++ {
		m.Update(keyPress("["))
	}
	// 3000 man-yen allows at most 1500
	in := m.Input()
	assert.True(t, in.LoanAmountManYen.Equal(decimal.NewFromInt(3000)))
	assert.True(t, in.Bonus.AmountManYen.Equal(decimal.NewFromInt(1500)))
}

func TestSimulator_TypedValue(t *testing.T) {
	m := NewSimulatorModel()
	focus(m, FieldRate)

	_, _ = m.Update(keyPress("enter"))
	require.True(t, m.Editing())

	for i := 0; i < 10; i++ {
		m.Update(keyPress("backspace"))
	}
	m.Update(keyPress("1.2"))
	_, cmd := m.Update(keyPress("enter"))
	assert.False(t, m.Editing())
	assert.Equal(t, "1.200", changedInput(t, cmd).AnnualRatePercent.StringFixed(3))

	m.Update(keyPress("enter"))
	m.Update(keyPress("x"))
	_, cmd = m.Update(keyPress("enter"))
	assert.Nil(t, cmd)
	assert.True(t, m.Editing(), "invalid input keeps the editor open")
	assert.Contains(t, m.View(), "not a number")

	m.Update(keyPress("esc"))
	assert.False(t, m.Editing())
	assert.Equal(t, "1.200", m.Input().AnnualRatePercent.StringFixed(3))
}

func TestSimulator_Scenarios(t *testing.T) {
	m := NewSimulatorModel()
	scenarios := []domain.LoanInput{
		{Name: "A", LoanAmountManYen: decimal.NewFromInt(2000), AnnualRatePercent: decimal.NewFromInt(1), TermYears: 20, Method: "linear"},
		{Name: "B", LoanAmountManYen: decimal.NewFromInt(4000), AnnualRatePercent: decimal.Zero, TermYears: 10,
			Bonus: domain.BonusInput{Enabled: true, AmountManYen: decimal.NewFromInt(500)}},
	}

	in := changedInput(t, m.SetScenarios(scenarios))
	assert.Equal(t, "A", in.Name)
	assert.Equal(t, string(domain.EqualPrincipal), in.Method)

	_, cmd := m.Update(keyPress("n"))
	in = changedInput(t, cmd)
	assert.Equal(t, "B", in.Name)
	assert.True(t, in.Bonus.AmountManYen.Equal(decimal.NewFromInt(500)))

	_, cmd = m.Update(keyPress("n"))
	assert.Equal(t, "A", changedInput(t, cmd).Name)

	_, cmd = m.Update(keyPress("r"))
	in = changedInput(t, cmd)
	assert.True(t, in.LoanAmountManYen.Equal(decimal.NewFromInt(3500)))
}

func calculate(t *testing.T, in domain.LoanInput) *domain.ScheduleResult {
	t.Helper()
	result, err := calculation.NewEngine().Calculate(context.Background(), in)
	require.NoError(t, err)
	return result
}

func TestResultsModel(t *testing.T) {
	m := NewResultsModel()
	assert.Contains(t, m.View(), "Adjust the loan")
	assert.Nil(t, m.Cards())

	in := NewSimulatorModel().Input()
	m.SetSize(140, 60)
	m.SetResult(calculate(t, in))

	cards := m.Cards()
	require.Len(t, cards, 3)
	assert.Equal(t, "¥91,242", cards[0].Value)
	assert.Equal(t, "¥3,321,451", cards[1].Value)

	view := m.View()
	assert.Contains(t, view, "Monthly payment")
	assert.Contains(t, view, "Remaining balance by year")
	assert.Contains(t, view, "First 24 months")

	in.TermYears = 10
	in.Bonus = domain.BonusInput{Enabled: true, AmountManYen: decimal.NewFromInt(500)}
	m.SetResult(calculate(t, in))
	cards = m.Cards()
	require.Len(t, cards, 4)
	assert.Equal(t, "¥256,948", cards[1].Value)
}

func TestScheduleModel(t *testing.T) {
	m := NewScheduleModel()
	assert.Contains(t, m.View(), "No schedule")

	m.SetSize(120, 40)
	m.SetResult(calculate(t, NewSimulatorModel().Input()))
	assert.Contains(t, m.View(), "row 1 of 420")

	m.Update(keyPress("down"))
	assert.Contains(t, m.View(), "row 2 of 420")
}

func TestCompareModel(t *testing.T) {
	m := NewCompareModel()
	assert.Contains(t, m.View(), "No comparison")

	engine := calculation.NewEngine()
	params, err := calculation.NormalizeInput(NewSimulatorModel().Input())
	require.NoError(t, err)
	set, err := compare.NewCompareEngine(engine).CompareMethods(context.Background(), "Simulator", params)
	require.NoError(t, err)

	m.SetComparison(set)
	view := m.View()
	assert.Contains(t, view, "Equal installment (current)")
	assert.Contains(t, view, "Equal principal")
	assert.Contains(t, view, "+¥7,403")
	assert.Contains(t, view, "¥-98,365")
}
