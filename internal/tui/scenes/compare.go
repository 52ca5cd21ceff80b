package scenes

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mortgo/internal/compare"
	"github.com/rgehrsitz/mortgo/internal/output"
	"github.com/rgehrsitz/mortgo/internal/tui/components"
	"github.com/rgehrsitz/mortgo/internal/tui/tuistyles"
)

// CompareModel puts the current loan next to the same loan under the other
// repayment method.
type CompareModel struct {
	set   *compare.ComparisonSet
	width int
}

// NewCompareModel creates an empty compare scene
func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetComparison replaces the comparison on display
func (m *CompareModel) SetComparison(set *compare.ComparisonSet) {
	m.set = set
}

// SetSize updates the scene width
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
}

// View renders both methods as columns of metric cards
func (m *CompareModel) View() string {
	if m.set == nil || m.set.BaseResult == nil || len(m.set.AlternativeResults) == 0 {
		return tuistyles.InfoStyle.Render("No comparison available yet.")
	}

	base := m.set.BaseResult
	alt := m.set.AlternativeResults[0]

	baseColumn := lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render(base.Parameters.Method.Label()+" (current)"),
		components.NewMetricCard("First payment", output.FormatYen(base.FirstMonthPayment)).Render(),
		components.NewMetricCard("Final payment", output.FormatYen(base.FinalMonthPayment)).Render(),
		components.NewMetricCard("Total interest", output.FormatYen(base.TotalInterest)).Render(),
		components.NewMetricCard("Total payment", output.FormatYen(base.TotalPayment)).Render(),
	)

	altColumn := lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render(alt.Parameters.Method.Label()),
		components.NewMetricCard("First payment", output.FormatYen(alt.FirstMonthPayment)).
			WithDelta(alt.PaymentDiffFromBase, signedYen(alt.PaymentDiffFromBase), true).Render(),
		components.NewMetricCard("Final payment", output.FormatYen(alt.FinalMonthPayment)).
			WithDelta(alt.FinalMonthPayment.Sub(base.FinalMonthPayment),
				signedYen(alt.FinalMonthPayment.Sub(base.FinalMonthPayment)), true).Render(),
		components.NewMetricCard("Total interest", output.FormatYen(alt.TotalInterest)).
			WithDelta(alt.InterestDiffFromBase,
				fmt.Sprintf("%s (%s%%)", signedYen(alt.InterestDiffFromBase), alt.InterestPctFromBase.StringFixed(2)), true).Render(),
		components.NewMetricCard("Total payment", output.FormatYen(alt.TotalPayment)).
			WithDelta(alt.TotalPayment.Sub(base.TotalPayment), signedYen(alt.TotalPayment.Sub(base.TotalPayment)), true).Render(),
	)

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, baseColumn, "   ", altColumn)}
	if len(m.set.Recommendations) > 0 {
		rows = append(rows, "")
		for _, rec := range m.set.Recommendations {
			rows = append(rows, tuistyles.InfoStyle.Render("• "+rec))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func signedYen(amount decimal.Decimal) string {
	if amount.IsPositive() {
		return "+" + output.FormatYen(amount)
	}
	return output.FormatYen(amount)
}
