package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Method",
		"Term (Years)",
		"Annual Rate %",
		"Bonus Principal",
		"First Month Payment",
		"Bonus Month Delta",
		"Total Interest",
		"Total Payment",
		"Payment Diff from Base",
		"Interest Diff from Base",
		"Interest % Change",
		"Months Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	p := result.Parameters
	return []string{
		result.ScenarioName,
		scenarioType,
		string(p.Method),
		formatInt(p.TermYears),
		p.AnnualRatePercent.String(),
		p.BonusPrincipal.StringFixed(0),
		result.FirstMonthPayment.StringFixed(0),
		result.BonusMonthDelta.StringFixed(0),
		result.TotalInterest.StringFixed(0),
		result.TotalPayment.StringFixed(0),
		result.PaymentDiffFromBase.StringFixed(0),
		result.InterestDiffFromBase.StringFixed(0),
		result.InterestPctFromBase.StringFixed(2),
		formatInt(result.MonthsDiffFromBase),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
