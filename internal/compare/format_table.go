package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/mortgo/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing loans
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("LOAN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 96) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 30
	numWidth := 15

	sb.WriteString(fmt.Sprintf("%-*s %-18s %5s %7s %*s %*s %*s\n",
		nameWidth, "Scenario",
		"Method", "Years", "Rate",
		numWidth, "1st Payment",
		numWidth, "Total Interest",
		numWidth, "Total Payment"))
	sb.WriteString(strings.Repeat("-", 96) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 96) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			sb.WriteString(fmt.Sprintf("  First Payment:    %s%s\n",
				tf.deltaSymbol(alt.PaymentDiffFromBase), output.FormatYen(alt.PaymentDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Total Interest:   %s%s (%s%%)\n",
				tf.deltaSymbol(alt.InterestDiffFromBase),
				output.FormatYen(alt.InterestDiffFromBase),
				alt.InterestPctFromBase.StringFixed(1)))
			if alt.MonthsDiffFromBase != 0 {
				sign := "+"
				if alt.MonthsDiffFromBase < 0 {
					sign = ""
				}
				sb.WriteString(fmt.Sprintf("  Term:             %s%d months\n", sign, alt.MonthsDiffFromBase))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}
	p := result.Parameters

	return fmt.Sprintf("%-*s %-18s %5d %7s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		p.Method.Label(), p.TermYears, p.AnnualRatePercent.StringFixed(3)+"%",
		numWidth, output.FormatYen(result.FirstMonthPayment),
		numWidth, output.FormatYen(result.TotalInterest),
		numWidth, output.FormatYen(result.TotalPayment))
}

// formatDecimal formats a decimal compactly (thousands or millions)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns "+" for increases; FormatYen carries the minus sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary of interest changes
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.InterestDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+¥%s", tf.formatDecimal(alt.InterestDiffFromBase))
		} else if alt.InterestDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-¥%s", tf.formatDecimal(alt.InterestDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
