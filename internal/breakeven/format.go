package breakeven

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/mortgo/internal/output"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for an optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("AFFORDABILITY RESULTS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Target:          %s\n", tf.targetLabel(result.Target)))
	sb.WriteString(fmt.Sprintf("Monthly Budget:  %s\n", output.FormatYen(result.Budget)))
	sb.WriteString(fmt.Sprintf("Status:          %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:      %d\n", result.Iterations))
	if result.Message != "" {
		sb.WriteString(fmt.Sprintf("Detail:          %s\n", result.Message))
	}
	sb.WriteString("\n")

	if !result.Success {
		return sb.String()
	}

	p := result.Parameters
	sb.WriteString("BREAK-EVEN LOAN\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Loan Amount:     %s\n", output.FormatManYen(p.Principal)))
	sb.WriteString(fmt.Sprintf("Annual Rate:     %s\n", output.FormatPercentage(p.AnnualRatePercent)))
	sb.WriteString(fmt.Sprintf("Term:            %d years\n", p.TermYears))
	sb.WriteString(fmt.Sprintf("Method:          %s\n", p.Method.Label()))
	if p.BonusEnabled {
		sb.WriteString(fmt.Sprintf("Bonus Share:     %s\n", output.FormatManYen(p.BonusPrincipal)))
	}
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Peak Payment:    %s\n", output.FormatYen(result.PeakPayment)))
	sb.WriteString(fmt.Sprintf("Headroom:        %s\n", output.FormatYen(result.Budget.Sub(result.PeakPayment))))
	sb.WriteString(fmt.Sprintf("Total Interest:  %s\n", output.FormatYen(result.TotalInterest)))
	sb.WriteString(fmt.Sprintf("Total Payment:   %s\n", output.FormatYen(result.TotalPayment)))
	return sb.String()
}

// FormatMulti formats the solutions for every target side by side
func (tf *TableFormatter) FormatMulti(result *MultiResult) string {
	var sb strings.Builder

	sb.WriteString("AFFORDABILITY BY TARGET\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Monthly Budget: %s\n\n", output.FormatYen(result.Budget)))
	sb.WriteString(fmt.Sprintf("%-14s %16s %9s %7s %12s %15s\n",
		"Target", "Loan Amount", "Rate", "Term", "Peak", "Total Interest"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, r := range result.Results {
		if !r.Success {
			sb.WriteString(fmt.Sprintf("%-14s %s\n", tf.targetLabel(r.Target), r.Message))
			continue
		}
		sb.WriteString(fmt.Sprintf("%-14s %16s %9s %7s %12s %15s\n",
			tf.targetLabel(r.Target),
			output.FormatManYen(r.Parameters.Principal),
			output.FormatPercentage(r.Parameters.AnnualRatePercent),
			fmt.Sprintf("%dy", r.Parameters.TermYears),
			output.FormatYen(r.PeakPayment),
			output.FormatYen(r.TotalInterest)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMulti formats multi-target results as JSON
func (jf *JSONFormatter) FormatMulti(result *MultiResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v interface{}) (string, error) {
	data, err := output.MarshalJSON(v, jf.Pretty)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Within budget"
	}
	return "⚠ Budget cannot be met"
}

func (tf *TableFormatter) targetLabel(t OptimizationTarget) string {
	switch t {
	case OptimizeLoanAmount:
		return "Loan amount"
	case OptimizeTerm:
		return "Term"
	case OptimizeRate:
		return "Rate"
	default:
		return string(t)
	}
}
