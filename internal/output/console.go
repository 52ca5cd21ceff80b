package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/mortgo/internal/domain"
)

const rule = "================================================================================"

// ConsoleFormatter renders a fixed-width text report for the terminal
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	p := report.Parameters

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, strings.ToUpper(report.Title()))
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "LOAN PARAMETERS")
	fmt.Fprintln(&buf, "---------------")
	fmt.Fprintf(&buf, "Principal:         %s (%s)\n", FormatYen(p.Principal), FormatManYen(p.Principal))
	fmt.Fprintf(&buf, "Annual Rate:       %s\n", FormatPercentage(p.AnnualRatePercent))
	fmt.Fprintf(&buf, "Term:              %d years (%d months)\n", p.TermYears, p.TotalMonths())
	fmt.Fprintf(&buf, "Method:            %s\n", p.Method.Label())
	if p.BonusEnabled {
		fmt.Fprintf(&buf, "Bonus Principal:   %s (every %d months)\n", FormatYen(p.BonusPrincipal), domain.BonusInterval)
	} else {
		fmt.Fprintln(&buf, "Bonus Principal:   none")
	}
	fmt.Fprintln(&buf)

	s := report.Summary
	fmt.Fprintln(&buf, "SUMMARY")
	fmt.Fprintln(&buf, "-------")
	fmt.Fprintf(&buf, "First Month Payment: %s\n", FormatYen(s.FirstMonthPayment))
	if !report.MonthlyPayment.IsZero() {
		fmt.Fprintf(&buf, "Fixed Payment:       %s\n", FormatYen(report.MonthlyPayment))
	}
	if !report.BonusPayment.IsZero() {
		fmt.Fprintf(&buf, "Fixed Bonus Payment: %s\n", FormatYen(report.BonusPayment))
	}
	if s.BonusMonthDelta != nil {
		fmt.Fprintf(&buf, "Bonus Month Extra:   %s\n", FormatYen(*s.BonusMonthDelta))
	}
	fmt.Fprintf(&buf, "Total Interest:      %s\n", FormatYen(s.TotalInterest))
	fmt.Fprintf(&buf, "Total Payment:       %s\n", FormatYen(s.TotalPayment))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "PAYMENT SCHEDULE")
	fmt.Fprintln(&buf, "----------------")
	fmt.Fprintf(&buf, "%5s %4s %14s %14s %14s %16s\n", "Month", "Year", "Payment", "Principal", "Interest", "Balance")
	for _, row := range report.Rows {
		marker := ""
		if row.IsBonusMonth {
			marker = " *"
		}
		fmt.Fprintf(&buf, "%5d %4d %14s %14s %14s %16s%s\n",
			row.Month, row.Year,
			FormatYen(row.Payment), FormatYen(row.Principal), FormatYen(row.Interest), FormatYen(row.Balance),
			marker)
	}
	if report.Truncated() {
		fmt.Fprintf(&buf, "... %d of %d months shown\n", len(report.Rows), report.TotalRows)
	}
	if p.BonusEnabled {
		fmt.Fprintln(&buf, "* bonus month")
	}

	if len(report.Yearly) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "YEARLY SUMMARY")
		fmt.Fprintln(&buf, "--------------")
		fmt.Fprintf(&buf, "%4s %16s %16s %14s %16s\n", "Year", "Payment", "Principal", "Interest", "Balance")
		for _, y := range report.Yearly {
			fmt.Fprintf(&buf, "%4d %16s %16s %14s %16s\n",
				y.Year, FormatYen(y.Payment), FormatYen(y.Principal), FormatYen(y.Interest), FormatYen(y.Balance))
		}
	}

	return buf.Bytes(), nil
}
