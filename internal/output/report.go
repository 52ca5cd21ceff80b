package output

import (
	"strings"

	"github.com/rgehrsitz/mortgo/internal/calculation"
	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultRowLimit is the number of schedule rows shown when no limit is given
const DefaultRowLimit = 24

// Report is the rendering view of one schedule: the summary, an excerpt of
// the rows and optionally the yearly roll-up.
type Report struct {
	Name           string                 `json:"name,omitempty" yaml:"name,omitempty"`
	Parameters     domain.LoanParameters  `json:"parameters" yaml:"parameters"`
	Summary        domain.ScheduleSummary `json:"summary" yaml:"summary"`
	MonthlyPayment decimal.Decimal        `json:"monthlyPayment" yaml:"monthly_payment"`
	BonusPayment   decimal.Decimal        `json:"bonusPayment" yaml:"bonus_payment"`
	TotalRows      int                    `json:"totalRows" yaml:"total_rows"`
	Rows           []domain.ScheduleRow   `json:"rows" yaml:"rows"`
	Yearly         []domain.YearlySummary `json:"yearly,omitempty" yaml:"yearly,omitempty"`
}

// ReportOptions controls how much of the schedule a report carries
type ReportOptions struct {
	RowLimit int  // 0 keeps the default excerpt, negative keeps every row
	Yearly   bool // include the yearly roll-up
}

// NewReport builds a report view over a finished schedule
func NewReport(name string, result *domain.ScheduleResult, opts ReportOptions) *Report {
	limit := opts.RowLimit
	if limit == 0 {
		limit = DefaultRowLimit
	}
	rows := result.Rows
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	report := &Report{
		Name:           name,
		Parameters:     result.Parameters,
		Summary:        calculation.Summarize(result),
		MonthlyPayment: result.MonthlyPayment,
		BonusPayment:   result.BonusPayment,
		TotalRows:      len(result.Rows),
		Rows:           rows,
	}
	if opts.Yearly {
		report.Yearly = calculation.YearlyBreakdown(result)
	}
	return report
}

// Truncated reports whether the row excerpt is shorter than the schedule
func (r *Report) Truncated() bool {
	return len(r.Rows) < r.TotalRows
}

// Title is the report heading
func (r *Report) Title() string {
	if r.Name != "" {
		return r.Name
	}
	return "Loan Schedule"
}

// FormatYen formats an amount as whole yen with thousands separators
func FormatYen(amount decimal.Decimal) string {
	return "¥" + groupThousands(amount.Round(0).StringFixed(0))
}

// FormatManYen formats a base-unit amount in man-yen
func FormatManYen(amount decimal.Decimal) string {
	return amount.Div(calculation.ManYen).StringFixed(1) + " man-yen"
}

// FormatPercentage formats a percentage value
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(3) + "%"
}

func groupThousands(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}
