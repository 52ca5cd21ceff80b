package calculation

import (
	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Summarize derives the headline figures from a completed schedule
func Summarize(result *domain.ScheduleResult) domain.ScheduleSummary {
	summary := domain.ScheduleSummary{
		Months:        len(result.Rows),
		TotalInterest: result.TotalInterest,
		TotalPayment:  result.Parameters.Principal.Add(result.TotalInterest),
	}
	if len(result.Rows) == 0 {
		return summary
	}

	for _, row := range result.Rows {
		summary.TotalPrincipal = summary.TotalPrincipal.Add(row.Principal)
	}
	summary.FirstMonthPayment = result.Rows[0].Payment
	summary.FinalBalance = result.Rows[len(result.Rows)-1].Balance

	// first bonus month against the month before it
	if result.Parameters.BonusEnabled && len(result.Rows) >= domain.BonusInterval {
		delta := result.Rows[domain.BonusInterval-1].Payment.Sub(result.Rows[domain.BonusInterval-2].Payment)
		summary.BonusMonthDelta = &delta
	}
	return summary
}

// YearlyBreakdown rolls the schedule up by loan year
func YearlyBreakdown(result *domain.ScheduleResult) []domain.YearlySummary {
	years := make([]domain.YearlySummary, 0, result.Parameters.TermYears)
	for _, row := range result.Rows {
		if len(years) == 0 || years[len(years)-1].Year != row.Year {
			years = append(years, domain.YearlySummary{Year: row.Year})
		}
		y := &years[len(years)-1]
		y.Payment = y.Payment.Add(row.Payment)
		y.Principal = y.Principal.Add(row.Principal)
		y.Interest = y.Interest.Add(row.Interest)
		y.Balance = row.Balance
	}
	return years
}

// VerifySchedule checks the engine invariants on a finished schedule: the
// principal portions sum to the loan, the balance never rises and ends at
// zero, and total payment equals principal plus interest.
func VerifySchedule(result *domain.ScheduleResult) error {
	params := result.Parameters
	if len(result.Rows) != params.TotalMonths() {
		return &domain.CalculationError{Reason: "schedule has the wrong number of rows"}
	}

	principalSum := decimal.Zero
	paymentSum := decimal.Zero
	previous := params.Principal
	for i, row := range result.Rows {
		if row.Month != i+1 {
			return &domain.CalculationError{Month: row.Month, Reason: "rows out of order"}
		}
		if row.Balance.GreaterThan(previous) {
			return &domain.CalculationError{Month: row.Month, Reason: "balance increased"}
		}
		previous = row.Balance
		principalSum = principalSum.Add(row.Principal)
		paymentSum = paymentSum.Add(row.Payment)
	}

	if !principalSum.Equal(params.Principal) {
		return &domain.CalculationError{Reason: "principal portions sum to " + principalSum.String() + ", expected " + params.Principal.String()}
	}
	if !previous.IsZero() {
		return &domain.CalculationError{Reason: "final balance is " + previous.String()}
	}
	if !paymentSum.Equal(result.TotalPayment) || !result.TotalPayment.Equal(params.Principal.Add(result.TotalInterest)) {
		return &domain.CalculationError{Reason: "total payment does not equal principal plus interest"}
	}
	return nil
}
