package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/rgehrsitz/mortgo/internal/output"
)

// OptimizeAllTargets solves every target against the same budget. A target
// that cannot be met is kept in the result with Success=false.
func (s *Solver) OptimizeAllTargets(ctx context.Context, base domain.LoanParameters, budget decimal.Decimal) (*MultiResult, error) {
	multi := &MultiResult{Budget: budget}
	for _, target := range Targets {
		result, err := s.Optimize(ctx, OptimizationRequest{
			Base:          base,
			Target:        target,
			MonthlyBudget: budget,
		})
		if err != nil {
			return nil, err
		}
		multi.Results = append(multi.Results, *result)
	}

	if !multi.anySuccess() {
		return nil, &BreakEvenError{
			Operation: "optimize_all_targets",
			Message:   "no target can meet the budget",
		}
	}
	multi.Recommendations = recommendations(base, multi)
	return multi, nil
}

func (m *MultiResult) anySuccess() bool {
	for _, r := range m.Results {
		if r.Success {
			return true
		}
	}
	return false
}

// Result returns the solution for target, or nil
func (m *MultiResult) Result(target OptimizationTarget) *OptimizationResult {
	for i := range m.Results {
		if m.Results[i].Target == target {
			return &m.Results[i]
		}
	}
	return nil
}

func recommendations(base domain.LoanParameters, m *MultiResult) []string {
	var recs []string

	if r := m.Result(OptimizeLoanAmount); r != nil && r.Success {
		recs = append(recs, fmt.Sprintf("Borrow at most %s over %d years at %s",
			output.FormatManYen(r.Parameters.Principal), base.TermYears, output.FormatPercentage(base.AnnualRatePercent)))
		if base.Principal.GreaterThan(r.Parameters.Principal) {
			recs = append(recs, fmt.Sprintf("⚠ The requested loan exceeds the budget by %s",
				output.FormatManYen(base.Principal.Sub(r.Parameters.Principal))))
		}
	}
	if r := m.Result(OptimizeTerm); r != nil && r.Success {
		rec := fmt.Sprintf("The shortest term that fits is %d years", r.Parameters.TermYears)
		if r.Parameters.TermYears < base.TermYears {
			saved := base.TermYears - r.Parameters.TermYears
			rec += fmt.Sprintf(" (%d years sooner than planned)", saved)
		}
		recs = append(recs, rec)
	}
	if r := m.Result(OptimizeRate); r != nil && r.Success {
		recs = append(recs, fmt.Sprintf("The payment stays within budget up to a rate of %s",
			output.FormatPercentage(r.Parameters.AnnualRatePercent)))
	}
	return recs
}
