package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mortgo/internal/calculation"
	"github.com/rgehrsitz/mortgo/internal/config"
	"github.com/rgehrsitz/mortgo/internal/domain"
)

// Solver finds the loan parameters at which the monthly payment meets a budget
type Solver struct {
	Engine  *calculation.Engine
	Options SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(engine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.Engine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// Optimize searches the request's target parameter. An infeasible request is
// reported through Success=false, not an error.
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}

	run := &search{solver: s, req: req}
	switch req.Target {
	case OptimizeLoanAmount:
		return run.loanAmount(ctx)
	case OptimizeTerm:
		return run.term(ctx)
	case OptimizeRate:
		return run.rate(ctx)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// search carries the state of one Optimize call
type search struct {
	solver     *Solver
	req        OptimizationRequest
	iterations int
}

// fits builds the schedule for params and reports whether its highest
// ordinary-month payment is within budget
func (r *search) fits(ctx context.Context, params domain.LoanParameters) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.iterations++
	if r.iterations > r.req.MaxIterations {
		return false, &BreakEvenError{
			Operation: "optimize_" + string(r.req.Target),
			Message:   fmt.Sprintf("no convergence after %d iterations", r.req.MaxIterations),
		}
	}
	result, err := r.solver.Engine.BuildSchedule(ctx, params)
	if err != nil {
		return false, &BreakEvenError{
			Operation: "optimize_" + string(r.req.Target),
			Message:   "failed to build schedule",
			Cause:     err,
		}
	}
	return PeakPayment(result).LessThanOrEqual(r.req.MonthlyBudget), nil
}

func (r *search) loanAmount(ctx context.Context) (*OptimizationResult, error) {
	at := func(n int) domain.LoanParameters {
		p := r.req.Base
		p.Principal = decimal.NewFromInt(int64(n)).Mul(calculation.ManYen)
		return p
	}
	// the bonus share may be at most half of the loan
	bonus := r.req.Base.BonusPrincipal.Div(calculation.ManYen)
	lo := int(bonus.Div(config.MaxBonusFraction).Ceil().IntPart())
	if lo < 1 {
		lo = 1
	}
	hi := int(DefaultMaxLoanManYen.IntPart())
	n, ok, err := r.largest(ctx, lo, hi, at)
	if err != nil {
		return nil, err
	}
	return r.finish(ctx, at(n), ok, "no loan amount fits the budget")
}

func (r *search) term(ctx context.Context) (*OptimizationResult, error) {
	at := func(n int) domain.LoanParameters {
		p := r.req.Base
		p.TermYears = n
		return p
	}
	// fits becomes true as the term grows, so search the reversed range
	rev := func(n int) domain.LoanParameters { return at(domain.MaxTermYears + 1 - n) }
	n, ok, err := r.largest(ctx, 1, domain.MaxTermYears, rev)
	if err != nil {
		return nil, err
	}
	return r.finish(ctx, rev(n), ok, fmt.Sprintf("payment exceeds the budget even over %d years", domain.MaxTermYears))
}

func (r *search) rate(ctx context.Context) (*OptimizationResult, error) {
	at := func(n int) domain.LoanParameters {
		p := r.req.Base
		p.AnnualRatePercent = decimal.NewFromInt(int64(n)).Mul(RateResolution)
		return p
	}
	hi := int(DefaultMaxRate.Div(RateResolution).IntPart())
	n, ok, err := r.largest(ctx, 0, hi, at)
	if err != nil {
		return nil, err
	}
	return r.finish(ctx, at(n), ok, "payment exceeds the budget even at zero interest")
}

// largest returns the largest n in [lo, hi] whose parameters fit, assuming
// the fitting values form a prefix of the range. ok is false when even lo
// does not fit.
func (r *search) largest(ctx context.Context, lo, hi int, at func(int) domain.LoanParameters) (int, bool, error) {
	fit, err := r.fits(ctx, at(lo))
	if err != nil || !fit {
		return lo, false, err
	}
	fit, err = r.fits(ctx, at(hi))
	if err != nil {
		return lo, false, err
	}
	if fit {
		return hi, true, nil
	}
	// invariant: at(lo) fits, at(hi) does not
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		fit, err := r.fits(ctx, at(mid))
		if err != nil {
			return lo, false, err
		}
		if fit {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, true, nil
}

func (r *search) finish(ctx context.Context, params domain.LoanParameters, ok bool, failure string) (*OptimizationResult, error) {
	result := &OptimizationResult{
		Target:     r.req.Target,
		Budget:     r.req.MonthlyBudget,
		Success:    ok,
		Iterations: r.iterations,
		Parameters: params,
	}
	if !ok {
		result.Message = failure
		return result, nil
	}
	schedule, err := r.solver.Engine.BuildSchedule(ctx, params)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_" + string(r.req.Target), Message: "failed to build schedule", Cause: err}
	}
	summary := calculation.Summarize(schedule)
	result.PeakPayment = PeakPayment(schedule)
	result.TotalInterest = summary.TotalInterest
	result.TotalPayment = summary.TotalPayment
	result.Message = fmt.Sprintf("converged in %d iterations", r.iterations)
	return result, nil
}

// PeakPayment is the highest payment over the months without a bonus payment
func PeakPayment(result *domain.ScheduleResult) decimal.Decimal {
	peak := decimal.Zero
	for _, row := range result.Rows {
		if !row.IsBonusMonth && row.Payment.GreaterThan(peak) {
			peak = row.Payment
		}
	}
	return peak
}
