package breakeven

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mortgo/internal/calculation"
	"github.com/rgehrsitz/mortgo/internal/domain"
)

// OptimizationTarget names the loan parameter the solver searches over
type OptimizationTarget string

const (
	OptimizeLoanAmount OptimizationTarget = "loan_amount" // largest principal that fits the budget
	OptimizeTerm       OptimizationTarget = "term"        // shortest term that fits the budget
	OptimizeRate       OptimizationTarget = "rate"        // highest rate that still fits the budget
)

// Targets lists every optimization target in display order
var Targets = []OptimizationTarget{OptimizeLoanAmount, OptimizeTerm, OptimizeRate}

// ParseTarget converts a user-facing target name
func ParseTarget(s string) (OptimizationTarget, error) {
	for _, t := range Targets {
		if string(t) == s {
			return t, nil
		}
	}
	return "", &BreakEvenError{Operation: "parse_target", Message: "unknown optimization target " + s}
}

// Search limits. Loan amounts move in whole man-yen and rates in steps of
// 0.001 percentage points.
var (
	DefaultMaxLoanManYen = decimal.NewFromInt(30000)
	DefaultMaxRate       = decimal.NewFromInt(20)
	RateResolution       = decimal.RequireFromString("0.001")
)

// OptimizationRequest defines one solver run. Base supplies every loan
// parameter except the one being searched.
type OptimizationRequest struct {
	Base          domain.LoanParameters
	Target        OptimizationTarget
	MonthlyBudget decimal.Decimal // largest acceptable ordinary-month payment, in yen
	MaxIterations int
}

// OptimizationResult is the break-even loan for a request
type OptimizationResult struct {
	Target     OptimizationTarget    `json:"target"`
	Budget     decimal.Decimal       `json:"monthlyBudget"`
	Success    bool                  `json:"success"`
	Iterations int                   `json:"iterations"`
	Message    string                `json:"message,omitempty"`
	Parameters domain.LoanParameters `json:"parameters"`

	// Figures of the schedule at the break-even parameters
	PeakPayment   decimal.Decimal `json:"peakPayment"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
	TotalPayment  decimal.Decimal `json:"totalPayment"`
}

// MultiResult holds the solution for every target
type MultiResult struct {
	Budget          decimal.Decimal      `json:"monthlyBudget"`
	Results         []OptimizationResult `json:"results"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the search
type SolverOptions struct {
	MaxIterations int // evaluations per search before giving up
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{MaxIterations: 64}
}

// Validate checks the request before any schedule is built
func (r *OptimizationRequest) Validate() error {
	if !r.MonthlyBudget.IsPositive() {
		return &BreakEvenError{Operation: "validate_request", Message: "monthly budget must be positive"}
	}
	if _, err := ParseTarget(string(r.Target)); err != nil {
		return err
	}
	base := r.Base
	if r.Target == OptimizeLoanAmount {
		// the principal is the unknown; check the rest against the search ceiling
		base.Principal = DefaultMaxLoanManYen.Mul(calculation.ManYen)
	}
	if err := base.Validate(); err != nil {
		return &BreakEvenError{Operation: "validate_request", Message: "invalid base loan", Cause: err}
	}
	return nil
}

// BreakEvenError represents errors from the break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
