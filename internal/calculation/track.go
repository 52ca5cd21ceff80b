package calculation

import (
	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	TrackMonthly = "monthly"
	TrackBonus   = "bonus"
)

// Track is one payment stream of a loan. Remaining starts at the track's
// principal share and only ever decreases.
type Track struct {
	Name          string
	Principal     decimal.Decimal
	PeriodCount   int
	PeriodRate    decimal.Decimal
	Remaining     decimal.Decimal
	FixedPayment  decimal.Decimal // equal installment only
	FlatPrincipal decimal.Decimal // equal principal only
}

// NewTrack prepares a track for the given method, solving its fixed payment
// (equal installment) or flat principal (equal principal) once.
func NewTrack(name string, principal, periodRate decimal.Decimal, periods int, method domain.Method) (*Track, error) {
	t := &Track{
		Name:        name,
		Principal:   principal,
		PeriodCount: periods,
		PeriodRate:  periodRate,
		Remaining:   principal,
	}

	var err error
	switch method {
	case domain.EqualInstallment:
		t.FixedPayment, err = SolvePayment(principal, periodRate, periods)
	case domain.EqualPrincipal:
		t.FlatPrincipal, err = FlatPrincipal(principal, periods)
	default:
		return nil, &domain.ParameterError{Field: "method", Reason: "unknown repayment method " + string(method)}
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Step advances the track by one of its periods and returns the principal and
// interest paid. Interest is floored to whole units in the lender's favor. On
// the final period the principal portion is the exact remaining balance.
func (t *Track) Step(method domain.Method, month int, final bool) (principal, interest decimal.Decimal, err error) {
	interest = t.Remaining.Mul(t.PeriodRate).Floor()

	if method == domain.EqualInstallment {
		principal = t.FixedPayment.Sub(interest)
	} else {
		principal = t.FlatPrincipal
	}
	if final {
		principal = t.Remaining
	}

	if principal.IsNegative() {
		return decimal.Zero, decimal.Zero, &domain.CalculationError{
			Month:  month,
			Track:  t.Name,
			Reason: "fixed payment " + t.FixedPayment.String() + " does not cover interest " + interest.String(),
		}
	}
	if principal.GreaterThan(t.Remaining) {
		principal = t.Remaining
	}

	t.Remaining = t.Remaining.Sub(principal)
	return principal, interest, nil
}
