package calculation

import (
	"fmt"

	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SolvePayment returns the fixed periodic payment of an equal-installment
// track, rounded half away from zero to whole currency units:
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)   when r > 0
//	payment = P / n                             when r = 0
func SolvePayment(principal, rate decimal.Decimal, periods int) (decimal.Decimal, error) {
	if periods <= 0 {
		return decimal.Zero, &domain.CalculationError{Reason: fmt.Sprintf("period count must be positive, got %d", periods)}
	}
	n := decimal.NewFromInt(int64(periods))

	if rate.IsZero() {
		return roundHalfUp(principal.DivRound(n, WorkingPrecision)), nil
	}

	growth := powInt(one.Add(rate), periods)
	denominator := growth.Sub(one)
	if denominator.Sign() <= 0 {
		return decimal.Zero, &domain.CalculationError{Reason: "annuity factor underflow"}
	}

	payment := principal.Mul(rate).Mul(growth).DivRound(denominator, WorkingPrecision)
	return roundHalfUp(payment), nil
}

// FlatPrincipal returns the per-period principal of an equal-principal track,
// rounded down to whole currency units. The final period absorbs the remainder.
func FlatPrincipal(principal decimal.Decimal, periods int) (decimal.Decimal, error) {
	if periods <= 0 {
		return decimal.Zero, &domain.CalculationError{Reason: fmt.Sprintf("period count must be positive, got %d", periods)}
	}
	return principal.DivRound(decimal.NewFromInt(int64(periods)), WorkingPrecision).Floor(), nil
}

// powInt raises base to a non-negative integer power by repeated squaring,
// holding intermediate results at WorkingPrecision+10 fractional digits.
func powInt(base decimal.Decimal, exp int) decimal.Decimal {
	const guard = WorkingPrecision + 10
	result := one
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base).Round(guard)
		}
		exp >>= 1
		if exp > 0 {
			base = base.Mul(base).Round(guard)
		}
	}
	return result
}

// roundHalfUp rounds to whole units, ties away from zero
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
