package calculation

import (
	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/shopspring/decimal"
)

// WorkingPrecision is the number of fractional digits kept by every division
// and power in the engine. Products are exact.
const WorkingPrecision int32 = 40

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)

	// ManYen is the size of the 10,000-unit denomination used by loan inputs
	ManYen = decimal.NewFromInt(10000)
)

// NormalizeInput converts user-facing units into engine parameters and
// validates them. Amounts are scaled from man-yen to base currency units here
// and nowhere else.
func NormalizeInput(in domain.LoanInput) (domain.LoanParameters, error) {
	method, err := domain.ParseMethod(in.Method)
	if err != nil {
		return domain.LoanParameters{}, err
	}

	params := domain.LoanParameters{
		Principal:         in.LoanAmountManYen.Mul(ManYen),
		AnnualRatePercent: in.AnnualRatePercent,
		TermYears:         in.TermYears,
		Method:            method,
		BonusEnabled:      in.Bonus.Enabled,
		BonusPrincipal:    decimal.Zero,
	}
	if in.Bonus.Enabled {
		params.BonusPrincipal = in.Bonus.AmountManYen.Mul(ManYen)
	}

	if err := params.Validate(); err != nil {
		return domain.LoanParameters{}, err
	}
	return params, nil
}

// AnnualRateFraction converts a percentage into a fraction (0.525 -> 0.00525)
func AnnualRateFraction(p domain.LoanParameters) decimal.Decimal {
	return p.AnnualRatePercent.DivRound(hundred, WorkingPrecision)
}

// MonthlyRate is the period rate of the monthly track
func MonthlyRate(p domain.LoanParameters) decimal.Decimal {
	return p.AnnualRatePercent.DivRound(hundred.Mul(decimal.NewFromInt(domain.MonthsPerYear)), WorkingPrecision)
}

// BonusRate is the semi-annual period rate of the bonus track
func BonusRate(p domain.LoanParameters) decimal.Decimal {
	return p.AnnualRatePercent.DivRound(hundred.Mul(decimal.NewFromInt(domain.BonusPeriodsPerYear)), WorkingPrecision)
}
