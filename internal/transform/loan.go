package transform

import (
	"fmt"

	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SetMethod switches the amortization method
type SetMethod struct {
	Method domain.Method
}

func (t *SetMethod) Name() string { return "set_method" }

func (t *SetMethod) Description() string {
	return fmt.Sprintf("Repay with %s", t.Method.Label())
}

func (t *SetMethod) Validate(base domain.LoanParameters) error {
	switch t.Method {
	case domain.EqualInstallment, domain.EqualPrincipal:
		return nil
	default:
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown method %q", t.Method), nil)
	}
}

func (t *SetMethod) Apply(base domain.LoanParameters) (domain.LoanParameters, error) {
	base.Method = t.Method
	return base, nil
}

// RemoveBonus folds the bonus share back into the monthly track
type RemoveBonus struct{}

func (t *RemoveBonus) Name() string { return "remove_bonus" }

func (t *RemoveBonus) Description() string { return "Repay everything monthly, no bonus payments" }

func (t *RemoveBonus) Validate(base domain.LoanParameters) error { return nil }

func (t *RemoveBonus) Apply(base domain.LoanParameters) (domain.LoanParameters, error) {
	base.BonusEnabled = false
	base.BonusPrincipal = decimal.Zero
	return base, nil
}

// SetBonus assigns a share of the principal to the semi-annual bonus track
type SetBonus struct {
	Amount decimal.Decimal // base currency units
}

func (t *SetBonus) Name() string { return "set_bonus" }

func (t *SetBonus) Description() string {
	return fmt.Sprintf("Repay %s through bonus payments", t.Amount.StringFixed(0))
}

func (t *SetBonus) Validate(base domain.LoanParameters) error {
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "bonus amount cannot be negative", nil)
	}
	if t.Amount.GreaterThan(base.Principal) {
		return NewTransformError(t.Name(), "validate", "bonus amount exceeds the principal", nil)
	}
	return nil
}

func (t *SetBonus) Apply(base domain.LoanParameters) (domain.LoanParameters, error) {
	base.BonusEnabled = true
	base.BonusPrincipal = t.Amount
	return base, nil
}

// AdjustTerm lengthens or shortens the loan by whole years
type AdjustTerm struct {
	Years int
}

func (t *AdjustTerm) Name() string { return "adjust_term" }

func (t *AdjustTerm) Description() string {
	if t.Years < 0 {
		return fmt.Sprintf("Shorten the term by %d years", -t.Years)
	}
	return fmt.Sprintf("Extend the term by %d years", t.Years)
}

func (t *AdjustTerm) Validate(base domain.LoanParameters) error {
	term := base.TermYears + t.Years
	if term <= 0 || term > domain.MaxTermYears {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("resulting term must be between 1 and %d years, got %d", domain.MaxTermYears, term), nil)
	}
	return nil
}

func (t *AdjustTerm) Apply(base domain.LoanParameters) (domain.LoanParameters, error) {
	base.TermYears += t.Years
	return base, nil
}

// AdjustRate shifts the annual rate by a number of percentage points
type AdjustRate struct {
	DeltaPercent decimal.Decimal
}

func (t *AdjustRate) Name() string { return "adjust_rate" }

func (t *AdjustRate) Description() string {
	if t.DeltaPercent.IsNegative() {
		return fmt.Sprintf("Lower the rate by %s points", t.DeltaPercent.Neg().String())
	}
	return fmt.Sprintf("Raise the rate by %s points", t.DeltaPercent.String())
}

func (t *AdjustRate) Validate(base domain.LoanParameters) error {
	if base.AnnualRatePercent.Add(t.DeltaPercent).IsNegative() {
		return NewTransformError(t.Name(), "validate", "resulting rate cannot be negative", nil)
	}
	return nil
}

func (t *AdjustRate) Apply(base domain.LoanParameters) (domain.LoanParameters, error) {
	base.AnnualRatePercent = base.AnnualRatePercent.Add(t.DeltaPercent)
	return base, nil
}
