package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Method selects how principal is spread across the repayment periods
type Method string

const (
	// EqualInstallment keeps principal+interest constant each period (annuity)
	EqualInstallment Method = "equal_installment"
	// EqualPrincipal keeps the principal share constant each period
	EqualPrincipal Method = "equal_principal"
)

// ParseMethod converts a user-facing method name into a Method.
// The simulator form keys ("annuity", "linear") are accepted as aliases.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "equal_installment", "equal-installment", "annuity":
		return EqualInstallment, nil
	case "equal_principal", "equal-principal", "linear":
		return EqualPrincipal, nil
	default:
		return "", &ParameterError{Field: "method", Reason: fmt.Sprintf("unknown repayment method %q", s)}
	}
}

// Label returns a human-readable name
func (m Method) Label() string {
	switch m {
	case EqualInstallment:
		return "Equal installment"
	case EqualPrincipal:
		return "Equal principal"
	default:
		return string(m)
	}
}

const (
	MonthsPerYear       = 12
	BonusPeriodsPerYear = 2

	// BonusInterval is the number of months between two bonus payments
	BonusInterval = MonthsPerYear / BonusPeriodsPerYear

	// MaxTermYears is the longest supported loan term
	MaxTermYears = 50
)

// LoanParameters is the normalized engine input. All amounts are in whole
// currency base units; AnnualRatePercent is a percentage (0.525 means 0.525%).
type LoanParameters struct {
	Principal         decimal.Decimal `json:"principal" yaml:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent" yaml:"annual_rate_percent"`
	TermYears         int             `json:"termYears" yaml:"term_years"`
	Method            Method          `json:"method" yaml:"method"`
	BonusEnabled      bool            `json:"bonusEnabled" yaml:"bonus_enabled"`
	BonusPrincipal    decimal.Decimal `json:"bonusPrincipal" yaml:"bonus_principal"`
}

// MonthlyPrincipal is the share of principal repaid by the monthly track
func (p LoanParameters) MonthlyPrincipal() decimal.Decimal {
	return p.Principal.Sub(p.BonusPrincipal)
}

// TotalMonths is the schedule length
func (p LoanParameters) TotalMonths() int {
	return p.TermYears * MonthsPerYear
}

// BonusPeriods is the number of bonus payments over the term
func (p LoanParameters) BonusPeriods() int {
	return p.TermYears * BonusPeriodsPerYear
}

// Validate checks the range constraints of the engine contract
func (p LoanParameters) Validate() error {
	if p.Principal.LessThanOrEqual(decimal.Zero) {
		return &ParameterError{Field: "principal", Reason: "must be positive"}
	}
	if !isWhole(p.Principal) {
		return &ParameterError{Field: "principal", Reason: "must be a whole number of currency units, got " + p.Principal.String()}
	}
	if p.TermYears <= 0 {
		return &ParameterError{Field: "termYears", Reason: "must be positive"}
	}
	if p.TermYears > MaxTermYears {
		return &ParameterError{Field: "termYears", Reason: fmt.Sprintf("cannot exceed %d years", MaxTermYears)}
	}
	if p.AnnualRatePercent.IsNegative() {
		return &ParameterError{Field: "annualRatePercent", Reason: "cannot be negative"}
	}
	switch p.Method {
	case EqualInstallment, EqualPrincipal:
	default:
		return &ParameterError{Field: "method", Reason: fmt.Sprintf("unknown repayment method %q", p.Method)}
	}
	if p.BonusPrincipal.IsNegative() {
		return &ParameterError{Field: "bonusPrincipal", Reason: "cannot be negative"}
	}
	if !isWhole(p.BonusPrincipal) {
		return &ParameterError{Field: "bonusPrincipal", Reason: "must be a whole number of currency units, got " + p.BonusPrincipal.String()}
	}
	if !p.BonusEnabled && !p.BonusPrincipal.IsZero() {
		return &ParameterError{Field: "bonusPrincipal", Reason: "must be zero when bonus payments are disabled"}
	}
	if p.BonusPrincipal.GreaterThan(p.Principal) {
		return &ParameterError{Field: "bonusPrincipal", Reason: "cannot exceed principal"}
	}
	return nil
}

func isWhole(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(0))
}

// CacheKey is a canonical representation of the full parameter tuple
func (p LoanParameters) CacheKey() string {
	return fmt.Sprintf("%s|%s|%d|%s|%t|%s",
		p.Principal.String(),
		p.AnnualRatePercent.String(),
		p.TermYears,
		p.Method,
		p.BonusEnabled,
		p.BonusPrincipal.String())
}
