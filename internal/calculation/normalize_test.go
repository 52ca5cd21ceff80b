package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeInput_ScalesManYen(t *testing.T) {
	params, err := NormalizeInput(domain.LoanInput{
		LoanAmountManYen:  d(3500),
		AnnualRatePercent: rate("0.525"),
		TermYears:         35,
		Method:            "annuity",
		Bonus:             domain.BonusInput{Enabled: true, AmountManYen: d(500)},
	})
	require.NoError(t, err)

	assert.True(t, params.Principal.Equal(d(35_000_000)), "got %s", params.Principal)
	assert.True(t, params.BonusPrincipal.Equal(d(5_000_000)), "got %s", params.BonusPrincipal)
	assert.True(t, params.MonthlyPrincipal().Equal(d(30_000_000)))
	assert.Equal(t, domain.EqualInstallment, params.Method)
	assert.Equal(t, 420, params.TotalMonths())
	assert.Equal(t, 70, params.BonusPeriods())
}

func TestNormalizeInput_BonusDisabledIgnoresAmount(t *testing.T) {
	params, err := NormalizeInput(domain.LoanInput{
		LoanAmountManYen:  d(3500),
		AnnualRatePercent: rate("0.525"),
		TermYears:         35,
		Method:            "linear",
		Bonus:             domain.BonusInput{Enabled: false, AmountManYen: d(500)},
	})
	require.NoError(t, err)

	assert.True(t, params.BonusPrincipal.IsZero())
	assert.Equal(t, domain.EqualPrincipal, params.Method)
}

func TestNormalizeInput_Rejects(t *testing.T) {
	valid := domain.LoanInput{
		LoanAmountManYen:  d(3500),
		AnnualRatePercent: rate("0.525"),
		TermYears:         35,
		Method:            "equal_installment",
	}

	tests := []struct {
		name  string
		tweak func(in *domain.LoanInput)
		field string
	}{
		{"zero principal", func(in *domain.LoanInput) { in.LoanAmountManYen = decimal.Zero }, "principal"},
		{"negative principal", func(in *domain.LoanInput) { in.LoanAmountManYen = d(-1) }, "principal"},
		{"zero term", func(in *domain.LoanInput) { in.TermYears = 0 }, "termYears"},
		{"term beyond maximum", func(in *domain.LoanInput) { in.TermYears = 51 }, "termYears"},
		{"negative rate", func(in *domain.LoanInput) { in.AnnualRatePercent = rate("-0.1") }, "annualRatePercent"},
		{"unknown method", func(in *domain.LoanInput) { in.Method = "balloon" }, "method"},
		{"bonus above principal", func(in *domain.LoanInput) {
			in.Bonus = domain.BonusInput{Enabled: true, AmountManYen: d(3501)}
		}, "bonusPrincipal"},
		{"negative bonus", func(in *domain.LoanInput) {
			in.Bonus = domain.BonusInput{Enabled: true, AmountManYen: d(-10)}
		}, "bonusPrincipal"},
		{"fractional yen principal", func(in *domain.LoanInput) { in.LoanAmountManYen = rate("0.00015") }, "principal"},
		{"fractional yen bonus", func(in *domain.LoanInput) {
			in.Bonus = domain.BonusInput{Enabled: true, AmountManYen: rate("100.00001")}
		}, "bonusPrincipal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.tweak(&in)

			_, err := NormalizeInput(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidParameter), "expected ErrInvalidParameter, got %v", err)

			var perr *domain.ParameterError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.field, perr.Field)
		})
	}
}

func TestValidate_BonusPrincipalWithoutBonus(t *testing.T) {
	params := baseParams()
	params.BonusPrincipal = d(1)

	err := params.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestPeriodRates(t *testing.T) {
	params := baseParams()

	assert.True(t, AnnualRateFraction(params).Equal(rate("0.00525")))
	assert.True(t, MonthlyRate(params).Equal(rate("0.0004375")))
	assert.True(t, BonusRate(params).Equal(rate("0.002625")))
}

func TestNormalizeInput_SubManYenResolution(t *testing.T) {
	params, err := NormalizeInput(domain.LoanInput{
		LoanAmountManYen:  rate("3500.1234"),
		AnnualRatePercent: rate("0.525"),
		TermYears:         35,
		Bonus:             domain.BonusInput{Enabled: true, AmountManYen: rate("0.0001")},
	})
	require.NoError(t, err)

	assert.True(t, params.Principal.Equal(d(35_001_234)), "got %s", params.Principal)
	assert.True(t, params.BonusPrincipal.Equal(d(1)), "got %s", params.BonusPrincipal)
}
