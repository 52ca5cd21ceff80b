package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func baseParams() domain.LoanParameters {
	return domain.LoanParameters{
		Principal:         d(35_000_000),
		AnnualRatePercent: rate("0.525"),
		TermYears:         35,
		Method:            domain.EqualInstallment,
	}
}

func bonusParams(method domain.Method) domain.LoanParameters {
	return domain.LoanParameters{
		Principal:         d(35_000_000),
		AnnualRatePercent: rate("0.525"),
		TermYears:         10,
		Method:            method,
		BonusEnabled:      true,
		BonusPrincipal:    d(5_000_000),
	}
}

func TestBuildSchedule_EqualInstallment(t *testing.T) {
	result, err := BuildSchedule(baseParams())
	require.NoError(t, err)

	require.Len(t, result.Rows, 420, "35 years of monthly rows")
	assert.True(t, result.MonthlyPayment.Equal(d(91242)), "solved payment, got %s", result.MonthlyPayment)

	first := result.Rows[0]
	assert.True(t, first.Payment.Equal(d(91242)), "first payment, got %s", first.Payment)
	assert.True(t, first.Interest.Equal(d(15312)), "floor(35,000,000 * 0.0004375), got %s", first.Interest)
	assert.True(t, first.Principal.Equal(d(75930)), "got %s", first.Principal)
	assert.True(t, first.Balance.Equal(d(34_924_070)), "got %s", first.Balance)
	assert.Equal(t, 1, first.Year)
	assert.False(t, first.IsBonusMonth)

	last := result.Rows[419]
	assert.Equal(t, 420, last.Month)
	assert.Equal(t, 35, last.Year)
	assert.True(t, last.Balance.IsZero(), "final balance must be zero, got %s", last.Balance)
	assert.True(t, last.Principal.Equal(d(91014)), "final month pays off the exact remainder, got %s", last.Principal)
	assert.True(t, last.Payment.Equal(d(91053)), "got %s", last.Payment)

	// every month before the last pays the same fixed amount
	for _, row := range result.Rows[:419] {
		assert.True(t, row.Payment.Equal(d(91242)), "month %d paid %s", row.Month, row.Payment)
	}

	assert.True(t, result.TotalInterest.Equal(d(3_321_451)), "got %s", result.TotalInterest)
	assert.True(t, result.TotalPayment.Equal(d(38_321_451)), "got %s", result.TotalPayment)
	assert.NoError(t, VerifySchedule(result))
}

func TestBuildSchedule_EqualPrincipal(t *testing.T) {
	params := baseParams()
	params.Method = domain.EqualPrincipal

	result, err := BuildSchedule(params)
	require.NoError(t, err)
	require.Len(t, result.Rows, 420)
	assert.True(t, result.MonthlyPayment.IsZero(), "no fixed payment is solved for equal principal")

	for i, row := range result.Rows[:419] {
		assert.True(t, row.Principal.Equal(d(83333)), "month %d principal %s", row.Month, row.Principal)
		if i > 0 {
			assert.True(t, row.Interest.LessThan(result.Rows[i-1].Interest), "interest must fall every month (month %d)", row.Month)
		}
		assert.Equal(t, domain.EqualPrincipal, row.Method)
	}

	last := result.Rows[419]
	// 35,000,000 - 83,333 * 419
	assert.True(t, last.Principal.Equal(d(83473)), "got %s", last.Principal)
	assert.True(t, last.Balance.IsZero())
	assert.True(t, last.Interest.LessThan(result.Rows[418].Interest))

	assert.True(t, result.Rows[0].Payment.Equal(d(98645)), "got %s", result.Rows[0].Payment)
	assert.True(t, result.TotalInterest.Equal(d(3_223_086)), "got %s", result.TotalInterest)
	assert.NoError(t, VerifySchedule(result))
}

func TestBuildSchedule_BonusTrack(t *testing.T) {
	for _, method := range []domain.Method{domain.EqualInstallment, domain.EqualPrincipal} {
		t.Run(string(method), func(t *testing.T) {
			result, err := BuildSchedule(bonusParams(method))
			require.NoError(t, err)
			require.Len(t, result.Rows, 120)

			for i, row := range result.Rows {
				if row.Month%6 == 0 {
					assert.True(t, row.IsBonusMonth, "month %d should be a bonus month", row.Month)
					assert.True(t, row.Payment.GreaterThan(result.Rows[i-1].Payment), "month %d should exceed the previous month", row.Month)
					if i+1 < len(result.Rows) {
						assert.True(t, row.Payment.GreaterThan(result.Rows[i+1].Payment), "month %d should exceed the next month", row.Month)
					}
					assert.True(t, row.BonusPrincipal.IsPositive())
				} else {
					assert.False(t, row.IsBonusMonth)
					assert.True(t, row.BonusPrincipal.IsZero(), "month %d has bonus principal", row.Month)
					assert.True(t, row.BonusInterest.IsZero(), "month %d has bonus interest", row.Month)
				}
				assert.True(t, row.Payment.Equal(row.MonthlyPrincipal.Add(row.MonthlyInterest).Add(row.BonusPrincipal).Add(row.BonusInterest)))
			}

			assert.True(t, result.Rows[119].Balance.IsZero())
			assert.NoError(t, VerifySchedule(result))
		})
	}
}

func TestBuildSchedule_BonusTrackFigures(t *testing.T) {
	result, err := BuildSchedule(bonusParams(domain.EqualInstallment))
	require.NoError(t, err)

	assert.True(t, result.MonthlyPayment.Equal(d(256675)), "got %s", result.MonthlyPayment)
	assert.True(t, result.BonusPayment.Equal(d(256948)), "got %s", result.BonusPayment)

	sixth := result.Rows[5]
	assert.True(t, sixth.Payment.Equal(d(513623)), "got %s", sixth.Payment)
	// floor(5,000,000 * 0.002625)
	assert.True(t, sixth.BonusInterest.Equal(d(13125)), "got %s", sixth.BonusInterest)
	assert.True(t, result.TotalInterest.Equal(d(939_832)), "got %s", result.TotalInterest)
}

func TestBuildSchedule_ZeroRate(t *testing.T) {
	for _, method := range []domain.Method{domain.EqualInstallment, domain.EqualPrincipal} {
		t.Run(string(method), func(t *testing.T) {
			params := domain.LoanParameters{
				Principal:         d(1_000_000),
				AnnualRatePercent: decimal.Zero,
				TermYears:         1,
				Method:            method,
			}
			result, err := BuildSchedule(params)
			require.NoError(t, err)

			for _, row := range result.Rows[:11] {
				assert.True(t, row.Interest.IsZero())
				// 1,000,000 / 12 = 83,333.33
				assert.True(t, row.Principal.Equal(d(83333)), "month %d principal %s", row.Month, row.Principal)
			}
			assert.True(t, result.Rows[11].Principal.Equal(d(83337)), "got %s", result.Rows[11].Principal)
			assert.True(t, result.TotalInterest.IsZero())
			assert.True(t, result.TotalPayment.Equal(params.Principal))
			assert.NoError(t, VerifySchedule(result))
		})
	}
}

func TestBuildSchedule_ClampsBeforeFinalMonth(t *testing.T) {
	// 20 / 12 rounds up to a payment of 2, so the balance is gone after month 10
	params := domain.LoanParameters{
		Principal:         d(20),
		AnnualRatePercent: decimal.Zero,
		TermYears:         1,
		Method:            domain.EqualInstallment,
	}
	result, err := BuildSchedule(params)
	require.NoError(t, err)

	assert.True(t, result.Rows[9].Balance.IsZero())
	assert.True(t, result.Rows[10].Principal.IsZero(), "principal is clamped to the remaining balance")
	assert.True(t, result.Rows[11].Payment.IsZero())
	assert.NoError(t, VerifySchedule(result))
}

func TestBuildSchedule_BonusEqualsPrincipal(t *testing.T) {
	params := bonusParams(domain.EqualInstallment)
	params.BonusPrincipal = params.Principal

	result, err := BuildSchedule(params)
	require.NoError(t, err)

	for _, row := range result.Rows {
		if !row.IsBonusMonth {
			assert.True(t, row.Payment.IsZero(), "month %d should be empty without a monthly share", row.Month)
		}
	}
	assert.NoError(t, VerifySchedule(result))
}

func TestBuildSchedule_ZeroBonus(t *testing.T) {
	params := bonusParams(domain.EqualInstallment)
	params.BonusPrincipal = decimal.Zero

	result, err := BuildSchedule(params)
	require.NoError(t, err)

	plain := params
	plain.BonusEnabled = false
	expected, err := BuildSchedule(plain)
	require.NoError(t, err)

	for i, row := range result.Rows {
		assert.True(t, row.Payment.Equal(expected.Rows[i].Payment), "month %d differs", row.Month)
		assert.Equal(t, row.Month%6 == 0, row.IsBonusMonth)
	}
}

func TestBuildSchedule_Properties(t *testing.T) {
	cases := []domain.LoanParameters{
		baseParams(),
		bonusParams(domain.EqualInstallment),
		bonusParams(domain.EqualPrincipal),
		{Principal: d(1_000_000), AnnualRatePercent: rate("12"), TermYears: 1, Method: domain.EqualInstallment},
		{Principal: d(300_000_000), AnnualRatePercent: rate("20"), TermYears: 50, Method: domain.EqualInstallment},
		{Principal: d(300_000_000), AnnualRatePercent: rate("20"), TermYears: 50, Method: domain.EqualPrincipal,
			BonusEnabled: true, BonusPrincipal: d(150_000_000)},
		{Principal: d(1_234_567), AnnualRatePercent: rate("3.333"), TermYears: 7, Method: domain.EqualPrincipal,
			BonusEnabled: true, BonusPrincipal: d(7)},
	}

	for _, params := range cases {
		t.Run(params.CacheKey(), func(t *testing.T) {
			result, err := BuildSchedule(params)
			require.NoError(t, err)

			sum := decimal.Zero
			previous := params.Principal
			for _, row := range result.Rows {
				sum = sum.Add(row.Principal)
				assert.True(t, row.Balance.LessThanOrEqual(previous), "balance rose at month %d", row.Month)
				previous = row.Balance
			}
			assert.True(t, sum.Equal(params.Principal), "principal portions sum to %s", sum)
			assert.True(t, result.Rows[len(result.Rows)-1].Balance.IsZero())
			assert.True(t, result.TotalPayment.Equal(params.Principal.Add(result.TotalInterest)))

			payments := decimal.Zero
			for _, row := range result.Rows {
				payments = payments.Add(row.Payment)
			}
			assert.True(t, payments.Equal(result.TotalPayment), "row payments sum to %s", payments)
			assert.NoError(t, VerifySchedule(result))
			assert.Len(t, result.Rows, params.TermYears*12)
		})
	}
}

func TestBuildSchedule_Idempotent(t *testing.T) {
	first, err := BuildSchedule(bonusParams(domain.EqualInstallment))
	require.NoError(t, err)
	second, err := BuildSchedule(bonusParams(domain.EqualInstallment))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildSchedule_InvalidParameters(t *testing.T) {
	params := baseParams()
	params.TermYears = 0

	result, err := BuildSchedule(params)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

type stepFunc func(*Track, domain.Method, int, bool) (decimal.Decimal, decimal.Decimal, error)

func withStepTrack(t *testing.T, fn stepFunc) {
	t.Helper()
	orig := stepTrack
	stepTrack = fn
	t.Cleanup(func() { stepTrack = orig })
}

// skipFinalPeriod leaves the named track's last period unpaid
func skipFinalPeriod(name string) stepFunc {
	return func(tr *Track, method domain.Method, month int, final bool) (decimal.Decimal, decimal.Decimal, error) {
		if final && tr.Name == name {
			return decimal.Zero, decimal.Zero, nil
		}
		return tr.Step(method, month, final)
	}
}

func TestBuildSchedule_ResidualBalanceFails(t *testing.T) {
	tests := []struct {
		name   string
		params domain.LoanParameters
		track  string
	}{
		{"monthly track", baseParams(), TrackMonthly},
		{"bonus track", bonusParams(domain.EqualPrincipal), TrackBonus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withStepTrack(t, skipFinalPeriod(tt.track))

			result, err := BuildSchedule(tt.params)
			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrCalculationFailure), "got %v", err)

			var calcErr *domain.CalculationError
			require.True(t, errors.As(err, &calcErr))
			assert.Equal(t, tt.track, calcErr.Track)
			assert.Contains(t, calcErr.Reason, "residual balance")
		})
	}
}

func TestBuildSchedule_RecoversArithmeticPanic(t *testing.T) {
	withStepTrack(t, func(tr *Track, method domain.Method, month int, final bool) (decimal.Decimal, decimal.Decimal, error) {
		if month == 13 {
			tr.Remaining.Div(decimal.Zero)
		}
		return tr.Step(method, month, final)
	})

	result, err := BuildSchedule(baseParams())
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCalculationFailure), "got %v", err)
	assert.Contains(t, err.Error(), "arithmetic panic")
}

func TestBuildSchedule_StepFailureReturnsNoRows(t *testing.T) {
	withStepTrack(t, func(tr *Track, method domain.Method, month int, final bool) (decimal.Decimal, decimal.Decimal, error) {
		if month == 240 {
			return decimal.Zero, decimal.Zero, &domain.CalculationError{Month: month, Track: tr.Name, Reason: "payment below interest"}
		}
		return tr.Step(method, month, final)
	})

	result, err := BuildSchedule(baseParams())
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrCalculationFailure), "got %v", err)
}
