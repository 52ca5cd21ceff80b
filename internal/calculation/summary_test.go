package calculation

import (
	"testing"

	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	result, err := BuildSchedule(baseParams())
	require.NoError(t, err)

	summary := Summarize(result)

	assert.Equal(t, 420, summary.Months)
	assert.True(t, summary.FirstMonthPayment.Equal(d(91242)))
	assert.Nil(t, summary.BonusMonthDelta, "no bonus delta without a bonus track")
	assert.True(t, summary.TotalPrincipal.Equal(d(35_000_000)))
	assert.True(t, summary.TotalPayment.Equal(summary.TotalPrincipal.Add(summary.TotalInterest)))
	assert.True(t, summary.FinalBalance.IsZero())
}

func TestSummarize_BonusMonthDelta(t *testing.T) {
	result, err := BuildSchedule(bonusParams(domain.EqualInstallment))
	require.NoError(t, err)

	summary := Summarize(result)

	require.NotNil(t, summary.BonusMonthDelta)
	// the monthly track is constant, so the delta is exactly the bonus payment
	assert.True(t, summary.BonusMonthDelta.Equal(result.BonusPayment), "got %s", summary.BonusMonthDelta)
	assert.True(t, summary.BonusMonthDelta.Equal(d(256948)))
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(&domain.ScheduleResult{Parameters: baseParams()})

	assert.Equal(t, 0, summary.Months)
	assert.True(t, summary.FirstMonthPayment.IsZero())
	assert.Nil(t, summary.BonusMonthDelta)
}

func TestYearlyBreakdown(t *testing.T) {
	result, err := BuildSchedule(bonusParams(domain.EqualPrincipal))
	require.NoError(t, err)

	years := YearlyBreakdown(result)
	require.Len(t, years, 10)

	principal := decimal.Zero
	interest := decimal.Zero
	for i, y := range years {
		assert.Equal(t, i+1, y.Year)
		assert.True(t, y.Balance.Equal(result.Rows[(i+1)*12-1].Balance))
		assert.True(t, y.Payment.Equal(y.Principal.Add(y.Interest)))
		principal = principal.Add(y.Principal)
		interest = interest.Add(y.Interest)
	}
	assert.True(t, principal.Equal(result.Parameters.Principal))
	assert.True(t, interest.Equal(result.TotalInterest))
	assert.True(t, years[9].Balance.IsZero())
}

func TestVerifySchedule_DetectsTampering(t *testing.T) {
	result, err := BuildSchedule(baseParams())
	require.NoError(t, err)

	rows := append([]domain.ScheduleRow(nil), result.Rows...)
	rows[10].Principal = rows[10].Principal.Add(d(1))
	tampered := *result
	tampered.Rows = rows

	assert.ErrorIs(t, VerifySchedule(&tampered), domain.ErrCalculationFailure)

	short := *result
	short.Rows = result.Rows[:419]
	assert.ErrorIs(t, VerifySchedule(&short), domain.ErrCalculationFailure)
}
