package calculation

import (
	"fmt"

	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/shopspring/decimal"
)

// stepTrack advances a track by one period; swapped in tests
var stepTrack = (*Track).Step

// BuildSchedule walks the loan month by month and returns the complete
// schedule. It is a pure function of params. Either the whole schedule is
// returned or an error; never a partial one.
func BuildSchedule(params domain.LoanParameters) (result *domain.ScheduleResult, err error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// shopspring/decimal panics on division by zero and similar misuse
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &domain.CalculationError{Reason: fmt.Sprintf("arithmetic panic: %v", r)}
		}
	}()

	monthly, err := NewTrack(TrackMonthly, params.MonthlyPrincipal(), MonthlyRate(params), params.TotalMonths(), params.Method)
	if err != nil {
		return nil, err
	}

	var bonus *Track
	if params.BonusEnabled {
		bonus, err = NewTrack(TrackBonus, params.BonusPrincipal, BonusRate(params), params.BonusPeriods(), params.Method)
		if err != nil {
			return nil, err
		}
	}

	totalMonths := params.TotalMonths()
	rows := make([]domain.ScheduleRow, 0, totalMonths)
	totalInterest := decimal.Zero

	for m := 1; m <= totalMonths; m++ {
		final := m == totalMonths

		mPrincipal, mInterest, err := stepTrack(monthly, params.Method, m, final)
		if err != nil {
			return nil, err
		}

		bPrincipal, bInterest := decimal.Zero, decimal.Zero
		isBonusMonth := bonus != nil && m%domain.BonusInterval == 0
		if isBonusMonth {
			// the bonus track's last period always falls on the last month of the term
			bPrincipal, bInterest, err = stepTrack(bonus, params.Method, m, final)
			if err != nil {
				return nil, err
			}
		}

		balance := monthly.Remaining
		if bonus != nil {
			balance = balance.Add(bonus.Remaining)
		}

		interest := mInterest.Add(bInterest)
		principal := mPrincipal.Add(bPrincipal)
		totalInterest = totalInterest.Add(interest)

		rows = append(rows, domain.ScheduleRow{
			Month:            m,
			Year:             (m-1)/domain.MonthsPerYear + 1,
			IsBonusMonth:     isBonusMonth,
			Payment:          principal.Add(interest),
			Principal:        principal,
			Interest:         interest,
			Balance:          balance,
			Method:           params.Method,
			MonthlyPrincipal: mPrincipal,
			MonthlyInterest:  mInterest,
			BonusPrincipal:   bPrincipal,
			BonusInterest:    bInterest,
		})
	}

	if !monthly.Remaining.IsZero() {
		return nil, &domain.CalculationError{Track: TrackMonthly, Reason: "residual balance " + monthly.Remaining.String() + " after final month"}
	}
	if bonus != nil && !bonus.Remaining.IsZero() {
		return nil, &domain.CalculationError{Track: TrackBonus, Reason: "residual balance " + bonus.Remaining.String() + " after final month"}
	}

	result = &domain.ScheduleResult{
		Parameters:     params,
		Rows:           rows,
		TotalInterest:  totalInterest,
		TotalPayment:   params.Principal.Add(totalInterest),
		MonthlyPayment: monthly.FixedPayment,
	}
	if bonus != nil {
		result.BonusPayment = bonus.FixedPayment
	}
	return result, nil
}
