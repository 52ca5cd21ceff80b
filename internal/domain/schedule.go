package domain

import (
	"github.com/shopspring/decimal"
)

// LoanInput is the loan as entered by a user: amounts in man-yen (10,000-unit
// denominations) and the rate in percent.
type LoanInput struct {
	Name              string          `json:"name,omitempty" yaml:"name"`
	LoanAmountManYen  decimal.Decimal `json:"loanAmountManYen" yaml:"loan_amount_man_yen"`
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent" yaml:"annual_rate_percent"`
	TermYears         int             `json:"termYears" yaml:"term_years"`
	Method            string          `json:"method" yaml:"method"`
	Bonus             BonusInput      `json:"bonus" yaml:"bonus"`
}

// BonusInput configures the optional semi-annual repayment track
type BonusInput struct {
	Enabled      bool            `json:"enabled" yaml:"enabled"`
	AmountManYen decimal.Decimal `json:"amountManYen" yaml:"amount_man_yen"`
}

// ScheduleRow is one calendar month of the repayment schedule. Payment,
// Principal and Interest combine the monthly and bonus tracks; Balance is the
// sum of both tracks' remaining principal after the month.
type ScheduleRow struct {
	Month        int             `json:"month" yaml:"month"`
	Year         int             `json:"year" yaml:"year"`
	IsBonusMonth bool            `json:"isBonusMonth" yaml:"is_bonus_month"`
	Payment      decimal.Decimal `json:"payment" yaml:"payment"`
	Principal    decimal.Decimal `json:"principal" yaml:"principal"`
	Interest     decimal.Decimal `json:"interest" yaml:"interest"`
	Balance      decimal.Decimal `json:"balance" yaml:"balance"`
	Method       Method          `json:"method" yaml:"method"`

	MonthlyPrincipal decimal.Decimal `json:"monthlyPrincipal" yaml:"monthly_principal"`
	MonthlyInterest  decimal.Decimal `json:"monthlyInterest" yaml:"monthly_interest"`
	BonusPrincipal   decimal.Decimal `json:"bonusPrincipal" yaml:"bonus_principal"`
	BonusInterest    decimal.Decimal `json:"bonusInterest" yaml:"bonus_interest"`
}

// ScheduleResult is a fully materialized schedule. It is never mutated after
// the engine returns it.
type ScheduleResult struct {
	Parameters     LoanParameters  `json:"parameters" yaml:"parameters"`
	Rows           []ScheduleRow   `json:"rows" yaml:"rows"`
	TotalPayment   decimal.Decimal `json:"totalPayment" yaml:"total_payment"`
	TotalInterest  decimal.Decimal `json:"totalInterest" yaml:"total_interest"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment" yaml:"monthly_payment"` // solved fixed payment, equal installment only
	BonusPayment   decimal.Decimal `json:"bonusPayment" yaml:"bonus_payment"`     // solved fixed bonus payment, equal installment only
}

// ScheduleSummary holds the headline figures derived from a schedule
type ScheduleSummary struct {
	Months            int              `json:"months" yaml:"months"`
	FirstMonthPayment decimal.Decimal  `json:"firstMonthPayment" yaml:"first_month_payment"`
	BonusMonthDelta   *decimal.Decimal `json:"bonusMonthDelta,omitempty" yaml:"bonus_month_delta,omitempty"`
	TotalPrincipal    decimal.Decimal  `json:"totalPrincipal" yaml:"total_principal"`
	TotalInterest     decimal.Decimal  `json:"totalInterest" yaml:"total_interest"`
	TotalPayment      decimal.Decimal  `json:"totalPayment" yaml:"total_payment"`
	FinalBalance      decimal.Decimal  `json:"finalBalance" yaml:"final_balance"`
}

// YearlySummary rolls a year of schedule rows up into one line
type YearlySummary struct {
	Year      int             `json:"year" yaml:"year"`
	Payment   decimal.Decimal `json:"payment" yaml:"payment"`
	Principal decimal.Decimal `json:"principal" yaml:"principal"`
	Interest  decimal.Decimal `json:"interest" yaml:"interest"`
	Balance   decimal.Decimal `json:"balance" yaml:"balance"` // balance after the year's last month
}
