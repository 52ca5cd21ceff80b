package compare

import (
	"fmt"

	"github.com/rgehrsitz/mortgo/internal/calculation"
	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/rgehrsitz/mortgo/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single loan variant with its headline figures
type ComparisonResult struct {
	ScenarioName string                `json:"scenarioName"`
	Description  string                `json:"description,omitempty"`
	Parameters   domain.LoanParameters `json:"parameters"`

	// Key Metrics
	Months            int             `json:"months"`
	FirstMonthPayment decimal.Decimal `json:"firstMonthPayment"`
	FinalMonthPayment decimal.Decimal `json:"finalMonthPayment"`
	BonusMonthDelta   decimal.Decimal `json:"bonusMonthDelta"`
	TotalInterest     decimal.Decimal `json:"totalInterest"`
	TotalPayment      decimal.Decimal `json:"totalPayment"`

	// Comparison to Base
	PaymentDiffFromBase  decimal.Decimal `json:"paymentDiffFromBase"`
	InterestDiffFromBase decimal.Decimal `json:"interestDiffFromBase"`
	InterestPctFromBase  decimal.Decimal `json:"interestPctFromBase"`
	MonthsDiffFromBase   int             `json:"monthsDiffFromBase"`
}

// ComparisonSet represents a base loan and its alternatives
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// MetricsCalculator extracts comparison metrics from schedules
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for a finished schedule
func (mc *MetricsCalculator) CalculateMetrics(name string, result *domain.ScheduleResult) ComparisonResult {
	summary := calculation.Summarize(result)

	metrics := ComparisonResult{
		ScenarioName:      name,
		Parameters:        result.Parameters,
		Months:            summary.Months,
		FirstMonthPayment: summary.FirstMonthPayment,
		TotalInterest:     summary.TotalInterest,
		TotalPayment:      summary.TotalPayment,
	}
	if summary.BonusMonthDelta != nil {
		metrics.BonusMonthDelta = *summary.BonusMonthDelta
	}
	if len(result.Rows) > 0 {
		metrics.FinalMonthPayment = result.Rows[len(result.Rows)-1].Payment
	}
	return metrics
}

// CalculateComparison fills in the differences between scenario and base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.PaymentDiffFromBase = scenario.FirstMonthPayment.Sub(base.FirstMonthPayment)
	scenario.InterestDiffFromBase = scenario.TotalInterest.Sub(base.TotalInterest)

	if !base.TotalInterest.IsZero() {
		scenario.InterestPctFromBase = scenario.InterestDiffFromBase.
			Div(base.TotalInterest).
			Mul(decimal.NewFromInt(100))
	}

	scenario.MonthsDiffFromBase = scenario.Months - base.Months
	return scenario
}

// GenerateRecommendations points out the alternatives that beat the base
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	lowestInterest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalInterest.LessThan(lowestInterest.TotalInterest) {
			lowestInterest = alt
		}
	}
	if lowestInterest != base {
		savings := base.TotalInterest.Sub(lowestInterest.TotalInterest)
		recommendations = append(recommendations,
			"Lowest Interest: "+lowestInterest.ScenarioName+" saves "+output.FormatYen(savings)+
				" in total interest")
	}

	lowestPayment := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FirstMonthPayment.LessThan(lowestPayment.FirstMonthPayment) {
			lowestPayment = alt
		}
	}
	if lowestPayment != base {
		diff := base.FirstMonthPayment.Sub(lowestPayment.FirstMonthPayment)
		recommendations = append(recommendations,
			"Lowest First Payment: "+lowestPayment.ScenarioName+" starts "+output.FormatYen(diff)+
				" lower per month")
	}

	fastest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Months < fastest.Months {
			fastest = alt
		}
	}
	if fastest != base {
		years := (base.Months - fastest.Months) / domain.MonthsPerYear
		recommendations = append(recommendations,
			"Fastest Payoff: "+fastest.ScenarioName+" is repaid "+fmt.Sprintf("%d years", years)+" earlier")
	}

	return recommendations
}
