package compare

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mortgo/internal/output"
)

// JSONFormatter writes a comparison as an indented JSON document
type JSONFormatter struct{}

// comparisonDocument is the ComparisonSet plus the winners the table
// formatter highlights, so JSON consumers need not recompute them
type comparisonDocument struct {
	*ComparisonSet
	Highlights comparisonHighlights `json:"highlights"`
}

type comparisonHighlights struct {
	LowestInterest     string          `json:"lowestInterest"`
	InterestSavings    decimal.Decimal `json:"interestSavings"`
	LowestFirstPayment string          `json:"lowestFirstPayment"`
	FirstPaymentDrop   decimal.Decimal `json:"firstPaymentDrop"`
	ShortestTermMonths int             `json:"shortestTermMonths"`
}

// Format generates the JSON document for a comparison
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc := comparisonDocument{ComparisonSet: compSet}
	if compSet.BaseResult != nil {
		doc.Highlights = highlights(compSet)
	}

	data, err := output.MarshalJSON(doc, true)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func highlights(compSet *ComparisonSet) comparisonHighlights {
	base := compSet.BaseResult
	interest, payment, months := base, base, base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalInterest.LessThan(interest.TotalInterest) {
			interest = alt
		}
		if alt.FirstMonthPayment.LessThan(payment.FirstMonthPayment) {
			payment = alt
		}
		if alt.Months < months.Months {
			months = alt
		}
	}

	return comparisonHighlights{
		LowestInterest:     interest.ScenarioName,
		InterestSavings:    base.TotalInterest.Sub(interest.TotalInterest),
		LowestFirstPayment: payment.ScenarioName,
		FirstPaymentDrop:   base.FirstMonthPayment.Sub(payment.FirstMonthPayment),
		ShortestTermMonths: months.Months,
	}
}
