package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/shopspring/decimal"
)

// CSVFormatter writes the schedule rows, one line per month, with the
// per-track split.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Month", "Year", "BonusMonth", "Payment", "Principal", "Interest", "Balance",
		"MonthlyPrincipal", "MonthlyInterest", "BonusPrincipal", "BonusInterest"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range report.Rows {
		record := []string{
			strconv.Itoa(row.Month),
			strconv.Itoa(row.Year),
			strconv.FormatBool(row.IsBonusMonth),
			yen(row.Payment),
			yen(row.Principal),
			yen(row.Interest),
			yen(row.Balance),
			yen(row.MonthlyPrincipal),
			yen(row.MonthlyInterest),
			yen(row.BonusPrincipal),
			yen(row.BonusInterest),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// YearlyCSVFormatter writes the yearly roll-up of the full schedule
type YearlyCSVFormatter struct{}

func (c YearlyCSVFormatter) Name() string { return "yearly-csv" }

func (c YearlyCSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Year", "Payment", "Principal", "Interest", "Balance"}); err != nil {
		return nil, err
	}
	for _, y := range report.Yearly {
		record := []string{strconv.Itoa(y.Year), yen(y.Payment), yen(y.Principal), yen(y.Interest), yen(y.Balance)}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func yen(d decimal.Decimal) string { return d.StringFixed(0) }
