package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/mortgo/internal/config"
	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/rgehrsitz/mortgo/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Default loan used when no scenario file is given
const (
	defaultAmountManYen = "3500"
	defaultRatePercent  = "0.525"
	defaultTermYears    = 35
)

var formatExtensions = map[string]string{
	"console":    "txt",
	"csv":        "csv",
	"yearly-csv": "csv",
	"json":       "json",
	"yaml":       "yaml",
	"html":       "html",
}

func newCalculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [scenario-file]",
		Short: "Build a repayment schedule",
		Long: `Build the month-by-month repayment schedule for a loan.
The loan is read from a scenario file when one is given, otherwise from flags.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCalculate,
	}

	addLoanFlags(cmd)
	cmd.Flags().String("scenario", "", "Only calculate the named scenario from the file")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, csv, yearly-csv, json, yaml, html)")
	cmd.Flags().Int("months", output.DefaultRowLimit, "Number of schedule rows to print (0 prints every month)")
	cmd.Flags().Bool("yearly", false, "Include the per-year summary")
	cmd.Flags().Bool("save", false, "Write the output to a timestamped file instead of stdout")
	return cmd
}

func addLoanFlags(cmd *cobra.Command) {
	cmd.Flags().String("amount", defaultAmountManYen, "Loan amount in man-yen (10,000 yen)")
	cmd.Flags().String("rate", defaultRatePercent, "Annual interest rate in percent")
	cmd.Flags().Int("years", defaultTermYears, "Repayment term in years")
	cmd.Flags().String("method", string(domain.EqualInstallment), "Repayment method (equal_installment|annuity, equal_principal|linear)")
	cmd.Flags().Bool("bonus", false, "Enable semi-annual bonus repayments")
	cmd.Flags().String("bonus-amount", "0", "Share of the loan repaid through bonus payments, in man-yen")
	cmd.Flags().String("name", "", "Scenario name shown in the output")
}

// loanInputFromFlags builds the loan described by the loan flags
func loanInputFromFlags(cmd *cobra.Command) (domain.LoanInput, error) {
	amountStr, _ := cmd.Flags().GetString("amount")
	rateStr, _ := cmd.Flags().GetString("rate")
	years, _ := cmd.Flags().GetInt("years")
	method, _ := cmd.Flags().GetString("method")
	bonus, _ := cmd.Flags().GetBool("bonus")
	bonusStr, _ := cmd.Flags().GetString("bonus-amount")
	name, _ := cmd.Flags().GetString("name")

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return domain.LoanInput{}, fmt.Errorf("invalid --amount %q: %w", amountStr, err)
	}
	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return domain.LoanInput{}, fmt.Errorf("invalid --rate %q: %w", rateStr, err)
	}
	bonusAmount, err := decimal.NewFromString(bonusStr)
	if err != nil {
		return domain.LoanInput{}, fmt.Errorf("invalid --bonus-amount %q: %w", bonusStr, err)
	}
	if !bonus && !bonusAmount.IsZero() {
		return domain.LoanInput{}, fmt.Errorf("--bonus-amount requires --bonus")
	}

	if name == "" {
		name = "Loan"
	}
	return domain.LoanInput{
		Name:              name,
		LoanAmountManYen:  amount,
		AnnualRatePercent: rate,
		TermYears:         years,
		Method:            method,
		Bonus:             domain.BonusInput{Enabled: bonus, AmountManYen: bonusAmount},
	}, nil
}

// loadScenarios returns the scenarios to run: from the file when given,
// otherwise the single loan described by flags.
func loadScenarios(cmd *cobra.Command, args []string) ([]domain.LoanInput, error) {
	if len(args) == 0 {
		in, err := loanInputFromFlags(cmd)
		if err != nil {
			return nil, err
		}
		return []domain.LoanInput{in}, nil
	}

	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(args[0])
	if err != nil {
		return nil, err
	}

	name, _ := cmd.Flags().GetString("scenario")
	if name == "" {
		return cfg.Scenarios, nil
	}
	scenario, ok := cfg.FindScenario(name)
	if !ok {
		return nil, fmt.Errorf("scenario %q not found in %s", name, args[0])
	}
	return []domain.LoanInput{*scenario}, nil
}

func runCalculate(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	months, _ := cmd.Flags().GetInt("months")
	yearly, _ := cmd.Flags().GetBool("yearly")
	save, _ := cmd.Flags().GetBool("save")

	formatter := output.GetFormatterByName(formatName)
	if formatter == nil {
		return fmt.Errorf("unsupported format %q (available: %s)", formatName,
			strings.Join(output.AvailableFormatterNames(), ", "))
	}
	if months == 0 {
		months = -1
	}

	scenarios, err := loadScenarios(cmd, args)
	if err != nil {
		return err
	}

	engine := newEngine(cmd)
	out := cmd.OutOrStdout()
	for i, scenario := range scenarios {
		logger.Debug("calculating scenario", zap.String("scenario", scenario.Name))
		result, err := engine.Calculate(cmd.Context(), scenario)
		if err != nil {
			return fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}

		report := output.NewReport(scenario.Name, result, output.ReportOptions{RowLimit: months, Yearly: yearly})
		if save {
			filename, err := output.WriteFormatted(formatter, report, formatExtensions[formatter.Name()])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Schedule for %s written to %s\n", report.Title(), filename)
			continue
		}

		data, err := formatter.Format(report)
		if err != nil {
			return fmt.Errorf("failed to format %s: %w", scenario.Name, err)
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	}
	return nil
}
