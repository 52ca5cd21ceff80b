package main

import (
	"fmt"

	"github.com/rgehrsitz/mortgo/internal/breakeven"
	"github.com/rgehrsitz/mortgo/internal/calculation"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const allTargets = "all"

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find the loan that fits a monthly budget",
		Long: `Search for the break-even loan parameter at which the highest ordinary-month
payment still fits the budget:

  loan_amount  the largest loan amount, keeping rate and term
  term         the shortest term, keeping amount and rate
  rate         the highest rate, keeping amount and term
  all          every target above (default)`,
		Example: `  mortgo solve --budget 100000
  mortgo solve --budget 90000 --target term --amount 3000 --rate 1.2`,
		Args: cobra.NoArgs,
		RunE: runSolve,
	}

	addLoanFlags(cmd)
	cmd.Flags().String("budget", "", "Largest acceptable monthly payment in yen (required)")
	cmd.Flags().String("target", allTargets, "Parameter to solve for (loan_amount, term, rate, all)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	_ = cmd.MarkFlagRequired("budget")
	return cmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	budgetStr, _ := cmd.Flags().GetString("budget")
	targetName, _ := cmd.Flags().GetString("target")
	formatName, _ := cmd.Flags().GetString("format")

	budget, err := decimal.NewFromString(budgetStr)
	if err != nil {
		return fmt.Errorf("invalid --budget %q: %w", budgetStr, err)
	}
	if formatName != "table" && formatName != "json" {
		return fmt.Errorf("unsupported format %q (available: table, json)", formatName)
	}

	in, err := loanInputFromFlags(cmd)
	if err != nil {
		return err
	}
	base, err := calculation.NormalizeInput(in)
	if err != nil {
		return err
	}

	solver := breakeven.NewDefaultSolver(newEngine(cmd))
	logger.Debug("solving for budget", zap.String("budget", budget.String()), zap.String("target", targetName))

	if targetName == allTargets {
		multi, err := solver.OptimizeAllTargets(cmd.Context(), base, budget)
		if err != nil {
			return err
		}
		if formatName == "json" {
			out, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMulti(multi)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatMulti(multi))
		return nil
	}

	target, err := breakeven.ParseTarget(targetName)
	if err != nil {
		return err
	}
	result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
		Base:          base,
		Target:        target,
		MonthlyBudget: budget,
	})
	if err != nil {
		return err
	}

	if formatName == "json" {
		out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
	}
	if !result.Success {
		return fmt.Errorf("budget %s cannot be met: %s", budget, result.Message)
	}
	return nil
}
