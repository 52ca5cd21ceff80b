package main

import (
	"fmt"

	"github.com/rgehrsitz/mortgo/internal/calculation"
	"github.com/rgehrsitz/mortgo/internal/config"
	"github.com/rgehrsitz/mortgo/internal/output"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [scenario-file]",
		Short: "Validate a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]

			parser := config.NewInputParser()
			cfg, err := parser.LoadFromFile(inputFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration file %s is valid\n", inputFile)
			for _, scenario := range cfg.Scenarios {
				params, err := calculation.NormalizeInput(scenario)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %-24s %s, %s, %d years, %s\n",
					scenario.Name,
					output.FormatYen(params.Principal),
					output.FormatPercentage(params.AnnualRatePercent),
					params.TermYears,
					params.Method.Label())
			}
			return nil
		},
	}
}
