package main

import (
	"fmt"

	"github.com/rgehrsitz/mortgo/internal/calculation"
	"github.com/rgehrsitz/mortgo/internal/compare"
	"github.com/rgehrsitz/mortgo/internal/config"
	"github.com/rgehrsitz/mortgo/internal/transform"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [scenario-file]",
		Short: "Compare a loan against alternatives",
		Long: `Compare a base loan against alternatives built from templates, ad-hoc
transforms or other scenarios in the same file. Without --with, --transform or
--scenarios the base loan is compared against the other repayment method.

Examples:
  mortgo compare --amount 3500 --rate 0.525 --years 35
  mortgo compare scenarios.yaml --base "Flat 35" --with rate_plus_1,term_minus_5
  mortgo compare scenarios.yaml --base "Flat 35" --scenarios "With bonus"
  mortgo compare --transform adjust_rate:delta=0.25 --transform set_bonus:amount_man_yen=500`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompare,
	}

	addLoanFlags(cmd)
	cmd.Flags().String("base", "", "Base scenario name (defaults to the first scenario in the file)")
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().String("scenarios", "", "Comma-separated list of scenarios from the file to compare")
	cmd.Flags().StringArray("transform", nil, "Ad-hoc alternative as name:key=value (repeatable)")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ce := compare.NewCompareEngine(newEngine(cmd))

	if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
		fmt.Fprint(out, transform.GetTemplateHelp(ce.TemplateRegistry))
		return nil
	}

	baseName, _ := cmd.Flags().GetString("base")
	templatesStr, _ := cmd.Flags().GetString("with")
	scenariosStr, _ := cmd.Flags().GetString("scenarios")
	transformSpecs, _ := cmd.Flags().GetStringArray("transform")
	outputFormat, _ := cmd.Flags().GetString("format")

	templates := transform.ParseTemplateList(templatesStr)
	for _, name := range templates {
		if _, ok := ce.TemplateRegistry.Get(name); !ok {
			return fmt.Errorf("unknown template %q; use --list-templates to see available templates", name)
		}
	}

	registry := transform.NewTransformRegistry()
	for _, spec := range transformSpecs {
		t, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return fmt.Errorf("invalid --transform %q: %w", spec, err)
		}
		ce.TemplateRegistry.Register(transform.Template{
			Name:        spec,
			Description: t.Description(),
			Transforms:  []transform.ScenarioTransform{t},
		})
		templates = append(templates, spec)
	}

	var compSet *compare.ComparisonSet
	var err error
	if len(args) == 0 {
		if scenariosStr != "" {
			return fmt.Errorf("--scenarios requires a scenario file")
		}
		in, ferr := loanInputFromFlags(cmd)
		if ferr != nil {
			return ferr
		}
		params, nerr := calculation.NormalizeInput(in)
		if nerr != nil {
			return nerr
		}
		if len(templates) == 0 {
			compSet, err = ce.CompareMethods(cmd.Context(), in.Name, params)
		} else {
			compSet, err = ce.CompareParameters(cmd.Context(), in.Name, params, templates)
		}
	} else {
		parser := config.NewInputParser()
		cfg, lerr := parser.LoadFromFile(args[0])
		if lerr != nil {
			return lerr
		}
		if baseName == "" {
			baseName = cfg.Scenarios[0].Name
		}
		base, ok := cfg.FindScenario(baseName)
		if !ok {
			return fmt.Errorf("base scenario %q not found in %s", baseName, args[0])
		}

		switch {
		case scenariosStr != "":
			compSet, err = ce.CompareScenarios(cmd.Context(), cfg, baseName, transform.ParseTemplateList(scenariosStr))
		case len(templates) == 0:
			params, nerr := calculation.NormalizeInput(*base)
			if nerr != nil {
				return nerr
			}
			compSet, err = ce.CompareMethods(cmd.Context(), baseName, params)
		default:
			compSet, err = ce.Compare(cmd.Context(), cfg, compare.CompareOptions{
				BaseScenarioName: baseName,
				Templates:        templates,
			})
		}
		if compSet != nil {
			compSet.ConfigPath = args[0]
		}
	}
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}
	logger.Debug("comparison complete",
		zap.String("base", compSet.BaseScenarioName),
		zap.Int("alternatives", len(compSet.AlternativeResults)))

	switch outputFormat {
	case "table":
		tf := &compare.TableFormatter{}
		fmt.Fprint(out, tf.Format(compSet))
	case "compact":
		tf := &compare.TableFormatter{}
		fmt.Fprintln(out, tf.FormatCompact(compSet))
	case "csv":
		cf := &compare.CSVFormatter{}
		data, err := cf.Format(compSet)
		if err != nil {
			return fmt.Errorf("failed to format CSV: %w", err)
		}
		fmt.Fprint(out, data)
	case "json":
		jf := &compare.JSONFormatter{}
		data, err := jf.Format(compSet)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprintln(out, data)
	default:
		return fmt.Errorf("unsupported format %q (use table, compact, csv or json)", outputFormat)
	}
	return nil
}
