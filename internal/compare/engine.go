package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/mortgo/internal/calculation"
	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/rgehrsitz/mortgo/internal/transform"
)

// CompareEngine orchestrates loan comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Name of the base scenario to compare against
	Templates        []string // List of template names to apply
}

// Compare evaluates a scenario from config against template alternatives
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	baseScenario, ok := config.FindScenario(options.BaseScenarioName)
	if !ok {
		return nil, fmt.Errorf("base scenario %s not found in configuration", options.BaseScenarioName)
	}

	params, err := calculation.NormalizeInput(*baseScenario)
	if err != nil {
		return nil, fmt.Errorf("invalid base scenario: %w", err)
	}

	return ce.CompareParameters(ctx, baseScenario.Name, params, options.Templates)
}

// CompareParameters evaluates base against each named template
func (ce *CompareEngine) CompareParameters(
	ctx context.Context,
	baseName string,
	base domain.LoanParameters,
	templates []string,
) (*ComparisonSet, error) {
	baseSchedule, err := ce.CalcEngine.BuildSchedule(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, baseSchedule)

	alternatives := []ComparisonResult{}
	for _, templateName := range templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		schedule, err := ce.CalcEngine.BuildSchedule(ctx, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", templateName, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(baseName+"_"+template.Name, schedule)
		altResult.Description = template.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareMethods evaluates base against the same loan under the other
// amortization method.
func (ce *CompareEngine) CompareMethods(ctx context.Context, baseName string, base domain.LoanParameters) (*ComparisonSet, error) {
	other := domain.EqualPrincipal
	if base.Method == domain.EqualPrincipal {
		other = domain.EqualInstallment
	}
	return ce.CompareParameters(ctx, baseName, base, []string{string(other)})
}

// CompareScenarios compares explicit scenarios from config (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	config *domain.Configuration,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {
	baseResult, err := ce.evaluateScenario(ctx, config, baseScenarioName)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	alternatives := []ComparisonResult{}
	for _, altName := range alternativeScenarioNames {
		altResult, err := ce.evaluateScenario(ctx, config, altName)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", altName, err)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(*altResult, *baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenarioName,
		BaseResult:         baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) evaluateScenario(ctx context.Context, config *domain.Configuration, name string) (*ComparisonResult, error) {
	scenario, ok := config.FindScenario(name)
	if !ok {
		return nil, fmt.Errorf("scenario %s not found", name)
	}

	schedule, err := ce.CalcEngine.Calculate(ctx, *scenario)
	if err != nil {
		return nil, err
	}

	result := ce.MetricsCalculator.CalculateMetrics(name, schedule)
	return &result, nil
}
