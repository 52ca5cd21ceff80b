package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/mortgo/internal/calculation"
	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Limits of the simulator form. They are stricter than the engine contract.
var (
	MinLoanManYen    = decimal.NewFromInt(100)
	MaxLoanManYen    = decimal.NewFromInt(30000)
	MaxRatePercent   = decimal.NewFromInt(20)
	MaxBonusFraction = decimal.NewFromFloat(0.5)
)

const (
	MinTermYears = 1
	MaxTermYears = domain.MaxTermYears
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads scenarios from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates scenario file contents
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if strings.TrimSpace(scenario.Name) == "" {
			return fmt.Errorf("scenario %d: name is required", i)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i, scenario.Name)
		}
		seen[scenario.Name] = true

		if err := ip.ValidateScenario(scenario); err != nil {
			return fmt.Errorf("scenario %d (%s) validation failed: %w", i, scenario.Name, err)
		}
	}
	return nil
}

// ValidateScenario applies the simulator form limits and then the engine's
// own parameter checks.
func (ip *InputParser) ValidateScenario(in *domain.LoanInput) error {
	if in.LoanAmountManYen.LessThan(MinLoanManYen) || in.LoanAmountManYen.GreaterThan(MaxLoanManYen) {
		return fmt.Errorf("loan amount must be between %s and %s man-yen, got %s",
			MinLoanManYen, MaxLoanManYen, in.LoanAmountManYen)
	}
	if in.AnnualRatePercent.IsNegative() || in.AnnualRatePercent.GreaterThan(MaxRatePercent) {
		return fmt.Errorf("annual rate must be between 0%% and %s%%, got %s%%", MaxRatePercent, in.AnnualRatePercent)
	}
	if in.TermYears < MinTermYears || in.TermYears > MaxTermYears {
		return fmt.Errorf("term must be between %d and %d years, got %d", MinTermYears, MaxTermYears, in.TermYears)
	}
	if in.Bonus.Enabled {
		maxBonus := MaxBonusAmount(in.LoanAmountManYen)
		if in.Bonus.AmountManYen.GreaterThan(maxBonus) {
			return fmt.Errorf("bonus amount cannot exceed 50%% of the loan (%s man-yen), got %s",
				maxBonus, in.Bonus.AmountManYen)
		}
	}

	if _, err := calculation.NormalizeInput(*in); err != nil {
		return err
	}
	return nil
}

// MaxBonusAmount is the largest bonus share the simulator allows, in whole man-yen
func MaxBonusAmount(loanManYen decimal.Decimal) decimal.Decimal {
	return loanManYen.Mul(MaxBonusFraction).Floor()
}
