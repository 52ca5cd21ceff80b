package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/shopspring/decimal"
)

// unit of the amount_man_yen parameter
var manYen = decimal.NewFromInt(10000)

// TransformRegistry creates transforms from string parameters, for the CLI
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_method", createSetMethod)
	registry.Register("remove_bonus", createRemoveBonus)
	registry.Register("set_bonus", createSetBonus)
	registry.Register("adjust_term", createAdjustTerm)
	registry.Register("adjust_rate", createAdjustRate)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "adjust_term:years=-5"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			k, v, ok := strings.Cut(paramPair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	return r.Create(name, params)
}

func createSetMethod(params map[string]string) (ScenarioTransform, error) {
	value, ok := params["method"]
	if !ok {
		return nil, fmt.Errorf("set_method requires 'method' parameter")
	}
	method, err := domain.ParseMethod(value)
	if err != nil {
		return nil, err
	}
	return &SetMethod{Method: method}, nil
}

func createRemoveBonus(params map[string]string) (ScenarioTransform, error) {
	return &RemoveBonus{}, nil
}

func createSetBonus(params map[string]string) (ScenarioTransform, error) {
	value, ok := params["amount_man_yen"]
	if !ok {
		return nil, fmt.Errorf("set_bonus requires 'amount_man_yen' parameter")
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid amount_man_yen value: %w", err)
	}
	return &SetBonus{Amount: amount.Mul(manYen)}, nil
}

func createAdjustTerm(params map[string]string) (ScenarioTransform, error) {
	value, ok := params["years"]
	if !ok {
		return nil, fmt.Errorf("adjust_term requires 'years' parameter")
	}
	years, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}
	return &AdjustTerm{Years: years}, nil
}

func createAdjustRate(params map[string]string) (ScenarioTransform, error) {
	value, ok := params["delta"]
	if !ok {
		return nil, fmt.Errorf("adjust_rate requires 'delta' parameter")
	}
	delta, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid delta value: %w", err)
	}
	return &AdjustRate{DeltaPercent: delta}, nil
}
