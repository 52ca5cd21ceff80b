package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in loan alternatives
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a registry with the common loan alternatives
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "equal_installment",
		Description: "Same loan repaid with equal installments",
		Transforms:  []ScenarioTransform{&SetMethod{Method: domain.EqualInstallment}},
	})
	registry.Register(Template{
		Name:        "equal_principal",
		Description: "Same loan repaid with equal principal",
		Transforms:  []ScenarioTransform{&SetMethod{Method: domain.EqualPrincipal}},
	})
	registry.Register(Template{
		Name:        "no_bonus",
		Description: "Same loan without bonus payments",
		Transforms:  []ScenarioTransform{&RemoveBonus{}},
	})

	for _, years := range []int{-10, -5, 5} {
		name := fmt.Sprintf("term_plus_%d", years)
		if years < 0 {
			name = fmt.Sprintf("term_minus_%d", -years)
		}
		t := &AdjustTerm{Years: years}
		registry.Register(Template{Name: name, Description: t.Description(), Transforms: []ScenarioTransform{t}})
	}

	for _, delta := range []string{"0.5", "1"} {
		t := &AdjustRate{DeltaPercent: decimal.RequireFromString(delta)}
		registry.Register(Template{
			Name:        "rate_plus_" + strings.ReplaceAll(delta, ".", "_"),
			Description: t.Description(),
			Transforms:  []ScenarioTransform{t},
		})
	}

	return registry
}

// ApplyTemplate applies all transforms in a template to base
func ApplyTemplate(base domain.LoanParameters, template Template) (domain.LoanParameters, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList splits a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
	}

	sb.WriteString("\nUsage:\n")
	sb.WriteString("  mortgo compare scenarios.yaml --with equal_principal,term_minus_5\n")
	sb.WriteString("  mortgo compare --amount 3500 --rate 0.525 --years 35 --with rate_plus_1\n")

	return sb.String()
}
