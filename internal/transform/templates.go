package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []AssumptionTransform
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

// CreateBuiltInTemplates creates a template registry with common retirement what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	for _, years := range []int{1, 2, 3} {
		registry.Register(Template{
			Name:        fmt.Sprintf("postpone_%dyr", years),
			Description: fmt.Sprintf("Postpone retirement by %d year(s)", years),
			Transforms:  []AssumptionTransform{&PostponeRetirement{Years: years}},
		})
	}
	registry.Register(Template{
		Name:        "retire_early_2yr",
		Description: "Retire 2 years earlier",
		Transforms:  []AssumptionTransform{&PostponeRetirement{Years: -2}},
	})

	for _, pct := range []int64{3, 5} {
		registry.Register(Template{
			Name:        fmt.Sprintf("swr_%dpct", pct),
			Description: fmt.Sprintf("Withdraw %d%% of the retirement balance", pct),
			Transforms:  []AssumptionTransform{&AdjustWithdrawalRate{Rate: decimal.New(pct, -2)}},
		})
	}

	registry.Register(Template{
		Name:        "conservative",
		Description: "Expected returns one point lower",
		Transforms:  []AssumptionTransform{&ShiftReturns{Delta: decimal.New(-1, -2)}},
	})
	registry.Register(Template{
		Name:        "aggressive",
		Description: "Expected returns one point higher",
		Transforms:  []AssumptionTransform{&ShiftReturns{Delta: decimal.New(1, -2)}},
	})
	registry.Register(Template{
		Name:        "high_inflation",
		Description: "Inflation at 4%",
		Transforms:  []AssumptionTransform{&SetInflation{Rate: decimal.New(4, -2)}},
	})
	registry.Register(Template{
		Name:        "save_more",
		Description: "Contribute 25% more each year",
		Transforms:  []AssumptionTransform{&ScaleContributions{Factor: decimal.New(125, -2)}},
	})
	registry.Register(Template{
		Name:        "standard_order",
		Description: "Withdraw taxable, then traditional, then Roth",
		Transforms:  []AssumptionTransform{&ChangeSequencing{Strategy: "standard"}},
	})
	registry.Register(Template{
		Name:        "tax_efficient",
		Description: "Use tax-efficient withdrawal sequencing",
		Transforms:  []AssumptionTransform{&ChangeSequencing{Strategy: "tax_efficient"}},
	})

	return registry
}

// ApplyTemplate applies every transform of t to base
func ApplyTemplate(base domain.RetirementAssumptions, t Template) (domain.RetirementAssumptions, error) {
	return ApplyTransforms(base, t.Transforms)
}
