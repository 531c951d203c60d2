package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
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
	Category    string
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

const (
	categoryYield    = "Yield"
	categoryPayments = "Payments"
	categoryDuration = "Duration"
	categoryTax      = "Tax"
	categoryCombined = "Combination Strategies"
)

var categoryOrder = []string{categoryYield, categoryPayments, categoryDuration, categoryTax, categoryCombined}

// CreateBuiltInTemplates creates a template registry with common savings scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()
	pct := decimal.NewFromInt
	factor := func(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }
	compound := true

	registry.Register(Template{
		Name:        "yield_low",
		Description: "Assume a 3% annual yield",
		Category:    categoryYield,
		Transforms:  []ScenarioTransform{&SetYield{Percent: pct(3)}},
	})
	registry.Register(Template{
		Name:        "yield_high",
		Description: "Assume a 9% annual yield",
		Category:    categoryYield,
		Transforms:  []ScenarioTransform{&SetYield{Percent: pct(9)}},
	})
	registry.Register(Template{
		Name:        "yield_zero",
		Description: "Assume no investment growth",
		Category:    categoryYield,
		Transforms:  []ScenarioTransform{&SetYield{Percent: decimal.Zero}},
	})

	registry.Register(Template{
		Name:        "payment_plus_10",
		Description: "Pay 10% more into the main track every year",
		Category:    categoryPayments,
		Transforms:  []ScenarioTransform{&ScalePayments{Track: domain.TrackMain, Factor: factor(1.1)}},
	})
	registry.Register(Template{
		Name:        "payment_minus_10",
		Description: "Pay 10% less into the main track every year",
		Category:    categoryPayments,
		Transforms:  []ScenarioTransform{&ScalePayments{Track: domain.TrackMain, Factor: factor(0.9)}},
	})
	registry.Register(Template{
		Name:        "index_3pct",
		Description: "Index main payments by 3% a year, compounding",
		Category:    categoryPayments,
		Transforms:  []ScenarioTransform{&SetIndex{Track: domain.TrackMain, Percent: pct(3), Compound: &compound}},
	})

	registry.Register(Template{
		Name:        "extend_5yr",
		Description: "Extend the policy by 5 years",
		Category:    categoryDuration,
		Transforms:  []ScenarioTransform{&ExtendDuration{Years: 5}},
	})
	registry.Register(Template{
		Name:        "extend_10yr",
		Description: "Extend the policy by 10 years",
		Category:    categoryDuration,
		Transforms:  []ScenarioTransform{&ExtendDuration{Years: 10}},
	})

	registry.Register(Template{
		Name:        "corporate",
		Description: "Tax the policy as a corporate holding",
		Category:    categoryTax,
		Transforms:  []ScenarioTransform{&SetCorporate{Corporate: true}},
	})
	registry.Register(Template{
		Name:        "tax_credit",
		Description: "Claim the yearly tax credit",
		Category:    categoryTax,
		Transforms:  []ScenarioTransform{&SetTaxCredit{Enabled: true}},
	})

	registry.Register(Template{
		Name:        "eseti_lump",
		Description: "Add a one-off 1,000,000 extraordinary payment in year 1",
		Category:    categoryCombined,
		Transforms:  []ScenarioTransform{NewSetYearPayment(domain.TrackEseti, 1, pct(1_000_000))},
	})
	registry.Register(Template{
		Name:        "long_haul",
		Description: "Extend 10 years + claim the tax credit",
		Category:    categoryCombined,
		Transforms: []ScenarioTransform{
			&ExtendDuration{Years: 10},
			&SetTaxCredit{Enabled: true},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base *domain.Scenario, template Template) (*domain.Scenario, error) {
	if len(template.Transforms) == 0 {
		if base == nil {
			return nil, fmt.Errorf("base scenario cannot be nil")
		}
		return base.Clone(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

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

	categories := make(map[string][]Template)
	for _, name := range registry.List() {
		t := registry.templates[name]
		category := t.Category
		if category == "" {
			category = categoryCombined
		}
		categories[category] = append(categories[category], t)
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, category := range categoryOrder {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  savingscalc compare scenario.yaml --with yield_low,yield_high\n")
	sb.WriteString("  savingscalc compare scenario.yaml --with extend_5yr,tax_credit\n")

	return sb.String()
}
