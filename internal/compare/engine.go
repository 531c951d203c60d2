package compare

import (
	"context"
	"fmt"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/config"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/projection"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	Service           *projection.Service
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine; a nil service uses the default engine.
func NewCompareEngine(service *projection.Service) *CompareEngine {
	if service == nil {
		service = projection.NewService(nil)
	}
	return &CompareEngine{
		Service:           service,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // empty selects the first scenario
	Templates        []string // List of template names to apply
}

// Compare runs the base scenario and one variation per template.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	cfg *config.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	baseScenario, err := cfg.Scenario(options.BaseScenarioName)
	if err != nil {
		return nil, fmt.Errorf("base scenario: %w", err)
	}

	baseResult, err := ce.run(ctx, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	alternatives := []ComparisonResult{}
	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(baseScenario, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		modified.Name = baseScenario.Name + "_" + template.Name

		altResult, err := ce.run(ctx, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", templateName, err)
		}
		altResult.Description = template.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	return ce.newSet(baseScenario.Name, baseResult, alternatives), nil
}

// CompareScenarios compares explicit scenarios of a configuration (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	cfg *config.Configuration,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {
	baseScenario, err := cfg.Scenario(baseScenarioName)
	if err != nil {
		return nil, fmt.Errorf("base scenario: %w", err)
	}
	baseResult, err := ce.run(ctx, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	alternatives := []ComparisonResult{}
	for _, altName := range alternativeScenarioNames {
		if altName == "" {
			return nil, fmt.Errorf("alternative scenario name cannot be empty")
		}
		scenario, err := cfg.Scenario(altName)
		if err != nil {
			return nil, fmt.Errorf("alternative scenario: %w", err)
		}
		altResult, err := ce.run(ctx, scenario)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", altName, err)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	return ce.newSet(baseScenario.Name, baseResult, alternatives), nil
}

func (ce *CompareEngine) run(ctx context.Context, scenario *domain.Scenario) (ComparisonResult, error) {
	result, err := ce.Service.Run(ctx, scenario)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(result), nil
}

func (ce *CompareEngine) newSet(baseName string, base ComparisonResult, alternatives []ComparisonResult) *ComparisonSet {
	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &base,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}
