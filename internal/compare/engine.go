package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	Projector         *calculation.Projector
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine with the built-in templates
func NewCompareEngine(projector *calculation.Projector) *CompareEngine {
	return &CompareEngine{
		Projector:         projector,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// Compare projects the plan's expected scenario and each named template applied to it
func (ce *CompareEngine) Compare(ctx context.Context, plan *domain.Plan, templates []string) (*ComparisonSet, error) {
	alternatives := make([]Alternative, 0, len(templates))
	for _, name := range templates {
		tmpl, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		alternatives = append(alternatives, Alternative{
			Name:        tmpl.Name,
			Description: tmpl.Description,
			Transforms:  tmpl.Transforms,
		})
	}
	return ce.CompareAlternatives(ctx, plan, alternatives)
}

// Alternative is a named set of transforms to compare against the base plan
type Alternative struct {
	Name        string
	Description string
	Transforms  []transform.AssumptionTransform
}

// CompareAlternatives compares explicit alternatives rather than named templates
func (ce *CompareEngine) CompareAlternatives(ctx context.Context, plan *domain.Plan, alternatives []Alternative) (*ComparisonSet, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan cannot be nil")
	}

	baseName := plan.Name
	if baseName == "" {
		baseName = "base"
	}
	base := plan.Assumptions
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, base,
		ce.Projector.Project(base, baseName, base.ExpectedReturn))
	baseResult.Description = "Plan as written"

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, alt := range alternatives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(base, alt.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", alt.Name, err)
		}

		bundle := ce.Projector.Project(modified, alt.Name, modified.ExpectedReturn)
		result := ce.MetricsCalculator.CalculateMetrics(alt.Name, modified, bundle)
		result.Description = alt.Description
		results = append(results, ce.MetricsCalculator.CalculateComparison(result, baseResult))
	}

	compSet := &ComparisonSet{
		PlanName:           baseName,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}
