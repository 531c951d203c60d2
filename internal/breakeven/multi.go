package breakeven

import (
	"context"
	"fmt"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/pkg/money"
)

// OptimizeMultiDimensional runs every target for every goal and ranks the results
func (s *Solver) OptimizeMultiDimensional(
	ctx context.Context,
	baseScenario *domain.Scenario,
	constraints Constraints,
	goals []OptimizationGoal,
) (*MultiDimensionalResult, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	targets := []OptimizationTarget{
		OptimizePayment,
		OptimizeYield,
		OptimizeDuration,
	}

	var results []OptimizationResult
	for _, target := range targets {
		for _, goal := range goals {
			result, err := s.Optimize(ctx, OptimizationRequest{
				BaseScenario:  baseScenario,
				Target:        target,
				Goal:          goal,
				Constraints:   constraints,
				MaxIterations: s.Options.MaxIterations,
				Tolerance:     s.Options.Tolerance,
			})
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				// an unreachable target on one dimension does not stop the others
				continue
			}
			if result.Success {
				results = append(results, *result)
			}
		}
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_multi_dimensional",
			Message:   "no successful optimizations found",
		}
	}

	mdResult := &MultiDimensionalResult{Results: results}
	for i := range results {
		r := &results[i]
		if mdResult.BestByNetBalance == nil || r.Metrics.NetBalance.GreaterThan(mdResult.BestByNetBalance.Metrics.NetBalance) {
			mdResult.BestByNetBalance = r
		}
		if mdResult.BestByNetGain == nil || r.Metrics.NetGain.GreaterThan(mdResult.BestByNetGain.Metrics.NetGain) {
			mdResult.BestByNetGain = r
		}
		if mdResult.BestByCostRate == nil || r.CostRate().LessThan(mdResult.BestByCostRate.CostRate()) {
			mdResult.BestByCostRate = r
		}
	}
	mdResult.Recommendations = generateMultiDimensionalRecommendations(mdResult)

	return mdResult, nil
}

// OptimizeAllTargets is a convenience method to optimize all targets with a single goal
func (s *Solver) OptimizeAllTargets(
	ctx context.Context,
	baseScenario *domain.Scenario,
	constraints Constraints,
	goal OptimizationGoal,
) (*MultiDimensionalResult, error) {
	return s.OptimizeMultiDimensional(ctx, baseScenario, constraints, []OptimizationGoal{goal})
}

// Describe renders the optimal parameter of a result, e.g. "payment 312 000 Ft".
func (r *OptimizationResult) Describe() string {
	switch {
	case r.OptimalPayment != nil:
		return "payment " + money.Format(*r.OptimalPayment, r.Metrics.Currency)
	case r.OptimalYield != nil:
		return "yield " + r.OptimalYield.StringFixed(2) + "%"
	case r.OptimalDuration != nil:
		return fmt.Sprintf("duration %d years", *r.OptimalDuration)
	}
	return string(r.Request.Target)
}

func generateMultiDimensionalRecommendations(result *MultiDimensionalResult) []string {
	var recommendations []string

	if best := result.BestByNetBalance; best != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Highest net balance: adjust %s (%s), ending at %s",
				best.Request.Target, best.Describe(), money.Format(best.Metrics.NetBalance, best.Metrics.Currency)))
	}
	if best := result.BestByNetGain; best != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Highest net gain: adjust %s (%s), gaining %s",
				best.Request.Target, best.Describe(), money.Format(best.Metrics.NetGain, best.Metrics.Currency)))
	}
	if best := result.BestByCostRate; best != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest cost rate: adjust %s (%s), costs at %s%% of contributions",
				best.Request.Target, best.Describe(), money.Percent(best.CostRate()).StringFixed(2)))
	}
	if result.BestByNetBalance != nil && result.BestByNetBalance == result.BestByNetGain {
		recommendations = append(recommendations,
			fmt.Sprintf("Adjusting %s leads on both net balance and net gain", result.BestByNetBalance.Request.Target))
	}
	return recommendations
}
