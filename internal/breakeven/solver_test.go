package breakeven

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/calculation"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/product"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/projection"
	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

func intPtr(v int) *int { return &v }

// plainResolver is a product without any charges.
type plainResolver struct{}

func (plainResolver) Resolve(product.VariantOptions) (product.Variant, error) {
	return product.Variant{ProductID: "plain", ID: "plain", Currency: "HUF"}, nil
}

func (plainResolver) Describe() product.Description { return product.Description{ID: "plain"} }

func plainSolver() *Solver {
	registry := product.NewRegistry()
	registry.Register("plain", plainResolver{})
	return NewDefaultSolver(projection.NewService(calculation.NewEngineWithRegistry(registry)))
}

func plainScenario(years int, payment, yield int64) *domain.Scenario {
	return &domain.Scenario{
		Name:               "plain",
		Product:            "plain",
		DurationYears:      years,
		AnnualYieldPercent: ptr(d(yield)),
		Main:               domain.TrackSettings{BaseYear1Payment: d(payment)},
	}
}

func TestNewSolver(t *testing.T) {
	service := projection.NewService(nil)
	solver := NewSolver(service, DefaultSolverOptions())
	if solver.Service != service {
		t.Error("Expected Service to match input")
	}
	defaults := DefaultSolverOptions()
	if solver.Options.GridResolution != defaults.GridResolution ||
		solver.Options.MaxIterations != defaults.MaxIterations ||
		!solver.Options.Tolerance.Equal(defaults.Tolerance) {
		t.Error("Expected Options to match input")
	}

	if NewDefaultSolver(nil).Service == nil {
		t.Error("Expected a default service")
	}
}

func TestSolver_OptimizePayment_MatchNetBalance(t *testing.T) {
	result, err := plainSolver().Optimize(context.Background(), OptimizationRequest{
		BaseScenario: plainScenario(5, 100_000, 0),
		Target:       OptimizePayment,
		Goal:         GoalMatchNetBalance,
		Constraints:  Constraints{TargetNetBalance: ptr(d(1_000_000))},
	})
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if !result.Success {
		t.Errorf("Expected success, got %s", result.ConvergenceInfo)
	}
	if result.OptimalPayment == nil {
		t.Fatal("Expected an optimal payment")
	}
	// no yield and no charges: five payments must sum to the target
	if diff := result.OptimalPayment.Mul(d(5)).Sub(d(1_000_000)).Abs(); diff.GreaterThan(d(1_000)) {
		t.Errorf("Expected payment near 200000, got %s", result.OptimalPayment)
	}
	if result.Base == nil || !result.Base.NetBalance.Equal(d(500_000)) {
		t.Errorf("Expected base net balance 500000, got %+v", result.Base)
	}
	if !result.Metrics.NetDiffFromBase.Equal(result.Metrics.NetBalance.Sub(d(500_000))) {
		t.Error("Expected the diff against the base to be filled")
	}
}

func TestSolver_OptimizeYield_MatchNetBalance(t *testing.T) {
	result, err := plainSolver().Optimize(context.Background(), OptimizationRequest{
		BaseScenario: plainScenario(1, 1_000_000, 0),
		Target:       OptimizeYield,
		Goal:         GoalMatchNetBalance,
		Constraints:  Constraints{TargetNetBalance: ptr(d(1_072_000))},
	})
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if result.OptimalYield == nil {
		t.Fatal("Expected an optimal yield")
	}
	// 10% growth less 28% tax on the profit
	if result.OptimalYield.LessThan(decimal.NewFromFloat(9.8)) || result.OptimalYield.GreaterThan(decimal.NewFromFloat(10.2)) {
		t.Errorf("Expected yield near 10, got %s", result.OptimalYield)
	}
}

func TestSolver_OptimizeDuration(t *testing.T) {
	result, err := plainSolver().Optimize(context.Background(), OptimizationRequest{
		BaseScenario: plainScenario(3, 100_000, 0),
		Target:       OptimizeDuration,
		Goal:         GoalMatchNetBalance,
		Constraints:  Constraints{TargetNetBalance: ptr(d(450_000))},
	})
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if result.OptimalDuration == nil || *result.OptimalDuration != 5 {
		t.Fatalf("Expected 5 years, got %v", result.OptimalDuration)
	}
	if !result.Success {
		t.Error("Expected success")
	}
}

func TestSolver_OptimizeDuration_SkipsTooShortTerms(t *testing.T) {
	base := &domain.Scenario{
		Name:          "pension",
		Product:       string(product.GenericPension),
		DurationYears: 10,
		Main:          domain.TrackSettings{BaseYear1Payment: d(240_000)},
	}
	result, err := NewDefaultSolver(nil).Optimize(context.Background(), OptimizationRequest{
		BaseScenario: base,
		Target:       OptimizeDuration,
		Goal:         GoalMaximizeNetGain,
		Constraints:  Constraints{MaxDuration: intPtr(12)},
	})
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if result.OptimalDuration == nil || *result.OptimalDuration < 10 {
		t.Errorf("Expected a duration of at least 10 years, got %v", result.OptimalDuration)
	}
}

func TestSolver_GridSearch(t *testing.T) {
	result, err := plainSolver().Optimize(context.Background(), OptimizationRequest{
		BaseScenario: plainScenario(5, 100_000, 10),
		Target:       OptimizePayment,
		Goal:         GoalMaximizeNetGain,
		Constraints:  Constraints{MaxPayment: ptr(d(500_000))},
	})
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if result.OptimalPayment == nil || !result.OptimalPayment.Equal(d(500_000)) {
		t.Errorf("Expected the largest payment to maximize the gain, got %v", result.OptimalPayment)
	}
	if !strings.HasPrefix(result.ConvergenceInfo, "Evaluated 11 grid points") {
		t.Errorf("Unexpected convergence info %q", result.ConvergenceInfo)
	}
}

func TestSolver_Optimize_Errors(t *testing.T) {
	solver := plainSolver()
	ctx := context.Background()
	base := plainScenario(5, 100_000, 0)

	tests := []struct {
		name    string
		req     OptimizationRequest
		wantErr string
	}{
		{"nil base", OptimizationRequest{Target: OptimizePayment}, "base scenario is required"},
		{"missing target balance", OptimizationRequest{BaseScenario: base, Target: OptimizePayment, Goal: GoalMatchNetBalance}, "requires target_net_balance"},
		{"unknown target", OptimizationRequest{BaseScenario: base, Target: "age", Goal: GoalMaximizeNetGain}, "unsupported optimization target"},
		{"bad constraints", OptimizationRequest{BaseScenario: base, Target: OptimizePayment, Goal: GoalMaximizeNetGain,
			Constraints: Constraints{MinDuration: intPtr(5), MaxDuration: intPtr(2)}}, "min_duration"},
		{"unreachable", OptimizationRequest{BaseScenario: base, Target: OptimizePayment, Goal: GoalMatchNetBalance,
			Constraints: Constraints{TargetNetBalance: ptr(d(1_000_000)), MaxPayment: ptr(d(1))}}, "not reachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := solver.Optimize(ctx, tt.req)
			if err == nil {
				t.Fatal("Expected error")
			}
			var beErr *BreakEvenError
			if !errors.As(err, &beErr) {
				t.Errorf("Expected BreakEvenError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected %q in %q", tt.wantErr, err.Error())
			}
		})
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err := solver.Optimize(canceled, OptimizationRequest{BaseScenario: base, Target: OptimizeYield, Goal: GoalMaximizeNetGain})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSolver_OptimizeMultiDimensional(t *testing.T) {
	result, err := plainSolver().OptimizeAllTargets(context.Background(), plainScenario(5, 100_000, 5),
		Constraints{TargetNetBalance: ptr(d(600_000))}, GoalMatchNetBalance)
	if err != nil {
		t.Fatalf("OptimizeAllTargets failed: %v", err)
	}
	if len(result.Results) != 3 {
		t.Fatalf("Expected one result per target, got %d", len(result.Results))
	}
	if result.BestByNetBalance == nil || result.BestByNetGain == nil || result.BestByCostRate == nil {
		t.Error("Expected every best-of slot to be filled")
	}
	if len(result.Recommendations) < 3 {
		t.Errorf("Expected recommendations, got %v", result.Recommendations)
	}

	_, err = plainSolver().OptimizeAllTargets(context.Background(), plainScenario(5, 100_000, 5),
		Constraints{Track: "side"}, GoalMaximizeNetGain)
	if err == nil {
		t.Error("Expected invalid constraints to fail")
	}
}
