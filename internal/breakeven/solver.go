package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/compare"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/product"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/projection"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/transform"
	"github.com/shopspring/decimal"
)

var (
	two             = decimal.NewFromInt(2)
	minPaymentStep  = decimal.NewFromInt(1)
	minYieldStep    = decimal.NewFromFloat(0.001)
	defaultMinYield = decimal.NewFromInt(-10)
	defaultMaxYield = decimal.NewFromInt(30)
)

// Solver searches one scenario parameter for a goal
type Solver struct {
	Service *projection.Service
	Options SolverOptions
	metrics *compare.MetricsCalculator
}

// NewSolver creates a new break-even solver; a nil service uses the default engine
func NewSolver(service *projection.Service, options SolverOptions) *Solver {
	if service == nil {
		service = projection.NewService(nil)
	}
	return &Solver{
		Service: service,
		Options: options,
		metrics: compare.NewMetricsCalculator(),
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(service *projection.Service) *Solver {
	return NewSolver(service, DefaultSolverOptions())
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.BaseScenario == nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "base scenario is required"}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if req.Goal == GoalMatchNetBalance && req.Constraints.TargetNetBalance == nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "match_net_balance requires target_net_balance"}
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	base, err := s.Service.Run(ctx, req.BaseScenario)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "failed to calculate base scenario", Cause: err}
	}
	baseMetrics := s.metrics.CalculateMetrics(base)

	var result *OptimizationResult
	switch req.Target {
	case OptimizePayment:
		result, err = s.optimizePayment(ctx, req)
	case OptimizeYield:
		result, err = s.optimizeYield(ctx, req)
	case OptimizeDuration:
		result, err = s.optimizeDuration(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
	if err != nil {
		return nil, err
	}

	result.Base = &baseMetrics
	result.Metrics = s.metrics.CalculateComparison(result.Metrics, baseMetrics)
	return result, nil
}

// probe describes one search dimension
type probe struct {
	op        string
	transform func(v decimal.Decimal) transform.ScenarioTransform
	record    func(r *OptimizationResult, v decimal.Decimal)
}

func (s *Solver) optimizePayment(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	track := req.Constraints.track()
	lo := decimal.Zero
	if req.Constraints.MinPayment != nil {
		lo = *req.Constraints.MinPayment
	}
	hi := defaultMaxPayment(req)
	if req.Constraints.MaxPayment != nil {
		hi = *req.Constraints.MaxPayment
	}

	p := probe{
		op: "optimize_payment",
		transform: func(v decimal.Decimal) transform.ScenarioTransform {
			return &transform.SetPayment{Track: track, Amount: v.Round(0)}
		},
		record: func(r *OptimizationResult, v decimal.Decimal) {
			rounded := v.Round(0)
			r.OptimalPayment = &rounded
		},
	}
	return s.search(ctx, req, p, lo, hi, minPaymentStep)
}

// defaultMaxPayment bounds the payment search: ten times the current
// payment, or the target itself when nothing is paid yet.
func defaultMaxPayment(req OptimizationRequest) decimal.Decimal {
	current := decimal.Zero
	if ts := req.BaseScenario.TrackSettingsFor(req.Constraints.track()); ts != nil {
		current = ts.BaseYear1Payment
	}
	hi := current.Mul(decimal.NewFromInt(10))
	if t := req.Constraints.TargetNetBalance; t != nil && t.GreaterThan(hi) {
		hi = *t
	}
	if hi.IsZero() {
		hi = decimal.NewFromInt(10_000_000)
	}
	return hi
}

func (s *Solver) optimizeYield(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	lo, hi := defaultMinYield, defaultMaxYield
	if req.Constraints.MinYield != nil {
		lo = *req.Constraints.MinYield
	}
	if req.Constraints.MaxYield != nil {
		hi = *req.Constraints.MaxYield
	}

	p := probe{
		op: "optimize_yield",
		transform: func(v decimal.Decimal) transform.ScenarioTransform {
			return &transform.SetYield{Percent: v.Round(3)}
		},
		record: func(r *OptimizationResult, v decimal.Decimal) {
			rounded := v.Round(3)
			r.OptimalYield = &rounded
		},
	}
	return s.search(ctx, req, p, lo, hi, minYieldStep)
}

// search bisects [lo, hi] for the match goal, relying on the net balance
// growing with the parameter, and grid-searches it for the other goals.
func (s *Solver) search(ctx context.Context, req OptimizationRequest, p probe, lo, hi, minStep decimal.Decimal) (*OptimizationResult, error) {
	if req.Goal != GoalMatchNetBalance {
		return s.grid(ctx, req, p, lo, hi)
	}
	target := *req.Constraints.TargetNetBalance

	iterations := 1
	top, err := s.evaluate(ctx, req, p, hi, iterations)
	if err != nil {
		return nil, err
	}
	if top.Metrics.NetBalance.LessThan(target.Sub(req.Tolerance)) {
		return nil, &BreakEvenError{
			Operation: p.op,
			Message:   fmt.Sprintf("target net balance %s not reachable within bound %s", target.StringFixed(0), hi.String()),
		}
	}

	best := top
	for iterations < req.MaxIterations {
		iterations++
		mid := lo.Add(hi).Div(two)
		result, err := s.evaluate(ctx, req, p, mid, iterations)
		if err != nil {
			return nil, err
		}

		diff := result.Metrics.NetBalance.Sub(target)
		if diff.Abs().LessThanOrEqual(req.Tolerance) {
			result.Success = true
			result.ConvergenceInfo = fmt.Sprintf("Converged to target net balance within %s", req.Tolerance.StringFixed(0))
			return result, nil
		}
		if diff.IsNegative() {
			lo = mid
		} else {
			hi = mid
			best = result
		}

		if hi.Sub(lo).LessThan(minStep) {
			best.Success = true
			best.Iterations = iterations
			best.ConvergenceInfo = "Bisection converged"
			return best, nil
		}
	}

	best.Iterations = iterations
	best.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	return best, nil
}

func (s *Solver) grid(ctx context.Context, req OptimizationRequest, p probe, lo, hi decimal.Decimal) (*OptimizationResult, error) {
	steps := s.Options.GridResolution
	if steps < 1 {
		steps = 1
	}
	step := hi.Sub(lo).Div(decimal.NewFromInt(int64(steps)))

	var best *OptimizationResult
	evaluated := 0
	for i := 0; i <= steps && i < req.MaxIterations; i++ {
		evaluated++
		v := lo.Add(step.Mul(decimal.NewFromInt(int64(i))))
		result, err := s.evaluate(ctx, req, p, v, i+1)
		if err != nil {
			return nil, err
		}
		if best == nil || s.isBetter(result, best, req) {
			best = result
		}
	}
	best.Success = true
	best.ConvergenceInfo = fmt.Sprintf("Evaluated %d grid points", evaluated)
	return best, nil
}

func (s *Solver) evaluate(ctx context.Context, req OptimizationRequest, p probe, v decimal.Decimal, iteration int) (*OptimizationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	modified, err := transform.ApplyTransforms(req.BaseScenario, []transform.ScenarioTransform{p.transform(v)})
	if err != nil {
		return nil, &BreakEvenError{Operation: p.op, Message: "failed to apply transform", Cause: err}
	}
	projected, err := s.Service.Run(ctx, modified)
	if err != nil {
		return nil, &BreakEvenError{Operation: p.op, Message: "failed to calculate scenario", Cause: err}
	}
	result := &OptimizationResult{
		Request:    req,
		Iterations: iteration,
		Metrics:    s.metrics.CalculateMetrics(projected),
	}
	p.record(result, v)
	return result, nil
}

// optimizeDuration walks the duration range year by year. The match goal
// stops at the shortest duration that reaches the target.
func (s *Solver) optimizeDuration(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	minYears, maxYears := 1, req.BaseScenario.DurationYears+20
	if maxYears > 100 {
		maxYears = 100
	}
	if req.Constraints.MinDuration != nil {
		minYears = *req.Constraints.MinDuration
	}
	if req.Constraints.MaxDuration != nil {
		maxYears = *req.Constraints.MaxDuration
	}

	p := probe{
		op: "optimize_duration",
		transform: func(v decimal.Decimal) transform.ScenarioTransform {
			return &transform.SetDuration{Years: int(v.IntPart())}
		},
		record: func(r *OptimizationResult, v decimal.Decimal) {
			years := int(v.IntPart())
			r.OptimalDuration = &years
		},
	}

	var best *OptimizationResult
	iterations := 0
	for years := minYears; years <= maxYears && iterations < req.MaxIterations; years++ {
		iterations++
		result, err := s.evaluate(ctx, req, p, decimal.NewFromInt(int64(years)), iterations)
		if err != nil {
			// variants with a minimum duration reject the shorter terms
			if errors.Is(err, product.ErrDurationTooShort) {
				continue
			}
			return nil, err
		}

		if req.Goal == GoalMatchNetBalance {
			if result.Metrics.NetBalance.GreaterThanOrEqual(req.Constraints.TargetNetBalance.Sub(req.Tolerance)) {
				result.Success = true
				result.ConvergenceInfo = fmt.Sprintf("Target reached after %d years", years)
				return result, nil
			}
		}
		if best == nil || s.isBetter(result, best, req) {
			best = result
		}
	}

	if best == nil {
		return nil, &BreakEvenError{Operation: p.op, Message: "no valid durations found"}
	}
	if req.Goal == GoalMatchNetBalance {
		best.ConvergenceInfo = fmt.Sprintf("Target not reached within %d years", maxYears)
		return best, nil
	}
	best.Success = true
	best.ConvergenceInfo = fmt.Sprintf("Evaluated %d durations", iterations)
	return best, nil
}

// isBetter compares two results based on optimization goal
func (s *Solver) isBetter(a, b *OptimizationResult, req OptimizationRequest) bool {
	switch req.Goal {
	case GoalMaximizeNetGain:
		return a.Metrics.NetGain.GreaterThan(b.Metrics.NetGain)
	case GoalMinimizeCostRate:
		return a.CostRate().LessThan(b.CostRate())
	case GoalMatchNetBalance:
		target := *req.Constraints.TargetNetBalance
		return a.Metrics.NetBalance.Sub(target).Abs().LessThan(b.Metrics.NetBalance.Sub(target).Abs())
	default:
		return false
	}
}
