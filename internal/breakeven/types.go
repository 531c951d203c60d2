package breakeven

import (
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/compare"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what parameter to optimize
type OptimizationTarget string

const (
	OptimizePayment  OptimizationTarget = "payment"  // first-year payment of a track
	OptimizeYield    OptimizationTarget = "yield"    // annual yield percent
	OptimizeDuration OptimizationTarget = "duration" // policy years
)

// OptimizationGoal defines what outcome to achieve
type OptimizationGoal string

const (
	GoalMatchNetBalance  OptimizationGoal = "match_net_balance"  // reach a target net balance
	GoalMaximizeNetGain  OptimizationGoal = "maximize_net_gain"  // net balance + withdrawals - contributions
	GoalMinimizeCostRate OptimizationGoal = "minimize_cost_rate" // total costs / contributions
)

// ParseTarget validates a target name.
func ParseTarget(s string) (OptimizationTarget, error) {
	switch t := OptimizationTarget(s); t {
	case OptimizePayment, OptimizeYield, OptimizeDuration:
		return t, nil
	}
	return "", &BreakEvenError{Operation: "parse_target", Message: "unknown target " + s}
}

// ParseGoal validates a goal name.
func ParseGoal(s string) (OptimizationGoal, error) {
	switch g := OptimizationGoal(s); g {
	case GoalMatchNetBalance, GoalMaximizeNetGain, GoalMinimizeCostRate:
		return g, nil
	}
	return "", &BreakEvenError{Operation: "parse_goal", Message: "unknown goal " + s}
}

// Constraints define bounds for optimization parameters
type Constraints struct {
	// Track whose payment is solved for; empty means main
	Track domain.Track `json:"track,omitempty"`

	MinPayment *decimal.Decimal `json:"min_payment,omitempty"`
	MaxPayment *decimal.Decimal `json:"max_payment,omitempty"`

	// yield bounds in percent
	MinYield *decimal.Decimal `json:"min_yield,omitempty"`
	MaxYield *decimal.Decimal `json:"max_yield,omitempty"`

	MinDuration *int `json:"min_duration,omitempty"`
	MaxDuration *int `json:"max_duration,omitempty"`

	// Target for the match_net_balance goal
	TargetNetBalance *decimal.Decimal `json:"target_net_balance,omitempty"`
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	BaseScenario  *domain.Scenario   `json:"-"`
	Target        OptimizationTarget `json:"target"`
	Goal          OptimizationGoal   `json:"goal"`
	Constraints   Constraints        `json:"constraints"`
	MaxIterations int                `json:"max_iterations"`
	Tolerance     decimal.Decimal    `json:"tolerance"` // net balance tolerance for match_net_balance
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"request"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`

	OptimalPayment  *decimal.Decimal `json:"optimal_payment,omitempty"`
	OptimalYield    *decimal.Decimal `json:"optimal_yield,omitempty"`
	OptimalDuration *int             `json:"optimal_duration,omitempty"`

	// Metrics at the optimal parameters, diffed against the base scenario
	Metrics compare.ComparisonResult  `json:"metrics"`
	Base    *compare.ComparisonResult `json:"base,omitempty"`
}

// CostRate returns total costs over total contributions of the optimum.
func (r *OptimizationResult) CostRate() decimal.Decimal {
	if r.Metrics.Summary == nil {
		return decimal.Zero
	}
	return r.Metrics.Summary.CostRatio
}

// MultiDimensionalResult contains results when optimizing multiple parameters
type MultiDimensionalResult struct {
	Results          []OptimizationResult `json:"results"`
	BestByNetBalance *OptimizationResult  `json:"best_by_net_balance,omitempty"`
	BestByNetGain    *OptimizationResult  `json:"best_by_net_gain,omitempty"`
	BestByCostRate   *OptimizationResult  `json:"best_by_cost_rate,omitempty"`
	Recommendations  []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	GridResolution int             // grid points per dimension for non-match goals
	Tolerance      decimal.Decimal // net balance tolerance
	MaxIterations  int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		GridResolution: 10,
		Tolerance:      decimal.NewFromInt(1000),
		MaxIterations:  60,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	switch c.Track {
	case "", domain.TrackMain, domain.TrackEseti:
	default:
		return &BreakEvenError{Operation: "validate_constraints", Message: "unknown track " + string(c.Track)}
	}

	if c.MinPayment != nil && c.MinPayment.IsNegative() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_payment cannot be negative"}
	}
	if c.MinPayment != nil && c.MaxPayment != nil && c.MinPayment.GreaterThan(*c.MaxPayment) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_payment cannot be greater than max_payment"}
	}
	if c.MinYield != nil && c.MaxYield != nil && c.MinYield.GreaterThan(*c.MaxYield) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_yield cannot be greater than max_yield"}
	}
	if c.MinDuration != nil && c.MaxDuration != nil && *c.MinDuration > *c.MaxDuration {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_duration cannot be greater than max_duration"}
	}
	if (c.MinDuration != nil && *c.MinDuration < 1) || (c.MaxDuration != nil && *c.MaxDuration > 100) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "duration must be between 1 and 100"}
	}
	if c.TargetNetBalance != nil && c.TargetNetBalance.IsNegative() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "target_net_balance cannot be negative"}
	}
	return nil
}

func (c *Constraints) track() domain.Track {
	if c.Track == "" {
		return domain.TrackMain
	}
	return c.Track
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
