package breakeven

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what parameter to solve for
type OptimizationTarget string

const (
	OptimizeWithdrawalRate OptimizationTarget = "withdrawal_rate"
	OptimizeRetirementAge  OptimizationTarget = "retirement_age"
	OptimizeAll            OptimizationTarget = "all"
)

// Constraints define bounds for the solved parameter
type Constraints struct {
	MinWithdrawalRate *decimal.Decimal `json:"minWithdrawalRate,omitempty"`
	MaxWithdrawalRate *decimal.Decimal `json:"maxWithdrawalRate,omitempty"`

	MinRetirementAge *int `json:"minRetirementAge,omitempty"`
	MaxRetirementAge *int `json:"maxRetirementAge,omitempty"`

	// MinFinalBalance is the legacy the plan must still hold at life expectancy
	MinFinalBalance decimal.Decimal `json:"minFinalBalance"`
}

// DefaultConstraints returns bounds wide enough for ordinary plans
func DefaultConstraints() Constraints {
	minRate := decimal.NewFromFloat(0.005)
	maxRate := decimal.NewFromFloat(0.15)
	return Constraints{
		MinWithdrawalRate: &minRate,
		MaxWithdrawalRate: &maxRate,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinWithdrawalRate != nil && c.MaxWithdrawalRate != nil {
		if c.MinWithdrawalRate.GreaterThan(*c.MaxWithdrawalRate) {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "min_withdrawal_rate cannot be greater than max_withdrawal_rate",
			}
		}
		if c.MinWithdrawalRate.IsNegative() || c.MaxWithdrawalRate.GreaterThan(decimal.NewFromInt(1)) {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "withdrawal rates must be between 0 and 1",
			}
		}
	}
	if c.MinRetirementAge != nil && c.MaxRetirementAge != nil && *c.MinRetirementAge > *c.MaxRetirementAge {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_retirement_age cannot be after max_retirement_age",
		}
	}
	if c.MinFinalBalance.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_final_balance cannot be negative",
		}
	}
	return nil
}

// OptimizationRequest defines the parameters for a solver run
type OptimizationRequest struct {
	Assumptions   domain.RetirementAssumptions
	Target        OptimizationTarget
	Constraints   Constraints
	MaxIterations int
	Tolerance     decimal.Decimal // rate tolerance for the bisection
}

// OptimizationResult contains the results of a solver run
type OptimizationResult struct {
	Target          OptimizationTarget `json:"target"`
	Success         bool               `json:"success"`
	Iterations      int                `json:"iterations"`
	ConvergenceInfo string             `json:"convergenceInfo"`

	OptimalWithdrawalRate *decimal.Decimal `json:"optimalWithdrawalRate,omitempty"`
	OptimalRetirementAge  *int             `json:"optimalRetirementAge,omitempty"`

	// Projection at the solved parameter
	Scenario          *domain.ScenarioBundle `json:"-"`
	InitialWithdrawal decimal.Decimal        `json:"initialWithdrawal"`
	FinalBalance      decimal.Decimal        `json:"finalBalance"`

	// Comparison to the plan as written
	BaseSustainable bool            `json:"baseSustainable"`
	WithdrawalDiff  decimal.Decimal `json:"withdrawalDiff"`
}

// MultiDimensionalResult holds one result per solvable target
type MultiDimensionalResult struct {
	WithdrawalRate  *OptimizationResult `json:"withdrawalRate,omitempty"`
	RetirementAge   *OptimizationResult `json:"retirementAge,omitempty"`
	Recommendations []string            `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromFloat(0.0001), // one hundredth of a point
		MaxIterations: 50,
	}
}

// BreakEvenError represents errors from the break-even solver
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
