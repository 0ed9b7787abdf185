package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds the parameter values at which a plan exactly breaks even, meaning
// its expected scenario lasts through life expectancy with the required legacy.
type Solver struct {
	Projector *calculation.Projector
	Options   SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(projector *calculation.Projector, options SolverOptions) *Solver {
	return &Solver{
		Projector: projector,
		Options:   options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(projector *calculation.Projector) *Solver {
	return NewSolver(projector, DefaultSolverOptions())
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	switch req.Target {
	case OptimizeWithdrawalRate:
		return s.optimizeWithdrawalRate(ctx, req)
	case OptimizeRetirementAge:
		return s.optimizeRetirementAge(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// evaluate projects the expected scenario after applying t
func (s *Solver) evaluate(base domain.RetirementAssumptions, t transform.AssumptionTransform, minFinal decimal.Decimal) (domain.ScenarioBundle, bool, error) {
	modified, err := transform.ApplyTransforms(base, []transform.AssumptionTransform{t})
	if err != nil {
		return domain.ScenarioBundle{}, false, err
	}
	bundle := s.Projector.Project(modified, "expected", modified.ExpectedReturn)
	return bundle, sustainable(bundle, minFinal), nil
}

// sustainable reports whether a projection never runs short and ends with at least minFinal
func sustainable(bundle domain.ScenarioBundle, minFinal decimal.Decimal) bool {
	for _, yr := range bundle.Years {
		if yr.IsDepleted() {
			return false
		}
	}
	return bundle.FinalBalance.GreaterThanOrEqual(minFinal)
}

func (s *Solver) baseline(req OptimizationRequest) domain.ScenarioBundle {
	a := req.Assumptions
	return s.Projector.Project(a, "expected", a.ExpectedReturn)
}

// optimizeWithdrawalRate bisects for the highest sustainable withdrawal rate
func (s *Solver) optimizeWithdrawalRate(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	lo := decimal.NewFromFloat(0.005)
	hi := decimal.NewFromFloat(0.15)
	if req.Constraints.MinWithdrawalRate != nil {
		lo = *req.Constraints.MinWithdrawalRate
	}
	if req.Constraints.MaxWithdrawalRate != nil {
		hi = *req.Constraints.MaxWithdrawalRate
	}
	minFinal := req.Constraints.MinFinalBalance

	base := s.baseline(req)
	result := &OptimizationResult{
		Target:          OptimizeWithdrawalRate,
		BaseSustainable: sustainable(base, minFinal),
	}

	check := func(rate decimal.Decimal) (domain.ScenarioBundle, bool, error) {
		result.Iterations++
		bundle, ok, err := s.evaluate(req.Assumptions, &transform.AdjustWithdrawalRate{Rate: rate}, minFinal)
		if err != nil {
			return bundle, false, &BreakEvenError{
				Operation: "optimize_withdrawal_rate",
				Message:   "failed to apply rate transform",
				Cause:     err,
			}
		}
		return bundle, ok, nil
	}

	bundle, ok, err := check(lo)
	if err != nil {
		return nil, err
	}
	if !ok {
		result.ConvergenceInfo = fmt.Sprintf("no sustainable rate at or above %s%%", percent(lo))
		return result, nil
	}
	best := bundle

	if bundle, ok, err = check(hi); err != nil {
		return nil, err
	} else if ok {
		return s.finish(result, base, hi, bundle, "upper bound is sustainable"), nil
	}

	for result.Iterations < req.MaxIterations && hi.Sub(lo).GreaterThan(req.Tolerance) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		mid := lo.Add(hi).Div(two).Round(8)
		bundle, ok, err := check(mid)
		if err != nil {
			return nil, err
		}
		if ok {
			lo, best = mid, bundle
		} else {
			hi = mid
		}
	}

	info := fmt.Sprintf("bisection converged within %s%%", percent(req.Tolerance))
	if hi.Sub(lo).GreaterThan(req.Tolerance) {
		info = fmt.Sprintf("max iterations (%d) reached", req.MaxIterations)
	}
	return s.finish(result, base, lo, best, info), nil
}

func (s *Solver) finish(result *OptimizationResult, base domain.ScenarioBundle, rate decimal.Decimal, bundle domain.ScenarioBundle, info string) *OptimizationResult {
	result.Success = true
	result.ConvergenceInfo = info
	result.OptimalWithdrawalRate = &rate
	result.Scenario = &bundle
	result.InitialWithdrawal = bundle.InitialWithdrawal
	result.FinalBalance = bundle.FinalBalance
	result.WithdrawalDiff = bundle.InitialWithdrawal.Sub(base.InitialWithdrawal)
	return result
}

// optimizeRetirementAge scans for the earliest sustainable retirement age
func (s *Solver) optimizeRetirementAge(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	a := req.Assumptions
	minAge, maxAge := a.CurrentAge, a.LifeExpectancy
	if req.Constraints.MinRetirementAge != nil && *req.Constraints.MinRetirementAge > minAge {
		minAge = *req.Constraints.MinRetirementAge
	}
	if req.Constraints.MaxRetirementAge != nil && *req.Constraints.MaxRetirementAge < maxAge {
		maxAge = *req.Constraints.MaxRetirementAge
	}
	minFinal := req.Constraints.MinFinalBalance

	base := s.baseline(req)
	result := &OptimizationResult{
		Target:          OptimizeRetirementAge,
		BaseSustainable: sustainable(base, minFinal),
	}

	for age := minAge; age <= maxAge && result.Iterations < req.MaxIterations; age++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result.Iterations++
		bundle, ok, err := s.evaluate(a, &transform.SetRetirementAge{Age: age}, minFinal)
		if err != nil {
			return nil, &BreakEvenError{
				Operation: "optimize_retirement_age",
				Message:   "failed to apply retirement age transform",
				Cause:     err,
			}
		}
		if ok {
			result.Success = true
			result.ConvergenceInfo = fmt.Sprintf("earliest sustainable age in %d-%d", minAge, maxAge)
			result.OptimalRetirementAge = &age
			result.Scenario = &bundle
			result.InitialWithdrawal = bundle.InitialWithdrawal
			result.FinalBalance = bundle.FinalBalance
			result.WithdrawalDiff = bundle.InitialWithdrawal.Sub(base.InitialWithdrawal)
			return result, nil
		}
	}

	result.ConvergenceInfo = fmt.Sprintf("no sustainable retirement age in %d-%d", minAge, maxAge)
	return result, nil
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2)
}
