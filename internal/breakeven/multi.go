package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// OptimizeMultiDimensional solves for every target and derives recommendations
func (s *Solver) OptimizeMultiDimensional(ctx context.Context, a domain.RetirementAssumptions, constraints Constraints) (*MultiDimensionalResult, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	multi := &MultiDimensionalResult{}
	for _, target := range []OptimizationTarget{OptimizeWithdrawalRate, OptimizeRetirementAge} {
		result, err := s.Optimize(ctx, OptimizationRequest{
			Assumptions:   a,
			Target:        target,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		})
		if err != nil {
			return nil, err
		}
		switch target {
		case OptimizeWithdrawalRate:
			multi.WithdrawalRate = result
		case OptimizeRetirementAge:
			multi.RetirementAge = result
		}
	}

	multi.Recommendations = generateRecommendations(a, multi)
	return multi, nil
}

func generateRecommendations(a domain.RetirementAssumptions, multi *MultiDimensionalResult) []string {
	var recs []string

	if wr := multi.WithdrawalRate; wr != nil && wr.Success {
		rate := *wr.OptimalWithdrawalRate
		switch {
		case !wr.BaseSustainable:
			recs = append(recs, fmt.Sprintf("Lower the withdrawal rate from %s%% to %s%% to last through age %d",
				percent(a.SafeWithdrawalRate), percent(rate), a.LifeExpectancy))
		case rate.GreaterThan(a.SafeWithdrawalRate):
			recs = append(recs, fmt.Sprintf("The plan could withdraw up to %s%% (first year $%s) and still last through age %d",
				percent(rate), wr.InitialWithdrawal.StringFixed(0), a.LifeExpectancy))
		}
	}

	if ra := multi.RetirementAge; ra != nil && ra.Success {
		age := *ra.OptimalRetirementAge
		switch {
		case age > a.RetirementAge:
			recs = append(recs, fmt.Sprintf("Postpone retirement to age %d to keep the current withdrawal rate", age))
		case age < a.RetirementAge:
			recs = append(recs, fmt.Sprintf("Retirement as early as age %d is sustainable at the current withdrawal rate", age))
		}
	} else if ra != nil {
		recs = append(recs, "No retirement age within range sustains the current withdrawal rate")
	}

	return recs
}
