package breakeven

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
	"github.com/shopspring/decimal"
)

func testAssumptions() domain.RetirementAssumptions {
	return domain.RetirementAssumptions{
		CurrentAge:     60,
		RetirementAge:  65,
		LifeExpectancy: 90,
		Balances: domain.AccountBalances{
			PreTax:  decimal.NewFromInt(800000),
			TaxFree: decimal.NewFromInt(100000),
			Taxable: decimal.NewFromInt(100000),
		},
		ExpectedReturn:     decimal.NewFromFloat(0.06),
		InflationRate:      decimal.NewFromFloat(0.025),
		SafeWithdrawalRate: decimal.NewFromFloat(0.04),
	}
}

func newTestSolver() *Solver {
	return NewDefaultSolver(calculation.NewProjector())
}

func TestOptimizeWithdrawalRate(t *testing.T) {
	s := newTestSolver()
	a := testAssumptions()

	result, err := s.Optimize(context.Background(), OptimizationRequest{
		Assumptions: a,
		Target:      OptimizeWithdrawalRate,
		Constraints: DefaultConstraints(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || result.OptimalWithdrawalRate == nil {
		t.Fatalf("expected a solution, got %+v", result)
	}
	if !result.BaseSustainable {
		t.Error("a 4% plan should be sustainable")
	}

	rate := *result.OptimalWithdrawalRate
	if !rate.GreaterThan(a.SafeWithdrawalRate) || !rate.LessThan(decimal.NewFromFloat(0.15)) {
		t.Fatalf("expected a rate between 4%% and 15%%, got %s", rate)
	}
	if !result.WithdrawalDiff.IsPositive() {
		t.Errorf("expected a larger first withdrawal, got diff %s", result.WithdrawalDiff)
	}

	// the solved rate holds and a slightly higher one fails
	if _, ok, _ := s.evaluate(a, &transform.AdjustWithdrawalRate{Rate: rate}, decimal.Zero); !ok {
		t.Error("solved rate should be sustainable")
	}
	higher := rate.Add(decimal.NewFromFloat(0.001))
	if _, ok, _ := s.evaluate(a, &transform.AdjustWithdrawalRate{Rate: higher}, decimal.Zero); ok {
		t.Errorf("rate %s should deplete", higher)
	}
}

func TestOptimizeWithdrawalRate_UpperBoundSustainable(t *testing.T) {
	maxRate := decimal.NewFromFloat(0.01)
	constraints := DefaultConstraints()
	constraints.MaxWithdrawalRate = &maxRate

	result, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Assumptions: testAssumptions(),
		Target:      OptimizeWithdrawalRate,
		Constraints: constraints,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || !result.OptimalWithdrawalRate.Equal(maxRate) {
		t.Errorf("expected the upper bound, got %+v", result)
	}
	if result.Iterations != 2 {
		t.Errorf("expected 2 evaluations, got %d", result.Iterations)
	}
}

func TestOptimizeWithdrawalRate_NoSolution(t *testing.T) {
	constraints := DefaultConstraints()
	constraints.MinFinalBalance = decimal.NewFromInt(1_000_000_000_000)

	result, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Assumptions: testAssumptions(),
		Target:      OptimizeWithdrawalRate,
		Constraints: constraints,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success || result.OptimalWithdrawalRate != nil {
		t.Errorf("expected no solution, got %+v", result)
	}
	if result.BaseSustainable {
		t.Error("base cannot meet an unreachable legacy")
	}
}

func TestOptimizeRetirementAge(t *testing.T) {
	a := testAssumptions()
	a.SafeWithdrawalRate = decimal.NewFromFloat(0.08)
	s := newTestSolver()

	result, err := s.Optimize(context.Background(), OptimizationRequest{
		Assumptions: a,
		Target:      OptimizeRetirementAge,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BaseSustainable {
		t.Fatal("an 8% plan retiring at 65 should deplete")
	}
	if !result.Success {
		t.Fatalf("expected a solution, got %s", result.ConvergenceInfo)
	}

	age := *result.OptimalRetirementAge
	if age <= a.RetirementAge {
		t.Errorf("expected a later retirement than %d, got %d", a.RetirementAge, age)
	}
	if _, ok, _ := s.evaluate(a, &transform.SetRetirementAge{Age: age - 1}, decimal.Zero); ok {
		t.Errorf("age %d should not be sustainable", age-1)
	}
}

func TestOptimizeRetirementAge_Bounded(t *testing.T) {
	a := testAssumptions()
	a.SafeWithdrawalRate = decimal.NewFromFloat(0.2)
	maxAge := 66

	result, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Assumptions: a,
		Target:      OptimizeRetirementAge,
		Constraints: Constraints{MaxRetirementAge: &maxAge},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Errorf("expected no solution by age 66, got %d", *result.OptimalRetirementAge)
	}
	if !strings.Contains(result.ConvergenceInfo, "60-66") {
		t.Errorf("unexpected info %q", result.ConvergenceInfo)
	}
}

func TestOptimize_Errors(t *testing.T) {
	s := newTestSolver()

	_, err := s.Optimize(context.Background(), OptimizationRequest{Assumptions: testAssumptions(), Target: "ss_age"})
	var be *BreakEvenError
	if !errors.As(err, &be) {
		t.Errorf("expected BreakEvenError for unknown target, got %v", err)
	}

	lo, hi := decimal.NewFromFloat(0.1), decimal.NewFromFloat(0.05)
	_, err = s.Optimize(context.Background(), OptimizationRequest{
		Assumptions: testAssumptions(),
		Target:      OptimizeWithdrawalRate,
		Constraints: Constraints{MinWithdrawalRate: &lo, MaxWithdrawalRate: &hi},
	})
	if err == nil {
		t.Error("expected constraint validation error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Optimize(ctx, OptimizationRequest{
		Assumptions: testAssumptions(),
		Target:      OptimizeWithdrawalRate,
		Constraints: DefaultConstraints(),
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestConstraintsValidate(t *testing.T) {
	minAge, maxAge := 70, 65
	tests := []struct {
		name    string
		c       Constraints
		wantErr bool
	}{
		{"defaults", DefaultConstraints(), false},
		{"empty", Constraints{}, false},
		{"ages reversed", Constraints{MinRetirementAge: &minAge, MaxRetirementAge: &maxAge}, true},
		{"negative legacy", Constraints{MinFinalBalance: decimal.NewFromInt(-1)}, true},
	}
	for _, tt := range tests {
		if err := tt.c.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("%s: wantErr %v, got %v", tt.name, tt.wantErr, err)
		}
	}
}

func TestOptimizeMultiDimensional(t *testing.T) {
	multi, err := newTestSolver().OptimizeMultiDimensional(context.Background(), testAssumptions(), DefaultConstraints())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if multi.WithdrawalRate == nil || multi.RetirementAge == nil {
		t.Fatal("expected both targets solved")
	}
	if len(multi.Recommendations) == 0 || !strings.Contains(multi.Recommendations[0], "could withdraw up to") {
		t.Errorf("unexpected recommendations %v", multi.Recommendations)
	}

	text := (&TableFormatter{}).FormatMulti(multi)
	for _, want := range []string{"BREAK-EVEN ANALYSIS", "Withdrawal Rate:", "Retirement Age:", "RECOMMENDATIONS"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}

	js, err := (&JSONFormatter{}).Format(multi)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(js, `"optimalWithdrawalRate"`) {
		t.Errorf("json missing solved rate: %s", js)
	}
}
