package compare

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                       `json:"scenarioName"`
	Description  string                       `json:"description"`
	Assumptions  domain.RetirementAssumptions `json:"-"`
	Bundle       *domain.ScenarioBundle       `json:"-"`

	// Key metrics
	BalanceAtRetirement decimal.Decimal `json:"balanceAtRetirement"`
	InitialWithdrawal   decimal.Decimal `json:"initialWithdrawal"`
	LifetimeWithdrawals decimal.Decimal `json:"lifetimeWithdrawals"`
	FinalBalance        decimal.Decimal `json:"finalBalance"`
	SustainabilityYears domain.Years    `json:"sustainabilityYears"`
	DepletionAge        int             `json:"depletionAge,omitempty"` // 0 when never depleted

	// Comparison to base
	FinalBalanceDiff    decimal.Decimal `json:"finalBalanceDiff"`
	FinalBalancePctDiff decimal.Decimal `json:"finalBalancePctDiff"`
	WithdrawalsDiff     decimal.Decimal `json:"withdrawalsDiff"`
	DepletionAgeDiff    int             `json:"depletionAgeDiff,omitempty"`

	// Scenario specifics for display
	RetirementAge      int             `json:"retirementAge"`
	SafeWithdrawalRate decimal.Decimal `json:"safeWithdrawalRate"`
	ExpectedReturn     decimal.Decimal `json:"expectedReturn"`
	Sequencing         string          `json:"sequencing"`
}

// Depleted reports whether the scenario runs out of money before life expectancy
func (cr *ComparisonResult) Depleted() bool {
	return cr.DepletionAge > 0
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	PlanName           string             `json:"planName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// MetricsCalculator extracts key metrics from projected scenarios
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a projected scenario
func (mc *MetricsCalculator) CalculateMetrics(name string, a domain.RetirementAssumptions, bundle domain.ScenarioBundle) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:        name,
		Assumptions:         a,
		Bundle:              &bundle,
		BalanceAtRetirement: bundle.BalanceAtRetirement,
		InitialWithdrawal:   bundle.InitialWithdrawal,
		FinalBalance:        bundle.FinalBalance,
		SustainabilityYears: bundle.SustainabilityYears,
		RetirementAge:       a.RetirementAge,
		SafeWithdrawalRate:  a.SafeWithdrawalRate,
		ExpectedReturn:      a.ExpectedReturn,
		Sequencing:          "standard",
	}
	if a.Sequencing != nil && a.Sequencing.Strategy != "" {
		result.Sequencing = a.Sequencing.Strategy
	}

	total := decimal.Zero
	for _, yr := range bundle.Years {
		total = total.Add(yr.Withdrawal.Sub(yr.Shortfall))
		if yr.IsDepleted() && result.DepletionAge == 0 {
			result.DepletionAge = yr.Age
		}
	}
	result.LifetimeWithdrawals = total
	return result
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.FinalBalanceDiff = scenario.FinalBalance.Sub(base.FinalBalance)
	if !base.FinalBalance.IsZero() {
		scenario.FinalBalancePctDiff = scenario.FinalBalanceDiff.
			Div(base.FinalBalance).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	scenario.WithdrawalsDiff = scenario.LifetimeWithdrawals.Sub(base.LifetimeWithdrawals)
	if scenario.Depleted() && base.Depleted() {
		scenario.DepletionAgeDiff = scenario.DepletionAge - base.DepletionAge
	}
	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Largest legacy
	best := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FinalBalance.GreaterThan(best.FinalBalance) {
			best = alt
		}
	}
	if best != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Largest final balance: %s ends $%s above the base plan",
				best.ScenarioName, best.FinalBalance.Sub(base.FinalBalance).StringFixed(0)))
	}

	// Most spending
	best = base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.LifetimeWithdrawals.GreaterThan(best.LifetimeWithdrawals) {
			best = alt
		}
	}
	if best != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Most lifetime spending: %s withdraws $%s more than the base plan",
				best.ScenarioName, best.LifetimeWithdrawals.Sub(base.LifetimeWithdrawals).StringFixed(0)))
	}

	if base.Depleted() {
		for _, alt := range compSet.AlternativeResults {
			if !alt.Depleted() {
				recommendations = append(recommendations,
					fmt.Sprintf("Avoids depletion: %s lasts through life expectancy (base depletes at %d)",
						alt.ScenarioName, base.DepletionAge))
			}
		}
	} else {
		for _, alt := range compSet.AlternativeResults {
			if alt.Depleted() {
				recommendations = append(recommendations,
					fmt.Sprintf("Risk: %s depletes savings at age %d", alt.ScenarioName, alt.DepletionAge))
			}
		}
	}

	return recommendations
}
