package calculation

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/sequencing"
	"github.com/shopspring/decimal"
)

// scenarioSpread is the rate offset applied for the optimistic and pessimistic scenarios
var scenarioSpread = decimal.NewFromFloat(0.02)

// Projector produces deterministic year-by-year projections
type Projector struct {
	logger Logger
}

// NewProjector creates a projector that logs nothing until SetLogger is called
func NewProjector() *Projector {
	return &Projector{logger: NopLogger{}}
}

// SetLogger sets the logger for the projector
func (p *Projector) SetLogger(l Logger) {
	p.logger = loggerOrNop(l)
}

// ProjectScenarios projects the assumptions at the expected return and at two
// percentage points above and below it.
func (p *Projector) ProjectScenarios(a domain.RetirementAssumptions) *domain.ScenarioResult {
	p.logger.Debugf("projecting scenarios: age %d -> %d, horizon %d years", a.CurrentAge, a.RetirementAge, a.ProjectionYears())
	return &domain.ScenarioResult{
		Optimistic:  p.Project(a, "optimistic", a.ExpectedReturn.Add(scenarioSpread)),
		Expected:    p.Project(a, "expected", a.ExpectedReturn),
		Pessimistic: p.Project(a, "pessimistic", a.ExpectedReturn.Sub(scenarioSpread)),
	}
}

// Project runs a single projection at a constant annual return
func (p *Projector) Project(a domain.RetirementAssumptions, name string, rate decimal.Decimal) domain.ScenarioBundle {
	strategy := sequencing.CreateStrategy(a.Sequencing)
	path := simulatePath(a, strategy, func(int) decimal.Decimal { return rate }, true)

	bundle := domain.ScenarioBundle{
		Name:                name,
		ReturnRate:          rate,
		Years:               path.years,
		BalanceAtRetirement: path.balanceAtRetirement,
		FinalBalance:        path.finalBalance,
		InitialWithdrawal:   path.initialWithdrawal,
		SustainabilityYears: YearsLast(path.balanceAtRetirement, path.initialWithdrawal, rate, a.InflationRate),
	}
	if path.depleted {
		p.logger.Warnf("%s scenario depleted at age %d", name, path.depletionAge)
	}
	return bundle
}

type pathResult struct {
	years               []domain.YearRecord
	balanceAtRetirement decimal.Decimal
	initialWithdrawal   decimal.Decimal
	finalBalance        decimal.Decimal
	depleted            bool
	depletionAge        int
}

// simulatePath steps one path from the current age to life expectancy.
// rateFor supplies the return for each 0-based year index. Year records are kept only
// when record is set.
func simulatePath(a domain.RetirementAssumptions, strategy sequencing.SequencingStrategy, rateFor func(year int) decimal.Decimal, record bool) pathResult {
	horizon := a.ProjectionYears()
	buckets := a.Balances
	rmdStartAge := a.EffectiveRMDStartAge()
	inflation := one.Add(a.InflationRate)

	var res pathResult
	if record {
		res.years = make([]domain.YearRecord, 0, horizon)
	}

	retirementReached := false
	withdrawal := decimal.Zero
	for i := 0; i < horizon; i++ {
		age := a.CurrentAge + i
		rate := rateFor(i)
		retired := age >= a.RetirementAge

		if retired && !retirementReached {
			retirementReached = true
			res.balanceAtRetirement = buckets.Total()
			withdrawal = res.balanceAtRetirement.Mul(a.SafeWithdrawalRate).Round(centPlaces)
			res.initialWithdrawal = withdrawal
		}

		rec := domain.YearRecord{
			Age:        age,
			YearOffset: i,
			ReturnRate: rate,
			IsRetired:  retired,
		}

		if retired {
			rmd := RequiredDistribution(age, buckets.PreTax, rmdStartAge).Round(centPlaces)
			sources := sequencing.CreateWithdrawalSources(buckets, rmd.GreaterThan(decimal.Zero), rmd)
			plan := strategy.Plan(sources, sequencing.StrategyContext{
				NeedAmount: withdrawal,
				IsRMDYear:  rmd.GreaterThan(decimal.Zero),
			})

			buckets.PreTax = buckets.PreTax.Sub(plan.TraditionalUsed)
			buckets.TaxFree = buckets.TaxFree.Sub(plan.RothUsed)
			buckets.Taxable = buckets.Taxable.Sub(plan.TaxableUsed).Add(plan.ExcessRMD)

			rec.Withdrawal = plan.TotalSourced.Sub(plan.ExcessRMD)
			rec.RMD = rmd
			rec.Shortfall = plan.RemainingNeed
			if plan.RemainingNeed.GreaterThan(decimal.Zero) && !res.depleted {
				res.depleted = true
				res.depletionAge = age
			}

			buckets = growBuckets(buckets, rate)
			withdrawal = withdrawal.Mul(inflation).Round(centPlaces)
		} else {
			buckets = growBuckets(buckets, rate)
			buckets.PreTax = buckets.PreTax.Add(a.Contributions.PreTax).Add(a.EmployerMatch)
			buckets.TaxFree = buckets.TaxFree.Add(a.Contributions.TaxFree)
			buckets.Taxable = buckets.Taxable.Add(a.Contributions.Taxable)
		}

		rec.Buckets = buckets
		rec.EndingBalance = buckets.Total()
		if record {
			res.years = append(res.years, rec)
		}
	}

	if !retirementReached {
		res.balanceAtRetirement = buckets.Total()
		res.initialWithdrawal = res.balanceAtRetirement.Mul(a.SafeWithdrawalRate).Round(centPlaces)
	}
	res.finalBalance = buckets.Total()
	return res
}

// growBuckets applies one year of return to every bucket, flooring each at zero
func growBuckets(b domain.AccountBalances, rate decimal.Decimal) domain.AccountBalances {
	factor := one.Add(rate)
	grow := func(v decimal.Decimal) decimal.Decimal {
		v = v.Mul(factor).Round(centPlaces)
		if v.LessThan(decimal.Zero) {
			return decimal.Zero
		}
		return v
	}
	return domain.AccountBalances{
		PreTax:  grow(b.PreTax),
		TaxFree: grow(b.TaxFree),
		Taxable: grow(b.Taxable),
	}
}
