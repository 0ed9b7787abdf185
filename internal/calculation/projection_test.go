package calculation

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
	infos []string
}

func (l *recordingLogger) Debugf(string, ...any) {}
func (l *recordingLogger) Infof(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Errorf(string, ...any) {}

func sampleAssumptions() domain.RetirementAssumptions {
	return domain.RetirementAssumptions{
		CurrentAge:     60,
		RetirementAge:  65,
		LifeExpectancy: 90,
		Balances: domain.AccountBalances{
			PreTax:  d(500000),
			TaxFree: d(100000),
			Taxable: d(100000),
		},
		Contributions:      domain.AccountBalances{PreTax: d(20000)},
		EmployerMatch:      d(5000),
		ExpectedReturn:     d(0.06),
		InflationRate:      d(0.03),
		SafeWithdrawalRate: d(0.04),
		MonteCarloTrials:   500,
		ReturnStandardDev:  d(0.12),
	}
}

func TestProjectAccumulation(t *testing.T) {
	bundle := NewProjector().Project(sampleAssumptions(), "flat", decimal.Zero)

	require.Len(t, bundle.Years, 30)
	for i, yr := range bundle.Years {
		assert.Equal(t, 60+i, yr.Age)
		assert.Equal(t, i, yr.YearOffset)
		assert.Equal(t, yr.Age >= 65, yr.IsRetired, "age %d", yr.Age)
	}

	assert.True(t, bundle.Years[4].Buckets.PreTax.Equal(d(625000)), "pre-tax at 64: %s", bundle.Years[4].Buckets.PreTax)
	assert.True(t, bundle.BalanceAtRetirement.Equal(d(825000)), "balance at retirement %s", bundle.BalanceAtRetirement)
	assert.True(t, bundle.InitialWithdrawal.Equal(d(33000)), "initial withdrawal %s", bundle.InitialWithdrawal)

	first := bundle.Years[5]
	assert.True(t, first.Withdrawal.Equal(d(33000)))
	assert.True(t, first.Buckets.Taxable.Equal(d(67000)), "standard order draws taxable first")
}

func TestProjectScenarios(t *testing.T) {
	a := sampleAssumptions()
	res := NewProjector().ProjectScenarios(a)
	require.NotNil(t, res)

	assert.True(t, res.Optimistic.ReturnRate.Equal(d(0.08)))
	assert.True(t, res.Expected.ReturnRate.Equal(d(0.06)))
	assert.True(t, res.Pessimistic.ReturnRate.Equal(d(0.04)))

	assert.True(t, res.Optimistic.BalanceAtRetirement.GreaterThan(res.Expected.BalanceAtRetirement))
	assert.True(t, res.Expected.BalanceAtRetirement.GreaterThan(res.Pessimistic.BalanceAtRetirement))
	assert.True(t, res.Optimistic.FinalBalance.GreaterThanOrEqual(res.Expected.FinalBalance))
	assert.True(t, res.Expected.FinalBalance.GreaterThanOrEqual(res.Pessimistic.FinalBalance))

	for _, b := range res.Bundles() {
		want := YearsLast(b.BalanceAtRetirement, b.InitialWithdrawal, b.ReturnRate, a.InflationRate)
		assert.Equal(t, want, b.SustainabilityYears, b.Name)
		assert.True(t, b.FinalBalance.Equal(b.Years[len(b.Years)-1].EndingBalance), b.Name)
	}
}

func TestProjectRequiredDistributions(t *testing.T) {
	bundle := NewProjector().Project(sampleAssumptions(), "expected", d(0.06))

	byAge := map[int]domain.YearRecord{}
	for _, yr := range bundle.Years {
		byAge[yr.Age] = yr
	}
	assert.True(t, byAge[72].RMD.IsZero())
	assert.True(t, byAge[73].RMD.GreaterThan(decimal.Zero))
	assert.True(t, byAge[85].RMD.GreaterThan(decimal.Zero))
}

func TestProjectExcessRMDReinvested(t *testing.T) {
	a := sampleAssumptions()
	a.CurrentAge = 75
	a.RetirementAge = 75
	a.LifeExpectancy = 76
	a.Balances = domain.AccountBalances{PreTax: d(1000000)}
	a.Contributions = domain.AccountBalances{}
	a.EmployerMatch = decimal.Zero
	a.SafeWithdrawalRate = d(0.01)

	bundle := NewProjector().Project(a, "flat", decimal.Zero)
	require.Len(t, bundle.Years, 1)
	yr := bundle.Years[0]

	rmd := RequiredDistribution(75, d(1000000), 73).Round(2)
	assert.True(t, yr.RMD.Equal(rmd))
	assert.True(t, yr.Withdrawal.Equal(d(10000)))
	assert.True(t, yr.Buckets.Taxable.Equal(rmd.Sub(d(10000))), "excess RMD lands in taxable: %s", yr.Buckets.Taxable)
	assert.True(t, yr.EndingBalance.Equal(d(990000)))
}

func TestProjectDepletion(t *testing.T) {
	a := sampleAssumptions()
	a.SafeWithdrawalRate = d(0.5)

	logger := &recordingLogger{}
	p := NewProjector()
	p.SetLogger(logger)
	bundle := p.Project(a, "reckless", decimal.Zero)

	depleted := false
	for _, yr := range bundle.Years {
		assert.False(t, yr.Buckets.PreTax.IsNegative())
		assert.False(t, yr.Buckets.TaxFree.IsNegative())
		assert.False(t, yr.Buckets.Taxable.IsNegative())
		if yr.IsDepleted() {
			depleted = true
		}
	}
	assert.True(t, depleted)
	assert.True(t, bundle.FinalBalance.IsZero())
	assert.NotEmpty(t, logger.warns)
}

func TestProjectCustomSequence(t *testing.T) {
	a := sampleAssumptions()
	a.Sequencing = &domain.WithdrawalSequencingConfig{Strategy: "custom", CustomSequence: []string{"roth", "taxable", "traditional"}}
	bundle := NewProjector().Project(a, "flat", decimal.Zero)

	first := bundle.Years[5]
	assert.True(t, first.Buckets.TaxFree.Equal(d(67000)), "roth drawn first: %s", first.Buckets.TaxFree)
	assert.True(t, first.Buckets.Taxable.Equal(d(100000)))
}

func TestProjectPartialCustomSequence(t *testing.T) {
	a := sampleAssumptions()
	standard := NewProjector().Project(a, "expected", a.ExpectedReturn)

	a.Sequencing = &domain.WithdrawalSequencingConfig{Strategy: "custom", CustomSequence: []string{"roth"}}
	custom := NewProjector().Project(a, "expected", a.ExpectedReturn)

	require.Len(t, custom.Years, len(standard.Years))
	for _, yr := range custom.Years {
		if yr.IsDepleted() {
			assert.True(t, yr.EndingBalance.IsZero(), "age %d shortfall %s with balance %s", yr.Age, yr.Shortfall, yr.EndingBalance)
		}
	}
	assert.InDelta(t, standard.FinalBalance.InexactFloat64(), custom.FinalBalance.InexactFloat64(), 1.0)
	assert.True(t, custom.Years[5].Buckets.TaxFree.LessThan(standard.Years[5].Buckets.TaxFree), "roth drawn first")
}

func TestProjectNeverRetires(t *testing.T) {
	a := sampleAssumptions()
	a.RetirementAge = 70
	a.LifeExpectancy = 70
	bundle := NewProjector().Project(a, "flat", decimal.Zero)

	require.Len(t, bundle.Years, 10)
	assert.True(t, bundle.BalanceAtRetirement.Equal(bundle.FinalBalance))
	for _, yr := range bundle.Years {
		assert.False(t, yr.IsRetired)
	}
}
