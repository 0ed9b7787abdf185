package calculation

import (
	"context"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/sequencing"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultMonteCarloTrials is used when the assumptions leave the trial count unset
const DefaultMonteCarloTrials = 1000

// returnPrecision bounds the digits kept on sampled returns
const returnPrecision = 8

// MonteCarloEngine runs independent stochastic trials of the deterministic projection
type MonteCarloEngine struct {
	mu           sync.Mutex
	master       *rand.Rand
	workers      int
	distribution ReturnDistribution
	logger       Logger
}

// MonteCarloOption configures a MonteCarloEngine
type MonteCarloOption func(*MonteCarloEngine)

// WithWorkers bounds the number of concurrently running trials
func WithWorkers(n int) MonteCarloOption {
	return func(e *MonteCarloEngine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithDistribution overrides the default normal return distribution
func WithDistribution(d ReturnDistribution) MonteCarloOption {
	return func(e *MonteCarloEngine) { e.distribution = d }
}

// WithLogger sets the engine logger
func WithLogger(l Logger) MonteCarloOption {
	return func(e *MonteCarloEngine) { e.logger = loggerOrNop(l) }
}

// NewMonteCarloEngine creates an engine whose per-trial seeds come from source.
// A nil source seeds from the clock.
func NewMonteCarloEngine(source rand.Source, opts ...MonteCarloOption) *MonteCarloEngine {
	if source == nil {
		source = rand.NewSource(time.Now().UnixNano())
	}
	e := &MonteCarloEngine{
		master:  rand.New(source),
		workers: runtime.GOMAXPROCS(0),
		logger:  NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the trials and aggregates their ending balances.
// If ctx is cancelled before every trial finishes, Run returns ctx.Err() and no result.
func (e *MonteCarloEngine) Run(ctx context.Context, a domain.RetirementAssumptions) (*domain.MonteCarloResult, error) {
	trials := a.MonteCarloTrials
	if trials <= 0 {
		trials = DefaultMonteCarloTrials
	}
	dist := e.distribution
	if dist == nil {
		dist = NormalReturns{Mean: a.ExpectedReturn.InexactFloat64(), StdDev: a.ReturnStandardDev.InexactFloat64()}
	}
	strategy := sequencing.CreateStrategy(a.Sequencing)

	// Seeds are fixed up front so outcomes do not depend on scheduling
	seeds := e.drawSeeds(trials)

	e.logger.Infof("running %d Monte Carlo trials on %d workers", trials, e.workers)
	start := time.Now()

	outcomes := make([]domain.TrialOutcome, trials)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range trials {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = runTrial(a, strategy, dist, rand.New(rand.NewSource(seeds[i])))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.logger.Warnf("Monte Carlo run abandoned: %v", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		e.logger.Warnf("Monte Carlo run abandoned: %v", err)
		return nil, err
	}

	result := summarizeTrials(outcomes)
	e.logger.Debugf("Monte Carlo finished in %s: success rate %s%%", time.Since(start), result.SuccessRate.StringFixed(1))
	return result, nil
}

func (e *MonteCarloEngine) drawSeeds(n int) []int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = e.master.Int63()
	}
	return seeds
}

// runTrial simulates one path with a fresh return drawn for every year
func runTrial(a domain.RetirementAssumptions, strategy sequencing.SequencingStrategy, dist ReturnDistribution, rng *rand.Rand) domain.TrialOutcome {
	path := simulatePath(a, strategy, func(int) decimal.Decimal {
		return decimal.NewFromFloat(dist.Draw(rng)).Round(returnPrecision)
	}, false)
	return domain.TrialOutcome{
		EndingBalance: path.finalBalance,
		Depleted:      path.depleted,
		DepletionAge:  path.depletionAge,
	}
}

func summarizeTrials(outcomes []domain.TrialOutcome) *domain.MonteCarloResult {
	result := &domain.MonteCarloResult{Trials: len(outcomes)}
	if len(outcomes) == 0 {
		return result
	}

	balances := make([]decimal.Decimal, len(outcomes))
	total := decimal.Zero
	for i, o := range outcomes {
		balances[i] = o.EndingBalance
		total = total.Add(o.EndingBalance)
		if o.Depleted {
			result.DepletedTrials++
		}
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].LessThan(balances[j]) })

	n := decimal.NewFromInt(int64(len(outcomes)))
	result.Percentiles = domain.PercentileRanges{
		P10: getPercentile(balances, 0.10),
		P25: getPercentile(balances, 0.25),
		P50: getPercentile(balances, 0.50),
		P75: getPercentile(balances, 0.75),
		P90: getPercentile(balances, 0.90),
	}
	result.SuccessRate = decimal.NewFromInt(int64(len(outcomes) - result.DepletedTrials)).Div(n).Mul(hundred)
	result.MeanEndingBalance = total.Div(n).Round(centPlaces)
	return result
}

// getPercentile interpolates linearly between the closest ranks of sorted values,
// rounded to cents
func getPercentile(values []decimal.Decimal, percentile float64) decimal.Decimal {
	index := percentile * float64(len(values)-1)
	if index == float64(int(index)) {
		return values[int(index)]
	}

	lower := values[int(index)]
	upper := values[int(index)+1]
	fraction := decimal.NewFromFloat(index - float64(int(index)))

	return lower.Add(upper.Sub(lower).Mul(fraction)).Round(centPlaces)
}
