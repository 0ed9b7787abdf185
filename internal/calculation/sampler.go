package calculation

import (
	"math/rand"
)

// ReturnDistribution draws one annual return from the supplied generator.
// Implementations must not keep state between draws so trials stay independent.
type ReturnDistribution interface {
	Draw(rng *rand.Rand) float64
}

// NormalReturns draws returns from a normal distribution, floored at a total loss
type NormalReturns struct {
	Mean   float64
	StdDev float64
}

func (n NormalReturns) Draw(rng *rand.Rand) float64 {
	r := n.Mean + rng.NormFloat64()*n.StdDev
	if r < -1 {
		return -1
	}
	return r
}

// HistoricalReturns replays returns sampled uniformly with replacement from a fixed series
type HistoricalReturns []float64

func (h HistoricalReturns) Draw(rng *rand.Rand) float64 {
	if len(h) == 0 {
		return 0
	}
	return h[rng.Intn(len(h))]
}
