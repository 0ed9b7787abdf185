package domain

import (
	"github.com/shopspring/decimal"
)

// PercentileRanges holds the reported ending-balance percentiles
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// Ordered returns the percentiles from lowest to highest
func (pr PercentileRanges) Ordered() []decimal.Decimal {
	return []decimal.Decimal{pr.P10, pr.P25, pr.P50, pr.P75, pr.P90}
}

// MonteCarloResult aggregates all trial outcomes of a Monte Carlo run
type MonteCarloResult struct {
	Trials            int              `json:"trials"`
	Percentiles       PercentileRanges `json:"percentiles"`
	SuccessRate       decimal.Decimal  `json:"successRate"` // percent, 0-100
	DepletedTrials    int              `json:"depletedTrials"`
	MeanEndingBalance decimal.Decimal  `json:"meanEndingBalance"`
}

// TrialOutcome is the result of one Monte Carlo trial
type TrialOutcome struct {
	EndingBalance decimal.Decimal `json:"endingBalance"`
	Depleted      bool            `json:"depleted"`
	DepletionAge  int             `json:"depletionAge,omitempty"`
}
