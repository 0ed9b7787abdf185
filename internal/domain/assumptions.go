package domain

import (
	"github.com/shopspring/decimal"
)

// AccountBalances holds a value for each of the three account buckets.
type AccountBalances struct {
	PreTax  decimal.Decimal `yaml:"pre_tax" json:"preTax" validate:"gte=0"`
	TaxFree decimal.Decimal `yaml:"tax_free" json:"taxFree" validate:"gte=0"`
	Taxable decimal.Decimal `yaml:"taxable" json:"taxable" validate:"gte=0"`
}

// Total returns the sum of all buckets
func (ab AccountBalances) Total() decimal.Decimal {
	return ab.PreTax.Add(ab.TaxFree).Add(ab.Taxable)
}

// WithdrawalSequencingConfig selects the order in which buckets are drawn in retirement
type WithdrawalSequencingConfig struct {
	Strategy       string   `yaml:"strategy" json:"strategy" validate:"omitempty,oneof=standard tax_efficient custom"`
	CustomSequence []string `yaml:"custom_sequence,omitempty" json:"customSequence,omitempty" validate:"omitempty,dive,oneof=taxable traditional roth"`
}

// RetirementAssumptions is the validated input record for projections and Monte Carlo runs.
// The engine trusts the caller: RetirementAge >= CurrentAge and LifeExpectancy >= RetirementAge.
type RetirementAssumptions struct {
	CurrentAge     int `yaml:"current_age" json:"currentAge" validate:"gte=0,lte=120"`
	RetirementAge  int `yaml:"retirement_age" json:"retirementAge" validate:"gtefield=CurrentAge,lte=120"`
	LifeExpectancy int `yaml:"life_expectancy" json:"lifeExpectancy" validate:"gtefield=RetirementAge,lte=120"`

	Balances      AccountBalances `yaml:"balances" json:"balances"`
	Contributions AccountBalances `yaml:"contributions" json:"contributions"`
	EmployerMatch decimal.Decimal `yaml:"employer_match" json:"employerMatch" validate:"gte=0"`

	ExpectedReturn     decimal.Decimal `yaml:"expected_return" json:"expectedReturn" validate:"gte=-1,lte=1"`
	InflationRate      decimal.Decimal `yaml:"inflation_rate" json:"inflationRate" validate:"gte=-1,lte=1"`
	SafeWithdrawalRate decimal.Decimal `yaml:"safe_withdrawal_rate" json:"safeWithdrawalRate" validate:"gte=0,lte=1"`
	MonteCarloTrials   int             `yaml:"monte_carlo_trials" json:"monteCarloTrials" validate:"gte=0,lte=100000"`
	ReturnStandardDev  decimal.Decimal `yaml:"return_std_dev" json:"returnStdDev" validate:"gte=0,lte=1"`

	// RMDStartAge overrides the regulatory default when non-zero
	RMDStartAge int                         `yaml:"rmd_start_age,omitempty" json:"rmdStartAge,omitempty" validate:"omitempty,gte=70,lte=80"`
	Sequencing  *WithdrawalSequencingConfig `yaml:"withdrawal_sequencing,omitempty" json:"withdrawalSequencing,omitempty"`
}

// EffectiveRMDStartAge returns the configured RMD start age or the regulatory default
func (ra RetirementAssumptions) EffectiveRMDStartAge() int {
	if ra.RMDStartAge > 0 {
		return ra.RMDStartAge
	}
	return DefaultRMDStartAge
}

// YearsToRetirement returns the number of accumulation years
func (ra RetirementAssumptions) YearsToRetirement() int {
	if ra.RetirementAge < ra.CurrentAge {
		return 0
	}
	return ra.RetirementAge - ra.CurrentAge
}

// ProjectionYears returns the number of modeled years
func (ra RetirementAssumptions) ProjectionYears() int {
	if ra.LifeExpectancy < ra.CurrentAge {
		return 0
	}
	return ra.LifeExpectancy - ra.CurrentAge
}
