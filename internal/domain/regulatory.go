package domain

import (
	"github.com/shopspring/decimal"
)

// Compiled-in regulatory constants (2025 tax year). These are not configurable at runtime.
const (
	// DefaultRMDStartAge is the SECURE 2.0 start age for owners born 1951-1959
	DefaultRMDStartAge = 73

	// CatchUpAge is the age at which catch-up contributions become available
	CatchUpAge = 50

	// EarlyWithdrawalAge is the age after which the 10% additional tax no longer applies
	EarlyWithdrawalAge = 59.5

	// SEPPMinimumYears is the minimum number of years a 72(t) schedule must run
	SEPPMinimumYears = 5

	// Social Security claiming window
	SSEarliestClaimAge = 62
	SSLatestClaimAge   = 70
)

// AccountType identifies a contribution limit family
type AccountType string

const (
	Account401k AccountType = "401k"
	AccountIRA  AccountType = "ira"
	AccountHSA  AccountType = "hsa"
)

// ContributionLimit is a base annual limit plus the catch-up allowed from CatchUpAge.
// CatchUpAge differs for HSAs (55).
type ContributionLimit struct {
	Base       decimal.Decimal `yaml:"base" json:"base"`
	CatchUp    decimal.Decimal `yaml:"catch_up" json:"catchUp"`
	CatchUpAge int             `yaml:"catch_up_age" json:"catchUpAge"`
}

// contributionLimits2025 lists IRS 2025 limits
var contributionLimits2025 = map[AccountType]ContributionLimit{
	Account401k: {Base: decimal.NewFromInt(23500), CatchUp: decimal.NewFromInt(7500), CatchUpAge: CatchUpAge},
	AccountIRA:  {Base: decimal.NewFromInt(7000), CatchUp: decimal.NewFromInt(1000), CatchUpAge: CatchUpAge},
	AccountHSA:  {Base: decimal.NewFromInt(4300), CatchUp: decimal.NewFromInt(1000), CatchUpAge: 55},
}

// LimitFor returns the contribution limit record for an account type
func LimitFor(account AccountType) (ContributionLimit, bool) {
	limit, ok := contributionLimits2025[account]
	return limit, ok
}

// MaxContribution returns the annual limit for an account at the given age, or zero for unknown accounts
func MaxContribution(account AccountType, age int) decimal.Decimal {
	limit, ok := contributionLimits2025[account]
	if !ok {
		return decimal.Zero
	}
	if age >= limit.CatchUpAge {
		return limit.Base.Add(limit.CatchUp)
	}
	return limit.Base
}

// RMDStartAge returns the SECURE 2.0 required beginning age for a birth year
func RMDStartAge(birthYear int) int {
	switch {
	case birthYear <= 1950:
		return 72
	case birthYear <= 1959:
		return 73
	default:
		return 75
	}
}

// FullRetirementAgeMonths returns the Social Security full retirement age in months for a birth year
func FullRetirementAgeMonths(birthYear int) int {
	switch {
	case birthYear <= 1937:
		return 65 * 12
	case birthYear <= 1942:
		return 65*12 + (birthYear-1937)*2
	case birthYear <= 1954:
		return 66 * 12
	case birthYear <= 1959:
		return 66*12 + (birthYear-1954)*2
	default:
		return 67 * 12
	}
}
