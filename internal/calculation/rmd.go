package calculation

import (
	"github.com/rgehrsitz/nestegg/internal/actuarial"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// RequiredDistribution returns the owner RMD for a year: zero before rmdStartAge,
// otherwise balance divided by the Uniform Lifetime factor for age.
func RequiredDistribution(age int, balance decimal.Decimal, rmdStartAge int) decimal.Decimal {
	if age < rmdStartAge || balance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	factor := actuarial.UniformLifetime.Factor(age)
	if factor.IsZero() {
		return balance
	}
	return balance.Div(factor)
}

// InheritedDistribution returns the annual distribution for an inherited account using
// the single-life factor at the beneficiary's starting age, reduced by one for each
// elapsed year. Once the factor reaches one the whole balance is due.
func InheritedDistribution(beneficiaryStartAge, yearsElapsed int, balance decimal.Decimal) decimal.Decimal {
	if balance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	factor := actuarial.SingleLife.Factor(beneficiaryStartAge).Sub(decimal.NewFromInt(int64(yearsElapsed)))
	if factor.LessThanOrEqual(one) {
		return balance
	}
	return balance.Div(factor)
}

// RMDCalculator applies RMD rules for an owner born in a given year
type RMDCalculator struct {
	BirthYear int
}

// NewRMDCalculator creates a new RMD calculator
func NewRMDCalculator(birthYear int) *RMDCalculator {
	return &RMDCalculator{BirthYear: birthYear}
}

// StartAge returns the age when RMDs begin for this birth year
func (rc *RMDCalculator) StartAge() int {
	return domain.RMDStartAge(rc.BirthYear)
}

// CalculateRMD calculates the RMD for a given age and pre-tax balance
func (rc *RMDCalculator) CalculateRMD(preTaxBalance decimal.Decimal, age int) decimal.Decimal {
	return RequiredDistribution(age, preTaxBalance, rc.StartAge())
}
