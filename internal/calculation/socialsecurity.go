package calculation

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	earlyReductionFirst36 = decimal.NewFromInt(5).Div(decimal.NewFromInt(900))  // 5/9 of 1% per month
	earlyReductionBeyond  = decimal.NewFromInt(5).Div(decimal.NewFromInt(1200)) // 5/12 of 1% per month
	delayedCreditPerMonth = decimal.NewFromInt(2).Div(decimal.NewFromInt(300))  // 2/3 of 1% per month (8%/yr)
)

// SocialSecurityBenefit adjusts the monthly primary insurance amount at full retirement
// age for claiming at claimAgeMonths. Claims are clamped to the 62-70 window.
func SocialSecurityBenefit(piaAtFRA decimal.Decimal, birthYear, claimAgeMonths int) decimal.Decimal {
	claim := claimAgeMonths
	if claim < domain.SSEarliestClaimAge*12 {
		claim = domain.SSEarliestClaimAge * 12
	}
	if claim > domain.SSLatestClaimAge*12 {
		claim = domain.SSLatestClaimAge * 12
	}

	fra := domain.FullRetirementAgeMonths(birthYear)
	switch {
	case claim < fra:
		early := fra - claim
		first := early
		if first > 36 {
			first = 36
		}
		reduction := earlyReductionFirst36.Mul(decimal.NewFromInt(int64(first)))
		if early > 36 {
			reduction = reduction.Add(earlyReductionBeyond.Mul(decimal.NewFromInt(int64(early - 36))))
		}
		return piaAtFRA.Mul(one.Sub(reduction))
	case claim > fra:
		credit := delayedCreditPerMonth.Mul(decimal.NewFromInt(int64(claim - fra)))
		return piaAtFRA.Mul(one.Add(credit))
	default:
		return piaAtFRA
	}
}
