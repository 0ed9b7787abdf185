package calculation

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// maxSustainabilityYears caps the depletion search
const maxSustainabilityYears = 100

// YearsLast estimates how long balance lasts when annualWithdrawal (growing with
// inflationRate) is taken at the start of each year and the remainder grows at
// growthRate. The final partial year is linearly interpolated.
//
// A zero balance lasts 0 years; a zero withdrawal, or a balance that survives the
// 100-year cap, lasts forever (domain.Unlimited).
func YearsLast(balance, annualWithdrawal, growthRate, inflationRate decimal.Decimal) domain.Years {
	if balance.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	if annualWithdrawal.LessThanOrEqual(decimal.Zero) {
		return domain.Unlimited
	}

	growth := one.Add(growthRate)
	inflation := one.Add(inflationRate)
	remaining := balance
	withdrawal := annualWithdrawal

	for year := 0; year < maxSustainabilityYears; year++ {
		if withdrawal.GreaterThanOrEqual(remaining) {
			partial := remaining.Div(withdrawal).InexactFloat64()
			return domain.Years(float64(year) + partial)
		}
		remaining = remaining.Sub(withdrawal).Mul(growth).Round(ratePrecision)
		withdrawal = withdrawal.Mul(inflation).Round(ratePrecision)
		if remaining.LessThanOrEqual(decimal.Zero) {
			return domain.Years(year + 1)
		}
	}
	return domain.Unlimited
}
