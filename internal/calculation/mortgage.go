package calculation

import (
	"iter"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// centPlaces is the rounding applied to per-period money amounts
const centPlaces = 2

// MonthlyPayment returns the level monthly payment that retires principal over termYears
func MonthlyPayment(principal, annualRate decimal.Decimal, termYears int) decimal.Decimal {
	if principal.IsZero() || termYears <= 0 {
		return decimal.Zero
	}
	n := termYears * 12
	if annualRate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(n)))
	}
	r := annualRate.Div(twelve)
	growth := compoundFactor(r, n)
	// P*r / (1 - (1+r)^-n) == P*r*g / (g - 1)
	return principal.Mul(r).Mul(growth).Div(growth.Sub(one))
}

// AmortizationSchedule lazily yields one row per month until the balance is retired.
// extraMonthly is added to every scheduled payment; the final row is truncated so the
// balance ends at exactly zero.
func AmortizationSchedule(principal, annualRate decimal.Decimal, termYears int, extraMonthly decimal.Decimal) iter.Seq[domain.AmortizationRow] {
	return func(yield func(domain.AmortizationRow) bool) {
		payment := MonthlyPayment(principal, annualRate, termYears).RoundCeil(centPlaces)
		if payment.IsZero() {
			return
		}
		if extraMonthly.IsNegative() {
			extraMonthly = decimal.Zero
		}
		monthlyRate := annualRate.Div(twelve)
		balance := principal
		// the last scheduled period absorbs any cent-rounding drift
		maxPeriods := termYears * 12

		for period := 1; balance.GreaterThan(decimal.Zero) && period <= maxPeriods; period++ {
			interest := balance.Mul(monthlyRate).Round(centPlaces)
			principalPortion := payment.Add(extraMonthly).Sub(interest)
			if principalPortion.GreaterThan(balance) || period == maxPeriods {
				principalPortion = balance
			}
			balance = balance.Sub(principalPortion)

			row := domain.AmortizationRow{
				Period:           period,
				Payment:          principalPortion.Add(interest),
				Interest:         interest,
				Principal:        principalPortion,
				RemainingBalance: balance,
			}
			if !yield(row) {
				return
			}
		}
	}
}

// SummarizeAmortization consumes a full schedule into totals
func SummarizeAmortization(principal, annualRate decimal.Decimal, termYears int, extraMonthly decimal.Decimal) domain.AmortizationSummary {
	summary := domain.AmortizationSummary{
		MonthlyPayment: MonthlyPayment(principal, annualRate, termYears).RoundCeil(centPlaces),
	}
	for row := range AmortizationSchedule(principal, annualRate, termYears, extraMonthly) {
		summary.Months = row.Period
		summary.TotalInterest = summary.TotalInterest.Add(row.Interest)
		summary.TotalPaid = summary.TotalPaid.Add(row.Payment)
	}
	return summary
}

// CompareExtraPayment reports how much time and interest an extra monthly payment saves
func CompareExtraPayment(input domain.MortgageInput) domain.ExtraPaymentImpact {
	baseline := SummarizeAmortization(input.Principal, input.AnnualRate, input.TermYears, decimal.Zero)
	withExtra := SummarizeAmortization(input.Principal, input.AnnualRate, input.TermYears, input.ExtraMonthly)
	return domain.ExtraPaymentImpact{
		Baseline:      baseline,
		WithExtra:     withExtra,
		MonthsSaved:   baseline.Months - withExtra.Months,
		InterestSaved: baseline.TotalInterest.Sub(withExtra.TotalInterest),
	}
}
