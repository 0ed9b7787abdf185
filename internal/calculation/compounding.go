package calculation

import (
	"math"

	"github.com/shopspring/decimal"
)

// ratePrecision bounds the digits kept on compounded growth factors
const ratePrecision = 18

// growingAnnuityEpsilon is the |rate - growth| below which the growing annuity
// formula switches to its limiting case
const growingAnnuityEpsilon = 1e-9

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// compoundFactor returns (1+rate)^periods for periods >= 0 using exponentiation by squaring
func compoundFactor(rate decimal.Decimal, periods int) decimal.Decimal {
	factor := one.Add(rate)
	result := one
	for periods > 0 {
		if periods&1 == 1 {
			result = result.Mul(factor).Round(ratePrecision)
		}
		factor = factor.Mul(factor).Round(ratePrecision)
		periods >>= 1
	}
	return result
}

// fractionalCompoundFactor returns (1+rate)^periods for a non-integer number of periods
func fractionalCompoundFactor(rate decimal.Decimal, periods float64) decimal.Decimal {
	return decimal.NewFromFloat(math.Pow(1+rate.InexactFloat64(), periods))
}

// FutureValue compounds presentValue for whole years at rate.
// years <= 0 or a zero present value return presentValue unchanged.
func FutureValue(presentValue, rate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 || presentValue.IsZero() {
		return presentValue
	}
	return presentValue.Mul(compoundFactor(rate, years))
}

// FutureValueOrdinaryAnnuity accumulates end-of-period payments for years at rate
func FutureValueOrdinaryAnnuity(payment, rate decimal.Decimal, years int) decimal.Decimal {
	if payment.IsZero() || years <= 0 {
		return decimal.Zero
	}
	if rate.IsZero() {
		return payment.Mul(decimal.NewFromInt(int64(years)))
	}
	return payment.Mul(compoundFactor(rate, years).Sub(one)).Div(rate)
}

// FutureValueGrowingAnnuity accumulates end-of-period payments that grow at growthRate
func FutureValueGrowingAnnuity(payment, rate decimal.Decimal, years int, growthRate decimal.Decimal) decimal.Decimal {
	if payment.IsZero() || years <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(years))
	spread := rate.Sub(growthRate)
	if math.Abs(spread.InexactFloat64()) < growingAnnuityEpsilon {
		// limit as growth -> rate
		return payment.Mul(n).Mul(compoundFactor(rate, years-1))
	}
	return payment.Mul(compoundFactor(rate, years).Sub(compoundFactor(growthRate, years))).Div(spread)
}

// PresentValue discounts a future amount back years at rate
func PresentValue(futureValue, rate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 || futureValue.IsZero() {
		return futureValue
	}
	factor := compoundFactor(rate, years)
	if factor.IsZero() {
		return decimal.Zero
	}
	return futureValue.Div(factor)
}

// RealReturn converts a nominal return to an inflation-adjusted one: (1+n)/(1+i) - 1
func RealReturn(nominal, inflation decimal.Decimal) decimal.Decimal {
	denom := one.Add(inflation)
	if denom.IsZero() {
		return nominal
	}
	return one.Add(nominal).Div(denom).Sub(one)
}
