package calculation

import (
	"math"

	"github.com/rgehrsitz/nestegg/internal/actuarial"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateSEPP computes the three IRS-approved 72(t) annual withdrawals for balance
// at age with the chosen reasonable interest rate.
func CalculateSEPP(balance decimal.Decimal, age int, interestRate decimal.Decimal) *domain.SEPPResult {
	factor := actuarial.SEPPFactor(age)
	factorDec := decimal.NewFromFloat(factor)

	result := &domain.SEPPResult{
		Balance:              balance,
		Age:                  age,
		InterestRate:         interestRate,
		LifeExpectancyFactor: factorDec,
		EndAge:               SEPPEndAge(age),
	}

	lifeExpectancy := decimal.Zero
	if factor > 0 {
		lifeExpectancy = balance.Div(factorDec)
	}
	result.LifeExpectancy = seppWithdrawal(domain.SEPPLifeExpectancy, lifeExpectancy)
	result.Amortization = seppWithdrawal(domain.SEPPFixedAmortization, seppAmortization(balance, interestRate, factor, lifeExpectancy))
	result.Annuitization = seppWithdrawal(domain.SEPPFixedAnnuitization, seppAnnuitization(balance, interestRate, age))
	return result
}

// SEPPEndAge is the earliest age a 72(t) schedule may be modified: max(age+5, 59.5)
func SEPPEndAge(age int) float64 {
	return math.Max(float64(age+domain.SEPPMinimumYears), domain.EarlyWithdrawalAge)
}

func seppWithdrawal(method domain.SEPPMethod, annual decimal.Decimal) domain.SEPPWithdrawal {
	return domain.SEPPWithdrawal{
		Method:  method,
		Annual:  annual,
		Monthly: annual.Div(twelve),
	}
}

// seppAmortization amortizes balance over factor years: B*r / (1 - (1+r)^-factor)
func seppAmortization(balance, rate decimal.Decimal, factor float64, fallback decimal.Decimal) decimal.Decimal {
	if rate.LessThanOrEqual(decimal.Zero) || factor <= 0 {
		return fallback
	}
	discount := one.Div(fractionalCompoundFactor(rate, factor))
	denom := one.Sub(discount)
	if denom.LessThanOrEqual(decimal.Zero) {
		return fallback
	}
	return balance.Mul(rate).Div(denom)
}

// seppAnnuitization divides balance by a life annuity-due factor. One-year survival
// probabilities are backed out of the single-life table (e_x ~ p_x * (1 + e_x+1),
// with the table's half-year adjustment removed).
func seppAnnuitization(balance, rate decimal.Decimal, age int) decimal.Decimal {
	annuity := lifeAnnuityDue(age, rate.InexactFloat64())
	if annuity <= 0 {
		return balance
	}
	return balance.Div(decimal.NewFromFloat(annuity))
}

func lifeAnnuityDue(age int, rate float64) float64 {
	table := actuarial.SingleLife
	v := 1 / (1 + rate)

	total := 0.0
	survival := 1.0
	discount := 1.0
	for x := age; x <= table.MaxAge() && survival > 0; x++ {
		total += discount * survival
		discount *= v
		survival *= survivalProbability(table, x)
	}
	return total
}

func survivalProbability(table actuarial.Table, age int) float64 {
	if age >= table.MaxAge() {
		return 0
	}
	current := table.Factor(age).InexactFloat64() - 0.5
	next := table.Factor(age+1).InexactFloat64() + 0.5
	p := current / next
	return math.Max(0, math.Min(1, p))
}
