package domain

import (
	"github.com/shopspring/decimal"
)

// AmortizationRow is one period of an amortization schedule
type AmortizationRow struct {
	Period           int             `json:"period"`
	Payment          decimal.Decimal `json:"payment"`
	Interest         decimal.Decimal `json:"interest"`
	Principal        decimal.Decimal `json:"principal"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// MortgageInput describes a fixed-rate loan
type MortgageInput struct {
	Principal    decimal.Decimal `yaml:"principal" json:"principal" validate:"gte=0"`
	AnnualRate   decimal.Decimal `yaml:"annual_rate" json:"annualRate" validate:"gte=0,lte=1"`
	TermYears    int             `yaml:"term_years" json:"termYears" validate:"gte=0,lte=50"`
	ExtraMonthly decimal.Decimal `yaml:"extra_monthly" json:"extraMonthly" validate:"gte=0"`
}

// AmortizationSummary aggregates a fully consumed schedule
type AmortizationSummary struct {
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	Months         int             `json:"months"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
}

// ExtraPaymentImpact compares a schedule with and without an extra monthly payment
type ExtraPaymentImpact struct {
	Baseline      AmortizationSummary `json:"baseline"`
	WithExtra     AmortizationSummary `json:"withExtra"`
	MonthsSaved   int                 `json:"monthsSaved"`
	InterestSaved decimal.Decimal     `json:"interestSaved"`
}
