package domain

import (
	"github.com/shopspring/decimal"
)

// SEPPMethod names one of the IRS-approved 72(t) calculation methods
type SEPPMethod string

const (
	SEPPLifeExpectancy     SEPPMethod = "life_expectancy"
	SEPPFixedAmortization  SEPPMethod = "fixed_amortization"
	SEPPFixedAnnuitization SEPPMethod = "fixed_annuitization"
)

// SEPPWithdrawal is the annual and monthly distribution under one method
type SEPPWithdrawal struct {
	Method  SEPPMethod      `json:"method"`
	Annual  decimal.Decimal `json:"annual"`
	Monthly decimal.Decimal `json:"monthly"`
}

// SEPPResult holds all three method results for a balance, age and rate
type SEPPResult struct {
	Balance              decimal.Decimal `json:"balance"`
	Age                  int             `json:"age"`
	InterestRate         decimal.Decimal `json:"interestRate"`
	LifeExpectancyFactor decimal.Decimal `json:"lifeExpectancyFactor"`
	EndAge               float64         `json:"endAge"`
	LifeExpectancy       SEPPWithdrawal  `json:"lifeExpectancyMethod"`
	Amortization         SEPPWithdrawal  `json:"amortizationMethod"`
	Annuitization        SEPPWithdrawal  `json:"annuitizationMethod"`
}

// Methods returns the three withdrawals in a stable order
func (sr *SEPPResult) Methods() []SEPPWithdrawal {
	return []SEPPWithdrawal{sr.LifeExpectancy, sr.Amortization, sr.Annuitization}
}

// SEPPInput describes a 72(t) request in a plan file
type SEPPInput struct {
	Balance      decimal.Decimal `yaml:"balance" json:"balance" validate:"gte=0"`
	Age          int             `yaml:"age" json:"age" validate:"gte=0,lte=120"`
	InterestRate decimal.Decimal `yaml:"interest_rate" json:"interestRate" validate:"gte=0,lte=1"`
}
