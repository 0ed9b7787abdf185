package domain

import (
	"github.com/shopspring/decimal"
)

// Plan is the top-level document of a plan file: the retirement assumptions plus the
// optional side calculations that share them.
type Plan struct {
	Name         string                `yaml:"name" json:"name"`
	Assumptions  RetirementAssumptions `yaml:"assumptions" json:"assumptions"`
	Debts        []Debt                `yaml:"debts,omitempty" json:"debts,omitempty" validate:"dive"`
	DebtBudget   decimal.Decimal       `yaml:"debt_budget,omitempty" json:"debtBudget,omitempty" validate:"gte=0"`
	DebtStrategy PayoffStrategy        `yaml:"debt_strategy,omitempty" json:"debtStrategy,omitempty" validate:"omitempty,oneof=avalanche snowball"`
	Mortgage     *MortgageInput        `yaml:"mortgage,omitempty" json:"mortgage,omitempty"`
	SEPP         *SEPPInput            `yaml:"sepp,omitempty" json:"sepp,omitempty"`
	BirthYear    int                   `yaml:"birth_year,omitempty" json:"birthYear,omitempty" validate:"omitempty,gte=1900,lte=2100"`
}

// HasDebts reports whether the plan lists any debts
func (p *Plan) HasDebts() bool {
	return len(p.Debts) > 0
}

// Strategy returns the configured payoff strategy, defaulting to avalanche
func (p *Plan) Strategy() PayoffStrategy {
	if p.DebtStrategy == "" {
		return Avalanche
	}
	return p.DebtStrategy
}
