package domain

import (
	"github.com/shopspring/decimal"
)

// PayoffStrategy selects the order in which extra payments are directed
type PayoffStrategy string

const (
	// Avalanche pays the highest interest rate first
	Avalanche PayoffStrategy = "avalanche"
	// Snowball pays the smallest balance first
	Snowball PayoffStrategy = "snowball"
)

// Debt is a single liability. Treated as immutable by the planner.
type Debt struct {
	ID             string          `yaml:"id" json:"id"`
	Name           string          `yaml:"name" json:"name" validate:"required"`
	Balance        decimal.Decimal `yaml:"balance" json:"balance" validate:"gte=0"`
	InterestRate   decimal.Decimal `yaml:"interest_rate" json:"interestRate" validate:"gte=0,lte=1"`
	MinimumPayment decimal.Decimal `yaml:"minimum_payment" json:"minimumPayment" validate:"gte=0"`
}

// DebtPayoff is the outcome for one debt
type DebtPayoff struct {
	DebtID        string          `json:"debtId"`
	Name          string          `json:"name"`
	PayoffMonth   int             `json:"payoffMonth"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
}

// DebtPayoffResult is the outcome of a payoff simulation
type DebtPayoffResult struct {
	Strategy      PayoffStrategy  `json:"strategy"`
	Debts         []DebtPayoff    `json:"debts"` // input order
	PayoffOrder   []string        `json:"payoffOrder"`
	Months        int             `json:"months"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
}

// StrategyComparison contrasts avalanche and snowball for the same debts and budget
type StrategyComparison struct {
	Avalanche     *DebtPayoffResult `json:"avalanche"`
	Snowball      *DebtPayoffResult `json:"snowball"`
	InterestSaved decimal.Decimal   `json:"interestSaved"` // snowball - avalanche
	MonthsSaved   int               `json:"monthsSaved"`
}
