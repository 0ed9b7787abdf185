package sequencing

import (
	"github.com/shopspring/decimal"
)

// Source names recognized by every strategy
const (
	SourceTaxable     = "taxable"
	SourceTraditional = "traditional"
	SourceRoth        = "roth"
)

// TaxTreatment represents tax characteristics of a withdrawal source
// Ordinary: fully taxable as ordinary income (pre-tax accounts)
// TaxFree: no current year tax impact (Roth)
// CapitalGains: brokerage money, only gains are taxed
type TaxTreatment int

const (
	TaxFree TaxTreatment = iota
	OrdinaryIncome
	CapitalGains
)

func (tt TaxTreatment) String() string {
	switch tt {
	case TaxFree:
		return "tax_free"
	case OrdinaryIncome:
		return "ordinary"
	case CapitalGains:
		return "capital_gains"
	default:
		return "unknown"
	}
}

// WithdrawalSource represents an available pool for withdrawals
// Name: taxable | traditional | roth
// RMDRequired: if true, PendingRMD must be drawn before any other logic
type WithdrawalSource struct {
	Name         string
	Balance      decimal.Decimal
	TaxTreatment TaxTreatment
	RMDRequired  bool
	PendingRMD   decimal.Decimal
}

// WithdrawalAllocation captures the amount drawn from one source
type WithdrawalAllocation struct {
	Source       string
	Gross        decimal.Decimal
	RMDPortion   decimal.Decimal
	TaxTreatment TaxTreatment
}

// WithdrawalPlan aggregates the full plan for meeting a target amount
// ExcessRMD: required distributions beyond the need (the caller reinvests them)
// RemainingNeed: unmet portion if balances are insufficient
type WithdrawalPlan struct {
	Requested       decimal.Decimal
	Allocations     []WithdrawalAllocation
	TotalSourced    decimal.Decimal
	RemainingNeed   decimal.Decimal
	ExcessRMD       decimal.Decimal
	TraditionalUsed decimal.Decimal
	RothUsed        decimal.Decimal
	TaxableUsed     decimal.Decimal
	RMDSatisfied    bool
	StrategyUsed    string
	Notes           []string
}

// Used returns the amount drawn from the named source
func (wp WithdrawalPlan) Used(source string) decimal.Decimal {
	switch source {
	case SourceTraditional:
		return wp.TraditionalUsed
	case SourceRoth:
		return wp.RothUsed
	case SourceTaxable:
		return wp.TaxableUsed
	default:
		return decimal.Zero
	}
}

// StrategyContext provides inputs required by sequencing strategies
type StrategyContext struct {
	NeedAmount decimal.Decimal
	IsRMDYear  bool
}

// SequencingStrategy defines interface for all withdrawal sequencing algorithms
type SequencingStrategy interface {
	Name() string
	Plan(sources []WithdrawalSource, ctx StrategyContext) WithdrawalPlan
}
