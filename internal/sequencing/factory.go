package sequencing

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// CreateStrategy creates a sequencing strategy based on the configuration
func CreateStrategy(config *domain.WithdrawalSequencingConfig) SequencingStrategy {
	if config == nil {
		return NewStandardStrategy()
	}

	switch config.Strategy {
	case "standard":
		return NewStandardStrategy()
	case "tax_efficient":
		return NewTaxEfficientStrategy()
	case "custom":
		return NewCustomStrategy(config.CustomSequence)
	default:
		// Fallback to standard if unknown strategy
		return NewStandardStrategy()
	}
}

// CreateWithdrawalSources maps the three account buckets onto withdrawal sources.
// The traditional source carries the year's RMD when one applies.
func CreateWithdrawalSources(balances domain.AccountBalances, isRMDYear bool, rmdAmount decimal.Decimal) []WithdrawalSource {
	return []WithdrawalSource{
		{
			Name:         SourceTaxable,
			Balance:      balances.Taxable,
			TaxTreatment: CapitalGains,
		},
		{
			Name:         SourceTraditional,
			Balance:      balances.PreTax,
			TaxTreatment: OrdinaryIncome,
			RMDRequired:  isRMDYear,
			PendingRMD:   rmdAmount,
		},
		{
			Name:         SourceRoth,
			Balance:      balances.TaxFree,
			TaxTreatment: TaxFree,
		},
	}
}
