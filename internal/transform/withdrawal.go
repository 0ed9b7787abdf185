package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/sequencing"
	"github.com/shopspring/decimal"
)

// AdjustWithdrawalRate replaces the safe withdrawal rate
type AdjustWithdrawalRate struct {
	Rate decimal.Decimal
}

func (aw *AdjustWithdrawalRate) Name() string {
	return "adjust_withdrawal_rate"
}

func (aw *AdjustWithdrawalRate) Description() string {
	return fmt.Sprintf("Withdraw %s%% of the retirement balance", aw.Rate.Mul(decimal.NewFromInt(100)).StringFixed(2))
}

func (aw *AdjustWithdrawalRate) Validate(base domain.RetirementAssumptions) error {
	if aw.Rate.IsNegative() || aw.Rate.GreaterThan(decimal.NewFromInt(1)) {
		return NewTransformError(aw.Name(), "validate",
			fmt.Sprintf("rate must be between 0 and 1, got %s", aw.Rate), nil)
	}
	return nil
}

func (aw *AdjustWithdrawalRate) Apply(base domain.RetirementAssumptions) (domain.RetirementAssumptions, error) {
	modified := Clone(base)
	modified.SafeWithdrawalRate = aw.Rate
	return modified, nil
}

// ChangeSequencing switches the withdrawal sequencing strategy
type ChangeSequencing struct {
	Strategy string
	Sequence []string // custom strategy only
}

func (cs *ChangeSequencing) Name() string {
	return "change_sequencing"
}

func (cs *ChangeSequencing) Description() string {
	if cs.Strategy == "custom" {
		return "Withdraw in custom order " + strings.Join(cs.Sequence, " -> ")
	}
	return "Use " + cs.Strategy + " withdrawal sequencing"
}

func (cs *ChangeSequencing) Validate(base domain.RetirementAssumptions) error {
	switch cs.Strategy {
	case "standard", "tax_efficient":
		return nil
	case "custom":
		custom := sequencing.NewCustomStrategy(cs.Sequence)
		if !custom.Valid() {
			return NewTransformError(cs.Name(), "validate",
				fmt.Sprintf("invalid custom sequence %v", cs.Sequence), nil)
		}
		return nil
	default:
		return NewTransformError(cs.Name(), "validate",
			fmt.Sprintf("unknown strategy %q", cs.Strategy), nil)
	}
}

func (cs *ChangeSequencing) Apply(base domain.RetirementAssumptions) (domain.RetirementAssumptions, error) {
	modified := Clone(base)
	modified.Sequencing = &domain.WithdrawalSequencingConfig{
		Strategy:       cs.Strategy,
		CustomSequence: append([]string(nil), cs.Sequence...),
	}
	return modified, nil
}
