package transform

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// ScaleContributions multiplies every annual contribution, employer match included
type ScaleContributions struct {
	Factor decimal.Decimal
}

func (sc *ScaleContributions) Name() string {
	return "scale_contributions"
}

func (sc *ScaleContributions) Description() string {
	return fmt.Sprintf("Scale contributions by %sx", sc.Factor.StringFixed(2))
}

func (sc *ScaleContributions) Validate(base domain.RetirementAssumptions) error {
	if sc.Factor.IsNegative() {
		return NewTransformError(sc.Name(), "validate",
			fmt.Sprintf("factor must be non-negative, got %s", sc.Factor), nil)
	}
	return nil
}

func (sc *ScaleContributions) Apply(base domain.RetirementAssumptions) (domain.RetirementAssumptions, error) {
	modified := Clone(base)
	modified.Contributions = domain.AccountBalances{
		PreTax:  base.Contributions.PreTax.Mul(sc.Factor).Round(2),
		TaxFree: base.Contributions.TaxFree.Mul(sc.Factor).Round(2),
		Taxable: base.Contributions.Taxable.Mul(sc.Factor).Round(2),
	}
	modified.EmployerMatch = base.EmployerMatch.Mul(sc.Factor).Round(2)
	return modified, nil
}
