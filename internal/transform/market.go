package transform

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	minRate = decimal.NewFromInt(-1)
	maxRate = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// ShiftReturns moves the expected return by Delta (0.01 = one percentage point)
type ShiftReturns struct {
	Delta decimal.Decimal
}

func (sr *ShiftReturns) Name() string {
	return "shift_returns"
}

func (sr *ShiftReturns) Description() string {
	return fmt.Sprintf("Shift expected returns by %s points", sr.Delta.Mul(hundred).StringFixed(1))
}

func (sr *ShiftReturns) Validate(base domain.RetirementAssumptions) error {
	shifted := base.ExpectedReturn.Add(sr.Delta)
	if shifted.LessThan(minRate) || shifted.GreaterThan(maxRate) {
		return NewTransformError(sr.Name(), "validate",
			fmt.Sprintf("shifted return %s is outside [-1, 1]", shifted), nil)
	}
	return nil
}

func (sr *ShiftReturns) Apply(base domain.RetirementAssumptions) (domain.RetirementAssumptions, error) {
	modified := Clone(base)
	modified.ExpectedReturn = base.ExpectedReturn.Add(sr.Delta)
	return modified, nil
}

// SetInflation replaces the inflation rate
type SetInflation struct {
	Rate decimal.Decimal
}

func (si *SetInflation) Name() string {
	return "set_inflation"
}

func (si *SetInflation) Description() string {
	return fmt.Sprintf("Inflation at %s%%", si.Rate.Mul(hundred).StringFixed(1))
}

func (si *SetInflation) Validate(base domain.RetirementAssumptions) error {
	if si.Rate.LessThan(minRate) || si.Rate.GreaterThan(maxRate) {
		return NewTransformError(si.Name(), "validate",
			fmt.Sprintf("inflation %s is outside [-1, 1]", si.Rate), nil)
	}
	return nil
}

func (si *SetInflation) Apply(base domain.RetirementAssumptions) (domain.RetirementAssumptions, error) {
	modified := Clone(base)
	modified.InflationRate = si.Rate
	return modified, nil
}
