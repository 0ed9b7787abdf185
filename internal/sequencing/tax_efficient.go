package sequencing

// TaxEfficientStrategy: roth -> traditional -> taxable
// Draws Roth first to shrink the pre-tax balance that later drives RMDs.
type TaxEfficientStrategy struct{}

func NewTaxEfficientStrategy() *TaxEfficientStrategy { return &TaxEfficientStrategy{} }

func (s *TaxEfficientStrategy) Name() string { return "tax_efficient" }

func (s *TaxEfficientStrategy) Plan(sources []WithdrawalSource, ctx StrategyContext) WithdrawalPlan {
	return drawInOrder(s.Name(), []string{SourceRoth, SourceTraditional, SourceTaxable}, sources, ctx)
}
