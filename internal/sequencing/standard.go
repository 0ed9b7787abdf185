package sequencing

// StandardStrategy: taxable -> traditional -> roth
// Spends taxable assets first, then traditional, preserving Roth for last.
type StandardStrategy struct{}

var standardOrder = []string{SourceTaxable, SourceTraditional, SourceRoth}

func NewStandardStrategy() *StandardStrategy { return &StandardStrategy{} }

func (s *StandardStrategy) Name() string { return "standard" }

func (s *StandardStrategy) Plan(sources []WithdrawalSource, ctx StrategyContext) WithdrawalPlan {
	return drawInOrder(s.Name(), standardOrder, sources, ctx)
}
