package sequencing

import "slices"

// CustomStrategy executes withdrawals in a user-specified ordered list of sources.
// Valid source names: taxable, traditional, roth. If sequence invalid, falls back to standard.
// Sources the sequence omits are drawn after the listed ones, in standard order.
type CustomStrategy struct {
	Sequence []string
}

func NewCustomStrategy(sequence []string) *CustomStrategy { return &CustomStrategy{Sequence: sequence} }

func (s *CustomStrategy) Name() string { return "custom" }

// Valid reports whether the sequence names each known source at most once
func (s *CustomStrategy) Valid() bool {
	if len(s.Sequence) == 0 {
		return false
	}
	allowed := map[string]bool{SourceTaxable: true, SourceTraditional: true, SourceRoth: true}
	seen := map[string]bool{}
	for _, name := range s.Sequence {
		if !allowed[name] || seen[name] {
			return false
		}
		seen[name] = true
	}
	return true
}

func (s *CustomStrategy) Plan(sources []WithdrawalSource, ctx StrategyContext) WithdrawalPlan {
	if !s.Valid() {
		std := NewStandardStrategy().Plan(sources, ctx)
		std.StrategyUsed = "custom->standard_fallback"
		std.Notes = append(std.Notes, "invalid or empty custom sequence - falling back to standard")
		return std
	}
	return drawInOrder(s.Name(), s.order(), sources, ctx)
}

// order is the sequence followed by any omitted sources in standard order
func (s *CustomStrategy) order() []string {
	order := make([]string, 0, len(standardOrder))
	order = append(order, s.Sequence...)
	for _, name := range standardOrder {
		if !slices.Contains(s.Sequence, name) {
			order = append(order, name)
		}
	}
	return order
}
