package sequencing

import (
	"testing"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

func testSources() []WithdrawalSource {
	return CreateWithdrawalSources(domain.AccountBalances{
		PreTax:  decimal.NewFromInt(100000),
		TaxFree: decimal.NewFromInt(30000),
		Taxable: decimal.NewFromInt(50000),
	}, false, decimal.Zero)
}

func TestCreateStrategy(t *testing.T) {
	tests := []struct {
		name     string
		config   *domain.WithdrawalSequencingConfig
		expected string
	}{
		{"nil config", nil, "standard"},
		{"standard", &domain.WithdrawalSequencingConfig{Strategy: "standard"}, "standard"},
		{"tax efficient", &domain.WithdrawalSequencingConfig{Strategy: "tax_efficient"}, "tax_efficient"},
		{"custom", &domain.WithdrawalSequencingConfig{Strategy: "custom", CustomSequence: []string{"roth"}}, "custom"},
		{"unknown", &domain.WithdrawalSequencingConfig{Strategy: "bracket_fill"}, "standard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := CreateStrategy(tt.config)
			if strategy.Name() != tt.expected {
				t.Errorf("Expected strategy %s, got %s", tt.expected, strategy.Name())
			}
		})
	}
}

func TestCreateWithdrawalSources(t *testing.T) {
	balances := domain.AccountBalances{
		PreTax:  decimal.NewFromInt(100000),
		TaxFree: decimal.NewFromInt(50000),
		Taxable: decimal.NewFromInt(75000),
	}
	sources := CreateWithdrawalSources(balances, true, decimal.NewFromInt(5000))

	if len(sources) != 3 {
		t.Fatalf("Expected 3 sources, got %d", len(sources))
	}
	for _, source := range sources {
		switch source.Name {
		case SourceTaxable:
			if !source.Balance.Equal(balances.Taxable) {
				t.Errorf("Expected taxable balance %v, got %v", balances.Taxable, source.Balance)
			}
			if source.RMDRequired {
				t.Error("Taxable source should not carry an RMD")
			}
		case SourceTraditional:
			if !source.Balance.Equal(balances.PreTax) {
				t.Errorf("Expected traditional balance %v, got %v", balances.PreTax, source.Balance)
			}
			if !source.RMDRequired || !source.PendingRMD.Equal(decimal.NewFromInt(5000)) {
				t.Errorf("Expected traditional source to carry RMD 5000, got %v", source.PendingRMD)
			}
		case SourceRoth:
			if !source.Balance.Equal(balances.TaxFree) {
				t.Errorf("Expected roth balance %v, got %v", balances.TaxFree, source.Balance)
			}
		default:
			t.Errorf("Unexpected source %s", source.Name)
		}
	}
}

func TestStandardStrategy(t *testing.T) {
	plan := NewStandardStrategy().Plan(testSources(), StrategyContext{NeedAmount: decimal.NewFromInt(60000)})

	if !plan.TaxableUsed.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("Expected taxable drained first (50000), got %v", plan.TaxableUsed)
	}
	if !plan.TraditionalUsed.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("Expected 10000 from traditional, got %v", plan.TraditionalUsed)
	}
	if !plan.RothUsed.IsZero() {
		t.Errorf("Expected roth untouched, got %v", plan.RothUsed)
	}
	if !plan.RemainingNeed.IsZero() {
		t.Errorf("Expected need met, remaining %v", plan.RemainingNeed)
	}
	if len(plan.Allocations) != 2 || plan.Allocations[0].Source != SourceTaxable {
		t.Errorf("Expected allocations taxable then traditional, got %+v", plan.Allocations)
	}
}

func TestTaxEfficientStrategy(t *testing.T) {
	plan := NewTaxEfficientStrategy().Plan(testSources(), StrategyContext{NeedAmount: decimal.NewFromInt(40000)})

	if !plan.RothUsed.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("Expected roth drained first (30000), got %v", plan.RothUsed)
	}
	if !plan.TraditionalUsed.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("Expected 10000 from traditional, got %v", plan.TraditionalUsed)
	}
	if !plan.TaxableUsed.IsZero() {
		t.Errorf("Expected taxable untouched, got %v", plan.TaxableUsed)
	}
}

func TestCustomStrategy(t *testing.T) {
	strategy := NewCustomStrategy([]string{SourceRoth, SourceTaxable})
	plan := strategy.Plan(testSources(), StrategyContext{NeedAmount: decimal.NewFromInt(100000)})

	if plan.StrategyUsed != "custom" {
		t.Errorf("Expected custom strategy, got %s", plan.StrategyUsed)
	}
	if !plan.RothUsed.Equal(decimal.NewFromInt(30000)) || !plan.TaxableUsed.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("Expected listed sources drained first, got %+v", plan.Allocations)
	}
	if !plan.TraditionalUsed.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("Expected the unlisted source to cover the rest, got %v", plan.TraditionalUsed)
	}
	if !plan.RemainingNeed.IsZero() {
		t.Errorf("Expected no remaining need, got %v", plan.RemainingNeed)
	}
	if plan.Allocations[0].Source != SourceRoth || plan.Allocations[2].Source != SourceTraditional {
		t.Errorf("Unexpected draw order %+v", plan.Allocations)
	}
}

func TestCustomStrategyPartialSequence(t *testing.T) {
	plan := NewCustomStrategy([]string{SourceRoth}).Plan(testSources(), StrategyContext{NeedAmount: decimal.NewFromInt(100000)})

	// roth, then taxable and traditional in standard order
	if !plan.RothUsed.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("Expected roth 30000, got %v", plan.RothUsed)
	}
	if !plan.TaxableUsed.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("Expected taxable 50000, got %v", plan.TaxableUsed)
	}
	if !plan.TraditionalUsed.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("Expected traditional 20000, got %v", plan.TraditionalUsed)
	}
	if !plan.RemainingNeed.IsZero() || len(plan.Notes) != 0 {
		t.Errorf("Expected the need met without notes, got %v %v", plan.RemainingNeed, plan.Notes)
	}

	// a shortfall only once every bucket is empty
	plan = NewCustomStrategy([]string{SourceRoth}).Plan(testSources(), StrategyContext{NeedAmount: decimal.NewFromInt(200000)})
	if !plan.RemainingNeed.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("Expected remaining need 20000, got %v", plan.RemainingNeed)
	}
}

func TestCustomStrategyFallback(t *testing.T) {
	for _, seq := range [][]string{nil, {"roth", "roth"}, {"hsa"}} {
		plan := NewCustomStrategy(seq).Plan(testSources(), StrategyContext{NeedAmount: decimal.NewFromInt(10000)})
		if plan.StrategyUsed != "custom->standard_fallback" {
			t.Errorf("sequence %v: expected fallback, got %s", seq, plan.StrategyUsed)
		}
		if !plan.TaxableUsed.Equal(decimal.NewFromInt(10000)) {
			t.Errorf("sequence %v: expected standard ordering, got %+v", seq, plan.Allocations)
		}
	}
}

func TestRMDTakenFirst(t *testing.T) {
	balances := domain.AccountBalances{
		PreTax:  decimal.NewFromInt(100000),
		TaxFree: decimal.NewFromInt(30000),
		Taxable: decimal.NewFromInt(50000),
	}
	sources := CreateWithdrawalSources(balances, true, decimal.NewFromInt(8000))

	t.Run("need exceeds rmd", func(t *testing.T) {
		plan := NewTaxEfficientStrategy().Plan(sources, StrategyContext{NeedAmount: decimal.NewFromInt(20000), IsRMDYear: true})
		if !plan.TraditionalUsed.Equal(decimal.NewFromInt(8000)) {
			t.Errorf("Expected RMD 8000 from traditional, got %v", plan.TraditionalUsed)
		}
		if !plan.RothUsed.Equal(decimal.NewFromInt(12000)) {
			t.Errorf("Expected remaining 12000 from roth, got %v", plan.RothUsed)
		}
		if !plan.ExcessRMD.IsZero() {
			t.Errorf("Expected no excess RMD, got %v", plan.ExcessRMD)
		}
	})

	t.Run("rmd exceeds need", func(t *testing.T) {
		plan := NewStandardStrategy().Plan(sources, StrategyContext{NeedAmount: decimal.NewFromInt(5000), IsRMDYear: true})
		if !plan.TraditionalUsed.Equal(decimal.NewFromInt(8000)) {
			t.Errorf("Expected full RMD withdrawn, got %v", plan.TraditionalUsed)
		}
		if !plan.ExcessRMD.Equal(decimal.NewFromInt(3000)) {
			t.Errorf("Expected excess 3000, got %v", plan.ExcessRMD)
		}
		if !plan.TaxableUsed.IsZero() {
			t.Errorf("Expected no discretionary withdrawal, got %v", plan.TaxableUsed)
		}
		if !plan.RMDSatisfied {
			t.Error("Expected RMD satisfied")
		}
	})
}
