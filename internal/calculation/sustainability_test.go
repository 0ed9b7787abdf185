package calculation

import (
	"testing"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func TestYearsLast(t *testing.T) {
	tests := []struct {
		name       string
		balance    float64
		withdrawal float64
		growth     float64
		inflation  float64
		want       domain.Years
	}{
		{"empty balance", 0, 10000, 0.05, 0.02, 0},
		{"no withdrawal", 100000, 0, 0.05, 0.02, domain.Unlimited},
		{"flat whole years", 100000, 10000, 0, 0, 10},
		{"flat partial year", 100000, 30000, 0, 0, 3 + 1.0/3},
		{"withdrawal exceeds balance", 1000, 4000, 0.05, 0.02, 0.25},
		{"growth outpaces withdrawal", 100000, 1000, 0.10, 0, domain.Unlimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := YearsLast(d(tt.balance), d(tt.withdrawal), d(tt.growth), d(tt.inflation))
			if tt.want.IsUnlimited() {
				assert.True(t, got.IsUnlimited(), "got %v", got)
				return
			}
			assert.InDelta(t, float64(tt.want), float64(got), 1e-9)
		})
	}
}

func TestYearsLastMonotonic(t *testing.T) {
	balance := d(1000000)

	t.Run("larger withdrawals never last longer", func(t *testing.T) {
		prev := domain.Unlimited
		for w := 20000; w <= 200000; w += 10000 {
			got := YearsLast(balance, decimal.NewFromInt(int64(w)), d(0.05), d(0.03))
			assert.LessOrEqual(t, float64(got), float64(prev), "withdrawal %d", w)
			prev = got
		}
	})

	t.Run("higher growth never lasts shorter", func(t *testing.T) {
		prev := domain.Years(0)
		for g := -0.05; g <= 0.10; g += 0.01 {
			got := YearsLast(balance, d(70000), d(g), d(0.03))
			assert.GreaterOrEqual(t, float64(got), float64(prev), "growth %.2f", g)
			prev = got
		}
	})

	t.Run("higher inflation never lasts longer", func(t *testing.T) {
		prev := domain.Unlimited
		for i := 0.0; i <= 0.08; i += 0.01 {
			got := YearsLast(balance, d(60000), d(0.05), d(i))
			assert.LessOrEqual(t, float64(got), float64(prev), "inflation %.2f", i)
			prev = got
		}
	})
}
