package calculation

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFutureValue(t *testing.T) {
	t.Run("matches closed form", func(t *testing.T) {
		for _, tc := range []struct {
			pv    float64
			rate  float64
			years int
		}{
			{10000, 0.07, 10},
			{2500, 0.03, 1},
			{1, 0.12, 40},
			{50000, -0.05, 5},
		} {
			got := FutureValue(decimal.NewFromFloat(tc.pv), decimal.NewFromFloat(tc.rate), tc.years)
			want := tc.pv * math.Pow(1+tc.rate, float64(tc.years))
			assert.InDelta(t, want, got.InexactFloat64(), 1e-6*math.Max(1, want))
		}
	})

	t.Run("zero years returns input", func(t *testing.T) {
		pv := decimal.NewFromInt(12345)
		assert.True(t, FutureValue(pv, decimal.NewFromFloat(0.07), 0).Equal(pv))
		assert.True(t, FutureValue(pv, decimal.NewFromFloat(0.07), -3).Equal(pv))
	})

	t.Run("zero rate and zero value", func(t *testing.T) {
		pv := decimal.NewFromInt(800)
		assert.True(t, FutureValue(pv, decimal.Zero, 30).Equal(pv))
		assert.True(t, FutureValue(decimal.Zero, decimal.NewFromFloat(0.05), 30).IsZero())
	})
}

func TestFutureValueOrdinaryAnnuity(t *testing.T) {
	got := FutureValueOrdinaryAnnuity(decimal.NewFromInt(1000), decimal.NewFromFloat(0.05), 10)
	assert.InDelta(t, 12577.89, got.InexactFloat64(), 0.01)

	assert.True(t, FutureValueOrdinaryAnnuity(decimal.NewFromInt(500), decimal.Zero, 12).Equal(decimal.NewFromInt(6000)),
		"zero rate degenerates to payment x years")
	assert.True(t, FutureValueOrdinaryAnnuity(decimal.Zero, decimal.NewFromFloat(0.05), 12).IsZero())
	assert.True(t, FutureValueOrdinaryAnnuity(decimal.NewFromInt(500), decimal.NewFromFloat(0.05), 0).IsZero())
}

func TestFutureValueGrowingAnnuity(t *testing.T) {
	t.Run("matches period-by-period sum", func(t *testing.T) {
		payment, rate, growth, years := 1000.0, 0.06, 0.03, 10
		want := 0.0
		for k := 0; k < years; k++ {
			want += payment * math.Pow(1+growth, float64(k)) * math.Pow(1+rate, float64(years-1-k))
		}
		got := FutureValueGrowingAnnuity(decimal.NewFromFloat(payment), decimal.NewFromFloat(rate), years, decimal.NewFromFloat(growth))
		assert.InDelta(t, want, got.InexactFloat64(), 0.01)
	})

	t.Run("equal rates use limiting case", func(t *testing.T) {
		got := FutureValueGrowingAnnuity(decimal.NewFromInt(1000), decimal.NewFromFloat(0.05), 10, decimal.NewFromFloat(0.05))
		want := 1000 * 10 * math.Pow(1.05, 9)
		assert.InDelta(t, want, got.InexactFloat64(), 0.01)
	})

	t.Run("zero payment", func(t *testing.T) {
		got := FutureValueGrowingAnnuity(decimal.Zero, decimal.NewFromFloat(0.05), 10, decimal.NewFromFloat(0.02))
		assert.True(t, got.IsZero())
	})
}

func TestPresentValueRoundTrip(t *testing.T) {
	pv := decimal.NewFromInt(25000)
	rate := decimal.NewFromFloat(0.065)
	fv := FutureValue(pv, rate, 17)
	assert.InDelta(t, 25000, PresentValue(fv, rate, 17).InexactFloat64(), 0.0001)
}

func TestRealReturn(t *testing.T) {
	got := RealReturn(decimal.NewFromFloat(0.07), decimal.NewFromFloat(0.03))
	assert.InDelta(t, 1.07/1.03-1, got.InexactFloat64(), 1e-12)
}
