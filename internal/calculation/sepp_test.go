package calculation

import (
	"testing"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSEPPEndAge(t *testing.T) {
	assert.Equal(t, 59.5, SEPPEndAge(50))
	assert.Equal(t, 59.5, SEPPEndAge(54))
	assert.Equal(t, 60.0, SEPPEndAge(55))
	assert.Equal(t, 61.0, SEPPEndAge(56))
}

func TestCalculateSEPP(t *testing.T) {
	res := CalculateSEPP(d(500000), 50, d(0.05))
	require.NotNil(t, res)

	assert.Equal(t, 59.5, res.EndAge)
	assert.True(t, res.LifeExpectancyFactor.Equal(d(36.2)), "factor %s", res.LifeExpectancyFactor)
	assert.InDelta(t, 500000/36.2, res.LifeExpectancy.Annual.InexactFloat64(), 0.01)

	assert.True(t, res.Amortization.Annual.GreaterThanOrEqual(res.LifeExpectancy.Annual))
	assert.True(t, res.Annuitization.Annual.GreaterThan(decimal.Zero))
	assert.False(t, res.Annuitization.Annual.Equal(res.Amortization.Annual))
	assert.InEpsilon(t, res.Amortization.Annual.InexactFloat64(), res.Annuitization.Annual.InexactFloat64(), 0.25)

	for _, w := range res.Methods() {
		assert.True(t, w.Monthly.Equal(w.Annual.Div(decimal.NewFromInt(12))), "method %s", w.Method)
	}
}

func TestSEPPAmortizationDominatesLifeExpectancy(t *testing.T) {
	for _, age := range []int{40, 50, 55, 58} {
		for _, rate := range []float64{0.01, 0.03, 0.05, 0.08} {
			res := CalculateSEPP(d(250000), age, d(rate))
			assert.True(t, res.Amortization.Annual.GreaterThanOrEqual(res.LifeExpectancy.Annual),
				"age %d rate %.2f", age, rate)
		}
	}
}

func TestSEPPZeroRate(t *testing.T) {
	res := CalculateSEPP(d(300000), 52, decimal.Zero)
	assert.True(t, res.Amortization.Annual.Equal(res.LifeExpectancy.Annual))
	assert.Equal(t, domain.SEPPFixedAmortization, res.Amortization.Method)
}

func TestSEPPLifeExpectancyContinuousAcrossAges(t *testing.T) {
	prev := CalculateSEPP(d(500000), 50, d(0.05)).LifeExpectancy.Annual
	for age := 51; age <= 80; age++ {
		cur := CalculateSEPP(d(500000), age, d(0.05)).LifeExpectancy.Annual
		assert.True(t, cur.GreaterThanOrEqual(prev), "withdrawal falls from age %d to %d: %s -> %s", age-1, age, prev, cur)
		prev = cur
	}
	at71 := CalculateSEPP(d(500000), 71, d(0.05)).LifeExpectancy.Annual
	at72 := CalculateSEPP(d(500000), 72, d(0.05)).LifeExpectancy.Annual
	assert.InDelta(t, 500000/17.2-500000/18.0, at72.Sub(at71).InexactFloat64(), 0.01)
}
