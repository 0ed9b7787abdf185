package calculation

import (
	"testing"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRequiredDistribution(t *testing.T) {
	balance := d(1000000)

	assert.InDelta(t, 37735.85, RequiredDistribution(73, balance, 73).InexactFloat64(), 0.01)
	assert.InDelta(t, 49504.95, RequiredDistribution(80, balance, 73).InexactFloat64(), 0.01)
	assert.True(t, RequiredDistribution(72, balance, 73).IsZero(), "no RMD before the start age")
	assert.True(t, RequiredDistribution(80, decimal.Zero, 73).IsZero())
}

func TestRequiredDistributionBeyondTable(t *testing.T) {
	got := RequiredDistribution(125, d(10000), 73)
	assert.InDelta(t, 5000, got.InexactFloat64(), 0.01, "ages past the table use its last factor")
}

func TestInheritedDistribution(t *testing.T) {
	balance := d(100000)
	assert.InDelta(t, 100000/36.2, InheritedDistribution(50, 0, balance).InexactFloat64(), 0.01)
	assert.InDelta(t, 100000/26.2, InheritedDistribution(50, 10, balance).InexactFloat64(), 0.01)
	assert.True(t, InheritedDistribution(50, 36, balance).Equal(balance), "exhausted factor distributes everything")
	assert.True(t, InheritedDistribution(50, 3, decimal.Zero).IsZero())
}

func TestRMDCalculator(t *testing.T) {
	tests := []struct {
		birthYear int
		startAge  int
	}{
		{1949, 72},
		{1950, 72},
		{1955, 73},
		{1959, 73},
		{1960, 75},
		{1975, 75},
	}
	for _, tt := range tests {
		calc := NewRMDCalculator(tt.birthYear)
		assert.Equal(t, tt.startAge, calc.StartAge(), "birth year %d", tt.birthYear)
		assert.True(t, calc.CalculateRMD(d(500000), tt.startAge-1).IsZero())
		assert.True(t, calc.CalculateRMD(d(500000), tt.startAge).GreaterThan(decimal.Zero))
	}
	assert.Equal(t, domain.DefaultRMDStartAge, NewRMDCalculator(1955).StartAge())
}
