package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSocialSecurityBenefit(t *testing.T) {
	pia := d(2000)
	tests := []struct {
		name      string
		birthYear int
		claimAge  int // months
		want      float64
	}{
		{"claim at 62 with FRA 67", 1960, 62 * 12, 1400},
		{"claim at FRA", 1960, 67 * 12, 2000},
		{"claim at 70 with FRA 67", 1960, 70 * 12, 2480},
		{"below 62 clamps", 1960, 60 * 12, 1400},
		{"above 70 clamps", 1960, 72 * 12, 2480},
		{"claim at 64 with FRA 66", 1950, 64 * 12, 2000 * (1 - 24*5.0/900)},
		{"claim at 62 with FRA 66 and 4 months", 1956, 62 * 12, 2000 * (1 - 36*5.0/900 - 16*5.0/1200)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SocialSecurityBenefit(pia, tt.birthYear, tt.claimAge)
			assert.InDelta(t, tt.want, got.InexactFloat64(), 0.01)
		})
	}
}
