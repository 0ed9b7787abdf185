package calculation

import (
	"testing"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyPayment(t *testing.T) {
	t.Run("standard 30 year loan", func(t *testing.T) {
		got := MonthlyPayment(d(300000), d(0.065), 30)
		assert.InDelta(t, 1896.20, got.InexactFloat64(), 0.5)
	})

	t.Run("zero rate", func(t *testing.T) {
		got := MonthlyPayment(d(120000), decimal.Zero, 10)
		assert.True(t, got.Equal(decimal.NewFromInt(1000)), "got %s", got)
	})

	t.Run("zero principal or term", func(t *testing.T) {
		assert.True(t, MonthlyPayment(decimal.Zero, d(0.05), 30).IsZero())
		assert.True(t, MonthlyPayment(d(100000), d(0.05), 0).IsZero())
	})
}

func TestAmortizationSchedule(t *testing.T) {
	var rows []domain.AmortizationRow
	for row := range AmortizationSchedule(d(300000), d(0.065), 30, decimal.Zero) {
		rows = append(rows, row)
	}
	require.Len(t, rows, 360)

	totalInterest := decimal.Zero
	totalPrincipal := decimal.Zero
	for i, row := range rows {
		assert.Equal(t, i+1, row.Period)
		assert.False(t, row.RemainingBalance.IsNegative(), "period %d", row.Period)
		assert.True(t, row.Payment.Equal(row.Interest.Add(row.Principal)), "period %d", row.Period)
		totalInterest = totalInterest.Add(row.Interest)
		totalPrincipal = totalPrincipal.Add(row.Principal)
	}

	assert.InDelta(t, 382633, totalInterest.InexactFloat64(), 200)
	assert.True(t, totalPrincipal.Equal(d(300000)), "principal repaid %s", totalPrincipal)
	assert.True(t, rows[len(rows)-1].RemainingBalance.IsZero())
}

func TestAmortizationScheduleStopsEarly(t *testing.T) {
	count := 0
	for row := range AmortizationSchedule(d(200000), d(0.05), 15, decimal.Zero) {
		count++
		if row.Period == 12 {
			break
		}
	}
	assert.Equal(t, 12, count)
}

func TestAmortizationScheduleZeroRate(t *testing.T) {
	summary := SummarizeAmortization(d(12000), decimal.Zero, 1, decimal.Zero)
	assert.Equal(t, 12, summary.Months)
	assert.True(t, summary.TotalInterest.IsZero())
	assert.True(t, summary.TotalPaid.Equal(d(12000)))
}

func TestExtraPaymentShortensLoan(t *testing.T) {
	cases := []domain.MortgageInput{
		{Principal: d(300000), AnnualRate: d(0.065), TermYears: 30, ExtraMonthly: d(200)},
		{Principal: d(150000), AnnualRate: d(0.03), TermYears: 15, ExtraMonthly: d(50)},
		{Principal: d(50000), AnnualRate: d(0.09), TermYears: 10, ExtraMonthly: d(100)},
	}
	for _, input := range cases {
		impact := CompareExtraPayment(input)
		assert.Greater(t, impact.MonthsSaved, 0, "principal %s", input.Principal)
		assert.True(t, impact.InterestSaved.GreaterThan(decimal.Zero), "principal %s", input.Principal)
		assert.Less(t, impact.WithExtra.Months, impact.Baseline.Months)
	}
}
