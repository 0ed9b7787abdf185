package output

import (
	"fmt"
	"os"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestReport(t *testing.T) *Report {
	t.Helper()
	a := domain.RetirementAssumptions{
		CurrentAge:     62,
		RetirementAge:  65,
		LifeExpectancy: 75,
		Balances: domain.AccountBalances{
			PreTax:  decimal.NewFromInt(400000),
			TaxFree: decimal.NewFromInt(50000),
			Taxable: decimal.NewFromInt(50000),
		},
		ExpectedReturn:     decimal.NewFromFloat(0.05),
		InflationRate:      decimal.NewFromFloat(0.02),
		SafeWithdrawalRate: decimal.NewFromFloat(0.04),
	}
	debts := []domain.Debt{
		{ID: "card", Name: "Card", Balance: decimal.NewFromInt(3000), InterestRate: decimal.NewFromFloat(0.2), MinimumPayment: decimal.NewFromInt(100)},
		{ID: "loan", Name: "Loan", Balance: decimal.NewFromInt(2000), InterestRate: decimal.NewFromFloat(0.05), MinimumPayment: decimal.NewFromInt(100)},
	}
	cmp, err := calculation.CompareDebtStrategies(debts, decimal.NewFromInt(400))
	require.NoError(t, err)
	impact := calculation.CompareExtraPayment(domain.MortgageInput{
		Principal:    decimal.NewFromInt(100000),
		AnnualRate:   decimal.NewFromFloat(0.05),
		TermYears:    15,
		ExtraMonthly: decimal.NewFromInt(100),
	})

	return &Report{
		PlanName:  "Test",
		Scenarios: calculation.NewProjector().ProjectScenarios(a),
		MonteCarlo: &domain.MonteCarloResult{
			Trials:      100,
			SuccessRate: decimal.NewFromInt(87),
			Percentiles: domain.PercentileRanges{
				P10: decimal.NewFromInt(1), P25: decimal.NewFromInt(2), P50: decimal.NewFromInt(3),
				P75: decimal.NewFromInt(4), P90: decimal.NewFromInt(5),
			},
		},
		Mortgage: &impact,
		Debts:    cmp,
		SEPP:     calculation.CalculateSEPP(decimal.NewFromInt(300000), 52, decimal.NewFromFloat(0.05)),
	}
}

func TestFormatterFunc(t *testing.T) {
	var received *Report
	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(r *Report) ([]byte, error) {
			received = r
			return []byte("test output"), nil
		},
	}

	report := &Report{PlanName: "x"}
	out, err := formatter.Format(report)
	assert.NoError(t, err)
	assert.Same(t, report, received)
	assert.Equal(t, []byte("test output"), out)
	assert.Equal(t, "test-formatter", formatter.Name())
}

func TestWriteFormatted(t *testing.T) {
	t.Chdir(t.TempDir())

	formatter := FormatterFunc{ID: "t", F: func(*Report) ([]byte, error) { return []byte("content"), nil }}
	filename, err := WriteFormatted(formatter, &Report{}, "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "nestegg_report_"))
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))
}

func TestWriteFormattedError(t *testing.T) {
	formatter := FormatterFunc{ID: "broken", F: func(*Report) ([]byte, error) { return nil, fmt.Errorf("boom") }}
	_, err := WriteFormatted(formatter, &Report{}, "txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestFormatterRegistry(t *testing.T) {
	assert.Equal(t, []string{"console", "console-verbose", "csv", "json"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "verbose")

	assert.Equal(t, "console-verbose", GetFormatterByName("verbose").Name())
	assert.Equal(t, "json", GetFormatterByName("json").Name())
	assert.Nil(t, GetFormatterByName("html"))
}

func TestConsoleFormatter(t *testing.T) {
	report := buildTestReport(t)

	out, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "RETIREMENT PROJECTION: Test")
	assert.Contains(t, content, "optimistic")
	assert.Contains(t, content, "pessimistic")
	assert.Contains(t, content, "87.00%")
	assert.Contains(t, content, "MORTGAGE")
	assert.Contains(t, content, "Card -> Loan")
	assert.Contains(t, content, "fixed_amortization")
	assert.NotContains(t, content, "EXPECTED SCENARIO BY YEAR")

	verbose, err := ConsoleFormatter{Verbose: true}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(verbose), "EXPECTED SCENARIO BY YEAR")
	assert.Contains(t, string(verbose), "KEY ASSUMPTIONS")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{Pretty: true}.Format(buildTestReport(t))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "scenarios")
	assert.Contains(t, decoded, "monteCarlo")
	assert.Contains(t, decoded, "sepp")
	assert.NotContains(t, decoded, "amortization")

	scenarios := decoded["scenarios"].(map[string]any)
	expected := scenarios["expected"].(map[string]any)
	assert.Equal(t, "expected", expected["name"])
}

func TestJSONFormatterUnlimitedYears(t *testing.T) {
	report := &Report{Scenarios: &domain.ScenarioResult{
		Expected: domain.ScenarioBundle{Name: "expected", SustainabilityYears: domain.Unlimited},
	}}
	out, err := JSONFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"sustainabilityYears":"Infinity"`)
}

func TestCSVFormatter(t *testing.T) {
	report := buildTestReport(t)
	report.Amortization = []domain.AmortizationRow{{Period: 1, Payment: decimal.NewFromInt(10)}}

	out, err := CSVFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(out)

	lines := strings.Split(strings.TrimSpace(content), "\n")
	projectionRows := 0
	for _, l := range lines {
		if strings.HasPrefix(l, "projection,") {
			projectionRows++
		}
	}
	assert.Equal(t, 3*13, projectionRows, "one row per year per scenario")
	assert.Contains(t, content, "monte_carlo,100,87.00,1.00,2.00,3.00,4.00,5.00")
	assert.Contains(t, content, "amortization,1,10.00")
	assert.Contains(t, content, "debt,avalanche,card,Card")
	assert.Contains(t, content, "sepp,life_expectancy")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1,234,567.89", FormatCurrency(decimal.NewFromFloat(1234567.891)))
	assert.Equal(t, "$999.50", FormatCurrency(decimal.NewFromFloat(999.5)))
	assert.Equal(t, "-$12,000.00", FormatCurrency(decimal.NewFromInt(-12000)))
	assert.Equal(t, "$0.00", FormatCurrency(decimal.Zero))
	assert.Equal(t, "6.50%", FormatRate(decimal.NewFromFloat(0.065)))
	assert.Equal(t, "87.25%", FormatPercentage(decimal.NewFromFloat(87.25)))
	assert.Equal(t, "never depletes", FormatYears(domain.Unlimited))
	assert.Equal(t, "12.5 years", FormatYears(12.5))
}
