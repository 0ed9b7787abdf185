package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Retirement Age",
		"Withdrawal Rate",
		"Balance At Retirement",
		"Initial Withdrawal",
		"Lifetime Withdrawals",
		"Final Balance",
		"Sustainability Years",
		"Depletion Age",
		"Final Balance Diff",
		"Final Balance % Change",
		"Withdrawals Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	years := "Infinity"
	if !result.SustainabilityYears.IsUnlimited() {
		years = strconv.FormatFloat(float64(result.SustainabilityYears), 'f', 2, 64)
	}
	return []string{
		result.ScenarioName,
		scenarioType,
		strconv.Itoa(result.RetirementAge),
		result.SafeWithdrawalRate.String(),
		result.BalanceAtRetirement.StringFixed(2),
		result.InitialWithdrawal.StringFixed(2),
		result.LifetimeWithdrawals.StringFixed(2),
		result.FinalBalance.StringFixed(2),
		years,
		strconv.Itoa(result.DepletionAge),
		result.FinalBalanceDiff.StringFixed(2),
		result.FinalBalancePctDiff.StringFixed(2),
		result.WithdrawalsDiff.StringFixed(2),
	}
}
