package breakeven

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/nestegg/internal/output"
)

// TableFormatter formats solver results as console text
type TableFormatter struct{}

// Format renders a single optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	tf.writeResult(&sb, result)
	return sb.String()
}

// FormatMulti renders every solved target plus recommendations
func (tf *TableFormatter) FormatMulti(multi *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	for _, r := range []*OptimizationResult{multi.WithdrawalRate, multi.RetirementAge} {
		if r != nil {
			tf.writeResult(&sb, r)
			sb.WriteString("\n")
		}
	}

	if len(multi.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range multi.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}
	return sb.String()
}

func (tf *TableFormatter) writeResult(sb *strings.Builder, result *OptimizationResult) {
	sb.WriteString(fmt.Sprintf("Target:              %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString(fmt.Sprintf("Plan as written:     %s\n", tf.formatSustainable(result.BaseSustainable)))

	if result.OptimalWithdrawalRate != nil {
		sb.WriteString(fmt.Sprintf("Withdrawal Rate:     %s%%\n", percent(*result.OptimalWithdrawalRate)))
	}
	if result.OptimalRetirementAge != nil {
		sb.WriteString(fmt.Sprintf("Retirement Age:      %d\n", *result.OptimalRetirementAge))
	}
	if result.Success {
		sb.WriteString(fmt.Sprintf("First Withdrawal:    %s (%s vs plan)\n",
			output.FormatCurrency(result.InitialWithdrawal), output.FormatCurrency(result.WithdrawalDiff)))
		sb.WriteString(fmt.Sprintf("Final Balance:       %s\n", output.FormatCurrency(result.FinalBalance)))
	}
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "solved"
	}
	return "no solution"
}

func (tf *TableFormatter) formatSustainable(ok bool) string {
	if ok {
		return "sustainable"
	}
	return "depletes"
}

// JSONFormatter formats solver results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format marshals v, a result or a multi-dimensional result
func (jf *JSONFormatter) Format(v any) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
