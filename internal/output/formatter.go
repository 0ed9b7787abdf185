package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// Report bundles every result a formatter may render. Nil sections are skipped.
type Report struct {
	PlanName     string                        `json:"planName,omitempty"`
	Assumptions  *domain.RetirementAssumptions `json:"assumptions,omitempty"`
	Scenarios    *domain.ScenarioResult        `json:"scenarios,omitempty"`
	MonteCarlo   *domain.MonteCarloResult      `json:"monteCarlo,omitempty"`
	Mortgage     *domain.ExtraPaymentImpact    `json:"mortgage,omitempty"`
	Amortization []domain.AmortizationRow      `json:"amortization,omitempty"`
	Debts        *domain.StrategyComparison    `json:"debts,omitempty"`
	SEPP         *domain.SEPPResult            `json:"sepp,omitempty"`
}

// Formatter renders a report into bytes
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"console":         ConsoleFormatter{},
	"console-verbose": ConsoleFormatter{Verbose: true},
	"csv":             CSVFormatter{},
	"json":            JSONFormatter{Pretty: true},
}

var formatAliases = map[string]string{
	"verbose": "console-verbose",
	"text":    "console",
}

// AvailableFormatterNames returns the registered formatter names in sorted order
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the accepted alternative names
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// GetFormatterByName resolves a formatter by name or alias, nil if unknown
func GetFormatterByName(name string) Formatter {
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// WriteFormatted renders report with formatter into a timestamped file in the working
// directory and returns its name.
func WriteFormatted(formatter Formatter, report *Report, ext string) (string, error) {
	data, err := formatter.Format(report)
	if err != nil {
		return "", fmt.Errorf("%s formatter: %w", formatter.Name(), err)
	}
	filename := fmt.Sprintf("nestegg_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
