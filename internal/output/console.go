package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// ConsoleFormatter renders a plain-text report. Verbose adds the year-by-year table
// of the expected scenario and the full amortization schedule when present.
type ConsoleFormatter struct {
	Verbose bool
}

func (c ConsoleFormatter) Name() string {
	if c.Verbose {
		return "console-verbose"
	}
	return "console"
}

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	title := "RETIREMENT PROJECTION"
	if report.PlanName != "" {
		title += ": " + report.PlanName
	}
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", 72))

	if c.Verbose {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range DefaultAssumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
	}

	if report.Scenarios != nil {
		writeScenarios(&buf, report.Scenarios)
		if c.Verbose {
			writeYearTable(&buf, report.Scenarios.Expected)
		}
	}
	if report.MonteCarlo != nil {
		writeMonteCarlo(&buf, report.MonteCarlo)
	}
	if report.Mortgage != nil {
		writeMortgage(&buf, report.Mortgage)
	}
	if c.Verbose && len(report.Amortization) > 0 {
		writeAmortization(&buf, report.Amortization)
	}
	if report.Debts != nil {
		writeDebts(&buf, report.Debts)
	}
	if report.SEPP != nil {
		writeSEPP(&buf, report.SEPP)
	}
	return buf.Bytes(), nil
}

func section(buf *bytes.Buffer, name string) {
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, name)
	fmt.Fprintln(buf, strings.Repeat("-", len(name)))
}

func writeScenarios(buf *bytes.Buffer, sr *domain.ScenarioResult) {
	section(buf, "SCENARIOS")
	fmt.Fprintf(buf, "%-12s %8s %18s %16s %18s %16s\n", "Scenario", "Return", "At Retirement", "First Draw", "Final Balance", "Lasts")
	for _, b := range sr.Bundles() {
		fmt.Fprintf(buf, "%-12s %8s %18s %16s %18s %16s\n",
			b.Name,
			FormatRate(b.ReturnRate),
			FormatCurrency(b.BalanceAtRetirement),
			FormatCurrency(b.InitialWithdrawal),
			FormatCurrency(b.FinalBalance),
			FormatYears(b.SustainabilityYears),
		)
	}
}

func writeYearTable(buf *bytes.Buffer, b domain.ScenarioBundle) {
	section(buf, "EXPECTED SCENARIO BY YEAR")
	fmt.Fprintf(buf, "%4s %16s %16s %16s %14s %12s %16s\n", "Age", "Pre-Tax", "Tax-Free", "Taxable", "Withdrawal", "RMD", "Ending")
	for _, yr := range b.Years {
		marker := ""
		if yr.IsDepleted() {
			marker = "  shortfall " + FormatCurrency(yr.Shortfall)
		}
		fmt.Fprintf(buf, "%4d %16s %16s %16s %14s %12s %16s%s\n",
			yr.Age,
			FormatCurrency(yr.Buckets.PreTax),
			FormatCurrency(yr.Buckets.TaxFree),
			FormatCurrency(yr.Buckets.Taxable),
			FormatCurrency(yr.Withdrawal),
			FormatCurrency(yr.RMD),
			FormatCurrency(yr.EndingBalance),
			marker,
		)
	}
}

func writeMonteCarlo(buf *bytes.Buffer, mc *domain.MonteCarloResult) {
	section(buf, fmt.Sprintf("MONTE CARLO (%d trials)", mc.Trials))
	fmt.Fprintf(buf, "Success rate:        %s\n", FormatPercentage(mc.SuccessRate))
	fmt.Fprintf(buf, "Depleted trials:     %d\n", mc.DepletedTrials)
	fmt.Fprintf(buf, "Mean ending balance: %s\n", FormatCurrency(mc.MeanEndingBalance))
	labels := []string{"10th", "25th", "50th", "75th", "90th"}
	for i, v := range mc.Percentiles.Ordered() {
		fmt.Fprintf(buf, "  %s percentile: %s\n", labels[i], FormatCurrency(v))
	}
}

func writeMortgage(buf *bytes.Buffer, m *domain.ExtraPaymentImpact) {
	section(buf, "MORTGAGE")
	fmt.Fprintf(buf, "Monthly payment:     %s\n", FormatCurrency(m.Baseline.MonthlyPayment))
	fmt.Fprintf(buf, "Baseline:            %d months, %s interest\n", m.Baseline.Months, FormatCurrency(m.Baseline.TotalInterest))
	if m.MonthsSaved > 0 {
		fmt.Fprintf(buf, "With extra payment:  %d months, %s interest\n", m.WithExtra.Months, FormatCurrency(m.WithExtra.TotalInterest))
		fmt.Fprintf(buf, "Saves:               %d months, %s\n", m.MonthsSaved, FormatCurrency(m.InterestSaved))
	}
}

func writeAmortization(buf *bytes.Buffer, rows []domain.AmortizationRow) {
	section(buf, "AMORTIZATION SCHEDULE")
	fmt.Fprintf(buf, "%6s %12s %12s %12s %16s\n", "Period", "Payment", "Interest", "Principal", "Balance")
	for _, r := range rows {
		fmt.Fprintf(buf, "%6d %12s %12s %12s %16s\n", r.Period,
			FormatCurrency(r.Payment), FormatCurrency(r.Interest), FormatCurrency(r.Principal), FormatCurrency(r.RemainingBalance))
	}
}

func writeDebts(buf *bytes.Buffer, cmp *domain.StrategyComparison) {
	section(buf, "DEBT PAYOFF")
	for _, res := range []*domain.DebtPayoffResult{cmp.Avalanche, cmp.Snowball} {
		if res == nil {
			continue
		}
		fmt.Fprintf(buf, "%s: %d months, %s interest, order %s\n",
			res.Strategy, res.Months, FormatCurrency(res.TotalInterest), strings.Join(debtNames(res), " -> "))
	}
	fmt.Fprintf(buf, "Avalanche saves %s and %d months\n", FormatCurrency(cmp.InterestSaved), cmp.MonthsSaved)
}

func debtNames(res *domain.DebtPayoffResult) []string {
	names := make(map[string]string, len(res.Debts))
	for _, d := range res.Debts {
		names[d.DebtID] = d.Name
	}
	out := make([]string, 0, len(res.PayoffOrder))
	for _, id := range res.PayoffOrder {
		if n := names[id]; n != "" {
			out = append(out, n)
		} else {
			out = append(out, id)
		}
	}
	return out
}

func writeSEPP(buf *bytes.Buffer, s *domain.SEPPResult) {
	section(buf, "72(t) SUBSTANTIALLY EQUAL PERIODIC PAYMENTS")
	fmt.Fprintf(buf, "Balance %s at age %d, rate %s, factor %s\n",
		FormatCurrency(s.Balance), s.Age, FormatRate(s.InterestRate), s.LifeExpectancyFactor.StringFixed(1))
	for _, w := range s.Methods() {
		fmt.Fprintf(buf, "  %-20s %14s/yr %12s/mo\n", w.Method, FormatCurrency(w.Annual), FormatCurrency(w.Monthly))
	}
	fmt.Fprintf(buf, "Payments must continue unchanged until age %.1f\n", s.EndAge)
}
