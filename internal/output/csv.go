package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// CSVFormatter writes one block per report section. The first column names the
// section so the blocks can be split apart again.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if report.Scenarios != nil {
		w.Write([]string{"section", "scenario", "age", "year_offset", "pre_tax", "tax_free", "taxable", "withdrawal", "rmd", "return_rate", "ending_balance", "shortfall"})
		for _, b := range report.Scenarios.Bundles() {
			for _, yr := range b.Years {
				w.Write([]string{
					"projection",
					b.Name,
					strconv.Itoa(yr.Age),
					strconv.Itoa(yr.YearOffset),
					yr.Buckets.PreTax.StringFixed(2),
					yr.Buckets.TaxFree.StringFixed(2),
					yr.Buckets.Taxable.StringFixed(2),
					yr.Withdrawal.StringFixed(2),
					yr.RMD.StringFixed(2),
					yr.ReturnRate.String(),
					yr.EndingBalance.StringFixed(2),
					yr.Shortfall.StringFixed(2),
				})
			}
		}
		w.Write([]string{"section", "scenario", "balance_at_retirement", "initial_withdrawal", "final_balance", "sustainability_years"})
		for _, b := range report.Scenarios.Bundles() {
			w.Write([]string{
				"scenario",
				b.Name,
				b.BalanceAtRetirement.StringFixed(2),
				b.InitialWithdrawal.StringFixed(2),
				b.FinalBalance.StringFixed(2),
				b.SustainabilityYears.String(),
			})
		}
	}

	if mc := report.MonteCarlo; mc != nil {
		w.Write([]string{"section", "trials", "success_rate", "p10", "p25", "p50", "p75", "p90", "mean"})
		row := []string{"monte_carlo", strconv.Itoa(mc.Trials), mc.SuccessRate.StringFixed(2)}
		for _, p := range mc.Percentiles.Ordered() {
			row = append(row, p.StringFixed(2))
		}
		w.Write(append(row, mc.MeanEndingBalance.StringFixed(2)))
	}

	if len(report.Amortization) > 0 {
		w.Write([]string{"section", "period", "payment", "interest", "principal", "remaining_balance"})
		for _, r := range report.Amortization {
			w.Write([]string{"amortization", strconv.Itoa(r.Period), r.Payment.StringFixed(2), r.Interest.StringFixed(2), r.Principal.StringFixed(2), r.RemainingBalance.StringFixed(2)})
		}
	}

	if m := report.Mortgage; m != nil {
		w.Write([]string{"section", "monthly_payment", "months", "total_interest", "months_with_extra", "interest_with_extra", "months_saved", "interest_saved"})
		w.Write([]string{
			"mortgage",
			m.Baseline.MonthlyPayment.StringFixed(2),
			strconv.Itoa(m.Baseline.Months),
			m.Baseline.TotalInterest.StringFixed(2),
			strconv.Itoa(m.WithExtra.Months),
			m.WithExtra.TotalInterest.StringFixed(2),
			strconv.Itoa(m.MonthsSaved),
			m.InterestSaved.StringFixed(2),
		})
	}

	if report.Debts != nil {
		w.Write([]string{"section", "strategy", "debt_id", "name", "payoff_month", "total_interest", "total_paid"})
		for _, res := range []*domain.DebtPayoffResult{report.Debts.Avalanche, report.Debts.Snowball} {
			if res == nil {
				continue
			}
			for _, d := range res.Debts {
				w.Write([]string{"debt", string(res.Strategy), d.DebtID, d.Name, strconv.Itoa(d.PayoffMonth), d.TotalInterest.StringFixed(2), d.TotalPaid.StringFixed(2)})
			}
		}
	}

	if s := report.SEPP; s != nil {
		w.Write([]string{"section", "method", "annual", "monthly", "end_age"})
		for _, m := range s.Methods() {
			w.Write([]string{"sepp", string(m.Method), m.Annual.StringFixed(2), m.Monthly.StringFixed(2), strconv.FormatFloat(s.EndAge, 'f', 1, 64)})
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
