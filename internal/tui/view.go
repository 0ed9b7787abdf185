package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/output"
	"github.com/rgehrsitz/nestegg/internal/tui/components"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// View renders the current state
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderApp()
}

func (m Model) renderApp() string {
	var content string
	switch {
	case m.loading:
		content = m.renderLoading()
	case m.plan == nil && m.err != nil:
		content = m.renderError()
	default:
		content = m.renderScene()
	}

	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		m.renderTabs(),
		"",
		content,
		"",
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("NESTEGG Retirement Planner")
	if m.plan != nil && m.plan.Name != "" {
		title += "  " + tuistyles.SubtitleStyle.Render(m.plan.Name)
	}
	return title
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, int(sceneCount))
	for s := range sceneCount {
		label := fmt.Sprintf("%d %s", int(s)+1, s)
		if s == m.scene {
			tabs = append(tabs, tuistyles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, tuistyles.InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderStatusBar() string {
	keys := []string{"tab switch", "s scenario", "r rerun", "q quit"}
	parts := make([]string, len(keys))
	for i, k := range keys {
		key, desc, _ := strings.Cut(k, " ")
		parts[i] = tuistyles.StatusKeyStyle.Render(key) + " " + desc
	}
	status := strings.Join(parts, "  ")
	if m.loadedAt != "" {
		status += "  │  loaded " + m.loadedAt
	}
	if m.err != nil && m.plan != nil {
		status += "  │  " + tuistyles.ErrorStyle.Render(m.err.Error())
	}
	return tuistyles.StatusBarStyle.Render(status)
}

func (m Model) renderLoading() string {
	return m.spinner.View() + " Loading plan " + m.planPath
}

func (m Model) renderError() string {
	return tuistyles.ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" +
		tuistyles.SubtitleStyle.Render("Press q to quit")
}

func (m Model) renderScene() string {
	switch m.scene {
	case SceneProjection:
		return m.renderProjection()
	case SceneMonteCarlo:
		return m.renderMonteCarlo()
	case SceneMortgage:
		return m.renderMortgage()
	case SceneDebts:
		return m.renderDebts()
	case SceneSEPP:
		return m.renderSEPP()
	default:
		return ""
	}
}

func (m Model) chartWidth() int {
	if m.width > 30 {
		return m.width - 4
	}
	return 60
}

func (m Model) renderProjection() string {
	bundle := m.currentBundle()
	if bundle == nil {
		return tuistyles.InfoStyle.Render("No projection available")
	}

	sustain := output.FormatYears(bundle.SustainabilityYears)
	cards := []*components.MetricCard{
		components.NewMetricCard("Scenario", strings.ToUpper(bundle.Name)).
			WithDescription("return " + output.FormatRate(bundle.ReturnRate)),
		components.NewMetricCard("At Retirement", tuistyles.FormatCurrency(bundle.BalanceAtRetirement)),
		components.NewMetricCard("Initial Withdrawal", tuistyles.FormatCurrency(bundle.InitialWithdrawal)),
		components.NewMetricCard("Final Balance", tuistyles.FormatCurrency(bundle.FinalBalance)).
			WithTrend(bundle.FinalBalance.IsPositive(), sustain),
	}

	chart := components.NewBalanceChart("Balance by age").WithSize(m.chartWidth(), 12)
	scenarios := m.results.Scenarios
	colors := []lipgloss.Color{tuistyles.ColorChartLine1, tuistyles.ColorChartLine2, tuistyles.ColorChartLine3}
	for i, b := range scenarios.Bundles() {
		chart.AddSeries(b.Name, endingBalances(b.Years), colors[i])
	}
	if n := len(bundle.Years); n > 0 {
		chart.WithLabels([]string{
			"age " + strconv.Itoa(bundle.Years[0].Age),
			"age " + strconv.Itoa(bundle.Years[n-1].Age),
		})
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		components.MetricGrid(cards, 4),
		chart.Render(),
		"",
		m.yearTable(bundle.Years),
	)
}

func endingBalances(years []domain.YearRecord) []float64 {
	points := make([]float64, len(years))
	for i, yr := range years {
		points[i] = yr.EndingBalance.InexactFloat64()
	}
	return points
}

func (m Model) yearTable(years []domain.YearRecord) string {
	columns := []table.Column{
		{Title: "Age", Width: 5},
		{Title: "Return", Width: 8},
		{Title: "Withdrawal", Width: 14},
		{Title: "RMD", Width: 12},
		{Title: "Balance", Width: 16},
	}
	rows := make([]table.Row, 0, len(years))
	for _, yr := range years {
		if !yr.IsRetired {
			continue
		}
		balance := output.FormatCurrency(yr.EndingBalance)
		if yr.IsDepleted() {
			balance += " !"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(yr.Age),
			output.FormatRate(yr.ReturnRate),
			output.FormatCurrency(yr.Withdrawal),
			output.FormatCurrency(yr.RMD),
			balance,
		})
	}

	height := m.height - 32
	if height < 5 {
		height = 5
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(tuistyles.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)
	return t.View()
}

func (m Model) renderMonteCarlo() string {
	header := fmt.Sprintf("seed %d", m.mcSeed)
	if m.mcRunning {
		return m.spinner.View() + " Running simulation (" + header + ")"
	}
	mc := m.monteCarlo
	if mc == nil {
		return tuistyles.InfoStyle.Render("No simulation results")
	}

	success := mc.SuccessRate.GreaterThanOrEqual(decimal.NewFromInt(90))
	cards := []*components.MetricCard{
		components.NewMetricCard("Success Rate", output.FormatPercentage(mc.SuccessRate)).
			WithTrend(success, fmt.Sprintf("%d depleted", mc.DepletedTrials)),
		components.NewMetricCard("Trials", strconv.Itoa(mc.Trials)).WithDescription(header),
		components.NewMetricCard("Mean Ending", tuistyles.FormatCurrency(mc.MeanEndingBalance)),
	}

	labels := []string{"P10", "P25", "P50", "P75", "P90"}
	percentiles := make([]*components.MetricCard, len(labels))
	for i, v := range mc.Percentiles.Ordered() {
		percentiles[i] = components.NewMetricCard(labels[i], tuistyles.FormatCurrency(v)).WithWidth(14)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		components.MetricGrid(cards, 3),
		tuistyles.SubtitleStyle.Render("Ending balance percentiles"),
		components.MetricGrid(percentiles, 5),
	)
}

func (m Model) renderMortgage() string {
	impact := m.results.Mortgage
	if impact == nil {
		return tuistyles.InfoStyle.Render("No mortgage in plan")
	}
	cards := []*components.MetricCard{
		components.NewMetricCard("Monthly Payment", output.FormatCurrency(impact.Baseline.MonthlyPayment)).
			WithDescription(fmt.Sprintf("%d months", impact.Baseline.Months)),
		components.NewMetricCard("Total Interest", output.FormatCurrency(impact.Baseline.TotalInterest)),
		components.NewMetricCard("With Extra", fmt.Sprintf("%d months", impact.WithExtra.Months)).
			WithTrend(impact.MonthsSaved > 0, fmt.Sprintf("%d months saved", impact.MonthsSaved)),
		components.NewMetricCard("Interest Saved", output.FormatCurrency(impact.InterestSaved)).
			WithTrend(impact.InterestSaved.IsPositive(), output.FormatCurrency(impact.WithExtra.TotalInterest)+" paid"),
	}
	return components.MetricGrid(cards, 4)
}

func (m Model) renderDebts() string {
	cmp := m.results.Debts
	if cmp == nil {
		return tuistyles.InfoStyle.Render("No debts in plan")
	}
	preferred := m.plan.Strategy()
	var cols []string
	for _, r := range []*domain.DebtPayoffResult{cmp.Avalanche, cmp.Snowball} {
		title := strings.ToUpper(string(r.Strategy))
		if r.Strategy == preferred {
			title += " *"
		}
		card := components.NewMetricCard(title, fmt.Sprintf("%d months", r.Months)).
			WithDescription("interest " + output.FormatCurrency(r.TotalInterest) + "\n" + strings.Join(r.PayoffOrder, " -> ")).
			WithWidth(36)
		cols = append(cols, card.Render())
	}
	summary := components.NewMetricCard("Avalanche saves", output.FormatCurrency(cmp.InterestSaved)).
		WithTrend(cmp.InterestSaved.IsPositive(), fmt.Sprintf("%d months", cmp.MonthsSaved)).
		WithWidth(36)
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cols...),
		summary.Render(),
	)
}

func (m Model) renderSEPP() string {
	sepp := m.results.SEPP
	if sepp == nil {
		return tuistyles.InfoStyle.Render("No 72(t) plan")
	}
	names := map[domain.SEPPMethod]string{
		domain.SEPPLifeExpectancy:     "Life Expectancy",
		domain.SEPPFixedAmortization:  "Amortization",
		domain.SEPPFixedAnnuitization: "Annuitization",
	}
	cards := make([]*components.MetricCard, 0, 3)
	for _, w := range sepp.Methods() {
		cards = append(cards, components.NewMetricCard(names[w.Method], output.FormatCurrency(w.Annual)).
			WithDescription(output.FormatCurrency(w.Monthly)+" / month"))
	}
	header := fmt.Sprintf("Balance %s  age %d  rate %s  ends at %.1f",
		output.FormatCurrency(sepp.Balance), sepp.Age, output.FormatRate(sepp.InterestRate), sepp.EndAge)
	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.SubtitleStyle.Render(header),
		components.MetricGrid(cards, 3),
	)
}
