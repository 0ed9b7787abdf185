package tui

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/config"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

// Options configures the dashboard
type Options struct {
	Seed    int64
	Workers int
	Logger  calculation.Logger
}

// Results holds everything computed from a plan
type Results struct {
	Scenarios *domain.ScenarioResult
	Mortgage  *domain.ExtraPaymentImpact
	Debts     *domain.StrategyComparison
	SEPP      *domain.SEPPResult
}

// Model is the root dashboard model
type Model struct {
	planPath string
	options  Options

	plan       *domain.Plan
	results    Results
	monteCarlo *domain.MonteCarloResult
	mcSeed     int64
	mcRunning  bool
	cancel     context.CancelFunc

	scene         Scene
	scenarioIndex int
	spinner       spinner.Model

	width    int
	height   int
	ready    bool
	loading  bool
	loadedAt string
	err      error
}

// NewModel creates a dashboard for the plan at planPath
func NewModel(planPath string, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = tuistyles.InfoStyle
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return Model{
		planPath:      planPath,
		options:       opts,
		mcSeed:        opts.Seed,
		scene:         SceneProjection,
		scenarioIndex: 1,
		spinner:       s,
		loading:       true,
	}
}

// Init loads the plan
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadPlanCmd(m.planPath, m.options.Logger))
}

func loadPlanCmd(path string, logger calculation.Logger) tea.Cmd {
	return func() tea.Msg {
		plan, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load plan: %w", err)}
		}
		results, err := computeResults(plan, logger)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return PlanLoadedMsg{Plan: plan, Results: results, LoadedAt: time.Now().Format("15:04:05")}
	}
}

func computeResults(plan *domain.Plan, logger calculation.Logger) (Results, error) {
	projector := calculation.NewProjector()
	projector.SetLogger(logger)

	results := Results{Scenarios: projector.ProjectScenarios(plan.Assumptions)}
	if plan.Mortgage != nil {
		impact := calculation.CompareExtraPayment(*plan.Mortgage)
		results.Mortgage = &impact
	}
	if plan.HasDebts() {
		comparison, err := calculation.CompareDebtStrategies(plan.Debts, plan.DebtBudget)
		if err != nil {
			return Results{}, fmt.Errorf("failed to plan debt payoff: %w", err)
		}
		results.Debts = comparison
	}
	if plan.SEPP != nil {
		results.SEPP = calculation.CalculateSEPP(plan.SEPP.Balance, plan.SEPP.Age, plan.SEPP.InterestRate)
	}
	return results, nil
}

// startMonteCarlo cancels any running simulation and starts a new one
func (m *Model) startMonteCarlo(seed int64) tea.Cmd {
	if m.plan == nil {
		return nil
	}
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.mcSeed = seed
	m.mcRunning = true

	engine := calculation.NewMonteCarloEngine(rand.NewSource(seed),
		calculation.WithWorkers(m.options.Workers),
		calculation.WithLogger(m.options.Logger))
	assumptions := m.plan.Assumptions

	return tea.Batch(
		func() tea.Msg { return MonteCarloStartedMsg{Seed: seed} },
		func() tea.Msg {
			result, err := engine.Run(ctx, assumptions)
			return MonteCarloCompleteMsg{Seed: seed, Result: result, Err: err}
		},
	)
}

// Scene returns the active tab
func (m Model) Scene() Scene {
	return m.scene
}

// Plan returns the loaded plan, if any
func (m Model) Plan() *domain.Plan {
	return m.plan
}

// MonteCarlo returns the latest simulation result
func (m Model) MonteCarlo() *domain.MonteCarloResult {
	return m.monteCarlo
}

// Err returns the last error shown to the user
func (m Model) Err() error {
	return m.err
}

func (m Model) currentBundle() *domain.ScenarioBundle {
	if m.results.Scenarios == nil {
		return nil
	}
	bundles := m.results.Scenarios.Bundles()
	b := bundles[m.scenarioIndex%len(bundles)]
	return &b
}
