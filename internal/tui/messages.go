package tui

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
)

// Scene identifies one tab of the dashboard
type Scene int

const (
	SceneProjection Scene = iota
	SceneMonteCarlo
	SceneMortgage
	SceneDebts
	SceneSEPP
	sceneCount
)

func (s Scene) String() string {
	switch s {
	case SceneProjection:
		return "Projection"
	case SceneMonteCarlo:
		return "Monte Carlo"
	case SceneMortgage:
		return "Mortgage"
	case SceneDebts:
		return "Debts"
	case SceneSEPP:
		return "72(t)"
	default:
		return "Unknown"
	}
}

// PlanLoadedMsg carries a parsed plan plus the deterministic results
type PlanLoadedMsg struct {
	Plan     *domain.Plan
	Results  Results
	LoadedAt string
}

// MonteCarloStartedMsg is sent when a simulation is kicked off
type MonteCarloStartedMsg struct {
	Seed int64
}

// MonteCarloCompleteMsg carries the simulation outcome
type MonteCarloCompleteMsg struct {
	Seed   int64
	Result *domain.MonteCarloResult
	Err    error
}

// ErrorMsg reports a failure outside the simulation
type ErrorMsg struct {
	Err error
}
