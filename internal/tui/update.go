package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		if !m.loading && !m.mcRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PlanLoadedMsg:
		m.plan = msg.Plan
		m.results = msg.Results
		m.loadedAt = msg.LoadedAt
		m.loading = false
		m.err = nil
		return m, m.startMonteCarlo(m.mcSeed)

	case MonteCarloStartedMsg:
		return m, m.spinner.Tick

	case MonteCarloCompleteMsg:
		if msg.Seed != m.mcSeed {
			// superseded by a newer run
			return m, nil
		}
		m.mcRunning = false
		m.cancel = nil
		if msg.Err != nil {
			if !errors.Is(msg.Err, context.Canceled) {
				m.err = msg.Err
			}
			return m, nil
		}
		m.monteCarlo = msg.Result
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	case "tab", "right", "l":
		m.scene = (m.scene + 1) % sceneCount
	case "shift+tab", "left", "h":
		m.scene = (m.scene + sceneCount - 1) % sceneCount
	case "1", "2", "3", "4", "5":
		m.scene = Scene(msg.String()[0] - '1')
	case "s":
		if m.scene == SceneProjection {
			m.scenarioIndex = (m.scenarioIndex + 1) % 3
		}
	case "r":
		if m.plan != nil {
			m.err = nil
			return m, m.startMonteCarlo(m.mcSeed + 1)
		}
	case "esc":
		m.err = nil
	}
	return m, nil
}
