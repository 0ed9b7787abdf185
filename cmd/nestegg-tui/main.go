package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/config"
	"github.com/rgehrsitz/nestegg/internal/logging"
	"github.com/rgehrsitz/nestegg/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: nestegg-tui <plan-file>")
		os.Exit(1)
	}
	planPath := os.Args[1]

	if _, err := os.Stat(planPath); os.IsNotExist(err) {
		fmt.Printf("Error: plan file not found: %s\n", planPath)
		os.Exit(1)
	}

	// seed, workers and log level come from NESTEGG_* variables
	settings, err := config.LoadSettings(os.Getenv(config.EnvPrefix+"_SETTINGS"), nil)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	opts := tui.Options{Seed: settings.Seed, Workers: settings.Workers}
	if settings.LogLevel == "debug" {
		// the alternate screen owns stdout, so engine logs go to a file
		f, err := tea.LogToFile("nestegg-tui.log", "")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger, _ := logging.New(f, settings.LogLevel)
		opts.Logger = logging.Adapter{Log: logger}
	} else {
		opts.Logger = calculation.NopLogger{}
	}

	p := tea.NewProgram(
		tui.NewModel(planPath, opts),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
