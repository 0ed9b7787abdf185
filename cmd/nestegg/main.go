package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/config"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/logging"
	"github.com/rgehrsitz/nestegg/internal/output"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds state shared by every subcommand once settings are loaded
type app struct {
	settingsFile string
	save         bool

	settings *config.Settings
	log      zerolog.Logger
}

func (a *app) engineLogger() calculation.Logger {
	return logging.Adapter{Log: a.log}
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "nestegg",
		Short: "Retirement projection calculator",
		Long: `Project retirement savings, stress them with Monte Carlo simulation and
work through the supporting calculations: mortgage amortization, debt payoff,
72(t) distributions and required minimum distributions.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(a.settingsFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := logging.New(cmd.ErrOrStderr(), settings.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			a.settings = settings
			a.log = logger
			a.log.Debug().
				Str("format", settings.Format).
				Int("workers", settings.Workers).
				Int64("seed", settings.Seed).
				Msg("settings loaded")
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.settingsFile, "settings", "", "Path to a YAML settings file")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringP("format", "f", "console", "Output format (console, json, csv)")
	flags.Int("workers", 0, "Monte Carlo worker count (default GOMAXPROCS)")
	flags.Int64("seed", 0, "Monte Carlo seed (0 picks one from the clock)")
	flags.BoolP("verbose", "v", false, "Verbose console output")
	flags.BoolVar(&a.save, "save", false, "Also write the report to a timestamped file")

	root.AddCommand(
		projectCmd(a),
		monteCarloCmd(a),
		mortgageCmd(a),
		debtCmd(a),
		seppCmd(a),
		rmdCmd(a),
		yearsLastCmd(a),
		compareCmd(a),
		solveCmd(a),
		validateCmd(a),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nestegg %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// loadPlan parses and validates a plan file
func (a *app) loadPlan(path string) (*domain.Plan, error) {
	plan, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	a.log.Debug().Str("plan", path).Str("name", plan.Name).Msg("plan loaded")
	return plan, nil
}

// render writes the report in the configured format, and to a file with --save
func (a *app) render(w io.Writer, report *output.Report) error {
	name := a.settings.Format
	if name == "console" && a.settings.Verbose {
		name = "console-verbose"
	}
	formatter := output.GetFormatterByName(name)
	if formatter == nil {
		return fmt.Errorf("unknown output format %q (available: %v)", name, output.AvailableFormatterNames())
	}

	data, err := formatter.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}

	if a.save {
		ext := a.settings.Format
		if ext == "console" {
			ext = "txt"
		}
		filename, err := output.WriteFormatted(formatter, report, ext)
		if err != nil {
			return err
		}
		a.log.Info().Str("file", filename).Msg("report saved")
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
