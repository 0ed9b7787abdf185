package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/nestegg/internal/breakeven"
	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/compare"
	"github.com/rgehrsitz/nestegg/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var defaultTemplates = []string{"postpone_2yr", "swr_3pct", "conservative"}

func compareCmd(a *app) *cobra.Command {
	var (
		templates     []string
		specs         []string
		listTemplates bool
	)
	cmd := &cobra.Command{
		Use:   "compare [plan-file]",
		Short: "Compare a plan against what-if variations of its assumptions",
		Long: `Compare projects the plan's expected scenario alongside variations built
from named templates (--with) or ad hoc transforms (--transform name:key=value).`,
		Example: `  nestegg compare plan.yaml --with postpone_2yr,swr_3pct
  nestegg compare plan.yaml --transform shift_returns:delta=-0.02 --transform set_inflation:rate=0.04
  nestegg compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			registry := transform.CreateBuiltInTemplates()
			if listTemplates {
				for _, name := range registry.List() {
					tmpl, _ := registry.Get(name)
					fmt.Fprintf(w, "%-18s %s\n", name, tmpl.Description)
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("a plan file is required")
			}

			plan, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}

			projector := calculation.NewProjector()
			projector.SetLogger(a.engineLogger())
			engine := compare.NewCompareEngine(projector)

			if len(templates) == 0 && len(specs) == 0 {
				templates = defaultTemplates
			}
			var alternatives []compare.Alternative
			for _, name := range templates {
				tmpl, ok := registry.Get(name)
				if !ok {
					return fmt.Errorf("unknown template %q (see --list-templates)", name)
				}
				alternatives = append(alternatives, compare.Alternative{
					Name:        tmpl.Name,
					Description: tmpl.Description,
					Transforms:  tmpl.Transforms,
				})
			}
			if len(specs) > 0 {
				custom, err := customAlternative(specs)
				if err != nil {
					return err
				}
				alternatives = append(alternatives, custom)
			}

			set, err := engine.CompareAlternatives(cmd.Context(), plan, alternatives)
			if err != nil {
				return err
			}
			set.ConfigPath = args[0]
			a.log.Debug().Int("alternatives", len(alternatives)).Msg("comparison complete")

			var out string
			switch a.settings.Format {
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(set)
			default:
				out = (&compare.TableFormatter{}).Format(set)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(w, out)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&templates, "with", nil, "Comma-separated template names to compare")
	cmd.Flags().StringArrayVar(&specs, "transform", nil, "Transform spec applied to a custom alternative (repeatable)")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List the built-in templates and exit")
	return cmd
}

// customAlternative combines ad hoc transform specs into one alternative
func customAlternative(specs []string) (compare.Alternative, error) {
	registry := transform.NewTransformRegistry()
	alt := compare.Alternative{Name: "custom"}
	descriptions := make([]string, 0, len(specs))
	for _, spec := range specs {
		t, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return alt, fmt.Errorf("transform %q: %w", spec, err)
		}
		alt.Transforms = append(alt.Transforms, t)
		descriptions = append(descriptions, t.Description())
	}
	alt.Description = strings.Join(descriptions, "; ")
	return alt, nil
}

func solveCmd(a *app) *cobra.Command {
	var (
		target   string
		minFinal float64
		maxRate  float64
	)
	cmd := &cobra.Command{
		Use:   "solve [plan-file]",
		Short: "Solve for the withdrawal rate or retirement age at which a plan breaks even",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}

			constraints := breakeven.DefaultConstraints()
			constraints.MinFinalBalance = decimal.NewFromFloat(minFinal)
			if maxRate > 0 {
				hi := decimal.NewFromFloat(maxRate)
				constraints.MaxWithdrawalRate = &hi
			}

			projector := calculation.NewProjector()
			projector.SetLogger(a.engineLogger())
			solver := breakeven.NewDefaultSolver(projector)

			var v any
			table := &breakeven.TableFormatter{}
			text := ""
			switch t := breakeven.OptimizationTarget(target); t {
			case breakeven.OptimizeAll:
				multi, err := solver.OptimizeMultiDimensional(cmd.Context(), plan.Assumptions, constraints)
				if err != nil {
					return err
				}
				v, text = multi, table.FormatMulti(multi)
			default:
				result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
					Assumptions: plan.Assumptions,
					Target:      t,
					Constraints: constraints,
				})
				if err != nil {
					return err
				}
				a.log.Debug().Int("iterations", result.Iterations).Str("info", result.ConvergenceInfo).Msg("solver finished")
				v, text = result, table.Format(result)
			}

			if a.settings.Format == "json" {
				if text, err = (&breakeven.JSONFormatter{Pretty: true}).Format(v); err != nil {
					return err
				}
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().StringVar(&target, "target", string(breakeven.OptimizeAll), "What to solve for (withdrawal_rate, retirement_age, all)")
	cmd.Flags().Float64Var(&minFinal, "min-final", 0, "Balance the plan must still hold at life expectancy")
	cmd.Flags().Float64Var(&maxRate, "max-rate", 0, "Upper bound for the withdrawal rate search (default 15%)")
	return cmd
}
