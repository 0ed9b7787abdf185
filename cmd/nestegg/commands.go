package main

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func projectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "project [plan-file]",
		Short: "Project optimistic, expected and pessimistic scenarios for a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}

			projector := calculation.NewProjector()
			projector.SetLogger(a.engineLogger())
			report := &output.Report{
				PlanName:    plan.Name,
				Assumptions: &plan.Assumptions,
				Scenarios:   projector.ProjectScenarios(plan.Assumptions),
			}
			if plan.Mortgage != nil {
				impact := calculation.CompareExtraPayment(*plan.Mortgage)
				report.Mortgage = &impact
			}
			if plan.HasDebts() {
				cmp, err := calculation.CompareDebtStrategies(plan.Debts, plan.DebtBudget)
				if err != nil {
					return fmt.Errorf("debt payoff: %w", err)
				}
				report.Debts = cmp
			}
			if plan.SEPP != nil {
				report.SEPP = calculation.CalculateSEPP(plan.SEPP.Balance, plan.SEPP.Age, plan.SEPP.InterestRate)
			}
			return a.render(cmd.OutOrStdout(), report)
		},
	}
}

func monteCarloCmd(a *app) *cobra.Command {
	var trials int
	cmd := &cobra.Command{
		Use:   "montecarlo [plan-file]",
		Short: "Run a Monte Carlo simulation of a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			if trials > 0 {
				plan.Assumptions.MonteCarloTrials = trials
			}

			seed := a.settings.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			a.log.Info().
				Int64("seed", seed).
				Int("workers", a.settings.Workers).
				Int("trials", plan.Assumptions.MonteCarloTrials).
				Msg("starting simulation")

			engine := calculation.NewMonteCarloEngine(rand.NewSource(seed),
				calculation.WithWorkers(a.settings.Workers),
				calculation.WithLogger(a.engineLogger()))
			start := time.Now()
			result, err := engine.Run(cmd.Context(), plan.Assumptions)
			if err != nil {
				return fmt.Errorf("simulation aborted: %w", err)
			}
			a.log.Info().Dur("elapsed", time.Since(start)).Msg("simulation complete")

			return a.render(cmd.OutOrStdout(), &output.Report{
				PlanName:    plan.Name,
				Assumptions: &plan.Assumptions,
				MonteCarlo:  result,
			})
		},
	}
	cmd.Flags().IntVarP(&trials, "trials", "n", 0, "Override the plan's trial count")
	return cmd
}

func mortgageCmd(a *app) *cobra.Command {
	var (
		principal, rate, extra float64
		term                   int
		schedule               bool
	)
	cmd := &cobra.Command{
		Use:   "mortgage [plan-file]",
		Short: "Amortize a mortgage and measure the effect of extra payments",
		Long: `Amortize the mortgage section of a plan file, or the loan described by flags
when no plan is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := domain.MortgageInput{
				Principal:    decimal.NewFromFloat(principal),
				AnnualRate:   decimal.NewFromFloat(rate),
				TermYears:    term,
				ExtraMonthly: decimal.NewFromFloat(extra),
			}
			report := &output.Report{}
			if len(args) == 1 {
				plan, err := a.loadPlan(args[0])
				if err != nil {
					return err
				}
				if plan.Mortgage == nil {
					return fmt.Errorf("plan %s has no mortgage section", args[0])
				}
				input = *plan.Mortgage
				report.PlanName = plan.Name
			}

			impact := calculation.CompareExtraPayment(input)
			report.Mortgage = &impact
			if schedule {
				a.settings.Verbose = true
				report.Amortization = slices.Collect(calculation.AmortizationSchedule(
					input.Principal, input.AnnualRate, input.TermYears, input.ExtraMonthly))
			}
			return a.render(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().Float64Var(&principal, "principal", 0, "Loan principal")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Annual interest rate as a fraction (0.065)")
	cmd.Flags().IntVar(&term, "term", 30, "Term in years")
	cmd.Flags().Float64Var(&extra, "extra", 0, "Extra principal paid each month")
	cmd.Flags().BoolVar(&schedule, "schedule", false, "Include the full amortization schedule")
	return cmd
}

func debtCmd(a *app) *cobra.Command {
	var budget float64
	cmd := &cobra.Command{
		Use:   "debt [plan-file]",
		Short: "Compare avalanche and snowball payoff of a plan's debts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			if !plan.HasDebts() {
				return fmt.Errorf("plan %s lists no debts", args[0])
			}
			monthly := plan.DebtBudget
			if budget > 0 {
				monthly = decimal.NewFromFloat(budget)
			}

			cmp, err := calculation.CompareDebtStrategies(plan.Debts, monthly)
			if errors.Is(err, calculation.ErrInsufficientPayment) {
				return fmt.Errorf("monthly budget cannot retire these debts: %w", err)
			}
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), &output.Report{PlanName: plan.Name, Debts: cmp})
		},
	}
	cmd.Flags().Float64Var(&budget, "budget", 0, "Override the plan's monthly debt budget")
	return cmd
}

func seppCmd(a *app) *cobra.Command {
	var (
		balance, rate float64
		age           int
	)
	cmd := &cobra.Command{
		Use:   "sepp [plan-file]",
		Short: "Calculate 72(t) substantially equal periodic payments",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := domain.SEPPInput{
				Balance:      decimal.NewFromFloat(balance),
				Age:          age,
				InterestRate: decimal.NewFromFloat(rate),
			}
			report := &output.Report{}
			if len(args) == 1 {
				plan, err := a.loadPlan(args[0])
				if err != nil {
					return err
				}
				if plan.SEPP == nil {
					return fmt.Errorf("plan %s has no sepp section", args[0])
				}
				input = *plan.SEPP
				report.PlanName = plan.Name
			}
			report.SEPP = calculation.CalculateSEPP(input.Balance, input.Age, input.InterestRate)
			return a.render(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().Float64Var(&balance, "balance", 0, "Account balance")
	cmd.Flags().IntVar(&age, "age", 50, "Age when distributions start")
	cmd.Flags().Float64Var(&rate, "rate", 0.05, "Reasonable interest rate as a fraction")
	return cmd
}

func rmdCmd(a *app) *cobra.Command {
	var (
		birthYear, age, beneficiaryAge, elapsed int
		balance                                 float64
		inherited                               bool
	)
	cmd := &cobra.Command{
		Use:   "rmd",
		Short: "Calculate a required minimum distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bal := decimal.NewFromFloat(balance)
			out := cmd.OutOrStdout()

			if inherited {
				amount := calculation.InheritedDistribution(beneficiaryAge, elapsed, bal)
				fmt.Fprintf(out, "Inherited distribution (beneficiary age %d, year %d): %s\n",
					beneficiaryAge, elapsed+1, output.FormatCurrency(amount.Round(2)))
				return nil
			}

			rc := calculation.NewRMDCalculator(birthYear)
			amount := rc.CalculateRMD(bal, age)
			fmt.Fprintf(out, "RMD start age: %d\n", rc.StartAge())
			if age < rc.StartAge() {
				fmt.Fprintf(out, "No distribution required at age %d\n", age)
				return nil
			}
			fmt.Fprintf(out, "Required distribution at age %d: %s\n", age, output.FormatCurrency(amount.Round(2)))
			return nil
		},
	}
	cmd.Flags().IntVar(&birthYear, "birth-year", 1955, "Owner birth year")
	cmd.Flags().IntVar(&age, "age", 75, "Owner age at the end of the distribution year")
	cmd.Flags().Float64Var(&balance, "balance", 0, "Prior year-end pre-tax balance")
	cmd.Flags().BoolVar(&inherited, "inherited", false, "Calculate an inherited account distribution instead")
	cmd.Flags().IntVar(&beneficiaryAge, "beneficiary-age", 50, "Beneficiary age in the first distribution year")
	cmd.Flags().IntVar(&elapsed, "years-elapsed", 0, "Distribution years already taken")
	return cmd
}

func yearsLastCmd(a *app) *cobra.Command {
	var balance, withdrawal, growth, inflation float64
	cmd := &cobra.Command{
		Use:   "years-last",
		Short: "Estimate how long a balance sustains an inflating withdrawal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			years := calculation.YearsLast(
				decimal.NewFromFloat(balance),
				decimal.NewFromFloat(withdrawal),
				decimal.NewFromFloat(growth),
				decimal.NewFromFloat(inflation))
			a.log.Debug().Float64("years", float64(years)).Msg("sustainability estimated")
			fmt.Fprintf(cmd.OutOrStdout(), "%s withdrawing %s: %s\n",
				output.FormatCurrency(decimal.NewFromFloat(balance)),
				output.FormatCurrency(decimal.NewFromFloat(withdrawal)),
				output.FormatYears(years))
			return nil
		},
	}
	cmd.Flags().Float64Var(&balance, "balance", 0, "Starting balance")
	cmd.Flags().Float64Var(&withdrawal, "withdrawal", 0, "First-year withdrawal")
	cmd.Flags().Float64Var(&growth, "growth", 0.05, "Annual growth rate as a fraction")
	cmd.Flags().Float64Var(&inflation, "inflation", 0.03, "Annual withdrawal inflation as a fraction")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan-file]",
		Short: "Validate a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.loadPlan(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan file %s is valid\n", args[0])
			return nil
		},
	}
}
