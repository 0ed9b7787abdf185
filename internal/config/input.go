package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of plan files
type InputParser struct {
	validate *validator.Validate
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	v := validator.New(validator.WithRequiredStructEnabled())
	// decimals validate as float64 so numeric tags (gte, lte) apply
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &InputParser{validate: v}
}

// LoadFromFile loads a plan from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a plan document
func (ip *InputParser) Parse(data []byte) (*domain.Plan, error) {
	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	assignDebtIDs(plan.Debts)

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	applyBirthYear(&plan)
	return &plan, nil
}

// ValidatePlan validates struct tags and the cross-field rules tags cannot express
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	if err := ip.validate.Struct(plan); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return describeValidationErrors(verrs)
		}
		return err
	}
	if err := ip.validateSequencing(plan.Assumptions.Sequencing); err != nil {
		return fmt.Errorf("withdrawal sequencing validation failed: %w", err)
	}
	if err := ip.validateDebts(plan); err != nil {
		return fmt.Errorf("debt validation failed: %w", err)
	}
	return nil
}

func (ip *InputParser) validateSequencing(cfg *domain.WithdrawalSequencingConfig) error {
	if cfg == nil {
		return nil
	}
	if cfg.Strategy == "custom" && len(cfg.CustomSequence) == 0 {
		return fmt.Errorf("custom strategy requires custom_sequence")
	}
	seen := make(map[string]bool, len(cfg.CustomSequence))
	for _, src := range cfg.CustomSequence {
		if seen[src] {
			return fmt.Errorf("source %q listed more than once", src)
		}
		seen[src] = true
	}
	return nil
}

func (ip *InputParser) validateDebts(plan *domain.Plan) error {
	if !plan.HasDebts() {
		return nil
	}
	ids := make(map[string]bool, len(plan.Debts))
	for i, d := range plan.Debts {
		if ids[d.ID] {
			return fmt.Errorf("debt %d (%s): duplicate id %q", i, d.Name, d.ID)
		}
		ids[d.ID] = true
		if d.Balance.GreaterThan(decimal.Zero) && d.MinimumPayment.IsZero() {
			return fmt.Errorf("debt %d (%s): minimum payment is required for an open balance", i, d.Name)
		}
	}
	if plan.DebtBudget.IsZero() {
		return fmt.Errorf("debt_budget is required when debts are listed")
	}
	return nil
}

// assignDebtIDs gives every debt without an id a random one
func assignDebtIDs(debts []domain.Debt) {
	for i := range debts {
		if debts[i].ID == "" {
			debts[i].ID = uuid.NewString()
		}
	}
}

// applyBirthYear derives the RMD start age from the birth year unless the plan sets one
func applyBirthYear(plan *domain.Plan) {
	if plan.BirthYear != 0 && plan.Assumptions.RMDStartAge == 0 {
		plan.Assumptions.RMDStartAge = domain.RMDStartAge(plan.BirthYear)
	}
}

func describeValidationErrors(verrs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Plan.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
