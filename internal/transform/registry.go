package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (AssumptionTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("postpone_retirement", createPostponeRetirement)
	registry.Register("set_retirement_age", createSetRetirementAge)
	registry.Register("adjust_withdrawal_rate", createAdjustWithdrawalRate)
	registry.Register("change_sequencing", createChangeSequencing)
	registry.Register("shift_returns", createShiftReturns)
	registry.Register("set_inflation", createSetInflation)
	registry.Register("scale_contributions", createScaleContributions)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (AssumptionTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec builds a transform from "name:key=value,key=value".
// Example: "postpone_retirement:years=2"
func (r *TransformRegistry) ParseTransformSpec(spec string) (AssumptionTransform, error) {
	name, paramsStr, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if paramsStr = strings.TrimSpace(paramsStr); paramsStr != "" {
		for _, pair := range strings.Split(paramsStr, ",") {
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", pair)
			}
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	return r.Create(strings.TrimSpace(name), params)
}

func requireParam(params map[string]string, transform, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s requires parameter %q", transform, key)
	}
	return v, nil
}

func intParam(params map[string]string, transform, key string) (int, error) {
	v, err := requireParam(params, transform, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid %s %q: %w", transform, key, v, err)
	}
	return n, nil
}

func decimalParam(params map[string]string, transform, key string) (decimal.Decimal, error) {
	v, err := requireParam(params, transform, key)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: invalid %s %q: %w", transform, key, v, err)
	}
	return d, nil
}

// Factory functions for each transform

func createPostponeRetirement(params map[string]string) (AssumptionTransform, error) {
	years, err := intParam(params, "postpone_retirement", "years")
	if err != nil {
		return nil, err
	}
	return &PostponeRetirement{Years: years}, nil
}

func createSetRetirementAge(params map[string]string) (AssumptionTransform, error) {
	age, err := intParam(params, "set_retirement_age", "age")
	if err != nil {
		return nil, err
	}
	return &SetRetirementAge{Age: age}, nil
}

func createAdjustWithdrawalRate(params map[string]string) (AssumptionTransform, error) {
	rate, err := decimalParam(params, "adjust_withdrawal_rate", "rate")
	if err != nil {
		return nil, err
	}
	return &AdjustWithdrawalRate{Rate: rate}, nil
}

func createChangeSequencing(params map[string]string) (AssumptionTransform, error) {
	strategy, err := requireParam(params, "change_sequencing", "strategy")
	if err != nil {
		return nil, err
	}
	t := &ChangeSequencing{Strategy: strategy}
	// sequence uses "|" since "," separates parameters
	if seq := params["sequence"]; seq != "" {
		t.Sequence = strings.Split(seq, "|")
	}
	return t, nil
}

func createShiftReturns(params map[string]string) (AssumptionTransform, error) {
	delta, err := decimalParam(params, "shift_returns", "delta")
	if err != nil {
		return nil, err
	}
	return &ShiftReturns{Delta: delta}, nil
}

func createSetInflation(params map[string]string) (AssumptionTransform, error) {
	rate, err := decimalParam(params, "set_inflation", "rate")
	if err != nil {
		return nil, err
	}
	return &SetInflation{Rate: rate}, nil
}

func createScaleContributions(params map[string]string) (AssumptionTransform, error) {
	factor, err := decimalParam(params, "scale_contributions", "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleContributions{Factor: factor}, nil
}
