package transform

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// AssumptionTransform defines the interface for all assumption transformations.
// Transforms are composable operations that modify a plan's assumptions in
// predictable ways, enabling scenario comparison and break-even solving.
type AssumptionTransform interface {
	// Apply returns a modified copy of base. base itself is never changed.
	Apply(base domain.RetirementAssumptions) (domain.RetirementAssumptions, error)

	// Name returns a short identifier for this transform (e.g., "postpone_retirement").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform can be applied to base without applying it.
	Validate(base domain.RetirementAssumptions) error
}

// ApplyTransforms applies a sequence of transforms to base.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base domain.RetirementAssumptions, transforms []AssumptionTransform) (domain.RetirementAssumptions, error) {
	current := Clone(base)

	for i, transform := range transforms {
		if transform == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := transform.Validate(current); err != nil {
			return base, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}
		next, err := transform.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	return current, nil
}

// Clone returns a copy of a that shares no mutable state with it
func Clone(a domain.RetirementAssumptions) domain.RetirementAssumptions {
	if a.Sequencing != nil {
		seq := *a.Sequencing
		seq.CustomSequence = append([]string(nil), a.Sequencing.CustomSequence...)
		a.Sequencing = &seq
	}
	return a
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
