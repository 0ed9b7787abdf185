package transform

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// PostponeRetirement moves the retirement age by a number of years.
// Negative values retire earlier. This is the "work one more year" lever.
type PostponeRetirement struct {
	Years int
}

func (pr *PostponeRetirement) Name() string {
	return "postpone_retirement"
}

func (pr *PostponeRetirement) Description() string {
	if pr.Years < 0 {
		return fmt.Sprintf("Retire %d years earlier", -pr.Years)
	}
	return fmt.Sprintf("Postpone retirement by %d years", pr.Years)
}

func (pr *PostponeRetirement) Validate(base domain.RetirementAssumptions) error {
	return validateRetirementAge(pr.Name(), base, base.RetirementAge+pr.Years)
}

func (pr *PostponeRetirement) Apply(base domain.RetirementAssumptions) (domain.RetirementAssumptions, error) {
	modified := Clone(base)
	modified.RetirementAge += pr.Years
	return modified, nil
}

// SetRetirementAge sets the retirement age directly
type SetRetirementAge struct {
	Age int
}

func (sr *SetRetirementAge) Name() string {
	return "set_retirement_age"
}

func (sr *SetRetirementAge) Description() string {
	return fmt.Sprintf("Retire at age %d", sr.Age)
}

func (sr *SetRetirementAge) Validate(base domain.RetirementAssumptions) error {
	return validateRetirementAge(sr.Name(), base, sr.Age)
}

func (sr *SetRetirementAge) Apply(base domain.RetirementAssumptions) (domain.RetirementAssumptions, error) {
	modified := Clone(base)
	modified.RetirementAge = sr.Age
	return modified, nil
}

func validateRetirementAge(name string, base domain.RetirementAssumptions, age int) error {
	if age < base.CurrentAge {
		return NewTransformError(name, "validate",
			fmt.Sprintf("retirement age %d is before current age %d", age, base.CurrentAge), nil)
	}
	if age > base.LifeExpectancy {
		return NewTransformError(name, "validate",
			fmt.Sprintf("retirement age %d is after life expectancy %d", age, base.LifeExpectancy), nil)
	}
	return nil
}
