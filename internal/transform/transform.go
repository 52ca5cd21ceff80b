package transform

import (
	"fmt"

	"github.com/rgehrsitz/mortgo/internal/domain"
)

// ScenarioTransform is a named, composable change to a loan. Transforms
// never mutate their input; LoanParameters is a value type.
type ScenarioTransform interface {
	// Apply returns the modified parameters
	Apply(base domain.LoanParameters) (domain.LoanParameters, error)

	// Name returns a short identifier for this transform (e.g., "adjust_term")
	Name() string

	// Description returns a human-readable description of the change
	Description() string

	// Validate checks the transform against base without applying it
	Validate(base domain.LoanParameters) error
}

// ApplyTransforms applies transforms in order, each receiving the output of
// the previous one. The result is validated as a whole.
func ApplyTransforms(base domain.LoanParameters, transforms []ScenarioTransform) (domain.LoanParameters, error) {
	current := base
	for i, transform := range transforms {
		if transform == nil {
			return domain.LoanParameters{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.LoanParameters{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.LoanParameters{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	if err := current.Validate(); err != nil {
		return domain.LoanParameters{}, err
	}
	return current, nil
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

// NewTransformError creates a new TransformError
func NewTransformError(name, operation, reason string, err error) *TransformError {
	return &TransformError{
		TransformName: name,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
