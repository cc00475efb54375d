package manifold

import (
	"errors"
	"fmt"
)

// Domain errors for sphere dynamics.
var (
	// ErrConfig indicates invalid construction parameters.
	ErrConfig = errors.New("manifold: invalid configuration")

	// ErrNegativeSteps indicates a negative step count passed to a run.
	ErrNegativeSteps = errors.New("manifold: step count must be non-negative")

	// ErrUnstable indicates a position norm collapsed toward zero during
	// re-normalization.
	ErrUnstable = errors.New("manifold: position norm collapsed (numerical instability)")

	// ErrInvalidState indicates NaN or Inf values in the state.
	ErrInvalidState = errors.New("manifold: invalid state (NaN or Inf detected)")
)

// StepError wraps an error with the step at which it occurred. The state from
// before the failing step remains the last valid snapshot.
type StepError struct {
	Step    int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
