package dynamo

import (
	"fmt"

	"github.com/juju/errors"
)

// Domain errors for trajectory generation.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownParameter is returned by SetParam for names a system does not own.
	ErrUnknownParameter = errors.New("dynamo: unknown parameter")

	// ErrDimensionMismatch indicates mismatched state dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// TrajectoryError wraps an error with the step at which it happened.
type TrajectoryError struct {
	Step    int
	State   State
	Wrapped error
}

func (e *TrajectoryError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *TrajectoryError) Unwrap() error {
	return e.Wrapped
}

// Cause lets errors.Cause see through the step annotation.
func (e *TrajectoryError) Cause() error {
	return e.Wrapped
}
