package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidBody indicates a body constructed with a non-positive or
	// non-finite radius, or a non-finite position.
	ErrInvalidBody = errors.New("dynamo: invalid body parameters")

	// ErrInvalidState indicates NaN or Inf leaked into a body's kinematics.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidConfig indicates a run or world configuration out of range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrUnknownPreset indicates a preset name with no registered config.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrInvalidScenario indicates a malformed scripted input sequence.
	ErrInvalidScenario = errors.New("dynamo: invalid scenario")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Body    BodyID
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d (t=%.1fms) body %d: %v", e.Step, e.Time, e.Body, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
