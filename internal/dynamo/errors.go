package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for tracing and rendering.
var (
	// ErrInvalidState indicates a photon or state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrDimensionMismatch indicates mismatched state dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrBufferSize indicates a pixel buffer that does not match width*height.
	ErrBufferSize = errors.New("dynamo: pixel buffer size mismatch")
)

// SimulationError wraps an error with the step at which a photon failed.
type SimulationError struct {
	Step    int
	Photon  Photon
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (pos=%v vel=%v): %v", e.Step, e.Photon.Pos, e.Photon.Vel, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
