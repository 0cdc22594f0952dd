package linsys

import (
	"errors"
	"fmt"
)

// Domain errors for system construction and simulation.
var (
	// ErrDimensionMismatch indicates matrices or vectors with incompatible shapes.
	ErrDimensionMismatch = errors.New("linsys: dimension mismatch")

	// ErrEmptyMatrix indicates a matrix with a zero dimension.
	ErrEmptyMatrix = errors.New("linsys: empty matrix")

	// ErrNonzeroFeedthrough indicates a Lur'e system whose D matrix is not zero.
	ErrNonzeroFeedthrough = errors.New("linsys: nonzero feedthrough (D != 0) unsupported for Lur'e systems")

	// ErrDiverged indicates the state left the finite floats.
	ErrDiverged = errors.New("linsys: state diverged (NaN or Inf detected)")

	// ErrNotSISO indicates an operation defined only for single-input single-output systems.
	ErrNotSISO = errors.New("linsys: system is not SISO")

	// ErrInvalidDelta indicates a non-positive sampling interval.
	ErrInvalidDelta = errors.New("linsys: sampling interval must be positive")

	// ErrNoNonlinearity indicates a Lur'e system built without a feedback function.
	ErrNoNonlinearity = errors.New("linsys: nil nonlinearity")
)

// DimensionError records which matrix or vector had the wrong shape.
type DimensionError struct {
	Name      string
	Got, Want string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %s has shape %s, want %s", ErrDimensionMismatch, e.Name, e.Got, e.Want)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}

func dimErr(name string, gotR, gotC int, want string) error {
	return &DimensionError{Name: name, Got: fmt.Sprintf("%d×%d", gotR, gotC), Want: want}
}

// SimulationError wraps an error with the step at which it occurred.
type SimulationError struct {
	Step    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
