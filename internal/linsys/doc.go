// Package linsys provides discrete-time linear state-space systems and
// their Lur'e variant with static nonlinear output feedback.
//
// The package defines:
//
//   - [LinearSystem]: x[k+1] = A x[k] + B u[k], y[k] = C x[k] + D u[k]
//   - [LureSystem]: x[k+1] = A x[k] + B (f(C x[k]) + d[k])
//   - [Trajectory]: aligned state, output and input sequences
//
// Shapes are validated at construction, so simulation never fails with
// an opaque matrix panic:
//
//	sys, err := linsys.Scalar(0.5, 3, 2, 1)
//	tr, err := sys.Soln(mat.NewVecDense(1, []float64{1}), inputs)
//
// A continuous-time system converts to discrete time with
// [LinearSystem.Discretize], which assumes piecewise-constant input
// over each sampling interval.
//
// # Errors
//
// Failures are reported through wrapped sentinel errors
// ([ErrDimensionMismatch], [ErrNonzeroFeedthrough], ...) and can be
// tested with errors.Is. Shape failures are also available as a
// [*DimensionError] through errors.As.
package linsys
