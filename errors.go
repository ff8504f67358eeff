package cag

import "errors"

// Sentinel errors returned by the pipeline. Callers can test for them
// with errors.Is; all public entry points wrap them with context.
var (
	// ErrInvalidGeometry reports non-finite coordinates in an input
	// segment. Surfaced immediately by AddShape.
	ErrInvalidGeometry = errors.New("cag: invalid geometry")

	// ErrNumericalFailure reports an internal consistency failure, such
	// as a face left unreachable during winding propagation. The
	// operation is aborted rather than returning a corrupt shape.
	ErrNumericalFailure = errors.New("cag: numerical failure")

	// ErrIndeterminateRay reports that hole nesting could not cast an
	// unambiguous ray after retrying with perturbed angles.
	ErrIndeterminateRay = errors.New("cag: indeterminate ray cast")
)
