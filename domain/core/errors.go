package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)

	// Validation errors
	ErrDuplicateHypothesisID = errors.New("duplicate hypothesis id")
	ErrNegativeHypothesisID  = errors.New("hypothesis id must be non-negative")
	ErrUnknownPremise        = errors.New("premise references unknown hypothesis")
	ErrInvalidParameterSet   = errors.New("invalid parameter set")
	ErrInvalidScoreModel     = errors.New("score model references unknown variable")

	// Solver errors
	ErrSolverInterrupted = errors.New("solver interrupted")
)

// IsNotFoundError reports whether err is a not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError reports whether err is an input validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrDuplicateHypothesisID) ||
		errors.Is(err, ErrNegativeHypothesisID) ||
		errors.Is(err, ErrUnknownPremise) ||
		errors.Is(err, ErrInvalidParameterSet) ||
		errors.Is(err, ErrInvalidScoreModel)
}
