package sheaf

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrLatticeCount     = errors.New("lattice count does not match graph")
	ErrRestrictionCount = errors.New("restriction count does not match graph")
	ErrWeightCount      = errors.New("weight count does not match graph")
	ErrNilLattice       = errors.New("nil lattice")
	ErrNilRestriction   = errors.New("nil restriction map")
)

// Error provides structured error information for sheaf construction.
type Error struct {
	Op    string // Operation that failed (e.g., "New", "Trust")
	Cell  string // Cell kind involved ("vertex", "edge", "sheaf")
	ID    int    // Cell id (-1 if not applicable)
	Cause error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.ID >= 0 {
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Cell, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Cell, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func newError(op, cell string, id int, cause error) *Error {
	return &Error{Op: op, Cell: cell, ID: id, Cause: cause}
}
