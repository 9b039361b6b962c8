package roulette

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is wrapped by every error returned for malformed
	// externally supplied game setup.
	ErrInvalidState = errors.New("invalid game state")
	// ErrInvalidNotation is wrapped by DecodeNotation parse failures.
	ErrInvalidNotation = errors.New("invalid notation")
)

// PreconditionError is the panic value raised when a transition or query is
// invoked on a state that does not satisfy its precondition. It signals a
// caller or policy bug, so it is never returned as an ordinary error.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("roulette: %s: precondition violated: %s", e.Op, e.Reason)
}

func violate(op, format string, args ...any) {
	panic(&PreconditionError{Op: op, Reason: fmt.Sprintf(format, args...)})
}
