package game

import "fmt"

// ValidationError is a recoverable error caused by an illegal action, amount, or turn.
// The game state is left untouched.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

// StateError is a recoverable error caused by requesting a transition from the wrong phase
type StateError string

func (e StateError) Error() string {
	return string(e)
}

// InvariantViolation is a defensive error raised when the game data no longer
// satisfies its own invariants. It should never happen
type InvariantViolation string

func (e InvariantViolation) Error() string {
	return string(e)
}

// PersistenceError wraps a store failure for a named operation
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying store error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// well-known errors
var (
	ErrNotYourTurn      = ValidationError("it is not your turn")
	ErrInvalidBetAmount = ValidationError("invalid bet amount")
	ErrUnknownAction    = ValidationError("unknown action")
	ErrNoActivePlayer   = InvariantViolation("no active player found")
)
