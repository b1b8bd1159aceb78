package core

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedSnapshot = errors.New("malformed snapshot")
	ErrOutOfBounds       = errors.New("position out of bounds")
	ErrUnknownUnit       = errors.New("unknown unit symbol")
	ErrGameOver          = errors.New("game is over")
	ErrNotReadyToSave    = errors.New("can only save at the beginning of a turn")
)

// SnapshotError reports where in a snapshot the decoding failed.
// Line is 1-based; 0 means the failure is not tied to a single line.
type SnapshotError struct {
	Line int
	Err  error
}

func (e *SnapshotError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("snapshot line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("snapshot: %v", e.Err)
}

func (e *SnapshotError) Unwrap() error { return e.Err }

// NewSnapshotError builds a SnapshotError that always matches ErrMalformedSnapshot.
func NewSnapshotError(line int, format string, args ...interface{}) error {
	return &SnapshotError{
		Line: line,
		Err:  fmt.Errorf("%w: %s", ErrMalformedSnapshot, fmt.Sprintf(format, args...)),
	}
}

// WrapTurnError adds turn and phase context to an error.
func WrapTurnError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("game turn %d [%s]: %w", turn, phase, err)
}

// WrapEntityError adds the entity record to an error.
func WrapEntityError(e Entity, operation string, err error) error {
	if err == nil {
		return nil
	}
	if e == nil {
		return fmt.Errorf("entity %s: %w", operation, err)
	}
	return fmt.Errorf("%s at %s %s: %w", e.Name(), e.Position(), operation, err)
}
