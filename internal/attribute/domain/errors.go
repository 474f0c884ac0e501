package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not_found")
	ErrTypeMismatch       = errors.New("type_mismatch")
	ErrInvalidOperation   = errors.New("invalid_operation")
	ErrDuplicateAttribute = fmt.Errorf("duplicate_attribute: %w", ErrInvalidOperation)
	ErrUnknownKind        = errors.New("unknown_kind")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidID          = errors.New("invalid_id")
)

// TypeMismatchError reports a value interpreted as a kind it is not tagged
// with. It unwraps to ErrTypeMismatch.
type TypeMismatchError struct {
	Expected ValueKind
	Actual   ValueKind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}
