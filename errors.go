package gqlgo

import (
	"errors"
	"fmt"
)

// Standard sentinel errors returned by the runtime types.
var (
	// ErrAbsent is returned when the value of an empty Optional is requested.
	ErrAbsent = errors.New("gqlgo: value not present")

	// ErrOutOfRange is returned when a List index is out of range.
	ErrOutOfRange = errors.New("gqlgo: index out of range")
)

// RangeError represents an out of range List access.
type RangeError struct {
	index int
	len   int
}

// Error returns the error string.
func (e *RangeError) Error() string {
	return fmt.Sprintf("gqlgo: index %d out of range [0:%d]", e.index, e.len)
}

// Is reports whether the target error matches RangeError.
// This allows errors.Is(rangeErr, ErrOutOfRange) to return true.
func (e *RangeError) Is(err error) bool {
	return err == ErrOutOfRange
}

// Index returns the requested index.
func (e *RangeError) Index() int {
	return e.index
}

// Len returns the length of the list at the time of the access.
func (e *RangeError) Len() int {
	return e.len
}

// NewRangeError returns a new RangeError.
func NewRangeError(index, length int) *RangeError {
	return &RangeError{index: index, len: length}
}

// IsOutOfRange returns true if the error is a RangeError.
func IsOutOfRange(err error) bool {
	if err == nil {
		return false
	}
	var e *RangeError
	return errors.As(err, &e) || errors.Is(err, ErrOutOfRange)
}

// IsAbsent returns true if the error reports an empty Optional.
func IsAbsent(err error) bool {
	return errors.Is(err, ErrAbsent)
}
