package ir

import (
	"errors"
	"strings"
)

// ErrInvalidInput indicates a malformed or incomplete IR document.
var ErrInvalidInput = errors.New("gqlgo: invalid input")

// InputError reports a malformed IR element or a dangling reference.
type InputError struct {
	Kind    string // "operation", "fragment", "type", "field", ...
	Name    string // offending entity or reference name
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *InputError) Error() string {
	var b strings.Builder
	b.WriteString("gqlgo: input error")
	if e.Kind != "" {
		b.WriteString(" in ")
		b.WriteString(e.Kind)
	}
	if e.Name != "" {
		b.WriteString(" ")
		b.WriteString(e.Name)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *InputError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInputError creates a new InputError.
func NewInputError(kind, name, message string, cause error) *InputError {
	return &InputError{Kind: kind, Name: name, Message: message, Cause: cause}
}

// IsInputError reports whether the error is an InputError.
func IsInputError(err error) bool {
	var inErr *InputError
	return errors.As(err, &inErr)
}
