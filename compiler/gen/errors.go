// Package gen provides code generation for GraphQL IR documents.
package gen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/gqlgo/compiler/ir"
)

// Sentinel errors for the failure categories of a generation run.
var (
	// ErrInvalidInput indicates a malformed or incomplete IR document.
	ErrInvalidInput = ir.ErrInvalidInput
	// ErrUnmappedScalar indicates a scalar without a Go mapping.
	ErrUnmappedScalar = errors.New("gqlgo: unmapped scalar")
	// ErrFieldConflict indicates incompatible fields under one response name.
	ErrFieldConflict = errors.New("gqlgo: field conflict")
	// ErrNameCollision indicates two entities with the same name in one scope.
	ErrNameCollision = errors.New("gqlgo: name collision")
	// ErrInternal indicates a generator defect.
	ErrInternal = errors.New("gqlgo: internal error")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("gqlgo: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("gqlgo: code generation failed")
)

// InputError reports a malformed IR element or a dangling reference.
type InputError = ir.InputError

// NewInputError creates a new InputError.
func NewInputError(kind, name, message string, cause error) *InputError {
	return ir.NewInputError(kind, name, message, cause)
}

// MappingError reports a scalar that is neither built in nor present in the
// custom scalar table.
type MappingError struct {
	Scalar string
	Path   string // field path where the scalar was encountered
}

// Error implements the error interface.
func (e *MappingError) Error() string {
	var b strings.Builder
	b.WriteString("gqlgo: mapping error: scalar ")
	b.WriteString(e.Scalar)
	b.WriteString(" has no built-in mapping and no custom scalar entry")
	if e.Path != "" {
		b.WriteString(" (field ")
		b.WriteString(e.Path)
		b.WriteString(")")
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for MappingError.
func (e *MappingError) Is(target error) bool {
	return target == ErrUnmappedScalar
}

// NewMappingError creates a new MappingError.
func NewMappingError(scalar, path string) *MappingError {
	return &MappingError{Scalar: scalar, Path: path}
}

// ConflictError reports two fields that share a response name but resolve to
// incompatible shapes.
type ConflictError struct {
	ResponseName string
	Path         string
	First        *ir.TypeRef
	Second       *ir.TypeRef
	Message      string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	var b strings.Builder
	b.WriteString("gqlgo: field conflict on ")
	b.WriteString(e.ResponseName)
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	fmt.Fprintf(&b, ": %s and %s", e.First, e.Second)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for ConflictError.
func (e *ConflictError) Is(target error) bool {
	return target == ErrFieldConflict
}

// NewConflictError creates a new ConflictError.
func NewConflictError(responseName, path string, first, second *ir.TypeRef, message string) *ConflictError {
	return &ConflictError{
		ResponseName: responseName,
		Path:         path,
		First:        first,
		Second:       second,
		Message:      message,
	}
}

// CollisionError reports two entities that claim the same name in the same
// bucket and scope.
type CollisionError struct {
	Name   string
	Scope  string // bucket or parent entity
	First  string // qualified origin of the first claimant
	Second string // qualified origin of the second claimant
}

// Error implements the error interface.
func (e *CollisionError) Error() string {
	scope := e.Scope
	if scope == "" {
		scope = "root"
	}
	return fmt.Sprintf("gqlgo: name collision: %q in %s is claimed by %s and %s", e.Name, scope, e.First, e.Second)
}

// Is reports whether the target matches the sentinel error for CollisionError.
func (e *CollisionError) Is(target error) bool {
	return target == ErrNameCollision
}

// NewCollisionError creates a new CollisionError.
func NewCollisionError(name, scope, first, second string) *CollisionError {
	return &CollisionError{Name: name, Scope: scope, First: first, Second: second}
}

// InternalError reports a violated generator invariant. It is a defect, not
// a user error.
type InternalError struct {
	Component string
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	var b strings.Builder
	b.WriteString("gqlgo: internal error")
	if e.Component != "" {
		b.WriteString(" in ")
		b.WriteString(e.Component)
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
func (e *InternalError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for InternalError.
func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

// NewInternalError creates a new InternalError.
func NewInternalError(component, message string, cause error) *InternalError {
	return &InternalError{Component: component, Message: message, Cause: cause}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("gqlgo: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("gqlgo: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Phase   string // "render", "write", ...
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("gqlgo: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
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
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsInputError reports whether the error is an InputError.
func IsInputError(err error) bool {
	return ir.IsInputError(err)
}

// IsMappingError reports whether the error is a MappingError.
func IsMappingError(err error) bool {
	var mapErr *MappingError
	return errors.As(err, &mapErr)
}

// IsConflictError reports whether the error is a ConflictError.
func IsConflictError(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}

// IsCollisionError reports whether the error is a CollisionError.
func IsCollisionError(err error) bool {
	var collisionErr *CollisionError
	return errors.As(err, &collisionErr)
}

// IsInternalError reports whether the error is an InternalError.
func IsInternalError(err error) bool {
	var internalErr *InternalError
	return errors.As(err, &internalErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
