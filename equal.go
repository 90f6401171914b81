package gqlgo

import (
	"reflect"
	"slices"
)

// The equality helpers below compose into the structural Equal methods of
// generated entities, e.g. SliceEq(OptionalEq(Eq[string])).

// Eq compares two comparable values with ==.
func Eq[T comparable](a, b T) bool {
	return a == b
}

// DeepEq compares two values with reflect.DeepEqual. It is used for custom
// scalars, whose Go types are not known to be comparable.
func DeepEq[T any](a, b T) bool {
	if e, ok := any(a).(interface{ Equal(T) bool }); ok {
		return e.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

// SliceEq lifts an element comparison to slices.
func SliceEq[T any](eq func(a, b T) bool) func(a, b []T) bool {
	return func(a, b []T) bool {
		return slices.EqualFunc(a, b, eq)
	}
}

// ListEq lifts an element comparison to Lists.
func ListEq[T any](eq func(a, b T) bool) func(a, b List[T]) bool {
	return func(a, b List[T]) bool {
		return a.EqualFunc(b, eq)
	}
}

// OptionalEq lifts a value comparison to Optionals. Two empty Optionals are
// equal.
func OptionalEq[T any](eq func(a, b T) bool) func(a, b Optional[T]) bool {
	return func(a, b Optional[T]) bool {
		if a.present != b.present {
			return false
		}
		return !a.present || eq(a.value, b.value)
	}
}

// PtrEq lifts a value comparison to pointers. Two nil pointers are equal.
func PtrEq[T any](eq func(a, b T) bool) func(a, b *T) bool {
	return func(a, b *T) bool {
		if a == nil || b == nil {
			return a == b
		}
		return eq(*a, *b)
	}
}
