package gqlgo

import (
	"iter"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
)

// List is an immutable ordered collection. Generated code uses it for list
// positions when the alternate collection policy is enabled. The zero value
// is an empty list.
type List[T any] struct {
	items []T
}

// NewList returns a List holding a copy of items.
func NewList[T any](items ...T) List[T] {
	return List[T]{items: slices.Clone(items)}
}

// Len returns the number of elements.
func (l List[T]) Len() int {
	return len(l.items)
}

// At returns the element at index i.
func (l List[T]) At(i int) (T, error) {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, NewRangeError(i, len(l.items))
	}
	return l.items[i], nil
}

// All iterates over the elements with their indexes.
func (l List[T]) All() iter.Seq2[int, T] {
	return slices.All(l.items)
}

// Values iterates over the elements.
func (l List[T]) Values() iter.Seq[T] {
	return slices.Values(l.items)
}

// Slice returns a copy of the elements.
func (l List[T]) Slice() []T {
	return slices.Clone(l.items)
}

// EqualFunc reports whether both lists hold pairwise equal elements.
func (l List[T]) EqualFunc(o List[T], eq func(a, b T) bool) bool {
	return slices.EqualFunc(l.items, o.items, eq)
}

// String implements fmt.Stringer.
func (l List[T]) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i, v := range l.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(FormatValue(v))
	}
	b.WriteString("]")
	return b.String()
}

// MarshalJSON encodes the list as a JSON array.
func (l List[T]) MarshalJSON() ([]byte, error) {
	if l.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}

// UnmarshalJSON decodes a JSON array.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	l.items = items
	return nil
}
