package ir

// SelectionSet is an ordered list of selections. Order is the source order
// and is preserved into generated field order.
type SelectionSet []Selection

// Selection is one of *Field, *FragmentSpread or *InlineFragment.
type Selection interface {
	isSelection()
}

func (*Field) isSelection()          {}
func (*FragmentSpread) isSelection() {}
func (*InlineFragment) isSelection() {}

type (
	// Field selects one field of the enclosing type.
	Field struct {
		// Alias is empty when the field is not aliased.
		Alias string
		Name  string
		Type  *TypeRef
		// SelectionSet is present iff the field's named type is composite.
		SelectionSet SelectionSet
	}

	// FragmentSpread references a named fragment.
	FragmentSpread struct {
		Name string
	}

	// InlineFragment scopes a selection set to a type condition.
	InlineFragment struct {
		// TypeCondition is empty when the fragment has no condition, in which
		// case it applies to the enclosing type.
		TypeCondition string
		SelectionSet  SelectionSet
	}
)

// ResponseName returns the key the field has in the response.
func (f *Field) ResponseName() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}
