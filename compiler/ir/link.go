package ir

import "fmt"

// Link checks that the document is complete: every element is named, every
// type reference is well formed, fragment spreads and type conditions
// resolve, and composite fields carry a selection set over a defined
// composite type. The first problem found is returned as an *InputError.
func Link(d *Document) error {
	if d == nil {
		return NewInputError("document", "", "missing document", nil)
	}
	for _, t := range d.Types {
		if err := linkType(d, t); err != nil {
			return err
		}
	}
	seenOps := make(map[string]bool, len(d.Operations))
	for _, op := range d.Operations {
		if op.Name == "" {
			return NewInputError("operation", "", "operation without a name", nil)
		}
		if seenOps[op.Name] {
			return NewInputError("operation", op.Name, "duplicate operation name", nil)
		}
		seenOps[op.Name] = true
		if !op.Kind.Valid() {
			return NewInputError("operation", op.Name, fmt.Sprintf("unknown operation kind %q", op.Kind), nil)
		}
		if op.RootType == "" {
			return NewInputError("operation", op.Name, "missing root type", nil)
		}
		if !isComposite(d, op.RootType) {
			return NewInputError("operation", op.Name, fmt.Sprintf("root type %q is not a defined composite type", op.RootType), nil)
		}
		for _, v := range op.Variables {
			if v.Name == "" {
				return NewInputError("operation", op.Name, "variable without a name", nil)
			}
			if err := v.Type.Validate(); err != nil {
				return NewInputError("variable", op.Name+".$"+v.Name, "", err)
			}
		}
		if err := linkSelections(d, op.Name, op.SelectionSet); err != nil {
			return err
		}
	}
	for _, f := range d.Fragments {
		if f.Name == "" {
			return NewInputError("fragment", "", "fragment without a name", nil)
		}
		if !isComposite(d, f.TypeCondition) {
			return NewInputError("fragment", f.Name, fmt.Sprintf("type condition %q is not a defined composite type", f.TypeCondition), nil)
		}
		if err := linkSelections(d, f.Name, f.SelectionSet); err != nil {
			return err
		}
	}
	return nil
}

func linkType(d *Document, t *TypeDefinition) error {
	if t.Name == "" {
		return NewInputError("type", "", "type definition without a name", nil)
	}
	switch t.Kind {
	case KindScalar, KindObject:
	case KindEnum:
		seen := make(map[string]bool, len(t.EnumValues))
		for _, v := range t.EnumValues {
			if v.Name == "" || seen[v.Name] {
				return NewInputError("type", t.Name, fmt.Sprintf("invalid or duplicate enum value %q", v.Name), nil)
			}
			seen[v.Name] = true
		}
	case KindInterface, KindUnion:
		for _, p := range t.PossibleTypes {
			if pt, ok := d.Type(p); !ok || pt.Kind != KindObject {
				return NewInputError("type", t.Name, fmt.Sprintf("possible type %q is not a defined object type", p), nil)
			}
		}
	case KindInputObject:
		for _, f := range t.InputFields {
			if err := f.Type.Validate(); err != nil {
				return NewInputError("type", t.Name+"."+f.Name, "", err)
			}
		}
	default:
		return NewInputError("type", t.Name, fmt.Sprintf("unknown type kind %q", t.Kind), nil)
	}
	return nil
}

func linkSelections(d *Document, owner string, set SelectionSet) error {
	for _, sel := range set {
		switch s := sel.(type) {
		case *Field:
			if s.Name == "" {
				return NewInputError("field", owner, "field without a name", nil)
			}
			path := owner + "." + s.ResponseName()
			if err := s.Type.Validate(); err != nil {
				return NewInputError("field", path, "", err)
			}
			named := s.Type.NamedType()
			if len(s.SelectionSet) > 0 {
				if !isComposite(d, named) {
					return NewInputError("field", path, fmt.Sprintf("type %q is not a defined composite type", named), nil)
				}
				if err := linkSelections(d, path, s.SelectionSet); err != nil {
					return err
				}
			} else if isComposite(d, named) {
				return NewInputError("field", path, fmt.Sprintf("composite type %q requires a selection set", named), nil)
			}
		case *FragmentSpread:
			if _, ok := d.Fragment(s.Name); !ok {
				return NewInputError("fragment spread", s.Name, fmt.Sprintf("referenced from %s is not defined", owner), nil)
			}
		case *InlineFragment:
			if s.TypeCondition != "" && !isComposite(d, s.TypeCondition) {
				return NewInputError("inline fragment", owner, fmt.Sprintf("type condition %q is not a defined composite type", s.TypeCondition), nil)
			}
			if err := linkSelections(d, owner, s.SelectionSet); err != nil {
				return err
			}
		case nil:
			return NewInputError("selection", owner, "empty selection", nil)
		}
	}
	return nil
}

func isComposite(d *Document, name string) bool {
	t, ok := d.Type(name)
	return ok && t.Kind.IsComposite()
}
