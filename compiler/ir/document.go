// Package ir defines the intermediate representation of GraphQL operations,
// fragments and named types consumed by the code generator.
//
// A Document is built once per generation run, linked with Link, and never
// mutated afterwards. Everything in this package is pure data.
package ir

// OperationKind is the kind of a GraphQL operation.
type OperationKind string

// Operation kinds.
const (
	Query        OperationKind = "query"
	Mutation     OperationKind = "mutation"
	Subscription OperationKind = "subscription"
)

// DefaultRootType returns the conventional root type name for the kind.
func (k OperationKind) DefaultRootType() string {
	switch k {
	case Mutation:
		return "Mutation"
	case Subscription:
		return "Subscription"
	default:
		return "Query"
	}
}

// Valid reports whether k is a known operation kind.
func (k OperationKind) Valid() bool {
	return k == Query || k == Mutation || k == Subscription
}

// TypeKind is the kind of a named type definition.
type TypeKind string

// Type definition kinds.
const (
	KindScalar      TypeKind = "SCALAR"
	KindEnum        TypeKind = "ENUM"
	KindObject      TypeKind = "OBJECT"
	KindInterface   TypeKind = "INTERFACE"
	KindUnion       TypeKind = "UNION"
	KindInputObject TypeKind = "INPUT_OBJECT"
)

// IsComposite reports whether values of the kind carry a selection set.
func (k TypeKind) IsComposite() bool {
	return k == KindObject || k == KindInterface || k == KindUnion
}

// IsAbstract reports whether the kind is an interface or a union.
func (k TypeKind) IsAbstract() bool {
	return k == KindInterface || k == KindUnion
}

// Built-in scalar names.
const (
	ScalarBoolean = "Boolean"
	ScalarInt     = "Int"
	ScalarFloat   = "Float"
	ScalarString  = "String"
	ScalarID      = "ID"
)

// TypenameField is the introspection field every composite type exposes.
const TypenameField = "__typename"

// IsBuiltinScalar reports whether name is one of the GraphQL built-in scalars.
func IsBuiltinScalar(name string) bool {
	switch name {
	case ScalarBoolean, ScalarInt, ScalarFloat, ScalarString, ScalarID:
		return true
	}
	return false
}

type (
	// Document is the root of the IR.
	Document struct {
		// Operations in input order.
		Operations []*Operation
		// Fragments in input order. Names are expected to be unique; duplicates
		// are kept so the planner can report them with both origins.
		Fragments []*Fragment
		// Types holds the named type definitions in input order.
		Types []*TypeDefinition

		fragments map[string]*Fragment
		types     map[string]*TypeDefinition
	}

	// Operation is a named query, mutation or subscription.
	Operation struct {
		Name      string
		Kind      OperationKind
		Variables []*VariableDefinition
		// RootType is the response type of the selection set, e.g. "Query".
		RootType     string
		SelectionSet SelectionSet
		// Source is the GraphQL text of the operation and the fragments it uses.
		Source string
		// Origin is the file the operation was read from, if known.
		Origin string
	}

	// VariableDefinition declares one operation variable.
	VariableDefinition struct {
		Name string
		Type *TypeRef
		// DefaultValue is the GraphQL literal of the default, if any.
		DefaultValue *string
	}

	// Fragment is a named, reusable selection set.
	Fragment struct {
		Name          string
		TypeCondition string
		SelectionSet  SelectionSet
		Source        string
		Origin        string
	}

	// TypeDefinition describes a named schema type.
	TypeDefinition struct {
		Kind        TypeKind
		Name        string
		Description string
		// EnumValues for KindEnum, in declaration order.
		EnumValues []*EnumValue
		// PossibleTypes for KindInterface and KindUnion: the concrete object
		// type names, in declaration order.
		PossibleTypes []string
		// InputFields for KindInputObject, in declaration order.
		InputFields []*InputField
	}

	// EnumValue is one value of an enum type.
	EnumValue struct {
		Name        string
		Description string
		Deprecated  bool
	}

	// InputField is one field of an input object type.
	InputField struct {
		Name         string
		Type         *TypeRef
		DefaultValue *string
	}
)

// NewDocument builds a document and indexes its fragments and types by name.
// For duplicate names the first definition wins the index.
func NewDocument(ops []*Operation, frags []*Fragment, types []*TypeDefinition) *Document {
	d := &Document{
		Operations: ops,
		Fragments:  frags,
		Types:      types,
		fragments:  make(map[string]*Fragment, len(frags)),
		types:      make(map[string]*TypeDefinition, len(types)),
	}
	for _, f := range frags {
		if _, ok := d.fragments[f.Name]; !ok {
			d.fragments[f.Name] = f
		}
	}
	for _, t := range types {
		if _, ok := d.types[t.Name]; !ok {
			d.types[t.Name] = t
		}
	}
	return d
}

// Fragment returns the fragment with the given name.
func (d *Document) Fragment(name string) (*Fragment, bool) {
	f, ok := d.fragments[name]
	return f, ok
}

// Type returns the named type definition.
func (d *Document) Type(name string) (*TypeDefinition, bool) {
	t, ok := d.types[name]
	return t, ok
}

// Operation returns the operation with the given name.
func (d *Document) Operation(name string) (*Operation, bool) {
	for _, op := range d.Operations {
		if op.Name == name {
			return op, true
		}
	}
	return nil, false
}

// KindOf returns the kind of the named type. Undefined names are reported as
// scalars, since IR producers commonly omit scalar definitions.
func (d *Document) KindOf(name string) TypeKind {
	if t, ok := d.types[name]; ok {
		return t.Kind
	}
	return KindScalar
}

// PossibleTypes returns the concrete object types a value of the named type
// can have. An object type is its own only possible type.
func (d *Document) PossibleTypes(name string) []string {
	t, ok := d.types[name]
	if !ok {
		return nil
	}
	switch t.Kind {
	case KindObject:
		return []string{t.Name}
	case KindInterface, KindUnion:
		return t.PossibleTypes
	}
	return nil
}

// IsPossibleType reports whether the concrete object type obj is a possible
// type of the named type.
func (d *Document) IsPossibleType(name, obj string) bool {
	for _, p := range d.PossibleTypes(name) {
		if p == obj {
			return true
		}
	}
	return false
}
