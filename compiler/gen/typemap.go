package gen

import (
	"errors"
	"fmt"
	"go/token"
	"strconv"
	"strings"
	"sync"

	"github.com/syssam/gqlgo/compiler/ir"
)

// DescriptorKind classifies the Go type a descriptor stands for.
type DescriptorKind uint8

// Descriptor kinds.
const (
	DescScalar DescriptorKind = iota
	DescEnum
	DescInput
	DescComposite
	DescList
)

var descKindNames = [...]string{
	DescScalar:    "scalar",
	DescEnum:      "enum",
	DescInput:     "input",
	DescComposite: "composite",
	DescList:      "list",
}

// String returns the kind name.
func (k DescriptorKind) String() string {
	if int(k) < len(descKindNames) {
		return descKindNames[k]
	}
	return "DescriptorKind(" + strconv.Itoa(int(k)) + ")"
}

// Nullability is the representation of a position's nullability.
type Nullability uint8

// Nullability representations.
const (
	// NonNull positions hold the bare value.
	NonNull Nullability = iota
	// RawNullable positions use the Go zero value of a nilable type (a
	// pointer, a nil slice or a nil interface) for absence.
	RawNullable
	// OptionalWrapped positions use gqlgo.Optional[T].
	OptionalWrapped
)

// String returns the nullability name.
func (n Nullability) String() string {
	switch n {
	case NonNull:
		return "nonnull"
	case RawNullable:
		return "raw"
	case OptionalWrapped:
		return "optional"
	default:
		return "Nullability(" + strconv.Itoa(int(n)) + ")"
	}
}

// Container is the collection type of a list descriptor.
type Container uint8

// Containers.
const (
	ContainerNone Container = iota
	ContainerSlice
	ContainerList
)

// TypeDescriptor is the Go representation of a GraphQL type reference under a
// set of policies. Descriptors are immutable and memoized: equal inputs yield
// the same *TypeDescriptor.
type TypeDescriptor struct {
	Kind DescriptorKind
	// Name is the Go identifier of a scalar, or the GraphQL name of an enum,
	// input or composite type that the planner binds to an entity.
	Name string
	// PkgPath is the import path of a custom scalar's Go type.
	PkgPath     string
	Nullability Nullability
	Container   Container
	Elem        *TypeDescriptor
	Custom      bool
	// GraphQLType is the named GraphQL type at the core of the reference.
	GraphQLType string

	key string
}

// Key returns a canonical string that identifies the descriptor.
func (d *TypeDescriptor) Key() string {
	return d.key
}

// Nullable reports whether the position may be absent.
func (d *TypeDescriptor) Nullable() bool {
	return d.Nullability != NonNull
}

// RawPointer reports whether the raw-nullable form of the position needs a
// pointer. Slices, entity pointers and interfaces already have a nil value.
func (d *TypeDescriptor) RawPointer() bool {
	switch d.Kind {
	case DescScalar, DescEnum:
		return true
	case DescList:
		return d.Container == ContainerList
	}
	return false
}

// Named returns the innermost non-list descriptor.
func (d *TypeDescriptor) Named() *TypeDescriptor {
	for d.Kind == DescList {
		d = d.Elem
	}
	return d
}

// String implements fmt.Stringer.
func (d *TypeDescriptor) String() string {
	return d.key
}

func (d *TypeDescriptor) computeKey() string {
	var b strings.Builder
	switch d.Kind {
	case DescList:
		if d.Container == ContainerList {
			b.WriteString("List[")
		} else {
			b.WriteString("[]")
		}
		b.WriteString(d.Elem.key)
		if d.Container == ContainerList {
			b.WriteString("]")
		}
	default:
		b.WriteString(d.Kind.String())
		b.WriteString(":")
		if d.PkgPath != "" {
			b.WriteString(d.PkgPath)
			b.WriteString(".")
		}
		b.WriteString(d.Name)
	}
	switch d.Nullability {
	case RawNullable:
		return "?" + b.String()
	case OptionalWrapped:
		return "Optional[" + b.String() + "]"
	}
	return b.String()
}

// builtinScalars are the fixed mappings of the GraphQL built-in scalars.
var builtinScalars = map[string]string{
	ir.ScalarBoolean: "bool",
	ir.ScalarInt:     "int",
	ir.ScalarFloat:   "float64",
	ir.ScalarString:  "string",
	ir.ScalarID:      "string",
}

// TypeMapper maps GraphQL type references to descriptors. It is safe for
// concurrent use.
type TypeMapper struct {
	doc    *ir.Document
	policy PolicyConfig
	prefix string
	cache  sync.Map // string => *TypeDescriptor
}

// NewTypeMapper returns a mapper over the types of doc under the given
// policies.
func NewTypeMapper(doc *ir.Document, policy PolicyConfig) *TypeMapper {
	m := &TypeMapper{doc: doc, policy: policy}
	m.prefix = fmt.Sprintf("%t/%t|", policy.UseOptionalWrapping, policy.UseAlternateCollection)
	return m
}

// Map returns the descriptor of ref. An unmapped scalar yields a
// *MappingError without a field path.
func (m *TypeMapper) Map(ref *ir.TypeRef) (*TypeDescriptor, error) {
	if ref == nil {
		return nil, NewInternalError("typemap", "nil type reference", nil)
	}
	key := m.prefix + ref.String()
	if v, ok := m.cache.Load(key); ok {
		return v.(*TypeDescriptor), nil
	}
	d, err := m.mapRef(ref, false, false)
	if err != nil {
		return nil, err
	}
	v, _ := m.cache.LoadOrStore(key, d)
	return v.(*TypeDescriptor), nil
}

// MapField is like Map but attaches path to mapping errors.
func (m *TypeMapper) MapField(ref *ir.TypeRef, path string) (*TypeDescriptor, error) {
	d, err := m.Map(ref)
	if err != nil {
		var mapErr *MappingError
		if errors.As(err, &mapErr) && mapErr.Path == "" {
			return nil, NewMappingError(mapErr.Scalar, path)
		}
		return nil, err
	}
	return d, nil
}

// mapRef maps ref. The nullability policy applies to the position itself;
// nullable list elements always use the raw representation so that element
// types do not depend on the policy.
func (m *TypeMapper) mapRef(ref *ir.TypeRef, nonNull, elem bool) (*TypeDescriptor, error) {
	switch ref.Kind {
	case ir.RefNonNull:
		return m.mapRef(ref.OfType, true, elem)
	case ir.RefList:
		inner, err := m.mapRef(ref.OfType, false, true)
		if err != nil {
			return nil, err
		}
		d := &TypeDescriptor{
			Kind:        DescList,
			Container:   ContainerSlice,
			Elem:        inner,
			GraphQLType: inner.GraphQLType,
			Nullability: m.nullability(nonNull, elem),
		}
		if m.policy.UseAlternateCollection {
			d.Container = ContainerList
		}
		d.key = d.computeKey()
		return d, nil
	case ir.RefNamed:
		d, err := m.mapNamed(ref.Name)
		if err != nil {
			return nil, err
		}
		d.Nullability = m.nullability(nonNull, elem)
		d.key = d.computeKey()
		return d, nil
	default:
		return nil, NewInternalError("typemap", fmt.Sprintf("unknown reference kind %d", ref.Kind), nil)
	}
}

func (m *TypeMapper) nullability(nonNull, elem bool) Nullability {
	switch {
	case nonNull:
		return NonNull
	case m.policy.UseOptionalWrapping && !elem:
		return OptionalWrapped
	default:
		return RawNullable
	}
}

func (m *TypeMapper) mapNamed(name string) (*TypeDescriptor, error) {
	d := &TypeDescriptor{Name: name, GraphQLType: name}
	switch kind := m.doc.KindOf(name); kind {
	case ir.KindEnum:
		d.Kind = DescEnum
	case ir.KindInputObject:
		d.Kind = DescInput
	case ir.KindObject, ir.KindInterface, ir.KindUnion:
		d.Kind = DescComposite
	default:
		d.Kind = DescScalar
		if goType, ok := m.policy.CustomScalars[name]; ok {
			pkg, ident, err := parseGoType(goType)
			if err != nil {
				return nil, NewInternalError("typemap", "custom scalar "+name, err)
			}
			d.PkgPath, d.Name, d.Custom = pkg, ident, true
			return d, nil
		}
		builtin, ok := builtinScalars[name]
		if !ok {
			return nil, NewMappingError(name, "")
		}
		d.Name = builtin
	}
	return d, nil
}

// parseGoType splits a Go type expression of the form "importpath.Ident" or
// "Ident" into its import path and identifier.
func parseGoType(s string) (pkg, ident string, err error) {
	if s == "" {
		return "", "", fmt.Errorf("empty Go type")
	}
	i := strings.LastIndexByte(s, '.')
	if i > strings.LastIndexByte(s, '/') {
		pkg, ident = s[:i], s[i+1:]
		if pkg == "" {
			return "", "", fmt.Errorf("invalid Go type %q: empty import path", s)
		}
	} else {
		ident = s
	}
	if !token.IsIdentifier(ident) {
		return "", "", fmt.Errorf("invalid Go type %q: %q is not an identifier", s, ident)
	}
	if strings.ContainsAny(pkg, " \t[]*{}()") {
		return "", "", fmt.Errorf("invalid Go type %q: malformed import path", s)
	}
	return pkg, ident, nil
}
