package gen

import (
	"path"
	"strconv"

	"github.com/syssam/gqlgo/compiler/ir"
)

// Bucket is the output directory, and Go package, an entity is generated in.
// Buckets are separate namespaces: equal names in different buckets never
// collide.
type Bucket string

// Output buckets.
const (
	BucketRoot     Bucket = ""
	BucketType     Bucket = "type"
	BucketFragment Bucket = "fragment"
)

// String returns the bucket name used in messages.
func (b Bucket) String() string {
	if b == BucketRoot {
		return "root"
	}
	return string(b)
}

// EntityKind is the kind of a planned entity.
type EntityKind uint8

// Entity kinds.
const (
	EntityOperation EntityKind = iota
	EntityFragment
	EntityShared
	EntityNested
	EntityVariant
	EntityEnum
	EntityInput
)

var entityKindNames = [...]string{
	EntityOperation: "operation",
	EntityFragment:  "fragment",
	EntityShared:    "shared",
	EntityNested:    "nested",
	EntityVariant:   "variant",
	EntityEnum:      "enum",
	EntityInput:     "input",
}

// String returns the kind name.
func (k EntityKind) String() string {
	if int(k) < len(entityKindNames) {
		return entityKindNames[k]
	}
	return "EntityKind(" + strconv.Itoa(int(k)) + ")"
}

type (
	// Entity is a planned Go type. Top-level entities (operations,
	// fragments and type bucket entities) own one file each; nested and
	// variant entities are rendered into the file of their owner.
	Entity struct {
		// Name is the Go identifier of the entity in its package.
		Name   string
		Kind   EntityKind
		Bucket Bucket
		// Origin describes where the entity comes from, for error messages.
		Origin string
		// GraphQLType is the type the entity's selection applies to.
		GraphQLType string
		Description string
		// Abstract entities are rendered as sealed interfaces over Variants.
		Abstract bool
		Fields   []*EntityField
		// Fragments are the fragment entities the entity carries a value of.
		Fragments []*FragmentRef
		Variants  []*Entity
		// Parent is the interface entity of a variant.
		Parent *Entity
		// Nested holds the entities rendered into the file of a top-level
		// entity, in discovery order.
		Nested []*Entity
		// Operation is set for operation entities.
		Operation *OperationInfo
		// Values holds the enum values of an enum entity.
		Values []*EnumValue
	}

	// EntityField is a field of an entity, an input object or an operation's
	// variables.
	EntityField struct {
		ResponseName string
		FieldName    string
		// GoName is the exported name: accessors are Get<GoName>, setters
		// Set<GoName>.
		GoName string
		// Ident is the unexported struct field name.
		Ident string
		Type  *TypeDescriptor
		// Target is the entity bound to the innermost enum, input or
		// composite type of Type.
		Target *Entity
		// Specific is set for variant fields not selected for every type.
		Specific bool
		Path     string
		// DefaultValue is the GraphQL literal default of a variable or input
		// field.
		DefaultValue *string
	}

	// FragmentRef is a fragment applied to an entity.
	FragmentRef struct {
		Name   string
		GoName string
		Ident  string
		Entity *Entity
	}

	// OperationInfo carries the operation-specific parts of an operation
	// entity.
	OperationInfo struct {
		Name      string
		Type      ir.OperationKind
		Variables []*EntityField
		// Document is the operation text followed by the text of every
		// fragment it uses.
		Document string
	}

	// EnumValue is a value of an enum entity.
	EnumValue struct {
		Name        string
		GoName      string
		Description string
		Deprecated  bool
	}
)

// IsTopLevel reports whether the entity owns a file.
func (e *Entity) IsTopLevel() bool {
	switch e.Kind {
	case EntityNested, EntityVariant:
		return false
	}
	return true
}

// Field returns the field with the given response name.
func (e *Entity) Field(name string) (*EntityField, bool) {
	for _, f := range e.Fields {
		if f.ResponseName == name {
			return f, true
		}
	}
	return nil, false
}

// Variant returns the variant of the given concrete type.
func (e *Entity) Variant(typeName string) (*Entity, bool) {
	for _, v := range e.Variants {
		if v.GraphQLType == typeName {
			return v, true
		}
	}
	return nil, false
}

// NestedEntity returns the nested entity with the given name.
func (e *Entity) NestedEntity(name string) (*Entity, bool) {
	for _, n := range e.Nested {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

// BuilderName returns the name of the entity's builder type.
func (e *Entity) BuilderName() string {
	return e.Name + "Builder"
}

// TypenameConst returns the discriminator constant of a variant.
func (e *Entity) TypenameConst() string {
	if e.Parent == nil {
		return ""
	}
	return e.Parent.Name + "Typename" + pascal(e.GraphQLType)
}

// Plan is the result of planning: every entity to generate, in emission order.
type Plan struct {
	// Qualifier is the import path of the root package.
	Qualifier string
	// PkgName is the Go package name of the root package.
	PkgName string
	// Entities holds the top-level entities: operations in document order,
	// fragments in document order, then type bucket entities in discovery
	// order.
	Entities []*Entity
}

// PkgPath returns the import path of the bucket's package.
func (p *Plan) PkgPath(b Bucket) string {
	if b == BucketRoot {
		return p.Qualifier
	}
	return path.Join(p.Qualifier, string(b))
}

// PkgNameOf returns the Go package name of the bucket. The type bucket is
// named "types" since "type" is a keyword.
func (p *Plan) PkgNameOf(b Bucket) string {
	switch b {
	case BucketType:
		return "types"
	case BucketFragment:
		return "fragment"
	}
	return p.PkgName
}

// FilePath returns the slash-separated path of the entity's file, relative
// to the output root.
func (p *Plan) FilePath(e *Entity) string {
	return path.Join(p.Qualifier, string(e.Bucket), e.Name+".go")
}

// Lookup returns the top-level entity with the given name in the bucket.
func (p *Plan) Lookup(b Bucket, name string) (*Entity, bool) {
	for _, e := range p.Entities {
		if e.Bucket == b && e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Count returns the number of top-level entities per bucket.
func (p *Plan) Count() map[Bucket]int {
	m := make(map[Bucket]int)
	for _, e := range p.Entities {
		m[e.Bucket]++
	}
	return m
}
