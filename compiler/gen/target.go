package gen

import "github.com/dave/jennifer/jen"

// EntityGenerator renders top-level entities. Each method is called once per
// planned entity of the matching kind and returns the complete file,
// including the entity's nested and variant entities.
type EntityGenerator interface {
	// GenOperation renders an operation entity ({Operation}.go).
	GenOperation(e *Entity) *jen.File
	// GenFragment renders a fragment entity (fragment/{Fragment}.go).
	GenFragment(e *Entity) *jen.File
	// GenType renders an enum, input object or shared selection entity
	// (type/{Type}.go).
	GenType(e *Entity) *jen.File
}

// Target is a target language backend.
//
//	┌──────────────────────────────────────────┐
//	│            JenniferGenerator             │
//	│ (resolve, plan, parallel render + write) │
//	└────────────────────┬─────────────────────┘
//	                     │ uses
//	                     ▼
//	┌──────────────────────────────────────────┐
//	│                 Target                   │
//	│   (renders one file per top-level entity)│
//	└────────────────────┬─────────────────────┘
//	                     │ implemented by
//	                     ▼
//	              compiler/gen/golang
type Target interface {
	// Name returns the target name (e.g., "go").
	Name() string
	EntityGenerator
}

// GeneratorHelper provides helper methods for target implementations.
// JenniferGenerator implements this interface, allowing target packages
// to use helper methods without importing the full generator.
type GeneratorHelper interface {
	// NewFile creates a new Jennifer file for the bucket's package with the
	// configured header comment.
	NewFile(b Bucket) *jen.File

	// Plan returns the plan being rendered.
	Plan() *Plan

	// Ref returns a reference to an entity, qualified when rendered outside
	// the entity's package.
	Ref(e *Entity) jen.Code

	// GoType returns the Go type of a field.
	GoType(f *EntityField) jen.Code

	// ElemType returns the Go type of a descriptor bound to target.
	ElemType(d *TypeDescriptor, target *Entity) jen.Code

	// RuntimePkg returns the import path of the runtime package.
	RuntimePkg() string
}
