// Package golang provides Go code generation for the Jennifer generator.
//
// This package implements the gen.Target interface. Every planned top-level
// entity is rendered to one file; nested and variant entities are rendered
// into the file of their owner.
//
// Usage:
//
//	import (
//	    "github.com/syssam/gqlgo/compiler/gen"
//	    "github.com/syssam/gqlgo/compiler/gen/golang"
//	)
//
//	generator := gen.NewJenniferGenerator(doc, cfg)
//	generator.WithTarget(golang.NewTarget(generator))
//	generator.Generate(ctx)
//
// Generated code structure:
//
//	{root}/{qualifier}/
//	├── {Operation}.go      # Response data, variables, operation descriptor
//	├── fragment/
//	│   └── {Fragment}.go   # Fragment data and its nested selections
//	└── type/
//	    ├── {Enum}.go       # Enum type and values
//	    ├── {Input}.go      # Input object struct
//	    └── {Type}.go       # Selection shared by several owners
package golang

import (
	"context"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/gqlgo/compiler/gen"
	"github.com/syssam/gqlgo/compiler/ir"
)

// Generate is a convenience function that plans doc and writes the Go code
// of every operation, fragment and type it uses.
//
// Example:
//
//	import "github.com/syssam/gqlgo/compiler/gen/golang"
//	err := golang.Generate(ctx, doc, cfg)
func Generate(ctx context.Context, doc *ir.Document, cfg *gen.Config) error {
	if doc == nil {
		return gen.NewInputError("document", "", "nil document", nil)
	}
	generator := gen.NewJenniferGenerator(doc, cfg)
	generator.WithTarget(NewTarget(generator))
	return generator.Generate(ctx)
}

// Target implements gen.Target for Go.
//
// Generated entities:
//   - Immutable structs with Get accessors, Equal, String and a builder
//   - Sealed interfaces over per-type variants for interfaces and unions
//   - Operation descriptors implementing gqlgo.Operation
//   - String enums and input object structs
type Target struct {
	helper gen.GeneratorHelper
}

// NewTarget creates a new Go target.
// The helper parameter should be a *gen.JenniferGenerator.
func NewTarget(helper gen.GeneratorHelper) *Target {
	return &Target{helper: helper}
}

// Name returns the target name.
func (t *Target) Name() string {
	return "go"
}

// GenOperation generates the operation file ({Operation}.go).
// Includes: response data entities, variables struct, name and document
// constants, operation descriptor.
func (t *Target) GenOperation(e *gen.Entity) *jen.File {
	return genOperation(t.helper, e)
}

// GenFragment generates the fragment file (fragment/{Fragment}.go).
func (t *Target) GenFragment(e *gen.Entity) *jen.File {
	f := t.helper.NewFile(e.Bucket)
	genEntityTree(t.helper, f, e)
	return f
}

// GenType generates a type bucket file (type/{Type}.go).
func (t *Target) GenType(e *gen.Entity) *jen.File {
	f := t.helper.NewFile(e.Bucket)
	switch e.Kind {
	case gen.EntityEnum:
		genEnum(f, e)
	case gen.EntityInput:
		genInput(t.helper, f, e)
	default:
		genEntityTree(t.helper, f, e)
	}
	return f
}

// Verify Target implements gen.Target at compile time.
var _ gen.Target = (*Target)(nil)
