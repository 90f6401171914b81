// Package gqlgo is the runtime support package imported by code generated
// with the gqlgo compiler.
//
// The compiler (see package compiler and cmd/gqlgo) lowers a GraphQL IR
// document into Go source laid out in three packages under the configured
// package qualifier:
//
//	{qualifier}/
//	├── {Operation}.go       // operation data entities, variables, descriptors
//	├── type/
//	│   └── {Type}.go        // enums, input objects, shared selection shapes
//	└── fragment/
//	    └── {Fragment}.go    // fragment entities
//
// Generated entities use the types in this package for nullable and list
// positions, depending on the configured policies:
//
//   - Optional[T]: explicit optional wrapper (useOptionalWrapping)
//   - List[T]: immutable list container (useAlternateCollection)
//
// and the equality helpers (Eq, SliceEq, OptionalEq, ...) and FormatValue
// for their structural Equal and String methods.
package gqlgo
