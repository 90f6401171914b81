// Package gen plans and generates typed Go code for GraphQL operations.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	ir.Document (operations, fragments, types)
//	        ↓
//	   Resolver (selection sets → immutable Shapes)
//	        ↓
//	   TypeMapper (GraphQL type references → TypeDescriptors)
//	        ↓
//	   Planner (Shapes → named Entities in buckets)
//	        ↓
//	   Target (Entities → Jennifer files)
//	        ↓
//	   Writer (files under the output root)
//
// Planning completes before any file is written. A failure at any stage
// aborts the run and no files are written.
//
// # Buckets
//
// Every top-level entity lands in one of three buckets, each a separate Go
// package and a separate namespace:
//
//   - root: one entity per operation ({qualifier}/{Operation}.go)
//   - fragment: one entity per named fragment ({qualifier}/fragment/{Fragment}.go)
//   - type: enums, input objects and shared selections ({qualifier}/type/{Type}.go)
//
// Nested selections are rendered into the file of the entity that owns
// them. A nested selection used by at least PromotionThreshold operations
// and fragments, and spreading no fragment, is promoted to the type bucket.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - InputError: malformed or incomplete IR
//   - MappingError: a custom scalar without a Go type
//   - ConflictError: one response name selected with incompatible types
//   - CollisionError: two entities or members with the same Go name
//   - ConfigError: invalid configuration
//   - GenerationError: a file could not be rendered or written
//   - InternalError: a violated generator invariant
//
// Example error handling:
//
//	err := golang.Generate(ctx, doc, cfg)
//	var mapErr *gen.MappingError
//	if errors.As(err, &mapErr) {
//	    log.Printf("map scalar %s with --scalar %s=<go type>", mapErr.Scalar, mapErr.Scalar)
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithOutputRoot("./internal"),
//	    gen.WithPackageQualifier("example.com/app/internal/graphql"),
//	    gen.WithCustomScalar("Date", "time.Time"),
//	)
//
// # Usage
//
// The recommended way to generate code is through the golang package:
//
//	import "github.com/syssam/gqlgo/compiler/gen/golang"
//
//	err := golang.Generate(ctx, doc, cfg)
//
// Or manually configure the generator:
//
//	g := gen.NewJenniferGenerator(doc, cfg)
//	g.WithTarget(golang.NewTarget(g))
//	err := g.Generate(ctx)
//
// # Code Organization
//
//   - config.go, option.go: configuration
//   - errors.go: structured error types
//   - naming.go: Go identifier conversion
//   - typemap.go: type mapping engine
//   - resolve.go: selection resolver
//   - entity.go, plan.go: entity planner
//   - target.go: target interfaces
//   - generate.go, writer.go: Jennifer generator and file writer
package gen
