package gen

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/gqlgo/compiler/ir"
)

// JenniferGenerator generates code using Jennifer.
// Planning completes before any file is rendered, so rendering runs in
// parallel over immutable entities:
// - Auto-tracking imports (no goimports needed)
// - One file per top-level entity, written by a bounded worker pool
// - Unchanged files are left untouched
type JenniferGenerator struct {
	doc    *ir.Document
	cfg    *Config
	target Target
	log    *slog.Logger

	planOnce sync.Once
	plan     *Plan
	planErr  error
	metrics  WriterMetrics
}

// NewJenniferGenerator creates a new Jennifer-based generator for doc.
// You must call WithTarget() to set a target before calling Generate().
//
// Example:
//
//	import "github.com/syssam/gqlgo/compiler/gen/golang"
//
//	g := gen.NewJenniferGenerator(doc, cfg)
//	g.WithTarget(golang.NewTarget(g))
//	g.Generate(ctx)
func NewJenniferGenerator(doc *ir.Document, cfg *Config) *JenniferGenerator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg = cfg.snapshot()
	return &JenniferGenerator{
		doc: doc,
		cfg: cfg,
		log: cfg.Logger,
	}
}

// WithTarget sets the target language backend.
func (g *JenniferGenerator) WithTarget(t Target) *JenniferGenerator {
	if t != nil {
		g.target = t
	}
	return g
}

// Config returns the configuration of the run.
func (g *JenniferGenerator) Config() *Config {
	return g.cfg
}

// BuildPlan resolves and plans the document. The plan is computed once.
func (g *JenniferGenerator) BuildPlan() (*Plan, error) {
	g.planOnce.Do(func() {
		start := time.Now()
		g.plan, g.planErr = NewPlanner(g.doc, g.cfg).Plan()
		if g.planErr != nil {
			return
		}
		counts := g.plan.Count()
		g.log.Debug("plan complete",
			"operations", counts[BucketRoot],
			"fragments", counts[BucketFragment],
			"types", counts[BucketType],
			"duration", time.Since(start),
		)
	})
	return g.plan, g.planErr
}

// Generate plans the document and renders every entity to its file.
// Any error aborts the run.
func (g *JenniferGenerator) Generate(ctx context.Context) error {
	if g.target == nil {
		return NewConfigError("Target", nil, "no target set: call WithTarget() before Generate()")
	}
	start := time.Now()
	plan, err := g.BuildPlan()
	if err != nil {
		return err
	}
	if err := checkPaths(plan); err != nil {
		return err
	}

	out := g.cfg.Output()
	w := NewWriter(out)
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(out.Workers)
	for _, e := range plan.Entities {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := g.render(e)
			if err != nil {
				return err
			}
			return w.Write(f, plan.FilePath(e), e.Origin)
		})
	}
	if err := errg.Wait(); err != nil {
		return err
	}
	removed, err := w.Prune()
	if err != nil {
		return err
	}
	for _, rel := range removed {
		g.log.Debug("removed stale file", "file", rel)
	}

	g.metrics = w.Metrics()
	g.log.Info("generation complete",
		"target", g.target.Name(),
		"dir", g.cfg.RootDir(),
		"written", g.metrics.FilesGenerated,
		"unchanged", g.metrics.FilesUnchanged,
		"removed", g.metrics.FilesRemoved,
		"bytes", g.metrics.TotalBytes,
		"duration", time.Since(start),
	)
	return nil
}

// Metrics returns the metrics of the last Generate call.
func (g *JenniferGenerator) Metrics() WriterMetrics {
	return g.metrics
}

func (g *JenniferGenerator) render(e *Entity) (*jen.File, error) {
	var f *jen.File
	switch e.Kind {
	case EntityOperation:
		f = g.target.GenOperation(e)
	case EntityFragment:
		f = g.target.GenFragment(e)
	case EntityShared, EntityEnum, EntityInput:
		f = g.target.GenType(e)
	default:
		return nil, NewInternalError("generate", fmt.Sprintf("%s entity %s is not top-level", e.Kind, e.Name), nil)
	}
	if f == nil {
		return nil, NewInternalError("generate", "target "+g.target.Name()+" rendered no file for "+e.Name, nil)
	}
	return f, nil
}

// checkPaths rejects two entities planned to the same file.
func checkPaths(plan *Plan) error {
	seen := make(map[string]*Entity, len(plan.Entities))
	for _, e := range plan.Entities {
		p := plan.FilePath(e)
		if prev, ok := seen[p]; ok {
			return NewInternalError("plan", fmt.Sprintf("%s and %s are both planned to %s", prev.Origin, e.Origin, p), nil)
		}
		seen[p] = e
	}
	return nil
}

// =============================================================================
// GeneratorHelper interface implementation
// These exported methods allow target packages to access helper functionality.
// =============================================================================

// NewFile creates a new Jennifer file for the bucket's package with the
// standard header comment.
func (g *JenniferGenerator) NewFile(b Bucket) *jen.File {
	plan := g.Plan()
	f := jen.NewFilePathName(plan.PkgPath(b), plan.PkgNameOf(b))
	f.HeaderComment(g.cfg.Header)
	for _, other := range []Bucket{BucketRoot, BucketType, BucketFragment} {
		f.ImportName(plan.PkgPath(other), plan.PkgNameOf(other))
	}
	f.ImportName(RuntimePkg, "gqlgo")
	return f
}

// Plan returns the plan, or nil if planning failed or has not run.
func (g *JenniferGenerator) Plan() *Plan {
	plan, err := g.BuildPlan()
	if err != nil {
		return nil
	}
	return plan
}

// Ref returns a reference to an entity.
func (g *JenniferGenerator) Ref(e *Entity) jen.Code {
	return g.ref(e)
}

// GoType returns the Go type of a field.
func (g *JenniferGenerator) GoType(f *EntityField) jen.Code {
	return g.goType(f.Type, f.Target)
}

// ElemType returns the Go type of a descriptor bound to target.
func (g *JenniferGenerator) ElemType(d *TypeDescriptor, target *Entity) jen.Code {
	return g.goType(d, target)
}

// RuntimePkg returns the import path of the runtime package.
func (g *JenniferGenerator) RuntimePkg() string {
	return RuntimePkg
}

// Verify JenniferGenerator implements GeneratorHelper at compile time.
var _ GeneratorHelper = (*JenniferGenerator)(nil)

// =============================================================================
// Internal helper methods (unexported)
// =============================================================================

// ref qualifies the entity with its package path. Jennifer drops the
// qualifier inside the entity's own package.
func (g *JenniferGenerator) ref(e *Entity) *jen.Statement {
	return jen.Qual(g.Plan().PkgPath(e.Bucket), e.Name)
}

// goType wraps the base type according to the position's nullability.
func (g *JenniferGenerator) goType(d *TypeDescriptor, target *Entity) jen.Code {
	base := g.baseType(d, target)
	switch d.Nullability {
	case OptionalWrapped:
		return jen.Qual(RuntimePkg, "Optional").Types(base)
	case RawNullable:
		if d.RawPointer() {
			return jen.Op("*").Add(base)
		}
	}
	return base
}

func (g *JenniferGenerator) baseType(d *TypeDescriptor, target *Entity) jen.Code {
	switch d.Kind {
	case DescList:
		elem := g.goType(d.Elem, target)
		if d.Container == ContainerList {
			return jen.Qual(RuntimePkg, "List").Types(elem)
		}
		return jen.Index().Add(elem)
	case DescScalar:
		if d.PkgPath != "" {
			return jen.Qual(d.PkgPath, d.Name)
		}
		return jen.Id(d.Name)
	case DescEnum:
		return g.ref(target)
	case DescInput:
		return jen.Op("*").Add(g.ref(target))
	case DescComposite:
		if target.Abstract {
			return g.ref(target)
		}
		return jen.Op("*").Add(g.ref(target))
	}
	return jen.Any()
}
