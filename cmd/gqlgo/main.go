// gqlgo generates typed Go code for GraphQL operations.
//
// Usage:
//
//	gqlgo -ir ir.json -out ./internal -pkg example.com/app/internal/graphql
//	gqlgo -schema schema.graphql -query queries.graphql -scalar Date=time.Time
//	gqlgo -config gqlgo.yml -watch
//
// Flags override the values of the project file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/syssam/gqlgo/compiler"
	"github.com/syssam/gqlgo/compiler/gen"
	"github.com/syssam/gqlgo/compiler/load"
)

// listFlag collects repeated or comma-separated flag values.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			*l = append(*l, s)
		}
	}
	return nil
}

// scalarFlag collects Scalar=go.Type mappings.
type scalarFlag map[string]string

func (m scalarFlag) String() string {
	parts := make([]string, 0, len(m))
	for k, v := range m {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (m scalarFlag) Set(v string) error {
	name, typ, ok := strings.Cut(v, "=")
	if !ok || name == "" || typ == "" {
		return fmt.Errorf("want Scalar=go.Type, got %q", v)
	}
	m[name] = typ
	return nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("gqlgo", flag.ContinueOnError)
	var (
		schemas, queries listFlag
		scalars          = scalarFlag{}
		configPath       = fs.String("config", "", "project file (YAML)")
		irPath           = fs.String("ir", "", "serialized IR document (.json, .yaml, .msgpack)")
		out              = fs.String("out", "", "output root directory")
		pkg              = fs.String("pkg", "", "import path of the generated root package")
		header           = fs.String("header", "", "header comment of generated files")
		rawNullable      = fs.Bool("raw-nullable", false, "represent nullable values as pointers instead of gqlgo.Optional")
		altList          = fs.Bool("list", false, "represent lists as gqlgo.List instead of slices")
		workers          = fs.Int("workers", 0, "number of files rendered in parallel")
		threshold        = fs.Int("promote", 0, "owners needed to promote a nested selection to the type package")
		dump             = fs.String("dump", "", "write the loaded IR document to this file and exit")
		watch            = fs.Bool("watch", false, "regenerate when an input file changes")
		verbose          = fs.Bool("v", false, "debug logging")
	)
	fs.Var(&schemas, "schema", "GraphQL schema file (repeatable)")
	fs.Var(&queries, "query", "GraphQL operation file (repeatable)")
	fs.Var(scalars, "scalar", "custom scalar mapping Scalar=go.Type (repeatable)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With("run", fmt.Sprintf("gqlgo-%s", uuid.NewString()))

	project := &compiler.Project{}
	if *configPath != "" {
		p, err := compiler.ReadProject(*configPath)
		if err != nil {
			log.Error("read project", "error", err)
			return 1
		}
		project = p
	}
	if *irPath != "" {
		project.IR = *irPath
	}
	if len(schemas) > 0 {
		project.Schema = schemas
	}
	if len(queries) > 0 {
		project.Operations = queries
	}

	opts := append(project.Options(), gen.WithLogger(log))
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if len(scalars) > 0 {
		opts = append(opts, gen.WithCustomScalars(scalars))
	}
	if set["out"] {
		opts = append(opts, gen.WithOutputRoot(*out))
	}
	if set["pkg"] {
		opts = append(opts, gen.WithPackageQualifier(*pkg))
	}
	if set["header"] {
		opts = append(opts, gen.WithHeader(*header))
	}
	if set["raw-nullable"] {
		opts = append(opts, gen.WithOptionalWrapping(!*rawNullable))
	}
	if set["list"] {
		opts = append(opts, gen.WithAlternateCollection(*altList))
	}
	if set["workers"] {
		opts = append(opts, gen.WithWorkers(*workers))
	}
	if set["promote"] {
		opts = append(opts, gen.WithPromotionThreshold(*threshold))
	}

	if *dump != "" {
		doc, err := compiler.Load(project.Input)
		if err == nil {
			err = load.Save(doc, *dump)
		}
		if err != nil {
			log.Error("dump IR", "error", err)
			return 1
		}
		log.Info("IR written", "file", *dump)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	generate := func(ctx context.Context) error {
		return compiler.Generate(ctx, project.Input, opts...)
	}
	if *watch {
		files := project.Files()
		log.Info("watching", "files", len(files))
		if err := compiler.NewWatcher(files, 0, log).Run(ctx, generate); err != nil {
			log.Error("watch", "error", err)
			return 1
		}
		return 0
	}
	if err := generate(ctx); err != nil {
		log.Error("generation failed", "error", err)
		var mapErr *gen.MappingError
		if errors.As(err, &mapErr) {
			fmt.Fprintf(os.Stderr, "map the scalar with -scalar %s=<go type>\n", mapErr.Scalar)
		}
		return 1
	}
	return 0
}
