// Package compiler loads IR documents and generates Go code for them in one
// call. It is the entry point used by the gqlgo command.
//
//	err := compiler.Generate(ctx, compiler.Input{IR: "ir.json"},
//	    gen.WithOutputRoot("./internal"),
//	    gen.WithPackageQualifier("example.com/app/internal/graphql"),
//	)
package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/syssam/gqlgo/compiler/gen"
	"github.com/syssam/gqlgo/compiler/gen/golang"
	"github.com/syssam/gqlgo/compiler/ir"
	"github.com/syssam/gqlgo/compiler/load"
)

// Input names the files a document is loaded from: either one serialized
// IR file, or GraphQL schema and operation files.
type Input struct {
	IR         string   `yaml:"ir,omitempty"`
	Schema     []string `yaml:"schema,omitempty"`
	Operations []string `yaml:"operations,omitempty"`
}

// Files returns every input file.
func (in Input) Files() []string {
	var files []string
	if in.IR != "" {
		files = append(files, in.IR)
	}
	files = append(files, in.Schema...)
	return append(files, in.Operations...)
}

// Load reads and links the document named by in.
func Load(in Input) (*ir.Document, error) {
	switch {
	case in.IR != "" && (len(in.Schema) > 0 || len(in.Operations) > 0):
		return nil, gen.NewConfigError("Input", in, "an IR file and GraphQL sources are mutually exclusive")
	case in.IR != "":
		return load.Load(in.IR)
	case len(in.Schema) > 0:
		return load.LoadGraphQL(in.Schema, in.Operations)
	}
	return nil, gen.NewConfigError("Input", in, "no IR file or GraphQL schema given")
}

// Generate loads the document named by in and generates Go code for it.
func Generate(ctx context.Context, in Input, opts ...gen.Option) error {
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return err
	}
	doc, err := Load(in)
	if err != nil {
		return err
	}
	return golang.Generate(ctx, doc, cfg)
}

// Project is a gqlgo.yml project file.
type Project struct {
	Input `yaml:",inline"`

	CustomScalarTypeMap    map[string]string `yaml:"customScalarTypeMap,omitempty"`
	UseOptionalWrapping    *bool             `yaml:"useOptionalWrapping,omitempty"`
	UseAlternateCollection bool              `yaml:"useAlternateCollection,omitempty"`
	OutputRoot             string            `yaml:"outputRoot,omitempty"`
	PackageQualifier       string            `yaml:"packageQualifier,omitempty"`
	Header                 *string           `yaml:"header,omitempty"`
	Workers                int               `yaml:"workers,omitempty"`
	PromotionThreshold     int               `yaml:"promotionThreshold,omitempty"`
}

// ReadProject reads a project file. Relative input and output paths are
// resolved against the directory of the file.
func ReadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gqlgo: read project: %w", err)
	}
	p := &Project{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, gen.NewConfigError("Project", path, err.Error())
	}
	dir := filepath.Dir(path)
	p.IR = resolve(dir, p.IR)
	for i := range p.Schema {
		p.Schema[i] = resolve(dir, p.Schema[i])
	}
	for i := range p.Operations {
		p.Operations[i] = resolve(dir, p.Operations[i])
	}
	p.OutputRoot = resolve(dir, p.OutputRoot)
	return p, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Options returns the generator options set by the project. Unset fields
// keep their defaults.
func (p *Project) Options() []gen.Option {
	var opts []gen.Option
	if len(p.CustomScalarTypeMap) > 0 {
		opts = append(opts, gen.WithCustomScalars(p.CustomScalarTypeMap))
	}
	if p.UseOptionalWrapping != nil {
		opts = append(opts, gen.WithOptionalWrapping(*p.UseOptionalWrapping))
	}
	if p.UseAlternateCollection {
		opts = append(opts, gen.WithAlternateCollection(true))
	}
	if p.OutputRoot != "" {
		opts = append(opts, gen.WithOutputRoot(p.OutputRoot))
	}
	if p.PackageQualifier != "" {
		opts = append(opts, gen.WithPackageQualifier(p.PackageQualifier))
	}
	if p.Header != nil {
		opts = append(opts, gen.WithHeader(*p.Header))
	}
	if p.Workers != 0 {
		opts = append(opts, gen.WithWorkers(p.Workers))
	}
	if p.PromotionThreshold != 0 {
		opts = append(opts, gen.WithPromotionThreshold(p.PromotionThreshold))
	}
	return opts
}
