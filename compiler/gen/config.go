package gen

import (
	"go/token"
	"log/slog"
	"maps"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

const (
	// defaultHeader is the comment placed at the top of each generated file.
	defaultHeader = "Code generated by gqlgo. DO NOT EDIT."
	// defaultQualifier is used when no package qualifier is configured.
	defaultQualifier = "graphql"
	// defaultPromotionThreshold is the number of distinct operations or
	// fragments that must share a selection shape before it is promoted
	// to the type bucket.
	defaultPromotionThreshold = 2
	// RuntimePkg is the import path of the runtime package imported by
	// generated code.
	RuntimePkg = "github.com/syssam/gqlgo"
)

// Config holds the policies of a generation run. A Config is built once with
// NewConfig and must not be modified after it is handed to a generator.
type Config struct {
	// CustomScalars maps a GraphQL scalar name to a Go type expression,
	// either "importpath.Ident" (e.g. "time.Time") or a bare identifier.
	CustomScalars map[string]string
	// UseOptionalWrapping renders nullable positions as gqlgo.Optional[T]
	// instead of pointers.
	UseOptionalWrapping bool
	// UseAlternateCollection renders list positions as gqlgo.List[T]
	// instead of slices.
	UseAlternateCollection bool
	// OutputRoot is the directory the package qualifier is resolved under.
	OutputRoot string
	// PackageQualifier is the import path of the generated root package.
	// Files are written to OutputRoot/PackageQualifier/{,type/,fragment/}.
	PackageQualifier string
	// Header is the comment placed at the top of each generated file.
	Header string
	// Workers bounds the number of files rendered in parallel.
	Workers int
	// PromotionThreshold is the number of distinct operations or fragments
	// a nested selection shape must appear in before it is promoted to a
	// standalone type entity.
	PromotionThreshold int
	// Logger receives plan and write summaries.
	Logger *slog.Logger
}

// OutputConfig groups the settings that decide where and how files are
// written.
type OutputConfig struct {
	Root      string
	Qualifier string
	Header    string
	Workers   int
}

// Output returns the output settings.
func (c *Config) Output() OutputConfig {
	return OutputConfig{
		Root:      c.OutputRoot,
		Qualifier: c.PackageQualifier,
		Header:    c.Header,
		Workers:   c.Workers,
	}
}

// PolicyConfig groups the settings consulted by the type mapping engine.
type PolicyConfig struct {
	CustomScalars          map[string]string
	UseOptionalWrapping    bool
	UseAlternateCollection bool
}

// Policy returns the type mapping policies.
func (c *Config) Policy() PolicyConfig {
	return PolicyConfig{
		CustomScalars:          maps.Clone(c.CustomScalars),
		UseOptionalWrapping:    c.UseOptionalWrapping,
		UseAlternateCollection: c.UseAlternateCollection,
	}
}

// DefaultConfig returns a Config with the default policies: optional
// wrapping on, plain slices, no custom scalars.
func DefaultConfig() *Config {
	return &Config{
		CustomScalars:       make(map[string]string),
		UseOptionalWrapping: true,
		OutputRoot:          ".",
		PackageQualifier:    defaultQualifier,
		Header:              defaultHeader,
		Workers:             runtime.GOMAXPROCS(0),
		PromotionThreshold:  defaultPromotionThreshold,
	}
}

// NewConfig returns the default configuration with opts applied.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig is like NewConfig but panics on error.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// snapshot returns a copy that shares no mutable state with c.
func (c *Config) snapshot() *Config {
	cp := *c
	cp.CustomScalars = maps.Clone(c.CustomScalars)
	if cp.CustomScalars == nil {
		cp.CustomScalars = make(map[string]string)
	}
	if cp.Workers <= 0 {
		cp.Workers = runtime.GOMAXPROCS(0)
	}
	if cp.PromotionThreshold <= 0 {
		cp.PromotionThreshold = defaultPromotionThreshold
	}
	if cp.PackageQualifier == "" {
		cp.PackageQualifier = defaultQualifier
	}
	if cp.Logger == nil {
		cp.Logger = slog.Default()
	}
	return &cp
}

// RootDir returns the directory of the generated root package.
func (c *Config) RootDir() string {
	return filepath.Join(c.OutputRoot, filepath.FromSlash(c.PackageQualifier))
}

// RootPkgName returns the Go package name of the generated root package:
// the last element of the qualifier reduced to a valid identifier.
func (c *Config) RootPkgName() string {
	return packageName(path.Base(c.PackageQualifier))
}

func packageName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	name := b.String()
	switch {
	case name == "":
		return defaultQualifier
	case unicode.IsDigit(rune(name[0])):
		return "pkg" + name
	case token.IsKeyword(name):
		return name + "pkg"
	}
	return name
}
