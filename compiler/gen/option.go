package gen

import (
	"errors"
	"log/slog"
	"maps"
	"path"
	"strings"
)

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithCustomScalar maps a GraphQL scalar to a Go type expression of the form
// "importpath.Ident" or "Ident".
func WithCustomScalar(scalar, goType string) Option {
	return func(c *Config) error {
		if scalar == "" {
			return NewConfigError("CustomScalars", nil, "scalar name cannot be empty")
		}
		if _, _, err := parseGoType(goType); err != nil {
			return NewConfigError("CustomScalars", scalar+"="+goType, err.Error())
		}
		if c.CustomScalars == nil {
			c.CustomScalars = make(map[string]string)
		}
		c.CustomScalars[scalar] = goType
		return nil
	}
}

// WithCustomScalars adds every entry of m to the custom scalar table.
func WithCustomScalars(m map[string]string) Option {
	return func(c *Config) error {
		var errs []error
		for scalar, goType := range m {
			if err := WithCustomScalar(scalar, goType)(c); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}

// WithOptionalWrapping toggles gqlgo.Optional[T] for nullable positions.
// When disabled, nullable scalars and enums are rendered as pointers.
func WithOptionalWrapping(enabled bool) Option {
	return func(c *Config) error {
		c.UseOptionalWrapping = enabled
		return nil
	}
}

// WithAlternateCollection toggles gqlgo.List[T] for list positions.
func WithAlternateCollection(enabled bool) Option {
	return func(c *Config) error {
		c.UseAlternateCollection = enabled
		return nil
	}
}

// WithOutputRoot sets the output root directory.
func WithOutputRoot(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("OutputRoot", nil, "output root cannot be empty")
		}
		c.OutputRoot = dir
		return nil
	}
}

// WithPackageQualifier sets the import path of the generated root package.
// For example: "github.com/org/app/graphql".
func WithPackageQualifier(q string) Option {
	return func(c *Config) error {
		q = strings.Trim(q, "/")
		if q == "" {
			return NewConfigError("PackageQualifier", nil, "package qualifier cannot be empty")
		}
		if path.Clean(q) != q || strings.Contains(q, "..") {
			return NewConfigError("PackageQualifier", q, "package qualifier must be a clean slash-separated path")
		}
		c.PackageQualifier = q
		return nil
	}
}

// WithWorkers sets the number of files rendered in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithPromotionThreshold sets how many distinct operations or fragments must
// share a nested selection shape before it is generated in the type bucket.
func WithPromotionThreshold(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("PromotionThreshold", n, "threshold must be at least 1")
		}
		c.PromotionThreshold = n
		return nil
	}
}

// WithLogger sets the logger used for plan and write summaries.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	cp := *c
	cp.CustomScalars = maps.Clone(c.CustomScalars)
	return &cp
}
