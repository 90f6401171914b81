package gen

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputConfig(t *testing.T) {
	t.Run("returns grouped output settings", func(t *testing.T) {
		c := &Config{
			OutputRoot:       "./out",
			PackageQualifier: "github.com/test/project/graphql",
			Header:           "Custom header",
			Workers:          3,
		}

		output := c.Output()

		assert.Equal(t, "./out", output.Root)
		assert.Equal(t, "github.com/test/project/graphql", output.Qualifier)
		assert.Equal(t, "Custom header", output.Header)
		assert.Equal(t, 3, output.Workers)
	})

	t.Run("handles empty config", func(t *testing.T) {
		output := (&Config{}).Output()

		assert.Empty(t, output.Root)
		assert.Empty(t, output.Qualifier)
		assert.Empty(t, output.Header)
	})
}

func TestPolicyConfig(t *testing.T) {
	t.Run("returns grouped mapping policies", func(t *testing.T) {
		c := &Config{
			CustomScalars:          map[string]string{"Date": "time.Time"},
			UseOptionalWrapping:    true,
			UseAlternateCollection: true,
		}

		policy := c.Policy()

		assert.Equal(t, map[string]string{"Date": "time.Time"}, policy.CustomScalars)
		assert.True(t, policy.UseOptionalWrapping)
		assert.True(t, policy.UseAlternateCollection)
	})

	t.Run("custom scalars are copied", func(t *testing.T) {
		c := &Config{CustomScalars: map[string]string{"Date": "time.Time"}}
		policy := c.Policy()
		c.CustomScalars["Date"] = "string"

		assert.Equal(t, "time.Time", policy.CustomScalars["Date"])
	})
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	assert.True(t, c.UseOptionalWrapping)
	assert.False(t, c.UseAlternateCollection)
	assert.Empty(t, c.CustomScalars)
	assert.Equal(t, ".", c.OutputRoot)
	assert.Equal(t, "graphql", c.PackageQualifier)
	assert.Equal(t, "Code generated by gqlgo. DO NOT EDIT.", c.Header)
	assert.Equal(t, 2, c.PromotionThreshold)
	assert.Positive(t, c.Workers)
}

func TestNewConfig(t *testing.T) {
	t.Run("applies options", func(t *testing.T) {
		c, err := NewConfig(WithOptionalWrapping(false), WithPackageQualifier("example.com/app/gql"))
		require.NoError(t, err)

		assert.False(t, c.UseOptionalWrapping)
		assert.Equal(t, "example.com/app/gql", c.PackageQualifier)
	})

	t.Run("returns the first option error", func(t *testing.T) {
		_, err := NewConfig(WithWorkers(0))
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("MustNewConfig panics on error", func(t *testing.T) {
		assert.Panics(t, func() { MustNewConfig(WithWorkers(-1)) })
	})
}

func TestConfigSnapshot(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		s := (&Config{}).snapshot()

		assert.NotNil(t, s.CustomScalars)
		assert.Positive(t, s.Workers)
		assert.Equal(t, defaultPromotionThreshold, s.PromotionThreshold)
		assert.Equal(t, defaultQualifier, s.PackageQualifier)
		assert.Equal(t, slog.Default(), s.Logger)
	})

	t.Run("shares no state with the original", func(t *testing.T) {
		c := MustNewConfig(WithCustomScalar("Date", "time.Time"))
		s := c.snapshot()
		c.CustomScalars["Date"] = "string"
		c.UseOptionalWrapping = false

		assert.Equal(t, "time.Time", s.CustomScalars["Date"])
		assert.True(t, s.UseOptionalWrapping)
	})
}

func TestRootDir(t *testing.T) {
	c := MustNewConfig(WithOutputRoot("out"), WithPackageQualifier("example.com/app/graphql"))
	assert.Equal(t, filepath.Join("out", "example.com", "app", "graphql"), c.RootDir())
}

func TestRootPkgName(t *testing.T) {
	tests := []struct {
		qualifier string
		want      string
	}{
		{"graphql", "graphql"},
		{"example.com/app/graphql", "graphql"},
		{"example.com/app/go-client", "goclient"},
		{"example.com/app/GraphQL", "graphql"},
		{"example.com/app/v2", "v2"},
		{"example.com/app/2fa", "pkg2fa"},
		{"example.com/app/type", "typepkg"},
		{"example.com/app/---", "graphql"},
	}
	for _, tt := range tests {
		t.Run(tt.qualifier, func(t *testing.T) {
			c := &Config{PackageQualifier: tt.qualifier}
			assert.Equal(t, tt.want, c.RootPkgName())
		})
	}
}
