package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gqlgo/compiler/ir"
)

func TestInputError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewInputError("fragment", "HeroDetails", "undefined fragment", cause)

		assert.Contains(t, err.Error(), "gqlgo: input error")
		assert.Contains(t, err.Error(), "fragment HeroDetails")
		assert.Contains(t, err.Error(), "undefined fragment")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Is matches ErrInvalidInput", func(t *testing.T) {
		err := NewInputError("type", "Foo", "", nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, err, ir.ErrInvalidInput)
	})

	t.Run("IsInputError helper", func(t *testing.T) {
		assert.True(t, IsInputError(fmt.Errorf("wrapped: %w", NewInputError("type", "Foo", "", nil))))
		assert.False(t, IsInputError(errors.New("other")))
	})
}

func TestMappingError(t *testing.T) {
	t.Run("Error message with path", func(t *testing.T) {
		err := NewMappingError("Date", "Hero.hero.birthday")

		assert.Contains(t, err.Error(), "gqlgo: mapping error")
		assert.Contains(t, err.Error(), "scalar Date")
		assert.Contains(t, err.Error(), "field Hero.hero.birthday")
	})

	t.Run("Error message without path", func(t *testing.T) {
		err := NewMappingError("Date", "")
		assert.NotContains(t, err.Error(), "field")
	})

	t.Run("Is matches ErrUnmappedScalar", func(t *testing.T) {
		assert.ErrorIs(t, NewMappingError("Date", ""), ErrUnmappedScalar)
	})

	t.Run("IsMappingError helper", func(t *testing.T) {
		assert.True(t, IsMappingError(NewMappingError("Date", "")))
		assert.False(t, IsMappingError(errors.New("other")))
	})
}

func TestConflictError(t *testing.T) {
	err := NewConflictError("name", "Hero.hero", ir.Named("String"), ir.List(ir.Named("String")), "different list depths")

	assert.Contains(t, err.Error(), "field conflict on name at Hero.hero")
	assert.Contains(t, err.Error(), "String and [String]")
	assert.Contains(t, err.Error(), "different list depths")
	assert.ErrorIs(t, err, ErrFieldConflict)
	assert.True(t, IsConflictError(err))
	assert.False(t, IsConflictError(errors.New("other")))
}

func TestCollisionError(t *testing.T) {
	t.Run("Error message names both origins", func(t *testing.T) {
		err := NewCollisionError("Details", "fragment", "fragment Details (a.graphql)", "fragment Details (b.graphql)")

		assert.Contains(t, err.Error(), `"Details" in fragment`)
		assert.Contains(t, err.Error(), "a.graphql")
		assert.Contains(t, err.Error(), "b.graphql")
	})

	t.Run("Empty scope is the root bucket", func(t *testing.T) {
		err := NewCollisionError("Hero", "", "operation Hero", "operation hero")
		assert.Contains(t, err.Error(), "in root")
	})

	t.Run("Is matches ErrNameCollision", func(t *testing.T) {
		err := NewCollisionError("Hero", "", "a", "b")
		assert.ErrorIs(t, err, ErrNameCollision)
		assert.True(t, IsCollisionError(err))
		assert.False(t, IsCollisionError(errors.New("other")))
	})
}

func TestInternalError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewInternalError("plan", "undiscovered type Episode", cause)

		assert.Contains(t, err.Error(), "gqlgo: internal error in plan")
		assert.Contains(t, err.Error(), "undiscovered type Episode")
		assert.Contains(t, err.Error(), "root cause")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewInternalError("plan", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("IsInternalError helper", func(t *testing.T) {
		assert.True(t, IsInternalError(NewInternalError("plan", "x", nil)))
		assert.False(t, IsInternalError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Workers", 0, "workers must be positive")

		assert.Contains(t, err.Error(), "gqlgo: config error")
		assert.Contains(t, err.Error(), "Workers")
		assert.Contains(t, err.Error(), "value: 0")
		assert.Contains(t, err.Error(), "workers must be positive")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("OutputRoot", nil, "cannot be empty")

		assert.Contains(t, err.Error(), "OutputRoot")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.ErrorIs(t, err, ErrMissingConfig)
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewGenerationError("write", "graphql/Hero.go", "create directory", cause)

		assert.Contains(t, err.Error(), "gqlgo: generation error in phase write")
		assert.Contains(t, err.Error(), "(file: graphql/Hero.go)")
		assert.Contains(t, err.Error(), "create directory")
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("Unwrap and Is", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewGenerationError("write", "", "", cause)

		require.Equal(t, cause, err.Unwrap())
		assert.ErrorIs(t, err, ErrGenerationFailed)
		assert.True(t, IsGenerationError(err))
		assert.False(t, IsGenerationError(errors.New("other")))
	})
}
