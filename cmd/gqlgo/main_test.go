package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gqlgo/compiler/load"
)

var starwars = filepath.Join("..", "..", "compiler", "load", "testdata", "starwars")

func TestRun(t *testing.T) {
	t.Run("generates from graphql sources", func(t *testing.T) {
		out := t.TempDir()
		code := run([]string{
			"-schema", filepath.Join(starwars, "schema.graphql"),
			"-query", filepath.Join(starwars, "queries.graphql"),
			"-out", out,
			"-pkg", "example.com/app/graphql",
			"-raw-nullable",
		})
		require.Equal(t, 0, code)
		assert.FileExists(t, filepath.Join(out, "example.com", "app", "graphql", "Hero.go"))
	})

	t.Run("dumps the lowered document", func(t *testing.T) {
		dump := filepath.Join(t.TempDir(), "ir.msgpack")
		code := run([]string{
			"-schema", filepath.Join(starwars, "schema.graphql"),
			"-query", filepath.Join(starwars, "queries.graphql"),
			"-dump", dump,
		})
		require.Equal(t, 0, code)

		doc, err := load.Load(dump)
		require.NoError(t, err)
		assert.Len(t, doc.Operations, 3)
	})

	t.Run("generation errors exit with 1", func(t *testing.T) {
		assert.Equal(t, 1, run([]string{"-out", t.TempDir()}))
	})

	t.Run("bad flags exit with 2", func(t *testing.T) {
		assert.Equal(t, 2, run([]string{"-scalar", "Date"}))
	})
}

func TestScalarFlag(t *testing.T) {
	m := scalarFlag{}
	require.NoError(t, m.Set("Date=time.Time"))
	require.NoError(t, m.Set("UUID=github.com/google/uuid.UUID"))
	assert.Equal(t, "time.Time", m["Date"])
	assert.Equal(t, "github.com/google/uuid.UUID", m["UUID"])
	assert.Error(t, m.Set("=x"))
	assert.Error(t, m.Set("Date"))
}

func TestListFlag(t *testing.T) {
	var l listFlag
	require.NoError(t, l.Set("a.graphql, b.graphql"))
	require.NoError(t, l.Set("c.graphql"))
	assert.Equal(t, listFlag{"a.graphql", "b.graphql", "c.graphql"}, l)
	assert.Equal(t, "a.graphql,b.graphql,c.graphql", l.String())
}
