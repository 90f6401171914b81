package load

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/gqlgo/compiler/ir"
)

func loadStarWars(t *testing.T) *ir.Document {
	t.Helper()
	dir := filepath.Join("testdata", "starwars")
	doc, err := LoadGraphQL(
		[]string{filepath.Join(dir, "schema.graphql")},
		[]string{filepath.Join(dir, "queries.graphql")},
	)
	require.NoError(t, err)
	return doc
}

func TestLoadGraphQL_Operations(t *testing.T) {
	doc := loadStarWars(t)
	require.Len(t, doc.Operations, 3)

	hero, ok := doc.Operation("Hero")
	require.True(t, ok)
	assert.Equal(t, ir.Query, hero.Kind)
	assert.Equal(t, "Query", hero.RootType)
	assert.Equal(t, filepath.Join("testdata", "starwars", "queries.graphql"), hero.Origin)
	assert.Contains(t, hero.Source, "query Hero")
	assert.NotContains(t, hero.Source, "fragment HumanDetails")

	require.Len(t, hero.Variables, 1)
	v := hero.Variables[0]
	assert.Equal(t, "episode", v.Name)
	assert.Equal(t, "Episode", v.Type.String())
	require.NotNil(t, v.DefaultValue)
	assert.Equal(t, "JEDI", *v.DefaultValue)

	heroField := hero.SelectionSet[0].(*ir.Field)
	assert.Equal(t, "Character", heroField.Type.String())
	typename := heroField.SelectionSet[0].(*ir.Field)
	assert.Equal(t, "String!", typename.Type.String())
	id := heroField.SelectionSet[1].(*ir.Field)
	assert.Equal(t, "ID!", id.Type.String())
	friends := heroField.SelectionSet[3].(*ir.Field)
	assert.Equal(t, "[Character]", friends.Type.String())
	inline := friends.SelectionSet[1].(*ir.InlineFragment)
	assert.Equal(t, "Human", inline.TypeCondition)
	assert.Equal(t, "Float", inline.SelectionSet[0].(*ir.Field).Type.String())

	review, ok := doc.Operation("CreateReview")
	require.True(t, ok)
	assert.Equal(t, ir.Mutation, review.Kind)
	assert.Equal(t, "Mutation", review.RootType)
	note := review.SelectionSet[0].(*ir.Field).SelectionSet[1].(*ir.Field)
	assert.Equal(t, "note", note.Alias)
	assert.Equal(t, "commentary", note.Name)
	assert.Equal(t, "ReviewInput!", review.Variables[1].Type.String())
}

func TestLoadGraphQL_Fragments(t *testing.T) {
	doc := loadStarWars(t)
	f, ok := doc.Fragment("HumanDetails")
	require.True(t, ok)
	assert.Equal(t, "Human", f.TypeCondition)
	assert.Contains(t, f.Source, "fragment HumanDetails on Human")
	require.Len(t, f.SelectionSet, 2)

	spreadOp, _ := doc.Operation("HumanWithDetails")
	human := spreadOp.SelectionSet[0].(*ir.Field)
	assert.Equal(t, "Human", human.Type.String())
	assert.Equal(t, &ir.FragmentSpread{Name: "HumanDetails"}, human.SelectionSet[0])
}

func TestLoadGraphQL_Types(t *testing.T) {
	doc := loadStarWars(t)

	var names []string
	for _, typ := range doc.Types {
		names = append(names, typ.Name)
	}
	assert.Equal(t, []string{
		"Episode", "Date", "Character", "Human", "Droid", "Starship",
		"SearchResult", "Review", "ReviewInput", "Query", "Mutation",
	}, names)

	episode, _ := doc.Type("Episode")
	assert.Equal(t, ir.KindEnum, episode.Kind)
	assert.Equal(t, "The episodes in the Star Wars trilogy", episode.Description)
	require.Len(t, episode.EnumValues, 3)
	assert.Contains(t, episode.EnumValues[0].Description, "A New Hope")
	assert.False(t, episode.EnumValues[0].Deprecated)
	assert.True(t, episode.EnumValues[2].Deprecated)

	assert.Equal(t, []string{"Human", "Droid"}, doc.PossibleTypes("Character"))
	assert.Equal(t, []string{"Human", "Droid", "Starship"}, doc.PossibleTypes("SearchResult"))
	assert.Equal(t, ir.KindScalar, doc.KindOf("Date"))

	input, _ := doc.Type("ReviewInput")
	require.Len(t, input.InputFields, 2)
	assert.Equal(t, "Int!", input.InputFields[0].Type.String())
	require.NotNil(t, input.InputFields[1].DefaultValue)
	assert.Equal(t, `"none"`, *input.InputFields[1].DefaultValue)
}

func TestFromGraphQL_Errors(t *testing.T) {
	schema := &ast.Source{Name: "schema.graphql", Input: `
		type Query { hero: Hero }
		type Hero { name: String }
	`}
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"syntax error", `query Q { hero { `, "queries.graphql"},
		{"anonymous operation", `{ hero { name } }`, "anonymous operations"},
		{"undefined field", `query Q { hero { age } }`, `"age" is not a field of Hero`},
		{"missing root type", `mutation M { hero { name } }`, "mutation root type"},
		{"undefined type condition", `query Q { hero { ... on Droid { name } } }`, `"Droid" is not defined`},
		{"undefined fragment", `query Q { hero { ...Missing } }`, "Missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromGraphQL([]*ast.Source{schema}, []*ast.Source{{Name: "queries.graphql", Input: tt.query}})
			require.Error(t, err)
			assert.True(t, ir.IsInputError(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("invalid schema", func(t *testing.T) {
		_, err := FromGraphQL([]*ast.Source{{Name: "s.graphql", Input: `type Query { x: Missing }`}}, nil)
		require.Error(t, err)
		assert.True(t, ir.IsInputError(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadGraphQL([]string{filepath.Join(t.TempDir(), "none.graphql")}, nil)
		require.Error(t, err)
	})
}
