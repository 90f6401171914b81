package golang

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/gqlgo/compiler/gen"
	"github.com/syssam/gqlgo/compiler/ir"
)

func starWarsTypes() []*ir.TypeDefinition {
	return []*ir.TypeDefinition{
		{Kind: ir.KindObject, Name: "Query"},
		{Kind: ir.KindObject, Name: "Mutation"},
		{Kind: ir.KindInterface, Name: "Character", PossibleTypes: []string{"Human", "Droid"}},
		{Kind: ir.KindObject, Name: "Human"},
		{Kind: ir.KindObject, Name: "Droid"},
		{Kind: ir.KindObject, Name: "Review"},
		{Kind: ir.KindEnum, Name: "Episode", Description: "The films of the original trilogy.", EnumValues: []*ir.EnumValue{
			{Name: "NEWHOPE", Description: "Released in 1977."},
			{Name: "EMPIRE"},
			{Name: "JEDI", Deprecated: true},
		}},
		{Kind: ir.KindInputObject, Name: "ReviewInput", InputFields: []*ir.InputField{
			{Name: "stars", Type: ir.NonNull(ir.Named("Int"))},
			{Name: "commentary", Type: ir.Named("String"), DefaultValue: ptr(`"none"`)},
		}},
		{Kind: ir.KindScalar, Name: "Date"},
	}
}

func ptr[T any](v T) *T { return &v }

// heroQuery selects id, name and friends, with a Human-specific field on
// every friend.
func heroQuery() *ir.Operation {
	return &ir.Operation{
		Name:     "Hero",
		Kind:     ir.Query,
		RootType: "Query",
		Variables: []*ir.VariableDefinition{
			{Name: "episode", Type: ir.Named("Episode"), DefaultValue: ptr("NEWHOPE")},
		},
		SelectionSet: ir.SelectionSet{
			&ir.Field{Name: "hero", Type: ir.Named("Character"), SelectionSet: ir.SelectionSet{
				&ir.Field{Name: "id", Type: ir.NonNull(ir.Named("ID"))},
				&ir.Field{Name: "name", Type: ir.Named("String")},
				&ir.Field{Name: "friends", Type: ir.List(ir.Named("Character")), SelectionSet: ir.SelectionSet{
					&ir.Field{Name: "__typename", Type: ir.NonNull(ir.Named("String"))},
					&ir.Field{Name: "name", Type: ir.Named("String")},
					&ir.InlineFragment{TypeCondition: "Human", SelectionSet: ir.SelectionSet{
						&ir.Field{Name: "height", Type: ir.Named("Float")},
					}},
				}},
			}},
		},
		Source: "query Hero($episode: Episode = NEWHOPE) { hero { id name friends { __typename name ... on Human { height } } } }",
	}
}

func reviewMutation() *ir.Operation {
	return &ir.Operation{
		Name:     "CreateReview",
		Kind:     ir.Mutation,
		RootType: "Mutation",
		Variables: []*ir.VariableDefinition{
			{Name: "episode", Type: ir.NonNull(ir.Named("Episode"))},
			{Name: "review", Type: ir.NonNull(ir.Named("ReviewInput"))},
		},
		SelectionSet: ir.SelectionSet{
			&ir.Field{Name: "createReview", Type: ir.Named("Review"), SelectionSet: ir.SelectionSet{
				&ir.Field{Name: "stars", Type: ir.NonNull(ir.Named("Int"))},
				&ir.Field{Name: "createdAt", Type: ir.Named("Date")},
			}},
		},
		Source: "mutation CreateReview($episode: Episode!, $review: ReviewInput!) { createReview { stars createdAt } }",
	}
}

func humanDetails() *ir.Fragment {
	return &ir.Fragment{
		Name:          "HumanDetails",
		TypeCondition: "Human",
		SelectionSet:  ir.SelectionSet{&ir.Field{Name: "height", Type: ir.Named("Float")}},
		Source:        "fragment HumanDetails on Human { height }",
	}
}

// newGenerator links doc and returns a generator with a completed plan.
func newGenerator(t *testing.T, doc *ir.Document, opts ...gen.Option) *gen.JenniferGenerator {
	t.Helper()
	require.NoError(t, ir.Link(doc))
	cfg, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	g := gen.NewJenniferGenerator(doc, cfg)
	_, err = g.BuildPlan()
	require.NoError(t, err)
	return g
}

func lookup(t *testing.T, g *gen.JenniferGenerator, b gen.Bucket, name string) *gen.Entity {
	t.Helper()
	e, ok := g.Plan().Lookup(b, name)
	require.True(t, ok, "entity %s not planned in %s", name, b)
	return e
}

// requireParses fails the test if code is not valid Go source.
func requireParses(t *testing.T, code string) {
	t.Helper()
	_, err := parser.ParseFile(token.NewFileSet(), "", code, parser.AllErrors)
	require.NoError(t, err, code)
}
