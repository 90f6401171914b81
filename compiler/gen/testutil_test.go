package gen

import (
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gqlgo/compiler/ir"
)

func testTypes() []*ir.TypeDefinition {
	return []*ir.TypeDefinition{
		{Kind: ir.KindObject, Name: "Query"},
		{Kind: ir.KindInterface, Name: "Character", PossibleTypes: []string{"Human", "Droid"}},
		{Kind: ir.KindObject, Name: "Human"},
		{Kind: ir.KindObject, Name: "Droid"},
		{Kind: ir.KindObject, Name: "Starship"},
		{Kind: ir.KindUnion, Name: "SearchResult", PossibleTypes: []string{"Human", "Starship"}},
		{Kind: ir.KindEnum, Name: "Episode", EnumValues: []*ir.EnumValue{{Name: "NEWHOPE"}, {Name: "EMPIRE"}}},
		{Kind: ir.KindInputObject, Name: "ReviewInput", InputFields: []*ir.InputField{
			{Name: "stars", Type: ir.NonNull(ir.Named("Int"))},
			{Name: "episode", Type: ir.Named("Episode")},
		}},
		{Kind: ir.KindScalar, Name: "Date"},
	}
}

func field(name, typ string, sel ...ir.Selection) *ir.Field {
	return &ir.Field{Name: name, Type: ir.MustParseTypeRef(typ), SelectionSet: sel}
}

func aliased(alias, name, typ string, sel ...ir.Selection) *ir.Field {
	f := field(name, typ, sel...)
	f.Alias = alias
	return f
}

func spread(name string) *ir.FragmentSpread {
	return &ir.FragmentSpread{Name: name}
}

func on(typ string, sel ...ir.Selection) *ir.InlineFragment {
	return &ir.InlineFragment{TypeCondition: typ, SelectionSet: sel}
}

func query(name string, sel ...ir.Selection) *ir.Operation {
	return &ir.Operation{
		Name:         name,
		Kind:         ir.Query,
		RootType:     "Query",
		SelectionSet: sel,
		Source:       "query " + name + " { ... }",
	}
}

func fragment(name, on string, sel ...ir.Selection) *ir.Fragment {
	return &ir.Fragment{
		Name:          name,
		TypeCondition: on,
		SelectionSet:  sel,
		Source:        "fragment " + name + " on " + on + " { ... }",
	}
}

// heroQuery is a query selecting an identifier, a nullable name and a list
// of polymorphic friends with a Human-specific field.
func heroQuery() *ir.Operation {
	return query("Hero",
		field("id", "ID!"),
		field("name", "String"),
		field("friends", "[Character]",
			field("__typename", "String!"),
			field("name", "String"),
			on("Human", field("height", "Float")),
		),
	)
}

func newDoc(ops []*ir.Operation, frags ...*ir.Fragment) *ir.Document {
	return ir.NewDocument(ops, frags, testTypes())
}

func mustPlan(t testing.TB, doc *ir.Document, opts ...Option) *Plan {
	t.Helper()
	require.NoError(t, ir.Link(doc))
	plan, err := NewPlanner(doc, MustNewConfig(opts...)).Plan()
	require.NoError(t, err)
	return plan
}

func planErr(t testing.TB, doc *ir.Document, opts ...Option) error {
	t.Helper()
	require.NoError(t, ir.Link(doc))
	_, err := NewPlanner(doc, MustNewConfig(opts...)).Plan()
	require.Error(t, err)
	return err
}

func entity(t testing.TB, plan *Plan, b Bucket, name string) *Entity {
	t.Helper()
	e, ok := plan.Lookup(b, name)
	require.True(t, ok, "entity %s not planned in %s", name, b)
	return e
}

func names(entities []*Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.Name
	}
	return out
}

// stubTarget renders every entity as an empty file declaring its name.
type stubTarget struct {
	h GeneratorHelper
}

func (s *stubTarget) Name() string { return "stub" }

func (s *stubTarget) GenOperation(e *Entity) *jen.File { return s.gen(e) }
func (s *stubTarget) GenFragment(e *Entity) *jen.File  { return s.gen(e) }
func (s *stubTarget) GenType(e *Entity) *jen.File      { return s.gen(e) }

func (s *stubTarget) gen(e *Entity) *jen.File {
	f := s.h.NewFile(e.Bucket)
	f.Type().Id(e.Name).Struct()
	return f
}

// nilTarget renders nothing.
type nilTarget struct{}

func (nilTarget) Name() string                    { return "nil" }
func (nilTarget) GenOperation(*Entity) *jen.File { return nil }
func (nilTarget) GenFragment(*Entity) *jen.File  { return nil }
func (nilTarget) GenType(*Entity) *jen.File      { return nil }
