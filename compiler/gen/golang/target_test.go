package golang

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gqlgo/compiler/gen"
	"github.com/syssam/gqlgo/compiler/ir"
)

func TestTarget_Name(t *testing.T) {
	assert.Equal(t, "go", NewTarget(nil).Name())
}

func TestGenOperation_Query(t *testing.T) {
	doc := ir.NewDocument([]*ir.Operation{heroQuery()}, nil, starWarsTypes())
	g := newGenerator(t, doc)
	file := NewTarget(g).GenOperation(lookup(t, g, gen.BucketRoot, "Hero"))
	require.NotNil(t, file)

	code := file.GoString()
	requireParses(t, code)

	t.Run("header and package", func(t *testing.T) {
		assert.Contains(t, code, "// Code generated by gqlgo. DO NOT EDIT.")
		assert.Contains(t, code, "package graphql")
	})
	t.Run("response data", func(t *testing.T) {
		assert.Contains(t, code, "type Hero struct")
		assert.Contains(t, code, "hero gqlgo.Optional[Hero_Hero]")
		assert.Contains(t, code, "func (e *Hero) GetHero() gqlgo.Optional[Hero_Hero]")
		assert.Contains(t, code, "func (e *Hero) Equal(o *Hero) bool")
		assert.Contains(t, code, "func (e *Hero) ToBuilder() *HeroBuilder")
		assert.Contains(t, code, "func NewHeroBuilder() *HeroBuilder")
		assert.Contains(t, code, "func (b *HeroBuilder) SetHero(v gqlgo.Optional[Hero_Hero]) *HeroBuilder")
	})
	t.Run("polymorphic nested entities", func(t *testing.T) {
		assert.Contains(t, code, "type Hero_Hero interface")
		assert.Contains(t, code, "GetID() string")
		assert.Contains(t, code, "type Hero_Hero_Friend interface")
		assert.Contains(t, code, "GetTypename() string")
		assert.Contains(t, code, "isHero_Hero_Friend()")
		assert.Contains(t, code, `Hero_Hero_FriendTypenameHuman = "Human"`)
		assert.Contains(t, code, "var Hero_Hero_FriendTypenames = []string{Hero_Hero_FriendTypenameHuman, Hero_Hero_FriendTypenameDroid}")
		assert.Contains(t, code, "func (*Hero_Hero_Friend_Human) Typename() string")
		assert.Contains(t, code, "func (e *Hero_Hero_Friend_Human) GetHeight() gqlgo.Optional[float64]")
		assert.Contains(t, code, "func (e *Hero_Hero_Friend_Human) Equal(other Hero_Hero_Friend) bool")
		assert.Contains(t, code, "var _ Hero_Hero_Friend = (*Hero_Hero_Friend_Human)(nil)")
		assert.Contains(t, code, "func EqualHero_Hero_Friend(a, b Hero_Hero_Friend) bool")
		assert.NotContains(t, code, "Hero_Hero_Friend_Droid) GetHeight")
	})
	t.Run("equality", func(t *testing.T) {
		assert.Contains(t, code, "GetFriends() gqlgo.Optional[[]Hero_Hero_Friend]")
		assert.Contains(t, code, "gqlgo.OptionalEq(gqlgo.SliceEq(EqualHero_Hero_Friend))(e.friends, o.friends)")
		assert.Contains(t, code, "gqlgo.Eq[string](e.id, o.id)")
		assert.Contains(t, code, "gqlgo.OptionalEq(EqualHero_Hero)(e.hero, o.hero)")
	})
	t.Run("operation descriptor", func(t *testing.T) {
		assert.Contains(t, code, `const HeroOperationName = "Hero"`)
		assert.Contains(t, code, "const HeroDocument = ")
		assert.Contains(t, code, "Episode gqlgo.Optional[types.Episode] `json:\"episode,omitzero\"` // Defaults to NEWHOPE.")
		assert.Contains(t, code, "func NewHeroOperation(vars HeroVariables) *HeroOperation")
		assert.Contains(t, code, "func (*HeroOperation) OperationType() gqlgo.OperationType")
		assert.Contains(t, code, "return gqlgo.OperationQuery")
		assert.Contains(t, code, "var _ gqlgo.Operation = (*HeroOperation)(nil)")
	})
}

func TestGenOperation_RawNullable(t *testing.T) {
	doc := ir.NewDocument([]*ir.Operation{heroQuery()}, nil, starWarsTypes())
	g := newGenerator(t, doc, gen.WithOptionalWrapping(false))
	code := NewTarget(g).GenOperation(lookup(t, g, gen.BucketRoot, "Hero")).GoString()
	requireParses(t, code)

	assert.Contains(t, code, "hero Hero_Hero\n")
	assert.Contains(t, code, "GetName() *string")
	assert.Contains(t, code, "GetFriends() []Hero_Hero_Friend")
	assert.Contains(t, code, "GetID() string")
	assert.Contains(t, code, "gqlgo.PtrEq(gqlgo.Eq[string])(e.name, o.name)")
	assert.Contains(t, code, "gqlgo.SliceEq(EqualHero_Hero_Friend)(e.friends, o.friends)")
	assert.Contains(t, code, "`json:\"episode,omitempty\"`")
	assert.NotContains(t, code, "gqlgo.Optional[")
}

func TestGenOperation_AlternateCollection(t *testing.T) {
	doc := ir.NewDocument([]*ir.Operation{heroQuery()}, nil, starWarsTypes())
	g := newGenerator(t, doc, gen.WithOptionalWrapping(false), gen.WithAlternateCollection(true))
	code := NewTarget(g).GenOperation(lookup(t, g, gen.BucketRoot, "Hero")).GoString()
	requireParses(t, code)

	assert.Contains(t, code, "GetFriends() *gqlgo.List[Hero_Hero_Friend]")
	assert.Contains(t, code, "gqlgo.PtrEq(gqlgo.ListEq(EqualHero_Hero_Friend))(e.friends, o.friends)")
}

func TestGenOperation_Mutation(t *testing.T) {
	doc := ir.NewDocument([]*ir.Operation{reviewMutation()}, nil, starWarsTypes())
	g := newGenerator(t, doc, gen.WithCustomScalar("Date", "time.Time"))
	code := NewTarget(g).GenOperation(lookup(t, g, gen.BucketRoot, "CreateReview")).GoString()
	requireParses(t, code)

	assert.Contains(t, code, "type CreateReview_CreateReview struct")
	assert.Contains(t, code, "GetCreatedAt() gqlgo.Optional[time.Time]")
	assert.Contains(t, code, "gqlgo.OptionalEq(gqlgo.DeepEq[time.Time])(e.createdAt, o.createdAt)")
	assert.Contains(t, code, "*types.ReviewInput")
	assert.Contains(t, code, "`json:\"review\"`")
	assert.Contains(t, code, "return gqlgo.OperationMutation")
	assert.Contains(t, code, `"time"`)
}

func TestGenOperation_FragmentSpread(t *testing.T) {
	tall := &ir.Operation{
		Name:     "Tall",
		Kind:     ir.Query,
		RootType: "Query",
		SelectionSet: ir.SelectionSet{
			&ir.Field{Name: "hero", Type: ir.NonNull(ir.Named("Character")), SelectionSet: ir.SelectionSet{
				&ir.Field{Name: "name", Type: ir.Named("String")},
				&ir.FragmentSpread{Name: "HumanDetails"},
			}},
		},
		Source: "query Tall { hero { name ...HumanDetails } }",
	}
	doc := ir.NewDocument([]*ir.Operation{tall}, []*ir.Fragment{humanDetails()}, starWarsTypes())
	g := newGenerator(t, doc)
	target := NewTarget(g)

	code := target.GenOperation(lookup(t, g, gen.BucketRoot, "Tall")).GoString()
	requireParses(t, code)
	assert.Contains(t, code, "humanDetailsFragment *fragment.HumanDetails")
	assert.Contains(t, code, "func (e *Tall_Hero_Human) GetHumanDetails() *fragment.HumanDetails")
	assert.Contains(t, code, "(*fragment.HumanDetails).Equal(e.humanDetailsFragment, o.humanDetailsFragment)")
	assert.Contains(t, code, "fragment HumanDetails on Human { height }")
	assert.Contains(t, code, `"graphql/fragment"`)
	assert.NotContains(t, code, "Tall_Hero_Droid) GetHumanDetails")

	frag := target.GenFragment(lookup(t, g, gen.BucketFragment, "HumanDetails")).GoString()
	requireParses(t, frag)
	assert.Contains(t, frag, "package fragment")
	assert.Contains(t, frag, "type HumanDetails struct")
	assert.Contains(t, frag, "height gqlgo.Optional[float64]")
	assert.Contains(t, frag, "func (e *HumanDetails) Equal(o *HumanDetails) bool")
	assert.NotContains(t, frag, "graphql/type")
}

func TestGenType(t *testing.T) {
	doc := ir.NewDocument([]*ir.Operation{reviewMutation()}, nil, starWarsTypes())
	g := newGenerator(t, doc, gen.WithCustomScalar("Date", "time.Time"))
	target := NewTarget(g)

	t.Run("enum", func(t *testing.T) {
		code := target.GenType(lookup(t, g, gen.BucketType, "Episode")).GoString()
		requireParses(t, code)
		assert.Contains(t, code, "package types")
		assert.Contains(t, code, "// The films of the original trilogy.")
		assert.Contains(t, code, "type Episode string")
		assert.Contains(t, code, `EpisodeNewhope Episode = "NEWHOPE"`)
		assert.Contains(t, code, "// Released in 1977.")
		assert.Contains(t, code, "// Deprecated: JEDI is deprecated in the schema.")
		assert.Contains(t, code, "func (Episode) Values() []Episode")
		assert.Contains(t, code, "case EpisodeNewhope, EpisodeEmpire, EpisodeJedi:")
		assert.Contains(t, code, "func (v Episode) String() string")
	})
	t.Run("input", func(t *testing.T) {
		code := target.GenType(lookup(t, g, gen.BucketType, "ReviewInput")).GoString()
		requireParses(t, code)
		assert.Contains(t, code, "type ReviewInput struct")
		assert.Contains(t, code, "`json:\"stars\"`")
		assert.Contains(t, code, "`json:\"commentary,omitzero\"` // Defaults to \"none\".")
	})
}

func TestGenEnum_NoValues(t *testing.T) {
	types := append(starWarsTypes(), &ir.TypeDefinition{Kind: ir.KindEnum, Name: "Empty"})
	op := &ir.Operation{
		Name: "E", Kind: ir.Query, RootType: "Query",
		Variables:    []*ir.VariableDefinition{{Name: "e", Type: ir.Named("Empty")}},
		SelectionSet: ir.SelectionSet{&ir.Field{Name: "ok", Type: ir.Named("Boolean")}},
	}
	g := newGenerator(t, ir.NewDocument([]*ir.Operation{op}, nil, types))
	code := NewTarget(g).GenType(lookup(t, g, gen.BucketType, "Empty")).GoString()
	requireParses(t, code)
	assert.Contains(t, code, "return []Empty{}")
	assert.NotContains(t, code, "switch")
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	doc := ir.NewDocument(
		[]*ir.Operation{heroQuery(), reviewMutation()},
		[]*ir.Fragment{humanDetails()},
		starWarsTypes(),
	)
	require.NoError(t, ir.Link(doc))
	cfg, err := gen.NewConfig(gen.WithOutputRoot(dir), gen.WithCustomScalar("Date", "time.Time"))
	require.NoError(t, err)

	require.NoError(t, Generate(context.Background(), doc, cfg))

	for _, rel := range []string{
		"graphql/Hero.go",
		"graphql/CreateReview.go",
		"graphql/fragment/HumanDetails.go",
		"graphql/type/Episode.go",
		"graphql/type/ReviewInput.go",
	} {
		t.Run(rel, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
			require.NoError(t, err)
			requireParses(t, string(data))
		})
	}

	t.Run("rerun leaves files untouched", func(t *testing.T) {
		generator := gen.NewJenniferGenerator(doc, cfg)
		generator.WithTarget(NewTarget(generator))
		require.NoError(t, generator.Generate(context.Background()))
		m := generator.Metrics()
		assert.Equal(t, 0, m.FilesGenerated)
		assert.Equal(t, 5, m.FilesUnchanged)
	})
}

func TestGenerate_Errors(t *testing.T) {
	t.Run("nil document", func(t *testing.T) {
		err := Generate(context.Background(), nil, nil)
		require.Error(t, err)
		assert.True(t, gen.IsInputError(err))
	})
	t.Run("unmapped custom scalar", func(t *testing.T) {
		dir := t.TempDir()
		doc := ir.NewDocument([]*ir.Operation{reviewMutation()}, nil, starWarsTypes())
		require.NoError(t, ir.Link(doc))
		cfg, err := gen.NewConfig(gen.WithOutputRoot(dir))
		require.NoError(t, err)

		err = Generate(context.Background(), doc, cfg)
		require.Error(t, err)
		assert.True(t, gen.IsMappingError(err))
		assert.Contains(t, err.Error(), "Date")
		entries, _ := os.ReadDir(dir)
		assert.Empty(t, entries)
	})
}
