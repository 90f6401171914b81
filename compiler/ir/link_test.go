package ir

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func starWarsTypes() []*TypeDefinition {
	return []*TypeDefinition{
		{Kind: KindObject, Name: "Query"},
		{Kind: KindInterface, Name: "Character", PossibleTypes: []string{"Human", "Droid"}},
		{Kind: KindObject, Name: "Human"},
		{Kind: KindObject, Name: "Droid"},
		{Kind: KindEnum, Name: "Episode", EnumValues: []*EnumValue{{Name: "NEWHOPE"}, {Name: "EMPIRE"}}},
	}
}

func TestLink(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		doc := NewDocument([]*Operation{{
			Name:     "Hero",
			Kind:     Query,
			RootType: "Query",
			SelectionSet: SelectionSet{
				&Field{Name: "hero", Type: Named("Character"), SelectionSet: SelectionSet{
					&Field{Name: "name", Type: NonNull(Named("String"))},
					&FragmentSpread{Name: "HumanDetails"},
				}},
			},
		}}, []*Fragment{{
			Name:          "HumanDetails",
			TypeCondition: "Human",
			SelectionSet:  SelectionSet{&Field{Name: "height", Type: Named("Float")}},
		}}, starWarsTypes())

		require.NoError(t, Link(doc))
	})

	tests := []struct {
		name string
		doc  *Document
		want string
	}{
		{
			name: "dangling fragment spread",
			doc: NewDocument([]*Operation{{
				Name: "Hero", Kind: Query, RootType: "Query",
				SelectionSet: SelectionSet{&FragmentSpread{Name: "Missing"}},
			}}, nil, starWarsTypes()),
			want: "Missing",
		},
		{
			name: "unknown type condition",
			doc: NewDocument(nil, []*Fragment{{
				Name: "F", TypeCondition: "Starship",
			}}, starWarsTypes()),
			want: "Starship",
		},
		{
			name: "composite without selection set",
			doc: NewDocument([]*Operation{{
				Name: "Hero", Kind: Query, RootType: "Query",
				SelectionSet: SelectionSet{&Field{Name: "hero", Type: Named("Character")}},
			}}, nil, starWarsTypes()),
			want: "Hero.hero",
		},
		{
			name: "selection set on undefined type",
			doc: NewDocument([]*Operation{{
				Name: "Hero", Kind: Query, RootType: "Query",
				SelectionSet: SelectionSet{&Field{Name: "ship", Type: Named("Starship"), SelectionSet: SelectionSet{
					&Field{Name: "name", Type: Named("String")},
				}}},
			}}, nil, starWarsTypes()),
			want: "Starship",
		},
		{
			name: "duplicate operation",
			doc: NewDocument([]*Operation{
				{Name: "Hero", Kind: Query, RootType: "Query"},
				{Name: "Hero", Kind: Query, RootType: "Query"},
			}, nil, starWarsTypes()),
			want: "duplicate operation",
		},
		{
			name: "missing field type",
			doc: NewDocument([]*Operation{{
				Name: "Hero", Kind: Query, RootType: "Query",
				SelectionSet: SelectionSet{&Field{Name: "name"}},
			}}, nil, starWarsTypes()),
			want: "Hero.name",
		},
		{
			name: "possible type not an object",
			doc: NewDocument(nil, nil, []*TypeDefinition{
				{Kind: KindUnion, Name: "SearchResult", PossibleTypes: []string{"Nope"}},
			}),
			want: "Nope",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Link(tt.doc)
			require.Error(t, err)
			assert.True(t, IsInputError(err))
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDocumentLookups(t *testing.T) {
	first := &Fragment{Name: "Details", TypeCondition: "Human", Origin: "a.graphql"}
	second := &Fragment{Name: "Details", TypeCondition: "Droid", Origin: "b.graphql"}
	doc := NewDocument(nil, []*Fragment{first, second}, starWarsTypes())

	got, ok := doc.Fragment("Details")
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Len(t, doc.Fragments, 2)

	assert.Equal(t, []string{"Human", "Droid"}, doc.PossibleTypes("Character"))
	assert.Equal(t, []string{"Human"}, doc.PossibleTypes("Human"))
	assert.True(t, doc.IsPossibleType("Character", "Droid"))
	assert.False(t, doc.IsPossibleType("Human", "Droid"))
	assert.Equal(t, KindScalar, doc.KindOf("Date"))
	assert.Equal(t, KindEnum, doc.KindOf("Episode"))
}
