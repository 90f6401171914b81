package load

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/syssam/gqlgo/compiler/ir"
)

// LoadGraphQL reads GraphQL schema files and operation files and lowers
// them to a linked IR document. Operations are not validated against the
// schema beyond resolving the type of every selected field.
func LoadGraphQL(schemaPaths, queryPaths []string) (*ir.Document, error) {
	schemas, err := readSources(schemaPaths)
	if err != nil {
		return nil, err
	}
	queries, err := readSources(queryPaths)
	if err != nil {
		return nil, err
	}
	return FromGraphQL(schemas, queries)
}

func readSources(paths []string) ([]*ast.Source, error) {
	sources := make([]*ast.Source, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("gqlgo: read GraphQL source: %w", err)
		}
		sources = append(sources, &ast.Source{Name: p, Input: string(data)})
	}
	return sources, nil
}

// FromGraphQL lowers GraphQL schema and operation sources to a linked IR
// document. Operations and fragments keep their source order; types are
// ordered by their position in the schema sources.
func FromGraphQL(schemaSources, querySources []*ast.Source) (*ir.Document, error) {
	schema, err := loadSchema(schemaSources)
	if err != nil {
		return nil, err
	}
	l := &lowerer{schema: schema}
	var (
		ops   []*ir.Operation
		frags []*ir.Fragment
	)
	for _, src := range querySources {
		qd, err := parseQuery(src)
		if err != nil {
			return nil, err
		}
		for _, op := range qd.Operations {
			lowered, err := l.operation(op)
			if err != nil {
				return nil, err
			}
			ops = append(ops, lowered)
		}
		for _, f := range qd.Fragments {
			lowered, err := l.fragment(f)
			if err != nil {
				return nil, err
			}
			frags = append(frags, lowered)
		}
	}
	types, err := l.types()
	if err != nil {
		return nil, err
	}
	doc := ir.NewDocument(ops, frags, types)
	if err := ir.Link(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func loadSchema(sources []*ast.Source) (*ast.Schema, error) {
	schema, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, ir.NewInputError("schema", "", "", err)
	}
	return schema, nil
}

func parseQuery(src *ast.Source) (*ast.QueryDocument, error) {
	qd, err := parser.ParseQuery(src)
	if err != nil {
		return nil, ir.NewInputError("document", src.Name, "", err)
	}
	return qd, nil
}

// lowerer converts parsed GraphQL documents to IR using the schema to type
// every selected field.
type lowerer struct {
	schema *ast.Schema
}

func (l *lowerer) operation(op *ast.OperationDefinition) (*ir.Operation, error) {
	if op.Name == "" {
		return nil, ir.NewInputError("operation", "", "anonymous operations are not supported", nil)
	}
	var root *ast.Definition
	switch op.Operation {
	case ast.Query:
		root = l.schema.Query
	case ast.Mutation:
		root = l.schema.Mutation
	case ast.Subscription:
		root = l.schema.Subscription
	}
	if root == nil {
		return nil, ir.NewInputError("operation", op.Name, fmt.Sprintf("schema does not define a %s root type", op.Operation), nil)
	}
	out := &ir.Operation{
		Name:     op.Name,
		Kind:     ir.OperationKind(op.Operation),
		RootType: root.Name,
		Source:   format(&ast.QueryDocument{Operations: ast.OperationList{op}}),
		Origin:   origin(op.Position),
	}
	for _, v := range op.VariableDefinitions {
		ref, err := typeRef("variable", op.Name+".$"+v.Variable, v.Type)
		if err != nil {
			return nil, err
		}
		out.Variables = append(out.Variables, &ir.VariableDefinition{
			Name:         v.Variable,
			Type:         ref,
			DefaultValue: literal(v.DefaultValue),
		})
	}
	set, err := l.selections(root, op.SelectionSet, op.Name)
	if err != nil {
		return nil, err
	}
	out.SelectionSet = set
	return out, nil
}

func (l *lowerer) fragment(f *ast.FragmentDefinition) (*ir.Fragment, error) {
	def, ok := l.schema.Types[f.TypeCondition]
	if !ok {
		return nil, ir.NewInputError("fragment", f.Name, fmt.Sprintf("type condition %q is not defined", f.TypeCondition), nil)
	}
	set, err := l.selections(def, f.SelectionSet, f.Name)
	if err != nil {
		return nil, err
	}
	return &ir.Fragment{
		Name:          f.Name,
		TypeCondition: f.TypeCondition,
		SelectionSet:  set,
		Source:        format(&ast.QueryDocument{Fragments: ast.FragmentDefinitionList{f}}),
		Origin:        origin(f.Position),
	}, nil
}

func (l *lowerer) selections(parent *ast.Definition, set ast.SelectionSet, path string) (ir.SelectionSet, error) {
	if len(set) == 0 {
		return nil, nil
	}
	out := make(ir.SelectionSet, 0, len(set))
	for _, sel := range set {
		switch sel := sel.(type) {
		case *ast.Field:
			f, err := l.field(parent, sel, path)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		case *ast.FragmentSpread:
			out = append(out, &ir.FragmentSpread{Name: sel.Name})
		case *ast.InlineFragment:
			target := parent
			if sel.TypeCondition != "" {
				def, ok := l.schema.Types[sel.TypeCondition]
				if !ok {
					return nil, ir.NewInputError("inline fragment", path, fmt.Sprintf("type condition %q is not defined", sel.TypeCondition), nil)
				}
				target = def
			}
			sub, err := l.selections(target, sel.SelectionSet, path)
			if err != nil {
				return nil, err
			}
			out = append(out, &ir.InlineFragment{TypeCondition: sel.TypeCondition, SelectionSet: sub})
		}
	}
	return out, nil
}

func (l *lowerer) field(parent *ast.Definition, sel *ast.Field, path string) (*ir.Field, error) {
	name := sel.Alias
	if name == "" {
		name = sel.Name
	}
	path += "." + name
	f := &ir.Field{Name: sel.Name}
	if name != sel.Name {
		f.Alias = name
	}
	if sel.Name == ir.TypenameField {
		f.Type = ir.NonNull(ir.Named(ir.ScalarString))
		return f, nil
	}
	def := parent.Fields.ForName(sel.Name)
	if def == nil {
		return nil, ir.NewInputError("field", path, fmt.Sprintf("%q is not a field of %s", sel.Name, parent.Name), nil)
	}
	ref, err := typeRef("field", path, def.Type)
	if err != nil {
		return nil, err
	}
	f.Type = ref
	if len(sel.SelectionSet) > 0 {
		named, ok := l.schema.Types[def.Type.Name()]
		if !ok {
			return nil, ir.NewInputError("field", path, fmt.Sprintf("type %q is not defined", def.Type.Name()), nil)
		}
		if f.SelectionSet, err = l.selections(named, sel.SelectionSet, path); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// types lowers every schema type that is not built in, in source order.
func (l *lowerer) types() ([]*ir.TypeDefinition, error) {
	defs := make([]*ast.Definition, 0, len(l.schema.Types))
	for _, def := range l.schema.Types {
		if def.BuiltIn {
			continue
		}
		defs = append(defs, def)
	}
	slices.SortFunc(defs, byPosition)
	out := make([]*ir.TypeDefinition, 0, len(defs))
	for _, def := range defs {
		t := &ir.TypeDefinition{
			Kind:        ir.TypeKind(def.Kind),
			Name:        def.Name,
			Description: def.Description,
		}
		switch def.Kind {
		case ast.Enum:
			for _, v := range def.EnumValues {
				t.EnumValues = append(t.EnumValues, &ir.EnumValue{
					Name:        v.Name,
					Description: v.Description,
					Deprecated:  v.Directives.ForName("deprecated") != nil,
				})
			}
		case ast.Union:
			t.PossibleTypes = slices.Clone(def.Types)
		case ast.Interface:
			possible := slices.Clone(l.schema.GetPossibleTypes(def))
			slices.SortFunc(possible, byPosition)
			for _, p := range possible {
				t.PossibleTypes = append(t.PossibleTypes, p.Name)
			}
		case ast.InputObject:
			for _, f := range def.Fields {
				ref, err := typeRef("input field", def.Name+"."+f.Name, f.Type)
				if err != nil {
					return nil, err
				}
				t.InputFields = append(t.InputFields, &ir.InputField{
					Name:         f.Name,
					Type:         ref,
					DefaultValue: literal(f.DefaultValue),
				})
			}
		}
		out = append(out, t)
	}
	return out, nil
}

func byPosition(a, b *ast.Definition) int {
	pa, pb := a.Position, b.Position
	switch {
	case pa == nil || pb == nil:
		return cmp.Compare(a.Name, b.Name)
	case pa.Src != nil && pb.Src != nil && pa.Src.Name != pb.Src.Name:
		return cmp.Compare(pa.Src.Name, pb.Src.Name)
	}
	return cmp.Compare(pa.Start, pb.Start)
}

func typeRef(kind, name string, t *ast.Type) (*ir.TypeRef, error) {
	ref, err := ir.ParseTypeRef(t.String())
	if err != nil {
		return nil, ir.NewInputError(kind, name, "", err)
	}
	return ref, nil
}

func literal(v *ast.Value) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}

func origin(pos *ast.Position) string {
	if pos == nil || pos.Src == nil {
		return ""
	}
	return pos.Src.Name
}

// format renders a document with the canonical GraphQL formatting.
func format(doc *ast.QueryDocument) string {
	var b strings.Builder
	formatter.NewFormatter(&b).FormatQueryDocument(doc)
	return strings.TrimSpace(b.String())
}
