package load

import (
	"fmt"

	"github.com/syssam/gqlgo/compiler/ir"
)

// Document is the serialized form of an ir.Document. The same field names
// are used by every encoding.
type Document struct {
	Operations []*Operation      `json:"operations,omitempty" yaml:"operations,omitempty"`
	Fragments  []*Fragment       `json:"fragments,omitempty" yaml:"fragments,omitempty"`
	TypesUsed  []*TypeDefinition `json:"typesUsed,omitempty" yaml:"typesUsed,omitempty"`
}

// Operation is a serialized ir.Operation.
type Operation struct {
	OperationName string       `json:"operationName" yaml:"operationName"`
	OperationType string       `json:"operationType" yaml:"operationType"`
	RootType      string       `json:"rootType,omitempty" yaml:"rootType,omitempty"`
	Variables     []*Variable  `json:"variables,omitempty" yaml:"variables,omitempty"`
	Source        string       `json:"source,omitempty" yaml:"source,omitempty"`
	FilePath      string       `json:"filePath,omitempty" yaml:"filePath,omitempty"`
	SelectionSet  []*Selection `json:"selectionSet,omitempty" yaml:"selectionSet,omitempty"`
}

// Variable is a serialized ir.VariableDefinition.
type Variable struct {
	Name         string  `json:"name" yaml:"name"`
	Type         string  `json:"type" yaml:"type"`
	DefaultValue *string `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

// Fragment is a serialized ir.Fragment.
type Fragment struct {
	FragmentName  string       `json:"fragmentName" yaml:"fragmentName"`
	TypeCondition string       `json:"typeCondition" yaml:"typeCondition"`
	Source        string       `json:"source,omitempty" yaml:"source,omitempty"`
	FilePath      string       `json:"filePath,omitempty" yaml:"filePath,omitempty"`
	SelectionSet  []*Selection `json:"selectionSet,omitempty" yaml:"selectionSet,omitempty"`
}

// Selection kinds.
const (
	SelectionField          = "Field"
	SelectionFragmentSpread = "FragmentSpread"
	SelectionInlineFragment = "InlineFragment"
)

// Selection is a serialized field, fragment spread or inline fragment,
// discriminated by Kind.
type Selection struct {
	Kind          string       `json:"kind" yaml:"kind"`
	ResponseName  string       `json:"responseName,omitempty" yaml:"responseName,omitempty"`
	FieldName     string       `json:"fieldName,omitempty" yaml:"fieldName,omitempty"`
	Type          string       `json:"type,omitempty" yaml:"type,omitempty"`
	FragmentName  string       `json:"fragmentName,omitempty" yaml:"fragmentName,omitempty"`
	TypeCondition string       `json:"typeCondition,omitempty" yaml:"typeCondition,omitempty"`
	SelectionSet  []*Selection `json:"selectionSet,omitempty" yaml:"selectionSet,omitempty"`
}

// TypeDefinition is a serialized ir.TypeDefinition.
type TypeDefinition struct {
	Kind          string        `json:"kind" yaml:"kind"`
	Name          string        `json:"name" yaml:"name"`
	Description   string        `json:"description,omitempty" yaml:"description,omitempty"`
	EnumValues    []*EnumValue  `json:"enumValues,omitempty" yaml:"enumValues,omitempty"`
	PossibleTypes []string      `json:"possibleTypes,omitempty" yaml:"possibleTypes,omitempty"`
	InputFields   []*InputField `json:"inputFields,omitempty" yaml:"inputFields,omitempty"`
}

// EnumValue is a serialized ir.EnumValue.
type EnumValue struct {
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	IsDeprecated bool   `json:"isDeprecated,omitempty" yaml:"isDeprecated,omitempty"`
}

// InputField is a serialized ir.InputField.
type InputField struct {
	Name         string  `json:"name" yaml:"name"`
	Type         string  `json:"type" yaml:"type"`
	DefaultValue *string `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

// IR converts the serialized document to an unlinked ir.Document. Type
// references are parsed and selections are discriminated; everything else
// is checked by ir.Link.
func (d *Document) IR() (*ir.Document, error) {
	ops := make([]*ir.Operation, 0, len(d.Operations))
	for _, o := range d.Operations {
		op, err := o.ir()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	frags := make([]*ir.Fragment, 0, len(d.Fragments))
	for _, f := range d.Fragments {
		set, err := selections(f.FragmentName, f.SelectionSet)
		if err != nil {
			return nil, err
		}
		frags = append(frags, &ir.Fragment{
			Name:          f.FragmentName,
			TypeCondition: f.TypeCondition,
			SelectionSet:  set,
			Source:        f.Source,
			Origin:        f.FilePath,
		})
	}
	types := make([]*ir.TypeDefinition, 0, len(d.TypesUsed))
	for _, t := range d.TypesUsed {
		def, err := t.ir()
		if err != nil {
			return nil, err
		}
		types = append(types, def)
	}
	return ir.NewDocument(ops, frags, types), nil
}

func (o *Operation) ir() (*ir.Operation, error) {
	op := &ir.Operation{
		Name:     o.OperationName,
		Kind:     ir.OperationKind(o.OperationType),
		RootType: o.RootType,
		Source:   o.Source,
		Origin:   o.FilePath,
	}
	if op.RootType == "" {
		op.RootType = op.Kind.DefaultRootType()
	}
	for _, v := range o.Variables {
		ref, err := parseRef("variable", o.OperationName+".$"+v.Name, v.Type)
		if err != nil {
			return nil, err
		}
		op.Variables = append(op.Variables, &ir.VariableDefinition{
			Name:         v.Name,
			Type:         ref,
			DefaultValue: v.DefaultValue,
		})
	}
	set, err := selections(o.OperationName, o.SelectionSet)
	if err != nil {
		return nil, err
	}
	op.SelectionSet = set
	return op, nil
}

func selections(path string, in []*Selection) (ir.SelectionSet, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(ir.SelectionSet, 0, len(in))
	for _, s := range in {
		if s == nil {
			return nil, ir.NewInputError("selection", path, "empty selection", nil)
		}
		switch s.Kind {
		case SelectionField:
			name := s.ResponseName
			if name == "" {
				name = s.FieldName
			}
			fpath := path + "." + name
			ref, err := parseRef("field", fpath, s.Type)
			if err != nil {
				return nil, err
			}
			sub, err := selections(fpath, s.SelectionSet)
			if err != nil {
				return nil, err
			}
			f := &ir.Field{Name: s.FieldName, Type: ref, SelectionSet: sub}
			if s.ResponseName != "" && s.ResponseName != s.FieldName {
				f.Alias = s.ResponseName
			}
			out = append(out, f)
		case SelectionFragmentSpread:
			if s.FragmentName == "" {
				return nil, ir.NewInputError("fragment spread", path, "missing fragment name", nil)
			}
			out = append(out, &ir.FragmentSpread{Name: s.FragmentName})
		case SelectionInlineFragment:
			sub, err := selections(path, s.SelectionSet)
			if err != nil {
				return nil, err
			}
			out = append(out, &ir.InlineFragment{TypeCondition: s.TypeCondition, SelectionSet: sub})
		default:
			return nil, ir.NewInputError("selection", path, fmt.Sprintf("unknown selection kind %q", s.Kind), nil)
		}
	}
	return out, nil
}

func (t *TypeDefinition) ir() (*ir.TypeDefinition, error) {
	def := &ir.TypeDefinition{
		Kind:          ir.TypeKind(t.Kind),
		Name:          t.Name,
		Description:   t.Description,
		PossibleTypes: t.PossibleTypes,
	}
	for _, v := range t.EnumValues {
		def.EnumValues = append(def.EnumValues, &ir.EnumValue{
			Name:        v.Name,
			Description: v.Description,
			Deprecated:  v.IsDeprecated,
		})
	}
	for _, f := range t.InputFields {
		ref, err := parseRef("input field", t.Name+"."+f.Name, f.Type)
		if err != nil {
			return nil, err
		}
		def.InputFields = append(def.InputFields, &ir.InputField{
			Name:         f.Name,
			Type:         ref,
			DefaultValue: f.DefaultValue,
		})
	}
	return def, nil
}

func parseRef(kind, name, s string) (*ir.TypeRef, error) {
	if s == "" {
		return nil, ir.NewInputError(kind, name, "missing type", nil)
	}
	ref, err := ir.ParseTypeRef(s)
	if err != nil {
		return nil, ir.NewInputError(kind, name, "", err)
	}
	return ref, nil
}

// NewDocument converts an ir.Document to its serialized form.
func NewDocument(doc *ir.Document) *Document {
	d := &Document{}
	for _, op := range doc.Operations {
		o := &Operation{
			OperationName: op.Name,
			OperationType: string(op.Kind),
			RootType:      op.RootType,
			Source:        op.Source,
			FilePath:      op.Origin,
			SelectionSet:  newSelections(op.SelectionSet),
		}
		for _, v := range op.Variables {
			o.Variables = append(o.Variables, &Variable{
				Name:         v.Name,
				Type:         v.Type.String(),
				DefaultValue: v.DefaultValue,
			})
		}
		d.Operations = append(d.Operations, o)
	}
	for _, f := range doc.Fragments {
		d.Fragments = append(d.Fragments, &Fragment{
			FragmentName:  f.Name,
			TypeCondition: f.TypeCondition,
			Source:        f.Source,
			FilePath:      f.Origin,
			SelectionSet:  newSelections(f.SelectionSet),
		})
	}
	for _, t := range doc.Types {
		nt := &TypeDefinition{
			Kind:          string(t.Kind),
			Name:          t.Name,
			Description:   t.Description,
			PossibleTypes: t.PossibleTypes,
		}
		for _, v := range t.EnumValues {
			nt.EnumValues = append(nt.EnumValues, &EnumValue{
				Name:         v.Name,
				Description:  v.Description,
				IsDeprecated: v.Deprecated,
			})
		}
		for _, f := range t.InputFields {
			nt.InputFields = append(nt.InputFields, &InputField{
				Name:         f.Name,
				Type:         f.Type.String(),
				DefaultValue: f.DefaultValue,
			})
		}
		d.TypesUsed = append(d.TypesUsed, nt)
	}
	return d
}

func newSelections(set ir.SelectionSet) []*Selection {
	var out []*Selection
	for _, sel := range set {
		switch sel := sel.(type) {
		case *ir.Field:
			out = append(out, &Selection{
				Kind:         SelectionField,
				ResponseName: sel.ResponseName(),
				FieldName:    sel.Name,
				Type:         sel.Type.String(),
				SelectionSet: newSelections(sel.SelectionSet),
			})
		case *ir.FragmentSpread:
			out = append(out, &Selection{Kind: SelectionFragmentSpread, FragmentName: sel.Name})
		case *ir.InlineFragment:
			out = append(out, &Selection{
				Kind:          SelectionInlineFragment,
				TypeCondition: sel.TypeCondition,
				SelectionSet:  newSelections(sel.SelectionSet),
			})
		}
	}
	return out
}
