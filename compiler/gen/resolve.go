package gen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/gqlgo/compiler/ir"
)

type (
	// Shape is a selection set resolved under one type context: fragment
	// spreads and inline fragments are merged away and fields are grouped by
	// response name. Shapes are immutable once built.
	Shape struct {
		// TypeName is the GraphQL type the selection set applies to.
		TypeName string
		// Abstract is set for interface and union contexts.
		Abstract bool
		// Fields selected for every value of the type, in first-occurrence order.
		Fields []*ResolvedField
		// Fragments spread directly into the selection set that apply to
		// every value of the type.
		Fragments []string
		// Variants holds one entry per possible concrete type of an abstract
		// context, in declaration order.
		Variants []*Variant

		key          string
		fragmentFree bool
	}

	// ResolvedField is a field of a shape.
	ResolvedField struct {
		ResponseName string
		FieldName    string
		Type         *ir.TypeRef
		// Path locates the field from its operation or fragment, e.g.
		// "Hero.hero.friends".
		Path string
		// Shape is the resolved nested selection of a composite field.
		Shape *Shape
	}

	// Variant is the field set of an abstract shape for one concrete type.
	Variant struct {
		TypeName string
		// Fields holds every field selected for the concrete type, including
		// the common ones.
		Fields []*ResolvedField
		// Fragments lists the fragments that apply only to this type.
		Fragments []string
		// Specific lists the response names selected only for this type.
		Specific []string
	}
)

// Key returns the structural key of the shape. Two shapes with equal keys
// select the same fields with the same types under the same type context.
func (s *Shape) Key() string {
	return s.key
}

// FragmentFree reports whether neither the shape nor any shape nested in it
// references a fragment.
func (s *Shape) FragmentFree() bool {
	return s.fragmentFree
}

// Field returns the field with the given response name.
func (s *Shape) Field(name string) (*ResolvedField, bool) {
	for _, f := range s.Fields {
		if f.ResponseName == name {
			return f, true
		}
	}
	return nil, false
}

// Variant returns the variant of the given concrete type.
func (s *Shape) Variant(typeName string) (*Variant, bool) {
	for _, v := range s.Variants {
		if v.TypeName == typeName {
			return v, true
		}
	}
	return nil, false
}

func (s *Shape) finish() {
	var b strings.Builder
	s.fragmentFree = len(s.Fragments) == 0
	b.WriteString(s.TypeName)
	if s.Abstract {
		b.WriteString("!")
	}
	s.fragmentFree = writeFieldsKey(&b, s.Fields, s.Fragments) && s.fragmentFree
	for _, v := range s.Variants {
		b.WriteString("|")
		b.WriteString(v.TypeName)
		free := writeFieldsKey(&b, v.Fields, v.Fragments)
		s.fragmentFree = s.fragmentFree && free && len(v.Fragments) == 0
	}
	s.key = b.String()
}

func writeFieldsKey(b *strings.Builder, fields []*ResolvedField, frags []string) bool {
	free := true
	b.WriteString("{")
	for _, f := range fields {
		b.WriteString(f.ResponseName)
		b.WriteString(":")
		b.WriteString(f.FieldName)
		b.WriteString(":")
		b.WriteString(f.Type.String())
		if f.Shape != nil {
			b.WriteString("=")
			b.WriteString(f.Shape.key)
			free = free && f.Shape.fragmentFree
		}
		b.WriteString(";")
	}
	for _, name := range frags {
		b.WriteString("...")
		b.WriteString(name)
		b.WriteString(";")
	}
	b.WriteString("}")
	return free
}

// Resolver merges selection sets into shapes.
type Resolver struct {
	doc *ir.Document
}

// NewResolver returns a resolver over doc.
func NewResolver(doc *ir.Document) *Resolver {
	return &Resolver{doc: doc}
}

// ResolveOperation resolves the root selection set of op.
func (r *Resolver) ResolveOperation(op *ir.Operation) (*Shape, error) {
	root := op.RootType
	if root == "" {
		root = op.Kind.DefaultRootType()
	}
	return r.Resolve(root, []ir.SelectionSet{op.SelectionSet}, op.Name)
}

// ResolveFragment resolves the selection set of f under its type condition.
func (r *Resolver) ResolveFragment(f *ir.Fragment) (*Shape, error) {
	return r.Resolve(f.TypeCondition, []ir.SelectionSet{f.SelectionSet}, f.Name)
}

// Resolve merges sets under the named type. Paths in errors start at path.
func (r *Resolver) Resolve(typeName string, sets []ir.SelectionSet, path string) (*Shape, error) {
	kind := r.doc.KindOf(typeName)
	if !kind.IsComposite() {
		return nil, NewInputError("type", typeName, "selection set on non-composite type", nil)
	}
	s := &Shape{TypeName: typeName, Abstract: kind.IsAbstract()}
	c, err := r.collectAll(typeName, sets)
	if err != nil {
		return nil, err
	}
	if s.Fields, err = r.merge(c, path); err != nil {
		return nil, err
	}
	s.Fragments = c.fragments
	if s.Abstract {
		for _, possible := range r.doc.PossibleTypes(typeName) {
			v, err := r.resolveVariant(s, possible, sets, path)
			if err != nil {
				return nil, err
			}
			s.Variants = append(s.Variants, v)
		}
	}
	s.finish()
	return s, nil
}

func (r *Resolver) resolveVariant(s *Shape, typeName string, sets []ir.SelectionSet, path string) (*Variant, error) {
	c, err := r.collectAll(typeName, sets)
	if err != nil {
		return nil, err
	}
	fields, err := r.merge(c, path+"("+typeName+")")
	if err != nil {
		return nil, err
	}
	v := &Variant{TypeName: typeName, Fields: fields}
	for _, f := range fields {
		if _, ok := s.Field(f.ResponseName); !ok {
			v.Specific = append(v.Specific, f.ResponseName)
		}
	}
	for _, name := range c.fragments {
		if !slices.Contains(s.Fragments, name) {
			v.Fragments = append(v.Fragments, name)
		}
	}
	return v, nil
}

// collected accumulates the fields that apply to one type context.
type collected struct {
	order     []string
	fields    map[string][]*ir.Field
	fragments []string
}

func (r *Resolver) collectAll(target string, sets []ir.SelectionSet) (*collected, error) {
	c := &collected{fields: make(map[string][]*ir.Field)}
	for _, set := range sets {
		if err := r.collect(target, set, c, true); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// collect walks set in source order. Spreads are recorded as fragment
// references only when direct, that is, not reached through another fragment.
func (r *Resolver) collect(target string, set ir.SelectionSet, c *collected, direct bool) error {
	for _, sel := range set {
		switch sel := sel.(type) {
		case *ir.Field:
			name := sel.ResponseName()
			if _, ok := c.fields[name]; !ok {
				c.order = append(c.order, name)
			}
			c.fields[name] = append(c.fields[name], sel)
		case *ir.FragmentSpread:
			f, ok := r.doc.Fragment(sel.Name)
			if !ok {
				return NewInputError("fragment", sel.Name, "undefined fragment", nil)
			}
			if !r.applies(target, f.TypeCondition) {
				continue
			}
			if direct && !slices.Contains(c.fragments, f.Name) {
				c.fragments = append(c.fragments, f.Name)
			}
			if err := r.collect(target, f.SelectionSet, c, false); err != nil {
				return err
			}
		case *ir.InlineFragment:
			if sel.TypeCondition != "" && !r.applies(target, sel.TypeCondition) {
				continue
			}
			if err := r.collect(target, sel.SelectionSet, c, direct); err != nil {
				return err
			}
		default:
			return NewInternalError("resolve", fmt.Sprintf("unexpected selection %T", sel), nil)
		}
	}
	return nil
}

// applies reports whether every value of the target type statically
// satisfies the type condition.
func (r *Resolver) applies(target, cond string) bool {
	if cond == target {
		return true
	}
	targets := r.doc.PossibleTypes(target)
	if len(targets) == 0 {
		return false
	}
	for _, t := range targets {
		if !r.doc.IsPossibleType(cond, t) {
			return false
		}
	}
	return true
}

func (r *Resolver) merge(c *collected, path string) ([]*ResolvedField, error) {
	fields := make([]*ResolvedField, 0, len(c.order))
	for _, name := range c.order {
		occ := c.fields[name]
		first := occ[0]
		for _, o := range occ[1:] {
			if err := conflict(first, o, name, path); err != nil {
				return nil, err
			}
		}
		rf := &ResolvedField{
			ResponseName: name,
			FieldName:    first.Name,
			Type:         first.Type,
			Path:         path + "." + name,
		}
		named := first.Type.NamedType()
		if r.doc.KindOf(named).IsComposite() {
			sets := make([]ir.SelectionSet, 0, len(occ))
			for _, o := range occ {
				sets = append(sets, o.SelectionSet)
			}
			sub, err := r.Resolve(named, sets, rf.Path)
			if err != nil {
				return nil, err
			}
			rf.Shape = sub
		}
		fields = append(fields, rf)
	}
	return fields, nil
}

func conflict(a, b *ir.Field, name, path string) error {
	switch {
	case a.Name != b.Name:
		return NewConflictError(name, path, a.Type, b.Type,
			fmt.Sprintf("%s and %s are different fields", a.Name, b.Name))
	case a.Type.NamedType() != b.Type.NamedType():
		return NewConflictError(name, path, a.Type, b.Type, "different named types")
	case a.Type.ListDepth() != b.Type.ListDepth():
		return NewConflictError(name, path, a.Type, b.Type, "different list depths")
	}
	return nil
}

// CheckFragmentCycles reports an InputError if a fragment spreads itself,
// directly or through other fragments or nested fields.
func (r *Resolver) CheckFragmentCycles() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int)
	var stack []string
	var visit func(name string) error
	visit = func(name string) error {
		f, ok := r.doc.Fragment(name)
		if !ok {
			return NewInputError("fragment", name, "undefined fragment", nil)
		}
		switch state[name] {
		case visiting:
			i := slices.Index(stack, name)
			cycle := append(slices.Clone(stack[i:]), name)
			return NewInputError("fragment", name, "fragment spreads form a cycle: "+strings.Join(cycle, " -> "), nil)
		case done:
			return nil
		}
		state[name] = visiting
		stack = append(stack, name)
		for _, spread := range spreads(f.SelectionSet, nil) {
			if err := visit(spread); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
		return nil
	}
	for _, f := range r.doc.Fragments {
		if state[f.Name] == unvisited {
			if err := visit(f.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

// spreads appends the fragment names spread anywhere in set, in source order.
func spreads(set ir.SelectionSet, names []string) []string {
	for _, sel := range set {
		switch sel := sel.(type) {
		case *ir.Field:
			names = spreads(sel.SelectionSet, names)
		case *ir.FragmentSpread:
			if !slices.Contains(names, sel.Name) {
				names = append(names, sel.Name)
			}
		case *ir.InlineFragment:
			names = spreads(sel.SelectionSet, names)
		}
	}
	return names
}
