package gen

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/syssam/gqlgo/compiler/ir"
)

// Planner turns a document into a Plan. It resolves every operation and
// fragment, decides which entities to generate, names them and rejects
// collisions. A Planner is used for one run.
type Planner struct {
	doc      *ir.Document
	cfg      *Config
	mapper   *TypeMapper
	resolver *Resolver

	ops   []*ownerShape
	frags []*ownerShape

	// discovery state
	seq       int
	firstSeen map[string]int
	owners    map[string]map[string]struct{}
	types     map[string]*Entity
	typeSeq   map[*Entity]int

	scopes    map[Bucket]*scope
	fragments map[string]*Entity
	promoted  map[string]*Entity
	shared    []*Entity
}

// ownerShape is a resolved operation or fragment.
type ownerShape struct {
	op     *ir.Operation
	frag   *ir.Fragment
	shape  *Shape
	entity *Entity
}

func (o *ownerShape) id() string {
	if o.op != nil {
		return "operation " + o.op.Name
	}
	return "fragment " + o.frag.Name
}

// ownerCtx tracks the nested entities of one top-level entity.
type ownerCtx struct {
	top   *Entity
	local map[string]*Entity
}

// NewPlanner returns a planner for doc under cfg.
func NewPlanner(doc *ir.Document, cfg *Config) *Planner {
	cfg = cfg.snapshot()
	return &Planner{
		doc:       doc,
		cfg:       cfg,
		mapper:    NewTypeMapper(doc, cfg.Policy()),
		resolver:  NewResolver(doc),
		firstSeen: make(map[string]int),
		owners:    make(map[string]map[string]struct{}),
		types:     make(map[string]*Entity),
		typeSeq:   make(map[*Entity]int),
		scopes: map[Bucket]*scope{
			BucketRoot:     newScope(BucketRoot),
			BucketType:     newScope(BucketType),
			BucketFragment: newScope(BucketFragment),
		},
		fragments: make(map[string]*Entity),
		promoted:  make(map[string]*Entity),
	}
}

// Mapper returns the type mapper used by the planner.
func (p *Planner) Mapper() *TypeMapper {
	return p.mapper
}

// Plan resolves, plans and names every entity of the document.
func (p *Planner) Plan() (*Plan, error) {
	if err := p.resolve(); err != nil {
		return nil, err
	}
	p.discover()
	if err := p.claimNamed(); err != nil {
		return nil, err
	}
	plan := &Plan{
		Qualifier: p.cfg.PackageQualifier,
		PkgName:   p.cfg.RootPkgName(),
	}
	for _, o := range p.ops {
		if err := p.planOperation(o); err != nil {
			return nil, err
		}
		plan.Entities = append(plan.Entities, o.entity)
	}
	for _, o := range p.frags {
		ctx := &ownerCtx{top: o.entity, local: make(map[string]*Entity)}
		if err := p.fill(ctx, o.entity, o.shape); err != nil {
			return nil, err
		}
		plan.Entities = append(plan.Entities, o.entity)
	}
	typeEntities, err := p.planTypes()
	if err != nil {
		return nil, err
	}
	plan.Entities = append(plan.Entities, typeEntities...)
	return plan, nil
}

// resolve builds the shape of every operation and fragment.
func (p *Planner) resolve() error {
	if err := p.resolver.CheckFragmentCycles(); err != nil {
		return err
	}
	for _, op := range p.doc.Operations {
		s, err := p.resolver.ResolveOperation(op)
		if err != nil {
			return err
		}
		p.ops = append(p.ops, &ownerShape{op: op, shape: s})
	}
	for _, f := range p.doc.Fragments {
		s, err := p.resolver.ResolveFragment(f)
		if err != nil {
			return err
		}
		p.frags = append(p.frags, &ownerShape{frag: f, shape: s})
	}
	return nil
}

// discover records, in traversal order, the enums and input objects that are
// referenced and, per nested shape, the operations and fragments using it.
func (p *Planner) discover() {
	for _, o := range p.ops {
		for _, v := range o.op.Variables {
			p.discoverRef(v.Type)
		}
		p.walk(o.id(), o.shape)
	}
	for _, o := range p.frags {
		p.walk(o.id(), o.shape)
	}
}

func (p *Planner) walk(owner string, s *Shape) {
	visit := func(fields []*ResolvedField) {
		for _, f := range fields {
			p.discoverRef(f.Type)
			if f.Shape == nil {
				continue
			}
			key := f.Shape.Key()
			if _, ok := p.firstSeen[key]; !ok {
				p.firstSeen[key] = p.next()
			}
			if p.owners[key] == nil {
				p.owners[key] = make(map[string]struct{})
			}
			p.owners[key][owner] = struct{}{}
			p.walk(owner, f.Shape)
		}
	}
	// Only the fields fill plans count: an abstract shape with variants is
	// planned from the merged fields of each variant.
	if !s.Abstract || len(s.Variants) == 0 {
		visit(s.Fields)
		return
	}
	for _, v := range s.Variants {
		visit(v.Fields)
	}
}

func (p *Planner) discoverRef(ref *ir.TypeRef) {
	name := ref.NamedType()
	if _, ok := p.types[name]; ok {
		return
	}
	def, ok := p.doc.Type(name)
	if !ok {
		return
	}
	switch def.Kind {
	case ir.KindEnum:
		e := &Entity{
			Name:        pascal(name),
			Kind:        EntityEnum,
			Bucket:      BucketType,
			Origin:      "enum " + name,
			GraphQLType: name,
			Description: def.Description,
		}
		for _, v := range def.EnumValues {
			e.Values = append(e.Values, &EnumValue{
				Name:        v.Name,
				GoName:      enumConst(v.Name),
				Description: v.Description,
				Deprecated:  v.Deprecated,
			})
		}
		p.types[name] = e
		p.typeSeq[e] = p.next()
	case ir.KindInputObject:
		e := &Entity{
			Name:        pascal(name),
			Kind:        EntityInput,
			Bucket:      BucketType,
			Origin:      "input " + name,
			GraphQLType: name,
			Description: def.Description,
		}
		p.types[name] = e
		p.typeSeq[e] = p.next()
		for _, f := range def.InputFields {
			p.discoverRef(f.Type)
		}
	}
}

func (p *Planner) next() int {
	p.seq++
	return p.seq
}

// claimNamed registers the identifiers of every entity named by the
// document: operations, fragments, enums and input objects. A clash between
// them is a CollisionError.
func (p *Planner) claimNamed() error {
	root, frag, typ := p.scopes[BucketRoot], p.scopes[BucketFragment], p.scopes[BucketType]
	for _, o := range p.ops {
		origin := originOf("operation", o.op.Name, o.op.Origin)
		e := &Entity{
			Name:   pascal(o.op.Name),
			Kind:   EntityOperation,
			Bucket: BucketRoot,
			Origin: origin,
		}
		ids := append(entityIdents(e.Name, o.shape), operationIdents(e.Name)...)
		if err := root.claim(origin, ids...); err != nil {
			return err
		}
		o.entity = e
	}
	for _, o := range p.frags {
		origin := originOf("fragment", o.frag.Name, o.frag.Origin)
		e := &Entity{
			Name:   pascal(o.frag.Name),
			Kind:   EntityFragment,
			Bucket: BucketFragment,
			Origin: origin,
		}
		if err := frag.claim(origin, entityIdents(e.Name, o.shape)...); err != nil {
			return err
		}
		o.entity = e
		if _, ok := p.fragments[o.frag.Name]; !ok {
			p.fragments[o.frag.Name] = e
		}
	}
	for _, e := range p.sortedTypes() {
		if err := typ.claim(e.Origin, e.Name); err != nil {
			return err
		}
		for _, v := range e.Values {
			if err := typ.claim("enum value "+e.GraphQLType+"."+v.Name, e.Name+v.GoName); err != nil {
				return err
			}
		}
	}
	return nil
}

func originOf(kind, name, file string) string {
	if file == "" {
		return kind + " " + name
	}
	return kind + " " + name + " (" + file + ")"
}

func (p *Planner) sortedTypes() []*Entity {
	out := make([]*Entity, 0, len(p.types))
	for _, e := range p.types {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *Entity) int {
		return cmp.Compare(p.typeSeq[a], p.typeSeq[b])
	})
	return out
}

func (p *Planner) planOperation(o *ownerShape) error {
	e := o.entity
	ctx := &ownerCtx{top: e, local: make(map[string]*Entity)}
	if err := p.fill(ctx, e, o.shape); err != nil {
		return err
	}
	info := &OperationInfo{
		Name:     o.op.Name,
		Type:     o.op.Kind,
		Document: p.document(o.op),
	}
	members := newMembers(e.Name + "Variables")
	for _, v := range o.op.Variables {
		d, err := p.mapper.MapField(v.Type, o.op.Name+".$"+v.Name)
		if err != nil {
			return err
		}
		f := &EntityField{
			ResponseName: v.Name,
			FieldName:    v.Name,
			GoName:       pascal(v.Name),
			Ident:        camel(v.Name),
			Type:         d,
			Target:       p.types[v.Type.NamedType()],
			Path:         o.op.Name + ".$" + v.Name,
			DefaultValue: v.DefaultValue,
		}
		if err := members.claim("variable "+v.Name, f.GoName); err != nil {
			return err
		}
		info.Variables = append(info.Variables, f)
	}
	e.Operation = info
	return nil
}

// document returns the operation text followed by the text of every
// fragment it uses that the operation text does not already contain.
func (p *Planner) document(op *ir.Operation) string {
	var parts []string
	if op.Source != "" {
		parts = append(parts, op.Source)
	}
	names := spreads(op.SelectionSet, nil)
	for i := 0; i < len(names); i++ {
		f, ok := p.doc.Fragment(names[i])
		if !ok {
			continue
		}
		for _, n := range spreads(f.SelectionSet, nil) {
			if !slices.Contains(names, n) {
				names = append(names, n)
			}
		}
		if f.Source != "" && !strings.Contains(op.Source, f.Source) {
			parts = append(parts, f.Source)
		}
	}
	return strings.Join(parts, "\n")
}

// fill plans the fields, fragments and variants of e from s.
func (p *Planner) fill(ctx *ownerCtx, e *Entity, s *Shape) error {
	e.GraphQLType = s.TypeName
	e.Abstract = s.Abstract
	if !s.Abstract {
		fields, err := p.planFields(ctx, e.Name, s.Fields, nil, nil)
		if err != nil {
			return err
		}
		e.Fields = fields
		e.Fragments = p.fragmentRefs(s.Fragments)
		return checkMembers(e)
	}
	common := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		common[f.ResponseName] = true
	}
	for _, v := range s.Variants {
		ve := &Entity{
			Kind:        EntityVariant,
			Bucket:      e.Bucket,
			Parent:      e,
			GraphQLType: v.TypeName,
			Origin:      "variant " + v.TypeName + " of " + e.Origin,
		}
		name, err := p.scopes[e.Bucket].derive(e.Name+"_"+pascal(v.TypeName), objectIdents, ve.Origin)
		if err != nil {
			return err
		}
		ve.Name = name
		specific := make(map[string]bool, len(v.Specific))
		for _, name := range v.Specific {
			specific[name] = true
		}
		fields, err := p.planFields(ctx, ve.Name, v.Fields, specific, func(f *ResolvedField) string {
			if common[f.ResponseName] {
				return e.Name
			}
			return ve.Name
		})
		if err != nil {
			return err
		}
		ve.Fields = fields
		ve.Fragments = p.fragmentRefs(append(slices.Clone(s.Fragments), v.Fragments...))
		if err := checkMembers(ve); err != nil {
			return err
		}
		e.Variants = append(e.Variants, ve)
	}
	if len(e.Variants) == 0 {
		fields, err := p.planFields(ctx, e.Name, s.Fields, nil, nil)
		if err != nil {
			return err
		}
		e.Fields = fields
	} else {
		e.Fields = commonFields(s.Fields, e.Variants)
	}
	e.Fragments = p.fragmentRefs(s.Fragments)
	return checkMembers(e)
}

// commonFields returns the fields of the interface: the common fields whose
// Go type is the same in every variant.
func commonFields(fields []*ResolvedField, variants []*Entity) []*EntityField {
	var out []*EntityField
	for _, f := range fields {
		first, _ := variants[0].Field(f.ResponseName)
		same := first != nil
		for _, v := range variants[1:] {
			if !same {
				break
			}
			vf, ok := v.Field(f.ResponseName)
			same = ok && vf.Type.Key() == first.Type.Key() && vf.Target == first.Target
		}
		if same {
			cp := *first
			cp.Specific = false
			out = append(out, &cp)
		}
	}
	return out
}

// planFields maps and binds fields. parentOf returns the name nested
// entities of a field are prefixed with; nil means parent.
func (p *Planner) planFields(ctx *ownerCtx, parent string, fields []*ResolvedField, specific map[string]bool, parentOf func(*ResolvedField) string) ([]*EntityField, error) {
	out := make([]*EntityField, 0, len(fields))
	for _, f := range fields {
		d, err := p.mapper.MapField(f.Type, f.Path)
		if err != nil {
			return nil, err
		}
		ef := &EntityField{
			ResponseName: f.ResponseName,
			FieldName:    f.FieldName,
			GoName:       pascal(f.ResponseName),
			Ident:        camel(f.ResponseName),
			Type:         d,
			Specific:     specific[f.ResponseName],
			Path:         f.Path,
		}
		switch named := d.Named(); named.Kind {
		case DescEnum, DescInput:
			ef.Target = p.types[named.GraphQLType]
			if ef.Target == nil {
				return nil, NewInternalError("plan", "undiscovered type "+named.GraphQLType, nil)
			}
		case DescComposite:
			if f.Shape == nil {
				return nil, NewInputError("field", f.Path, "composite field without selection set", nil)
			}
			prefix := parent
			if parentOf != nil {
				prefix = parentOf(f)
			}
			ef.Target, err = p.nested(ctx, prefix, f)
			if err != nil {
				return nil, err
			}
		}
		out = append(out, ef)
	}
	return out, nil
}

// nested returns the entity of a composite field's selection: a promoted
// type entity, an entity already planned for the same shape in this owner,
// or a new nested entity.
func (p *Planner) nested(ctx *ownerCtx, parent string, f *ResolvedField) (*Entity, error) {
	key := f.Shape.Key()
	if e, ok := p.promoted[key]; ok {
		return e, nil
	}
	if ctx.top.Kind != EntityShared && p.promotable(f.Shape) {
		return p.promote(f.Shape)
	}
	if e, ok := ctx.local[key]; ok {
		return e, nil
	}
	suffix := pascal(f.ResponseName)
	if f.Type.ListDepth() > 0 {
		suffix = singular(f.ResponseName)
	}
	e := &Entity{
		Kind:   EntityNested,
		Bucket: ctx.top.Bucket,
		Origin: "field " + f.Path,
	}
	name, err := p.scopes[e.Bucket].derive(parent+"_"+suffix, shapeIdents(f.Shape), e.Origin)
	if err != nil {
		return nil, err
	}
	e.Name = name
	ctx.local[key] = e
	ctx.top.Nested = append(ctx.top.Nested, e)
	if err := p.fill(ctx, e, f.Shape); err != nil {
		return nil, err
	}
	return e, nil
}

// promotable reports whether a shape is shared by enough operations and
// fragments to be generated in the type bucket. Shapes that reference
// fragments stay nested, since the type package must not import the
// fragment package.
func (p *Planner) promotable(s *Shape) bool {
	return s.FragmentFree() && len(p.owners[s.Key()]) >= p.cfg.PromotionThreshold
}

func (p *Planner) promote(s *Shape) (*Entity, error) {
	e := &Entity{
		Kind:   EntityShared,
		Bucket: BucketType,
		Origin: "shared selection on " + s.TypeName,
	}
	name, err := p.scopes[BucketType].derive(pascal(s.TypeName), shapeIdents(s), e.Origin)
	if err != nil {
		return nil, err
	}
	e.Name = name
	p.promoted[s.Key()] = e
	p.shared = append(p.shared, e)
	p.typeSeq[e] = p.firstSeen[s.Key()]
	ctx := &ownerCtx{top: e, local: make(map[string]*Entity)}
	if err := p.fill(ctx, e, s); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Planner) fragmentRefs(names []string) []*FragmentRef {
	refs := make([]*FragmentRef, 0, len(names))
	for _, name := range names {
		refs = append(refs, &FragmentRef{
			Name:   name,
			GoName: pascal(name),
			Ident:  camel(name) + "Fragment",
			Entity: p.fragments[name],
		})
	}
	return refs
}

// planTypes plans the input objects and returns every type bucket entity in
// discovery order.
func (p *Planner) planTypes() ([]*Entity, error) {
	all := p.sortedTypes()
	for _, e := range all {
		if e.Kind != EntityInput {
			continue
		}
		def, _ := p.doc.Type(e.GraphQLType)
		members := newMembers(e.Name)
		for _, f := range def.InputFields {
			path := e.GraphQLType + "." + f.Name
			d, err := p.mapper.MapField(f.Type, path)
			if err != nil {
				return nil, err
			}
			ef := &EntityField{
				ResponseName: f.Name,
				FieldName:    f.Name,
				GoName:       pascal(f.Name),
				Ident:        camel(f.Name),
				Type:         d,
				Target:       p.types[f.Type.NamedType()],
				Path:         path,
				DefaultValue: f.DefaultValue,
			}
			if err := members.claim("input field "+f.Name, ef.GoName); err != nil {
				return nil, err
			}
			e.Fields = append(e.Fields, ef)
		}
	}
	// Promoted entities were sequenced during planning; merge them in.
	all = append(all, p.shared...)
	slices.SortStableFunc(all, func(a, b *Entity) int {
		return cmp.Compare(p.typeSeq[a], p.typeSeq[b])
	})
	return all, nil
}

// checkMembers rejects two fields or fragments that map to the same Go
// accessor or struct field.
func checkMembers(e *Entity) error {
	m := newMembers(e.Name)
	for _, f := range e.Fields {
		if err := m.claim("field "+f.ResponseName, "Get"+f.GoName, "."+f.Ident); err != nil {
			return err
		}
	}
	for _, r := range e.Fragments {
		if err := m.claim("fragment "+r.Name, "Get"+r.GoName, "."+r.Ident); err != nil {
			return err
		}
	}
	return nil
}

// entityIdents returns the package-level identifiers of an object or
// polymorphic entity named name.
func entityIdents(name string, s *Shape) []string {
	return shapeIdents(s)(name)
}

func shapeIdents(s *Shape) func(string) []string {
	if !s.Abstract {
		return objectIdents
	}
	return func(name string) []string {
		ids := []string{name, "Equal" + name, name + "Typenames"}
		for _, v := range s.Variants {
			ids = append(ids, name+"Typename"+pascal(v.TypeName))
		}
		return ids
	}
}

func objectIdents(name string) []string {
	return []string{name, name + "Builder", "New" + name + "Builder"}
}

func operationIdents(name string) []string {
	return []string{
		name + "Variables",
		name + "OperationName",
		name + "Document",
		name + "Operation",
		"New" + name + "Operation",
	}
}

// scope is the set of identifiers declared in one generated package.
type scope struct {
	bucket Bucket
	owners map[string]string
}

func newScope(b Bucket) *scope {
	return &scope{bucket: b, owners: make(map[string]string)}
}

// claim registers ids for origin, failing on the first identifier already
// claimed, including one repeated within ids.
func (s *scope) claim(origin string, ids ...string) error {
	for _, id := range ids {
		if prev, ok := s.owners[id]; ok {
			return NewCollisionError(id, s.bucket.String(), prev, origin)
		}
		s.owners[id] = origin
	}
	return nil
}

// derive claims the first of base, base2, base3, ... whose identifiers are
// all free. Clashes with earlier claims only move to the next suffix; an
// identifier repeated within one name's set clashes under every suffix and
// is a CollisionError.
func (s *scope) derive(base string, idents func(string) []string, origin string) (string, error) {
	if id, ok := repeated(idents(base)); ok {
		return "", NewCollisionError(id, s.bucket.String(), origin, origin)
	}
	for i := 1; ; i++ {
		name := base
		if i > 1 {
			name = base + strconv.Itoa(i)
		}
		ids := idents(name)
		free := true
		for _, id := range ids {
			if _, ok := s.owners[id]; ok {
				free = false
				break
			}
		}
		if free {
			for _, id := range ids {
				s.owners[id] = origin
			}
			return name, nil
		}
	}
}

func repeated(ids []string) (string, bool) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return "", false
}

// members is the set of member names declared by one entity.
type members struct {
	entity string
	owners map[string]string
}

func newMembers(entity string) *members {
	return &members{entity: entity, owners: make(map[string]string)}
}

func (m *members) claim(origin string, names ...string) error {
	for _, n := range names {
		if prev, ok := m.owners[n]; ok {
			return NewCollisionError(strings.TrimPrefix(n, "."), m.entity, prev, origin)
		}
		m.owners[n] = origin
	}
	return nil
}
