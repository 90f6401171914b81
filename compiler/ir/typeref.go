package ir

import (
	"fmt"
	"strings"
)

// RefKind identifies the wrapper kind of a TypeRef.
type RefKind uint8

// TypeRef kinds.
const (
	RefNamed RefKind = iota
	RefNonNull
	RefList
)

// TypeRef is a GraphQL type reference: Named(name), NonNull(inner) or List(inner).
// TypeRefs are immutable once built; use Named, NonNull and List to build them.
type TypeRef struct {
	Kind   RefKind
	Name   string   // only for RefNamed
	OfType *TypeRef // only for RefNonNull and RefList
}

// Named returns a reference to the named type.
func Named(name string) *TypeRef {
	return &TypeRef{Kind: RefNamed, Name: name}
}

// NonNull wraps inner in a non-null reference.
func NonNull(inner *TypeRef) *TypeRef {
	return &TypeRef{Kind: RefNonNull, OfType: inner}
}

// List wraps inner in a list reference.
func List(inner *TypeRef) *TypeRef {
	return &TypeRef{Kind: RefList, OfType: inner}
}

// IsNonNull reports whether the outermost wrapper is NonNull.
func (t *TypeRef) IsNonNull() bool {
	return t != nil && t.Kind == RefNonNull
}

// IsList reports whether the reference is a list, ignoring an outer NonNull.
func (t *TypeRef) IsList() bool {
	if t == nil {
		return false
	}
	if t.Kind == RefNonNull {
		return t.OfType.IsList()
	}
	return t.Kind == RefList
}

// NamedType returns the innermost named type of the reference.
func (t *TypeRef) NamedType() string {
	for r := t; r != nil; r = r.OfType {
		if r.Kind == RefNamed {
			return r.Name
		}
	}
	return ""
}

// ListDepth returns how many List wrappers the reference has.
func (t *TypeRef) ListDepth() int {
	n := 0
	for r := t; r != nil; r = r.OfType {
		if r.Kind == RefList {
			n++
		}
	}
	return n
}

// Equal reports whether two references are structurally equal.
func (t *TypeRef) Equal(o *TypeRef) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind || t.Name != o.Name {
		return false
	}
	return t.OfType.Equal(o.OfType)
}

// String returns the GraphQL notation of the reference, e.g. "[Episode!]!".
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case RefNonNull:
		return t.OfType.String() + "!"
	case RefList:
		return "[" + t.OfType.String() + "]"
	default:
		return t.Name
	}
}

// Validate checks the structural invariants of the reference.
func (t *TypeRef) Validate() error {
	switch {
	case t == nil:
		return fmt.Errorf("missing type reference")
	case t.Kind == RefNamed:
		if t.Name == "" {
			return fmt.Errorf("named type reference without a name")
		}
		return nil
	case t.OfType == nil:
		return fmt.Errorf("wrapper type reference without an inner type")
	case t.Kind == RefNonNull && t.OfType.Kind == RefNonNull:
		return fmt.Errorf("non-null type %s wraps another non-null type", t)
	default:
		return t.OfType.Validate()
	}
}

// ParseTypeRef parses the GraphQL notation of a type reference.
func ParseTypeRef(s string) (*TypeRef, error) {
	p := &refParser{src: strings.TrimSpace(s)}
	ref, err := p.parse()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("type reference %q: unexpected %q at offset %d", s, p.src[p.pos:], p.pos)
	}
	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("type reference %q: %w", s, err)
	}
	return ref, nil
}

// MustParseTypeRef is like ParseTypeRef but panics on error.
func MustParseTypeRef(s string) *TypeRef {
	ref, err := ParseTypeRef(s)
	if err != nil {
		panic(err)
	}
	return ref
}

type refParser struct {
	src string
	pos int
}

func (p *refParser) parse() (*TypeRef, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, fmt.Errorf("type reference %q: unexpected end", p.src)
	}
	var ref *TypeRef
	if p.src[p.pos] == '[' {
		p.pos++
		inner, err := p.parse()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ']' {
			return nil, fmt.Errorf("type reference %q: missing ']'", p.src)
		}
		p.pos++
		ref = List(inner)
	} else {
		start := p.pos
		for p.pos < len(p.src) && isNameByte(p.src[p.pos], p.pos == start) {
			p.pos++
		}
		if start == p.pos {
			return nil, fmt.Errorf("type reference %q: expected a name at offset %d", p.src, start)
		}
		ref = Named(p.src[start:p.pos])
	}
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '!' {
		p.pos++
		ref = NonNull(ref)
	}
	return ref, nil
}

func (p *refParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func isNameByte(c byte, first bool) bool {
	switch {
	case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		return true
	case '0' <= c && c <= '9':
		return !first
	}
	return false
}
