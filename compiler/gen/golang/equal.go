package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/gqlgo/compiler/gen"
)

// genEqual generates the structural equality method of a concrete entity.
// Variants compare against their interface and are unequal to every other
// variant.
func genEqual(h gen.GeneratorHelper, f *jen.File, e *gen.Entity) {
	recv := jen.Id("e").Op("*").Id(e.Name)
	nilCheck := jen.If(jen.Id("e").Op("==").Nil().Op("||").Id("o").Op("==").Nil()).Block(
		jen.Return(jen.Id("e").Op("==").Id("o")),
	)
	if e.Parent == nil {
		f.Comment("Equal reports whether e and o hold equal values.")
		f.Func().Params(recv).Id("Equal").Params(jen.Id("o").Op("*").Id(e.Name)).Bool().Block(
			nilCheck,
			jen.Return(conj(equalities(h, e))),
		)
		return
	}
	f.Commentf("Equal reports whether other is a %s holding the same values as e.", e.Name)
	f.Func().Params(recv).Id("Equal").Params(jen.Id("other").Id(e.Parent.Name)).Bool().Block(
		jen.List(jen.Id("o"), jen.Id("ok")).Op(":=").Id("other").Assert(jen.Op("*").Id(e.Name)),
		jen.If(jen.Op("!").Id("ok")).Block(jen.Return(jen.False())),
		nilCheck,
		jen.Return(conj(equalities(h, e))),
	)
}

func equalities(h gen.GeneratorHelper, e *gen.Entity) []jen.Code {
	var conds []jen.Code
	for _, fld := range e.Fields {
		conds = append(conds, eqFunc(h, fld.Type, fld.Target).Call(jen.Id("e").Dot(fld.Ident), jen.Id("o").Dot(fld.Ident)))
	}
	for _, r := range e.Fragments {
		conds = append(conds, entityEq(h, r.Entity).Call(jen.Id("e").Dot(r.Ident), jen.Id("o").Dot(r.Ident)))
	}
	return conds
}

// conj joins conditions with &&, one per line.
func conj(conds []jen.Code) *jen.Statement {
	if len(conds) == 0 {
		return jen.True()
	}
	s := jen.Add(conds[0])
	for _, c := range conds[1:] {
		s = s.Op("&&").Line().Add(c)
	}
	return s
}

// eqFunc returns a func(a, b T) bool expression comparing two values of the
// Go type of d.
func eqFunc(h gen.GeneratorHelper, d *gen.TypeDescriptor, target *gen.Entity) *jen.Statement {
	base := eqBase(h, d, target)
	switch d.Nullability {
	case gen.OptionalWrapped:
		return jen.Qual(h.RuntimePkg(), "OptionalEq").Call(base)
	case gen.RawNullable:
		if d.RawPointer() {
			return jen.Qual(h.RuntimePkg(), "PtrEq").Call(base)
		}
	}
	return base
}

func eqBase(h gen.GeneratorHelper, d *gen.TypeDescriptor, target *gen.Entity) *jen.Statement {
	switch d.Kind {
	case gen.DescList:
		elem := eqFunc(h, d.Elem, target)
		if d.Container == gen.ContainerList {
			return jen.Qual(h.RuntimePkg(), "ListEq").Call(elem)
		}
		return jen.Qual(h.RuntimePkg(), "SliceEq").Call(elem)
	case gen.DescScalar:
		if d.Custom {
			return jen.Qual(h.RuntimePkg(), "DeepEq").Types(scalarType(d))
		}
		return jen.Qual(h.RuntimePkg(), "Eq").Types(scalarType(d))
	case gen.DescEnum:
		return jen.Qual(h.RuntimePkg(), "Eq").Types(h.Ref(target))
	case gen.DescInput:
		return jen.Qual(h.RuntimePkg(), "DeepEq").Types(jen.Op("*").Add(h.Ref(target)))
	default:
		return entityEq(h, target)
	}
}

// entityEq returns the equality function of a selection entity: the Equal
// helper of a polymorphic entity or the Equal method expression of a
// concrete one.
func entityEq(h gen.GeneratorHelper, e *gen.Entity) *jen.Statement {
	if e.Abstract {
		return jen.Qual(h.Plan().PkgPath(e.Bucket), "Equal"+e.Name)
	}
	return jen.Parens(jen.Op("*").Add(h.Ref(e))).Dot("Equal")
}

func scalarType(d *gen.TypeDescriptor) *jen.Statement {
	if d.PkgPath != "" {
		return jen.Qual(d.PkgPath, d.Name)
	}
	return jen.Id(d.Name)
}

// genString generates the String method of a concrete entity. Values are
// formatted with gqlgo.FormatValue.
func genString(h gen.GeneratorHelper, f *jen.File, e *gen.Entity) {
	type part struct{ label, ident string }
	parts := make([]part, 0, len(e.Fields)+len(e.Fragments))
	for _, fld := range e.Fields {
		parts = append(parts, part{fld.ResponseName, fld.Ident})
	}
	for _, r := range e.Fragments {
		parts = append(parts, part{"..." + r.Name, r.Ident})
	}
	f.Comment("String returns a readable representation of the value.")
	f.Func().Params(jen.Id("e").Op("*").Id(e.Name)).Id("String").Params().String().BlockFunc(func(group *jen.Group) {
		group.If(jen.Id("e").Op("==").Nil()).Block(jen.Return(jen.Lit("null")))
		group.Var().Id("b").Qual("strings", "Builder")
		group.Id("b").Dot("WriteString").Call(jen.Lit(e.Name + "{"))
		for i, p := range parts {
			label := p.label + "="
			if i > 0 {
				label = ", " + label
			}
			group.Id("b").Dot("WriteString").Call(jen.Lit(label))
			group.Id("b").Dot("WriteString").Call(jen.Qual(h.RuntimePkg(), "FormatValue").Call(jen.Id("e").Dot(p.ident)))
		}
		group.Id("b").Dot("WriteString").Call(jen.Lit("}"))
		group.Return(jen.Id("b").Dot("String").Call())
	})
}
