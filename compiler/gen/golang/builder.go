package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/gqlgo/compiler/gen"
)

// genBuilder generates the builder of a concrete entity and the entity's
// ToBuilder method. Entities are immutable; builders are the only way to
// construct or derive a value.
func genBuilder(h gen.GeneratorHelper, f *jen.File, e *gen.Entity) {
	name := e.BuilderName()
	f.Commentf("%s builds %s values. The zero value is an empty builder.", name, e.Name)
	f.Type().Id(name).StructFunc(func(group *jen.Group) {
		structFields(h, group, e)
	})

	f.Commentf("New%s returns an empty builder.", name)
	f.Func().Id("New"+name).Params().Op("*").Id(name).Block(
		jen.Return(jen.Op("&").Id(name).Values()),
	)

	recv := jen.Id("b").Op("*").Id(name)
	for _, fld := range e.Fields {
		f.Commentf("Set%s sets the %q field.", fld.GoName, fld.ResponseName)
		f.Func().Params(recv.Clone()).Id("Set"+fld.GoName).Params(jen.Id("v").Add(h.GoType(fld))).Op("*").Id(name).Block(
			jen.Id("b").Dot(fld.Ident).Op("=").Id("v"),
			jen.Return(jen.Id("b")),
		)
	}
	for _, r := range e.Fragments {
		f.Commentf("Set%s sets the fields of the %s fragment.", r.GoName, r.Name)
		f.Func().Params(recv.Clone()).Id("Set"+r.GoName).Params(jen.Id("v").Add(fragmentType(h, r))).Op("*").Id(name).Block(
			jen.Id("b").Dot(r.Ident).Op("=").Id("v"),
			jen.Return(jen.Id("b")),
		)
	}

	f.Commentf("Build returns a new %s holding the values set on b.", e.Name)
	f.Func().Params(recv.Clone()).Id("Build").Params().Op("*").Id(e.Name).Block(
		jen.Return(jen.Op("&").Id(e.Name).Values(copyDict(e, "b"))),
	)

	f.Comment("ToBuilder returns a builder initialized with the values of e.")
	f.Func().Params(jen.Id("e").Op("*").Id(e.Name)).Id("ToBuilder").Params().Op("*").Id(name).Block(
		jen.If(jen.Id("e").Op("==").Nil()).Block(jen.Return(jen.Id("New"+name).Call())),
		jen.Return(jen.Op("&").Id(name).Values(copyDict(e, "e"))),
	)
}

// copyDict returns the composite literal elements copying every field of e
// from the variable src.
func copyDict(e *gen.Entity, src string) jen.Dict {
	d := jen.Dict{}
	for _, fld := range e.Fields {
		d[jen.Id(fld.Ident)] = jen.Id(src).Dot(fld.Ident)
	}
	for _, r := range e.Fragments {
		d[jen.Id(r.Ident)] = jen.Id(src).Dot(r.Ident)
	}
	return d
}
