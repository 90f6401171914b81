package golang

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/gqlgo/compiler/gen"
)

// genEntityTree renders a top-level selection entity followed by every
// entity nested in it.
func genEntityTree(h gen.GeneratorHelper, f *jen.File, e *gen.Entity) {
	genEntity(h, f, e)
	for _, n := range e.Nested {
		genEntity(h, f, n)
	}
}

func genEntity(h gen.GeneratorHelper, f *jen.File, e *gen.Entity) {
	if !e.Abstract {
		genObject(h, f, e)
		return
	}
	genInterface(h, f, e)
	for _, v := range e.Variants {
		genObject(h, f, v)
	}
}

func entityDoc(e *gen.Entity) string {
	switch e.Kind {
	case gen.EntityOperation:
		return fmt.Sprintf("%s is the response data of the %s %s.", e.Name, e.Operation.Name, e.Operation.Type)
	case gen.EntityFragment:
		return fmt.Sprintf("%s holds the fields of the fragment on %s.", e.Name, e.GraphQLType)
	case gen.EntityVariant:
		return fmt.Sprintf("%s is the %s variant of %s.", e.Name, e.GraphQLType, e.Parent.Name)
	case gen.EntityShared:
		return fmt.Sprintf("%s is a selection on %s used by several operations and fragments.", e.Name, e.GraphQLType)
	}
	return fmt.Sprintf("%s is a selection on %s.", e.Name, e.GraphQLType)
}

// genObject generates the struct of a concrete entity with its accessors,
// Equal, String and builder.
func genObject(h gen.GeneratorHelper, f *jen.File, e *gen.Entity) {
	f.Comment(entityDoc(e))
	f.Type().Id(e.Name).StructFunc(func(group *jen.Group) {
		structFields(h, group, e)
	})

	if e.Parent != nil {
		genVariantMethods(f, e)
	}
	genGetters(h, f, e)
	genEqual(h, f, e)
	genString(h, f, e)
	genBuilder(h, f, e)
}

func structFields(h gen.GeneratorHelper, group *jen.Group, e *gen.Entity) {
	for _, fld := range e.Fields {
		group.Id(fld.Ident).Add(h.GoType(fld))
	}
	for _, r := range e.Fragments {
		group.Id(r.Ident).Add(fragmentType(h, r))
	}
}

// fragmentType is the Go type a fragment value is held as.
func fragmentType(h gen.GeneratorHelper, r *gen.FragmentRef) jen.Code {
	if r.Entity.Abstract {
		return h.Ref(r.Entity)
	}
	return jen.Op("*").Add(h.Ref(r.Entity))
}

func genGetters(h gen.GeneratorHelper, f *jen.File, e *gen.Entity) {
	for _, fld := range e.Fields {
		f.Commentf("Get%s returns the value of the %q field.", fld.GoName, fld.ResponseName)
		if fld.Specific && e.Parent != nil {
			f.Commentf("The field is only selected on %s.", e.GraphQLType)
		}
		f.Func().Params(jen.Id("e").Op("*").Id(e.Name)).Id("Get"+fld.GoName).Params().Add(h.GoType(fld)).Block(
			jen.Return(jen.Id("e").Dot(fld.Ident)),
		)
	}
	for _, r := range e.Fragments {
		f.Commentf("Get%s returns the fields of the %s fragment.", r.GoName, r.Name)
		f.Func().Params(jen.Id("e").Op("*").Id(e.Name)).Id("Get"+r.GoName).Params().Add(fragmentType(h, r)).Block(
			jen.Return(jen.Id("e").Dot(r.Ident)),
		)
	}
}

// genInterface generates the sealed interface of a polymorphic entity, the
// discriminator constants of its variants and its nil-safe equality helper.
func genInterface(h gen.GeneratorHelper, f *jen.File, e *gen.Entity) {
	names := make([]string, 0, len(e.Variants))
	for _, v := range e.Variants {
		names = append(names, v.Name)
	}
	f.Comment(entityDoc(e))
	if len(names) > 0 {
		f.Commentf("Its concrete value is one of %s.", strings.Join(names, ", "))
	}
	f.Type().Id(e.Name).InterfaceFunc(func(group *jen.Group) {
		group.Comment("Typename returns the concrete GraphQL type of the value.")
		group.Id("Typename").Params().String()
		for _, fld := range e.Fields {
			group.Id("Get" + fld.GoName).Params().Add(h.GoType(fld))
		}
		for _, r := range e.Fragments {
			group.Id("Get" + r.GoName).Params().Add(fragmentType(h, r))
		}
		group.Id("Equal").Params(jen.Id("other").Id(e.Name)).Bool()
		group.Id("String").Params().String()
		group.Id(marker(e)).Params()
	})

	if len(e.Variants) > 0 {
		f.Commentf("Discriminators of %s.", e.Name)
		f.Const().DefsFunc(func(group *jen.Group) {
			for _, v := range e.Variants {
				group.Id(v.TypenameConst()).Op("=").Lit(v.GraphQLType)
			}
		})
	}
	f.Commentf("%sTypenames lists the concrete types of %s.", e.Name, e.Name)
	f.Var().Id(e.Name+"Typenames").Op("=").Index().String().ValuesFunc(func(group *jen.Group) {
		for _, v := range e.Variants {
			group.Id(v.TypenameConst())
		}
	})

	f.Commentf("Equal%s reports whether a and b hold equal values. Two nil values are equal.", e.Name)
	f.Func().Id("Equal"+e.Name).Params(jen.List(jen.Id("a"), jen.Id("b")).Id(e.Name)).Bool().Block(
		jen.If(jen.Id("a").Op("==").Nil().Op("||").Id("b").Op("==").Nil()).Block(
			jen.Return(jen.Id("a").Op("==").Nil().Op("&&").Id("b").Op("==").Nil()),
		),
		jen.Return(jen.Id("a").Dot("Equal").Call(jen.Id("b"))),
	)
}

func marker(iface *gen.Entity) string {
	return "is" + iface.Name
}

func genVariantMethods(f *jen.File, e *gen.Entity) {
	f.Commentf("Typename returns %q.", e.GraphQLType)
	f.Func().Params(jen.Op("*").Id(e.Name)).Id("Typename").Params().String().Block(
		jen.Return(jen.Id(e.TypenameConst())),
	)
	f.Func().Params(jen.Op("*").Id(e.Name)).Id(marker(e.Parent)).Params().Block()
	f.Var().Id("_").Id(e.Parent.Name).Op("=").Parens(jen.Op("*").Id(e.Name)).Call(jen.Nil())
}
