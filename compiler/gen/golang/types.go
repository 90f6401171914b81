package golang

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/gqlgo/compiler/gen"
)

// genEnum generates a string enum with its values.
func genEnum(f *jen.File, e *gen.Entity) {
	f.Commentf("%s is the GraphQL enum %s.", e.Name, e.GraphQLType)
	description(f, e.Description)
	f.Type().Id(e.Name).String()

	if len(e.Values) > 0 {
		f.Commentf("%s values.", e.Name)
		f.Const().DefsFunc(func(group *jen.Group) {
			for _, v := range e.Values {
				if v.Description != "" {
					for _, line := range strings.Split(strings.TrimSpace(v.Description), "\n") {
						group.Comment(strings.TrimSpace(line))
					}
				}
				if v.Deprecated {
					group.Comment("Deprecated: " + v.Name + " is deprecated in the schema.")
				}
				group.Id(e.Name + v.GoName).Id(e.Name).Op("=").Lit(v.Name)
			}
		})
	}

	f.Commentf("Values returns the values of %s in declaration order.", e.Name)
	f.Func().Params(jen.Id(e.Name)).Id("Values").Params().Index().Id(e.Name).Block(
		jen.Return(jen.Index().Id(e.Name).ValuesFunc(func(group *jen.Group) {
			for _, v := range e.Values {
				group.Id(e.Name + v.GoName)
			}
		})),
	)

	f.Commentf("IsValid reports whether v is a value of %s.", e.Name)
	f.Func().Params(jen.Id("v").Id(e.Name)).Id("IsValid").Params().Bool().BlockFunc(func(group *jen.Group) {
		if len(e.Values) == 0 {
			group.Return(jen.False())
			return
		}
		group.Switch(jen.Id("v")).Block(
			jen.Case(jen.ListFunc(func(list *jen.Group) {
				for _, v := range e.Values {
					list.Id(e.Name + v.GoName)
				}
			})).Block(jen.Return(jen.True())),
		)
		group.Return(jen.False())
	})

	f.Comment("String implements fmt.Stringer.")
	f.Func().Params(jen.Id("v").Id(e.Name)).Id("String").Params().String().Block(
		jen.Return(jen.String().Call(jen.Id("v"))),
	)
}

// genInput generates an input object struct. Fields are exported so that
// callers can build values directly.
func genInput(h gen.GeneratorHelper, f *jen.File, e *gen.Entity) {
	f.Commentf("%s is the GraphQL input object %s.", e.Name, e.GraphQLType)
	description(f, e.Description)
	f.Type().Id(e.Name).StructFunc(func(group *jen.Group) {
		for _, fld := range e.Fields {
			s := group.Id(fld.GoName).Add(h.GoType(fld)).Tag(map[string]string{"json": jsonTag(fld)})
			if fld.DefaultValue != nil {
				s.Comment("Defaults to " + oneLine(*fld.DefaultValue) + ".")
			}
		}
	})
}

// description appends a schema description to the doc comment being built.
func description(f *jen.File, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	f.Comment("")
	for _, line := range strings.Split(text, "\n") {
		f.Comment(strings.TrimSpace(line))
	}
}
