package golang

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/gqlgo/compiler/gen"
	"github.com/syssam/gqlgo/compiler/ir"
)

// genOperation generates the operation file ({Operation}.go).
func genOperation(h gen.GeneratorHelper, e *gen.Entity) *jen.File {
	f := h.NewFile(e.Bucket)
	op := e.Operation

	f.Commentf("%sOperationName is the name of the %s %s.", e.Name, op.Name, op.Type)
	f.Const().Id(e.Name+"OperationName").Op("=").Lit(op.Name)
	f.Commentf("%sDocument is the GraphQL text of the %s %s and the fragments it uses.", e.Name, op.Name, op.Type)
	f.Const().Id(e.Name+"Document").Op("=").Lit(op.Document)

	genEntityTree(h, f, e)
	genVariables(h, f, e)
	genDescriptor(h, f, e)
	return f
}

func genVariables(h gen.GeneratorHelper, f *jen.File, e *gen.Entity) {
	op := e.Operation
	f.Commentf("%sVariables holds the variables of the %s %s.", e.Name, op.Name, op.Type)
	f.Type().Id(e.Name+"Variables").StructFunc(func(group *jen.Group) {
		for _, v := range op.Variables {
			s := group.Id(v.GoName).Add(h.GoType(v)).Tag(map[string]string{"json": jsonTag(v)})
			if v.DefaultValue != nil {
				s.Comment("Defaults to " + oneLine(*v.DefaultValue) + ".")
			}
		}
	})
}

// genDescriptor generates the operation value implementing gqlgo.Operation.
func genDescriptor(h gen.GeneratorHelper, f *jen.File, e *gen.Entity) {
	op := e.Operation
	name, vars := e.Name+"Operation", e.Name+"Variables"
	f.Commentf("%s is the %s %s bound to its variables.", name, op.Name, op.Type)
	f.Type().Id(name).Struct(
		jen.Id("Variables").Id(vars),
	)

	f.Commentf("New%s returns the %s %s with the given variables.", name, op.Name, op.Type)
	f.Func().Id("New"+name).Params(jen.Id("vars").Id(vars)).Op("*").Id(name).Block(
		jen.Return(jen.Op("&").Id(name).Values(jen.Dict{
			jen.Id("Variables"): jen.Id("vars"),
		})),
	)

	f.Comment("OperationName implements gqlgo.Operation.")
	f.Func().Params(jen.Op("*").Id(name)).Id("OperationName").Params().String().Block(
		jen.Return(jen.Id(e.Name + "OperationName")),
	)
	f.Comment("OperationType implements gqlgo.Operation.")
	f.Func().Params(jen.Op("*").Id(name)).Id("OperationType").Params().Qual(h.RuntimePkg(), "OperationType").Block(
		jen.Return(jen.Qual(h.RuntimePkg(), operationType(op.Type))),
	)
	f.Comment("Document implements gqlgo.Operation.")
	f.Func().Params(jen.Op("*").Id(name)).Id("Document").Params().String().Block(
		jen.Return(jen.Id(e.Name + "Document")),
	)
	f.Var().Id("_").Qual(h.RuntimePkg(), "Operation").Op("=").Parens(jen.Op("*").Id(name)).Call(jen.Nil())
}

func operationType(k ir.OperationKind) string {
	switch k {
	case ir.Mutation:
		return "OperationMutation"
	case ir.Subscription:
		return "OperationSubscription"
	default:
		return "OperationQuery"
	}
}

// jsonTag returns the json struct tag of a variable or input field. Absent
// values are omitted from the encoded object.
func jsonTag(f *gen.EntityField) string {
	switch f.Type.Nullability {
	case gen.RawNullable:
		return f.ResponseName + ",omitempty"
	case gen.OptionalWrapped:
		return f.ResponseName + ",omitzero"
	}
	return f.ResponseName
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
