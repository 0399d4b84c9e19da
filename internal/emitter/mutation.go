package emitter

import (
	"github.com/dave/jennifer/jen"

	"github.com/reirokusanami/destructure/internal/model"
)

// emitMutation generates the scoped mutable view: {N}Mut holds a pointer to
// every source field, and Substitute/TrySubstitute run a closure over a
// fresh view exactly once. Mutation happens in place; nothing is rebuilt.
func (e *Emitter) emitMutation(f *jen.File, r *model.Record) {
	imports := e.importsFor(r)
	name := mutName(r.Name)
	recv := receiverName(r.Name)

	f.Commentf("%s is a short-lived mutable view over %s. Assignments through", name, r.Name)
	f.Comment("its fields are visible on the source as soon as they happen.")
	f.Type().Add(typeParamsDecl(name, r, imports)).StructFunc(func(g *jen.Group) {
		for _, fl := range r.Fields {
			g.Id(exported(fl.Name)).Op("*").Add(typeExprToJen(fl.TypeExpr, imports))
		}
	})

	f.Commentf("Substitute calls f exactly once with a %s bound to the receiver,", name)
	f.Comment("allowing a batch of field assignments without copying the value.")
	f.Func().
		Params(jen.Id(recv).Op("*").Add(instantiated(r.Name, r))).
		Id("Substitute").
		Params(jen.Id("f").Func().Params(jen.Op("*").Add(instantiated(name, r)))).
		Block(
			jen.Id("m").Op(":=").Add(mutLiteral(name, recv, r)),
			jen.Id("f").Call(jen.Op("&").Id("m")),
		)

	f.Comment("TrySubstitute is the fallible variant of Substitute. The closure's")
	f.Comment("error is returned verbatim; assignments made before the failure")
	f.Comment("remain in place.")
	f.Func().
		Params(jen.Id(recv).Op("*").Add(instantiated(r.Name, r))).
		Id("TrySubstitute").
		Params(jen.Id("f").Func().Params(jen.Op("*").Add(instantiated(name, r))).Error()).
		Error().
		Block(
			jen.Id("m").Op(":=").Add(mutLiteral(name, recv, r)),
			jen.Return(jen.Id("f").Call(jen.Op("&").Id("m"))),
		)
}

func mutLiteral(name, recv string, r *model.Record) *jen.Statement {
	return instantiated(name, r).ValuesFunc(func(g *jen.Group) {
		for _, fl := range r.Fields {
			g.Line().Id(exported(fl.Name)).Op(":").Op("&").Id(recv).Dot(fl.Name)
		}
		if len(r.Fields) > 0 {
			g.Line()
		}
	})
}
