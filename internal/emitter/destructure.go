package emitter

import (
	"github.com/dave/jennifer/jen"

	"github.com/reirokusanami/destructure/internal/model"
)

// emitDestructure generates the owning companion: the Destruct{N} type with
// every non-skipped field publicly assignable, the IntoDestruct, Reconstruct
// and TryReconstruct methods on the source, and Freeze on the companion.
func (e *Emitter) emitDestructure(f *jen.File, r *model.Record) {
	imports := e.importsFor(r)
	name := destructName(r.Name)
	recv := receiverName(r.Name)
	cRecv := receiverName(name)

	f.Commentf("%s is the fully disclosed form of %s.", name, r.Name)
	f.Comment("Assign its fields directly, then call Freeze to seal the value back.")
	f.Type().Add(typeParamsDecl(name, r, imports)).StructFunc(func(g *jen.Group) {
		for _, fl := range r.Fields {
			g.Id(companionFieldName(fl)).Add(typeExprToJen(fl.TypeExpr, imports))
		}
	})

	f.Commentf("IntoDestruct converts %s into its fully disclosed %s form.", r.Name, name)
	f.Comment("Freeze on the result restores the original type.")
	f.Func().
		Params(jen.Id(recv).Add(instantiated(r.Name, r))).
		Id("IntoDestruct").Params().
		Add(instantiated(name, r)).
		Block(
			jen.Return(instantiated(name, r).ValuesFunc(func(g *jen.Group) {
				for _, fl := range r.Fields {
					g.Line().Id(companionFieldName(fl)).Op(":").Id(recv).Dot(fl.Name)
				}
				if len(r.Fields) > 0 {
					g.Line()
				}
			})),
		)

	f.Comment("Reconstruct opens the value, applies f exactly once to the disclosed")
	f.Comment("form, and seals the edited fields back. TryReconstruct is the")
	f.Comment("fallible variant.")
	f.Func().
		Params(jen.Id(recv).Add(instantiated(r.Name, r))).
		Id("Reconstruct").
		Params(jen.Id("f").Func().Params(jen.Op("*").Add(instantiated(name, r)))).
		Add(instantiated(r.Name, r)).
		Block(
			jen.Id("des").Op(":=").Id(recv).Dot("IntoDestruct").Call(),
			jen.Id("f").Call(jen.Op("&").Id("des")),
			jen.Return(jen.Id("des").Dot("Freeze").Call()),
		)

	f.Comment("TryReconstruct opens the value and applies f exactly once. When f")
	f.Comment("fails, the intermediate form is dropped and the error is returned")
	f.Comment("verbatim together with the zero value.")
	f.Func().
		Params(jen.Id(recv).Add(instantiated(r.Name, r))).
		Id("TryReconstruct").
		Params(jen.Id("f").Func().Params(jen.Op("*").Add(instantiated(name, r))).Error()).
		Params(instantiated(r.Name, r), jen.Error()).
		Block(
			jen.Id("des").Op(":=").Id(recv).Dot("IntoDestruct").Call(),
			jen.If(jen.Err().Op(":=").Id("f").Call(jen.Op("&").Id("des")), jen.Err().Op("!=").Nil()).Block(
				jen.Var().Id("zero").Add(instantiated(r.Name, r)),
				jen.Return(jen.Id("zero"), jen.Err()),
			),
			jen.Return(jen.Id("des").Dot("Freeze").Call(), jen.Nil()),
		)

	f.Commentf("Freeze restores the disclosed form to the original %s.", r.Name)
	f.Func().
		Params(jen.Id(cRecv).Add(instantiated(name, r))).
		Id("Freeze").Params().
		Add(instantiated(r.Name, r)).
		Block(
			jen.Return(instantiated(r.Name, r).ValuesFunc(func(g *jen.Group) {
				for _, fl := range r.Fields {
					g.Line().Id(fl.Name).Op(":").Id(cRecv).Dot(companionFieldName(fl))
				}
				if len(r.Fields) > 0 {
					g.Line()
				}
			})),
		)
}
