package emitter

import (
	"github.com/dave/jennifer/jen"

	"github.com/reirokusanami/destructure/internal/model"
)

// emitDestructureRef generates the borrowing companion: Destruct{N}Ref holds
// a pointer to every source field, and AsDestruct builds the view without
// moving the source. The view is total; skip is not honored here.
func (e *Emitter) emitDestructureRef(f *jen.File, r *model.Record) {
	imports := e.importsFor(r)
	name := destructRefName(r.Name)
	recv := receiverName(r.Name)

	f.Commentf("%s is a read-only open view over %s: each field points at", name, r.Name)
	f.Comment("the corresponding source field. Do not write through it.")
	f.Type().Add(typeParamsDecl(name, r, imports)).StructFunc(func(g *jen.Group) {
		for _, fl := range r.Fields {
			g.Id(exported(fl.Name)).Op("*").Add(typeExprToJen(fl.TypeExpr, imports))
		}
	})

	f.Commentf("AsDestruct builds a %s bound to the receiver's fields.", name)
	f.Func().
		Params(jen.Id(recv).Op("*").Add(instantiated(r.Name, r))).
		Id("AsDestruct").Params().
		Add(instantiated(name, r)).
		Block(
			jen.Return(instantiated(name, r).ValuesFunc(func(g *jen.Group) {
				for _, fl := range r.Fields {
					g.Line().Id(exported(fl.Name)).Op(":").Op("&").Id(recv).Dot(fl.Name)
				}
				if len(r.Fields) > 0 {
					g.Line()
				}
			})),
		)
}
