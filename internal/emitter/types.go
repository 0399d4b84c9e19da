package emitter

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"

	"github.com/dave/jennifer/jen"

	"github.com/reirokusanami/destructure/internal/model"
)

// typeExprToJen converts a field's type expression into jennifer code.
// Types from imported packages are re-qualified through the source file's
// alias → path map so jennifer can manage the output imports.
func typeExprToJen(expr ast.Expr, imports map[string]string) *jen.Statement {
	switch t := expr.(type) {
	case *ast.Ident:
		return jen.Id(t.Name)

	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok {
			if path, ok := imports[pkg.Name]; ok {
				return jen.Qual(path, t.Sel.Name)
			}
		}
		return typeExprToJen(t.X, imports).Dot(t.Sel.Name)

	case *ast.StarExpr:
		return jen.Op("*").Add(typeExprToJen(t.X, imports))

	case *ast.ArrayType:
		if t.Len == nil {
			return jen.Index().Add(typeExprToJen(t.Elt, imports))
		}
		return jen.Index(typeExprToJen(t.Len, imports)).Add(typeExprToJen(t.Elt, imports))

	case *ast.Ellipsis:
		return jen.Op("...").Add(typeExprToJen(t.Elt, imports))

	case *ast.BasicLit:
		// Array lengths.
		return jen.Id(t.Value)

	case *ast.MapType:
		return jen.Map(typeExprToJen(t.Key, imports)).Add(typeExprToJen(t.Value, imports))

	case *ast.ChanType:
		switch t.Dir {
		case ast.RECV:
			return jen.Op("<-").Chan().Add(typeExprToJen(t.Value, imports))
		case ast.SEND:
			return jen.Chan().Op("<-").Add(typeExprToJen(t.Value, imports))
		default:
			return jen.Chan().Add(typeExprToJen(t.Value, imports))
		}

	case *ast.IndexExpr:
		// Single-argument generic instantiation, e.g. List[T].
		return typeExprToJen(t.X, imports).Index(typeExprToJen(t.Index, imports))

	case *ast.IndexListExpr:
		args := make([]jen.Code, len(t.Indices))
		for i, idx := range t.Indices {
			args[i] = typeExprToJen(idx, imports)
		}
		return typeExprToJen(t.X, imports).Types(args...)

	case *ast.ParenExpr:
		return jen.Parens(typeExprToJen(t.X, imports))

	default:
		// Function, interface and anonymous struct types are carried over
		// verbatim; they cannot reference other packages without a selector,
		// which the cases above already re-qualify.
		return jen.Id(renderExpr(expr))
	}
}

// renderExpr prints an expression the way the source spelled it.
func renderExpr(expr ast.Expr) string {
	var buf bytes.Buffer
	_ = printer.Fprint(&buf, token.NewFileSet(), expr)
	return buf.String()
}

// typeParamsDecl renders the companion's type parameter list, constraints
// included, e.g. [A any, B comparable]. Returns the bare name when the
// source record is not generic.
func typeParamsDecl(name string, r *model.Record, imports map[string]string) *jen.Statement {
	if r.TypeParams == nil || len(r.TypeParams.List) == 0 {
		return jen.Id(name)
	}
	var params []jen.Code
	for _, p := range r.TypeParams.List {
		for _, id := range p.Names {
			params = append(params, jen.Id(id.Name).Add(typeExprToJen(p.Type, imports)))
		}
	}
	return jen.Id(name).Types(params...)
}

// instantiated renders a use of name with the record's type arguments,
// e.g. DestructDomain[A, B]. Each call returns a fresh statement.
func instantiated(name string, r *model.Record) *jen.Statement {
	params := r.TypeParamNames()
	if len(params) == 0 {
		return jen.Id(name)
	}
	args := make([]jen.Code, len(params))
	for i, p := range params {
		args[i] = jen.Id(p)
	}
	return jen.Id(name).Types(args...)
}
