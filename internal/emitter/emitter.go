// Package emitter turns validated records into generated companion code.
// It is a pure function of its input: no state survives between calls and
// records are emitted independently, in collection order.
package emitter

import (
	"go/ast"

	"github.com/dave/jennifer/jen"

	"github.com/reirokusanami/destructure/internal/model"
)

// Emitter renders companion declarations for one source package.
type Emitter struct {
	// PkgPath and PkgName identify the package the generated file belongs
	// to. The path keeps jennifer from qualifying local types.
	PkgPath string
	PkgName string
	// Imports maps each source file to its alias → import path table.
	Imports map[*ast.File]map[string]string
}

// New returns an Emitter for the given package.
func New(pkgPath, pkgName string, imports map[*ast.File]map[string]string) *Emitter {
	return &Emitter{PkgPath: pkgPath, PkgName: pkgName, Imports: imports}
}

// EmitFile renders one generated file containing every requested companion
// for every record, in record order.
func (e *Emitter) EmitFile(records []*model.Record) *jen.File {
	f := jen.NewFilePathName(e.PkgPath, e.PkgName)
	f.HeaderComment("Code generated by destructure. DO NOT EDIT.")

	// Register the real package names so version-suffixed paths like
	// gopkg.in/yaml.v3 render with the right qualifier.
	for _, table := range e.Imports {
		for _, importPath := range table {
			f.ImportName(importPath, model.PackageName(importPath))
		}
	}

	for _, r := range records {
		for _, d := range r.Derivations {
			switch d {
			case model.DeriveDestructure:
				e.emitDestructure(f, r)
			case model.DeriveDestructureRef:
				e.emitDestructureRef(f, r)
			case model.DeriveMutation:
				e.emitMutation(f, r)
			}
		}
	}

	return f
}

func (e *Emitter) importsFor(r *model.Record) map[string]string {
	if m, ok := e.Imports[r.File]; ok {
		return m
	}
	return nil
}
