package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"

	"github.com/reirokusanami/destructure/internal/model"
)

// Parser holds the state and results of one scan of an input package.
type Parser struct {
	// InDir is the directory of the package to scan.
	InDir string
	// ExcludeTypes skips named types even when they carry a derive marker.
	ExcludeTypes []string
	// ForceDerive, when non-empty, applies the given derivations to every
	// struct type in the package that carries no derive marker of its own.
	ForceDerive []model.Derivation

	Records []*model.Record
	PkgPath string
	PkgName string

	fset    *token.FileSet
	imports map[*ast.File]map[string]string // per file: alias → import path
}

// New returns a Parser for the package rooted at dir.
func New(dir string) *Parser {
	return &Parser{
		InDir:   dir,
		fset:    token.NewFileSet(),
		imports: make(map[*ast.File]map[string]string),
	}
}

// Parse loads the package and collects every record selected for derivation.
// All shape and directive diagnostics for the run are joined into the
// returned error; when it is non-nil no records should be emitted.
func (p *Parser) Parse() error {
	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:  p.InDir,
		Fset: p.fset,
	}, ".")
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		return fmt.Errorf("no Go package found in %s", p.InDir)
	}

	pkg := pkgs[0]
	p.PkgName = pkg.Name
	p.PkgPath = pkg.PkgPath
	if p.PkgPath == "" || p.PkgPath == "command-line-arguments" {
		if mp, mpErr := p.modulePackagePath(); mpErr == nil {
			p.PkgPath = mp
		}
	}

	var errs []error
	for _, perr := range pkg.Errors {
		errs = append(errs, perr)
	}
	if len(errs) > 0 {
		// The syntax trees are partial; diagnostics from them would mislead.
		return errors.Join(errs...)
	}

	for _, file := range pkg.Syntax {
		// A previous run's output lives in the same package; never rescan it.
		if ast.IsGenerated(file) {
			continue
		}
		p.collectImports(file)
		errs = append(errs, p.collectRecords(file)...)
	}

	return errors.Join(errs...)
}

// collectImports records the alias → path mapping of one file so that field
// types referencing imported packages can be re-qualified in the output.
func (p *Parser) collectImports(file *ast.File) {
	m := make(map[string]string, len(file.Imports))
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)
		alias := model.PackageName(importPath)
		if imp.Name != nil && imp.Name.Name != "_" && imp.Name.Name != "." {
			alias = imp.Name.Name
		}
		m[alias] = importPath
	}
	p.imports[file] = m
}

// Imports returns the per-file import tables for every scanned file.
func (p *Parser) Imports() map[*ast.File]map[string]string {
	return p.imports
}

// collectRecords walks one file's type declarations and builds a Record for
// each that requests derivation.
func (p *Parser) collectRecords(file *ast.File) []error {
	var errs []error

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}

		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			namePos := p.fset.Position(ts.Name.Pos())

			// The marker may sit on the TypeSpec or the grouped declaration.
			doc := ts.Doc
			if doc == nil {
				doc = gen.Doc
			}
			derivs, marked, err := parseDeriveMarker(doc, namePos)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if !marked {
				if len(p.ForceDerive) == 0 {
					continue
				}
				if _, isStruct := ts.Type.(*ast.StructType); !isStruct {
					continue
				}
				derivs = p.ForceDerive
			}
			if p.typeExcluded(ts.Name.Name) {
				continue
			}

			rec, recErrs := p.buildRecord(file, ts, derivs)
			if len(recErrs) > 0 {
				errs = append(errs, recErrs...)
				continue
			}
			p.Records = append(p.Records, rec)
		}
	}

	return errs
}

// buildRecord validates the shape of one marked declaration and parses its
// per-field directives. Companions mirror named fields only.
func (p *Parser) buildRecord(file *ast.File, ts *ast.TypeSpec, derivs []model.Derivation) (*model.Record, []error) {
	namePos := p.fset.Position(ts.Name.Pos())

	if ts.Assign.IsValid() {
		return nil, []error{shapeErrorf(namePos, "%s is a type alias; only struct types with named fields are supported", ts.Name.Name)}
	}
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return nil, []error{shapeErrorf(namePos, "%s is not a struct type; only struct types with named fields are supported", ts.Name.Name)}
	}

	rec := &model.Record{
		Name:        ts.Name.Name,
		Doc:         commentText(ts.Doc),
		TypeParams:  ts.TypeParams,
		Derivations: derivs,
		PkgPath:     p.PkgPath,
		PkgName:     p.PkgName,
		File:        file,
		Pos:         namePos,
	}

	var errs []error
	seen := make(map[string]string) // exported companion name → source field
	for _, fld := range st.Fields.List {
		fieldPos := p.fset.Position(fld.Pos())

		if len(fld.Names) == 0 {
			errs = append(errs, shapeErrorf(fieldPos, "%s embeds %s; companions mirror named fields only", rec.Name, embeddedName(fld.Type)))
			continue
		}

		skip, err := parseFieldDirectives(fld.Tag, fieldPos)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		// One field spec may declare several names: X, Y string.
		for _, id := range fld.Names {
			idPos := p.fset.Position(id.Pos())

			if skip && token.IsExported(id.Name) {
				errs = append(errs, attrErrorf(idPos, "cannot skip exported field %s; only unexported fields can be withheld", id.Name))
				continue
			}
			// The borrowed and mutable views export every field, so two
			// source names must never share an exported form.
			exp := model.ExportedName(id.Name)
			if prev, dup := seen[exp]; dup {
				errs = append(errs, shapeErrorf(idPos, "fields %s and %s map to the same companion field %s", prev, id.Name, exp))
				continue
			}
			seen[exp] = id.Name

			rec.Fields = append(rec.Fields, &model.Field{
				Name:     id.Name,
				TypeExpr: fld.Type,
				Skip:     skip,
				Doc:      commentText(fld.Doc),
				Pos:      idPos,
			})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return rec, nil
}

func (p *Parser) typeExcluded(name string) bool {
	for _, ex := range p.ExcludeTypes {
		if strings.EqualFold(ex, name) {
			return true
		}
	}
	return false
}

// modulePackagePath derives the import path of the scanned directory from
// the enclosing go.mod, for runs where the package loader cannot.
func (p *Parser) modulePackagePath() (string, error) {
	abs, err := filepath.Abs(p.InDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			mf, err := modfile.Parse("go.mod", data, nil)
			if err != nil {
				return "", err
			}
			rel, err := filepath.Rel(dir, abs)
			if err != nil {
				return "", err
			}
			if rel == "." {
				return mf.Module.Mod.Path, nil
			}
			return mf.Module.Mod.Path + "/" + filepath.ToSlash(rel), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod found above %s", abs)
		}
		dir = parent
	}
}

func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	}
	return "a type"
}

func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range cg.List {
		txt := strings.TrimSpace(strings.Trim(strings.TrimPrefix(strings.TrimPrefix(c.Text, "//"), "/*"), "*/"))
		b.WriteString(txt)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
