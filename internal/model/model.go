package model

import (
	"go/ast"
	"go/token"
	"path"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var versionElement = regexp.MustCompile(`^v[0-9]+$`)

// PackageName guesses the name of the package an import path refers to.
// Major-version path elements (…/mod/v2) and gopkg.in-style suffixes
// (yaml.v3) are not part of the name.
func PackageName(importPath string) string {
	base := path.Base(importPath)
	if versionElement.MatchString(base) {
		base = path.Base(path.Dir(importPath))
	}
	if i := strings.LastIndex(base, "."); i > 0 && versionElement.MatchString(base[i+1:]) {
		base = base[:i]
	}
	return base
}

// Derivation selects one of the generated companion surfaces.
type Derivation int

const (
	DeriveInvalid Derivation = iota
	DeriveDestructure
	DeriveDestructureRef
	DeriveMutation
)

func (d Derivation) String() string {
	switch d {
	case DeriveDestructure:
		return "Destructure"
	case DeriveDestructureRef:
		return "DestructureRef"
	case DeriveMutation:
		return "Mutation"
	}
	return "Invalid"
}

// ParseDerivation maps a derivation name from a derive marker or an options
// list to its Derivation value.
func ParseDerivation(name string) (Derivation, bool) {
	switch name {
	case "Destructure":
		return DeriveDestructure, true
	case "DestructureRef":
		return DeriveDestructureRef, true
	case "Mutation":
		return DeriveMutation, true
	}
	return DeriveInvalid, false
}

// Field is one named field of a source record.
type Field struct {
	Name     string   // Go identifier
	TypeExpr ast.Expr // AST for the type (pointer, slice, selector, …)
	Skip     bool     // destructure:"skip" — not publicly exposed in the companion
	Doc      string   // top-of-field comment
	Pos      token.Position
}

// CompanionName is the field's name in the owning companion: the exported
// form of the source name, unless the field is skipped, in which case the
// unexported name is kept verbatim so it stays unassignable outside the
// defining package.
func (f *Field) CompanionName() string {
	if f.Skip {
		return f.Name
	}
	return ExportedName(f.Name)
}

// ExportedName upper-cases the first rune of name.
func ExportedName(name string) string {
	if name == "" {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// Record is a struct-type declaration selected for derivation.
type Record struct {
	Name        string
	Doc         string
	TypeParams  *ast.FieldList // nil when the type is not generic
	Fields      []*Field       // declaration order
	Derivations []Derivation   // requested, in marker order
	PkgPath     string
	PkgName     string
	File        *ast.File // to look up imports when rendering field types
	Pos         token.Position
}

// Derives reports whether the record requested the given derivation.
func (r *Record) Derives(d Derivation) bool {
	for _, have := range r.Derivations {
		if have == d {
			return true
		}
	}
	return false
}

// TypeParamNames returns the declared type parameter identifiers in order.
func (r *Record) TypeParamNames() []string {
	if r.TypeParams == nil {
		return nil
	}
	var out []string
	for _, p := range r.TypeParams.List {
		for _, id := range p.Names {
			out = append(out, id.Name)
		}
	}
	return out
}
