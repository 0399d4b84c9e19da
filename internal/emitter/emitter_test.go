package emitter

import (
	"bytes"
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reirokusanami/destructure/internal/model"
)

// buildRecord parses a one-type source snippet into a Record so the emitters
// can be exercised without the package loader.
func buildRecord(t *testing.T, src string, derivs ...model.Derivation) (*model.Record, map[*ast.File]map[string]string) {
	t.Helper()

	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, "src.go", src, goparser.ParseComments)
	require.NoError(t, err)

	imports := map[string]string{}
	for _, imp := range file.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		name := path
		if i := strings.LastIndex(path, "/"); i >= 0 {
			name = path[i+1:]
		}
		if imp.Name != nil {
			name = imp.Name.Name
		}
		imports[name] = path
	}

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		ts := gen.Specs[0].(*ast.TypeSpec)
		st, ok := ts.Type.(*ast.StructType)
		require.True(t, ok, "fixture type must be a struct")

		rec := &model.Record{
			Name:        ts.Name.Name,
			TypeParams:  ts.TypeParams,
			Derivations: derivs,
			PkgPath:     "example.com/demo",
			PkgName:     "demo",
			File:        file,
		}
		for _, fld := range st.Fields.List {
			skip := fld.Tag != nil && strings.Contains(fld.Tag.Value, `destructure:"skip"`)
			for _, id := range fld.Names {
				rec.Fields = append(rec.Fields, &model.Field{
					Name:     id.Name,
					TypeExpr: fld.Type,
					Skip:     skip,
				})
			}
		}
		return rec, map[*ast.File]map[string]string{file: imports}
	}

	t.Fatal("no type declaration in fixture")
	return nil, nil
}

func render(t *testing.T, rec *model.Record, imports map[*ast.File]map[string]string) string {
	t.Helper()
	e := New(rec.PkgPath, rec.PkgName, imports)
	var buf bytes.Buffer
	require.NoError(t, e.EmitFile([]*model.Record{rec}).Render(&buf))

	// Whatever else, the output must be parseable Go.
	_, err := goparser.ParseFile(token.NewFileSet(), "gen.go", buf.String(), 0)
	require.NoError(t, err, "generated output must parse:\n%s", buf.String())

	return buf.String()
}

// squash collapses all whitespace runs so assertions do not depend on
// gofmt's column alignment.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

const bookSrc = `package demo

import "time"

type Book struct {
	id          string
	name        string
	publishedAt time.Time
	author      string ` + "`destructure:\"skip\"`" + `
}
`

func TestEmitDestructure(t *testing.T) {
	rec, imports := buildRecord(t, bookSrc, model.DeriveDestructure)
	raw := render(t, rec, imports)
	out := squash(raw)

	assert.Contains(t, raw, "// Code generated by destructure. DO NOT EDIT.")
	assert.Contains(t, out, "type DestructBook struct {")
	assert.Contains(t, out, "func (b Book) IntoDestruct() DestructBook {")
	assert.Contains(t, out, "func (b Book) Reconstruct(f func(*DestructBook)) Book {")
	assert.Contains(t, out, "func (b Book) TryReconstruct(f func(*DestructBook) error) (Book, error) {")
	assert.Contains(t, out, "func (d DestructBook) Freeze() Book {")

	// The skipped field keeps its unexported name; the rest are exported.
	assert.Contains(t, out, "Id string")
	assert.Contains(t, out, "author string")
	assert.NotContains(t, out, "Author")

	// Imported field types are re-qualified and the import carried over.
	assert.Contains(t, out, "PublishedAt time.Time")
	assert.Contains(t, raw, `"time"`)
}

func TestEmitDestructureRef(t *testing.T) {
	rec, imports := buildRecord(t, bookSrc, model.DeriveDestructureRef)
	out := squash(render(t, rec, imports))

	assert.Contains(t, out, "type DestructBookRef struct {")
	assert.Contains(t, out, "func (b *Book) AsDestruct() DestructBookRef {")
	// The view is total: skip is not honored here.
	assert.Contains(t, out, "Author *string")
	assert.Contains(t, out, "Author: &b.author")
}

func TestEmitMutation(t *testing.T) {
	rec, imports := buildRecord(t, bookSrc, model.DeriveMutation)
	out := squash(render(t, rec, imports))

	assert.Contains(t, out, "type BookMut struct {")
	assert.Contains(t, out, "func (b *Book) Substitute(f func(*BookMut)) {")
	assert.Contains(t, out, "func (b *Book) TrySubstitute(f func(*BookMut) error) error {")
	assert.Contains(t, out, "PublishedAt *time.Time")
	assert.Contains(t, out, "PublishedAt: &b.publishedAt")
}

const domainSrc = `package demo

type Domain[A, B any] struct {
	a A
	b B
}
`

func TestEmitGenerics(t *testing.T) {
	rec, imports := buildRecord(t, domainSrc,
		model.DeriveDestructure, model.DeriveMutation)
	out := squash(render(t, rec, imports))

	assert.Contains(t, out, "type DestructDomain[A any, B any] struct {")
	assert.Contains(t, out, "func (d Domain[A, B]) IntoDestruct() DestructDomain[A, B] {")
	assert.Contains(t, out, "func (d DestructDomain[A, B]) Freeze() Domain[A, B] {")
	assert.Contains(t, out, "var zero Domain[A, B]")
	assert.Contains(t, out, "type DomainMut[A any, B any] struct {")
	assert.Contains(t, out, "func (d *Domain[A, B]) Substitute(f func(*DomainMut[A, B])) {")
}

const emptySrc = `package demo

type Unit struct{}
`

func TestEmitZeroFieldRecord(t *testing.T) {
	rec, imports := buildRecord(t, emptySrc,
		model.DeriveDestructure, model.DeriveDestructureRef, model.DeriveMutation)
	out := squash(render(t, rec, imports))

	// Zero-field companions are still well formed.
	assert.Contains(t, out, "type DestructUnit struct")
	assert.Contains(t, out, "type DestructUnitRef struct")
	assert.Contains(t, out, "type UnitMut struct")
	assert.Contains(t, out, "func (u Unit) IntoDestruct() DestructUnit {")
}

const flowSrc = `package demo

type Flow struct {
	rate  int
	label string
}
`

const moneySrc = `package demo

type Money struct {
	amount   int64
	currency string
}
`

// Receivers never shadow the f closure parameter or the m view local that
// the generated bodies declare.
func TestEmitReservedReceiverNames(t *testing.T) {
	all := []model.Derivation{
		model.DeriveDestructure,
		model.DeriveDestructureRef,
		model.DeriveMutation,
	}

	rec, imports := buildRecord(t, flowSrc, all...)
	flowOut := render(t, rec, imports)
	assert.Contains(t, squash(flowOut), "func (ff Flow) IntoDestruct() DestructFlow {")
	assert.Contains(t, squash(flowOut), "func (ff Flow) Reconstruct(f func(*DestructFlow)) Flow {")
	typeCheck(t, flowSrc, flowOut)

	rec, imports = buildRecord(t, moneySrc, all...)
	moneyOut := render(t, rec, imports)
	assert.Contains(t, squash(moneyOut), "func (mm *Money) Substitute(f func(*MoneyMut)) {")
	typeCheck(t, moneySrc, moneyOut)
}

// typeCheck verifies that the sources form a well-typed package. Only
// import-free fixtures can be checked this way.
func typeCheck(t *testing.T, srcs ...string) {
	t.Helper()
	fset := token.NewFileSet()
	var files []*ast.File
	for i, src := range srcs {
		f, err := goparser.ParseFile(fset, fmt.Sprintf("src%d.go", i), src, 0)
		require.NoError(t, err)
		files = append(files, f)
	}
	_, err := (&types.Config{}).Check("demo", fset, files, nil)
	require.NoError(t, err)
}

const richSrc = `package demo

import (
	stdctx "context"
	"time"
)

type Rich struct {
	tags    []string
	lookup  map[string]*time.Time
	matrix  [4]int
	stream  chan int
	results <-chan error
	ctx     stdctx.Context
	list    List[int]
}

type List[T any] struct{ items []T }
`

func TestTypeRendering(t *testing.T) {
	rec, imports := buildRecord(t, richSrc, model.DeriveDestructure)
	out := squash(render(t, rec, imports))

	assert.Contains(t, out, "Tags []string")
	assert.Contains(t, out, "Lookup map[string]*time.Time")
	assert.Contains(t, out, "Matrix [4]int")
	assert.Contains(t, out, "Stream chan int")
	assert.Contains(t, out, "Results <-chan error")
	assert.Contains(t, out, "Ctx context.Context")
	assert.Contains(t, out, "List List[int]")
}
