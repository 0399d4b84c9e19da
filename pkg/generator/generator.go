// Package generator is the public entry point: it wires the package scanner
// to the companion emitters and writes the generated file.
package generator

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/reirokusanami/destructure/internal/emitter"
	"github.com/reirokusanami/destructure/internal/parser"
)

// Generator runs the scan → validate → emit pipeline for one package.
type Generator struct {
	Opts Options
}

// New builds a Generator from functional options.
func New(opts ...Option) (*Generator, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	return NewWithOpts(o)
}

// NewWithOpts builds a Generator from an explicit Options value.
func NewWithOpts(o *Options) (*Generator, error) {
	if err := o.Normalize(); err != nil {
		return nil, err
	}
	return &Generator{Opts: *o}, nil
}

// Render scans the input package and writes the generated source to w.
// Any shape or directive diagnostic aborts the run before a byte is
// written; there is never partial output.
func (g *Generator) Render(w io.Writer) error {
	p := parser.New(g.Opts.InDir)
	p.ExcludeTypes = g.Opts.ExcludeTypes
	p.ForceDerive = g.Opts.derivations()

	if err := p.Parse(); err != nil {
		return err
	}

	e := emitter.New(p.PkgPath, p.PkgName, p.Imports())
	return e.EmitFile(p.Records).Render(w)
}

// Generate renders the companions into OutDir/OutFile and returns the
// written path. The file is only touched when the whole run succeeds.
func (g *Generator) Generate() (string, error) {
	var buf bytes.Buffer
	if err := g.Render(&buf); err != nil {
		return "", err
	}

	if err := os.MkdirAll(g.Opts.OutDir, 0o755); err != nil {
		return "", err
	}
	outFile := filepath.Clean(filepath.Join(g.Opts.OutDir, g.Opts.OutFile))
	if err := os.WriteFile(outFile, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return outFile, nil
}
