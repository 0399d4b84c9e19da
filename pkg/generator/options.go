package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reirokusanami/destructure/internal/model"
)

// Options control scanning and code generation.
//
// InDir        – directory of the package to scan
// OutDir       – output directory (defaults to InDir; methods must live in
//                the source package)
// OutFile      – output filename
// Derive       – derivation names applied to every struct without a derive
//                marker; empty means marker-driven only
// ExcludeTypes – names of types to skip (case-insensitive)
type Options struct {
	InDir        string   `json:"in_dir,omitempty" yaml:"in_dir,omitempty" toml:"in_dir,omitempty" mapstructure:"in_dir,omitempty"`
	OutDir       string   `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	OutFile      string   `json:"out_file,omitempty" yaml:"out_file,omitempty" toml:"out_file,omitempty" mapstructure:"out_file,omitempty"`
	Derive       []string `json:"derive,omitempty" yaml:"derive,omitempty" toml:"derive,omitempty" mapstructure:"derive,omitempty"`
	ExcludeTypes []string `json:"exclude_types,omitempty" yaml:"exclude_types,omitempty" toml:"exclude_types,omitempty" mapstructure:"exclude_types,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		InDir:   ".",
		OutFile: "destructure_gen.go",
	}
}

// Normalize fills defaults and validates the Derive list.
func (o *Options) Normalize() error {
	if o.InDir == "" {
		o.InDir = "."
	}
	if abs, err := filepath.Abs(o.InDir); err == nil {
		o.InDir = abs
	}
	if o.OutDir == "" {
		o.OutDir = o.InDir
	}
	if abs, err := filepath.Abs(o.OutDir); err == nil {
		o.OutDir = abs
	}
	if o.OutFile == "" {
		o.OutFile = "destructure_gen.go"
	}
	for _, name := range o.Derive {
		if _, ok := model.ParseDerivation(strings.TrimSpace(name)); !ok {
			return fmt.Errorf("unknown derivation %q (expected Destructure, DestructureRef or Mutation)", name)
		}
	}
	return nil
}

// derivations converts the validated Derive list. Normalize must have
// succeeded first.
func (o *Options) derivations() []model.Derivation {
	out := make([]model.Derivation, 0, len(o.Derive))
	for _, name := range o.Derive {
		if d, ok := model.ParseDerivation(strings.TrimSpace(name)); ok {
			out = append(out, d)
		}
	}
	return out
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInDir(d string) Option   { return func(o *Options) { o.InDir = d } }
func WithOutDir(d string) Option  { return func(o *Options) { o.OutDir = d } }
func WithOutFile(f string) Option { return func(o *Options) { o.OutFile = f } }
func WithDerive(names ...string) Option {
	return func(o *Options) { o.Derive = append(o.Derive, names...) }
}
func WithExcludeTypes(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.ExcludeTypes = append(o.ExcludeTypes, strings.TrimSpace(n))
		}
	}
}
