package parser

import (
	"go/ast"
	"go/token"
	"reflect"
	"strings"

	"github.com/reirokusanami/destructure/internal/model"
)

// derive markers live in the type's doc comment:
//
//	//destructure:derive Destructure,Mutation
//	type Book struct { ... }
const deriveMarker = "destructure:derive"

// parseDeriveMarker extracts the requested derivations from a doc comment.
// It returns nil, false when the comment carries no marker at all.
func parseDeriveMarker(doc *ast.CommentGroup, pos token.Position) ([]model.Derivation, bool, error) {
	if doc == nil {
		return nil, false, nil
	}

	for _, c := range doc.List {
		text := strings.TrimPrefix(c.Text, "//")
		text = strings.TrimSpace(text)
		if !strings.HasPrefix(text, deriveMarker) {
			continue
		}

		list := strings.TrimSpace(strings.TrimPrefix(text, deriveMarker))
		if list == "" {
			return nil, true, shapeErrorf(pos, "%s marker needs at least one derivation name", deriveMarker)
		}

		var out []model.Derivation
		for _, name := range strings.Split(list, ",") {
			name = strings.TrimSpace(name)
			d, ok := model.ParseDerivation(name)
			if !ok {
				return nil, true, shapeErrorf(pos, "unknown derivation %q (expected Destructure, DestructureRef or Mutation)", name)
			}
			out = appendDerivation(out, d)
		}
		return out, true, nil
	}

	return nil, false, nil
}

// appendDerivation keeps the list duplicate-free while preserving order.
func appendDerivation(list []model.Derivation, d model.Derivation) []model.Derivation {
	for _, have := range list {
		if have == d {
			return list
		}
	}
	return append(list, d)
}

// parseFieldDirectives validates the field's `destructure` struct tag against
// the recognized directive set. The only recognized flag is `skip`, and it
// takes no arguments.
func parseFieldDirectives(tagLit *ast.BasicLit, pos token.Position) (skip bool, err error) {
	if tagLit == nil {
		return false, nil
	}

	tag := reflect.StructTag(strings.Trim(tagLit.Value, "`"))
	raw, ok := tag.Lookup("destructure")
	if !ok {
		return false, nil
	}

	for _, flag := range strings.Split(raw, ",") {
		flag = strings.TrimSpace(flag)
		if flag == "" {
			continue
		}
		if name, _, hasArg := strings.Cut(flag, "="); hasArg {
			return false, attrErrorf(pos, "directive %q does not take arguments", name)
		}
		if flag != "skip" {
			return false, attrErrorf(pos, "unknown directive %q (recognized: skip)", flag)
		}
		skip = true
	}

	return skip, nil
}
