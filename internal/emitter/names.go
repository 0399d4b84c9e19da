package emitter

import (
	"strings"
	"unicode/utf8"

	"github.com/reirokusanami/destructure/internal/model"
)

// Generated type names are formed by literal concatenation with the source
// type's identifier, so downstream code can refer to them by name.

func destructName(name string) string { return "Destruct" + name }

func destructRefName(name string) string { return "Destruct" + name + "Ref" }

func mutName(name string) string { return name + "Mut" }

// companionFieldName maps a source field to its name in the owning companion.
// The parser guarantees the resulting names are collision-free and that skip
// only appears on unexported fields.
func companionFieldName(f *model.Field) string { return f.CompanionName() }

func exported(name string) string { return model.ExportedName(name) }

// receiverName picks the conventional one-letter receiver for a type.
// The identifiers f and m are taken by the closure parameter and the
// mutation-view local in generated method bodies, so receivers that would
// shadow them double the rune instead.
func receiverName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	name := strings.ToLower(string(r))
	switch name {
	case "f", "m":
		return name + name
	}
	return name
}
