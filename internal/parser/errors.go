package parser

import (
	"fmt"
	"go/token"
)

// CodeError indicates where a diagnostic occurred in the user's source code.
// The generator never emits partial output once one has been reported.
type CodeError struct {
	err error
	pos token.Position
}

// Unwrap returns the underlying error.
func (e *CodeError) Unwrap() error { return e.err }

// Position returns the source location the diagnostic is anchored at.
func (e *CodeError) Position() token.Position { return e.pos }

// Error implements the error interface. If the position is valid it is
// prepended to the message in the usual file:line:col form.
func (e *CodeError) Error() string {
	if e.err == nil {
		return ""
	}
	if !e.pos.IsValid() {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %s", e.pos, e.err.Error())
}

// errorf formats a diagnostic anchored at pos.
func errorf(pos token.Position, format string, args ...any) error {
	return &CodeError{err: fmt.Errorf(format, args...), pos: pos}
}

// shapeErrorf reports that a marked declaration is not a record the engine
// can transform. Anchored at the type name.
func shapeErrorf(pos token.Position, format string, args ...any) error {
	return errorf(pos, "destructure: "+format, args...)
}

// attrErrorf reports an unrecognized or malformed per-field directive.
// Anchored at the offending field.
func attrErrorf(pos token.Position, format string, args ...any) error {
	return errorf(pos, "destructure: "+format, args...)
}
