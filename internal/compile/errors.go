// Package compile implements the pass pipeline that turns a music
// expression tree into a sorted, channel-allocated MIDI event stream:
// function application, relative->absolute resolution, join tagging,
// flattening, mid-stream construction and channel allocation.
package compile

import (
	"fmt"

	"github.com/schollz/mdlc/internal/textloc"
)

// SemanticError is a semantic-class compile error: an unknown
// function name, a malformed argument, an out-of-range chord type. It
// carries the source location of the offending node so the caller can
// report it against the original input.
type SemanticError struct {
	Loc textloc.Loc
	Msg string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

func semErr(loc textloc.Loc, format string, args ...any) error {
	return &SemanticError{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}
