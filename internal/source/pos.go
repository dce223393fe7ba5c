// Package source defines the position and span types shared by the AST,
// type, and constraint trees, factored out of the teacher's ast.Pos/Span
// shape so that internal/types does not need to import internal/ast.
package source

import "fmt"

// Pos is a single point in source text.
type Pos struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Pos) String() string {
	if p.File == "" && p.Line == 0 {
		return "<generated>"
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a range in source text.
type Span struct {
	Start Pos
	End   Pos
}

// Undefined is the sentinel position used when no syntactic position is
// available, e.g. inside elaborator-generated dictionary code (spec §7).
var Undefined = Pos{}

// IsUndefined reports whether p is the Undefined sentinel.
func (p Pos) IsUndefined() bool { return p == Undefined }
