// Package source holds the minimal positional types shared by the AST,
// symbol table, and diagnostics. Tokenization and file I/O are out of
// scope (spec.md §1); Span is the thin contract those out-of-scope
// collaborators would populate.
package source

import "fmt"

// Span is a half-open source range within one unit, 1-indexed for
// line/column to match conventional editor-facing diagnostics.
type Span struct {
	Unit                 string
	StartLine, StartCol  int
	EndLine, EndCol       int
}

// Cover returns the smallest span containing both s and o.
func (s Span) Cover(o Span) Span {
	if s == (Span{}) {
		return o
	}
	if o == (Span{}) {
		return s
	}
	out := s
	if o.StartLine < out.StartLine || (o.StartLine == out.StartLine && o.StartCol < out.StartCol) {
		out.StartLine, out.StartCol = o.StartLine, o.StartCol
	}
	if o.EndLine > out.EndLine || (o.EndLine == out.EndLine && o.EndCol > out.EndCol) {
		out.EndLine, out.EndCol = o.EndLine, o.EndCol
	}
	return out
}

// String renders "unit:line:col-col" for a single-line span and
// "unit:line:col-line:col" otherwise, the editor-parseable format
// spec.md §7 requires ("a consistent format suitable for editor parsing").
func (s Span) String() string {
	if s.StartLine == s.EndLine {
		return fmt.Sprintf("%s:%d:%d-%d", s.Unit, s.StartLine, s.StartCol, s.EndCol)
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d", s.Unit, s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}
