// Package token holds the lone position type shared across the AST,
// diagnostics and checker packages. The lexer/parser that produce these
// locations are external collaborators (spec.md §1); this package only
// defines the shape they are assumed to populate.
package token

import "fmt"

// Location pinpoints a span of source text (spec.md §7: "Location{module,
// row, column, span}").
type Location struct {
	Module string
	Row    int
	Column int
	Span   int
}

// String renders "module:row:col", matching the teacher's
// DiagnosticError.Error() positional format.
func (l Location) String() string {
	if l.Module == "" && l.Row == 0 && l.Column == 0 {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.Module, l.Row, l.Column)
}

// Zero reports whether this location carries no position information.
func (l Location) Zero() bool {
	return l.Row == 0 && l.Column == 0 && l.Module == ""
}
