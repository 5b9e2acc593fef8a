package typeexpr

import "fmt"

// UnknownTypeError reports a type name found in neither link table.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type %q", e.Name)
}

// SyntaxError reports a malformed type expression.
type SyntaxError struct {
	Expr   string
	Offset int
	Msg    string
}

func newSyntaxError(expr string, offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Expr: expr, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid type expression %q at offset %d: %s", e.Expr, e.Offset, e.Msg)
}
