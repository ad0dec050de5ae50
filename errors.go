package scalarfl

import "fmt"

// CompileError is the single error type every compile function returns,
// matching spec.md §6/§7's integer error field: Position > 0 is the
// 1-based byte offset of the first syntax error; Position < 0 marks a
// semantic error (unresolved assignment target, duplicate or undefined
// label, or any failed embedded expression of a program). Wrong arity and
// unknown identifiers in an expression are syntax errors.
type CompileError struct {
	Position int
	Msg      string
}

func (e *CompileError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("syntax error at offset %d: %s", e.Position, e.Msg)
	}
	return fmt.Sprintf("compile error: %s", e.Msg)
}

func syntaxErrorf(offset int, format string, args ...any) *CompileError {
	if offset <= 0 {
		offset = 1
	}
	return &CompileError{Position: offset, Msg: fmt.Sprintf(format, args...)}
}

func semanticErrorf(format string, args ...any) *CompileError {
	return &CompileError{Position: -1, Msg: fmt.Sprintf(format, args...)}
}
