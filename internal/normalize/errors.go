package normalize

import (
	"fmt"
	"strings"
)

// SchemaError reports declared columns or sheets missing from an input.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("normalize: %s: missing [%s]", e.Source, strings.Join(e.Missing, ", "))
}

// CoercionError reports an identifier cell that could not be read as an integer.
type CoercionError struct {
	Source string
	Column string
	Row    int // zero-based data row
	Value  string
	Err    error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("normalize: %s: column %q row %d: cannot coerce %q to integer: %v",
		e.Source, e.Column, e.Row, e.Value, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }
