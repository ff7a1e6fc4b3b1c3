package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// SchemaError reports required columns missing from the header row.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "dataset: missing required columns: " + strings.Join(e.Missing, ", ")
}

// ParseError reports input that cannot be read as a sales dataset. Row and
// Column are set when the problem is a single cell; Row is 1-based and counts
// the header.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return "dataset: " + e.Err.Error()
	}
	return fmt.Sprintf("dataset: row %d column %s: %v (value %q)", e.Row, e.Column, e.Err, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError wraps err as a whole-file ParseError.
func NewParseError(err error) *ParseError {
	return &ParseError{Err: err}
}

// IsSchemaError reports whether err (or any error in its chain) is a
// SchemaError, returning it.
func IsSchemaError(err error) (*SchemaError, bool) {
	var se *SchemaError
	ok := errors.As(err, &se)
	return se, ok
}

// IsParseError reports whether err (or any error in its chain) is a
// ParseError, returning it.
func IsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	ok := errors.As(err, &pe)
	return pe, ok
}
