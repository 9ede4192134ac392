package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a requested file or entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrConstraint indicates a store constraint rejected a row
	// (quantity/price checks, unknown customer reference).
	ErrConstraint = errors.New("constraint violation")
)

// ParseError reports a source row that failed required-field or type
// validation. Line is 1-based and counts the header row.
type ParseError struct {
	Line   int
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: field %q: %s", e.Line, e.Field, e.Reason)
}
