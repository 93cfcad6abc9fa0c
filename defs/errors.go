package defs

import (
	"errors"
	"fmt"
)

// Parse errors
var (
	ErrBadTimestamp = errors.New("bad timestamp")
	ErrMalformed    = errors.New("malformed record")
)

// ParseError represents a line that could not be turned into a Record
type ParseError struct {
	// Kind is ErrBadTimestamp or ErrMalformed
	Kind   error
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

func malformed(format string, a ...interface{}) *ParseError {
	return &ParseError{Kind: ErrMalformed, Detail: fmt.Sprintf(format, a...)}
}
