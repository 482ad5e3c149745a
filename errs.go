package pug

import (
	"errors"

	"github.com/pugfmt/go-pug/source"
)

// SyntaxError reports malformed pug input. The wrapped error carries
// the failing directive's sentinel and source position.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return e.Err.Error()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// IOError is the load/store failure type; it carries the offending
// path and the underlying cause.
type IOError = source.IOError

// wrap classifies err at the public boundary: I/O failures pass
// through, everything else is a syntax error.
func wrap(err error) error {
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return err
	}
	var synErr *SyntaxError
	if errors.As(err, &synErr) {
		return err
	}
	return &SyntaxError{Err: err}
}
