package parse

import "errors"

var (
	ErrFoldTop = errors.New("folding line at top level")
)
