package encode

import "errors"

var (
	ErrElement      = errors.New("bad element")
	ErrAttr         = errors.New("bad attribute list")
	ErrCase         = errors.New("bad case")
	ErrElse         = errors.New("misplaced else")
	ErrEach         = errors.New("bad each list")
	ErrIncludeDepth = errors.New("include depth exceeded")
)
