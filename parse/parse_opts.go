package parse

type parseOpts struct {
	baseDepth int
	filename  string
}

type Option func(*parseOpts)

// WithBaseDepth raises the depth of every parsed line, aligning an
// included subfile under its including line.
func WithBaseDepth(n int) Option {
	return func(o *parseOpts) { o.baseDepth = n }
}

// WithFilename labels positions in errors.
func WithFilename(name string) Option {
	return func(o *parseOpts) { o.filename = name }
}
