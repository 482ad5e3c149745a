// Package pug translates a whitespace-indented template dialect to
// HTML.
//
// [String] translates source text; [File] loads and translates a file.
// include and extends read sibling files through a [source.Loader],
// which tests and embedders can replace with [WithLoader].
package pug

import (
	"os"

	"github.com/pugfmt/go-pug/debug"
	"github.com/pugfmt/go-pug/encode"
	"github.com/pugfmt/go-pug/eval"
	"github.com/pugfmt/go-pug/ir"
	"github.com/pugfmt/go-pug/parse"
	"github.com/pugfmt/go-pug/source"
)

// Option adjusts translation.
type Option func(*config)

type config struct {
	loader     source.Loader
	maxInclude int
}

// WithLoader replaces the file-system loader used by File and by the
// include and extends directives.
func WithLoader(l source.Loader) Option {
	return func(c *config) { c.loader = l }
}

// WithMaxIncludeDepth bounds include nesting; include cycles fail
// instead of looping.
func WithMaxIncludeDepth(n int) Option {
	return func(c *config) { c.maxInclude = n }
}

func newConfig(opts []Option) *config {
	cfg := &config{
		loader:     source.OSLoader{},
		maxInclude: encode.DefaultMaxInclude,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// String translates pug source to HTML. base is the path include and
// extends targets are resolved against.
func String(src string, base string, opts ...Option) (string, error) {
	cfg := newConfig(opts)
	root, err := parse.Parse([]byte(src), parse.WithFilename(base))
	if err != nil {
		return "", wrap(err)
	}
	if debug.Tree() {
		ir.Dump(os.Stderr, root, 0)
	}
	out, _, err := encode.String(root, eval.NewContext(),
		encode.EncodeLoader(cfg.loader),
		encode.EncodeBase(base),
		encode.EncodeMaxInclude(cfg.maxInclude))
	if err != nil {
		return "", wrap(err)
	}
	return out, nil
}

// File loads and translates the pug file at path.
func File(path string, opts ...Option) (string, error) {
	cfg := newConfig(opts)
	d, err := cfg.loader.Load(path)
	if err != nil {
		return "", wrap(err)
	}
	return String(string(d), path, opts...)
}
