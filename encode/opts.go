package encode

import "github.com/pugfmt/go-pug/source"

type EncodeOption func(*EncState)

// EncodeLoader sets the loader used by include and extends.
func EncodeLoader(l source.Loader) EncodeOption {
	return func(es *EncState) { es.loader = l }
}

// EncodeBase sets the path include targets are resolved against.
func EncodeBase(path string) EncodeOption {
	return func(es *EncState) { es.base = path }
}

// EncodeMaxInclude bounds include nesting so include cycles fail with
// ErrIncludeDepth instead of looping.
func EncodeMaxInclude(n int) EncodeOption {
	return func(es *EncState) { es.maxInclude = n }
}
