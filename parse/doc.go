// Package parse folds pug source lines into a line-node tree.
//
// # Usage
//
//	root, err := parse.Parse(data)
//	if err != nil {
//	    return err
//	}
//
//	// Embed an included subfile under its including line:
//	sub, err := parse.Parse(data, parse.WithBaseDepth(4), parse.WithFilename("nav.pug"))
//
// The builder drops blank lines and plain // comments, re-levels //-
// comments to the current sibling depth, marks folding parents, and
// applies the sibling/grandchild/child/cousin placement rules so
// irregular indent transitions keep the author's intent.
//
// # Related Packages
//
//   - github.com/pugfmt/go-pug/ir - the line-node tree
//   - github.com/pugfmt/go-pug/encode - HTML rendering
//   - github.com/pugfmt/go-pug/token - line splitting
package parse
