// Package encode renders a parsed line tree to HTML.
//
// # Usage
//
//	root, err := parse.Parse(data, parse.WithFilename("index.pug"))
//	if err != nil {
//	    return err
//	}
//	err = encode.Encode(root, os.Stdout, encode.EncodeBase("index.pug"))
//
// Each line is matched against the directive set (folding text,
// comments, include, extends, block, if, case, for, each, var) in
// priority order; anything else renders as an element. Rendering
// threads an [eval.Context] through the tree in document order.
package encode
