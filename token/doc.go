// Package token splits pug source into indent-counted lines.
//
// [SplitLines] is the entry point; it yields [Line] records carrying the
// tab depth, the body with the leading tabs removed, and a source
// position for error reporting.
package token
