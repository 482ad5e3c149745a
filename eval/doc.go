// Package eval implements the expression language of control
// directives: a typed operand domain (integer, boolean, string), binary
// comparison and assignment, and the variable/block context threaded
// through rendering.
package eval
