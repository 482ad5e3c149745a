// Package ir holds the line-node tree the translator renders from.
package ir

import (
	"strings"

	"github.com/pugfmt/go-pug/token"
)

// Node is one line of pug source placed in the indentation tree. The
// root carries an empty body. Children are owned by their parent;
// Parent is a plain back-reference, never ownership.
type Node struct {
	Depth    int
	Body     string
	Pos      *token.Pos
	Parent   *Node
	Children []*Node
	Folding  bool
}

// NewRoot returns an empty root at the given base depth. The base is
// zero for a top-level file and the including line's depth for an
// embedded subfile.
func NewRoot(depth int) *Node {
	return &Node{Depth: depth}
}

// PushChild appends a new child line and returns it.
func (n *Node) PushChild(depth int, body string, pos *token.Pos) *Node {
	child := &Node{
		Depth:  depth,
		Body:   body,
		Pos:    pos,
		Parent: n,
	}
	n.Children = append(n.Children, child)
	return child
}

// PopNest returns the nearest ancestor (or n itself) whose depth does
// not exceed depth.
func (n *Node) PopNest(depth int) *Node {
	res := n
	for res.Parent != nil && res.Depth > depth {
		res = res.Parent
	}
	return res
}

// Tabs returns the indentation prefix for the node's depth.
func (n *Node) Tabs() string {
	return strings.Repeat("\t", n.Depth)
}

// Folded reports whether output for n is suppressed-indent. With
// parentOnly the node's own folding flag is ignored.
func (n *Node) Folded(parentOnly bool) bool {
	if n.Parent != nil && n.Parent.Folding {
		return true
	}
	return !parentOnly && n.Folding
}
