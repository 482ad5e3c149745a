package parse

import (
	"fmt"
	"strings"

	"github.com/pugfmt/go-pug/ir"
	"github.com/pugfmt/go-pug/token"
)

func Parse(d []byte, opts ...Option) (*ir.Node, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	root := ir.NewRoot(pOpts.baseDepth)
	previous := root
	for _, ln := range token.SplitLines(d, pOpts.filename) {
		depth := ln.Depth + pOpts.baseDepth
		parent := previous.Parent
		if parent == nil {
			parent = previous
		}
		body := ln.Body
		fold := strings.HasPrefix(body, ir.FoldMark)
		switch {
		case strings.HasPrefix(body, ir.CommentMark):
			// comments always join the current level
			previous = parent.PushChild(previous.Depth, body, ln.Pos)
			continue
		case strings.HasPrefix(body, ir.RawCommentMark):
			// dropped
			continue
		case ln.Blank():
			// dropped
			continue
		case previous.Depth == depth:
			// sibling of the previous line
			previous = parent.PushChild(depth, body, ln.Pos)
		case parent.Depth < depth && depth <= previous.Depth:
			// grandchild-like: joins the previous line's level group
			previous = parent.PushChild(depth, body, ln.Pos)
		case parent.Depth < depth:
			previous = previous.PushChild(depth, body, ln.Pos)
		default:
			previous = previous.PopNest(depth)
			if previous.Depth < depth {
				// cousin of the previous line
				previous = previous.PushChild(depth, body, ln.Pos)
			} else {
				// aunt of the previous line
				p := previous.Parent
				if p == nil {
					p = previous
				}
				previous = p.PushChild(depth, body, ln.Pos)
			}
		}
		if fold {
			// the folding flag lands on the line's placed parent;
			// folding cannot start at the top of a file
			p := previous.Parent
			if p.Parent == nil {
				return nil, fmt.Errorf("%w at %s", ErrFoldTop, ln.Pos)
			}
			p.Folding = true
		}
	}
	return root, nil
}
