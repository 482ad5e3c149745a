package token

import "fmt"

// Pos locates a line in its source. Column tracking is not kept; the
// translator reports line granularity only.
type Pos struct {
	Line int
	File string
}

func (p *Pos) String() string {
	if p == nil {
		return "<no position>"
	}
	if p.File == "" {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}
