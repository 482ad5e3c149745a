package eval

import (
	"maps"

	"github.com/pugfmt/go-pug/ir"
)

// Context carries the named blocks and variables in scope. It is value
// semantic: setters return a derived context and never mutate the
// receiver, so a child's changes propagate to later siblings only
// through the returned value.
type Context struct {
	blocks map[string]*ir.Node
	vars   map[string]string
}

func NewContext() *Context {
	return &Context{}
}

func (c *Context) HasBlock(name string) bool {
	_, ok := c.blocks[name]
	return ok
}

func (c *Context) Block(name string) *ir.Node {
	return c.blocks[name]
}

// SetBlock returns a context in which name maps to node; a later set
// replaces an earlier one. An empty name panics with
// ErrInvalidArgument.
func (c *Context) SetBlock(name string, node *ir.Node) *Context {
	if name == "" {
		panic(ErrInvalidArgument)
	}
	res := c.clone()
	res.blocks[name] = node
	return res
}

func (c *Context) HasVar(name string) bool {
	_, ok := c.vars[name]
	return ok
}

// Var returns the variable's stored string value. Typing is re-inferred
// on each read by ToOperand.
func (c *Context) Var(name string) string {
	return c.vars[name]
}

// Set returns a context in which name holds value. An empty name panics
// with ErrInvalidArgument.
func (c *Context) Set(name, value string) *Context {
	if name == "" {
		panic(ErrInvalidArgument)
	}
	res := c.clone()
	res.vars[name] = value
	return res
}

func (c *Context) clone() *Context {
	res := &Context{
		blocks: maps.Clone(c.blocks),
		vars:   maps.Clone(c.vars),
	}
	if res.blocks == nil {
		res.blocks = map[string]*ir.Node{}
	}
	if res.vars == nil {
		res.vars = map[string]string{}
	}
	return res
}
