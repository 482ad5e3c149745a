package eval

import (
	"fmt"
	"regexp"
	"strconv"
)

// Kind discriminates operand variants.
type Kind int

const (
	IntKind Kind = iota
	BoolKind
	StrKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		IntKind:  "Int",
		BoolKind: "Bool",
		StrKind:  "Str",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

// Operand is a value in the expression language: a 64-bit integer, a
// boolean, or a string.
type Operand struct {
	Kind Kind
	Int  int64
	Bool bool
	Str  string
}

func FromInt(v int64) Operand {
	return Operand{Kind: IntKind, Int: v}
}

func FromBool(v bool) Operand {
	return Operand{Kind: BoolKind, Bool: v}
}

func FromString(v string) Operand {
	return Operand{Kind: StrKind, Str: v}
}

// String renders the operand in its output form: decimal for integers,
// true/false for booleans, the underlying text for strings.
func (o Operand) String() string {
	switch o.Kind {
	case IntKind:
		return strconv.FormatInt(o.Int, 10)
	case BoolKind:
		return strconv.FormatBool(o.Bool)
	default:
		return o.Str
	}
}

var (
	integerRe = regexp.MustCompile(`^(-?[0-9]+)$`)
	stringRe  = regexp.MustCompile(`^(['"])([^'"]*)(['"])$`)
)

// ToOperand resolves tok under ctx. Variables are read through first;
// then true/false, integer, and quoted-string literals are recognized.
// A variable whose value matches no literal form is a string; an
// unknown bare token is an error.
func ToOperand(ctx *Context, tok string) (Operand, error) {
	known := ctx.HasVar(tok)
	v := tok
	if known {
		v = ctx.Var(tok)
	}
	switch v {
	case "true":
		return FromBool(true), nil
	case "false":
		return FromBool(false), nil
	}
	if integerRe.MatchString(v) {
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Operand{}, fmt.Errorf("%w: integer %q: %v", ErrOperand, v, err)
		}
		return FromInt(i), nil
	}
	if m := stringRe.FindStringSubmatch(v); m != nil {
		if m[1] != m[3] {
			return Operand{}, fmt.Errorf("%w: mismatched quotes in %q", ErrOperand, v)
		}
		return FromString(m[2]), nil
	}
	if known {
		return FromString(v), nil
	}
	return Operand{}, fmt.Errorf("%w: %q", ErrOperand, tok)
}
