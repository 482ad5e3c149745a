package eval

import (
	"fmt"
	"regexp"

	"github.com/pugfmt/go-pug/debug"
)

var binaryRe = regexp.MustCompile(`^([^ \t]+)[ \t]+([^ \t]+)[ \t]+([^ \t]+)$`)

var compareOps = map[string]bool{
	"==": true, "===": true, "!=": true, "!==": true,
	"<": true, "<=": true, ">": true, ">=": true,
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
}

// Evaluate applies the single binary expression expr under ctx. The
// expression is exactly three whitespace-separated tokens; bare
// operands are not expressions. Comparisons yield their result and
// leave the context unchanged; assignments yield true and a derived
// context.
func Evaluate(ctx *Context, expr string) (bool, *Context, error) {
	if debug.Eval() {
		debug.Logf("eval %q\n", expr)
	}
	m := binaryRe.FindStringSubmatch(expr)
	if m == nil {
		return false, nil, fmt.Errorf("%w: %q", ErrExpression, expr)
	}
	op := m[2]
	rhs, err := ToOperand(ctx, m[3])
	if err != nil {
		return false, nil, err
	}
	switch {
	case compareOps[op]:
		lhs, err := ToOperand(ctx, m[1])
		if err != nil {
			return false, nil, err
		}
		res, err := compare(lhs, op, rhs)
		if err != nil {
			return false, nil, err
		}
		return res, ctx, nil
	case assignOps[op]:
		res, err := assign(ctx, m[1], op, rhs)
		if err != nil {
			return false, nil, err
		}
		return true, res, nil
	}
	return false, nil, fmt.Errorf("%w: operator %q", ErrExpression, op)
}

func compare(lhs Operand, op string, rhs Operand) (bool, error) {
	switch lhs.Kind {
	case BoolKind:
		switch rhs.Kind {
		case BoolKind:
			switch op {
			case "==", "===":
				return lhs.Bool == rhs.Bool, nil
			case "!=", "!==":
				return lhs.Bool != rhs.Bool, nil
			}
		case IntKind:
			switch op {
			case "==", "===":
				return lhs.Bool == (rhs.Int != 0), nil
			case "!=", "!==":
				return lhs.Bool != (rhs.Int != 0), nil
			}
		case StrKind:
			// a boolean equals a string when the string is non-empty
			switch op {
			case "==", "===":
				return lhs.Bool != (rhs.Str == ""), nil
			case "!=", "!==":
				return lhs.Bool == (rhs.Str == ""), nil
			}
		}
	case IntKind:
		switch rhs.Kind {
		case IntKind:
			switch op {
			case "==", "===":
				return lhs.Int == rhs.Int, nil
			case "!=", "!==":
				return lhs.Int != rhs.Int, nil
			case "<":
				return lhs.Int < rhs.Int, nil
			case "<=":
				return lhs.Int <= rhs.Int, nil
			case ">":
				return lhs.Int > rhs.Int, nil
			case ">=":
				return lhs.Int >= rhs.Int, nil
			}
		case BoolKind:
			switch op {
			case "==", "===":
				return (lhs.Int != 0) == rhs.Bool, nil
			case "!=", "!==":
				return (lhs.Int != 0) != rhs.Bool, nil
			}
		case StrKind:
			switch op {
			case "==", "===":
				return lhs.String() == rhs.Str, nil
			case "!=", "!==":
				return lhs.String() != rhs.Str, nil
			}
		}
	case StrKind:
		rv := rhs.String()
		switch op {
		case "==", "===":
			return lhs.Str == rv, nil
		case "!=", "!==":
			return lhs.Str != rv, nil
		}
	}
	return false, fmt.Errorf("%w: %s %s %s", ErrCompare, lhs.Kind, op, rhs.Kind)
}

func assign(ctx *Context, name, op string, value Operand) (*Context, error) {
	if !ctx.HasVar(name) && op != "=" {
		return nil, fmt.Errorf("%w: %q is not assigned", ErrAssign, name)
	}
	if op == "=" {
		return ctx.Set(name, value.String()), nil
	}
	cur, err := ToOperand(ctx, name)
	if err != nil {
		return nil, err
	}
	switch cur.Kind {
	case StrKind:
		if op != "+=" {
			return nil, fmt.Errorf("%w: %s on string %q", ErrAssign, op, name)
		}
		return ctx.Set(name, cur.Str+value.String()), nil
	case IntKind:
		if value.Kind == StrKind && op == "+=" {
			return ctx.Set(name, cur.String()+value.Str), nil
		}
		if value.Kind != IntKind {
			return nil, fmt.Errorf("%w: %s %s %s", ErrAssign, cur.Kind, op, value.Kind)
		}
		switch op {
		case "+=":
			return ctx.Set(name, FromInt(cur.Int+value.Int).String()), nil
		case "-=":
			return ctx.Set(name, FromInt(cur.Int-value.Int).String()), nil
		case "*=":
			return ctx.Set(name, FromInt(cur.Int*value.Int).String()), nil
		case "/=":
			if value.Int == 0 {
				return nil, fmt.Errorf("%w: %s at %q", ErrZeroDivision, op, name)
			}
			return ctx.Set(name, FromInt(cur.Int/value.Int).String()), nil
		case "%=":
			if value.Int == 0 {
				return nil, fmt.Errorf("%w: %s at %q", ErrZeroDivision, op, name)
			}
			return ctx.Set(name, FromInt(cur.Int%value.Int).String()), nil
		}
	}
	// a boolean target admits no compound assignment; leave it as is
	return ctx, nil
}
