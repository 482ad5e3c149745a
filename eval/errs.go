package eval

import "errors"

var (
	ErrOperand      = errors.New("bad operand")
	ErrExpression   = errors.New("bad expression")
	ErrCompare      = errors.New("bad comparison")
	ErrAssign       = errors.New("bad assignment")
	ErrZeroDivision = errors.New("zero division")

	// ErrInvalidArgument signals caller misuse (empty block or
	// variable names); well-formed directives can never raise it.
	ErrInvalidArgument = errors.New("invalid argument")
)
