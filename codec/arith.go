package codec

import (
	"fmt"
	"strings"
)

// Op is a compound update applied to a scalar field.
type Op uint8

const (
	Add Op = iota
	Sub
	Mul
	Div
)

// String implements the Stringer interface for Op.
func (o Op) String() string {
	switch o {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// ParseOp parses an operation name as printed by Op.String. The symbols
// "+", "-", "*" and "/" are accepted too.
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add", "+":
		return Add, nil
	case "sub", "-":
		return Sub, nil
	case "mul", "*":
		return Mul, nil
	case "div", "/":
		return Div, nil
	default:
		return 0, fmt.Errorf("codec: unknown op %q", s)
	}
}

// Apply computes cur <op> x in the arithmetic of kind k.
//
// Both operands are first truncated to the field width, then the result
// wraps modulo 2^(8*width), matching Go's uint8..uint64 semantics. Division
// by zero (including an operand that truncates to zero) panics with the Go
// runtime's integer-divide-by-zero error.
func Apply(k Kind, op Op, cur, x uint64) uint64 {
	cur, x = k.Truncate(cur), k.Truncate(x)
	var r uint64
	switch op {
	case Add:
		r = cur + x
	case Sub:
		r = cur - x
	case Mul:
		r = cur * x
	case Div:
		r = cur / x
	default:
		panic(fmt.Sprintf("codec: unknown op %d", uint8(op)))
	}
	return k.Truncate(r)
}
