package value

import (
	"fmt"
	"math/big"
)

// Value is a tagged union of Bool(b), Int(z) and Rat(p/q). The zero
// Value is an invalid value; always construct through one of the
// NewXxx constructors.
type Value struct {
	typ Type
	b   bool
	z   *big.Int
	r   *big.Rat
}

// NewBool constructs a Bool value.
func NewBool(b bool) Value {
	return Value{typ: Bool, b: b}
}

// NewInt constructs an Int value from an arbitrary-precision integer.
// The argument is cloned; callers retain ownership of z.
func NewInt(z *big.Int) Value {
	return Value{typ: Int, z: new(big.Int).Set(z)}
}

// NewIntFromInt64 is a convenience constructor for small integers.
func NewIntFromInt64(n int64) Value {
	return Value{typ: Int, z: big.NewInt(n)}
}

// NewRat constructs a Rat value, normalizing p/q to lowest terms with a
// positive denominator (big.Rat maintains this invariant internally).
func NewRat(r *big.Rat) Value {
	return Value{typ: Rat, r: new(big.Rat).Set(r)}
}

// NewRatFromFrac constructs a Rat value from a numerator/denominator
// pair. q must be nonzero.
func NewRatFromFrac(p, q int64) Value {
	return Value{typ: Rat, r: big.NewRat(p, q)}
}

// Type reports which of Bool/Int/Rat this value is.
func (v Value) Type() Type { return v.typ }

// Bool returns the boolean payload. Panics if Type() != Bool.
func (v Value) Bool() bool {
	if v.typ != Bool {
		panic(fmt.Sprintf("value: Bool() on %s value", v.typ))
	}
	return v.b
}

// Int returns the integer payload. Panics if Type() != Int.
func (v Value) Int() *big.Int {
	if v.typ != Int {
		panic(fmt.Sprintf("value: Int() on %s value", v.typ))
	}
	return v.z
}

// Rat returns the rational payload. Panics if Type() != Rat.
func (v Value) Rat() *big.Rat {
	if v.typ != Rat {
		panic(fmt.Sprintf("value: Rat() on %s value", v.typ))
	}
	return v.r
}

// Equal reports whether two values of the same type carry the same
// payload. Values of different types are never equal.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case Bool:
		return v.b == other.b
	case Int:
		return v.z.Cmp(other.z) == 0
	case Rat:
		return v.r.Cmp(other.r) == 0
	default:
		return false
	}
}

// String renders the value in the engine's normalized trace form:
// booleans as true/false, integers in decimal, rationals as p/q (or a
// bare integer when q == 1).
func (v Value) String() string {
	switch v.typ {
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	case Int:
		return v.z.String()
	case Rat:
		if v.r.IsInt() {
			return v.r.Num().String()
		}
		return v.r.Num().String() + "/" + v.r.Denom().String()
	default:
		return "<invalid>"
	}
}

// Literal renders the value in the solver's literal syntax: true/false,
// decimal integers, and (/ p q) for non-integral rationals.
func (v Value) Literal() string {
	switch v.typ {
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	case Int:
		return decimalLiteral(v.z)
	case Rat:
		if v.r.IsInt() {
			return decimalLiteral(v.r.Num())
		}
		return fmt.Sprintf("(/ %s %s)", decimalLiteral(v.r.Num()), decimalLiteral(v.r.Denom()))
	default:
		return "<invalid>"
	}
}

// decimalLiteral renders a signed big.Int as SMT-LIB expects negative
// literals: (- N), never a bare "-N" (most SMT-LIB frontends do not
// accept a unary minus glued onto a numeral token).
func decimalLiteral(z *big.Int) string {
	if z.Sign() < 0 {
		return fmt.Sprintf("(- %s)", new(big.Int).Neg(z).String())
	}
	return z.String()
}
