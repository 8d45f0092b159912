package value

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseLiteral parses a solver-returned s-expression atom or small
// s-expression into a Value of the given type: integers as decimal
// with optional sign, rationals as a bare integer, "(/ p q)", or a
// decimal literal, booleans as true/false. The result is always
// normalized (rationals reduced to lowest terms with q > 0).
func ParseLiteral(typ Type, s string) (Value, error) {
	s = strings.TrimSpace(s)
	switch typ {
	case Bool:
		return parseBool(s)
	case Int:
		z, err := parseInt(s)
		if err != nil {
			return Value{}, errors.Wrapf(err, "parse int literal %q", s)
		}
		return NewInt(z), nil
	case Rat:
		r, err := parseRat(s)
		if err != nil {
			return Value{}, errors.Wrapf(err, "parse rat literal %q", s)
		}
		return NewRat(r), nil
	default:
		return Value{}, errors.Errorf("parse literal: invalid type")
	}
}

func parseBool(s string) (Value, error) {
	switch s {
	case "true":
		return NewBool(true), nil
	case "false":
		return NewBool(false), nil
	default:
		return Value{}, errors.Errorf("not a bool literal: %q", s)
	}
}

// parseInt accepts a decimal with an optional sign, or a parenthesized
// negation "(- N)". Any other s-expression, such as a "(- N M)"
// subtraction, is rejected.
func parseInt(s string) (*big.Int, error) {
	s = unwrapNeg(s)
	z, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("not an integer literal: %q", s)
	}
	return z, nil
}

// unwrapNeg rewrites "(- N)" to "-N" (and leaves everything else
// untouched), since SMT-LIB never emits a bare "-N" token.
func unwrapNeg(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") {
		return s
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	inner = strings.TrimSpace(inner)
	if !strings.HasPrefix(inner, "-") {
		return s
	}
	rest := strings.TrimSpace(strings.TrimPrefix(inner, "-"))
	if rest == "" {
		return s
	}
	return "-" + rest
}

// splitTopLevel splits s on whitespace, except that whitespace inside
// balanced parentheses does not separate tokens, so a nested
// s-expression such as "(- 2)" stays a single field.
func splitTopLevel(s string) []string {
	var fields []string
	depth := 0
	start := -1
	for i, r := range s {
		switch {
		case r == '(':
			depth++
			if start == -1 {
				start = i
			}
		case r == ')':
			depth--
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if depth == 0 && start != -1 {
				fields = append(fields, s[start:i])
				start = -1
			}
		default:
			if start == -1 {
				start = i
			}
		}
	}
	if start != -1 {
		fields = append(fields, s[start:])
	}
	return fields
}

// parseRat accepts a bare integer, a decimal literal such as
// "0.3333333333333333", or "(/ p q)" where p and q are themselves any
// of those forms. z3's Real models render as "(/ 1.0 3.0)" rather than
// "(/ 1 3)", so both operands of "/" must be parsed as rationals, not
// integers, before dividing (non-terminating decimals lose precision
// at the parser's input, not at this package's encoding, since those
// only arise when the solver itself approximates).
func parseRat(s string) (*big.Rat, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") {
		inner := strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
		fields := splitTopLevel(inner)
		switch {
		case len(fields) == 3 && fields[0] == "/":
			p, err := parseRat(fields[1])
			if err != nil {
				return nil, err
			}
			q, err := parseRat(fields[2])
			if err != nil {
				return nil, err
			}
			if q.Sign() == 0 {
				return nil, errors.Errorf("rational literal with zero denominator: %q", s)
			}
			return new(big.Rat).Quo(p, q), nil
		case len(fields) == 2 && fields[0] == "-":
			r, err := parseRat(fields[1])
			if err != nil {
				return nil, err
			}
			return new(big.Rat).Neg(r), nil
		default:
			return nil, errors.Errorf("unrecognized rational s-expression: %q", s)
		}
	}
	if r, ok := new(big.Rat).SetString(s); ok {
		return r, nil
	}
	// Fall back to a bare integer (SetString already handles decimals
	// and "N/D", so this only helps with stray whitespace or signs
	// SetString rejects outright).
	if z, err := strconv.ParseInt(s, 10, 64); err == nil {
		return new(big.Rat).SetInt64(z), nil
	}
	return nil, errors.Errorf("unrecognized rational literal: %q", s)
}
