package smtsolver

import (
	"strings"

	"github.com/pkg/errors"
)

// sexpr is a parsed S-expression: either an atom (string) or a list
// of further sexprs. This is intentionally minimal, just enough to
// pull "(define-fun name () Sort value)" entries out of a (get-model)
// response; it is not a general SMT-LIB parser.
type sexpr struct {
	atom string
	list []sexpr
}

func (s sexpr) isAtom() bool { return s.list == nil }

// readBalanced reads one complete S-expression (or a single bare
// token such as "sat") from text, starting at the first non-whitespace
// byte, and returns it with the unread remainder of text. It does not attempt to understand string/quoted-symbol syntax
// beyond '|...|' quoting, which is enough for every solver this
// driver targets.
func readBalanced(text string) (sexpr, string, error) {
	i := 0
	n := len(text)
	skipSpace := func() {
		for i < n && isSpace(text[i]) {
			i++
		}
	}
	skipSpace()
	if i >= n {
		return sexpr{}, text, errors.New("empty input")
	}
	if text[i] != '(' {
		start := i
		for i < n && !isSpace(text[i]) {
			i++
		}
		return sexpr{atom: text[start:i]}, text[i:], nil
	}

	var stack [][]sexpr
	stack = append(stack, []sexpr{})
	i++ // consume '('
	for i < n {
		skipSpace()
		if i >= n {
			return sexpr{}, text, errors.New("unbalanced S-expression")
		}
		switch text[i] {
		case ')':
			i++
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			node := sexpr{list: top}
			if len(stack) == 0 {
				return node, text[i:], nil
			}
			stack[len(stack)-1] = append(stack[len(stack)-1], node)
		case '(':
			i++
			stack = append(stack, []sexpr{})
		case '|':
			start := i
			i++
			for i < n && text[i] != '|' {
				i++
			}
			if i < n {
				i++ // consume closing '|'
			}
			stack[len(stack)-1] = append(stack[len(stack)-1], sexpr{atom: text[start:i]})
		default:
			start := i
			for i < n && !isSpace(text[i]) && text[i] != '(' && text[i] != ')' {
				i++
			}
			stack[len(stack)-1] = append(stack[len(stack)-1], sexpr{atom: text[start:i]})
		}
	}
	return sexpr{}, text, errors.New("unbalanced S-expression")
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// String renders the S-expression back to text, used to turn a model
// value sub-expression like (/ 1 3) back into a string for
// value.ParseLiteral.
func (s sexpr) String() string {
	if s.isAtom() {
		return s.atom
	}
	parts := make([]string, len(s.list))
	for i, c := range s.list {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// modelValues extracts name -> raw-literal-text pairs from a
// "(model (define-fun n1 () Sort v1) (define-fun n2 () Sort v2) ...)"
// response, tolerating solvers that omit the outer "model" wrapper or
// prefix entries with "(model" on a leading line only (z3's -in mode
// does the latter in older builds).
func modelValues(root sexpr) map[string]string {
	out := make(map[string]string)
	var entries []sexpr
	if !root.isAtom() && len(root.list) > 0 && root.list[0].isAtom() && root.list[0].atom == "model" {
		entries = root.list[1:]
	} else if !root.isAtom() {
		entries = root.list
	}
	for _, e := range entries {
		if e.isAtom() || len(e.list) < 4 {
			continue
		}
		if !e.list[0].isAtom() || e.list[0].atom != "define-fun" {
			continue
		}
		name := e.list[1].atom
		valueExpr := e.list[len(e.list)-1]
		out[name] = valueExpr.String()
	}
	return out
}
