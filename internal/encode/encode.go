// Package encode implements a pure translation from a Term plus a
// step index to the solver's s-expression syntax. It owns no solver
// session and declares nothing itself; internal/bmc and
// internal/induction call Declare for the variables a step needs and
// Term for every formula they assert at that step.
//
// Division is not special-cased: Div, IntDiv and Mod render directly
// as "/", "div" and "mod" with no guard against a zero divisor, so the
// configured solver's semantics for division by zero apply.
package encode

import (
	"fmt"
	"strings"

	"github.com/kandrei/mikino/internal/term"
)

// VarName renders the solver-level symbol for variable v at step:
// "v@step".
func VarName(v term.VarId, step int) string {
	return fmt.Sprintf("%s@%d", v.Name(), step)
}

// Decl is one variable declaration the driver needs to issue before a
// formula referencing it can be asserted.
type Decl struct {
	Name string
	Sort string
}

// Declarations returns the Decl for every variable in vars at step,
// in the same order as vars. Callers normally pass system.System.Vars()
// so declaration order matches declaration order in the source system.
func Declarations(vars []term.VarId, step int) []Decl {
	out := make([]Decl, len(vars))
	for i, v := range vars {
		out[i] = Decl{Name: VarName(v, step), Sort: v.Type().Sort()}
	}
	return out
}

// Term renders t into an SMT-LIB s-expression, resolving Current
// variable references to step and Next references to step+1. The term
// is assumed to already be well-typed; internal/typecheck.Check is the
// only supported way to obtain such a guarantee before a Term reaches
// this package.
func Term(t *term.Term, step int) string {
	var b strings.Builder
	writeTerm(&b, t, step)
	return b.String()
}

func writeTerm(b *strings.Builder, t *term.Term, step int) {
	switch t.Kind {
	case term.KindConst:
		b.WriteString(t.Const.Literal())
	case term.KindVar:
		s := step
		if t.Var.Temporal == term.Next {
			s++
		}
		b.WriteString(VarName(t.Var.Var, s))
	case term.KindIfThenElse:
		writeOp(b, "ite", t.Args, step)
	case term.KindNot:
		writeOp(b, "not", t.Args, step)
	case term.KindAnd:
		writeOp(b, "and", t.Args, step)
	case term.KindOr:
		writeOp(b, "or", t.Args, step)
	case term.KindImplies:
		writeOp(b, "=>", t.Args, step)
	case term.KindIff:
		writeOp(b, "=", t.Args, step)
	case term.KindXor:
		writeOp(b, "xor", t.Args, step)
	case term.KindAdd:
		writeOp(b, "+", t.Args, step)
	case term.KindSub:
		writeOp(b, "-", t.Args, step)
	case term.KindMul:
		writeOp(b, "*", t.Args, step)
	case term.KindNeg:
		writeOp(b, "-", t.Args, step)
	case term.KindDiv:
		writeOp(b, "/", t.Args, step)
	case term.KindIntDiv:
		writeOp(b, "div", t.Args, step)
	case term.KindMod:
		writeOp(b, "mod", t.Args, step)
	case term.KindAbs:
		writeOp(b, "abs", t.Args, step)
	case term.KindEq:
		writeOp(b, "=", t.Args, step)
	case term.KindNeq:
		b.WriteString("(not ")
		writeOp(b, "=", t.Args, step)
		b.WriteString(")")
	case term.KindLt:
		writeOp(b, "<", t.Args, step)
	case term.KindLe:
		writeOp(b, "<=", t.Args, step)
	case term.KindGt:
		writeOp(b, ">", t.Args, step)
	case term.KindGe:
		writeOp(b, ">=", t.Args, step)
	case term.KindToRat:
		writeOp(b, "to_real", t.Args, step)
	default:
		panic(fmt.Sprintf("encode: unhandled term kind %d", t.Kind))
	}
}

func writeOp(b *strings.Builder, op string, args []*term.Term, step int) {
	b.WriteString("(")
	b.WriteString(op)
	for _, a := range args {
		b.WriteString(" ")
		writeTerm(b, a, step)
	}
	b.WriteString(")")
}

// Negate wraps an already-encoded formula in a top-level "not", used
// by BMC and induction to assert the negation of a candidate without
// re-walking the Term.
func Negate(sexpr string) string {
	return "(not " + sexpr + ")"
}

// And conjoins a set of already-encoded formulas, short-circuiting to
// the single formula itself (or "true" for zero formulas) so callers
// never emit a degenerate "(and)" or "(and x)".
func And(sexprs ...string) string {
	switch len(sexprs) {
	case 0:
		return "true"
	case 1:
		return sexprs[0]
	default:
		return "(and " + strings.Join(sexprs, " ") + ")"
	}
}
