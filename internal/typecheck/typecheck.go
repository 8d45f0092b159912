// Package typecheck validates a raw system.Builder into an immutable
// system.System, or reports every well-formedness problem found in a
// single pass as a *TypeError.
package typecheck

import (
	"github.com/kandrei/mikino/internal/system"
	"github.com/kandrei/mikino/internal/term"
	"github.com/kandrei/mikino/internal/value"
)

// Check validates b and, if it is well-formed, returns the resulting
// System. Otherwise it returns a *TypeError enumerating every problem
// found; the engine must refuse to run in that case.
func Check(b *system.Builder) (*system.System, error) {
	vars, byName, init, trans, candidates := b.Raw()

	declared := make(map[term.VarId]bool, len(vars))
	for _, v := range vars {
		declared[v] = true
	}

	te := &TypeError{}

	if init == nil {
		te.add("init", "missing initial predicate")
	} else {
		checkTerm(te, "init", init, declared, false)
	}

	if trans == nil {
		te.add("trans", "missing transition relation")
	} else {
		checkTerm(te, "trans", trans, declared, true)
	}

	seenNames := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		where := "candidate \"" + c.Name + "\""
		if seenNames[c.Name] {
			te.add(where, "duplicate candidate name")
		}
		seenNames[c.Name] = true
		if c.Body == nil {
			te.add(where, "missing body")
			continue
		}
		checkTerm(te, where, c.Body, declared, false)
	}

	if len(te.Issues) > 0 {
		return nil, te
	}

	return system.New(vars, byName, init, trans, candidates), nil
}

// checkTerm validates that t is well-typed, declared over `declared`,
// respects the allowNext restriction, and has type Bool at the root
// (every one of init/trans/candidate bodies must be boolean-valued).
// Problems are appended to te rather than short-circuiting, so a
// single pass finds everything.
func checkTerm(te *TypeError, where string, t *term.Term, declared map[term.VarId]bool, allowNext bool) {
	typ, ok := infer(te, where, t, declared, allowNext)
	if ok && typ != value.Bool {
		te.add(where, "must have type bool, has type %s (%s)", typ, t)
	}
}

// infer resolves t's type bottom-up, reporting every undeclared
// variable, illegal Next reference, arity problem, and operand-type
// mismatch it finds along the way. ok is false if t's type could not
// be determined (a descendant already failed); callers should not
// trust typ in that case, but infer has already recorded the relevant
// Issues, so callers need not re-report.
func infer(te *TypeError, where string, t *term.Term, declared map[term.VarId]bool, allowNext bool) (typ value.Type, ok bool) {
	if t == nil {
		te.add(where, "nil subterm")
		return 0, false
	}

	if want := t.Kind.Arity(); want == -1 {
		if len(t.Args) == 0 {
			te.add(where, "%s requires at least one operand", kindWord(t.Kind))
			return 0, false
		}
	} else if len(t.Args) != want {
		te.add(where, "%s has %d operand(s), expected %d", kindWord(t.Kind), len(t.Args), want)
		return 0, false
	}

	switch t.Kind {
	case term.KindConst:
		return t.Const.Type(), true

	case term.KindVar:
		if !declared[t.Var.Var] {
			te.add(where, "undeclared variable %q", t.Var.Var.Name())
			return 0, false
		}
		if t.Var.Temporal == term.Next && !allowNext {
			te.add(where, "next-state reference to %q not allowed here", t.Var.Var.Name())
			return 0, false
		}
		return t.Var.Type(), true

	case term.KindIfThenElse:
		condT, condOK := infer(te, where, t.Args[0], declared, allowNext)
		thenT, thenOK := infer(te, where, t.Args[1], declared, allowNext)
		elseT, elseOK := infer(te, where, t.Args[2], declared, allowNext)
		if condOK && condT != value.Bool {
			te.add(where, "if-then-else condition must be bool, has type %s", condT)
		}
		if thenOK && elseOK && thenT != elseT {
			te.add(where, "if-then-else branches have mismatched types %s and %s", thenT, elseT)
			return 0, false
		}
		if !thenOK {
			return 0, false
		}
		return thenT, true

	case term.KindNot:
		return checkUnary(te, where, t, declared, allowNext, value.Bool, value.Bool)

	case term.KindAnd, term.KindOr:
		ok = true
		for _, a := range t.Args {
			at, aOK := infer(te, where, a, declared, allowNext)
			if !aOK {
				ok = false
				continue
			}
			if at != value.Bool {
				te.add(where, "%s operand must be bool, has type %s (%s)", kindWord(t.Kind), at, a)
				ok = false
			}
		}
		if !ok {
			return 0, false
		}
		return value.Bool, true

	case term.KindImplies, term.KindIff, term.KindXor:
		return checkBinarySame(te, where, t, declared, allowNext, value.Bool, value.Bool)

	case term.KindAdd, term.KindSub, term.KindMul:
		return checkNumericBinary(te, where, t, declared, allowNext)

	case term.KindNeg, term.KindAbs:
		xt, xOK := infer(te, where, t.Args[0], declared, allowNext)
		if !xOK {
			return 0, false
		}
		if xt != value.Int && xt != value.Rat {
			te.add(where, "%s requires a numeric operand, has type %s (%s)", kindWord(t.Kind), xt, t.Args[0])
			return 0, false
		}
		return xt, true

	case term.KindDiv:
		return checkBinarySame(te, where, t, declared, allowNext, value.Rat, value.Rat)

	case term.KindIntDiv, term.KindMod:
		return checkBinarySame(te, where, t, declared, allowNext, value.Int, value.Int)

	case term.KindEq, term.KindNeq:
		return checkBinarySame(te, where, t, declared, allowNext, anyGround, value.Bool)

	case term.KindLt, term.KindLe, term.KindGt, term.KindGe:
		return checkComparison(te, where, t, declared, allowNext)

	case term.KindToRat:
		xt, xOK := infer(te, where, t.Args[0], declared, allowNext)
		if !xOK {
			return 0, false
		}
		if xt != value.Int {
			te.add(where, "to_rat requires an int operand, has type %s (%s)", xt, t.Args[0])
			return 0, false
		}
		return value.Rat, true

	default:
		te.add(where, "unrecognized term kind")
		return 0, false
	}
}

// anyGround is a sentinel passed to checkBinarySame for Eq/Neq, which
// accept any ground type as long as both operands agree.
const anyGround value.Type = -1

func checkUnary(te *TypeError, where string, t *term.Term, declared map[term.VarId]bool, allowNext bool, want, result value.Type) (value.Type, bool) {
	xt, xOK := infer(te, where, t.Args[0], declared, allowNext)
	if !xOK {
		return 0, false
	}
	if xt != want {
		te.add(where, "%s requires a %s operand, has type %s (%s)", kindWord(t.Kind), want, xt, t.Args[0])
		return 0, false
	}
	return result, true
}

// checkBinarySame requires both operands to have the same type; if
// want != anyGround that common type must additionally equal want.
// The result is always `result`.
func checkBinarySame(te *TypeError, where string, t *term.Term, declared map[term.VarId]bool, allowNext bool, want, result value.Type) (value.Type, bool) {
	xt, xOK := infer(te, where, t.Args[0], declared, allowNext)
	yt, yOK := infer(te, where, t.Args[1], declared, allowNext)
	if !xOK || !yOK {
		return 0, false
	}
	if xt != yt {
		te.add(where, "%s requires operands of the same type, got %s and %s (%s)", kindWord(t.Kind), xt, yt, t)
		return 0, false
	}
	if want != anyGround && xt != want {
		te.add(where, "%s requires %s operands, got %s (%s)", kindWord(t.Kind), want, xt, t)
		return 0, false
	}
	return result, true
}

// checkNumericBinary is checkBinarySame specialized to arithmetic:
// Int+Int or Rat+Rat, never mixed, and no implicit ToRat coercion.
func checkNumericBinary(te *TypeError, where string, t *term.Term, declared map[term.VarId]bool, allowNext bool) (value.Type, bool) {
	xt, xOK := infer(te, where, t.Args[0], declared, allowNext)
	yt, yOK := infer(te, where, t.Args[1], declared, allowNext)
	if !xOK || !yOK {
		return 0, false
	}
	if xt != yt {
		te.add(where, "%s requires identical numeric operand types (no implicit coercion), got %s and %s (%s)", kindWord(t.Kind), xt, yt, t)
		return 0, false
	}
	if xt != value.Int && xt != value.Rat {
		te.add(where, "%s requires numeric operands, got %s (%s)", kindWord(t.Kind), xt, t)
		return 0, false
	}
	return xt, true
}

func checkComparison(te *TypeError, where string, t *term.Term, declared map[term.VarId]bool, allowNext bool) (value.Type, bool) {
	xt, xOK := infer(te, where, t.Args[0], declared, allowNext)
	yt, yOK := infer(te, where, t.Args[1], declared, allowNext)
	if !xOK || !yOK {
		return 0, false
	}
	if xt != yt {
		te.add(where, "%s requires operands of the same numeric type, got %s and %s (%s)", kindWord(t.Kind), xt, yt, t)
		return 0, false
	}
	if xt != value.Int && xt != value.Rat {
		te.add(where, "%s requires numeric operands, got %s (%s)", kindWord(t.Kind), xt, t)
		return 0, false
	}
	return value.Bool, true
}

func kindWord(k term.Kind) string {
	// Mirrors the names internal/term uses in its own String(), kept
	// separate so diagnostics don't depend on term's debug formatting.
	switch k {
	case term.KindConst:
		return "const"
	case term.KindVar:
		return "var"
	case term.KindIfThenElse:
		return "ite"
	case term.KindNot:
		return "not"
	case term.KindAnd:
		return "and"
	case term.KindOr:
		return "or"
	case term.KindImplies:
		return "implies"
	case term.KindIff:
		return "iff"
	case term.KindXor:
		return "xor"
	case term.KindAdd:
		return "+"
	case term.KindSub:
		return "-"
	case term.KindMul:
		return "*"
	case term.KindNeg:
		return "neg"
	case term.KindDiv:
		return "/"
	case term.KindIntDiv:
		return "div"
	case term.KindMod:
		return "mod"
	case term.KindAbs:
		return "abs"
	case term.KindEq:
		return "="
	case term.KindNeq:
		return "!="
	case term.KindLt:
		return "<"
	case term.KindLe:
		return "<="
	case term.KindGt:
		return ">"
	case term.KindGe:
		return ">="
	case term.KindToRat:
		return "to_rat"
	default:
		return "?"
	}
}
