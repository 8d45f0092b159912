package term

import "github.com/kandrei/mikino/internal/value"

// Kind identifies a Term node variant.
type Kind int

const (
	KindConst Kind = iota
	KindVar
	KindIfThenElse

	KindNot
	KindAnd
	KindOr
	KindImplies
	KindIff
	KindXor

	KindAdd
	KindSub
	KindMul
	KindNeg
	KindDiv
	KindIntDiv
	KindMod
	KindAbs

	KindEq
	KindNeq
	KindLt
	KindLe
	KindGt
	KindGe

	KindToRat
)

// Term is a node in the typed expression tree. It is deliberately a
// plain, untyped-by-construction syntax tree: smart constructors below
// enforce *arity* (And needs at least one argument, unary ops take
// exactly one) but not operand *types*; that is internal/typecheck's
// job, run once over a whole System before the engine touches a
// solver. Args is nil for KindConst/KindVar.
type Term struct {
	Kind  Kind
	Const value.Value
	Var   TemporalVar
	Args  []*Term
}

// ConstTerm builds a Const(Value) leaf.
func ConstTerm(v value.Value) *Term {
	return &Term{Kind: KindConst, Const: v}
}

// VarTerm builds a Var(TemporalVar) leaf.
func VarTerm(tv TemporalVar) *Term {
	return &Term{Kind: KindVar, Var: tv}
}

// Cur is shorthand for a current-state variable reference.
func Cur(v VarId) *Term { return VarTerm(TemporalVar{Var: v, Temporal: Current}) }

// NextRef is shorthand for a next-state ("primed") variable reference.
func NextRef(v VarId) *Term { return VarTerm(TemporalVar{Var: v, Temporal: Next}) }

func unary(k Kind, x *Term) *Term  { return &Term{Kind: k, Args: []*Term{x}} }
func binary(k Kind, x, y *Term) *Term { return &Term{Kind: k, Args: []*Term{x, y}} }

func IfThenElse(cond, then, els *Term) *Term {
	return &Term{Kind: KindIfThenElse, Args: []*Term{cond, then, els}}
}

func Not(x *Term) *Term { return unary(KindNot, x) }

// And builds an n-ary conjunction. Panics if given zero arguments;
// callers that might legitimately have none should special-case the
// empty conjunction as ConstTerm(value.NewBool(true)) themselves.
func And(args ...*Term) *Term {
	if len(args) == 0 {
		panic("term: And with no arguments")
	}
	return &Term{Kind: KindAnd, Args: args}
}

// Or builds an n-ary disjunction; see And for the empty-args panic.
func Or(args ...*Term) *Term {
	if len(args) == 0 {
		panic("term: Or with no arguments")
	}
	return &Term{Kind: KindOr, Args: args}
}

func Implies(x, y *Term) *Term { return binary(KindImplies, x, y) }
func Iff(x, y *Term) *Term     { return binary(KindIff, x, y) }
func Xor(x, y *Term) *Term     { return binary(KindXor, x, y) }

func Add(x, y *Term) *Term    { return binary(KindAdd, x, y) }
func Sub(x, y *Term) *Term    { return binary(KindSub, x, y) }
func Mul(x, y *Term) *Term    { return binary(KindMul, x, y) }
func Neg(x *Term) *Term       { return unary(KindNeg, x) }
func Div(x, y *Term) *Term    { return binary(KindDiv, x, y) }
func IntDiv(x, y *Term) *Term { return binary(KindIntDiv, x, y) }
func Mod(x, y *Term) *Term    { return binary(KindMod, x, y) }
func Abs(x *Term) *Term       { return unary(KindAbs, x) }

func Eq(x, y *Term) *Term  { return binary(KindEq, x, y) }
func Neq(x, y *Term) *Term { return binary(KindNeq, x, y) }
func Lt(x, y *Term) *Term  { return binary(KindLt, x, y) }
func Le(x, y *Term) *Term  { return binary(KindLe, x, y) }
func Gt(x, y *Term) *Term  { return binary(KindGt, x, y) }
func Ge(x, y *Term) *Term  { return binary(KindGe, x, y) }

func ToRat(x *Term) *Term { return unary(KindToRat, x) }

// Vars collects every TemporalVar referenced anywhere in the term,
// deduplicated by (VarId, Temporal), in first-encountered order.
func (t *Term) Vars() []TemporalVar {
	var out []TemporalVar
	seen := make(map[TemporalVar]bool)
	var walk func(*Term)
	walk = func(n *Term) {
		if n == nil {
			return
		}
		if n.Kind == KindVar {
			if !seen[n.Var] {
				seen[n.Var] = true
				out = append(out, n.Var)
			}
			return
		}
		for _, a := range n.Args {
			walk(a)
		}
	}
	walk(t)
	return out
}

// Arity returns the number of children a well-formed node of this
// kind must have, or -1 for KindAnd/KindOr which accept any number
// >= 1 (already enforced at construction time).
func (k Kind) Arity() int {
	switch k {
	case KindConst, KindVar:
		return 0
	case KindNot, KindNeg, KindAbs, KindToRat:
		return 1
	case KindIfThenElse:
		return 3
	case KindAnd, KindOr:
		return -1
	default:
		return 2
	}
}
