package term

import "fmt"

var kindNames = map[Kind]string{
	KindNot: "not", KindAnd: "and", KindOr: "or", KindImplies: "implies",
	KindIff: "iff", KindXor: "xor", KindAdd: "+", KindSub: "-", KindMul: "*",
	KindNeg: "neg", KindDiv: "/", KindIntDiv: "div", KindMod: "mod", KindAbs: "abs",
	KindEq: "=", KindNeq: "!=", KindLt: "<", KindLe: "<=", KindGt: ">", KindGe: ">=",
	KindToRat: "to_rat", KindIfThenElse: "ite",
}

// String renders a term for diagnostics (error messages, test
// failures). It is not the solver encoding; see internal/encode for
// that.
func (t *Term) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindConst:
		return t.Const.String()
	case KindVar:
		return t.Var.String()
	default:
		name, ok := kindNames[t.Kind]
		if !ok {
			name = fmt.Sprintf("kind(%d)", t.Kind)
		}
		s := "(" + name
		for _, a := range t.Args {
			s += " " + a.String()
		}
		return s + ")"
	}
}
