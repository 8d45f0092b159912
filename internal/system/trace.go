package system

import (
	"strconv"
	"strings"

	"github.com/kandrei/mikino/internal/term"
	"github.com/kandrei/mikino/internal/value"
)

// State is a total assignment of values to every declared variable of
// a System.
type State map[term.VarId]value.Value

// Trace is a finite, nonempty sequence of States: a counterexample
// witness.
type Trace []State

// String renders the trace one state per line, variables in
// declaration order, for the demonstration CLI and for test failure
// messages. Real pretty-printing is a front-end concern; this is
// intentionally plain.
func (tr Trace) String(vars []term.VarId) string {
	var b strings.Builder
	for i, s := range tr {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("step ")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(": ")
		for j, v := range vars {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(v.Name())
			b.WriteByte('=')
			if val, ok := s[v]; ok {
				b.WriteString(val.String())
			} else {
				b.WriteString("<unset>")
			}
		}
	}
	return b.String()
}
