package typecheck

import (
	"fmt"
	"strings"
)

// Issue is a single well-formedness problem found in a System.
// Position information is a parser-boundary concern; this engine only
// ever sees already-parsed terms, so Issue carries a human-readable
// location description instead of a source span.
type Issue struct {
	Where   string // e.g. "candidate \"non_negative\"", "init", "trans"
	Message string
}

func (i Issue) String() string { return i.Where + ": " + i.Message }

// TypeError aggregates every Issue found in a single pass over a
// System: a structured error enumerating all problems found, rather
// than bailing out on the first one.
type TypeError struct {
	Issues []Issue
}

func (e *TypeError) Error() string {
	lines := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		lines[i] = issue.String()
	}
	return "type error:\n" + strings.Join(lines, "\n")
}

func (e *TypeError) add(where, format string, args ...interface{}) {
	e.Issues = append(e.Issues, Issue{Where: where, Message: fmt.Sprintf(format, args...)})
}
