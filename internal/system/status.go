package system

// StatusKind enumerates the three outcomes a candidate can reach.
type StatusKind int

const (
	Unknown StatusKind = iota
	Falsified
	Proved
)

func (k StatusKind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Falsified:
		return "falsified"
	case Proved:
		return "proved"
	default:
		return "invalid"
	}
}

// CandidateStatus is the per-candidate outcome the orchestrator
// produces: a falsifying Trace, an induction depth (currently always
// 1, multi-step induction being a non-goal), or an unknown-with-depth.
type CandidateStatus struct {
	Kind     StatusKind
	Trace    Trace // set iff Kind == Falsified
	Depth    int   // Proved: induction depth discharged at. Unknown: deepest BMC step reached.
	Explored bool  // Unknown only: whether BMC actually ran at all. False means Depth is meaningless, not "reached depth 0".
}

func ProvedAt(depth int) CandidateStatus {
	return CandidateStatus{Kind: Proved, Depth: depth}
}

func FalsifiedBy(tr Trace) CandidateStatus {
	return CandidateStatus{Kind: Falsified, Trace: tr}
}

// UnknownNotExplored reports a candidate that induction left live and
// that BMC never got to examine at all (SkipBMC set).
func UnknownNotExplored() CandidateStatus {
	return CandidateStatus{Kind: Unknown}
}

// UnknownAt reports a candidate still live after BMC explored up to
// and including depth.
func UnknownAt(depth int) CandidateStatus {
	return CandidateStatus{Kind: Unknown, Depth: depth, Explored: true}
}
