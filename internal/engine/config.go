package engine

// Config configures one orchestration run.
type Config struct {
	// SolverCommand is the solver binary to invoke; defaults to "z3"
	// when empty (smtsolver.Process applies the same default, so this
	// field only needs setting to override it).
	SolverCommand string
	// SolverArgs overrides the default solver invocation arguments.
	SolverArgs []string
	// TimeoutMS, if nonzero, is passed through to the solver as its
	// own :timeout option.
	TimeoutMS int
	// MaxBMCDepth is the deepest BMC step to attempt; nil means
	// unbounded: BMC then stops only once every candidate is resolved.
	MaxBMCDepth *int
	// SkipInduction disables the induction phase entirely.
	SkipInduction bool
	// SkipBMC disables the BMC phase entirely.
	SkipBMC bool
}
