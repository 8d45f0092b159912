// Package engine implements orchestration and reporting: it runs
// induction then BMC over a System's candidates, maintains each
// candidate's live/resolved status, and reconstructs traces from
// solver models into the final per-candidate result.
package engine

import (
	log "github.com/sirupsen/logrus"

	"github.com/kandrei/mikino/internal/bmc"
	"github.com/kandrei/mikino/internal/induction"
	"github.com/kandrei/mikino/internal/smtsolver"
	"github.com/kandrei/mikino/internal/system"
)

// CandidateResult pairs a candidate's name with its final status, in
// the System's original candidate order.
type CandidateResult struct {
	Name   string
	Status system.CandidateStatus
}

// Run does not type-check sys (it only rejects a Config that skips
// both phases). sys must already be the product of
// internal/typecheck.Check, since type errors must abort before any
// solver interaction, and it drives induction and/or BMC to
// completion, spawning its own solver sessions per cfg.
func Run(sys *system.System, cfg Config) ([]CandidateResult, error) {
	if cfg.SkipInduction && cfg.SkipBMC {
		return nil, &ConfigError{Reason: "skip_induction and skip_bmc cannot both be set, nothing would be checked"}
	}

	bmcDriver, err := newDriver(cfg)
	if err != nil {
		return nil, err
	}
	defer bmcDriver.Shutdown()

	indDriver, err := newDriver(cfg)
	if err != nil {
		return nil, err
	}
	defer indDriver.Shutdown()

	return run(sys, cfg, bmcDriver, indDriver)
}

// RunWithDrivers runs the same orchestration as Run against
// caller-supplied driver sessions, letting tests substitute
// smtsolver.Fake instead of spawning a real solver. The caller owns
// both drivers and is responsible for shutting them down.
func RunWithDrivers(sys *system.System, cfg Config, bmcDriver, indDriver smtsolver.Driver) ([]CandidateResult, error) {
	if cfg.SkipInduction && cfg.SkipBMC {
		return nil, &ConfigError{Reason: "skip_induction and skip_bmc cannot both be set, nothing would be checked"}
	}
	return run(sys, cfg, bmcDriver, indDriver)
}

func newDriver(cfg Config) (smtsolver.Driver, error) {
	return smtsolver.NewProcess(smtsolver.Config{
		Command:   cfg.SolverCommand,
		Args:      cfg.SolverArgs,
		TimeoutMS: cfg.TimeoutMS,
	})
}

func run(sys *system.System, cfg Config, bmcDriver, indDriver smtsolver.Driver) ([]CandidateResult, error) {
	results := make(map[string]system.CandidateStatus, len(sys.Candidates))
	live := make([]system.Candidate, len(sys.Candidates))
	copy(live, sys.Candidates)

	if !cfg.SkipInduction {
		indRunner, err := induction.NewRunner(indDriver, sys.Vars(), sys.Init, sys.Trans)
		if err != nil {
			return nil, &AbortError{Phase: "induction", Err: err}
		}
		live, err = runInduction(indRunner, live, results)
		if err != nil {
			return nil, err
		}
	}

	bmcExplored := false
	reached := 0
	if !cfg.SkipBMC && len(live) > 0 {
		bmcRunner := bmc.NewRunner(bmcDriver, sys.Vars(), sys.Init, sys.Trans)
		var err error
		live, reached, err = runBMC(bmcRunner, live, cfg.MaxBMCDepth, results)
		if err != nil {
			return nil, err
		}
		bmcExplored = true
	}

	for _, c := range live {
		if bmcExplored {
			results[c.Name] = system.UnknownAt(reached)
		} else {
			results[c.Name] = system.UnknownNotExplored()
		}
	}

	out := make([]CandidateResult, len(sys.Candidates))
	for i, c := range sys.Candidates {
		out[i] = CandidateResult{Name: c.Name, Status: results[c.Name]}
	}
	return out, nil
}

// runInduction runs the base case and inductive step for every
// candidate in live once, returning the candidates that remain live
// (neither proved nor falsified at the base case).
func runInduction(r *induction.Runner, live []system.Candidate, results map[string]system.CandidateStatus) ([]system.Candidate, error) {
	var still []system.Candidate
	for _, c := range live {
		baseOutcome, trace, err := r.CheckBaseCase(c)
		if err != nil {
			return nil, &AbortError{Phase: "induction", Candidate: c.Name, Err: err}
		}
		if baseOutcome == induction.BaseCaseFalsified {
			log.Infof("engine: %s falsified at base case", c.Name)
			results[c.Name] = system.FalsifiedBy(trace)
			continue
		}

		stepOutcome, err := r.CheckInductiveStep(c)
		if err != nil {
			return nil, &AbortError{Phase: "induction", Candidate: c.Name, Err: err}
		}
		if stepOutcome == induction.Inductive {
			log.Infof("engine: %s proved by 1-induction", c.Name)
			results[c.Name] = system.ProvedAt(1)
			continue
		}
		still = append(still, c)
	}
	return still, nil
}

// runBMC extends the unrolling depth by depth, checking every
// still-live candidate at each depth. It returns the candidates that
// remain live when the loop ends, and the deepest step actually
// reached.
func runBMC(r *bmc.Runner, live []system.Candidate, maxDepth *int, results map[string]system.CandidateStatus) ([]system.Candidate, int, error) {
	depth := 0
	for len(live) > 0 {
		if maxDepth != nil && depth > *maxDepth {
			break
		}
		if err := r.Advance(); err != nil {
			return nil, depth, &AbortError{Phase: "bmc", Err: err}
		}
		log.Infof("engine: bmc depth %d, %d candidates live", depth, len(live))

		var still []system.Candidate
		for _, c := range live {
			outcome, trace, err := r.Check(c)
			if err != nil {
				return nil, depth, &AbortError{Phase: "bmc", Candidate: c.Name, Err: err}
			}
			if outcome == bmc.Falsified {
				log.Infof("engine: %s falsified at depth %d", c.Name, depth)
				results[c.Name] = system.FalsifiedBy(trace)
				continue
			}
			still = append(still, c)
		}
		live = still
		depth++
	}
	return live, depth - 1, nil
}
