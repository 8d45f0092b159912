package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kandrei/mikino/internal/engine"
	"github.com/kandrei/mikino/internal/system"
	"github.com/kandrei/mikino/internal/term"
	"github.com/kandrei/mikino/internal/typecheck"
	"github.com/kandrei/mikino/internal/value"
)

// defaultSolverCommand is the solver binary invoked when --solver is
// not given; also reported by `mikino version`.
const defaultSolverCommand = "z3"

var (
	solverCommand string
	maxBMCDepth   int
	skipInduction bool
	skipBMC       bool
	timeoutMS     int
)

var checkCommand = &cobra.Command{
	Use:   "check",
	Short: "run BMC and 1-induction over a demonstration system",
	Long:  ``,
	Run: func(*cobra.Command, []string) {
		if err := runCheck(); err != nil {
			fmt.Printf("service err: %v\n", err)
		} else {
			fmt.Printf("service quit\n")
		}
	},
}

func init() {
	checkCommand.Flags().StringVar(&solverCommand, "solver", defaultSolverCommand, "SMT solver binary to invoke")
	checkCommand.Flags().IntVar(&maxBMCDepth, "max-bmc-depth", -1, "deepest BMC step to attempt; negative means unbounded")
	checkCommand.Flags().BoolVar(&skipInduction, "skip-induction", false, "disable the induction phase")
	checkCommand.Flags().BoolVar(&skipBMC, "skip-bmc", false, "disable the BMC phase")
	checkCommand.Flags().IntVar(&timeoutMS, "timeout", 0, "per check-sat solver timeout in milliseconds, 0 disables")
}

// demoSystem builds a small illustrative system: a counter that only
// ever increments, with one candidate that holds (non_negative) and one
// that is falsified once cnt reaches 7 (ne7). A real front end would
// parse this from the input language instead of hard-coding it.
func demoSystem() (*system.System, error) {
	b := system.NewBuilder()
	cnt := b.Declare("cnt", value.Int)
	inc := b.Declare("inc", value.Bool)

	b.SetInit(term.Eq(term.Cur(cnt), term.ConstTerm(value.NewIntFromInt64(0))))
	b.SetTrans(term.Eq(
		term.NextRef(cnt),
		term.IfThenElse(term.Cur(inc), term.Add(term.Cur(cnt), term.ConstTerm(value.NewIntFromInt64(1))), term.Cur(cnt)),
	))

	b.AddCandidate("non_negative", term.Ge(term.Cur(cnt), term.ConstTerm(value.NewIntFromInt64(0))))
	b.AddCandidate("ne7", term.Neq(term.Cur(cnt), term.ConstTerm(value.NewIntFromInt64(7))))

	return typecheck.Check(b)
}

func runCheck() error {
	sys, err := demoSystem()
	if err != nil {
		return err
	}

	cfg := engine.Config{
		SolverCommand: solverCommand,
		TimeoutMS:     timeoutMS,
		SkipInduction: skipInduction,
		SkipBMC:       skipBMC,
	}
	if maxBMCDepth >= 0 {
		cfg.MaxBMCDepth = &maxBMCDepth
	}

	results, err := engine.Run(sys, cfg)
	if err != nil {
		return err
	}

	for _, r := range results {
		switch r.Status.Kind {
		case system.Proved:
			fmt.Printf("%s: proved (induction depth %d)\n", r.Name, r.Status.Depth)
		case system.Falsified:
			fmt.Printf("%s: falsified\n", r.Name)
			fmt.Println(r.Status.Trace.String(sys.Vars()))
		default:
			if !r.Status.Explored {
				fmt.Printf("%s: unknown (bmc not explored)\n", r.Name)
			} else {
				fmt.Printf("%s: unknown (reached BMC depth %d)\n", r.Name, r.Status.Depth)
			}
		}
	}
	return nil
}
