package smtsolver

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/kandrei/mikino/internal/value"
)

// Config configures a Process driver.
type Config struct {
	// Command is the solver binary to invoke. Defaults to "z3".
	Command string
	// Args overrides the default invocation arguments ("-in", putting
	// the solver into interactive stdin/stdout mode). Rarely needed.
	Args []string
	// TimeoutMS, if nonzero, is set as the solver's own :timeout
	// option (milliseconds) at session start. The driver sets the
	// solver's own timeout option; no wall-clock enforcement is
	// performed by the engine itself.
	TimeoutMS int
}

// Process drives a long-lived external SMT solver process over its
// stdin/stdout. It implements Driver.
type Process struct {
	cfg      Config
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	stdout   *bufio.Reader
	declared map[string]value.Type
	depth    int
}

// NewProcess spawns the configured solver binary and initializes it
// for incremental, model-producing operation.
func NewProcess(cfg Config) (*Process, error) {
	if cfg.Command == "" {
		cfg.Command = "z3"
	}
	args := cfg.Args
	if args == nil {
		args = []string{"-in"}
	}

	cmd := exec.Command(cfg.Command, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &SolverError{Op: "spawn", Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &SolverError{Op: "spawn", Err: err}
	}
	if err := cmd.Start(); err != nil {
		return nil, &SolverError{Op: "spawn", Err: err}
	}
	log.Infof("smtsolver: spawned %s %v (pid %d)", cfg.Command, args, cmd.Process.Pid)

	p := &Process{
		cfg:      cfg,
		cmd:      cmd,
		stdin:    stdin,
		stdout:   bufio.NewReaderSize(stdout, 64*1024),
		declared: make(map[string]value.Type),
	}
	if err := p.init(); err != nil {
		_ = p.Shutdown()
		return nil, err
	}
	return p, nil
}

func (p *Process) init() error {
	if err := p.send("(set-option :print-success false)"); err != nil {
		return err
	}
	if err := p.send("(set-option :produce-models true)"); err != nil {
		return err
	}
	if p.cfg.TimeoutMS > 0 {
		if err := p.send(fmt.Sprintf("(set-option :timeout %d)", p.cfg.TimeoutMS)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Process) send(cmd string) error {
	log.Debugf("smtsolver: > %s", cmd)
	if p.stdin == nil {
		return &SolverError{Op: "write", Err: errors.New("driver already shut down")}
	}
	if _, err := io.WriteString(p.stdin, cmd+"\n"); err != nil {
		return &SolverError{Op: "write", Err: err}
	}
	return nil
}

func (p *Process) Declare(name string, typ value.Type) error {
	if err := p.send(fmt.Sprintf("(declare-const %s %s)", name, typ.Sort())); err != nil {
		return err
	}
	p.declared[name] = typ
	return nil
}

func (p *Process) Assert(sexpr string) error {
	return p.send(fmt.Sprintf("(assert %s)", sexpr))
}

func (p *Process) Push() error {
	if err := p.send("(push 1)"); err != nil {
		return err
	}
	p.depth++
	return nil
}

func (p *Process) Pop() error {
	if p.depth == 0 {
		return &SolverError{Op: "pop", Err: errors.New("pop without matching push")}
	}
	if err := p.send("(pop 1)"); err != nil {
		return err
	}
	p.depth--
	return nil
}

func (p *Process) CheckSat() (CheckSatResult, error) {
	if err := p.send("(check-sat)"); err != nil {
		return SolverUnknown, err
	}
	resp, err := readResponse(p.stdout)
	if err != nil {
		return SolverUnknown, &SolverError{Op: "check-sat", Err: err}
	}
	switch strings.TrimSpace(resp) {
	case "sat":
		return Sat, nil
	case "unsat":
		return Unsat, nil
	case "unknown":
		return SolverUnknown, nil
	default:
		return SolverUnknown, &SolverError{Op: "check-sat", Err: errors.Errorf("unexpected response %q", resp)}
	}
}

func (p *Process) GetModel(names []string) (map[string]value.Value, error) {
	if err := p.send("(get-model)"); err != nil {
		return nil, err
	}
	raw, err := readResponse(p.stdout)
	if err != nil {
		return nil, &SolverError{Op: "get-model", Err: err}
	}
	root, _, err := readBalanced(raw)
	if err != nil {
		return nil, &SolverError{Op: "get-model", Err: err}
	}
	lits := modelValues(root)

	out := make(map[string]value.Value, len(names))
	for _, name := range names {
		typ, ok := p.declared[name]
		if !ok {
			return nil, &SolverError{Op: "get-model", Err: errors.Errorf("%s was never declared", name)}
		}
		lit, ok := lits[name]
		if !ok {
			return nil, &SolverError{Op: "get-model", Err: errors.Errorf("solver model has no entry for %s", name)}
		}
		v, err := value.ParseLiteral(typ, lit)
		if err != nil {
			return nil, &SolverError{Op: "get-model", Err: err}
		}
		out[name] = v
	}
	return out, nil
}

func (p *Process) Reset() error {
	if err := p.send("(reset)"); err != nil {
		return err
	}
	p.declared = make(map[string]value.Type)
	p.depth = 0
	return p.init()
}

// Shutdown closes stdin and waits for the process to exit, killing it
// after a grace period if it does not. Safe to call more than once.
func (p *Process) Shutdown() error {
	if p.stdin != nil {
		_ = p.send("(exit)")
		_ = p.stdin.Close()
		p.stdin = nil
	}
	if p.cmd == nil || p.cmd.Process == nil {
		return nil
	}
	done := make(chan error, 1)
	go func() { done <- p.cmd.Wait() }()
	select {
	case err := <-done:
		p.cmd = nil
		if err != nil {
			log.Debugf("smtsolver: process exited: %v", err)
		}
		return nil
	case <-time.After(2 * time.Second):
		_ = p.cmd.Process.Kill()
		<-done
		p.cmd = nil
		return nil
	}
}

// readResponse reads exactly one response unit from r: a balanced
// S-expression if the response starts with '(', or a single
// whitespace-delimited token otherwise (covering sat/unsat/unknown).
func readResponse(r *bufio.Reader) (string, error) {
	var buf strings.Builder
	depth := 0
	started := false
	for {
		b, err := r.ReadByte()
		if err != nil {
			if started {
				return buf.String(), nil
			}
			return buf.String(), err
		}
		if !started {
			if isSpace(b) {
				continue
			}
			started = true
		}
		buf.WriteByte(b)
		switch b {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return buf.String(), nil
			}
		default:
			if depth == 0 {
				if next, err := r.Peek(1); err != nil || isSpace(next[0]) {
					return buf.String(), nil
				}
			}
		}
	}
}
