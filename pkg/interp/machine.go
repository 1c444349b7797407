package interp

import (
	"context"

	"github.com/antibyte/endbasic-core/pkg/host"
	"github.com/antibyte/endbasic-core/pkg/lang"
	"github.com/antibyte/endbasic-core/pkg/langerr"
	"github.com/antibyte/endbasic-core/pkg/logger"
)

// Host bundles the host service contracts a Machine is wired to. Not
// every field need be populated: a headless test Machine may supply only
// Console and leave ProgramStore nil, so long as the program under test
// never calls SAVE/LOAD/DIR/DEL.
type Host struct {
	Console  host.Console
	Store    host.ProgramStore
	Clock    host.Clock
	Entropy  host.EntropySource
	Editor   host.Editor
}

// Machine is the running state of one program: its variables, the
// builtin registry it dispatches against, its RNG, and the host it
// talks to. Grounded on the teacher's TinyBASIC struct (pkg/tinybasic),
// which plays the identical role of bundling variables + ctx + host
// services behind one receiver passed to every statement handler.
type Machine struct {
	Sym      *SymTab
	Reg      *Registry
	Host     Host
	RNG      *RNG
	Source   string // the program text last LOADed/RUN, for SAVE/EDIT

	// loopDepth guards against runaway recursion from a pathological
	// nested-call program; exceeded only by a bug in the parser or a
	// maliciously deep builtin call chain, not by ordinary programs.
	loopDepth int
}

const maxLoopDepth = 10000

// NewMachine creates a Machine wired to reg and h, with a fresh empty
// symbol table and an RNG seeded from h.Entropy if non-nil, else from a
// fixed fallback seed.
func NewMachine(reg *Registry, h Host) *Machine {
	var seed int64 = 1
	if h.Entropy != nil {
		seed = h.Entropy.Seed()
	}
	return &Machine{
		Sym:  NewSymTab(),
		Reg:  reg,
		Host: h,
		RNG:  NewRNG(seed),
	}
}

// Clear resets variable state, per the CLEAR command and the implicit
// CLEAR performed by NEW (spec.md §4.5, §9 Open Question resolution).
func (m *Machine) Clear() {
	m.Sym.Clear()
}

// Run parses and executes src from scratch: CLEAR, then evaluate it
// statement by statement. It leaves Source as it is, so a command line
// run through it does not replace the stored program. Used by RUN and by
// a host's top level for each line it is handed. An EXIT builtin unwinds
// here as success, not as an error.
func (m *Machine) Run(ctx context.Context, src string) error {
	prog, err := lang.NewParser(lang.NewLexer(src)).Parse()
	if err != nil {
		return err
	}
	m.Clear()
	logger.DebugLog(logger.AreaEval, "running program (%d statements)", len(prog.Stmts))
	err = m.Exec(ctx, prog)
	if err != nil {
		logger.DebugLog(logger.AreaEval, "program exited with error: %v", err)
	}
	return err
}

// Exec executes an already-parsed Program against the Machine's current
// variable state, without clearing it first. Run calls it once it has
// parsed and cleared; tests can call it to inspect variables left behind
// by a prior statement list.
func (m *Machine) Exec(ctx context.Context, prog *lang.Program) error {
	err := m.execBlock(ctx, prog.Stmts)
	if _, ok := ExitCode(err); ok {
		return nil
	}
	return err
}

func (m *Machine) checkCancelled(ctx context.Context, pos langerr.Position) error {
	select {
	case <-ctx.Done():
		return langerr.New(langerr.Interrupted, pos, "execution interrupted")
	default:
		return nil
	}
}
