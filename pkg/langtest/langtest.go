// Package langtest implements a small fluent test harness for running
// EndBASIC-core-style programs against an in-memory console and
// asserting on their printed output, grounded on the test harness style
// referenced from original_source/std/src/help.rs (a from(...).run(...)
// with chained expectation calls). The external test packages of
// pkg/interp and pkg/builtins use this instead of hand-rolling a console
// mock each time; pkg/lang's own tests drive the lexer and parser
// directly.
package langtest

import (
	"context"
	"strings"
	"testing"

	"github.com/antibyte/endbasic-core/pkg/builtins"
	"github.com/antibyte/endbasic-core/pkg/hostutil"
	"github.com/antibyte/endbasic-core/pkg/hostutil/memstore"
	"github.com/antibyte/endbasic-core/pkg/interp"
)

// recordingConsole is a host.Console that records every printed line
// and answers INPUT from a preloaded queue.
type recordingConsole struct {
	lines   []string
	cur     strings.Builder
	inputs  []string
	prompts []string
}

func (c *recordingConsole) Print(s string) error {
	c.cur.WriteString(s)
	return nil
}

func (c *recordingConsole) Println(s string) error {
	c.cur.WriteString(s)
	c.lines = append(c.lines, c.cur.String())
	c.cur.Reset()
	return nil
}

func (c *recordingConsole) Clear() error           { return nil }
func (c *recordingConsole) SetColor(fg, bg int) error { return nil }
func (c *recordingConsole) Locate(row, col int) error { return nil }

func (c *recordingConsole) ReadLine(ctx context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if len(c.inputs) == 0 {
		return "", nil
	}
	line := c.inputs[0]
	c.inputs = c.inputs[1:]
	return line, nil
}

// Tester runs one program against a fresh Machine and records its
// output for inspection.
type Tester struct {
	t       *testing.T
	src     string
	console *recordingConsole
	machine *interp.Machine
	runErr  error
	ran     bool
}

// From starts a Tester for the program text src.
func From(t *testing.T, src string) *Tester {
	reg := interp.NewRegistry()
	builtins.Register(reg)
	console := &recordingConsole{}
	m := interp.NewMachine(reg, interp.Host{
		Console: console,
		Store:   memstore.New(hostutil.FixedClock{T: 0}),
		Clock:   hostutil.FixedClock{T: 0},
		Entropy: hostutil.FixedEntropy{S: 1},
	})
	return &Tester{t: t, src: src, console: console, machine: m}
}

// WithInputs preloads the lines INPUT will read, in order.
func (tt *Tester) WithInputs(lines ...string) *Tester {
	tt.console.inputs = append(tt.console.inputs, lines...)
	return tt
}

// Run executes the program. Safe to call at most once per Tester.
func (tt *Tester) Run() *Tester {
	tt.ran = true
	tt.runErr = tt.machine.Run(context.Background(), tt.src)
	return tt
}

// ExpectOK asserts the program ran to completion without error.
func (tt *Tester) ExpectOK() *Tester {
	tt.t.Helper()
	if !tt.ran {
		tt.Run()
	}
	if tt.runErr != nil {
		tt.t.Fatalf("expected program to succeed, got error: %v", tt.runErr)
	}
	return tt
}

// ExpectErrContains asserts the program failed with an error whose
// message contains substr.
func (tt *Tester) ExpectErrContains(substr string) *Tester {
	tt.t.Helper()
	if !tt.ran {
		tt.Run()
	}
	if tt.runErr == nil {
		tt.t.Fatalf("expected an error containing %q, got none", substr)
	}
	if !strings.Contains(tt.runErr.Error(), substr) {
		tt.t.Fatalf("expected error containing %q, got %q", substr, tt.runErr.Error())
	}
	return tt
}

// ExpectPrints asserts the program printed exactly these lines, in
// order, over its run.
func (tt *Tester) ExpectPrints(lines ...string) *Tester {
	tt.t.Helper()
	if !tt.ran {
		tt.Run()
	}
	if len(tt.console.lines) != len(lines) {
		tt.t.Fatalf("expected %d printed lines, got %d: %v", len(lines), len(tt.console.lines), tt.console.lines)
	}
	for i, want := range lines {
		if tt.console.lines[i] != want {
			tt.t.Fatalf("line %d: expected %q, got %q", i, want, tt.console.lines[i])
		}
	}
	return tt
}

// Machine exposes the underlying Machine for assertions on variable
// state after Run.
func (tt *Tester) Machine() *interp.Machine { return tt.machine }

// ConsoleLines returns every line printed so far.
func (tt *Tester) ConsoleLines() []string { return tt.console.lines }

// LastPrompt returns the prompt string passed to the most recent
// ReadLine call, or "" if INPUT was never reached.
func (tt *Tester) LastPrompt() string {
	if n := len(tt.console.prompts); n > 0 {
		return tt.console.prompts[n-1]
	}
	return ""
}
