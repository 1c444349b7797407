package builtins_test

import (
	"testing"

	"github.com/antibyte/endbasic-core/pkg/langtest"
)

func TestSaveThenLoadThenRunRoundtrips(t *testing.T) {
	tt := langtest.From(t, `
SAVE "greet"
NEW
LOAD "greet"
RUN
`)
	tt.Machine().Source = `PRINT "hello"`
	tt.ExpectPrints("hello")
}

func TestRunWithNoProgramLoadedIsAnError(t *testing.T) {
	langtest.From(t, `RUN`).ExpectErrContains("no program loaded")
}

func TestSaveWithNoProgramIsAnError(t *testing.T) {
	langtest.From(t, `SAVE "empty"`).ExpectErrContains("no program to save")
}

func TestDelRemovesAStoredProgram(t *testing.T) {
	tt := langtest.From(t, `
SAVE "a"
DEL "a"
LOAD "a"
`)
	tt.Machine().Source = `PRINT "x"`
	tt.ExpectErrContains("I/O error")
}

func TestDirListsStoredProgramsAndCount(t *testing.T) {
	tt := langtest.From(t, `
SAVE "one"
SAVE "two"
DIR
`)
	tt.Machine().Source = `PRINT "p"`
	tt.ExpectOK()
	lines := tt.ConsoleLines()
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines of DIR output, got %v", lines)
	}
}

func TestNewClearsProgramAndVariables(t *testing.T) {
	langtest.From(t, `
x = 5
NEW
RUN
`).ExpectErrContains("no program loaded")
}

func TestEditWithoutConfiguredEditorIsAnError(t *testing.T) {
	langtest.From(t, `EDIT`).ExpectErrContains("no editor configured")
}

func TestDirTakesNoArguments(t *testing.T) {
	langtest.From(t, `DIR 1`).ExpectErrContains("argument error")
}
