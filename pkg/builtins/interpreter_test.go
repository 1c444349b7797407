package builtins_test

import (
	"testing"

	"github.com/antibyte/endbasic-core/pkg/langtest"
)

func TestClearDropsVariablesButKeepsProgram(t *testing.T) {
	langtest.From(t, `
x = 5
CLEAR
PRINT x
`).ExpectErrContains("undefined variable")
}

func TestExitDefaultsToCodeZero(t *testing.T) {
	langtest.From(t, `
PRINT "a"
EXIT
PRINT "b"
`).ExpectOK().ExpectPrints("a")
}

func TestExitWithExplicitCode(t *testing.T) {
	langtest.From(t, `
PRINT "a"
EXIT 2
`).ExpectOK().ExpectPrints("a")
}

func TestHelpWithNoArgumentsPrintsIndex(t *testing.T) {
	tt := langtest.From(t, `HELP`).ExpectOK()
	if len(tt.ConsoleLines()) == 0 {
		t.Fatalf("expected HELP to print something")
	}
}

func TestHelpLangPrintsCheatSheet(t *testing.T) {
	tt := langtest.From(t, `HELP "LANG"`).ExpectOK()
	found := false
	for _, l := range tt.ConsoleLines() {
		if l == "Operators: + - * / MOD  = <> < <= > >=  AND OR XOR NOT" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the operators cheat-sheet line, got %v", tt.ConsoleLines())
	}
}

func TestHelpUnknownTopicIsAnError(t *testing.T) {
	langtest.From(t, `HELP "NOSUCHTHING"`).ExpectErrContains("no help topic")
}

func TestHelpOnABuiltinPrintsItsSyntax(t *testing.T) {
	tt := langtest.From(t, `HELP "LEN"`).ExpectOK()
	if len(tt.ConsoleLines()) != 2 {
		t.Fatalf("expected syntax + description lines, got %v", tt.ConsoleLines())
	}
	if tt.ConsoleLines()[0] != "LEN(s$)" {
		t.Fatalf("expected LEN's syntax line first, got %q", tt.ConsoleLines()[0])
	}
}
