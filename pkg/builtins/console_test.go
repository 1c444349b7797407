package builtins_test

import (
	"testing"

	"github.com/antibyte/endbasic-core/pkg/langtest"
)

func TestPrintShortSeparatorJoinsWithSpace(t *testing.T) {
	langtest.From(t, `PRINT "a"; "b"`).ExpectPrints("a b")
}

func TestPrintLongSeparatorInsertsTab(t *testing.T) {
	langtest.From(t, `PRINT "a", "b"`).ExpectPrints("a\tb")
}

func TestPrintTrailingSeparatorSuppressesNewline(t *testing.T) {
	tt := langtest.From(t, `
PRINT "a";
PRINT "b"
`).ExpectOK()
	if len(tt.ConsoleLines()) != 1 || tt.ConsoleLines()[0] != "a b" {
		t.Fatalf("expected a single joined line \"a b\", got %v", tt.ConsoleLines())
	}
}

func TestInputParsesDeclaredIntegerType(t *testing.T) {
	langtest.From(t, `
DIM n AS INTEGER
INPUT n
PRINT n + 1
`).WithInputs("41").ExpectPrints("42")
}

func TestInputWithPrompt(t *testing.T) {
	langtest.From(t, `
INPUT "name"; s
PRINT s
`).WithInputs("Ada").ExpectPrints("Ada")
}

func TestInputReprompsOnMalformedInteger(t *testing.T) {
	langtest.From(t, `
DIM n AS INTEGER
INPUT n
PRINT n + 1
`).WithInputs("not a number", "41").ExpectPrints("42")
}

func TestInputAppendsQuestionMarkForShortSeparatorPrompt(t *testing.T) {
	tt := langtest.From(t, `
INPUT "name"; s
PRINT s
`).WithInputs("Ada").ExpectPrints("Ada")
	if tt.LastPrompt() != "name?" {
		t.Fatalf("expected prompt %q, got %q", "name?", tt.LastPrompt())
	}
}

func TestColorRejectsTooManyArguments(t *testing.T) {
	langtest.From(t, `COLOR 1, 2, 3`).ExpectErrContains("argument error")
}
