package interp_test

import (
	"testing"

	"github.com/antibyte/endbasic-core/pkg/langtest"
)

func TestArithmeticWrapsOnIntegerOverflow(t *testing.T) {
	langtest.From(t, `
x = 2147483647
x = x + 1
PRINT x
`).ExpectPrints("-2147483648")
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	langtest.From(t, `
x = 1 / 0
`).ExpectErrContains("division by zero")
}

func TestNoImplicitCoercionBetweenNumericTypes(t *testing.T) {
	langtest.From(t, `
IF 1 = 1.0 THEN
  PRINT "equal"
END IF
`).ExpectErrContains("type error")
}

func TestForLoopCountsDown(t *testing.T) {
	langtest.From(t, `
FOR i = 3 TO 1 STEP -1
  PRINT i
NEXT
`).ExpectPrints("3", "2", "1")
}

func TestForLoopOverDoubleBounds(t *testing.T) {
	langtest.From(t, `
FOR i# = 1.0 TO 3.0
  PRINT i#
NEXT
`).ExpectPrints("1", "2", "3")
}

func TestForLoopRejectsMismatchedBoundTypes(t *testing.T) {
	langtest.From(t, `
FOR i# = 1.0 TO 3
  PRINT i#
NEXT
`).ExpectErrContains("type error")
}

func TestWhileLoop(t *testing.T) {
	langtest.From(t, `
x = 0
WHILE x < 3
  PRINT x
  x = x + 1
END WHILE
`).ExpectPrints("0", "1", "2")
}

func TestUndeclaredAssignmentImplicitlyDeclares(t *testing.T) {
	langtest.From(t, `
total = 5
PRINT total
`).ExpectPrints("5")
}

func TestAssignmentCannotChangeDeclaredType(t *testing.T) {
	langtest.From(t, `
DIM x AS INTEGER
x = "oops"
`).ExpectErrContains("type error")
}

func TestExitStopsTheProgramWithoutError(t *testing.T) {
	langtest.From(t, `
PRINT "before"
EXIT
PRINT "after"
`).ExpectOK().ExpectPrints("before")
}

func TestStringConcatenation(t *testing.T) {
	langtest.From(t, `
PRINT "foo" + "bar"
`).ExpectPrints("foobar")
}

func TestNegationSaturatesAtMinInt32(t *testing.T) {
	langtest.From(t, `
x = -2147483647 - 1
y = -x
PRINT y
`).ExpectPrints("2147483647")
}
