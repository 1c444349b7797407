package builtins_test

import (
	"testing"

	"github.com/antibyte/endbasic-core/pkg/langtest"
)

func TestLenCountsRunesNotBytes(t *testing.T) {
	langtest.From(t, `PRINT LEN("héllo")`).ExpectPrints("5")
}

func TestLeftReturnsLeadingCharacters(t *testing.T) {
	langtest.From(t, `PRINT LEFT("hello", 3)`).ExpectPrints("hel")
}

func TestLeftClampsPastTheEndOfTheString(t *testing.T) {
	langtest.From(t, `PRINT LEFT("hi", 10)`).ExpectPrints("hi")
}

func TestRightReturnsTrailingCharacters(t *testing.T) {
	langtest.From(t, `PRINT RIGHT("hello", 2)`).ExpectPrints("lo")
}

func TestMidReturnsASubstringByStartAndCount(t *testing.T) {
	langtest.From(t, `PRINT MID("hello", 2, 3)`).ExpectPrints("ell")
}

func TestMidDefaultsCountToTheRestOfTheString(t *testing.T) {
	langtest.From(t, `PRINT MID("hello", 2)`).ExpectPrints("ello")
}

func TestMidIsOneIndexedAndSaturatesPastTheEnd(t *testing.T) {
	langtest.From(t, `PRINT MID("abc", 5)`).ExpectPrints("")
	langtest.From(t, `PRINT MID("hello", 1)`).ExpectPrints("hello")
}

func TestMidRejectsNegativeArguments(t *testing.T) {
	langtest.From(t, `PRINT MID("hello", 1, -3)`).ExpectErrContains("argument error")
}

func TestMidRejectsStartBelowOne(t *testing.T) {
	langtest.From(t, `PRINT MID("hello", 0, 3)`).ExpectErrContains("argument error")
}

func TestLtrimRemovesLeadingWhitespaceOnly(t *testing.T) {
	langtest.From(t, `PRINT LTRIM("  hi  ") + "|"`).ExpectPrints("hi  |")
}

func TestRtrimRemovesTrailingWhitespaceOnly(t *testing.T) {
	langtest.From(t, `PRINT "|" + RTRIM("  hi  ")`).ExpectPrints("|  hi")
}
