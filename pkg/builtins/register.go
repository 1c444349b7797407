package builtins

import "github.com/antibyte/endbasic-core/pkg/interp"

// Register wires the complete standard builtin set of spec.md §4.5 into
// reg. Mirrors the teacher's pkg/tinybasic registration entry point,
// which likewise wires every command/function group into one
// interpreter from a single call at startup.
func Register(reg *interp.Registry) {
	registerConsole(reg)
	registerProgram(reg)
	registerInterpreter(reg)
	registerNumeric(reg)
	registerStrings(reg)
}
