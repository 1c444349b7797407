package interp

import (
	"context"

	"github.com/antibyte/endbasic-core/pkg/lang"
	"github.com/antibyte/endbasic-core/pkg/langerr"
)

// EvalArg evaluates the i'th slot of args, or reports ok=false if that
// slot is empty (a deliberately omitted argument, e.g. the missing
// foreground color in "COLOR ,5") or missing entirely (the call had
// fewer slots than requested). A missing slot is not an error on its
// own: it is a builtin's job to decide whether its own argument is
// mandatory.
func EvalArg(ctx context.Context, m *Machine, args []lang.Arg, i int) (lang.Value, bool, error) {
	if i >= len(args) || args[i].Value == nil {
		return lang.Value{}, false, nil
	}
	v, err := m.eval(ctx, args[i].Value)
	if err != nil {
		return lang.Value{}, false, err
	}
	return v, true, nil
}

// RequireArg is EvalArg plus a mandatory-argument check, raising an
// argument error at pos if the slot is missing or empty.
func RequireArg(ctx context.Context, m *Machine, args []lang.Arg, i int, name string, pos langerr.Position) (lang.Value, error) {
	v, ok, err := EvalArg(ctx, m, args, i)
	if err != nil {
		return lang.Value{}, err
	}
	if !ok {
		return lang.Value{}, langerr.New(langerr.Argument, pos, "missing required argument %s", name)
	}
	return v, nil
}

// RequireInt evaluates slot i and requires it to be an INTEGER.
func RequireInt(ctx context.Context, m *Machine, args []lang.Arg, i int, name string, pos langerr.Position) (int32, error) {
	v, err := RequireArg(ctx, m, args, i, name, pos)
	if err != nil {
		return 0, err
	}
	if v.Type != lang.IntegerType {
		return 0, langerr.New(langerr.Type, pos, "argument %s must be INTEGER, found %s", name, v.Type)
	}
	return v.Int, nil
}

// RequireString evaluates slot i and requires it to be a STRING.
func RequireString(ctx context.Context, m *Machine, args []lang.Arg, i int, name string, pos langerr.Position) (string, error) {
	v, err := RequireArg(ctx, m, args, i, name, pos)
	if err != nil {
		return "", err
	}
	if v.Type != lang.StringType {
		return "", langerr.New(langerr.Type, pos, "argument %s must be STRING, found %s", name, v.Type)
	}
	return v.Str, nil
}

// OptionalInt is RequireInt but returns def when the slot is missing or
// empty, per spec.md §4.5's optional, independently-omittable
// arguments (e.g. COLOR's fg/bg).
func OptionalInt(ctx context.Context, m *Machine, args []lang.Arg, i int, name string, def int32, pos langerr.Position) (int32, error) {
	v, ok, err := EvalArg(ctx, m, args, i)
	if err != nil {
		return 0, err
	}
	if !ok {
		return def, nil
	}
	if v.Type != lang.IntegerType {
		return 0, langerr.New(langerr.Type, pos, "argument %s must be INTEGER, found %s", name, v.Type)
	}
	return v.Int, nil
}

// ArgCount returns the number of argument slots supplied, empty or not.
func ArgCount(args []lang.Arg) int {
	return len(args)
}

// Eval exposes expression evaluation to builtins that need to evaluate
// an already-retrieved lang.Expr outside of an Arg slot (e.g. a
// Function's own sub-expressions, though most Functions receive
// pre-evaluated lang.Value args and never need this).
func (m *Machine) Eval(ctx context.Context, e lang.Expr) (lang.Value, error) {
	return m.eval(ctx, e)
}
