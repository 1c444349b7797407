package builtins

import (
	"context"
	"math"

	"github.com/antibyte/endbasic-core/pkg/interp"
	"github.com/antibyte/endbasic-core/pkg/lang"
	"github.com/antibyte/endbasic-core/pkg/langerr"
)

const catNumeric = "Numerics"

// dtoiFunction implements DTOI%(d#): rounds a DOUBLE half-to-even into an
// INTEGER, saturating to math.MinInt32/math.MaxInt32 out of range,
// per spec.md §4.3.
type dtoiFunction struct{}

func (dtoiFunction) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("DTOI").
		WithCategory(catNumeric).
		WithSyntax("DTOI(d#)").
		WithDescription("Rounds a DOUBLE half-to-even into an INTEGER.\nOut-of-range results saturate to the INTEGER bounds.").
		Build()
}

func (dtoiFunction) Call(ctx context.Context, m *interp.Machine, args []lang.Value, pos langerr.Position) (lang.Value, error) {
	if len(args) != 1 || args[0].Type != lang.DoubleType {
		return lang.Value{}, langerr.New(langerr.Argument, pos, "DTOI requires one DOUBLE argument")
	}
	d := args[0].Double
	if math.IsNaN(d) {
		return lang.Value{}, langerr.New(langerr.Runtime, pos, "%v does not fit in an INTEGER", d)
	}
	r := math.RoundToEven(d)
	if r > math.MaxInt32 {
		return lang.IntValue(math.MaxInt32), nil
	}
	if r < math.MinInt32 {
		return lang.IntValue(math.MinInt32), nil
	}
	return lang.IntValue(int32(r)), nil
}

// itodFunction implements ITOD#(i%): widens an INTEGER into a DOUBLE.
type itodFunction struct{}

func (itodFunction) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("ITOD").
		WithCategory(catNumeric).
		WithSyntax("ITOD(i%)").
		WithDescription("Widens an INTEGER into a DOUBLE.").
		Build()
}

func (itodFunction) Call(ctx context.Context, m *interp.Machine, args []lang.Value, pos langerr.Position) (lang.Value, error) {
	if len(args) != 1 || args[0].Type != lang.IntegerType {
		return lang.Value{}, langerr.New(langerr.Argument, pos, "ITOD requires one INTEGER argument")
	}
	return lang.DoubleValue(float64(args[0].Int)), nil
}

// randomizeCommand implements RANDOMIZE [seed%]. With a seed, every
// subsequent RND call in this Machine is reproducible; without one, it
// reseeds from the host's entropy source, per spec.md §5.
type randomizeCommand struct{}

func (randomizeCommand) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("RANDOMIZE").
		WithCategory(catNumeric).
		WithSyntax("RANDOMIZE [seed%]").
		WithDescription("Reseeds the random number generator.\nWith no argument, reseeds from host entropy.").
		Build()
}

func (randomizeCommand) Exec(ctx context.Context, m *interp.Machine, args []lang.Arg, pos langerr.Position) error {
	if interp.ArgCount(args) > 1 {
		return langerr.New(langerr.Argument, pos, "RANDOMIZE takes at most one argument")
	}
	v, ok, err := interp.EvalArg(ctx, m, args, 0)
	if err != nil {
		return err
	}
	if !ok {
		seed := int64(1)
		if m.Host.Entropy != nil {
			seed = m.Host.Entropy.Seed()
		}
		m.RNG.Reseed(seed)
		return nil
	}
	if v.Type != lang.IntegerType {
		return langerr.New(langerr.Type, pos, "RANDOMIZE seed must be INTEGER, found %s", v.Type)
	}
	m.RNG.Reseed(int64(v.Int))
	return nil
}

// rndFunction implements RND#(n%), per spec.md §4.5: n%=0 returns the
// last drawn value without advancing the generator; n%>0 draws and
// returns a new value in [0, 1); n%<0 reseeds from |n%| and returns the
// first value of the new sequence.
type rndFunction struct{}

func (rndFunction) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("RND").
		WithCategory(catNumeric).
		WithSyntax("RND(n%)").
		WithDescription("Returns a pseudo-random DOUBLE in [0, 1).\nn%=0 repeats the last value; n%>0 draws a new one; n%<0 reseeds from |n%|.").
		Build()
}

func (rndFunction) Call(ctx context.Context, m *interp.Machine, args []lang.Value, pos langerr.Position) (lang.Value, error) {
	if len(args) != 1 || args[0].Type != lang.IntegerType {
		return lang.Value{}, langerr.New(langerr.Argument, pos, "RND requires one INTEGER argument")
	}
	n := args[0].Int
	switch {
	case n == 0:
		return lang.DoubleValue(m.RNG.Last()), nil
	case n > 0:
		return lang.DoubleValue(m.RNG.Float64()), nil
	default:
		m.RNG.Reseed(-int64(n))
		return lang.DoubleValue(m.RNG.Last()), nil
	}
}

func registerNumeric(reg *interp.Registry) {
	reg.RegisterFunction(dtoiFunction{})
	reg.RegisterFunction(itodFunction{})
	reg.RegisterCommand(randomizeCommand{})
	reg.RegisterFunction(rndFunction{})
}
