package builtins

import (
	"context"
	"strings"

	"github.com/antibyte/endbasic-core/pkg/interp"
	"github.com/antibyte/endbasic-core/pkg/lang"
	"github.com/antibyte/endbasic-core/pkg/langerr"
)

const catStrings = "Strings"

func requireOneString(args []lang.Value, pos langerr.Position, name string) (string, error) {
	if len(args) != 1 || args[0].Type != lang.StringType {
		return "", langerr.New(langerr.Argument, pos, "%s requires one STRING argument", name)
	}
	return args[0].Str, nil
}

// lenFunction implements LEN%(s$).
type lenFunction struct{}

func (lenFunction) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("LEN").
		WithCategory(catStrings).
		WithSyntax("LEN(s$)").
		WithDescription("Returns the length of a string, in runes.").
		Build()
}

func (lenFunction) Call(ctx context.Context, m *interp.Machine, args []lang.Value, pos langerr.Position) (lang.Value, error) {
	s, err := requireOneString(args, pos, "LEN")
	if err != nil {
		return lang.Value{}, err
	}
	return lang.IntValue(int32(len([]rune(s)))), nil
}

func clampSubstringArgs(runes []rune, start, n int32, pos langerr.Position, name string) (int, int, error) {
	if start < 0 || n < 0 {
		return 0, 0, langerr.New(langerr.Argument, pos, "%s arguments must not be negative", name)
	}
	length := len(runes)
	s := int(start)
	if s > length {
		s = length
	}
	e := s + int(n)
	if e > length {
		e = length
	}
	return s, e, nil
}

// leftFunction implements LEFT$(s$, n%).
type leftFunction struct{}

func (leftFunction) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("LEFT").
		WithCategory(catStrings).
		WithSyntax("LEFT(s$, n%)").
		WithDescription("Returns the leftmost n characters of s$.").
		Build()
}

func (leftFunction) Call(ctx context.Context, m *interp.Machine, args []lang.Value, pos langerr.Position) (lang.Value, error) {
	if len(args) != 2 || args[0].Type != lang.StringType || args[1].Type != lang.IntegerType {
		return lang.Value{}, langerr.New(langerr.Argument, pos, "LEFT requires (STRING, INTEGER) arguments")
	}
	runes := []rune(args[0].Str)
	_, e, err := clampSubstringArgs(runes, 0, args[1].Int, pos, "LEFT")
	if err != nil {
		return lang.Value{}, err
	}
	return lang.StrValue(string(runes[:e])), nil
}

// rightFunction implements RIGHT$(s$, n%).
type rightFunction struct{}

func (rightFunction) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("RIGHT").
		WithCategory(catStrings).
		WithSyntax("RIGHT(s$, n%)").
		WithDescription("Returns the rightmost n characters of s$.").
		Build()
}

func (rightFunction) Call(ctx context.Context, m *interp.Machine, args []lang.Value, pos langerr.Position) (lang.Value, error) {
	if len(args) != 2 || args[0].Type != lang.StringType || args[1].Type != lang.IntegerType {
		return lang.Value{}, langerr.New(langerr.Argument, pos, "RIGHT requires (STRING, INTEGER) arguments")
	}
	if args[1].Int < 0 {
		return lang.Value{}, langerr.New(langerr.Argument, pos, "RIGHT argument must not be negative")
	}
	runes := []rune(args[0].Str)
	n := int(args[1].Int)
	if n > len(runes) {
		n = len(runes)
	}
	return lang.StrValue(string(runes[len(runes)-n:])), nil
}

// midFunction implements MID$(s$, start%, [len%]): start is 1-indexed;
// an omitted len% defaults to the rest of the string.
type midFunction struct{}

func (midFunction) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("MID").
		WithCategory(catStrings).
		WithSyntax("MID(s$, start%[, n%])").
		WithDescription("Returns n characters of s$ starting at the 1-based index start.\nn defaults to the rest of the string.").
		Build()
}

func (midFunction) Call(ctx context.Context, m *interp.Machine, args []lang.Value, pos langerr.Position) (lang.Value, error) {
	if len(args) < 2 || len(args) > 3 || args[0].Type != lang.StringType || args[1].Type != lang.IntegerType {
		return lang.Value{}, langerr.New(langerr.Argument, pos, "MID requires (STRING, INTEGER[, INTEGER]) arguments")
	}
	runes := []rune(args[0].Str)
	if args[1].Int < 1 {
		return lang.Value{}, langerr.New(langerr.Argument, pos, "MID start must be at least 1")
	}
	start := args[1].Int - 1
	n := int32(len(runes))
	if len(args) == 3 {
		if args[2].Type != lang.IntegerType {
			return lang.Value{}, langerr.New(langerr.Argument, pos, "MID requires (STRING, INTEGER[, INTEGER]) arguments")
		}
		n = args[2].Int
	}
	s, e, err := clampSubstringArgs(runes, start, n, pos, "MID")
	if err != nil {
		return lang.Value{}, err
	}
	return lang.StrValue(string(runes[s:e])), nil
}

// ltrimFunction implements LTRIM$(s$).
type ltrimFunction struct{}

func (ltrimFunction) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("LTRIM").
		WithCategory(catStrings).
		WithSyntax("LTRIM(s$)").
		WithDescription("Removes leading whitespace from s$.").
		Build()
}

func (ltrimFunction) Call(ctx context.Context, m *interp.Machine, args []lang.Value, pos langerr.Position) (lang.Value, error) {
	s, err := requireOneString(args, pos, "LTRIM")
	if err != nil {
		return lang.Value{}, err
	}
	return lang.StrValue(strings.TrimLeft(s, " \t")), nil
}

// rtrimFunction implements RTRIM$(s$).
type rtrimFunction struct{}

func (rtrimFunction) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("RTRIM").
		WithCategory(catStrings).
		WithSyntax("RTRIM(s$)").
		WithDescription("Removes trailing whitespace from s$.").
		Build()
}

func (rtrimFunction) Call(ctx context.Context, m *interp.Machine, args []lang.Value, pos langerr.Position) (lang.Value, error) {
	s, err := requireOneString(args, pos, "RTRIM")
	if err != nil {
		return lang.Value{}, err
	}
	return lang.StrValue(strings.TrimRight(s, " \t")), nil
}

func registerStrings(reg *interp.Registry) {
	reg.RegisterFunction(lenFunction{})
	reg.RegisterFunction(leftFunction{})
	reg.RegisterFunction(rightFunction{})
	reg.RegisterFunction(midFunction{})
	reg.RegisterFunction(ltrimFunction{})
	reg.RegisterFunction(rtrimFunction{})
}
