// Package builtins registers the standard command and function set of
// spec.md §4.5 against an *interp.Registry. Each file groups one
// category, matching the way the teacher splits pkg/tinybasic's builtin
// set across files by area (graphics, sound, program control, ...).
package builtins

import (
	"context"
	"strconv"
	"strings"

	"github.com/antibyte/endbasic-core/pkg/interp"
	"github.com/antibyte/endbasic-core/pkg/lang"
	"github.com/antibyte/endbasic-core/pkg/langerr"
)

const catConsole = "Console"

// clsCommand implements CLS: clear the console, no arguments.
type clsCommand struct{}

func (clsCommand) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("CLS").
		WithCategory(catConsole).
		WithSyntax("CLS").
		WithDescription("Clears the console.").
		Build()
}

func (clsCommand) Exec(ctx context.Context, m *interp.Machine, args []lang.Arg, pos langerr.Position) error {
	if interp.ArgCount(args) != 0 {
		return langerr.New(langerr.Argument, pos, "CLS takes no arguments")
	}
	return m.Host.Console.Clear()
}

// colorCommand implements COLOR fg%, bg%: either argument may be
// omitted (an empty slot) to leave that channel unchanged, per spec.md
// §4.5.
type colorCommand struct{}

func (colorCommand) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("COLOR").
		WithCategory(catConsole).
		WithSyntax("COLOR [fg%][, bg%]").
		WithDescription("Sets the foreground and/or background color.\nEither argument may be omitted to leave that channel unchanged.").
		Build()
}

func (colorCommand) Exec(ctx context.Context, m *interp.Machine, args []lang.Arg, pos langerr.Position) error {
	if interp.ArgCount(args) > 2 {
		return langerr.New(langerr.Argument, pos, "COLOR takes at most 2 arguments")
	}
	fg, err := interp.OptionalInt(ctx, m, args, 0, "fg", -1, pos)
	if err != nil {
		return err
	}
	bg, err := interp.OptionalInt(ctx, m, args, 1, "bg", -1, pos)
	if err != nil {
		return err
	}
	return m.Host.Console.SetColor(int(fg), int(bg))
}

// locateCommand implements LOCATE row%, col%.
type locateCommand struct{}

func (locateCommand) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("LOCATE").
		WithCategory(catConsole).
		WithSyntax("LOCATE row%, col%").
		WithDescription("Moves the cursor to the given row and column.").
		Build()
}

func (locateCommand) Exec(ctx context.Context, m *interp.Machine, args []lang.Arg, pos langerr.Position) error {
	row, err := interp.RequireInt(ctx, m, args, 0, "row", pos)
	if err != nil {
		return err
	}
	col, err := interp.RequireInt(ctx, m, args, 1, "col", pos)
	if err != nil {
		return err
	}
	if interp.ArgCount(args) > 2 {
		return langerr.New(langerr.Argument, pos, "LOCATE takes exactly 2 arguments")
	}
	return m.Host.Console.Locate(int(row), int(col))
}

// printCommand implements PRINT, per spec.md §4.5: a short separator
// (;) joins adjacent values with a single space; a long separator (,)
// inserts a tab; a trailing separator with nothing after it suppresses
// the line's closing newline.
type printCommand struct{}

func (printCommand) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("PRINT").
		WithCategory(catConsole).
		WithSyntax("PRINT [expr][; expr ...][, expr ...]").
		WithDescription("Writes values to the console.\nA trailing ; or , suppresses the line's closing newline.").
		Build()
}

func (printCommand) Exec(ctx context.Context, m *interp.Machine, args []lang.Arg, pos langerr.Position) error {
	var sb strings.Builder
	for _, a := range args {
		if a.Value == nil {
			continue
		}
		v, err := m.Eval(ctx, a.Value)
		if err != nil {
			return err
		}
		sb.WriteString(interp.Display(v))
		if a.Sep == lang.SepLong {
			sb.WriteString("\t")
		} else if a.Sep == lang.SepShort {
			sb.WriteString(" ")
		}
	}
	suppress := len(args) > 0 && args[len(args)-1].Value == nil
	if suppress {
		return m.Host.Console.Print(sb.String())
	}
	return m.Host.Console.Println(sb.String())
}

// inputCommand implements INPUT [prompt$] <;|,> var, per spec.md §4.5. A
// semicolon between the prompt and the variable appends "?" to the
// prompt; a comma leaves it as given. The target variable's existing
// declared type (if any) governs how the entered line is parsed; an
// undeclared target is implicitly declared as STRING, matching plain
// assignment's implicit-declare rule. A line that fails to parse as
// that type re-prompts rather than aborting the program.
type inputCommand struct{}

func (inputCommand) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("INPUT").
		WithCategory(catConsole).
		WithSyntax("INPUT [prompt$] <;|,> var").
		WithDescription("Reads one line from the console into var.\nA semicolon before var appends \"?\" to the prompt.\nThe line is parsed according to var's declared type; a bad line re-prompts.").
		Build()
}

func (inputCommand) Exec(ctx context.Context, m *interp.Machine, args []lang.Arg, pos langerr.Position) error {
	n := interp.ArgCount(args)
	if n != 1 && n != 2 {
		return langerr.New(langerr.Argument, pos, "INPUT requires a target variable, with an optional prompt")
	}

	prompt := ""
	targetExpr := args[n-1].Value
	if n == 2 {
		p, err := interp.RequireString(ctx, m, args, 0, "prompt", pos)
		if err != nil {
			return err
		}
		prompt = p
		if args[0].Sep == lang.SepShort {
			prompt += "?"
		}
	}

	ref, ok := targetExpr.(*lang.VarRefExpr)
	if !ok {
		return langerr.New(langerr.Argument, pos, "INPUT's target must be a variable")
	}

	vt := ref.Ref.Type
	if vt == lang.Auto {
		if declared, ok := m.Sym.LookupType(ref.Ref.Name); ok {
			vt = declared
		}
	}

	for {
		line, err := m.Host.Console.ReadLine(ctx, prompt)
		if err != nil {
			return err
		}
		val, err := parseInputLine(line, vt, pos)
		if err != nil {
			continue
		}
		return m.Sym.Set(ref.Ref, val, pos)
	}
}

func parseInputLine(line string, vt lang.VarType, pos langerr.Position) (lang.Value, error) {
	if vt == lang.Auto {
		return lang.StrValue(line), nil
	}
	switch vt {
	case lang.StringType:
		return lang.StrValue(line), nil
	case lang.IntegerType:
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
		if err != nil {
			return lang.Value{}, langerr.New(langerr.Runtime, pos, "invalid INTEGER input %q", line)
		}
		return lang.IntValue(int32(n)), nil
	case lang.DoubleType:
		f, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			return lang.Value{}, langerr.New(langerr.Runtime, pos, "invalid DOUBLE input %q", line)
		}
		return lang.DoubleValue(f), nil
	case lang.BooleanType:
		switch strings.ToUpper(strings.TrimSpace(line)) {
		case "TRUE":
			return lang.BoolValue(true), nil
		case "FALSE":
			return lang.BoolValue(false), nil
		default:
			return lang.Value{}, langerr.New(langerr.Runtime, pos, "invalid BOOLEAN input %q", line)
		}
	default:
		return lang.StrValue(line), nil
	}
}

// registerConsole adds every console builtin to reg.
func registerConsole(reg *interp.Registry) {
	reg.RegisterCommand(clsCommand{})
	reg.RegisterCommand(colorCommand{})
	reg.RegisterCommand(locateCommand{})
	reg.RegisterCommand(printCommand{})
	reg.RegisterCommand(inputCommand{})
}
