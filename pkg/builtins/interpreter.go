package builtins

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/antibyte/endbasic-core/pkg/interp"
	"github.com/antibyte/endbasic-core/pkg/lang"
	"github.com/antibyte/endbasic-core/pkg/langerr"
)

const catInterpreter = "Interpreter"

// clearCommand implements CLEAR: drops every variable, keeping the
// loaded program text intact.
type clearCommand struct{}

func (clearCommand) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("CLEAR").
		WithCategory(catInterpreter).
		WithSyntax("CLEAR").
		WithDescription("Clears all variables.").
		Build()
}

func (clearCommand) Exec(ctx context.Context, m *interp.Machine, args []lang.Arg, pos langerr.Position) error {
	if interp.ArgCount(args) != 0 {
		return langerr.New(langerr.Argument, pos, "CLEAR takes no arguments")
	}
	m.Clear()
	return nil
}

// exitCommand implements EXIT [code%]: unwinds the running program with
// an exit code, defaulting to 0.
type exitCommand struct{}

func (exitCommand) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("EXIT").
		WithCategory(catInterpreter).
		WithSyntax("EXIT [code%]").
		WithDescription("Terminates the running program.").
		Build()
}

func (exitCommand) Exec(ctx context.Context, m *interp.Machine, args []lang.Arg, pos langerr.Position) error {
	code, err := interp.OptionalInt(ctx, m, args, 0, "code", 0, pos)
	if err != nil {
		return err
	}
	if interp.ArgCount(args) > 1 {
		return langerr.New(langerr.Argument, pos, "EXIT takes at most one argument")
	}
	return interp.Exit(code)
}

// helpCommand implements HELP [topic]. With no argument it prints a
// banner followed by the builtin index grouped by category, column
// aligned to the longest name in the category; with a builtin name it
// prints that builtin's syntax and description; with the single
// argument "LANG" it prints a cheat sheet of the language's own
// keywords and operators. Grounded directly on the behavior of the real
// EndBASIC HELP command (original_source/std/src/help.rs).
type helpCommand struct{}

func (helpCommand) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("HELP").
		WithCategory(catInterpreter).
		WithSyntax("HELP [topic]").
		WithDescription("Prints general help, help for one builtin, or the language cheat sheet (HELP LANG).").
		Build()
}

func (helpCommand) Exec(ctx context.Context, m *interp.Machine, args []lang.Arg, pos langerr.Position) error {
	if interp.ArgCount(args) > 1 {
		return langerr.New(langerr.Argument, pos, "HELP takes at most one argument")
	}
	if interp.ArgCount(args) == 0 {
		return printHelpIndex(m)
	}
	topic, err := interp.RequireString(ctx, m, args, 0, "topic", pos)
	if err != nil {
		return err
	}
	topic = strings.ToUpper(strings.TrimSpace(topic))
	if topic == "LANG" {
		return printLangCheatSheet(m)
	}
	return printHelpTopic(m, topic, pos)
}

func printHelpIndex(m *interp.Machine) error {
	if err := m.Host.Console.Println("EndBASIC-core interactive help. Type HELP LANG for the language cheat sheet."); err != nil {
		return err
	}
	if err := m.Host.Console.Println(""); err != nil {
		return err
	}

	byCategory := make(map[string][]interp.CallableMetadata)
	var categories []string
	for _, md := range m.Reg.Metadata() {
		if _, seen := byCategory[md.Category()]; !seen {
			categories = append(categories, md.Category())
		}
		byCategory[md.Category()] = append(byCategory[md.Category()], md)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		if err := m.Host.Console.Println(cat); err != nil {
			return err
		}
		entries := byCategory[cat]
		width := 0
		for _, e := range entries {
			if len(e.Name()) > width {
				width = len(e.Name())
			}
		}
		for _, e := range entries {
			line := fmt.Sprintf("    %-*s  %s", width, e.Name(), e.Summary())
			if err := m.Host.Console.Println(line); err != nil {
				return err
			}
		}
	}
	return nil
}

func printHelpTopic(m *interp.Machine, name string, pos langerr.Position) error {
	var md interp.CallableMetadata
	found := false
	if cmd, ok := m.Reg.Command(name); ok {
		md = cmd.Metadata()
		found = true
	} else if fn, ok := m.Reg.Function(name); ok {
		md = fn.Metadata()
		found = true
	}
	if !found {
		return langerr.New(langerr.Argument, pos, "no help topic %s", name).WithCommand("HELP")
	}
	if err := m.Host.Console.Println(md.Syntax()); err != nil {
		return err
	}
	return m.Host.Console.Println(md.Description())
}

func printLangCheatSheet(m *interp.Machine) error {
	lines := []string{
		"Types: BOOLEAN (?), INTEGER (%), DOUBLE (#), STRING ($)",
		"Literals: TRUE, FALSE, 123, 123.0, \"text\" (\"\" escapes a quote)",
		"Operators: + - * / MOD  = <> < <= > >=  AND OR XOR NOT",
		"Statements: var = expr | DIM var AS type",
		"            IF cond THEN ... ELSEIF cond THEN ... ELSE ... END IF",
		"            WHILE cond ... END WHILE",
		"            FOR var = start TO end [STEP n] ... NEXT",
		"Comments: ' rest of line   or   REM rest of line",
	}
	for _, l := range lines {
		if err := m.Host.Console.Println(l); err != nil {
			return err
		}
	}
	return nil
}

func registerInterpreter(reg *interp.Registry) {
	reg.RegisterCommand(clearCommand{})
	reg.RegisterCommand(exitCommand{})
	reg.RegisterCommand(helpCommand{})
}
