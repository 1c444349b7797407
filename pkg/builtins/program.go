package builtins

import (
	"context"
	"sort"

	"github.com/antibyte/endbasic-core/pkg/host"
	"github.com/antibyte/endbasic-core/pkg/interp"
	"github.com/antibyte/endbasic-core/pkg/lang"
	"github.com/antibyte/endbasic-core/pkg/langerr"
	"github.com/antibyte/endbasic-core/pkg/logger"
)

const catProgram = "Program control"

func requireStore(m *interp.Machine, pos langerr.Position, cmd string) (host.ProgramStore, error) {
	if m.Host.Store == nil {
		return nil, langerr.New(langerr.IO, pos, "no program store configured").WithCommand(cmd)
	}
	return m.Host.Store, nil
}

// delCommand implements DEL "name".
type delCommand struct{}

func (delCommand) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("DEL").
		WithCategory(catProgram).
		WithSyntax("DEL name$").
		WithDescription("Deletes a stored program.").
		Build()
}

func (delCommand) Exec(ctx context.Context, m *interp.Machine, args []lang.Arg, pos langerr.Position) error {
	store, err := requireStore(m, pos, "DEL")
	if err != nil {
		return err
	}
	name, err := interp.RequireString(ctx, m, args, 0, "name", pos)
	if err != nil {
		return err
	}
	canonical := canonicalStoreName(name)
	logger.DebugLog(logger.AreaStore, "DEL %s", canonical)
	return store.Delete(ctx, canonical)
}

// dirCommand implements DIR: list every stored program, sorted by name.
type dirCommand struct{}

func (dirCommand) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("DIR").
		WithCategory(catProgram).
		WithSyntax("DIR").
		WithDescription("Lists the programs in the store.").
		Build()
}

func (dirCommand) Exec(ctx context.Context, m *interp.Machine, args []lang.Arg, pos langerr.Position) error {
	store, err := requireStore(m, pos, "DIR")
	if err != nil {
		return err
	}
	if interp.ArgCount(args) != 0 {
		return langerr.New(langerr.Argument, pos, "DIR takes no arguments")
	}
	infos, err := store.Enumerate(ctx)
	if err != nil {
		return err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	for _, info := range infos {
		if err := m.Host.Console.Println(formatDirEntry(info)); err != nil {
			return err
		}
	}
	return m.Host.Console.Println(humanizeCount(len(infos)))
}

// loadCommand implements LOAD "name": fetches the text but does not run it.
type loadCommand struct{}

func (loadCommand) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("LOAD").
		WithCategory(catProgram).
		WithSyntax("LOAD name$").
		WithDescription("Loads a stored program without running it.").
		Build()
}

func (loadCommand) Exec(ctx context.Context, m *interp.Machine, args []lang.Arg, pos langerr.Position) error {
	store, err := requireStore(m, pos, "LOAD")
	if err != nil {
		return err
	}
	name, err := interp.RequireString(ctx, m, args, 0, "name", pos)
	if err != nil {
		return err
	}
	text, err := store.Get(ctx, canonicalStoreName(name))
	if err != nil {
		return err
	}
	if _, err := lang.NewParser(lang.NewLexer(text)).Parse(); err != nil {
		return err
	}
	m.Source = text
	return nil
}

// newCommand implements NEW: clears the in-memory program and variables.
// NEW implies CLEAR, per the resolved Open Question in spec.md §9.
type newCommand struct{}

func (newCommand) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("NEW").
		WithCategory(catProgram).
		WithSyntax("NEW").
		WithDescription("Clears the current program and all variables.").
		Build()
}

func (newCommand) Exec(ctx context.Context, m *interp.Machine, args []lang.Arg, pos langerr.Position) error {
	if interp.ArgCount(args) != 0 {
		return langerr.New(langerr.Argument, pos, "NEW takes no arguments")
	}
	m.Source = ""
	m.Clear()
	return nil
}

// runCommand implements RUN [name$]: with no argument, re-runs the
// currently loaded program text; with one, it loads and runs that name.
type runCommand struct{}

func (runCommand) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("RUN").
		WithCategory(catProgram).
		WithSyntax("RUN [name$]").
		WithDescription("Runs the current program, or loads and runs name$.").
		Build()
}

func (runCommand) Exec(ctx context.Context, m *interp.Machine, args []lang.Arg, pos langerr.Position) error {
	src := m.Source
	if interp.ArgCount(args) == 1 {
		store, err := requireStore(m, pos, "RUN")
		if err != nil {
			return err
		}
		name, err := interp.RequireString(ctx, m, args, 0, "name", pos)
		if err != nil {
			return err
		}
		text, err := store.Get(ctx, canonicalStoreName(name))
		if err != nil {
			return err
		}
		src = text
		m.Source = text
	} else if interp.ArgCount(args) != 0 {
		return langerr.New(langerr.Argument, pos, "RUN takes at most one argument")
	}
	if src == "" {
		return langerr.New(langerr.Runtime, pos, "no program loaded")
	}
	return m.Run(ctx, src)
}

// saveCommand implements SAVE "name": persists the current program text.
type saveCommand struct{}

func (saveCommand) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("SAVE").
		WithCategory(catProgram).
		WithSyntax("SAVE name$").
		WithDescription("Saves the current program under name$.").
		Build()
}

func (saveCommand) Exec(ctx context.Context, m *interp.Machine, args []lang.Arg, pos langerr.Position) error {
	store, err := requireStore(m, pos, "SAVE")
	if err != nil {
		return err
	}
	name, err := interp.RequireString(ctx, m, args, 0, "name", pos)
	if err != nil {
		return err
	}
	if m.Source == "" {
		return langerr.New(langerr.Runtime, pos, "no program to save")
	}
	canonical := canonicalStoreName(name)
	logger.DebugLog(logger.AreaStore, "SAVE %s (%d bytes)", canonical, len(m.Source))
	return store.Put(ctx, canonical, m.Source)
}

// editCommand implements EDIT: hands the current program text to the
// host's Editor and replaces it with whatever comes back.
type editCommand struct{}

func (editCommand) Metadata() interp.CallableMetadata {
	return interp.NewCallableMetadataBuilder("EDIT").
		WithCategory(catProgram).
		WithSyntax("EDIT").
		WithDescription("Opens the current program in the host's editor.").
		Build()
}

func (editCommand) Exec(ctx context.Context, m *interp.Machine, args []lang.Arg, pos langerr.Position) error {
	if m.Host.Editor == nil {
		return langerr.New(langerr.IO, pos, "no editor configured").WithCommand("EDIT")
	}
	if interp.ArgCount(args) != 0 {
		return langerr.New(langerr.Argument, pos, "EDIT takes no arguments")
	}
	text, err := m.Host.Editor.Edit(ctx, m.Source)
	if err != nil {
		return err
	}
	if _, err := lang.NewParser(lang.NewLexer(text)).Parse(); err != nil {
		return err
	}
	m.Source = text
	return nil
}

func registerProgram(reg *interp.Registry) {
	reg.RegisterCommand(delCommand{})
	reg.RegisterCommand(dirCommand{})
	reg.RegisterCommand(loadCommand{})
	reg.RegisterCommand(newCommand{})
	reg.RegisterCommand(runCommand{})
	reg.RegisterCommand(saveCommand{})
	reg.RegisterCommand(editCommand{})
}
