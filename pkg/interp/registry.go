package interp

import (
	"context"
	"sort"
	"strings"

	"github.com/antibyte/endbasic-core/pkg/lang"
	"github.com/antibyte/endbasic-core/pkg/langerr"
	"github.com/antibyte/endbasic-core/pkg/logger"
)

// CallableMetadata describes a builtin for dispatch and for HELP (spec.md
// §4.5, §4.6). Grounded directly on the real EndBASIC CallableMetadata /
// CallableMetadataBuilder found in original_source/std/src/help.rs.
type CallableMetadata struct {
	name        string
	category    string
	syntax      string
	description string
}

// Name is the upper-case builtin name used at call sites.
func (m CallableMetadata) Name() string { return m.name }

// Category groups builtins for the HELP index (spec.md §4.6), e.g.
// "Console", "Program control", "Numerics", "Strings".
func (m CallableMetadata) Category() string { return m.category }

// Syntax is the one-line usage string shown by "HELP <name>".
func (m CallableMetadata) Syntax() string { return m.syntax }

// Description is the paragraph shown by "HELP <name>", with the first
// line treated as the one-line summary shown in the index.
func (m CallableMetadata) Description() string { return m.description }

// Summary returns the first line of the description, for the HELP index.
func (m CallableMetadata) Summary() string {
	if i := strings.IndexByte(m.description, '\n'); i >= 0 {
		return m.description[:i]
	}
	return m.description
}

// CallableMetadataBuilder builds a CallableMetadata fluently, mirroring
// the Rust builder pattern of original_source/std/src/help.rs so that
// registering a builtin reads the same way it does there.
type CallableMetadataBuilder struct {
	m CallableMetadata
}

// NewCallableMetadataBuilder starts building metadata for the builtin
// named name (must already be upper-case).
func NewCallableMetadataBuilder(name string) *CallableMetadataBuilder {
	return &CallableMetadataBuilder{m: CallableMetadata{name: name}}
}

func (b *CallableMetadataBuilder) WithCategory(c string) *CallableMetadataBuilder {
	b.m.category = c
	return b
}

func (b *CallableMetadataBuilder) WithSyntax(s string) *CallableMetadataBuilder {
	b.m.syntax = s
	return b
}

func (b *CallableMetadataBuilder) WithDescription(d string) *CallableMetadataBuilder {
	b.m.description = d
	return b
}

func (b *CallableMetadataBuilder) Build() CallableMetadata {
	return b.m
}

// Command is a builtin invoked as a statement: "NAME arg; arg, arg".
// Args preserves empty slots and separators verbatim, per spec.md §3.
type Command interface {
	Metadata() CallableMetadata
	Exec(ctx context.Context, m *Machine, args []lang.Arg, pos langerr.Position) error
}

// Function is a builtin invoked from expression context:
// "NAME(arg, arg)". All arguments are plain expressions, evaluated
// eagerly before Call runs.
type Function interface {
	Metadata() CallableMetadata
	Call(ctx context.Context, m *Machine, args []lang.Value, pos langerr.Position) (lang.Value, error)
}

// Registry maps builtin names to their Command or Function implementation.
// A name may be registered as at most one of the two, matching spec.md
// §4.4 ("a name is either a command or a function, never both").
type Registry struct {
	commands  map[string]Command
	functions map[string]Function
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		commands:  make(map[string]Command),
		functions: make(map[string]Function),
	}
}

// RegisterCommand adds cmd under its own metadata name. Panics on a
// duplicate name: registration happens once at startup, so a collision
// is a programming error, not a runtime condition.
func (r *Registry) RegisterCommand(cmd Command) {
	name := cmd.Metadata().Name()
	if _, exists := r.commands[name]; exists {
		panic("interp: duplicate command registration: " + name)
	}
	if _, exists := r.functions[name]; exists {
		panic("interp: " + name + " already registered as a function")
	}
	r.commands[name] = cmd
	logger.DebugLog(logger.AreaBuiltin, "registered command %s", name)
}

// RegisterFunction adds fn under its own metadata name.
func (r *Registry) RegisterFunction(fn Function) {
	name := fn.Metadata().Name()
	if _, exists := r.functions[name]; exists {
		panic("interp: duplicate function registration: " + name)
	}
	if _, exists := r.commands[name]; exists {
		panic("interp: " + name + " already registered as a command")
	}
	r.functions[name] = fn
	logger.DebugLog(logger.AreaBuiltin, "registered function %s", name)
}

func (r *Registry) Command(name string) (Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

func (r *Registry) Function(name string) (Function, bool) {
	f, ok := r.functions[name]
	return f, ok
}

// IsCallable reports whether name is registered as either a command or a
// function.
func (r *Registry) IsCallable(name string) bool {
	_, c := r.commands[name]
	_, f := r.functions[name]
	return c || f
}

// Metadata returns the combined, name-sorted metadata of every
// registered builtin, for the "HELP" index (spec.md §4.6).
func (r *Registry) Metadata() []CallableMetadata {
	all := make([]CallableMetadata, 0, len(r.commands)+len(r.functions))
	for _, c := range r.commands {
		all = append(all, c.Metadata())
	}
	for _, f := range r.functions {
		all = append(all, f.Metadata())
	}
	sort.Slice(all, func(i, j int) bool { return all[i].name < all[j].name })
	return all
}
