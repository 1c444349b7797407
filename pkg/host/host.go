// Package host declares the narrow service contracts (spec.md §6.2)
// through which the language core reaches the outside world. Nothing in
// pkg/lang or pkg/interp imports an implementation directly: builtins in
// pkg/builtins receive a Host and talk only to these interfaces, the way
// the teacher's pkg/tinybasic talks to its Console/FileSystem interfaces
// rather than to *os.File or a websocket.Conn directly.
package host

import (
	"context"
	"io"
)

// Console is the interactive terminal a running program writes to and
// reads from (spec.md §6.2, §4.5 CLS/COLOR/LOCATE/PRINT/INPUT).
type Console interface {
	// Print writes s without a trailing newline.
	Print(s string) error
	// Println writes s followed by a newline.
	Println(s string) error
	// Clear erases the console, per CLS.
	Clear() error
	// SetColor sets the foreground/background color indices; a negative
	// value leaves that channel unchanged, matching COLOR's optional,
	// independently-omittable fg/bg arguments.
	SetColor(fg, bg int) error
	// Locate moves the cursor to (row, col), 0-based, per LOCATE.
	Locate(row, col int) error
	// ReadLine blocks for one line of input, per INPUT. It must return
	// ctx.Err() promptly if ctx is cancelled, so INPUT participates in
	// the suspension model of spec.md §5.
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// ProgramInfo is the Store metadata exposed by DIR: a canonical stored
// name plus its size and modification time, per spec.md §4.5 DIR and the
// enumerate() contract of the real EndBASIC Store.
type ProgramInfo struct {
	Name    string
	Size    int64
	ModTime int64 // Unix seconds
}

// ProgramStore is where SAVE, LOAD, DEL, and DIR persist and enumerate
// named program texts (spec.md §6.2).
type ProgramStore interface {
	// Put stores text under name, stamping a fresh modification time.
	Put(ctx context.Context, name string, text string) error
	// Get retrieves the text stored under name.
	Get(ctx context.Context, name string) (string, error)
	// Delete removes name. Deleting a name that does not exist is an
	// I/O error, per spec.md §4.5 DEL.
	Delete(ctx context.Context, name string) error
	// Enumerate lists every stored program, sorted by name.
	Enumerate(ctx context.Context) ([]ProgramInfo, error)
}

// Clock is the wall-clock time source of a host. No builtin reads it
// directly; the memstore and sqlstore backends take one to stamp the
// modification times that Put records and DIR shows. Kept as a narrow
// interface so tests can supply a fixed clock instead of time.Now, per
// spec.md §6.2.
type Clock interface {
	Now() int64 // Unix seconds
}

// EntropySource supplies the seed consumed by an unseeded RANDOMIZE, per
// spec.md §5 ("deterministic only once seeded explicitly; otherwise seeded from host entropy"). It never feeds the
// PRNG's step function directly — only its initial seed — so a fixed
// EntropySource plus an explicit RANDOMIZE still reproduces identical
// sequences across runs.
type EntropySource interface {
	Seed() int64
}

// Editor is the line/full-screen editor invoked by EDIT (spec.md §4.5).
// It is given the current program text and returns the edited text, or
// an error if the user aborted without saving.
type Editor interface {
	Edit(ctx context.Context, initial string) (string, error)
}

// Logger is the narrow sink builtins and host adapters write
// diagnostic lines to; satisfied by pkg/logger's area-tagged logger.
type Logger interface {
	io.Writer
}
