package interp

import (
	"github.com/antibyte/endbasic-core/pkg/lang"
	"github.com/antibyte/endbasic-core/pkg/langerr"
)

// SymTab is the flat, case-insensitive variable table of a running
// program. EndBASIC has no block scoping: a DIM inside a FOR/IF body is
// visible for the remainder of the program, matching the teacher's
// single flat pkg/tinybasic variable map.
type SymTab struct {
	vars map[string]lang.Value
}

// NewSymTab creates an empty symbol table.
func NewSymTab() *SymTab {
	return &SymTab{vars: make(map[string]lang.Value)}
}

// Declare introduces name at type t, set to its zero value, per DIM
// (spec.md §4.2). Redeclaring an existing name is a name error.
func (s *SymTab) Declare(name string, t lang.VarType, pos langerr.Position) error {
	if _, exists := s.vars[name]; exists {
		return langerr.New(langerr.Name, pos, "variable %s is already defined", name)
	}
	s.vars[name] = lang.Zero(t)
	return nil
}

// Get resolves ref against the table. An Auto-typed reference matches
// the variable under its bare name regardless of its declared type; an
// annotated reference additionally requires the declared type to match
// the sigil, per spec.md §3.
func (s *SymTab) Get(ref lang.VarRef, pos langerr.Position) (lang.Value, error) {
	v, ok := s.vars[ref.Name]
	if !ok {
		return lang.Value{}, langerr.New(langerr.Name, pos, "undefined variable %s", ref.Name)
	}
	if ref.Type != lang.Auto && ref.Type != v.Type {
		return lang.Value{}, langerr.New(langerr.Type, pos, "variable %s is %s, not %s", ref.Name, v.Type, ref.Type)
	}
	return v, nil
}

// Set assigns val to ref. If the variable does not exist yet, an
// assignment implicitly declares it (spec.md §4.2, "assignment to an
// undeclared name defines it"), taking its type from val; the ref's own
// annotation, if present, must then agree with val's type. If it
// already exists, val's type must match the existing declared type
// exactly — assignment never changes a variable's type.
func (s *SymTab) Set(ref lang.VarRef, val lang.Value, pos langerr.Position) error {
	if ref.Type != lang.Auto && ref.Type != val.Type {
		return langerr.New(langerr.Type, pos, "cannot assign %s to %s variable %s", val.Type, ref.Type, ref.Name)
	}
	existing, ok := s.vars[ref.Name]
	if !ok {
		s.vars[ref.Name] = val
		return nil
	}
	if existing.Type != val.Type {
		return langerr.New(langerr.Type, pos, "cannot assign %s to %s variable %s", val.Type, existing.Type, ref.Name)
	}
	s.vars[ref.Name] = val
	return nil
}

// LookupType reports the declared type of an existing variable named
// name, or ok=false if it is not yet declared.
func (s *SymTab) LookupType(name string) (t lang.VarType, ok bool) {
	v, exists := s.vars[name]
	if !exists {
		return lang.Auto, false
	}
	return v.Type, true
}

// Clear empties the table, per the CLEAR command (spec.md §4.5).
func (s *SymTab) Clear() {
	s.vars = make(map[string]lang.Value)
}

// Names returns the declared variable names, for builtins like HELP or
// an eventual VARS listing. Order is unspecified.
func (s *SymTab) Names() []string {
	names := make([]string, 0, len(s.vars))
	for n := range s.vars {
		names = append(names, n)
	}
	return names
}
