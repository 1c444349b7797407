// Package memstore implements host.ProgramStore entirely in memory, for
// tests and for a throwaway REPL session that never persists anything
// to disk.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/antibyte/endbasic-core/pkg/host"
	"github.com/antibyte/endbasic-core/pkg/langerr"
)

type entry struct {
	text    string
	modTime int64
}

// Store is a host.ProgramStore backed by a guarded map. Zero value is
// ready to use.
type Store struct {
	mu    sync.Mutex
	files map[string]entry
	clock host.Clock
}

// New creates an empty Store that stamps modification times from clock.
// A nil clock leaves every entry's ModTime at zero.
func New(clock host.Clock) *Store {
	return &Store{files: make(map[string]entry), clock: clock}
}

func (s *Store) now() int64 {
	if s.clock == nil {
		return 0
	}
	return s.clock.Now()
}

func (s *Store) Put(ctx context.Context, name string, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == nil {
		s.files = make(map[string]entry)
	}
	s.files[name] = entry{text: text, modTime: s.now()}
	return nil
}

func (s *Store) Get(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.files[name]
	if !ok {
		return "", langerr.New(langerr.IO, langerr.Position{}, "no such program %s", name)
	}
	return e.text, nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[name]; !ok {
		return langerr.New(langerr.IO, langerr.Position{}, "no such program %s", name)
	}
	delete(s.files, name)
	return nil
}

func (s *Store) Enumerate(ctx context.Context) ([]host.ProgramInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	infos := make([]host.ProgramInfo, 0, len(s.files))
	for name, e := range s.files {
		infos = append(infos, host.ProgramInfo{Name: name, Size: int64(len(e.text)), ModTime: e.modTime})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}
