// Package fsstore implements host.ProgramStore against a plain
// directory of *.BAS files, grounded on the directory-tree shape of the
// teacher's pkg/virtualfs (a root directory plus per-file metadata)
// without virtualfs's in-memory tree or multi-user root indirection,
// which this language core's single-session Store contract has no use
// for.
package fsstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/antibyte/endbasic-core/pkg/host"
	"github.com/antibyte/endbasic-core/pkg/langerr"
)

// Store is a host.ProgramStore rooted at Dir. Names are canonicalized by
// the caller (pkg/builtins); Store itself trusts the name it is given.
type Store struct {
	Dir string
}

// New creates a Store rooted at dir, creating dir if it does not exist.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{Dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.Dir, name)
}

func (s *Store) Put(ctx context.Context, name string, text string) error {
	if err := os.WriteFile(s.path(name), []byte(text), 0o644); err != nil {
		return langerr.New(langerr.IO, langerr.Position{}, "%v", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, name string) (string, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return "", langerr.New(langerr.IO, langerr.Position{}, "no such program %s", name)
	}
	return string(data), nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	if err := os.Remove(s.path(name)); err != nil {
		return langerr.New(langerr.IO, langerr.Position{}, "no such program %s", name)
	}
	return nil
}

func (s *Store) Enumerate(ctx context.Context) ([]host.ProgramInfo, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, langerr.New(langerr.IO, langerr.Position{}, "%v", err)
	}
	var infos []host.ProgramInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToUpper(e.Name()), ".BAS") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, langerr.New(langerr.IO, langerr.Position{}, "%v", err)
		}
		infos = append(infos, host.ProgramInfo{
			Name:    e.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime().Unix(),
		})
	}
	return infos, nil
}
