// Package sqlstore implements host.ProgramStore against a SQLite
// database, grounded on the teacher's pkg/virtualfs (which likewise
// holds a *sql.DB alongside its in-memory tree for persistence) and
// wired to the teacher's actual driver, modernc.org/sqlite, via the
// standard database/sql interface.
package sqlstore

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/antibyte/endbasic-core/pkg/host"
	"github.com/antibyte/endbasic-core/pkg/langerr"
)

const schema = `
CREATE TABLE IF NOT EXISTS programs (
	name TEXT PRIMARY KEY,
	text TEXT NOT NULL,
	mod_time INTEGER NOT NULL
);`

// Store is a host.ProgramStore backed by a SQLite database file.
type Store struct {
	db    *sql.DB
	clock host.Clock
}

// Open opens (creating if necessary) the SQLite database at path and
// prepares its schema. clock stamps Put's modification times; a nil
// clock stamps zero.
func Open(path string, clock host.Clock) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, clock: clock}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) now() int64 {
	if s.clock == nil {
		return 0
	}
	return s.clock.Now()
}

func (s *Store) Put(ctx context.Context, name string, text string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO programs (name, text, mod_time) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET text = excluded.text, mod_time = excluded.mod_time`,
		name, text, s.now())
	if err != nil {
		return langerr.New(langerr.IO, langerr.Position{}, "%v", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, name string) (string, error) {
	var text string
	err := s.db.QueryRowContext(ctx, `SELECT text FROM programs WHERE name = ?`, name).Scan(&text)
	if err == sql.ErrNoRows {
		return "", langerr.New(langerr.IO, langerr.Position{}, "no such program %s", name)
	}
	if err != nil {
		return "", langerr.New(langerr.IO, langerr.Position{}, "%v", err)
	}
	return text, nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM programs WHERE name = ?`, name)
	if err != nil {
		return langerr.New(langerr.IO, langerr.Position{}, "%v", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return langerr.New(langerr.IO, langerr.Position{}, "%v", err)
	}
	if n == 0 {
		return langerr.New(langerr.IO, langerr.Position{}, "no such program %s", name)
	}
	return nil
}

func (s *Store) Enumerate(ctx context.Context) ([]host.ProgramInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, length(text), mod_time FROM programs ORDER BY name`)
	if err != nil {
		return nil, langerr.New(langerr.IO, langerr.Position{}, "%v", err)
	}
	defer rows.Close()

	var infos []host.ProgramInfo
	for rows.Next() {
		var info host.ProgramInfo
		if err := rows.Scan(&info.Name, &info.Size, &info.ModTime); err != nil {
			return nil, langerr.New(langerr.IO, langerr.Position{}, "%v", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
