package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/antibyte/endbasic-core/pkg/hostutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "programs.db")
	s, err := Open(path, hostutil.FixedClock{T: 99})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutThenGetRoundtrips(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.Put(ctx, "A.BAS", "PRINT 1"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	text, err := s.Get(ctx, "A.BAS")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if text != "PRINT 1" {
		t.Errorf("got %q", text)
	}
}

func TestPutIsUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.Put(ctx, "A.BAS", "PRINT 1"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, "A.BAS", "PRINT 2"); err != nil {
		t.Fatalf("Put (overwrite): %v", err)
	}
	text, err := s.Get(ctx, "A.BAS")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if text != "PRINT 2" {
		t.Errorf("expected the overwritten text, got %q", text)
	}
}

func TestGetMissingNameIsAnError(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get(context.Background(), "NOPE.BAS"); err == nil {
		t.Fatal("expected an error for a missing program")
	}
}

func TestDeleteMissingNameIsAnError(t *testing.T) {
	s := openTestStore(t)
	if err := s.Delete(context.Background(), "NOPE.BAS"); err == nil {
		t.Fatal("expected an error for a missing program")
	}
}

func TestEnumerateOrdersByName(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	s.Put(ctx, "B.BAS", "y")
	s.Put(ctx, "A.BAS", "xx")
	infos, err := s.Enumerate(ctx)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(infos) != 2 || infos[0].Name != "A.BAS" || infos[1].Name != "B.BAS" {
		t.Fatalf("expected [A.BAS, B.BAS] in order, got %+v", infos)
	}
	if infos[0].ModTime != 99 {
		t.Errorf("expected ModTime 99, got %d", infos[0].ModTime)
	}
}
