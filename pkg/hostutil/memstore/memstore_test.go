package memstore

import (
	"context"
	"testing"

	"github.com/antibyte/endbasic-core/pkg/hostutil"
)

func TestPutThenGetRoundtrips(t *testing.T) {
	s := New(hostutil.FixedClock{T: 100})
	ctx := context.Background()
	if err := s.Put(ctx, "A.BAS", "PRINT 1"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	text, err := s.Get(ctx, "A.BAS")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if text != "PRINT 1" {
		t.Errorf("expected PRINT 1, got %q", text)
	}
}

func TestGetMissingNameIsAnError(t *testing.T) {
	s := New(nil)
	if _, err := s.Get(context.Background(), "NOPE.BAS"); err == nil {
		t.Fatal("expected an error for a missing program")
	}
}

func TestDeleteMissingNameIsAnError(t *testing.T) {
	s := New(nil)
	if err := s.Delete(context.Background(), "NOPE.BAS"); err == nil {
		t.Fatal("expected an error for a missing program")
	}
}

func TestEnumerateReportsEverySavedProgram(t *testing.T) {
	s := New(hostutil.FixedClock{T: 5})
	ctx := context.Background()
	s.Put(ctx, "A.BAS", "x")
	s.Put(ctx, "B.BAS", "yy")
	infos, err := s.Enumerate(ctx)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(infos))
	}
	for _, info := range infos {
		if info.ModTime != 5 {
			t.Errorf("expected ModTime 5, got %d", info.ModTime)
		}
	}
}

func TestDeleteThenGetFails(t *testing.T) {
	s := New(nil)
	ctx := context.Background()
	s.Put(ctx, "A.BAS", "x")
	if err := s.Delete(ctx, "A.BAS"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "A.BAS"); err == nil {
		t.Fatal("expected Get to fail after Delete")
	}
}
