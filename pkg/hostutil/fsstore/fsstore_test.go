package fsstore

import (
	"context"
	"testing"
)

func TestPutGetDeleteRoundtrip(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if err := s.Put(ctx, "HELLO.BAS", "PRINT \"hi\""); err != nil {
		t.Fatalf("Put: %v", err)
	}
	text, err := s.Get(ctx, "HELLO.BAS")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if text != "PRINT \"hi\"" {
		t.Errorf("got %q", text)
	}

	infos, err := s.Enumerate(ctx)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(infos) != 1 || infos[0].Name != "HELLO.BAS" {
		t.Fatalf("unexpected Enumerate result: %+v", infos)
	}

	if err := s.Delete(ctx, "HELLO.BAS"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "HELLO.BAS"); err == nil {
		t.Fatal("expected Get to fail after Delete")
	}
}

func TestEnumerateIgnoresNonBasFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	s.Put(ctx, "KEEP.BAS", "x")
	if err := s.Put(ctx, "README.TXT", "not a program"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	infos, err := s.Enumerate(ctx)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(infos) != 1 || infos[0].Name != "KEEP.BAS" {
		t.Fatalf("expected only KEEP.BAS, got %+v", infos)
	}
}

func TestGetMissingFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.Get(context.Background(), "NOSUCH.BAS"); err == nil {
		t.Fatal("expected an error")
	}
}
