package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFSStoreSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	s := NewFSStore(filepath.Join(dir, "nested"))
	ctx := context.Background()

	if err := s.Save(ctx, "board", []byte(`{"state":{}}`)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := s.Load(ctx, "board")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if string(got) != `{"state":{}}` {
		t.Fatalf("unexpected payload %s", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "nested", "board.json")); err != nil {
		t.Fatalf("expected slot file to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "nested", "board.json.tmp")); err == nil {
		t.Fatalf("expected temp file to be renamed away")
	}
}

func TestFSStoreLoadMissing(t *testing.T) {
	s := NewFSStore(t.TempDir())
	if _, err := s.Load(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFSStoreSkipsIdenticalWrite(t *testing.T) {
	dir := t.TempDir()
	s := NewFSStore(dir)
	ctx := context.Background()
	if err := s.Save(ctx, "board", []byte("same")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	path := s.SlotPath("board")
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	if err := s.Save(ctx, "board", []byte("same")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if !info.ModTime().Equal(old) {
		t.Fatalf("expected identical payload not to be rewritten")
	}
}

func TestFSStoreErrors(t *testing.T) {
	s := NewFSStore(t.TempDir())
	ctx := context.Background()
	if _, err := s.Load(ctx, ""); err == nil {
		t.Fatalf("expected error for empty key")
	}
	if err := s.Save(ctx, "../escape", []byte("x")); err == nil {
		t.Fatalf("expected error for path key")
	}
	var nilStore *FSStore
	if _, err := nilStore.Load(ctx, "board"); err == nil {
		t.Fatalf("expected error for nil store")
	}
}

func TestFSStoreWrapsReadErrors(t *testing.T) {
	dir := t.TempDir()
	s := NewFSStore(dir)
	if err := os.MkdirAll(s.SlotPath("board"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	_, err := s.Load(context.Background(), "board")
	opErr, ok := AsOpError(err)
	if !ok {
		t.Fatalf("expected OpError, got %v", err)
	}
	if opErr.Backend != "file" || opErr.Op != "load" {
		t.Fatalf("unexpected op error %+v", opErr)
	}
}
