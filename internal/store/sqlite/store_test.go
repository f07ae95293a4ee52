package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/rink-scoreboard/internal/store"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scoreboard.db")
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestStoreSaveAndLoad(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Load(ctx, "board"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Save(ctx, "board", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, "board", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := s.Load(ctx, "board")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Fatalf("unexpected payload %s", got)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	s, path := openTestStore(t)
	if err := s.Save(context.Background(), "board", []byte("kept")); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = s.Close()

	reopened, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Load(context.Background(), "board")
	if err != nil || string(got) != "kept" {
		t.Fatalf("expected payload to survive reopen, got %q err=%v", got, err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestStoreRejectsInvalidKey(t *testing.T) {
	s, _ := openTestStore(t)
	if err := s.Save(context.Background(), "a/b", nil); err == nil {
		t.Fatalf("expected invalid key error")
	}
}

func TestExtractUp(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (x INT);\n-- +migrate Down\nDROP TABLE a;\n"
	got := extractUp(content)
	if got != "\nCREATE TABLE a (x INT);\n" {
		t.Fatalf("unexpected up section %q", got)
	}
	if extractUp("SELECT 1;") != "SELECT 1;" {
		t.Fatalf("expected plain content returned as is")
	}
}
