package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SCOREBOARD_RUN", "1")
	main()
}

func TestLogOutputDiscardsWithoutPath(t *testing.T) {
	out, closeFn, err := logOutput("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeFn()
	if out != io.Discard {
		t.Fatalf("expected io.Discard, got %T", out)
	}
}

func TestLogOutputAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.log")
	out, closeFn, err := logOutput(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := io.WriteString(out, "line\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "line\n" {
		t.Fatalf("expected log line persisted, got %q err=%v", data, err)
	}
}

func TestLogOutputFailsForMissingDir(t *testing.T) {
	if _, _, err := logOutput(filepath.Join(t.TempDir(), "missing", "tui.log")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
