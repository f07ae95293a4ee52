package testutil

import (
	"bytes"
	"log/slog"

	"github.com/preston-bernstein/rink-scoreboard/internal/logging"
)

// NewBufferLogger returns a text logger writing into a buffer, and the buffer for assertions.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	return newBufferLogger("info")
}

// NewDebugBufferLogger is NewBufferLogger at debug level.
func NewDebugBufferLogger() (*slog.Logger, *bytes.Buffer) {
	return newBufferLogger("debug")
}

func newBufferLogger(level string) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{Level: level, Output: &buf})
	return logger, &buf
}
