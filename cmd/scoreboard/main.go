package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	appscoreboard "github.com/preston-bernstein/rink-scoreboard/internal/app/scoreboard"
	"github.com/preston-bernstein/rink-scoreboard/internal/config"
	"github.com/preston-bernstein/rink-scoreboard/internal/logging"
	"github.com/preston-bernstein/rink-scoreboard/internal/persist"
	"github.com/preston-bernstein/rink-scoreboard/internal/server"
	"github.com/preston-bernstein/rink-scoreboard/internal/store"
	"github.com/preston-bernstein/rink-scoreboard/internal/tui"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SCOREBOARD_RUN") == "1" {
		return
	}
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	out, closeLog, err := logOutput(cfg.Log.File)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "rink-scoreboard-tui",
		Version: appVersion,
		Output:  out,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := server.OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		logging.Warn(logger, "store unavailable, keeping scoreboard in memory", "error", err)
		st = store.NewMemoryStore()
	}
	defer st.Close()

	rules := cfg.Scoreboard.Rules()
	adapter := persist.NewAdapter(st, persist.Options{
		Key:          cfg.Store.Key,
		Rules:        rules,
		HistoryLimit: cfg.Scoreboard.HistoryLimit,
		Timeout:      cfg.Store.Timeout,
	}, logger, nil)
	session := appscoreboard.NewSession(rules, cfg.Scoreboard.HistoryLimit)
	appscoreboard.Restore(ctx, session, adapter)

	sink := tui.NewSink()
	svc := appscoreboard.NewService(session, sink, adapter, logger, nil)
	return tui.Run(ctx, svc, sink, tui.Options{DoubleTapUndo: cfg.Scoreboard.DoubleTapUndo})
}

// logOutput keeps log lines off the terminal the program draws on.
func logOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
