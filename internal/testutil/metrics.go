package testutil

import (
	"context"
	"net/http"
	"testing"

	"github.com/preston-bernstein/rink-scoreboard/internal/metrics"
)

// NewRecorderWithShutdown returns a recorder and a no-op shutdown to simplify tests.
func NewRecorderWithShutdown() (*metrics.Recorder, func(context.Context) error) {
	return metrics.NewRecorder(), func(context.Context) error { return nil }
}

// NewPrometheusRecorder returns a recorder exporting to a private Prometheus registry and
// the scrape handler for it. The meter provider is shut down with the test.
func NewPrometheusRecorder(t *testing.T) (*metrics.Recorder, http.Handler) {
	t.Helper()
	rec, handler, shutdown, err := metrics.Setup(context.Background(), metrics.TelemetryConfig{
		Enabled:     true,
		ServiceName: "rink-scoreboard-test",
	})
	if err != nil {
		t.Fatalf("metrics setup: %v", err)
	}
	t.Cleanup(func() { _ = shutdown(context.Background()) })
	return rec, handler
}
