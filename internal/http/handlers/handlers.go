package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"strings"

	"github.com/preston-bernstein/rink-scoreboard/internal/input"
	"github.com/preston-bernstein/rink-scoreboard/internal/logging"
	"github.com/preston-bernstein/rink-scoreboard/internal/persist"
	"github.com/preston-bernstein/rink-scoreboard/internal/render"
)

const eventsPrefix = "/scoreboard/events/"

// EventResponse is returned after an input event is dispatched.
type EventResponse struct {
	Event   input.Event `json:"event"`
	Applied bool        `json:"applied"`
	View    render.View `json:"view"`
}

// Handler wires HTTP routes to the scoreboard controller.
type Handler struct {
	svc      input.Controller
	logger   *slog.Logger
	statusFn func() persist.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case the service is always ready.
func NewHandler(svc input.Controller, logger *slog.Logger, statusFn func() persist.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// ServeHTTP routes the scoreboard endpoints.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == "/scoreboard":
		h.Scoreboard(w, r)
	case strings.HasPrefix(r.URL.Path, eventsPrefix):
		h.Event(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the persistence slot is healthy.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Scoreboard returns the current view.
func (h *Handler) Scoreboard(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.svc.View(), h.logger)
}

// Event dispatches the named input event. Undo/redo with nothing to revert answer 200
// with applied=false.
func (h *Handler) Event(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, eventsPrefix)
	event, err := input.Parse(name)
	if err != nil || strings.Contains(name, "/") {
		writeError(w, r, nethttp.StatusNotFound, "unknown event", h.logger)
		return
	}

	view, applied, err := input.Dispatch(r.Context(), h.svc, event)
	if errors.Is(err, input.ErrUnknownEvent) {
		writeError(w, r, nethttp.StatusNotFound, "unknown event", h.logger)
		return
	}

	if logger := loggerFromContext(r, h.logger); logger != nil {
		logger.Info("scoreboard event",
			logging.FieldEvent, string(event),
			"applied", applied,
			"period", view.Period,
			"clock", view.Clock,
			"home", view.Home,
			"away", view.Away,
		)
	}
	writeJSON(w, nethttp.StatusOK, EventResponse{Event: event, Applied: applied, View: view}, h.logger)
}
