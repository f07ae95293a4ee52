package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/rink-scoreboard/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. ws may be nil when live updates are disabled.
func NewRouter(handler *handlers.Handler, ws nethttp.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/scoreboard", handler.Scoreboard)
	mux.HandleFunc("/scoreboard/events/", handler.Event)
	if ws != nil {
		mux.Handle("/scoreboard/ws", ws)
	}
	return mux
}
