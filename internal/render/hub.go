package render

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/rink-scoreboard/internal/logging"
	"github.com/preston-bernstein/rink-scoreboard/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 30 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 512
	sendBuffer     = 16

	messageTypeView = "view"
)

// Message is the frame pushed to websocket clients.
type Message struct {
	Type string `json:"type"`
	View View   `json:"view"`
}

// Hub is a Sink that pushes every view to connected websocket clients. A client receives
// the latest view as soon as it connects. Slow clients whose buffer fills are dropped.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger
	metrics  *metrics.Recorder

	mu      sync.Mutex
	clients map[string]*client
	last    []byte
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// HubOption customizes a Hub.
type HubOption func(*Hub)

// WithAllowedOrigin restricts upgrades to requests carrying the given Origin header.
func WithAllowedOrigin(origin string) HubOption {
	return func(h *Hub) {
		if origin == "" {
			return
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			return r.Header.Get("Origin") == origin
		}
	}
}

// NewHub constructs an empty Hub.
func NewHub(logger *slog.Logger, recorder *metrics.Recorder, opts ...HubOption) *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger:  logger,
		metrics: recorder,
		clients: make(map[string]*client),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Render encodes v once and queues it for every client.
func (h *Hub) Render(v View) {
	msg, err := json.Marshal(Message{Type: messageTypeView, View: v})
	if err != nil {
		logging.Error(h.logger, "encode view failed", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = msg
	for id, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			logging.Warn(h.logger, "dropping slow scoreboard client", logging.FieldClient, id)
			h.removeLocked(id)
		}
	}
	h.metrics.RecordBroadcast(len(h.clients))
}

// ServeHTTP upgrades the request and streams views until the client disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(logging.FromContext(r.Context(), h.logger), "websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	h.register(c)
	logging.Info(h.logger, "scoreboard client connected", logging.FieldClient, c.id)

	go c.writePump()
	c.readPump()

	h.unregister(c.id)
	logging.Info(h.logger, "scoreboard client disconnected", logging.FieldClient, c.id)
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id := range h.clients {
		h.removeLocked(id)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	if h.last != nil {
		c.send <- h.last
	}
}

func (h *Hub) unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(id)
}

func (h *Hub) removeLocked(id string) {
	c, ok := h.clients[id]
	if !ok {
		return
	}
	delete(h.clients, id)
	close(c.send)
}

// readPump discards inbound frames; it exists to process control frames and
// notice disconnects.
func (c *client) readPump() {
	defer c.conn.Close()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
