package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// writeWait bounds how long a single slow client can hold up a write.
const writeWait = 10 * time.Second

// StatusHub pushes the recomputed live table status to every connected
// dashboard whenever a reservation mutates.
type StatusHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool

	// notify coalesces mutation signals; the run loop recomputes off the
	// caller's goroutine so a stalled client never delays the mutation path
	notify chan struct{}

	// fetch recomputes the current live status; injected to avoid a
	// dependency cycle with the reservation service
	fetch    func() (any, error)
	upgrader websocket.Upgrader
	logger   *zerolog.Logger
}

func NewStatusHub(fetch func() (any, error), logger *zerolog.Logger) *StatusHub {
	h := &StatusHub{
		clients: make(map[*websocket.Conn]bool),
		notify:  make(chan struct{}, 1),
		fetch:   fetch,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the live status is public, same as the HTTP endpoint
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
	go h.run()
	return h
}

// HandleWS upgrades the connection, sends a snapshot and parks the client
// until it disconnects.
func (h *StatusHub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("ws upgrade failed")
		return
	}

	// snapshot goes out before the client joins the broadcast set, so the
	// two writes can never interleave on one connection
	if status, err := h.fetch(); err == nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(status); err != nil {
			conn.Close()
			return
		}
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	// read pump only to detect close
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// NotifyStatusChanged implements services.StatusNotifier. It only signals
// the run loop: callers often hold a per-date reservation lock, so the
// recompute and the client writes must not run on their goroutine.
func (h *StatusHub) NotifyStatusChanged() {
	select {
	case h.notify <- struct{}{}:
	default:
	}
}

func (h *StatusHub) run() {
	for range h.notify {
		h.broadcast()
	}
}

// broadcast recomputes once and writes to every client, dropping dead
// connections.
func (h *StatusHub) broadcast() {
	h.mu.Lock()
	if len(h.clients) == 0 {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	status, err := h.fetch()
	if err != nil {
		h.logger.Warn().Err(err).Msg("ws status recompute failed")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(status); err != nil {
			h.logger.Debug().Err(err).Msg("ws write error, dropping client")
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *StatusHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}
