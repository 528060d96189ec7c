package notifications

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is a status-change frame pushed to dashboard clients.
type Event struct {
	Type     string    `json:"type"` // "report" or "monitoring"
	EntityID string    `json:"entityId"`
	Status   string    `json:"status"`
	At       time.Time `json:"at"`
}

// Hub fans status-change events out to connected WebSocket clients.
type Hub struct {
	logger      *zap.Logger
	upgrader    websocket.Upgrader
	mu          sync.RWMutex
	connections map[string]*connection
	broadcast   chan Event
	stop        chan struct{}
}

type connection struct {
	id   string
	conn *websocket.Conn
	send chan Event
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		connections: make(map[string]*connection),
		broadcast:   make(chan Event, 256),
		stop:        make(chan struct{}),
	}
}

// Run pumps broadcast events to every connection until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case event := <-h.broadcast:
			h.mu.RLock()
			for _, c := range h.connections {
				select {
				case c.send <- event:
				default:
					// slow consumer, drop the frame
				}
			}
			h.mu.RUnlock()
		case <-h.stop:
			h.mu.Lock()
			for id, c := range h.connections {
				close(c.send)
				c.conn.Close()
				delete(h.connections, id)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and closes every client connection.
func (h *Hub) Stop() {
	close(h.stop)
}

// Publish queues an event for broadcast. Safe to call on a nil hub so
// services can run without notifications wired.
func (h *Hub) Publish(event Event) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("notification buffer full, dropping event",
			zap.String("type", event.Type), zap.String("entity_id", event.EntityID))
	}
}

// HandleWS upgrades GET /ws connections and registers them with the hub.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &connection{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan Event, 32),
	}

	h.mu.Lock()
	h.connections[cl.id] = cl
	h.mu.Unlock()

	go h.writePump(cl)
	go h.readPump(cl)
}

func (h *Hub) writePump(c *connection) {
	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			h.unregister(c)
			return
		}
	}
}

// readPump discards inbound frames; it exists to detect client disconnects.
func (h *Hub) readPump(c *connection) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.unregister(c)
			return
		}
	}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c.id]; ok {
		delete(h.connections, c.id)
		close(c.send)
		c.conn.Close()
	}
}
