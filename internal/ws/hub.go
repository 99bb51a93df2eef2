package ws

import (
	"context"
	"encoding/json"
	"sync"

	"go-pos-console/pkg/logger"

	"github.com/gofiber/contrib/websocket"
)

// Event is the JSON message pushed to every connected console.
type Event struct {
	Type    string      `json:"type"`
	Action  string      `json:"action"`
	Data    interface{} `json:"data,omitempty"`
	User    string      `json:"user,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Event types.
const (
	TypeCatalog = "catalog_update"
	TypeOffer   = "offer_update"
	TypeSale    = "sale_update"
	TypeRate    = "rate_update"
	TypeUser    = "user_status_update"
)

// ClientGauge observes the number of connected clients.
type ClientGauge interface {
	IncWSClients()
	DecWSClients()
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex

	log   *logger.Logger
	gauge ClientGauge
	// done is closed when Run returns.
	done chan struct{}
	stop sync.Once
}

func NewHub(log *logger.Logger, gauge ClientGauge) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
		log:        log,
		gauge:      gauge,
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer h.stop.Do(func() { close(h.done) })
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.Clients {
				conn.Close()
				delete(h.Clients, conn)
				h.dec()
			}
			h.mutex.Unlock()
			return

		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.inc()
			h.log.Debug("ws client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
				h.dec()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
					h.dec()
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish encodes ev and queues it without blocking the caller. Events are
// dropped when the queue is full or the hub has stopped.
func (h *Hub) Publish(ev Event) {
	if h == nil {
		return
	}
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.WithError(err).Error("failed to encode ws event")
		return
	}
	select {
	case h.Broadcast <- msg:
	case <-h.done:
	default:
		h.log.WithField("type", ev.Type).Warn("ws broadcast queue full, dropping event")
	}
}

// Join registers conn. It returns false once the hub has stopped.
func (h *Hub) Join(conn *websocket.Conn) bool {
	select {
	case h.Register <- conn:
		return true
	case <-h.done:
		return false
	}
}

// Leave unregisters conn. It does nothing once the hub has stopped.
func (h *Hub) Leave(conn *websocket.Conn) {
	select {
	case h.Unregister <- conn:
	case <-h.done:
	}
}

// Done is closed when Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

func (h *Hub) inc() {
	if h.gauge != nil {
		h.gauge.IncWSClients()
	}
}

func (h *Hub) dec() {
	if h.gauge != nil {
		h.gauge.DecWSClients()
	}
}
