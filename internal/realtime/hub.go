// internal/realtime/hub.go
package realtime

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event is the wire format pushed to connected clients.
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub maintains the active websocket connections and fans catalog and
// booking events out to them. Clients filter events on their side, so
// the hub stays a plain broadcaster.
type Hub struct {
	clients    map[int64]*Client
	clientsMux sync.RWMutex

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		clients:    make(map[int64]*Client),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastToAll(message)

		case <-h.ctx.Done():
			h.cleanup()
			return
		}
	}
}

// Publish broadcasts an event to every connected client. It satisfies
// the publisher interfaces of the listings and bookings services.
func (h *Hub) Publish(event string, data interface{}) {
	payload, err := json.Marshal(Event{
		Type:      event,
		Data:      data,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Printf("⚠️ Failed to marshal %s event: %v", event, err)
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		log.Printf("⚠️ Dropping %s event: broadcast buffer full", event)
	}
}

func (h *Hub) Shutdown() {
	h.cancel()
}

func (h *Hub) registerClient(client *Client) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	// One connection per user
	if old, exists := h.clients[client.userID]; exists {
		old.close()
	}

	h.clients[client.userID] = client
	log.Printf("🔌 User %d connected. Total clients: %d", client.userID, len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	if current, exists := h.clients[client.userID]; exists && current == client {
		client.close()
		delete(h.clients, client.userID)
		log.Printf("🔌 User %d disconnected. Total clients: %d", client.userID, len(h.clients))
	}
}

func (h *Hub) broadcastToAll(message []byte) {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()

	for _, client := range h.clients {
		select {
		case client.send <- message:
		default:
			// Slow consumer, skip this event for them
		}
	}
}

func (h *Hub) cleanup() {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	for _, client := range h.clients {
		client.close()
	}
	h.clients = make(map[int64]*Client)
}
