package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Event types pushed to connected storefront clients.
const (
	TypeCatalogUpdate = "catalog_update"
	TypeOrderUpdate   = "order_update"
)

// Event is a broadcast message describing a catalog or order change.
type Event struct {
	Type    string      `json:"type"`
	Action  string      `json:"action"`
	Payload interface{} `json:"payload,omitempty"`
	Message string      `json:"message,omitempty"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
	}
}

// Publish marshals the event and hands it to the broadcast loop. Safe to
// call on a nil hub, so services can run without a websocket surface.
func (h *Hub) Publish(event Event) {
	if h == nil {
		return
	}
	msg, err := json.Marshal(event)
	if err != nil {
		return
	}
	go func() { h.Broadcast <- msg }()
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Println("storefront client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
