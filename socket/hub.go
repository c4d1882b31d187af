package socket

import (
	"encoding/json"

	"ownerapi/pkg/logger"
)

const (
	OwnerCreated = "owner_created" // New owner row inserted
	OwnerUpdated = "owner_updated" // Owner row patched
	OwnerDeleted = "owner_deleted" // Owner row removed
)

// Event is one owner lifecycle notification fanned out to every
// connected client. Payload carries the same projection the HTTP
// response does; deletes carry just the id.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type Hub struct {
	clients    map[*Client]bool
	Broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan Event),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Publish hands an event to the hub's event loop.
func (h *Hub) Publish(event Event) {
	h.Broadcast <- event
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true

		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}

		case event := <-h.Broadcast:
			message, err := json.Marshal(event)
			if err != nil {
				logger.Sugar.Errorf("Failed to marshal %s event: %v", event.Type, err)
				continue
			}
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Slow consumer; drop it rather than stall the feed.
					delete(h.clients, client)
					close(client.Send)
				}
			}
		}
	}
}
