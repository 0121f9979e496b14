// handlers/websocket.go - chat fan-out socket
package handlers

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Event is the envelope pushed to websocket subscribers.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub tracks connected websocket clients. Messages and typing signals are
// fanned out to every client; there is no per-conversation subscription.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

func (h *Hub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// Broadcast pushes an event to every connected client. Write failures drop
// the client; its read loop will clean up.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if err := c.WriteJSON(ev); err != nil {
			delete(h.clients, c)
		}
	}
}

// ChatSocket handles one websocket client. Inbound frames may carry typing
// events; messages themselves go through the REST endpoint and are only
// fanned out here.
func (h *Handler) ChatSocket(c *websocket.Conn) {
	h.hub.add(c)
	defer func() {
		h.hub.remove(c)
		c.Close()
	}()

	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			return
		}

		var ev struct {
			Type    string `json:"type"`
			Payload struct {
				ConversationID string `json:"conversation_id"`
				UserID         string `json:"user_id"`
				IsTyping       bool   `json:"is_typing"`
			} `json:"payload"`
		}
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Printf("ws: dropping malformed frame: %v", err)
			continue
		}

		if ev.Type == "typing" && ev.Payload.ConversationID != "" && ev.Payload.UserID != "" {
			h.store.Chat.SetTypingUser(ev.Payload.ConversationID, ev.Payload.UserID, ev.Payload.IsTyping)
			h.hub.Broadcast(Event{Type: "typing", Payload: ev.Payload})
		}
	}
}
