package services

import (
	"sync"
)

// Event types pushed to connected clients.
const (
	EventChange   = "change"
	EventNavigate = "navigate"
)

// Event represents a real-time update pushed to open sessions. Change events
// describe a collection write; navigate events steer the client to a view.
type Event struct {
	Type       string `json:"type"`
	Collection string `json:"collection,omitempty"`
	Key        string `json:"key,omitempty"`
	Action     string `json:"action,omitempty"`
	View       string `json:"view,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
}

// Hub manages event client connections and broadcasting.
type Hub struct {
	clients map[string]chan Event
	mu      sync.RWMutex
}

// NewHub creates a new event hub instance.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]chan Event),
	}
}

// Subscribe registers a new client and returns a channel for receiving events
func (h *Hub) Subscribe(clientID string) <-chan Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Create buffered channel to prevent blocking
	ch := make(chan Event, 100)
	h.clients[clientID] = ch
	return ch
}

// Unsubscribe removes a client from the hub
func (h *Hub) Unsubscribe(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.clients[clientID]; ok {
		close(ch)
		delete(h.clients, clientID)
	}
}

// Publish broadcasts an event to all connected clients
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.clients {
		// Non-blocking send - drop event if client buffer is full
		select {
		case ch <- event:
		default:
			// Client is slow, skip this event
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// PublishChange broadcasts a collection write to all clients.
func (h *Hub) PublishChange(collection, key, action string) {
	h.Publish(Event{
		Type:       EventChange,
		Collection: collection,
		Key:        key,
		Action:     action,
	})
}

// PublishNavigate broadcasts a view transition to all clients.
func (h *Hub) PublishNavigate(view, projectID string) {
	h.Publish(Event{
		Type:      EventNavigate,
		View:      view,
		ProjectID: projectID,
	})
}
