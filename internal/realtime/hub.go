package realtime

import (
	"encoding/json"
	"sync"
)

// Board event types pushed to connected clients.
const (
	EventTaskCreated    = "task_created"
	EventTaskUpdated    = "task_updated"
	EventTaskMoved      = "task_moved"
	EventTaskDeleted    = "task_deleted"
	EventProjectDeleted = "project_deleted"
)

// Event is a board change notification for one user's clients.
type Event struct {
	Type      string `json:"type"`
	TaskID    uint   `json:"taskId,omitempty"`
	ProjectID uint   `json:"projectId,omitempty"`
}

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active user connections and broadcasts events to them.
type Hub struct {
	mu              sync.RWMutex
	userIDToClients map[uint]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = &Hub{
			userIDToClients: make(map[uint]map[Client]struct{}),
		}
	})
	return hubInstance
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userIDToClients[userID]; !ok {
		h.userIDToClients[userID] = make(map[Client]struct{})
	}
	h.userIDToClients[userID][client] = struct{}{}
}

// Unregister removes a client; if user has no more clients, cleans up map.
func (h *Hub) Unregister(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userIDToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userIDToClients, userID)
		}
	}
}

// Publish marshals the event and sends it to all clients of a user.
func (h *Hub) Publish(userID uint, evt Event) {
	message, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(userID, message)
}

// Broadcast sends a raw message to all clients of a user.
func (h *Hub) Broadcast(userID uint, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.userIDToClients[userID] {
		c.Send(message)
	}
}
