// internal/ws/hub.go
// WebSocket hub manages client connections and message broadcasting
// for schedule-generation and round-toggle events.

package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains active websocket connections and broadcasts messages.
type Hub struct {
	// Registered clients by schedule ID.
	schedules map[string]map[*Client]bool

	// Registered clients by organizer ID.
	organizers map[string]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message

	logger *log.Logger
	mu     sync.RWMutex
}

// Message represents a WebSocket message.
type Message struct {
	Type        string      `json:"type"`
	ScheduleID  string      `json:"schedule_id,omitempty"`
	OrganizerID string      `json:"organizer_id,omitempty"`
	Data        interface{} `json:"data"`
}

// NewHub creates a new WebSocket hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		schedules:  make(map[string]map[*Client]bool),
		organizers: make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		logger:     logger,
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.organizerID != "" {
		if existing, exists := h.organizers[client.organizerID]; exists {
			existing.close()
			h.removeClient(existing)
		}
		h.organizers[client.organizerID] = client
	}

	for _, scheduleID := range client.schedules {
		if h.schedules[scheduleID] == nil {
			h.schedules[scheduleID] = make(map[*Client]bool)
		}
		h.schedules[scheduleID][client] = true
	}

	h.logger.Printf("Client registered: %s (schedules: %v)", client.organizerID, client.schedules)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeClient(client)
	client.close()

	h.logger.Printf("Client unregistered: %s", client.organizerID)
}

func (h *Hub) removeClient(client *Client) {
	if client.organizerID != "" {
		delete(h.organizers, client.organizerID)
	}

	for _, scheduleID := range client.schedules {
		if clients, exists := h.schedules[scheduleID]; exists {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.schedules, scheduleID)
			}
		}
	}
}

func (h *Hub) broadcastMessage(message *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Printf("Failed to marshal message: %v", err)
		return
	}

	if message.ScheduleID != "" {
		if clients, exists := h.schedules[message.ScheduleID]; exists {
			for client := range clients {
				select {
				case client.send <- data:
				default:
					h.removeClient(client)
					client.close()
				}
			}
		}
	}

	if message.OrganizerID != "" {
		if client, exists := h.organizers[message.OrganizerID]; exists {
			select {
			case client.send <- data:
			default:
				h.removeClient(client)
				client.close()
			}
		}
	}
}

// BroadcastScheduleUpdate broadcasts an update to everyone subscribed
// to a schedule (schedule.generated, round.toggled).
func (h *Hub) BroadcastScheduleUpdate(scheduleID, updateType string, data interface{}) {
	h.broadcast <- &Message{Type: updateType, ScheduleID: scheduleID, Data: data}
}

// SubscribeToSchedule subscribes a client to schedule updates.
func (h *Hub) SubscribeToSchedule(client *Client, scheduleID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.schedules = append(client.schedules, scheduleID)

	if h.schedules[scheduleID] == nil {
		h.schedules[scheduleID] = make(map[*Client]bool)
	}
	h.schedules[scheduleID][client] = true

	h.logger.Printf("Client %s subscribed to schedule %s", client.organizerID, scheduleID)
}

// UnsubscribeFromSchedule unsubscribes a client from schedule updates.
func (h *Hub) UnsubscribeFromSchedule(client *Client, scheduleID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, id := range client.schedules {
		if id == scheduleID {
			client.schedules = append(client.schedules[:i], client.schedules[i+1:]...)
			break
		}
	}

	if clients, exists := h.schedules[scheduleID]; exists {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.schedules, scheduleID)
		}
	}

	h.logger.Printf("Client %s unsubscribed from schedule %s", client.organizerID, scheduleID)
}
