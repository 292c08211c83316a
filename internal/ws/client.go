// internal/ws/client.go
// WebSocket client connection handler.

package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client represents a websocket client connection.
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	organizerID string
	schedules   []string
	closeOnce   sync.Once
}

// ClientMessage represents a message sent by a client.
type ClientMessage struct {
	Type   string          `json:"type"`
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// Serve upgrades an HTTP request to a websocket connection and starts
// the client's read/write pumps. organizerID is empty for anonymous,
// optionally-authenticated connections.
func Serve(hub *Hub, organizerID string, w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, 256),
		organizerID: organizerID,
	}

	hub.register <- client

	go client.writePump()
	go client.readPump()

	return nil
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		switch msg.Type {
		case "subscribe":
			c.handleSubscribe(msg)
		case "unsubscribe":
			c.handleUnsubscribe(msg)
		case "ping":
			c.handlePing()
		default:
			log.Printf("Unknown message type: %s", msg.Type)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleSubscribe(msg ClientMessage) {
	var data struct {
		ScheduleID string `json:"schedule_id"`
	}
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		log.Printf("Failed to unmarshal subscribe data: %v", err)
		return
	}
	if data.ScheduleID == "" {
		return
	}

	c.hub.SubscribeToSchedule(c, data.ScheduleID)

	response := Message{Type: "subscribed", Data: map[string]string{"schedule_id": data.ScheduleID}}
	if responseData, err := json.Marshal(response); err == nil {
		c.send <- responseData
	}
}

func (c *Client) handleUnsubscribe(msg ClientMessage) {
	var data struct {
		ScheduleID string `json:"schedule_id"`
	}
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		log.Printf("Failed to unmarshal unsubscribe data: %v", err)
		return
	}
	if data.ScheduleID == "" {
		return
	}

	c.hub.UnsubscribeFromSchedule(c, data.ScheduleID)

	response := Message{Type: "unsubscribed", Data: map[string]string{"schedule_id": data.ScheduleID}}
	if responseData, err := json.Marshal(response); err == nil {
		c.send <- responseData
	}
}

func (c *Client) handlePing() {
	response := Message{Type: "pong", Data: map[string]int64{"timestamp": time.Now().Unix()}}
	if responseData, err := json.Marshal(response); err == nil {
		c.send <- responseData
	}
}

// close is safe to call more than once: a client can be closed by a
// slow-consumer eviction in broadcastMessage or a replacement in
// registerClient, and again by its own readPump teardown (via
// unregisterClient) racing in afterward.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}
