package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10 // 54 seconds
)

// allEvents subscribes a client to every event
const allEvents int64 = 0

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // UI is served from a local webview
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type Client struct {
	hub  *WebSocketHub
	conn *websocket.Conn
	send chan []byte

	mu         sync.Mutex
	subscribed map[int64]bool
}

func (c *Client) isSubscribed(eventID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subscribed[eventID] || c.subscribed[allEvents]
}

func (c *Client) setSubscribed(eventID int64, on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if on {
		c.subscribed[eventID] = true
	} else {
		delete(c.subscribed, eventID)
	}
}

type WebSocketHub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *WebSocketHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			log.Printf("Client connected (total: %d)", n)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			log.Printf("Client disconnected (total: %d)", n)
		}
	}
}

// BroadcastToEvent sends a JSON message to clients subscribed to eventID
func (h *WebSocketHub) BroadcastToEvent(eventID int64, message any) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for client := range h.clients {
		if !client.isSubscribed(eventID) {
			continue
		}
		select {
		case client.send <- data:
			sent++
		default:
			log.Printf("Client channel full, skipping message")
		}
	}
	log.Printf("WebSocket: sent %d bytes to %d/%d clients for event %d", len(data), sent, len(h.clients), eventID)
}

// BroadcastToAll sends a JSON message to every connected client
func (h *WebSocketHub) BroadcastToAll(message any) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			log.Printf("Client channel full, skipping")
		}
	}
}

func HandleWebSocket(hub *WebSocketHub, c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, 16),
		subscribed: make(map[int64]bool),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// subscription is what clients send to follow an event
type subscription struct {
	Type    string `json:"type"` // subscribe, unsubscribe
	EventID *int64 `json:"event_id"`
}

// readPump handles incoming subscription messages
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg subscription
		if err := json.Unmarshal(message, &msg); err != nil || msg.EventID == nil {
			continue
		}
		switch msg.Type {
		case "subscribe":
			c.setSubscribed(*msg.EventID, true)
			log.Printf("Client subscribed to event %d", *msg.EventID)
		case "unsubscribe":
			c.setSubscribed(*msg.EventID, false)
			log.Printf("Client unsubscribed from event %d", *msg.EventID)
		}
	}
}

// writePump delivers queued messages and keeps the connection alive
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
