// Package websocket pushes listing change events to open browser pages.
package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	sendBufferSize = 64
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	writeWait      = 10 * time.Second
)

// Message is the frame sent to subscribers
type Message struct {
	Channel string      `json:"channel"`
	Event   string      `json:"event"`
	Data    interface{} `json:"data,omitempty"`
}

// Conn is the part of a websocket connection the hub uses
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Client is one listing page connection
type Client struct {
	ID       string
	hub      *Hub
	conn     Conn
	send     chan []byte
	channels map[string]bool
	mu       sync.RWMutex
	closed   bool
	done     chan struct{}
}

// Hub tracks subscribed clients and fans out messages per channel
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	shutdown   chan struct{}
	mu         sync.RWMutex
}

// NewHub creates a hub; call Run to start it
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		shutdown:   make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until Shutdown
func (h *Hub) Run() {
	for {
		select {
		case <-h.shutdown:
			h.mu.Lock()
			for client := range h.clients {
				client.closeSend()
				client.conn.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			log.Printf("[WebSocket] Hub shutdown complete")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			h.deliver(message)
		}
	}
}

func (h *Hub) deliver(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WebSocket] Failed to marshal message: %v", err)
		return
	}

	var slow []*Client
	h.mu.RLock()
	for client := range h.clients {
		if !client.Subscribed(message.Channel) {
			continue
		}
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		log.Printf("[WebSocket] Dropping slow client %s", client.ID)
		h.remove(client)
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.closeSend()
	}
}

// Broadcast queues an event for every client subscribed to channel.
// It never blocks; events are dropped when the queue is full.
func (h *Hub) Broadcast(channel string, event string, data interface{}) {
	select {
	case h.broadcast <- &Message{Channel: channel, Event: event, Data: data}:
	default:
		log.Printf("[WebSocket] Broadcast queue full, dropping %s/%s", channel, event)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown stops Run and closes every client
func (h *Hub) Shutdown() {
	close(h.shutdown)
}

// NewClient wraps conn for hub
func NewClient(hub *Hub, conn Conn) *Client {
	return &Client{
		ID:       uuid.New().String(),
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		channels: make(map[string]bool),
		done:     make(chan struct{}),
	}
}

// Subscribed reports whether the client listens on channel
func (c *Client) Subscribed(channel string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.channels[channel]
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		close(c.send)
		c.closed = true
	}
}

// handle applies a subscribe or unsubscribe request
func (c *Client) handle(raw []byte) {
	var req struct {
		Action   string   `json:"action"`
		Channels []string `json:"channels"`
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	switch req.Action {
	case "subscribe":
		for _, ch := range req.Channels {
			c.channels[ch] = true
		}
	case "unsubscribe":
		for _, ch := range req.Channels {
			delete(c.channels, ch)
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.shutdown:
		}
		c.conn.Close()
		close(c.done)
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		c.handle(message)
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
				log.Printf("[WebSocket] Write to %s failed: %v", c.ID, err)
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

// Start registers the client and begins its read and write loops
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
	select {
	case c.hub.register <- c:
	case <-c.hub.shutdown:
	}
}

// Wait blocks until the connection is closed
func (c *Client) Wait() {
	<-c.done
}
