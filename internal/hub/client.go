package hub

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// HapticTrigger is the caller-facing boundary into the poll loop's haptic
// queue. Rumble returns false when the request was dropped.
type HapticTrigger interface {
	Rumble(strength float64, duration time.Duration) bool
}

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer func() {
		c.conn.Close()
	}()

	for msg := range c.send {
		err := c.conn.WriteMessage(websocket.TextMessage, msg)
		if err != nil {
			break
		}
	}
}

// ReadPump reads messages from the WebSocket and handles client commands.
// Haptic requests are clamped here, before they cross into the poll loop.
func (c *Client) ReadPump(haptics HapticTrigger) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Error parsing client message: %v", err)
			continue
		}

		switch clientMsg.Type {
		case "haptic":
			strength := clampStrength(clientMsg.Strength)
			duration := time.Duration(clientMsg.DurationMS) * time.Millisecond
			if !haptics.Rumble(strength, duration) {
				log.Printf("Haptic request dropped (queue full)")
			}
		}
	}
}

// clampStrength limits a client-supplied strength to [0,1].
func clampStrength(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
