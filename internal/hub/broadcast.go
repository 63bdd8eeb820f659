package hub

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/soar/GamepadBridge/internal/gamepad"
)

// Broadcaster listens on the poll loop's outbound channels and fans the
// events out to all WebSocket clients.
type Broadcaster struct {
	hub     *Hub
	status  <-chan gamepad.StatusEvent
	buttons <-chan gamepad.ButtonEvent

	mu         sync.Mutex
	lastStatus gamepad.StatusEvent
	seq        int64
}

func NewBroadcaster(h *Hub, status <-chan gamepad.StatusEvent, buttons <-chan gamepad.ButtonEvent) *Broadcaster {
	return &Broadcaster{
		hub:     h,
		status:  status,
		buttons: buttons,
	}
}

// Run starts the broadcaster loop. Should be run in a goroutine.
func (b *Broadcaster) Run() {
	for {
		select {
		case ev, ok := <-b.status:
			if !ok {
				return
			}
			b.mu.Lock()
			b.lastStatus = ev
			b.seq++
			msg := NewStatusMessage(b.seq, ev)
			b.mu.Unlock()
			b.send(msg)

		case ev, ok := <-b.buttons:
			if !ok {
				return
			}
			b.mu.Lock()
			b.seq++
			msg := NewButtonMessage(b.seq, ev)
			b.mu.Unlock()
			b.send(msg)
		}
	}
}

// SendInitialState sends the most recent hot-plug status to a newly
// connected client, so it knows whether a controller is attached.
func (b *Broadcaster) SendInitialState(c *Client) {
	b.mu.Lock()
	b.seq++
	msg := NewStatusMessage(b.seq, b.lastStatus)
	b.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling initial state: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (b *Broadcaster) send(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}
	b.hub.Broadcast(data)
}
