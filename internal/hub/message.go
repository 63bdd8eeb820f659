package hub

import (
	"time"

	"github.com/soar/GamepadBridge/internal/gamepad"
)

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string               `json:"type"`      // "gamepad_status" or "gamepad_button"
	Seq       int64                `json:"seq"`       // Sequence number for ordering
	Timestamp int64                `json:"timestamp"` // Unix timestamp in milliseconds
	Status    *gamepad.StatusEvent `json:"status,omitempty"`
	Button    *gamepad.ButtonEvent `json:"button,omitempty"`
}

// NewStatusMessage wraps a hot-plug notification for delivery.
func NewStatusMessage(seq int64, ev gamepad.StatusEvent) *WSMessage {
	return &WSMessage{
		Type:      "gamepad_status",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Status:    &ev,
	}
}

// NewButtonMessage wraps a normalized button press for delivery.
func NewButtonMessage(seq int64, ev gamepad.ButtonEvent) *WSMessage {
	return &WSMessage{
		Type:      "gamepad_button",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Button:    &ev,
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type       string  `json:"type"`
	Strength   float64 `json:"strength,omitempty"`
	DurationMS uint32  `json:"durationMs,omitempty"`
}
