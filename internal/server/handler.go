package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/soar/GamepadBridge/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local use
	},
}

func handleWebSocket(h *hub.Hub, b *hub.Broadcaster, haptics hub.HapticTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}

		client := hub.NewClient(h, conn)
		h.Register(client)

		// Send current hot-plug status to the new client
		b.SendInitialState(client)

		go client.WritePump()
		go client.ReadPump(haptics)
	}
}
