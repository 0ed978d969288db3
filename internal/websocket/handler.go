package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs upgrades a connection into a session viewer and blocks until it
// disconnects. onRegister runs after registration, typically to push the
// initial snapshot.
func ServeWs(hub *Hub, c *websocket.Conn, sessionID uuid.UUID, onRegister func(*Client)) {
	client := &Client{Hub: hub, Conn: c, SessionID: sessionID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	if onRegister != nil {
		onRegister(client)
	}

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
