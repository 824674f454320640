package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Connect upgrades to a websocket and parks the connection in the hub
// until the client goes away. The server only pushes; inbound frames
// are drained and discarded.
func Connect(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := &services.WSClient{UserID: userID, Conn: conn}
	hub.Register(client)
	defer hub.Unregister(client)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
