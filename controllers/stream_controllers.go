package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/spokefoods/spoke-backend/events"
	"github.com/spokefoods/spoke-backend/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// OrderStreamHandler upgrades the connection and subscribes it to order
// events. Auth middleware has already stamped the identity.
func OrderStreamHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed: %v", err)
		return
	}

	scope := "user"
	if _, isChef := c.Get("chef_id"); isChef {
		scope = "chef"
	}
	events.RegisterClient(conn, scope)

	// Reader loop only exists to detect the close.
	go func() {
		defer events.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
