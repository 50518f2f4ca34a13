package realtime

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// RequireUpgrade rejects plain HTTP requests on websocket routes.
func RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve streams the caller's task events. The route must run RequireAuth first.
func (h *Hub) Serve(c *websocket.Conn) {
	userID, ok := c.Locals("accountId").(uuid.UUID)
	if !ok {
		_ = c.Close()
		return
	}

	client := NewClient(userID)
	h.RegisterClient(client)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.log.WithError(err).WithField("client", client.ID).Debug("websocket write failed")
				return
			}
		}
	}()

	// Reads only keep the connection alive; clients send nothing meaningful.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
	h.UnregisterClient(client)
	<-done
}
