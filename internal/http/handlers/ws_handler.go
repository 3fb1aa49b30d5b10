package handlers

import (
	"github.com/Kennyy02/totomotorworx-shop/internal/notify"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// WSHandler bridges the notifier hub onto websocket connections. Each
// connected client gets one frame per delivered publish; a client that
// disconnects (or errors on write) is unsubscribed and forgotten without
// touching anyone else.
type WSHandler struct {
	Hub *notify.Hub
}

// Upgrade gates /ws to real websocket upgrade requests.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		events, cancel := h.Hub.Subscribe()
		defer cancel()

		// Reader goroutine: we ignore inbound frames but need the read loop
		// to notice the peer going away.
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case _, ok := <-events:
				if !ok {
					return
				}
				if err := conn.WriteJSON(map[string]string{"event": "cart-updated"}); err != nil {
					return
				}
			case <-closed:
				return
			}
		}
	})
}
