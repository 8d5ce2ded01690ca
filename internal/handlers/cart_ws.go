package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"scanpay_back_end/internal/cart"
	"scanpay_back_end/internal/middleware"
)

const wsPingInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	// Devices connect from the front-end host.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /api/cart/ws: pushes the cart every time it changes.
func (h *Handler) CartWebSocket(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ cart websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	pubsub := h.Redis.Subscribe(ctx, cart.Channel(sess.ID))
	defer pubsub.Close()
	// Wait for the subscription so no event published right after is lost.
	if _, err := pubsub.Receive(ctx); err != nil {
		log.Printf("❌ cart subscribe %s: %v", sess.ID, err)
		return
	}
	ch := pubsub.Channel()

	if err := conn.WriteJSON(gin.H{"type": "connected", "cart": sess.Cart.View()}); err != nil {
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != cart.EventUpdated && msg.Payload != cart.EventCleared {
				continue
			}
			if err := conn.WriteJSON(gin.H{"type": "cart_" + msg.Payload, "cart": sess.Cart.View()}); err != nil {
				log.Printf("❌ cart websocket write: %v", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
