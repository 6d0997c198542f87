package realtime

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	hub *Hub
}

func NewHandler() *Handler {
	hub := NewHub()
	go hub.Run()

	return &Handler{
		hub: hub,
	}
}

// HandleWebSocket upgrades an authenticated request to a websocket
// connection. Auth middleware must have set user_id and can_approve.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userObjectID, ok := userID.(primitive.ObjectID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	canApprove, _ := c.Get("can_approve")
	canApproveBool, _ := canApprove.(bool)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, userObjectID, canApproveBool)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// PublishBookingEvent pushes a booking status change to the booking owner
// and to the approvers room.
func (h *Handler) PublishBookingEvent(ownerID primitive.ObjectID, eventType string, data map[string]interface{}) {
	message := Message{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}

	h.hub.SendToUser(ownerID, message)
	h.hub.SendToApprovers(message)
}

func (h *Handler) GetHub() *Hub {
	return h.hub
}
