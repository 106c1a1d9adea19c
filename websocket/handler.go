package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"services-api-server/models"
	"services-api-server/store"
	"services-api-server/types"
	"services-api-server/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now, can be restricted later
	},
}

// ChatHandler performs the admission protocol for the per-request chat
// channel and hands admitted connections to the hub.
type ChatHandler struct {
	hub   *Hub
	store store.Store
}

// NewChatHandler creates a chat handler over the given hub and store
func NewChatHandler(hub *Hub, st store.Store) *ChatHandler {
	return &ChatHandler{hub: hub, store: st}
}

// ServeChat upgrades the connection and runs the admission checks:
// valid token, request in accepted status, caller is one of the two
// participants. Failures are reported as a single error frame followed by a
// close; on success the full message history is delivered before the
// connection joins the request's room.
func (h *ChatHandler) ServeChat(c *gin.Context) {
	requestID64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.Failure(types.CodeValidationError, "Invalid service request id"))
		return
	}
	requestID := uint(requestID64)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
		return
	}

	claims, err := utils.VerifyToken(c.Query("token"))
	if err != nil {
		rejectConnection(conn, types.CodeUnauthorized)
		return
	}
	userID := claims.UserID

	ctx := c.Request.Context()
	request, err := h.store.GetRequest(ctx, requestID)
	if err != nil || request.Status != models.RequestStatusAccepted {
		rejectConnection(conn, types.CodeChatDisabled)
		return
	}

	if !request.Participant(userID) {
		rejectConnection(conn, types.CodeForbidden)
		return
	}

	history, err := h.store.ListMessages(ctx, requestID)
	if err != nil {
		log.Printf("❌ Failed to load chat history: request=%d: %v", requestID, err)
		rejectConnection(conn, types.CodeChatDisabled)
		return
	}
	if history == nil {
		history = []models.ServiceMessage{}
	}

	payload, err := json.Marshal(HistoryFrame{History: history})
	if err != nil {
		conn.Close()
		return
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		conn.Close()
		return
	}

	client := NewClient(h.hub, conn, userID, requestID)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// rejectConnection sends one error frame and closes the connection
func rejectConnection(conn *websocket.Conn, code string) {
	payload, err := json.Marshal(ErrorFrame{Error: code})
	if err == nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		conn.WriteMessage(websocket.TextMessage, payload)
	}
	conn.Close()
}
