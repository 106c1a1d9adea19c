package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"services-api-server/models"
	"services-api-server/store"
	"services-api-server/types"
)

// ChatFrame is the envelope relayed to every connection of a request
type ChatFrame struct {
	SenderID uint   `json:"sender_id"`
	Message  string `json:"message"`
}

// HistoryFrame is sent once at admission
type HistoryFrame struct {
	History []models.ServiceMessage `json:"history"`
}

// ErrorFrame terminates a connection after delivery
type ErrorFrame struct {
	Error string `json:"error"`
}

// RoomMessage is a payload to fan out to one request's connections
type RoomMessage struct {
	RequestID uint
	Payload   []byte
}

// Hub maintains the per-request connection sets and relays chat messages.
// All room mutation happens in the Run loop; the mutex covers readers.
type Hub struct {
	rooms      map[uint]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *RoomMessage
	store      store.Store
	mu         sync.RWMutex
}

// NewHub creates a new Hub over the given store
func NewHub(st store.Store) *Hub {
	return &Hub{
		rooms:      make(map[uint]map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan *RoomMessage, 256),
		store:      st,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case message := <-h.broadcast:
			h.handleBroadcast(message)
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[client.requestID] == nil {
		h.rooms[client.requestID] = make(map[*Client]bool)
	}
	h.rooms[client.requestID][client] = true
	log.Printf("🔌 Chat client registered: user=%d request=%d", client.userID, client.requestID)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeClient(client)
}

// removeClient drops a client from its room and releases its resources.
// Callers must hold the mutex. Safe to call twice for the same client: only
// the call that finds it in the room closes the send channel.
func (h *Hub) removeClient(client *Client) {
	room, ok := h.rooms[client.requestID]
	if !ok || !room[client] {
		return
	}
	delete(room, client)
	close(client.send)
	client.conn.Close()
	if len(room) == 0 {
		delete(h.rooms, client.requestID)
	}
	log.Printf("🔌 Chat client unregistered: user=%d request=%d", client.userID, client.requestID)
}

func (h *Hub) handleBroadcast(message *RoomMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[message.RequestID]
	for client := range room {
		select {
		case client.send <- message.Payload:
		default:
			// Slow or dead peer: drop it so the rest of the room keeps working
			log.Printf("⚠️ Chat client send buffer full, dropping: user=%d request=%d", client.userID, client.requestID)
			h.removeClient(client)
		}
	}
}

// Connections returns the number of live connections for a request
func (h *Hub) Connections(requestID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[requestID])
}

// relay persists an inbound chat message and fans it out to every connection
// of the request, sender included. The request's status is re-resolved on
// every message: admission-time state is never trusted, because a worker can
// cancel while the chat is open.
func (h *Hub) relay(ctx context.Context, client *Client, text string) {
	request, err := h.store.GetRequest(ctx, client.requestID)
	if err != nil || request.Status != models.RequestStatusAccepted {
		client.sendError(types.CodeChatDisabled)
		client.conn.Close()
		return
	}

	message := models.ServiceMessage{
		ServiceRequestID: client.requestID,
		SenderID:         client.userID,
		Message:          text,
	}
	if err := h.store.CreateMessage(ctx, &message); err != nil {
		log.Printf("❌ Failed to persist chat message: request=%d: %v", client.requestID, err)
		return
	}

	payload, err := json.Marshal(ChatFrame{SenderID: client.userID, Message: text})
	if err != nil {
		return
	}
	h.broadcast <- &RoomMessage{RequestID: client.requestID, Payload: payload}
}
