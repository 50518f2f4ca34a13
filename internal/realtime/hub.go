package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Client struct {
	ID     string
	UserID uuid.UUID
	Send   chan []byte
}

// Hub tracks the websocket clients of every connected account on this instance.
type Hub struct {
	clients map[string]*Client
	mu      sync.RWMutex
	log     logrus.FieldLogger
}

func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		log:     log,
	}
}

func NewClient(userID uuid.UUID) *Client {
	return &Client{
		ID:     uuid.NewString(),
		UserID: userID,
		Send:   make(chan []byte, 256),
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
	h.log.WithFields(logrus.Fields{"client": client.ID, "account": client.UserID}).Debug("websocket client registered")
}

func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		close(old.Send)
		h.log.WithField("client", client.ID).Debug("websocket client unregistered")
	}
}

// SendToUser queues payload for every client of userID. Full buffers are skipped.
func (h *Hub) SendToUser(userID uuid.UUID, payload []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, client := range h.clients {
		if client.UserID != userID {
			continue
		}
		select {
		case client.Send <- payload:
			delivered++
		default:
			h.log.WithField("client", client.ID).Warn("websocket send buffer full, dropping event")
		}
	}
	return delivered
}
