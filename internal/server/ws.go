package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/bjarke-xyz/applications-api/internal/domain"
)

const clientBufferSize = 16

type ClientID string // UUID

type feedClient struct {
	ID       ClientID
	Conn     *websocket.Conn
	messages chan []byte
}

// feedHub fans created applications out to every connected feed client.
// All client bookkeeping happens on the Listen goroutine.
type feedHub struct {
	logger *slog.Logger

	// Events are pushed to this channel by the create handler
	notifier chan []byte

	newClients     chan *feedClient
	closingClients chan *feedClient

	clients map[ClientID]*feedClient
	done    chan struct{}
}

func newFeedHub(logger *slog.Logger) *feedHub {
	return &feedHub{
		logger:         logger,
		notifier:       make(chan []byte, clientBufferSize),
		newClients:     make(chan *feedClient),
		closingClients: make(chan *feedClient),
		clients:        make(map[ClientID]*feedClient),
		done:           make(chan struct{}),
	}
}

func newFeedClient(id ClientID, conn *websocket.Conn) *feedClient {
	return &feedClient{
		ID:       id,
		Conn:     conn,
		messages: make(chan []byte, clientBufferSize),
	}
}

// Notify queues app for broadcast. It never blocks the caller; when the hub
// is backed up the event is dropped.
func (h *feedHub) Notify(app domain.ApplicationRead) {
	payload, err := json.Marshal(app)
	if err != nil {
		h.logger.Error("failed to encode feed event", "id", app.ID, "error", err)
		return
	}
	select {
	case h.notifier <- payload:
	default:
		h.logger.Warn("feed is full, dropping event", "id", app.ID)
	}
}

func (h *feedHub) register(ctx context.Context, c *feedClient) bool {
	select {
	case h.newClients <- c:
		return true
	case <-h.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// unregister only gives up once the hub has stopped, so a client whose
// request was cancelled is still removed.
func (h *feedHub) unregister(c *feedClient) {
	select {
	case h.closingClients <- c:
	case <-h.done:
	}
}

func (h *feedHub) Listen(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for id, c := range h.clients {
				close(c.messages)
				delete(h.clients, id)
			}
			return
		case c := <-h.newClients:
			h.clients[c.ID] = c
			h.logger.Info("feed client added", "clientId", c.ID, "clients", len(h.clients))
		case c := <-h.closingClients:
			if _, ok := h.clients[c.ID]; ok {
				close(c.messages)
				delete(h.clients, c.ID)
			}
			h.logger.Info("feed client removed", "clientId", c.ID, "clients", len(h.clients))
		case event := <-h.notifier:
			for _, c := range h.clients {
				select {
				case c.messages <- event:
				default:
					h.logger.Warn("feed client is slow, dropping event", "clientId", c.ID)
				}
			}
		}
	}
}

const (
	readBuffSize  = 2 << 10
	writeBuffSize = 2 << 10
)

const wsIdHeader = "WS-ID"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  readBuffSize,
	WriteBufferSize: writeBuffSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
