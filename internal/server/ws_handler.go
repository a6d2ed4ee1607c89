package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// handleFeed upgrades the request and streams every created application to
// the client until either side goes away.
func (s *server) handleFeed(w http.ResponseWriter, r *http.Request) {
	clientID := ClientID(uuid.NewString())
	h := http.Header{}
	h.Add(wsIdHeader, string(clientID))
	conn, err := upgrader.Upgrade(w, r, h)
	if err != nil {
		s.logger.Error("error while upgrading connection", "error", err)
		return
	}
	defer conn.Close()

	client := newFeedClient(clientID, conn)
	ctx := r.Context()
	if !s.feed.register(ctx, client) {
		return
	}
	defer s.feed.unregister(client)

	go func() {
		for msg := range client.messages {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.logger.Error("failed to write feed message", "clientId", client.ID, "error", err)
				return
			}
		}
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("error reading feed message", "clientId", client.ID, "error", err)
			}
			return
		}
	}
}
