package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/rffetap/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The stream carries no client-specific state; any origin may read.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleStream upgrades the connection and subscribes the client: the
// buffered transcript is replayed first, then live events follow.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	c := newClient(conn)
	logging.LogClient(c.remoteAddr, "websocket_connected")

	select {
	case s.hub.register <- c:
	case <-s.hub.closed:
		c.close()
		return
	}
	go c.writePump(s.hub)
	c.readPump(s.hub)
}
