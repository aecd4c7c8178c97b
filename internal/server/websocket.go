package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zulfikawr/chanscope/internal/export"
	"github.com/zulfikawr/chanscope/internal/logging"
	"github.com/zulfikawr/chanscope/internal/metrics"
)

// WebSocket upgrader for live snapshot streaming
var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  WebSocketReadBuffer,
	WriteBufferSize: WebSocketWriteBuffer,
	CheckOrigin: func(r *http.Request) bool {
		// The server only binds loopback; any local client may attach
		return true
	},
}

// handleSnapshotWebSocket streams the combined document to the client at
// the configured push interval until the client leaves or the server
// shuts down.
func (s *Server) handleSnapshotWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	metrics.ClientConnected()
	defer metrics.ClientDisconnected()

	// First snapshot goes out immediately so viewers never start blank
	if err := s.pushSnapshot(conn); err != nil {
		return
	}

	ticker := time.NewTicker(s.cfg.PushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.pushSnapshot(conn); err != nil {
				// Client disconnected
				return
			}
		case <-r.Context().Done():
			return
		case <-s.shutdownCtx.Done():
			return
		}
	}
}

func (s *Server) pushSnapshot(conn *websocket.Conn) error {
	doc := export.Combined(s.registry.Snapshot(), s.registry.ElapsedNS())
	if err := conn.WriteJSON(doc); err != nil {
		return err
	}
	metrics.RecordPush()
	return nil
}
