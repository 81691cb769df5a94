package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/opsgrade/obs-scorecard/internal/models"
	"github.com/opsgrade/obs-scorecard/internal/scorecard"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveMessage is the frame exchanged on the live-scoring socket. The editing
// UI streams "update" frames carrying the edited system document; the server
// answers each with a "score" frame holding the recomputed breakdown.
type LiveMessage struct {
	Type    string                 `json:"type"`
	System  *models.System         `json:"system,omitempty"`
	Score   *models.ScoreBreakdown `json:"score,omitempty"`
	Message string                 `json:"message,omitempty"`
}

func (s *Server) handleLiveScore(w http.ResponseWriter, r *http.Request) {
	systemID := chi.URLParam(r, "id")
	if systemID == "" {
		http.Error(w, "system id required", http.StatusBadRequest)
		return
	}

	current, err := s.service.SystemScore(r.Context(), systemID)
	if err != nil {
		if errors.Is(err, scorecard.ErrSystemNotFound) || errors.Is(err, scorecard.ErrSnapshotNotFound) {
			http.Error(w, "system not found", http.StatusNotFound)
			return
		}
		slog.Error("failed to get system score", "id", systemID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	slog.Info("live scoring websocket connected", "system_id", systemID)

	// Send the stored system's breakdown as the starting point
	s.sendLiveMessage(conn, LiveMessage{
		Type:  "score",
		Score: current.Score,
	})

readLoop:
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Debug("websocket read error", "error", err)
			}
			break readLoop
		}

		var msg LiveMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			slog.Debug("invalid message format", "error", err)
			s.sendLiveError(conn, "invalid message format")
			continue
		}

		switch msg.Type {
		case "update":
			if msg.System == nil {
				s.sendLiveError(conn, "update requires a system")
				continue
			}

			// Pure re-evaluation of the in-flight edit; nothing is saved
			breakdown, err := s.service.Evaluate(r.Context(), models.EvaluateRequest{System: msg.System})
			if err != nil {
				slog.Error("live evaluation failed", "error", err, "system_id", systemID)
				s.sendLiveError(conn, "evaluation failed")
				continue
			}

			if err := s.sendLiveMessage(conn, LiveMessage{
				Type:  "score",
				Score: breakdown,
			}); err != nil {
				break readLoop
			}
		case "ping":
			s.sendLiveMessage(conn, LiveMessage{Type: "pong"})
		}
	}

	slog.Info("live scoring websocket disconnected", "system_id", systemID)
}

func (s *Server) sendLiveMessage(conn *websocket.Conn, msg LiveMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal live message", "error", err)
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Debug("failed to send live message", "error", err)
		return err
	}
	return nil
}

func (s *Server) sendLiveError(conn *websocket.Conn, message string) {
	s.sendLiveMessage(conn, LiveMessage{
		Type:    "error",
		Message: message,
	})
}
