package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/opsgrade/obs-scorecard/internal/models"
	"github.com/opsgrade/obs-scorecard/internal/scorecard"
)

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// Check if the service's collaborators are reachable
	if err := s.service.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "not_ready", "service not ready")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// Snapshot handlers

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.Snapshot(r.Context())
	if err != nil {
		slog.Error("failed to get snapshot", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get snapshot")
		return
	}

	if snap == nil {
		// Never written; the UI treats this as a fresh deployment
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"snapshot": nil,
			"exists":   false,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot": snap,
		"exists":   true,
	})
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap models.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	saved, err := s.service.SaveSnapshot(r.Context(), &snap)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save snapshot")
		return
	}

	respondJSON(w, http.StatusOK, saved)
}

// Scoring handlers

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req models.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.System == nil {
		respondError(w, http.StatusBadRequest, "validation_error", "system is required")
		return
	}

	breakdown, err := s.service.Evaluate(r.Context(), req)
	if err != nil {
		slog.Error("failed to evaluate system", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to evaluate system")
		return
	}

	respondJSON(w, http.StatusOK, breakdown)
}

func (s *Server) handleListSystems(w http.ResponseWriter, r *http.Request) {
	scores, err := s.service.ListScores(r.Context())
	if err != nil {
		slog.Error("failed to list system scores", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list systems")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"systems": scores,
		"total":   len(scores),
	})
}

func (s *Server) handleSystemScore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "system id is required")
		return
	}

	score, err := s.service.SystemScore(r.Context(), id)
	if err != nil {
		if errors.Is(err, scorecard.ErrSystemNotFound) || errors.Is(err, scorecard.ErrSnapshotNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "system not found")
			return
		}
		slog.Error("failed to get system score", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get system score")
		return
	}

	respondJSON(w, http.StatusOK, score)
}
