package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Catalog handlers — browsing the effective tool catalog

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	tools, err := s.service.Tools(r.Context())
	if err != nil {
		slog.Error("failed to list tools", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list tools")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tools": tools,
		"total": len(tools),
	})
}

func (s *Server) handleGetTool(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tool, err := s.service.ToolByID(r.Context(), id)
	if err != nil {
		slog.Error("failed to get tool", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get tool")
		return
	}
	if tool == nil {
		respondError(w, http.StatusNotFound, "not_found", "tool not found")
		return
	}

	respondJSON(w, http.StatusOK, tool)
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tool, err := s.service.ToolByID(r.Context(), id)
	if err != nil {
		slog.Error("failed to get tool", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get tool")
		return
	}
	if tool == nil {
		respondError(w, http.StatusNotFound, "not_found", "tool not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"scenarios": tool.Scenarios,
		"total":     len(tool.Scenarios),
	})
}
