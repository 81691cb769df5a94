package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/opsgrade/obs-scorecard/internal/config"
	"github.com/opsgrade/obs-scorecard/internal/scorecard"
	"github.com/opsgrade/obs-scorecard/internal/storage"
)

// Server represents the HTTP API server
type Server struct {
	config         config.ServerConfig
	router         *chi.Mux
	service        *scorecard.Service
	authMiddleware *AuthMiddleware
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	service *scorecard.Service,
	repo storage.Repository,
) *Server {
	s := &Server{
		config:         cfg,
		service:        service,
		authMiddleware: NewAuthMiddleware(repo),
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (outside versioned API - public)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	// API v1 routes (protected by authentication)
	r.Route("/api/v1", func(r chi.Router) {
		// Apply authentication middleware to all /api/v1/* routes
		r.Use(s.authMiddleware.Authenticate)

		// Snapshot (the whole persisted document)
		r.With(s.authMiddleware.RequirePermission("snapshot:read")).Get("/snapshot", s.handleGetSnapshot)
		r.With(s.authMiddleware.RequirePermission("snapshot:write")).Post("/snapshot", s.handleSaveSnapshot)

		// Scoring
		r.With(s.authMiddleware.RequirePermission("scores:read")).Post("/evaluate", s.handleEvaluate)

		r.Route("/systems", func(r chi.Router) {
			r.With(s.authMiddleware.RequirePermission("scores:read")).Get("/", s.handleListSystems)
			r.With(s.authMiddleware.RequirePermission("scores:read")).Get("/{id}/score", s.handleSystemScore)
			r.With(s.authMiddleware.RequirePermission("scores:read")).Get("/{id}/live", s.handleLiveScore)
		})

		// Tool catalog
		r.Route("/catalog/tools", func(r chi.Router) {
			r.With(s.authMiddleware.RequirePermission("catalog:read")).Get("/", s.handleListTools)
			r.With(s.authMiddleware.RequirePermission("catalog:read")).Get("/{id}", s.handleGetTool)
			r.With(s.authMiddleware.RequirePermission("catalog:read")).Get("/{id}/scenarios", s.handleListScenarios)
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
