// Package web exposes the workbench as a JSON API for the canvas UI.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JasonMadeSomething/claimbench/internal/domain"
	"github.com/JasonMadeSomething/claimbench/internal/labels"
	"github.com/JasonMadeSomething/claimbench/internal/workbench"
)

// claimLoader is the subset of backend.Client the server requires.
type claimLoader interface {
	LoadClaim(ctx context.Context, claimID string) ([]domain.Photo, []domain.Item, []domain.Room, error)
}

// preferences is the subset of settings.Store the server requires.
type preferences interface {
	AutoOpenDetail(ctx context.Context) (bool, error)
	SetAutoOpenDetail(ctx context.Context, on bool) error
	LastClaimID(ctx context.Context) (string, error)
	SetLastClaimID(ctx context.Context, claimID string) error
}

type Server struct {
	bench    *workbench.Workbench
	loader   claimLoader
	prefs    preferences
	analyzer labels.Analyzer
	router   chi.Router
	logger   *slog.Logger
}

// NewServer wires the API. analyzer may be nil when no label backend is
// configured; the label endpoint then reports 501.
func NewServer(bench *workbench.Workbench, loader claimLoader, prefs preferences, analyzer labels.Analyzer, logger *slog.Logger) *Server {
	s := &Server{
		bench:    bench,
		loader:   loader,
		prefs:    prefs,
		analyzer: analyzer,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(securityHeaders)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/claims/{claimID}/activate", s.handleActivateClaim)

		r.Get("/workbench", s.handleGetWorkbench)
		r.Get("/workbench/search", s.handleSearch)

		r.Post("/workbench/items", s.handleCreateItem)
		r.Put("/workbench/items/{itemID}", s.handleUpdateItem)
		r.Delete("/workbench/items/{itemID}", s.handleDeleteItem)
		r.Put("/workbench/items/{itemID}/photos/{photoID}", s.handleAddPhotoToItem)
		r.Delete("/workbench/items/{itemID}/photos/{photoID}", s.handleRemovePhotoFromItem)
		r.Put("/workbench/items/{itemID}/thumbnail", s.handleSetThumbnail)
		r.Put("/workbench/items/{itemID}/room", s.handleMoveItemToRoom)

		r.Post("/workbench/rooms", s.handleCreateRoom)
		r.Put("/workbench/rooms/{roomID}", s.handleRenameRoom)
		r.Delete("/workbench/rooms/{roomID}", s.handleDeleteRoom)

		r.Put("/workbench/photos/{photoID}/room", s.handleMovePhotoToRoom)
		r.Put("/workbench/photos/{photoID}/position", s.handleSetPhotoPosition)
		r.Post("/workbench/photos/{photoID}/labels", s.handleGenerateLabels)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleUpdateSettings)
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(rec, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, workbench.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, workbench.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, workbench.ErrPreconditionFailed):
		status = http.StatusPreconditionFailed
	default:
		status = http.StatusInternalServerError
		s.logger.Error("operation failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeFieldErrors(w http.ResponseWriter, errs []domain.FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
}
