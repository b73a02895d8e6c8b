// Package http exposes the read-only query API over the currently
// published snapshot, plus health, readiness, and metrics endpoints.
// Handlers never trigger a fetch; they only read what the refresh loop
// last published.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gigwatch/event-listings-service/internal/domain"
)

// SnapshotReader provides the currently published snapshot.
type SnapshotReader interface {
	Current() *domain.Snapshot
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the snapshot query API.
type Server struct {
	httpServer *http.Server
	snapshots  SnapshotReader
	regions    []domain.Region
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the four query routes and the
// /healthz, /readyz, and /metrics operational routes.
func NewServer(addr string, snapshots SnapshotReader, regions []domain.Region, ready ReadinessChecker, logger *slog.Logger) *Server {
	s := &Server{
		snapshots: snapshots,
		regions:   regions,
		logger:    logger,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/events", s.handleEvents).Methods(http.MethodGet)
	router.HandleFunc("/api/genres", s.handleGenres).Methods(http.MethodGet)
	router.HandleFunc("/api/areas", s.handleAreas).Methods(http.MethodGet)
	router.HandleFunc("/api/cities", s.handleCities).Methods(http.MethodGet)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/readyz", handleReady(ready)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshots.Current().EventsByRegion)
}

func (s *Server) handleGenres(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshots.Current().GenreCounts)
}

func (s *Server) handleCities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshots.Current().CityCounts)
}

// handleAreas lists the configured regions as display name to feed key,
// independent of any snapshot.
func (s *Server) handleAreas(w http.ResponseWriter, _ *http.Request) {
	areas := make(map[string]string, len(s.regions))
	for _, r := range s.regions {
		areas[r.Name] = r.Key
	}
	writeJSON(w, http.StatusOK, areas)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
