// Package health provides the operational HTTP endpoints of sayas.
//
// Docker and Kubernetes use /healthz and /readyz to monitor the daemon's
// liveness. When the daemon is running and its transports are started,
// both return 200 OK. Prometheus scrapes /metrics on the same port.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// Server is a lightweight HTTP server that exposes /healthz, /readyz and
// optionally /metrics.
type Server struct {
	port    int
	metrics http.Handler
	ready   atomic.Bool
	server  *http.Server
}

// New creates a new health check server. A nil metrics handler leaves
// /metrics unmounted.
func New(port int, metrics http.Handler) *Server {
	return &Server{port: port, metrics: metrics}
}

// SetReady marks the daemon as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Handler returns the routes served by the health server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Liveness and readiness share the ready flag.
	mux.HandleFunc("GET /healthz", s.status)
	mux.HandleFunc("GET /readyz", s.status)

	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}
	return mux
}

func (s *Server) status(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if !s.ready.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "not_ready"})
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ListenAndServe starts the health check HTTP server.
// It blocks until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("health server listening", "port", s.port, "metrics", s.metrics != nil)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("health server: %w", err)
	}
	return nil
}
