// Package httpapi is the HTTP/SSE adapter: it exposes a session.Manager,
// an eventbus.Bus, a hand-history log, and a settings store over the
// REST surface in SPEC_FULL.md §6.2.
package httpapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// defaultReapInterval is how often the Server checks for idle sessions
// to drop, independent of any one session's own inactivity timeout.
const defaultReapInterval = time.Minute

// serverConfig holds the configuration for building a Server.
type serverConfig struct {
	addr         string
	reapInterval time.Duration
}

// ServerOption configures a Server at construction time.
type ServerOption func(*serverConfig)

// WithAddr overrides the default listen address ":8080".
func WithAddr(addr string) ServerOption {
	return func(c *serverConfig) { c.addr = addr }
}

// WithReapInterval overrides how often the background reaper sweeps
// for idle sessions.
func WithReapInterval(d time.Duration) ServerOption {
	return func(c *serverConfig) { c.reapInterval = d }
}

// Server wraps an http.Server around a Handlers bundle, building the
// route table once and supporting graceful shutdown.
type Server struct {
	handlers     *Handlers
	logger       zerolog.Logger
	mux          *http.ServeMux
	httpServer   *http.Server
	addr         string
	reapInterval time.Duration
	routesOnce   sync.Once
}

// NewServer builds a Server ready to Serve once its routes are wired.
func NewServer(logger zerolog.Logger, handlers *Handlers, opts ...ServerOption) *Server {
	cfg := serverConfig{addr: ":8080", reapInterval: defaultReapInterval}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		handlers:     handlers,
		logger:       logger,
		mux:          http.NewServeMux(),
		addr:         cfg.addr,
		reapInterval: cfg.reapInterval,
	}
}

func (s *Server) ensureRoutes() {
	s.routesOnce.Do(func() {
		h := s.handlers
		s.mux.HandleFunc("GET /health", h.handleHealth)

		s.mux.HandleFunc("POST /api/sessions", h.handleCreateSession)
		s.mux.HandleFunc("GET /api/sessions/{id}", h.handleGetSession)
		s.mux.HandleFunc("GET /api/sessions/{id}/state", h.handleGetSessionState)
		s.mux.HandleFunc("POST /api/sessions/{id}/actions", h.handleSubmitAction)
		s.mux.HandleFunc("DELETE /api/sessions/{id}", h.handleDeleteSession)
		s.mux.HandleFunc("GET /api/sessions/{id}/events", h.handleStreamEvents)

		s.mux.HandleFunc("GET /api/history", h.handleGetRecentHands)
		s.mux.HandleFunc("GET /api/history/stats", h.handleGetStatistics)
		s.mux.HandleFunc("GET /api/history/{hand_id}", h.handleGetHandByID)
		s.mux.HandleFunc("POST /api/history/filter", h.handleFilterHands)

		s.mux.HandleFunc("GET /api/settings", h.handleGetSettings)
		s.mux.HandleFunc("PUT /api/settings", h.handleUpdateSettings)
		s.mux.HandleFunc("PATCH /api/settings/field", h.handleUpdateField)
		s.mux.HandleFunc("POST /api/settings/reset", h.handleResetSettings)
	})
}

// Handler returns the fully-wired mux, for use in tests with
// httptest.NewServer/httptest.NewRequest without going through
// ListenAndServe.
func (s *Server) Handler() http.Handler {
	s.ensureRoutes()
	return s.mux
}

// Run starts the HTTP server and the background session reaper, and
// blocks until ctx is canceled or either fails. On cancellation it
// gracefully shuts down: stop accepting connections, let in-flight
// requests (including SSE streams) drain, stop the reaper, and return.
func (s *Server) Run(ctx context.Context) error {
	s.ensureRoutes()
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.mux,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("addr", s.addr).Msg("http server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(s.reapInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				for _, id := range s.handlers.sessions.ReapExpired() {
					s.logger.Info().Str("session_id", id).Msg("reaped idle session")
				}
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info().Msg("http server shutting down")
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
