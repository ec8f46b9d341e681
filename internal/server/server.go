// Package server exposes the simulation over HTTP.
//
// Stateless routes render any progress value on demand; session routes drive
// a server-side player that keeps ticking between requests.
//
//	GET    /healthz
//	GET    /frame?progress=
//	GET    /scene.{svg,png,json,txt}?progress=&scale=
//	POST   /sessions?progress=
//	GET    /sessions
//	GET    /sessions/{id}
//	GET    /sessions/{id}/scene.svg
//	POST   /sessions/{id}/toggle
//	PUT    /sessions/{id}/progress?value=
//	DELETE /sessions/{id}
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/reactorsim/pkg/pipeline"
	"github.com/matzehuels/reactorsim/pkg/session"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server serves frames, scenes and sessions.
type Server struct {
	runner   *pipeline.Runner
	sessions *session.Store
	logger   *log.Logger
	router   chi.Router

	// playerInterval overrides the session tick period (tests).
	playerInterval time.Duration
}

// New creates a server rendering through runner and keeping sessions in
// sessions.
func New(runner *pipeline.Runner, sessions *session.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:   runner,
		sessions: sessions,
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/frame", s.handleFrame)
	r.Get("/scene.svg", s.handleScene(pipeline.FormatSVG))
	r.Get("/scene.png", s.handleScene(pipeline.FormatPNG))
	r.Get("/scene.json", s.handleScene(pipeline.FormatJSON))
	r.Get("/scene.txt", s.handleScene(pipeline.FormatText))

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Get("/", s.handleListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/scene.svg", s.handleSessionScene)
			r.Post("/toggle", s.handleToggle)
			r.Put("/progress", s.handleScrub)
		})
	})
	return r
}

// Run serves on addr until ctx is cancelled, sweeping idle sessions every
// cleanupInterval, then shuts down gracefully. Sessions are closed whenever
// Run returns, including when the listener fails to start.
func (s *Server) Run(ctx context.Context, addr string, cleanupInterval time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.sessions.Close()

	go s.sweep(ctx, cleanupInterval)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) sweep(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = session.DefaultCleanupInterval
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sessions.Cleanup()
		}
	}
}
