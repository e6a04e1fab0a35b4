// Package server serves the rankings dashboard and its JSON and image API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/KaramelBytes/unirank-cli/internal/config"
	"github.com/KaramelBytes/unirank-cli/internal/render"
	"github.com/KaramelBytes/unirank-cli/internal/session"
)

// Server holds the current session. Each request reads it once.
type Server struct {
	cfg *config.Global
	log *slog.Logger

	mu   sync.RWMutex
	sess *session.Session
}

// New loads cfg.DataPath into a first session. A failed load is not fatal:
// the dashboard shows the no-data message until a reload succeeds.
func New(cfg *config.Global, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{cfg: cfg, log: logger}
	s.Reload()
	return s
}

// Reload opens cfg.DataPath into a new session and makes it current.
func (s *Server) Reload() *session.Session {
	sess := session.Open(s.cfg.DataPath, session.Options{Cache: s.cfg.CacheCharts})
	if sess.Err != nil {
		s.log.Error("dataset load failed", "path", s.cfg.DataPath, "session", sess.ID, "error", sess.Err)
	} else {
		s.log.Info("dataset loaded", "path", s.cfg.DataPath, "session", sess.ID,
			"rows", sess.Dataset.RawRows, "kept", sess.Size(), "dropped", sess.Dataset.Dropped())
	}
	s.mu.Lock()
	s.sess = sess
	s.mu.Unlock()
	return sess
}

// Session returns the current session.
func (s *Server) Session() *session.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess
}

func (s *Server) renderOptions() render.Options {
	opt := render.DefaultOptions()
	if s.cfg.ChartWidth > 0 {
		opt.Width = s.cfg.ChartWidth
	}
	if s.cfg.ChartHeight > 0 {
		opt.Height = s.cfg.ChartHeight
	}
	return opt
}

// Run listens on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("dashboard listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}
	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
