package webapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/nguyentantai21042004/audio-note/internal/logger"
	"github.com/nguyentantai21042004/audio-note/internal/session"
)

// Server wraps the http.Server hosting the web API.
type Server struct {
	srv    *http.Server
	logger logger.Logger
}

// NewServer builds the API server on addr with all routes registered.
func NewServer(addr string, factory AcquirerFactory, store session.Store, log logger.Logger) *Server {
	mux := http.NewServeMux()
	RegisterRoutes(mux, factory, store, log)

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: log,
	}
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info(ctx, "web API listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
