package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dtroode/blogapi/internal/logger"
	"github.com/dtroode/blogapi/internal/model"
)

// HTTPServer serves the API over HTTP with a managed lifecycle.
type HTTPServer struct {
	address string
	server  *http.Server
	logger  *logger.Logger
}

// NewHTTPServer creates a server for the given handler listening on address.
func NewHTTPServer(address string, h http.Handler, logger *logger.Logger) *HTTPServer {
	return &HTTPServer{
		address: address,
		server:  &http.Server{Handler: h},
		logger:  logger,
	}
}

// Start listens through the security layer and serves until Stop is called.
func (s *HTTPServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}

	s.logger.Info("HTTP server: listening", "address", s.address)

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

// Stop shuts the server down gracefully, waiting for in-flight requests
// until the context expires.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Address returns the configured listen address.
func (s *HTTPServer) Address() string {
	return s.address
}
