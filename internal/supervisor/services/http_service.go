// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/cinematch/internal/logging"
)

// HTTPServer is the lifecycle subset of *http.Server.
type HTTPServer interface {
	Serve(l net.Listener) error
	Shutdown(ctx context.Context) error
}

// HTTPServerService binds the API listener and serves it under the
// supervisor. The listener is opened here rather than by the server so the
// bound address is known and logged, even for ":0".
//
//	server := &http.Server{Handler: router}
//	tree.AddAPIService(services.NewHTTPServerService(server, ":8080", 10*time.Second))
type HTTPServerService struct {
	server          HTTPServer
	addr            string
	shutdownTimeout time.Duration
	logger          zerolog.Logger
	bound           atomic.Pointer[string]
}

// NewHTTPServerService serves server on addr. A non-positive shutdownTimeout
// falls back to 10s.
func NewHTTPServerService(server HTTPServer, addr string, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		server:          server,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		logger:          logging.WithComponent("http-server"),
	}
}

// Addr returns the address the listener is bound to, or "" before the
// first successful bind.
func (h *HTTPServerService) Addr() string {
	if p := h.bound.Load(); p != nil {
		return *p
	}
	return ""
}

// Serve binds and serves until ctx is canceled. In-flight requests then get
// up to the shutdown timeout to finish. A bind or serve failure is returned
// so the supervisor restarts the service. A server closed by someone else
// is not restarted.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", h.addr)
	if err != nil {
		return fmt.Errorf("http server: listen on %q: %w", h.addr, err)
	}
	addr := ln.Addr().String()
	h.bound.Store(&addr)
	h.logger.Info().Str("addr", addr).Msg("HTTP server listening")

	served := make(chan error, 1)
	go func() { served <- h.server.Serve(ln) }()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			h.logger.Warn().Str("addr", addr).Msg("HTTP server closed outside the supervisor")
			return suture.ErrDoNotRestart
		}
		return fmt.Errorf("http server on %s: %w", addr, err)

	case <-ctx.Done():
		if err := h.drain(served); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// drain shuts the server down and waits for Serve to return. ctx is already
// canceled by now, so the drain gets its own deadline.
func (h *HTTPServerService) drain(served <-chan error) error {
	start := time.Now()
	h.logger.Info().Dur("timeout", h.shutdownTimeout).Msg("HTTP server draining")

	ctx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()
	if err := h.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server: shutdown: %w", err)
	}
	<-served

	h.logger.Info().Dur("took", time.Since(start)).Msg("HTTP server drained")
	return nil
}

func (h *HTTPServerService) String() string {
	return "http-server"
}
