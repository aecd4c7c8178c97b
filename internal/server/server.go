// Package server exposes registry snapshots over a loopback HTTP
// endpoint. It is started once by the instrumentation bootstrap; a bind
// failure is reported to the caller, who logs it and carries on, since
// losing the endpoint must never take the host program down with it.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zulfikawr/chanscope/internal/config"
	"github.com/zulfikawr/chanscope/internal/discovery"
	"github.com/zulfikawr/chanscope/internal/logging"
	"github.com/zulfikawr/chanscope/internal/registry"
)

// Server serves JSON snapshots of an entity registry.
type Server struct {
	registry *registry.Registry
	cfg      *config.Config

	Port int // actual bound port, set by Start

	httpServer *http.Server
	advertiser *discovery.Advertiser
	// Graceful shutdown support
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

// New builds a server over the given registry. Start must be called
// before the server accepts connections.
func New(reg *registry.Registry, cfg *config.Config) *Server {
	return &Server{registry: reg, cfg: cfg}
}

// Start binds the configured loopback address and begins serving in a
// background goroutine. JSON endpoints are gzip-wrapped; /metrics and
// /ws manage their own encodings.
func (s *Server) Start() error {
	return s.start(s.cfg.Addr())
}

// routes builds the endpoint table. Split out from start so handler
// tests can exercise routing without a listener.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /channels", s.gzipJSON(s.handleChannels))
	mux.Handle("GET /streams", s.gzipJSON(s.handleStreams))
	mux.Handle("GET /export", s.gzipJSON(s.handleExport))
	mux.Handle("GET /channels/{id}/logs", s.gzipJSON(s.handleChannelLogs))
	mux.Handle("GET /streams/{id}/logs", s.gzipJSON(s.handleStreamLogs))
	mux.HandleFunc("GET /ws", s.handleSnapshotWebSocket)
	return mux
}

func (s *Server) start(addr string) error {
	mux := s.routes()

	s.httpServer = &http.Server{
		ReadHeaderTimeout: ReadHeaderTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
		MaxHeaderBytes:    MaxHeaderBytes,
		Handler:           mux,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	if tcpAddr, ok := ln.Addr().(*net.TCPAddr); ok {
		s.Port = tcpAddr.Port
	}

	// Shutdown context terminates the websocket push loops
	s.shutdownCtx, s.shutdownCancel = context.WithCancel(context.Background())

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			logging.Warn("snapshot server stopped", zap.Error(err))
		}
	}()

	// Advertise via mDNS for same-host tooling (best-effort)
	if s.cfg.MDNS {
		instance := fmt.Sprintf("chanscope-%d", s.Port)
		adv, err := discovery.Advertise(instance, s.Port)
		if err != nil {
			logging.Warn("mDNS advertise failed", zap.Error(err))
		} else {
			s.advertiser = adv
		}
	}

	logging.Info("snapshot server listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// gzipJSON wraps a JSON handler with transparent gzip compression.
func (s *Server) gzipJSON(h http.HandlerFunc) http.Handler {
	return gzhttp.GzipHandler(h)
}

// Shutdown stops advertising and drains in-flight requests. Repeated
// calls are no-ops.
func (s *Server) Shutdown() error {
	if s.shutdownCancel != nil {
		s.shutdownCancel()
	}

	if s.advertiser != nil {
		s.advertiser.Close()
		s.advertiser = nil
	}

	srv := s.httpServer
	s.httpServer = nil
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
