// Package httpserver exposes the kitchen system over HTTP: placement,
// pickup, snapshots, a challenge-feed surface for driving simulations
// remotely, and prometheus metrics.
package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"kitchend/internal/feed"
	"kitchend/internal/kitchen"
	"kitchend/internal/metrics"
)

// Server wires the kitchen facade and the order feed to an HTTP API.
type Server struct {
	addr string
	sys  *kitchen.System
	gen  *feed.Generator
	log  *zap.Logger
	reg  *prometheus.Registry
}

// New builds a server listening on addr.
func New(addr string, sys *kitchen.System, gen *feed.Generator, log *zap.Logger) *Server {
	return &Server{
		addr: addr,
		sys:  sys,
		gen:  gen,
		log:  log,
		reg:  metrics.New(sys),
	}
}

// Handler returns the full route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/orders", s.handlePlace())
	mux.Handle("/api/pickup", s.handlePickup())
	mux.Handle("/api/sweep", s.handleSweep())
	mux.Handle("/api/status", s.handleStatus())
	mux.Handle("/api/ledger", s.handleLedger())
	mux.Handle("/api/stats", s.handleStats())
	mux.Handle("/api/challenge/orders", s.handleChallengeOrders())
	mux.Handle("/api/challenge/actions", s.handleChallengeActions())
	mux.Handle("/healthz", s.handleHealth())
	mux.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	return mux
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("http server listening", zap.String("addr", s.addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}
