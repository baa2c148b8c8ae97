// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

// Package observability provides HTTP endpoints for metrics and health checks.
package observability

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/oops"

	"github.com/ofxgo/ofxgo/pkg/ofx"
)

// ReadinessChecker returns whether the host is ready to play sessions.
type ReadinessChecker func() bool

// Metrics contains session-level Prometheus metrics for ofxhost.
type Metrics struct {
	SessionsTotal *prometheus.CounterVec
	StepsTotal    *prometheus.CounterVec
}

// NewMetrics creates and registers the session metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ofx_sessions_total",
				Help: "Total number of sessions played by result",
			},
			[]string{"result"},
		),
		StepsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ofx_session_steps_total",
				Help: "Total number of session steps played by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(m.SessionsTotal)
	reg.MustRegister(m.StepsTotal)

	return m
}

// RecordSession counts one played session with its step outcomes.
func (m *Metrics) RecordSession(passed bool, steps, failed int) {
	result := "pass"
	if !passed {
		result = "fail"
	}
	m.SessionsTotal.WithLabelValues(result).Inc()
	m.StepsTotal.WithLabelValues("pass").Add(float64(steps - failed))
	m.StepsTotal.WithLabelValues("fail").Add(float64(failed))
}

// Server provides HTTP endpoints for metrics and health probes.
type Server struct {
	addr       string
	listener   net.Listener
	httpServer *http.Server
	registry   *prometheus.Registry
	metrics    *Metrics
	isReady    ReadinessChecker
	running    atomic.Bool
}

// NewServer creates a server for addr in "host:port" form.
func NewServer(addr string, readinessChecker ReadinessChecker) *Server {
	registry := prometheus.NewRegistry()

	// Register standard Go metrics
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Dispatcher metrics plus the session counters
	ofx.RegisterMetrics(registry)
	metrics := NewMetrics(registry)

	s := &Server{
		addr:     addr,
		registry: registry,
		metrics:  metrics,
		isReady:  readinessChecker,
	}

	return s
}

// Metrics returns the session metrics.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start begins serving the endpoints. The returned channel receives any
// error from the HTTP server after it starts and is closed when the server
// stops.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("observability server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	mux := http.NewServeMux()

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))

	// Kubernetes-style health probes
	mux.HandleFunc("/healthz/liveness", s.handleLiveness)
	mux.HandleFunc("/healthz/readiness", s.handleReadiness)

	httpSrv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			slog.Error("observability server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	slog.Info("observability server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the observability server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			// Restore running state on failure so the server can be stopped again
			s.running.Store(true)
			return oops.With("operation", "shutdown_observability_server").Wrap(err)
		}
	}

	slog.Info("observability server stopped")
	return nil
}

// Addr returns the listen address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// handleLiveness returns 200 while the process is running.
func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // health check write error is acceptable, client may disconnect
	w.Write([]byte("ok\n"))
}

// handleReadiness returns 200 if the host is ready to play sessions,
// or 503 if not ready.
func (s *Server) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if s.isReady == nil || s.isReady() {
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck // health check write error is acceptable, client may disconnect
		w.Write([]byte("ok\n"))
		return
	}

	w.WriteHeader(http.StatusServiceUnavailable)
	//nolint:errcheck // health check write error is acceptable, client may disconnect
	w.Write([]byte("not ready\n"))
}
