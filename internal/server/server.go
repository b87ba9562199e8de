package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/b0ase/path402/apps/baguette/internal/metrics"
	"github.com/b0ase/path402/apps/baguette/internal/source"
	"github.com/b0ase/path402/apps/baguette/internal/voting"
)

// DaemonInfo provides read-only access to daemon state for the API.
type DaemonInfo interface {
	InstanceID() string
	Version() string
	Uptime() time.Duration
	SourceKind() string
}

// corsMiddleware allows cross-origin requests from other dashboards.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == "OPTIONS" {
			w.WriteHeader(204)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestMiddleware tags each request with an id, then logs and records
// it once the handler returns.
func requestMiddleware(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(rec.status)
		metrics.APIRequestTotal.WithLabelValues(r.Method, route, status).Inc()
		metrics.APIRequestDuration.WithLabelValues(r.Method, route, status).Observe(elapsed.Seconds())

		log.Debug("request",
			zap.String("id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", elapsed))
	})
}

// Server serves the dashboard pages and the JSON API.
type Server struct {
	httpSrv *http.Server
	handler http.Handler
	daemon  DaemonInfo
	source  source.Source
	panel   *voting.Panel
	log     *zap.Logger
	bind    string
	port    int
}

// New creates an HTTP server. The source is fetched once per dashboard
// load; the panel is shared by every client.
func New(bind string, port int, daemon DaemonInfo, src source.Source, panel *voting.Panel, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		daemon: daemon,
		source: src,
		panel:  panel,
		log:    log.Named("api"),
		bind:   bind,
		port:   port,
	}
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.handler = corsMiddleware(requestMiddleware(s.log, mux))
	s.httpSrv = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler { return s.handler }

// Start pre-acquires the port and begins serving HTTP requests.
// If the primary port is in use, it falls back to port+1.
// Returns the actual port bound.
func (s *Server) Start() (int, error) {
	addr := fmt.Sprintf("%s:%d", s.bind, s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		fallbackPort := s.port + 1
		fallbackAddr := fmt.Sprintf("%s:%d", s.bind, fallbackPort)
		ln, err = net.Listen("tcp", fallbackAddr)
		if err != nil {
			return 0, fmt.Errorf("listen on %s and fallback %s: %w", addr, fallbackAddr, err)
		}
		s.log.Warn("using fallback port", zap.Int("port", fallbackPort), zap.Int("primary", s.port))
		s.port = fallbackPort
	}

	s.log.Info("HTTP listening", zap.String("bind", s.bind), zap.Int("port", s.port))
	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("HTTP server error", zap.Error(err))
		}
	}()
	return s.port, nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		s.log.Warn("HTTP shutdown", zap.Error(err))
	}
	s.log.Info("HTTP server stopped")
}
