// Package live serves engine sessions over HTTP and WebSocket. Each
// connection gets its own document and engine; mutations stream out as
// binary patch frames, client input comes back as event frames.
package live

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/lumo-dev/lumo/pkg/render"
	"github.com/lumo-dev/lumo/pkg/vdom"
)

// App produces the root virtual node for a new session. It is invoked
// once per session, so closures inside it must not share mutable state
// across sessions.
type App func() *vdom.VNode

// Config tunes the server. Zero values get sensible defaults.
type Config struct {
	Address        string
	AllowedOrigins []string
	PingInterval   time.Duration
	ReadLimit      int64
	Debug          bool
}

// Server hosts live sessions: an index page rendered with the text
// serializer, a websocket endpoint per session, health, and metrics.
type Server struct {
	cfg     Config
	app     App
	log     zerolog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	upgrader websocket.Upgrader
	router   chi.Router
	http     *http.Server

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewServer builds a server around app. reg may be nil to disable the
// metrics endpoint.
func NewServer(cfg Config, app App, log zerolog.Logger, reg *prometheus.Registry) *Server {
	if cfg.Address == "" {
		cfg.Address = ":8080"
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 30 * time.Second
	}
	if cfg.ReadLimit <= 0 {
		cfg.ReadLimit = 512 * 1024
	}

	s := &Server{
		cfg:      cfg,
		app:      app,
		log:      log,
		tracer:   otel.Tracer("lumo/live"),
		sessions: make(map[string]*Session),
	}
	if reg != nil {
		s.metrics = NewMetrics(reg)
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/live", s.handleLive)
	r.Get("/healthz", s.handleHealth)
	if reg != nil {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	s.router = r
	return s
}

// Router exposes the HTTP handler, for embedding into a larger mux or
// for httptest servers.
func (s *Server) Router() http.Handler { return s.router }

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.http = &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("address", s.cfg.Address).Msg("live server listening")
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.closeSessions()
		return s.http.Shutdown(shutdownCtx)
	}
}

// checkOrigin allows same-host requests plus the configured origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if len(s.cfg.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// handleIndex serves the server-rendered page for the app's initial
// state. The live client attaches over /live afterwards.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	markup := render.ToText(s.app())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>lumo</title></head><body><div id=\"app\">"))
	w.Write([]byte(markup))
	w.Write([]byte("</div></body></html>"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleLive upgrades the connection and runs a session on it until the
// peer disconnects.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	sess, err := newSession(s, conn, newSessionID())
	if err != nil {
		s.log.Error().Err(err).Msg("session setup failed")
		conn.Close()
		return
	}

	s.addSession(sess)
	s.metrics.sessionOpened()
	s.log.Info().Str("session", sess.id).Msg("session opened")

	sess.run(r.Context())

	s.removeSession(sess)
	s.metrics.sessionClosed()
	s.log.Info().Str("session", sess.id).Msg("session closed")
}

func (s *Server) addSession(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
}

func (s *Server) removeSession(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
}

func (s *Server) closeSessions() {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.close()
	}
}

// SessionCount returns the number of connected sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func newSessionID() string {
	var b [16]byte
	rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
