package httpapi

import (
	"context"
	"net/http"
	"time"

	"dualsub/internal/player"
)

type settingsStore interface {
	GeminiAPIKey() (string, error)
	SetGeminiAPIKey(key string) error
}

type Server struct {
	manager  *player.Manager
	settings settingsStore

	janitorCronExpr string

	mux    *http.ServeMux
	server *http.Server
}

type Option func(*Server)

func WithSettingsStore(store settingsStore) Option {
	return func(s *Server) {
		s.settings = store
	}
}

// WithJanitorSchedule lets the health endpoint report when the session
// janitor last ran and will run next.
func WithJanitorSchedule(cronExpr string) Option {
	return func(s *Server) {
		s.janitorCronExpr = cronExpr
	}
}

func NewServer(manager *player.Manager, opts ...Option) *Server {
	s := &Server{
		manager: manager,
		mux:     http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/sessions", s.handleSessions)
	s.mux.HandleFunc("/api/sessions/", s.handleSessionSubtree)
	s.mux.HandleFunc("/api/settings", s.handleSettings)
	s.mux.HandleFunc("/api/health", s.handleHealth)
}
