package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikbrunner/chromemarks/internal/launcher"
	"github.com/nikbrunner/chromemarks/internal/logger"
)

// Launcher answers queries and selections.
type Launcher interface {
	Search(raw string) []launcher.Item
	Select(item launcher.Item) (string, error)
	OpenBookmark(id string) (launcher.OpenAction, error)
}

// Favicons serves and clears cached icons.
type Favicons interface {
	Icon(url string) string
	ClearCache() (bool, error)
}

// Deps holds what the handlers need.
type Deps struct {
	Launcher Launcher
	Favicons Favicons // optional; icon and cache routes answer 404 without it
	Logger   logger.Logger
}

// Server wraps the HTTP server and its router.
type Server struct {
	http   *http.Server
	router chi.Router
	log    logger.Logger
}

// New builds the router and HTTP server listening on addr.
func New(addr string, d Deps) *Server {
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	d.Logger = log.With(logger.String("component", "http"))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(requestLogger(d.Logger))

	h := handlers{d: d}
	r.Get("/healthz", h.health)
	r.Get("/search", h.search)
	r.With(middleware.AllowContentType("application/json")).Post("/select", h.selectItem)
	r.Get("/icon", h.icon)
	r.Delete("/cache", h.clearCache)

	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
		router: r,
		log:    d.Logger,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// Start runs the HTTP server (blocks until error or shutdown).
func (s *Server) Start() error {
	s.log.Infof("HTTP server listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("HTTP server shutting down")
	return s.http.Shutdown(ctx)
}
