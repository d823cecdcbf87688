// Package http serves the readdoc extraction API.
package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/readdoc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before shutdown.
const ShutdownTimeout = 5 * time.Second

// DefaultMaxUploadBytes caps request bodies when MaxUploadBytes is zero.
const DefaultMaxUploadBytes = 20 << 20

// SignedStore serves objects behind signed links.
type SignedStore interface {
	Get(ctx context.Context, key string) (*readdoc.Object, error)

	// Verify returns EFORBIDDEN unless the expiry and signature are valid
	// for key.
	Verify(key, expires, signature string) error
}

// Server is the HTTP API. Set the service fields before calling Open or
// Handler.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Addr is the address to listen on, e.g. ":8080".
	Addr string

	// AllowedOrigins lists the CORS origins; empty allows any origin.
	AllowedOrigins []string

	// MaxUploadBytes caps request body size.
	MaxUploadBytes int64

	ProcessService readdoc.ProcessService
	TokenVerifier  readdoc.TokenVerifier
	JobService     readdoc.JobService    // optional
	Files          SignedStore           // optional
	Limiter        *UserLimiter          // optional
	Metrics        http.Handler          // optional

	Logger *slog.Logger
}

// NewServer returns a new Server with its routes registered.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		router: chi.NewRouter(),
		Logger: slog.Default(),
	}
	s.server.Handler = s.router

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.cors)
	s.router.Use(s.limitBody)

	s.router.Get("/api/health", s.handleHealth)
	s.router.Get("/files/*", s.handleFile)
	s.router.Get("/metrics", s.handleMetrics)

	s.router.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Use(s.rateLimit)

		r.Post("/api/process", s.handleProcess)
		r.Put("/api/uploads/{name}", s.handleUpload)
		r.Get("/api/jobs", s.handleJobs)
	})

	return s
}

// Handler returns the root handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Open starts listening on Addr and serves in the background.
func (s *Server) Open() (err error) {
	if s.ProcessService == nil || s.TokenVerifier == nil {
		return readdoc.Errorf(readdoc.EINVALID, "server requires a process service and token verifier")
	}
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("http server", "err", err)
		}
	}()
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
