package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driving"
	"github.com/custodia-labs/docblocks/internal/logger"
)

// ErrMissingDocumentService is returned when no document service is given.
var ErrMissingDocumentService = errors.New("document service is required")

const shutdownTimeout = 5 * time.Second

// Server serves the HTTP API.
type Server struct {
	docs         driving.DocumentService
	maxUpload    int64
	previewPages int
	router       chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithMaxUploadMB caps request bodies at mb megabytes.
func WithMaxUploadMB(mb int) Option {
	return func(s *Server) {
		if mb > 0 {
			s.maxUpload = int64(mb) << 20
		}
	}
}

// WithPreviewPages sets the preview cap used when a request gives none.
func WithPreviewPages(n int) Option {
	return func(s *Server) { s.previewPages = n }
}

// NewServer creates an HTTP API server for docs.
func NewServer(docs driving.DocumentService, opts ...Option) (*Server, error) {
	if docs == nil {
		return nil, ErrMissingDocumentService
	}

	s := &Server{
		docs:      docs,
		maxUpload: int64(domain.DefaultMaxUploadMB) << 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Get("/documents", s.handleList)
		r.Route("/documents/{id}", func(r chi.Router) {
			r.Post("/", s.handleIngest)
			r.Delete("/", s.handleDelete)
			r.Get("/blocks", s.handleBlocks)
			r.Get("/text", s.handleText)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	logger.Info("HTTP API listening on %s", addr)
	return Serve(ctx, addr, s.router)
}

// Serve runs handler on addr until ctx is cancelled. In-flight requests get
// shutdownTimeout to finish. A cancelled ctx is a normal stop and returns nil.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http on %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		return nil
	}
}
