// Package server exposes signature rendering over HTTP: a JSON API for
// clients that manage their own clipboard, and an HTML preview page.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-sygnea/pkg/orchestrator"
)

// Config holds the HTTP settings the server needs.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// MaxBodyBytes caps JSON request bodies.
	MaxBodyBytes int64
	// APIToken, when set, is required as a bearer token on signature routes.
	APIToken string
}

const (
	defaultMaxBodyBytes    = 64 << 10
	defaultShutdownTimeout = 5 * time.Second
	requestTimeout         = 30 * time.Second
)

// Server holds the shared dependencies of every handler.
type Server struct {
	gen     *orchestrator.Orchestrator
	doc     *openapi3.T
	docJSON []byte
	schema  *openapi3.Schema
	cfg     Config
	logger  *zap.Logger
}

// New wires the server. A nil logger discards logs.
func New(ctx context.Context, gen *orchestrator.Orchestrator, cfg Config, logger *zap.Logger) (*Server, error) {
	if gen == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	doc, err := LoadDocument(ctx)
	if err != nil {
		return nil, err
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("server: encode openapi document: %w", err)
	}
	schema, err := componentSchema(doc, signatureRequestSchema)
	if err != nil {
		return nil, err
	}

	return &Server{
		gen:     gen,
		doc:     doc,
		docJSON: docJSON,
		schema:  schema,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// Handler returns the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/openapi.json", s.handleOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Get("/templates", s.handleTemplates)
		r.Get("/platforms", s.handlePlatforms)

		r.Route("/signatures/{template}", func(r chi.Router) {
			r.Use(s.requireToken)
			r.Post("/", s.handleSignature)
			r.Post("/{format}", s.handleSignatureFormat)
		})
	})

	r.Get("/preview", s.handlePreview)
	r.Get("/preview/{template}", s.handlePreview)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondErr(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondErr(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
