package http

import (
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/unit-converter/internal/converter"
	"github.com/couchcryptid/unit-converter/internal/observability"
	"github.com/couchcryptid/unit-converter/internal/render"
)

// Converter performs label-based conversions.
type Converter interface {
	Convert(req converter.Request) (converter.Result, error)
}

// Renderer renders named page templates and reports when they are ready.
type Renderer interface {
	Render(w io.Writer, name string, data render.Context) error
	CheckReadiness(ctx context.Context) error
}

// Deps are the collaborators the web front end needs.
type Deps struct {
	Converter Converter
	Renderer  Renderer
	Static    fs.FS
	Metrics   *observability.Metrics

	// Clock times requests; nil means the real clock.
	Clock clockwork.Clock
	// RequestTimeout bounds each request; zero disables the limit.
	RequestTimeout time.Duration
}

// Server serves the converter pages, the JSON API, static assets, and the
// health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger

	converter Converter
	renderer  Renderer
	metrics   *observability.Metrics
	clock     clockwork.Clock
	units     map[string][]converter.Unit
}

// NewServer creates the HTTP server and its routes.
func NewServer(addr string, deps Deps, logger *slog.Logger) *Server {
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	s := &Server{
		logger:    logger,
		converter: deps.Converter,
		renderer:  deps.Renderer,
		metrics:   deps.Metrics,
		clock:     clock,
		units:     converter.Catalog(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP, requestID, s.observe, middleware.Recoverer)
	if deps.RequestTimeout > 0 {
		r.Use(middleware.Timeout(deps.RequestTimeout))
	}

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(deps.Renderer))
	r.Handle("/metrics", promhttp.Handler())

	if deps.Static != nil {
		r.Handle("/public/*", http.StripPrefix("/public/", http.FileServerFS(deps.Static)))
	}

	s.routes(r)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// writeJSON encodes v before touching the response so an encoding failure
// still yields a JSON 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n')) //nolint:errcheck // client may have gone away
}
