// Package server exposes the tracktree pipeline over HTTP.
//
// # Routes
//
//	GET    /healthz                       health checks and build info
//	POST   /api/v1/layout                 records → layout, nothing stored
//	POST   /api/v1/layouts                records → layout, stored; returns its id
//	GET    /api/v1/layouts                stored layouts, newest first (?limit=)
//	GET    /api/v1/layouts/{id}           one stored layout
//	GET    /api/v1/layouts/{id}/render    artifact (?format=svg|png|pdf|dot|json)
//	DELETE /api/v1/layouts/{id}           remove a stored layout
//
// Request bodies for the two POST routes look like:
//
//	{
//	  "title": "Công văn 12",
//	  "records": [{"key": "1", "parent": "1", "name": "..."}, ...],
//	  "options": {"layout": {"nodeWidth": 600, ...}}
//	}
//
// Options left out fall back to the server defaults. Errors use the
// envelope from pkg/httputil.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/observability"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/pipeline"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/store"
)

// Defaults applied by [New].
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRecords     = 10000
	shutdownTimeout       = 10 * time.Second
	healthCheckTimeout    = 2 * time.Second
)

// Pinger is a backend the health endpoint can check, such as a Redis cache
// or a MongoDB layout store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthCheck struct {
	name string
	p    Pinger
}

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	logger   *log.Logger
	defaults pipeline.Options

	requestTimeout time.Duration
	maxRecords     int
	maxBodyBytes   int64
	checks         []healthCheck
}

// Option configures a [Server].
type Option func(*Server)

// WithDefaults sets the pipeline options used for fields a request leaves out.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// WithRequestTimeout bounds the time spent on one request.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// WithMaxRecords caps the number of records accepted per request.
func WithMaxRecords(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxRecords = n
		}
	}
}

// WithMaxBodyBytes caps request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) { s.maxBodyBytes = n }
}

// WithHealthCheck adds a backend to /healthz. A failing ping turns the
// response into 503 UNAVAILABLE.
func WithHealthCheck(name string, p Pinger) Option {
	return func(s *Server) {
		if p != nil {
			s.checks = append(s.checks, healthCheck{name: name, p: p})
		}
	}
}

// New creates a server. runner and st are required; logger defaults to
// log.Default().
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:         runner,
		store:          st,
		logger:         logger,
		requestTimeout: DefaultRequestTimeout,
		maxRecords:     DefaultMaxRecords,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.requestTimeout))

	r.Get("/healthz", announce(s.handleHealth))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/layout", announce(s.handleComputeLayout))
		r.Route("/layouts", func(r chi.Router) {
			r.Post("/", announce(s.handleCreateLayout))
			r.Get("/", announce(s.handleListLayouts))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", announce(s.handleGetLayout))
				r.Delete("/", announce(s.handleDeleteLayout))
				r.Get("/render", announce(s.handleRenderLayout))
			})
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// observe reports every response to the HTTP hooks, keyed by route pattern
// so IDs do not explode metric cardinality.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnResponse(r.Context(), r.Method, routePattern(r), status, time.Since(start))
	})
}

// announce reports a request to the HTTP hooks once chi has matched it, so
// the hooks see the route pattern. Unmatched requests only reach OnResponse.
func announce(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		observability.HTTP().OnRequest(r.Context(), r.Method, routePattern(r))
		next(w, r)
	}
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
