// Package server exposes the scheduling pipeline and project persistence
// over HTTP.
//
// The API is versioned under /api/v1:
//
//	POST   /api/v1/schedule            compute a schedule from a posted plan
//	POST   /api/v1/layout              compute schedule + drawing geometry
//	POST   /api/v1/render              render a posted plan to svg/json/dot
//	POST   /api/v1/projects            create a project
//	GET    /api/v1/projects            list projects
//	GET    /api/v1/projects/{id}       fetch one project
//	PUT    /api/v1/projects/{id}       replace a project's plan
//	DELETE /api/v1/projects/{id}       delete a project
//	GET    /api/v1/projects/{id}/render  render a stored project
//	GET    /healthz                    liveness probe
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	errs "github.com/mbertsch/critpath/pkg/errors"
	"github.com/mbertsch/critpath/pkg/pipeline"
	"github.com/mbertsch/critpath/pkg/store"
)

// Config bundles the server's collaborators and listen address.
type Config struct {
	Addr   string
	Store  store.Store
	Runner *pipeline.Runner
	Logger *log.Logger
}

// Server is the HTTP front end. It owns no computation state; every request
// flows through the pipeline runner and the project store.
type Server struct {
	addr   string
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
}

// New assembles a server. A nil store falls back to the in-memory backend
// and a nil runner to an uncached one, which keeps tests and local runs
// dependency-free.
func New(cfg Config) *Server {
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, cfg.Logger)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	return &Server{
		addr:   cfg.Addr,
		store:  cfg.Store,
		runner: cfg.Runner,
		logger: cfg.Logger,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/schedule", s.handleSchedule)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", s.handleCreateProject)
			r.Get("/", s.handleListProjects)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetProject)
				r.Put("/", s.handleUpdateProject)
				r.Delete("/", s.handleDeleteProject)
				r.Get("/render", s.handleRenderProject)
			})
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is canceled, then drains
// in-flight requests for up to ten seconds.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// logRequests logs one line per request with latency and status.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// errorResponse is the JSON body of every non-2xx reply.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its HTTP status via the error code, treating
// store misses as 404 and unclassified errors as 500.
func writeError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	if code == "" && errors.Is(err, store.ErrNotFound) {
		code = errs.ErrCodeProjectNotFound
	}

	status := http.StatusInternalServerError
	if code != "" {
		status = errs.HTTPStatus(code)
	}
	writeJSON(w, status, errorResponse{Error: errs.UserMessage(err), Code: string(code)})
}
