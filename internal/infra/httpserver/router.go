package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bryanwahyu/earnings-analyst/internal/analysis"
	"github.com/bryanwahyu/earnings-analyst/internal/application/routing"
	domai "github.com/bryanwahyu/earnings-analyst/internal/domain/ai"
	"github.com/bryanwahyu/earnings-analyst/internal/domain/earnings"
	"github.com/bryanwahyu/earnings-analyst/internal/domain/queries"
	"github.com/bryanwahyu/earnings-analyst/internal/middleware"
)

const maxBodyBytes = 64 << 10

// QueryRouter answers free-text queries; *routing.Service satisfies it.
type QueryRouter interface {
	Route(ctx context.Context, query string) (routing.Answer, error)
}

// Deps is everything the HTTP layer needs.
type Deps struct {
	Queries QueryRouter
	Library *analysis.Library
	Dataset *earnings.Dataset
	Logger  *slog.Logger

	// optional
	Metrics        middleware.RequestRecorder
	Gatherer       prometheus.Gatherer
	Checks         map[string]middleware.HealthChecker
	APIKeys        map[string]string
	Limiter        *middleware.RateLimiter
	AllowedOrigins []string
}

type Router struct {
	queries QueryRouter
	library *analysis.Library
	dataset *earnings.Dataset
	logger  *slog.Logger
}

func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{queries: d.Queries, library: d.Library, dataset: d.Dataset, logger: logger}
	mux := chi.NewRouter()

	mux.Use(middleware.RequestID)
	mux.Use(middleware.Logging(logger))
	if d.Metrics != nil {
		mux.Use(middleware.MetricsMiddleware(d.Metrics))
	}
	mux.Use(chimw.Recoverer)
	if len(d.AllowedOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins: d.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader},
			MaxAge:         300,
		}))
	}
	mux.Use(middleware.APIKeyAuth(d.APIKeys))
	mux.Use(middleware.RateLimitMiddleware(d.Limiter))

	mux.Get("/health", middleware.LivenessHandler)
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/healthz", middleware.HealthHandler(d.Checks))
	if d.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	mux.Route("/v1", func(rt chi.Router) {
		rt.Get("/commands", r.wrap(r.handleCommands))
		rt.Post("/queries", r.wrap(r.handleQuery))
		rt.Post("/analyses/{command}", r.wrap(r.handleAnalysis))
	})

	return mux
}

// httpError carries a status code for client mistakes.
type httpError struct {
	code int
	err  error
}

func (e *httpError) Error() string { return e.err.Error() }
func (e *httpError) Unwrap() error { return e.err }

func badRequest(err error) error { return &httpError{code: http.StatusBadRequest, err: err} }
func notFound(err error) error   { return &httpError{code: http.StatusNotFound, err: err} }

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var he *httpError
		switch {
		case errors.As(err, &he):
			http.Error(w, he.Error(), he.code)
		case errors.Is(err, earnings.ErrSchema):
			r.logger.Error("dataset cannot serve analysis", "error", err)
			http.Error(w, "dataset schema error: "+err.Error(), http.StatusInternalServerError)
		case errors.Is(err, domai.ErrQuotaExceeded):
			http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
		default:
			r.logger.Error("request failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// GET /v1/commands
func (r *Router) handleCommands(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, r.library.Entries())
}

type queryResponse struct {
	ID string `json:"id"`
	routing.Answer
}

// POST /v1/queries
// Body: {"query": "<free text>"}
func (r *Router) handleQuery(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes)).Decode(&body); err != nil {
		return badRequest(fmt.Errorf("invalid body: %w", err))
	}
	q, err := middleware.ValidateQuery(body.Query)
	if err != nil {
		return badRequest(err)
	}

	ans, err := r.queries.Route(req.Context(), q)
	if err != nil {
		return err
	}

	id := middleware.GetRequestID(req.Context())
	if id == "" {
		id = uuid.NewString()
	}
	return writeJSON(w, queryResponse{ID: id, Answer: ans})
}

// POST /v1/analyses/{command}
func (r *Router) handleAnalysis(w http.ResponseWriter, req *http.Request) error {
	c, err := middleware.ValidateCommandName(chi.URLParam(req, "command"))
	if err != nil {
		return notFound(err)
	}
	report, err := r.library.Run(c, r.dataset)
	if err != nil {
		return fmt.Errorf("%s: %w", c, err)
	}
	return writeJSON(w, struct {
		Command queries.Command `json:"command"`
		Answer  queries.Report  `json:"answer"`
	}{c, report})
}
