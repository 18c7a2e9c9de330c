package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// RequestRecorder receives request level measurements.
type RequestRecorder interface {
	RequestStarted()
	RequestFinished(method, route string, code int, elapsed time.Duration)
}

// MetricsMiddleware tracks request metrics. The route label is the chi
// pattern so path parameters do not explode cardinality.
func MetricsMiddleware(rec RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec.RequestStarted()
			wrapped := wrapWriter(w)

			next.ServeHTTP(wrapped, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			rec.RequestFinished(r.Method, route, wrapped.statusCode, time.Since(start))
		})
	}
}
