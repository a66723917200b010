package middleware

import (
	"net/http"
	"time"

	"github.com/bistroboss/bistro-api/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// Metrics records request count and latency. The route label uses the chi
// route pattern rather than the raw path to keep label cardinality bounded.
func Metrics(recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			recorder.RecordRequest(r.Method, route, sw.status, time.Since(start))
		})
	}
}
