package middleware

import (
	"net/http"
	"time"

	"github.com/forgo/foodfest/api/internal/metrics"
)

// Metrics records request counts, latency and in-flight requests. Routes are
// labelled by their mux pattern, so it must sit directly around the ServeMux.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordAPIRequest(r.Method, route, wrapped.statusCode, time.Since(start))
	})
}
