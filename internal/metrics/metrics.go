// Package metrics defines the Prometheus collectors for the API and the
// dashboard. Collectors register on the default registry at init; callers use
// the Record helpers rather than touching collectors directly.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodfest_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodfest_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foodfest_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodfest_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	// Reports
	ReportRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodfest_report_runs_total",
			Help: "Report executions by origin (live, cache, snapshot) and result",
		},
		[]string{"report", "origin", "result"},
	)

	ReportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodfest_report_duration_seconds",
			Help:    "Time to load data for and evaluate a report",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"report"},
	)

	ReportRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "foodfest_report_rows",
			Help: "Rows returned by the most recent run of each report",
		},
		[]string{"report"},
	)

	ReportCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodfest_report_cache_hits_total",
			Help: "Report results served from the result cache",
		},
	)

	ReportCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodfest_report_cache_misses_total",
			Help: "Report lookups that missed the result cache",
		},
	)

	// Entities
	EntitiesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodfest_entities_created_total",
			Help: "Records created through the API",
		},
		[]string{"collection"},
	)

	// Dashboard
	DashboardFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodfest_dashboard_fallbacks_total",
			Help: "Reports the dashboard computed from its local snapshot",
		},
		[]string{"report"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "foodfest_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	SnapshotRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodfest_snapshot_refresh_total",
			Help: "Snapshot refresh attempts by result",
		},
		[]string{"result"},
	)

	SnapshotTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foodfest_snapshot_timestamp_seconds",
			Help: "Unix time of the snapshot the dashboard falls back to",
		},
	)
)

// RecordAPIRequest records a completed HTTP request.
func RecordAPIRequest(method, route string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up or down.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

func RecordRateLimited() {
	RateLimitedTotal.Inc()
}

// RecordReport records one report execution.
func RecordReport(slug, origin string, rows int, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ReportRunsTotal.WithLabelValues(slug, origin, result).Inc()
	if err != nil {
		return
	}
	ReportDuration.WithLabelValues(slug).Observe(duration.Seconds())
	ReportRows.WithLabelValues(slug).Set(float64(rows))
}

func RecordReportCache(hit bool) {
	if hit {
		ReportCacheHits.Inc()
	} else {
		ReportCacheMisses.Inc()
	}
}

func RecordEntityCreated(collection string) {
	EntitiesCreatedTotal.WithLabelValues(collection).Inc()
}

func RecordDashboardFallback(slug string) {
	DashboardFallbacksTotal.WithLabelValues(slug).Inc()
}

// SetCircuitBreakerState stores 0 for closed, 1 for half-open and 2 for open.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

func RecordSnapshotRefresh(takenAt time.Time, err error) {
	if err != nil {
		SnapshotRefreshTotal.WithLabelValues("error").Inc()
		return
	}
	SnapshotRefreshTotal.WithLabelValues("ok").Inc()
	SnapshotTimestamp.Set(float64(takenAt.Unix()))
}
