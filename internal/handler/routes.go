package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes holds the handlers mounted by NewRouter. Nil handlers leave their
// routes unregistered.
type Routes struct {
	Health   *HealthHandler
	Entities *EntityHandler
	Reports  *ReportHandler
	Festival *FestivalHandler

	// Metrics mounts the Prometheus exposition at /metrics.
	Metrics bool
	// Seed mounts POST /api/admin/seed.
	Seed bool
}

// NewRouter registers every API route on a new ServeMux.
func NewRouter(rt Routes) *http.ServeMux {
	mux := http.NewServeMux()

	if rt.Health != nil {
		mux.HandleFunc("GET /health", rt.Health.Health)
	}
	if rt.Metrics {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	// Collections
	if h := rt.Entities; h != nil {
		mux.HandleFunc("GET /api/stalls", h.ListStalls)
		mux.HandleFunc("POST /api/stalls", h.CreateStall)
		mux.HandleFunc("GET /api/dishes", h.ListDishes)
		mux.HandleFunc("POST /api/dishes", h.CreateDish)
		mux.HandleFunc("GET /api/visitors", h.ListVisitors)
		mux.HandleFunc("POST /api/visitors", h.CreateVisitor)
	}

	// Queries
	if h := rt.Reports; h != nil {
		mux.HandleFunc("GET /api/queries", h.Catalog)
		mux.HandleFunc("GET /api/queries/{query}", h.Run)
	}

	if h := rt.Festival; h != nil {
		mux.HandleFunc("GET /api/summary", h.Summary)
		if rt.Seed {
			mux.HandleFunc("POST /api/admin/seed", h.Seed)
		}
	}

	return mux
}
