package handler

import (
	"context"
	"net/http"

	"github.com/forgo/foodfest/api/internal/report"
)

// ReportService is the service behind the query endpoints.
type ReportService interface {
	Catalog() []report.Definition
	Run(ctx context.Context, key string) (*report.Result, error)
}

// ReportHandler serves the fixed festival queries.
type ReportHandler struct {
	svc ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Catalog handles GET /api/queries
func (h *ReportHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.svc.Catalog())
}

// Run handles GET /api/queries/{query}. The body is the bare rows array;
// single-result queries produce zero or one element.
func (h *ReportHandler) Run(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Run(r.Context(), r.PathValue("query"))
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "run query"))
		return
	}

	w.Header().Set("X-Query-Slug", res.Definition.Slug)
	WriteJSON(w, http.StatusOK, res.Rows)
}
