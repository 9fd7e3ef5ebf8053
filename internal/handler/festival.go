package handler

import (
	"context"
	"net/http"

	"github.com/forgo/foodfest/api/internal/model"
)

// FestivalService is the service behind the summary and seed endpoints.
type FestivalService interface {
	Summary(ctx context.Context) (*model.Summary, error)
	Seed(ctx context.Context) (*model.Summary, error)
}

// FestivalHandler handles whole-festival endpoints.
type FestivalHandler struct {
	svc FestivalService
}

func NewFestivalHandler(svc FestivalService) *FestivalHandler {
	return &FestivalHandler{svc: svc}
}

// Summary handles GET /api/summary
func (h *FestivalHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context())
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "load summary"))
		return
	}
	WriteJSON(w, http.StatusOK, sum)
}

// Seed handles POST /api/admin/seed
func (h *FestivalHandler) Seed(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Seed(r.Context())
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "seed festival"))
		return
	}
	WriteJSON(w, http.StatusCreated, sum)
}
