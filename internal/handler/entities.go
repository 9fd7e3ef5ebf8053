package handler

import (
	"context"
	"net/http"

	"github.com/forgo/foodfest/api/internal/model"
)

// EntityService is the service behind the stall, dish and visitor endpoints.
type EntityService interface {
	ListStalls(ctx context.Context) ([]*model.Stall, error)
	CreateStall(ctx context.Context, req *model.CreateStallRequest) (*model.Stall, error)
	ListDishes(ctx context.Context) ([]*model.Dish, error)
	CreateDish(ctx context.Context, req *model.CreateDishRequest) (*model.Dish, error)
	ListVisitors(ctx context.Context) ([]*model.Visitor, error)
	CreateVisitor(ctx context.Context, req *model.CreateVisitorRequest) (*model.Visitor, error)
}

// EntityHandler handles the collection endpoints.
type EntityHandler struct {
	svc EntityService
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(svc EntityService) *EntityHandler {
	return &EntityHandler{svc: svc}
}

// ListStalls handles GET /api/stalls
func (h *EntityHandler) ListStalls(w http.ResponseWriter, r *http.Request) {
	list(w, r, "list stalls", h.svc.ListStalls)
}

// CreateStall handles POST /api/stalls
func (h *EntityHandler) CreateStall(w http.ResponseWriter, r *http.Request) {
	create(w, r, "create stall", h.svc.CreateStall)
}

// ListDishes handles GET /api/dishes
func (h *EntityHandler) ListDishes(w http.ResponseWriter, r *http.Request) {
	list(w, r, "list dishes", h.svc.ListDishes)
}

// CreateDish handles POST /api/dishes
func (h *EntityHandler) CreateDish(w http.ResponseWriter, r *http.Request) {
	create(w, r, "create dish", h.svc.CreateDish)
}

// ListVisitors handles GET /api/visitors
func (h *EntityHandler) ListVisitors(w http.ResponseWriter, r *http.Request) {
	list(w, r, "list visitors", h.svc.ListVisitors)
}

// CreateVisitor handles POST /api/visitors
func (h *EntityHandler) CreateVisitor(w http.ResponseWriter, r *http.Request) {
	create(w, r, "create visitor", h.svc.CreateVisitor)
}

// list writes the collection as a JSON array, never null.
func list[T any](w http.ResponseWriter, r *http.Request, op string, fetch func(context.Context) ([]T, error)) {
	items, err := fetch(r.Context())
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, op))
		return
	}
	if items == nil {
		items = []T{}
	}
	WriteJSON(w, http.StatusOK, items)
}

func create[Req, Out any](w http.ResponseWriter, r *http.Request, op string, store func(context.Context, *Req) (*Out, error)) {
	var req Req
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, decodeError(err))
		return
	}

	out, err := store(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, op))
		return
	}
	WriteJSON(w, http.StatusCreated, out)
}
