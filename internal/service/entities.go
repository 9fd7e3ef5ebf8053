package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgo/foodfest/api/internal/metrics"
	"github.com/forgo/foodfest/api/internal/model"
)

// StallRepository defines the interface for stall storage
type StallRepository interface {
	List(ctx context.Context) ([]*model.Stall, error)
	Create(ctx context.Context, stall *model.Stall) error
	ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error)
}

// DishRepository defines the interface for dish storage
type DishRepository interface {
	List(ctx context.Context) ([]*model.Dish, error)
	Create(ctx context.Context, dish *model.Dish) error
}

// VisitorRepository defines the interface for visitor storage
type VisitorRepository interface {
	List(ctx context.Context) ([]*model.Visitor, error)
	Create(ctx context.Context, visitor *model.Visitor) error
}

// Invalidator drops derived data after a write.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// EntityService lists and creates stalls, dishes and visitors.
type EntityService struct {
	stalls   StallRepository
	dishes   DishRepository
	visitors VisitorRepository
	cache    Invalidator
}

// EntityServiceConfig holds the dependencies of EntityService. Cache may be nil.
type EntityServiceConfig struct {
	Stalls   StallRepository
	Dishes   DishRepository
	Visitors VisitorRepository
	Cache    Invalidator
}

func NewEntityService(cfg EntityServiceConfig) *EntityService {
	return &EntityService{
		stalls:   cfg.Stalls,
		dishes:   cfg.Dishes,
		visitors: cfg.Visitors,
		cache:    cfg.Cache,
	}
}

// ListStalls returns every stall in insertion order.
func (s *EntityService) ListStalls(ctx context.Context) ([]*model.Stall, error) {
	return s.stalls.List(ctx)
}

// CreateStall validates req and stores a new stall.
func (s *EntityService) CreateStall(ctx context.Context, req *model.CreateStallRequest) (*model.Stall, error) {
	req.Normalize()
	if errs := req.Validate(); len(errs) > 0 {
		return nil, invalid(errs)
	}

	stall := req.ToStall()
	if err := s.stalls.Create(ctx, stall); err != nil {
		return nil, err
	}

	s.created(ctx, "stall", stall.ID)
	return stall, nil
}

func (s *EntityService) ListDishes(ctx context.Context) ([]*model.Dish, error) {
	return s.dishes.List(ctx)
}

// CreateDish validates req, checks that every referenced stall exists and
// stores a new dish.
func (s *EntityService) CreateDish(ctx context.Context, req *model.CreateDishRequest) (*model.Dish, error) {
	req.Normalize()
	if errs := req.Validate(); len(errs) > 0 {
		return nil, invalid(errs)
	}

	found, err := s.stalls.ExistingIDs(ctx, req.StallRefs())
	if err != nil {
		return nil, fmt.Errorf("check stall references: %w", err)
	}
	if missing := missingRefs(req, found); len(missing) > 0 {
		return nil, &ValidationError{Fields: missing, Cause: ErrStallNotFound}
	}

	dish := req.ToDish()
	if err := s.dishes.Create(ctx, dish); err != nil {
		return nil, err
	}

	s.created(ctx, "dish", dish.ID)
	return dish, nil
}

func (s *EntityService) ListVisitors(ctx context.Context) ([]*model.Visitor, error) {
	return s.visitors.List(ctx)
}

func (s *EntityService) CreateVisitor(ctx context.Context, req *model.CreateVisitorRequest) (*model.Visitor, error) {
	req.Normalize()
	if errs := req.Validate(); len(errs) > 0 {
		return nil, invalid(errs)
	}

	visitor := req.ToVisitor()
	if err := s.visitors.Create(ctx, visitor); err != nil {
		return nil, err
	}

	s.created(ctx, "visitor", visitor.ID)
	return visitor, nil
}

// created records the write and invalidates cached reports. A failed
// invalidation is logged; the write itself already succeeded.
func (s *EntityService) created(ctx context.Context, collection, id string) {
	metrics.RecordEntityCreated(collection)
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate report cache",
			slog.String("collection", collection),
			slog.String("id", id),
			slog.String("error", err.Error()))
	}
}

func missingRefs(req *model.CreateDishRequest, found map[string]bool) []model.FieldError {
	var missing []model.FieldError
	if !found[req.StallID] {
		missing = append(missing, model.FieldError{
			Field:   "stallId",
			Message: fmt.Sprintf("stall %q does not exist", req.StallID),
		})
	}
	for i, id := range req.SoldBy {
		if !found[id] {
			missing = append(missing, model.FieldError{
				Field:   fmt.Sprintf("soldBy[%d]", i),
				Message: fmt.Sprintf("stall %q does not exist", id),
			})
		}
	}
	return missing
}
