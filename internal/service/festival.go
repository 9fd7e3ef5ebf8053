package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgo/foodfest/api/internal/model"
	"github.com/forgo/foodfest/api/internal/snapshot"
)

// FestivalRepository defines whole-festival storage operations
type FestivalRepository interface {
	Summary(ctx context.Context) (*model.Summary, error)
	Seed(ctx context.Context, stalls []*model.Stall, dishes []*model.Dish, visitors []*model.Visitor) error
}

// FestivalService serves dashboard headline figures and demo seeding.
type FestivalService struct {
	repo        FestivalRepository
	cache       Invalidator
	seedEnabled bool
}

// FestivalServiceConfig holds configuration for the festival service
type FestivalServiceConfig struct {
	Repo        FestivalRepository
	Cache       Invalidator
	SeedEnabled bool
}

func NewFestivalService(cfg FestivalServiceConfig) *FestivalService {
	return &FestivalService{
		repo:        cfg.Repo,
		cache:       cfg.Cache,
		seedEnabled: cfg.SeedEnabled,
	}
}

// Summary returns collection counts and total stall sales.
func (s *FestivalService) Summary(ctx context.Context) (*model.Summary, error) {
	return s.repo.Summary(ctx)
}

// Seed loads the demo festival into an empty store and returns the new summary.
func (s *FestivalService) Seed(ctx context.Context) (*model.Summary, error) {
	if !s.seedEnabled {
		return nil, ErrSeedDisabled
	}

	current, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	if current.Stalls+current.Dishes+current.Visitors > 0 {
		return nil, fmt.Errorf("%w: %d stalls, %d dishes, %d visitors",
			ErrAlreadySeeded, current.Stalls, current.Dishes, current.Visitors)
	}

	demo := snapshot.Demo()
	if err := s.repo.Seed(ctx, demo.Stalls, demo.Dishes, demo.Visitors); err != nil {
		return nil, err
	}
	slog.Info("seeded demo festival",
		slog.Int("stalls", len(demo.Stalls)),
		slog.Int("dishes", len(demo.Dishes)),
		slog.Int("visitors", len(demo.Visitors)))

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			slog.Warn("failed to invalidate report cache after seed", slog.String("error", err.Error()))
		}
	}
	return s.repo.Summary(ctx)
}
