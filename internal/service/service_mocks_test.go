package service

import (
	"context"

	"github.com/forgo/foodfest/api/internal/cache"
	"github.com/forgo/foodfest/api/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockStallRepo struct {
	listFunc        func(ctx context.Context) ([]*model.Stall, error)
	createFunc      func(ctx context.Context, stall *model.Stall) error
	existingIDsFunc func(ctx context.Context, ids []string) (map[string]bool, error)
}

func (m *mockStallRepo) List(ctx context.Context) ([]*model.Stall, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockStallRepo) Create(ctx context.Context, stall *model.Stall) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, stall)
	}
	stall.ID = "stall:new"
	return nil
}

func (m *mockStallRepo) ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	if m.existingIDsFunc != nil {
		return m.existingIDsFunc(ctx, ids)
	}
	found := make(map[string]bool, len(ids))
	for _, id := range ids {
		found[id] = true
	}
	return found, nil
}

type mockDishRepo struct {
	listFunc   func(ctx context.Context) ([]*model.Dish, error)
	createFunc func(ctx context.Context, dish *model.Dish) error
}

func (m *mockDishRepo) List(ctx context.Context) ([]*model.Dish, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockDishRepo) Create(ctx context.Context, dish *model.Dish) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, dish)
	}
	dish.ID = "dish:new"
	return nil
}

type mockVisitorRepo struct {
	listFunc   func(ctx context.Context) ([]*model.Visitor, error)
	createFunc func(ctx context.Context, visitor *model.Visitor) error
}

func (m *mockVisitorRepo) List(ctx context.Context) ([]*model.Visitor, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockVisitorRepo) Create(ctx context.Context, visitor *model.Visitor) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, visitor)
	}
	visitor.ID = "visitor:new"
	return nil
}

type mockFestivalRepo struct {
	summaryFunc func(ctx context.Context) (*model.Summary, error)
	seedFunc    func(ctx context.Context, stalls []*model.Stall, dishes []*model.Dish, visitors []*model.Visitor) error
}

func (m *mockFestivalRepo) Summary(ctx context.Context) (*model.Summary, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx)
	}
	return &model.Summary{}, nil
}

func (m *mockFestivalRepo) Seed(ctx context.Context, stalls []*model.Stall, dishes []*model.Dish, visitors []*model.Visitor) error {
	if m.seedFunc != nil {
		return m.seedFunc(ctx, stalls, dishes, visitors)
	}
	return nil
}

// ============================================================================
// Mock Cache
// ============================================================================

type mockCache struct {
	entries     map[int64]map[string]*cache.Entry
	generation  int64
	sets        int
	invalidated int
	invalidErr  error
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[int64]map[string]*cache.Entry)}
}

func (m *mockCache) Generation(ctx context.Context) (int64, error) {
	return m.generation, nil
}

func (m *mockCache) Get(ctx context.Context, gen int64, report string) (*cache.Entry, bool) {
	e, ok := m.entries[gen][report]
	return e, ok
}

func (m *mockCache) Set(ctx context.Context, gen int64, report string, rows any, count int) error {
	m.sets++
	if m.entries[gen] == nil {
		m.entries[gen] = make(map[string]*cache.Entry)
	}
	m.entries[gen][report] = &cache.Entry{Rows: []byte(`"cached"`), Count: count}
	return nil
}

func (m *mockCache) Invalidate(ctx context.Context) error {
	m.invalidated++
	m.generation++
	return m.invalidErr
}
