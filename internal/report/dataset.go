package report

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/forgo/foodfest/api/internal/model"
)

// Collection identifies one stored entity collection. Values combine as a bit set.
type Collection uint8

const (
	Stalls Collection = 1 << iota
	Dishes
	Visitors

	AllCollections = Stalls | Dishes | Visitors
)

// Has reports whether c includes every collection in other.
func (c Collection) Has(other Collection) bool {
	return c&other == other
}

func (c Collection) String() string {
	var names []string
	if c.Has(Stalls) {
		names = append(names, "stalls")
	}
	if c.Has(Dishes) {
		names = append(names, "dishes")
	}
	if c.Has(Visitors) {
		names = append(names, "visitors")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

// Source reads whole collections. The live store and cached snapshots both implement it.
type Source interface {
	Stalls(ctx context.Context) ([]*model.Stall, error)
	Dishes(ctx context.Context) ([]*model.Dish, error)
	Visitors(ctx context.Context) ([]*model.Visitor, error)
}

// Dataset is an immutable, in-memory view of the collections a query reads.
// Collections that were not loaded are nil.
type Dataset struct {
	Stalls   []*model.Stall
	Dishes   []*model.Dish
	Visitors []*model.Visitor
}

// Load reads the requested collections from src concurrently, each exactly once.
func Load(ctx context.Context, src Source, needs Collection) (*Dataset, error) {
	ds := &Dataset{}
	g, ctx := errgroup.WithContext(ctx)

	if needs.Has(Stalls) {
		g.Go(func() error {
			stalls, err := src.Stalls(ctx)
			if err != nil {
				return fmt.Errorf("load stalls: %w", err)
			}
			ds.Stalls = stalls
			return nil
		})
	}
	if needs.Has(Dishes) {
		g.Go(func() error {
			dishes, err := src.Dishes(ctx)
			if err != nil {
				return fmt.Errorf("load dishes: %w", err)
			}
			ds.Dishes = dishes
			return nil
		})
	}
	if needs.Has(Visitors) {
		g.Go(func() error {
			visitors, err := src.Visitors(ctx)
			if err != nil {
				return fmt.Errorf("load visitors: %w", err)
			}
			ds.Visitors = visitors
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ds, nil
}
