package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"

	"github.com/forgo/foodfest/api/internal/database"
	"github.com/forgo/foodfest/api/internal/model"
	"github.com/forgo/foodfest/api/internal/repository"
)

// Factory creates test records in the database
type Factory struct {
	stalls   *repository.StallRepository
	dishes   *repository.DishRepository
	visitors *repository.VisitorRepository
}

func New(db database.Database) *Factory {
	return &Factory{
		stalls:   repository.NewStallRepository(db),
		dishes:   repository.NewDishRepository(db),
		visitors: repository.NewVisitorRepository(db),
	}
}

func randomID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// ============================================================================
// Stall Fixtures
// ============================================================================

type StallOpts struct {
	Name     string
	Cuisine  string
	Sales    float64
	LiveDemo bool
	Contests []string
}

func (f *Factory) CreateStall(t *testing.T, opts ...func(*StallOpts)) *model.Stall {
	t.Helper()

	o := &StallOpts{
		Name:     "Stall " + randomID(),
		Cuisine:  "Fusion",
		Contests: []string{},
	}
	for _, fn := range opts {
		fn(o)
	}

	stall := &model.Stall{
		Name:     o.Name,
		Cuisine:  o.Cuisine,
		Sales:    o.Sales,
		LiveDemo: o.LiveDemo,
		Contests: o.Contests,
	}
	if err := f.stalls.Create(ctx(t), stall); err != nil {
		t.Fatalf("fixtures: failed to create stall: %v", err)
	}
	return stall
}

// ============================================================================
// Dish Fixtures
// ============================================================================

type DishOpts struct {
	Name    string
	StallID string
	Price   float64
	Rating  float64
	SoldBy  []string
}

// CreateDish creates a dish owned by stall. Pass a nil stall and set
// StallID to store a dangling reference.
func (f *Factory) CreateDish(t *testing.T, stall *model.Stall, opts ...func(*DishOpts)) *model.Dish {
	t.Helper()

	o := &DishOpts{
		Name:   "Dish " + randomID(),
		Price:  10,
		Rating: 5,
		SoldBy: []string{},
	}
	if stall != nil {
		o.StallID = stall.ID
	}
	for _, fn := range opts {
		fn(o)
	}

	dish := &model.Dish{
		Name:    o.Name,
		StallID: o.StallID,
		Price:   o.Price,
		Rating:  o.Rating,
		SoldBy:  o.SoldBy,
	}
	if err := f.dishes.Create(ctx(t), dish); err != nil {
		t.Fatalf("fixtures: failed to create dish: %v", err)
	}
	return dish
}

// ============================================================================
// Visitor Fixtures
// ============================================================================

type VisitorOpts struct {
	Name          string
	StallsVisited int
	DishesRated   int
}

func (f *Factory) CreateVisitor(t *testing.T, opts ...func(*VisitorOpts)) *model.Visitor {
	t.Helper()

	o := &VisitorOpts{Name: "Visitor " + randomID()}
	for _, fn := range opts {
		fn(o)
	}

	visitor := &model.Visitor{
		Name:          o.Name,
		StallsVisited: o.StallsVisited,
		DishesRated:   o.DishesRated,
	}
	if err := f.visitors.Create(ctx(t), visitor); err != nil {
		t.Fatalf("fixtures: failed to create visitor: %v", err)
	}
	return visitor
}
