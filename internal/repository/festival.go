package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/forgo/foodfest/api/internal/database"
	"github.com/forgo/foodfest/api/internal/model"
)

// FestivalRepository reads and writes the three collections together. It is
// the live report.Source used by the API.
type FestivalRepository struct {
	db       database.Database
	stalls   *StallRepository
	dishes   *DishRepository
	visitors *VisitorRepository
}

func NewFestivalRepository(db database.Database) *FestivalRepository {
	return &FestivalRepository{
		db:       db,
		stalls:   NewStallRepository(db),
		dishes:   NewDishRepository(db),
		visitors: NewVisitorRepository(db),
	}
}

func (r *FestivalRepository) Stalls(ctx context.Context) ([]*model.Stall, error) {
	return r.stalls.List(ctx)
}

func (r *FestivalRepository) Dishes(ctx context.Context) ([]*model.Dish, error) {
	return r.dishes.List(ctx)
}

func (r *FestivalRepository) Visitors(ctx context.Context) ([]*model.Visitor, error) {
	return r.visitors.List(ctx)
}

// Summary counts each collection and totals stall sales in one round trip.
func (r *FestivalRepository) Summary(ctx context.Context) (*model.Summary, error) {
	query := `
		SELECT count() AS count FROM stall GROUP ALL;
		SELECT count() AS count FROM dish GROUP ALL;
		SELECT count() AS count FROM visitor GROUP ALL;
		SELECT math::sum(sales) AS total FROM stall GROUP ALL;
	`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	return &model.Summary{
		Stalls:     extractCount(result, 0),
		Dishes:     extractCount(result, 1),
		Visitors:   extractCount(result, 2),
		TotalSales: extractSum(result, 3),
	}, nil
}

// Seed inserts the given records in a single transaction. Records must carry
// their ids so dishes can refer to stalls created in the same batch. A set
// CreatedOn is stored as is, keeping the authored insertion order.
func (r *FestivalRepository) Seed(ctx context.Context, stalls []*model.Stall, dishes []*model.Dish, visitors []*model.Visitor) error {
	batch := database.NewAtomicBatch()
	const create = `CREATE type::record($id) CONTENT $content`

	for _, s := range stalls {
		if !isRecordOf("stall", s.ID) {
			return fmt.Errorf("seed: invalid stall id %q", s.ID)
		}
		batch.Add(create, map[string]interface{}{"id": s.ID, "content": withCreatedOn(stallVars(s), s.CreatedOn)})
	}
	for _, d := range dishes {
		if !isRecordOf("dish", d.ID) {
			return fmt.Errorf("seed: invalid dish id %q", d.ID)
		}
		batch.Add(create, map[string]interface{}{"id": d.ID, "content": withCreatedOn(dishVars(d), d.CreatedOn)})
	}
	for _, v := range visitors {
		if !isRecordOf("visitor", v.ID) {
			return fmt.Errorf("seed: invalid visitor id %q", v.ID)
		}
		batch.Add(create, map[string]interface{}{"id": v.ID, "content": withCreatedOn(visitorVars(v), v.CreatedOn)})
	}

	if err := batch.Execute(ctx, r.db); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

func withCreatedOn(content map[string]interface{}, at time.Time) map[string]interface{} {
	if !at.IsZero() {
		content["created_on"] = models.CustomDateTime{Time: at.UTC()}
	}
	return content
}
