package repository

import (
	"context"
	"fmt"

	"github.com/forgo/foodfest/api/internal/database"
	"github.com/forgo/foodfest/api/internal/model"
)

// DishRepository handles dish data access
type DishRepository struct {
	db database.Database
}

// NewDishRepository creates a new dish repository
func NewDishRepository(db database.Database) *DishRepository {
	return &DishRepository{db: db}
}

// List returns every dish in insertion order. Stall references are returned
// as stored, whether or not the stall still exists.
func (r *DishRepository) List(ctx context.Context) ([]*model.Dish, error) {
	query := `SELECT * FROM dish ORDER BY created_on ASC, id ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}

	records := rows(result, 0)
	dishes := make([]*model.Dish, 0, len(records))
	for _, data := range records {
		dishes = append(dishes, parseDish(data))
	}
	return dishes, nil
}

// Create stores a new dish and fills in its id and creation time.
func (r *DishRepository) Create(ctx context.Context, dish *model.Dish) error {
	query := `
		CREATE dish CONTENT {
			name: $name,
			stall_id: $stall_id,
			price: $price,
			rating: $rating,
			sold_by: $sold_by,
			created_on: time::now()
		}
	`

	result, err := r.db.Query(ctx, query, dishVars(dish))
	if err != nil {
		return fmt.Errorf("create dish: %w", err)
	}

	data, err := firstRow(result)
	if err != nil {
		return fmt.Errorf("create dish: %w", err)
	}
	created := parseDish(data)
	dish.ID = created.ID
	dish.CreatedOn = created.CreatedOn
	return nil
}

func dishVars(d *model.Dish) map[string]interface{} {
	soldBy := d.SoldBy
	if soldBy == nil {
		soldBy = []string{}
	}
	return map[string]interface{}{
		"name":     d.Name,
		"stall_id": d.StallID,
		"price":    d.Price,
		"rating":   d.Rating,
		"sold_by":  soldBy,
	}
}

func parseDish(data map[string]interface{}) *model.Dish {
	return &model.Dish{
		ID:        recordID(data["id"]),
		Name:      getString(data, "name"),
		StallID:   recordID(data["stall_id"]),
		Price:     getFloat(data, "price"),
		Rating:    getFloat(data, "rating"),
		SoldBy:    getStringSlice(data, "sold_by"),
		CreatedOn: getTime(data, "created_on"),
	}
}
