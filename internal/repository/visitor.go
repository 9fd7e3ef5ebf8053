package repository

import (
	"context"
	"fmt"

	"github.com/forgo/foodfest/api/internal/database"
	"github.com/forgo/foodfest/api/internal/model"
)

// VisitorRepository handles visitor data access
type VisitorRepository struct {
	db database.Database
}

// NewVisitorRepository creates a new visitor repository
func NewVisitorRepository(db database.Database) *VisitorRepository {
	return &VisitorRepository{db: db}
}

func (r *VisitorRepository) List(ctx context.Context) ([]*model.Visitor, error) {
	query := `SELECT * FROM visitor ORDER BY created_on ASC, id ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}

	records := rows(result, 0)
	visitors := make([]*model.Visitor, 0, len(records))
	for _, data := range records {
		visitors = append(visitors, parseVisitor(data))
	}
	return visitors, nil
}

func (r *VisitorRepository) Create(ctx context.Context, visitor *model.Visitor) error {
	query := `
		CREATE visitor CONTENT {
			name: $name,
			stalls_visited: $stalls_visited,
			dishes_rated: $dishes_rated,
			created_on: time::now()
		}
	`

	result, err := r.db.Query(ctx, query, visitorVars(visitor))
	if err != nil {
		return fmt.Errorf("create visitor: %w", err)
	}

	data, err := firstRow(result)
	if err != nil {
		return fmt.Errorf("create visitor: %w", err)
	}
	created := parseVisitor(data)
	visitor.ID = created.ID
	visitor.CreatedOn = created.CreatedOn
	return nil
}

func visitorVars(v *model.Visitor) map[string]interface{} {
	return map[string]interface{}{
		"name":           v.Name,
		"stalls_visited": v.StallsVisited,
		"dishes_rated":   v.DishesRated,
	}
}

func parseVisitor(data map[string]interface{}) *model.Visitor {
	return &model.Visitor{
		ID:            recordID(data["id"]),
		Name:          getString(data, "name"),
		StallsVisited: getInt(data, "stalls_visited"),
		DishesRated:   getInt(data, "dishes_rated"),
		CreatedOn:     getTime(data, "created_on"),
	}
}
